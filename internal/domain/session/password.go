package session

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Argon2id parameters.
const (
	argon2Time    = 1
	argon2Memory  = 64 * 1024
	argon2Threads = 4
	argon2KeyLen  = 32
	saltLen       = 16
)

// HashPassword returns an encoded argon2id hash:
// $argon2id$v=19$m=65536,t=1,p=4$<salt>$<hash>
func HashPassword(password string) (string, error) {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}
	key := argon2.IDKey([]byte(password), salt, argon2Time, argon2Memory, argon2Threads, argon2KeyLen)
	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, argon2Memory, argon2Time, argon2Threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key)), nil
}

// VerifyPassword checks password against an encoded argon2id hash.
func VerifyPassword(password, encoded string) (bool, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return false, ErrInvalidHash
	}

	var memory, time uint32
	var threads uint8
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &time, &threads); err != nil {
		return false, fmt.Errorf("%w: %v", ErrInvalidHash, err)
	}
	if time == 0 || threads == 0 {
		return false, fmt.Errorf("%w: zero cost parameter", ErrInvalidHash)
	}
	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false, fmt.Errorf("%w: salt: %v", ErrInvalidHash, err)
	}
	want, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(want) == 0 {
		return false, fmt.Errorf("%w: key", ErrInvalidHash)
	}

	got := argon2.IDKey([]byte(password), salt, time, memory, threads, uint32(len(want)))
	return subtle.ConstantTimeCompare(want, got) == 1, nil
}

// HashVerifier verifies passwords against an argon2id hash.
type HashVerifier struct {
	Hash string
}

func (v HashVerifier) Verify(password string) bool {
	ok, err := VerifyPassword(password, v.Hash)
	return err == nil && ok
}

// PlainVerifier compares against a configured plaintext password in
// constant time.
type PlainVerifier struct {
	Password string
}

func (v PlainVerifier) Verify(password string) bool {
	if v.Password == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(v.Password), []byte(password)) == 1
}

type denyAll struct{}

func (denyAll) Verify(string) bool { return false }

// NewVerifier prefers the argon2id hash, falls back to the plaintext
// password, and rejects every login when neither is configured.
func NewVerifier(hash, plain string) Verifier {
	switch {
	case strings.TrimSpace(hash) != "":
		return HashVerifier{Hash: strings.TrimSpace(hash)}
	case plain != "":
		return PlainVerifier{Password: plain}
	default:
		return denyAll{}
	}
}
