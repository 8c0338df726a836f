package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/ganot/playbook/internal/domain/session"
	"github.com/ganot/playbook/internal/repository"
	"github.com/ganot/playbook/internal/repository/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestSessionService_LoginAndValidate(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	repo := &mocks.SessionRepository{}
	var stored *session.Session
	repo.On("Create", ctx, mock.AnythingOfType("*session.Session")).
		Run(func(args mock.Arguments) { stored = args.Get(1).(*session.Session) }).
		Return(nil)

	svc := session.NewService(repo, session.PlainVerifier{Password: "pw"}, nil, time.Hour, nil)
	svc.Now = fixedClock(now)

	login, err := svc.Login(ctx, "pw")
	require.NoError(t, err)
	require.Len(t, login.Token, 64)
	require.Equal(t, now.Add(time.Hour), login.ExpiresAt)
	require.NotNil(t, stored)
	require.Equal(t, session.HashToken(login.Token), stored.TokenHash)
	require.NotEqual(t, login.Token, stored.TokenHash)

	repo.On("Get", ctx, stored.TokenHash).Return(stored, nil)
	sess, err := svc.Validate(ctx, login.Token)
	require.NoError(t, err)
	require.Equal(t, stored.ExpiresAt, sess.ExpiresAt)
}

func TestSessionService_LoginRejected(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.SessionRepository{}
	activities := &mocks.ActivityRepository{}
	activities.On("Log", ctx, mock.Anything).Return(nil)

	svc := session.NewService(repo, session.PlainVerifier{Password: "pw"}, activities, 0, nil)
	_, err := svc.Login(ctx, "wrong")
	require.ErrorIs(t, err, session.ErrInvalidCredentials)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	require.Equal(t, session.DefaultTTL, svc.TTL())

	svc = session.NewService(repo, nil, nil, 0, nil)
	_, err = svc.Login(ctx, "")
	require.ErrorIs(t, err, session.ErrInvalidCredentials)
}

func TestSessionService_ValidateExpiredDeletes(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	hash := session.HashToken("tok")

	repo := &mocks.SessionRepository{}
	repo.On("Get", ctx, hash).Return(&session.Session{TokenHash: hash, ExpiresAt: now}, nil)
	repo.On("Delete", ctx, hash).Return(nil)

	svc := session.NewService(repo, nil, nil, time.Hour, nil)
	svc.Now = fixedClock(now)

	_, err := svc.Validate(ctx, "tok")
	require.ErrorIs(t, err, session.ErrSessionExpired)
	repo.AssertCalled(t, "Delete", ctx, hash)
}

func TestSessionService_ValidateUnknown(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.SessionRepository{}
	repo.On("Get", ctx, session.HashToken("nope")).Return(nil, repository.ErrNotFound)

	svc := session.NewService(repo, nil, nil, time.Hour, nil)
	_, err := svc.Validate(ctx, "nope")
	require.ErrorIs(t, err, session.ErrSessionNotFound)

	_, err = svc.Validate(ctx, "")
	require.ErrorIs(t, err, session.ErrSessionNotFound)
}

func TestSessionService_LogoutAndSweep(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	repo := &mocks.SessionRepository{}
	repo.On("Delete", ctx, session.HashToken("gone")).Return(repository.ErrNotFound)
	repo.On("DeleteExpired", ctx, now).Return(int64(3), nil)

	svc := session.NewService(repo, nil, nil, time.Hour, nil)
	svc.Now = fixedClock(now)

	require.NoError(t, svc.Logout(ctx, "gone"))
	require.NoError(t, svc.Logout(ctx, ""))

	n, err := svc.Sweep(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(3), n)
}

func TestSessionService_RunSweeper(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	repo := &mocks.SessionRepository{}
	repo.On("DeleteExpired", mock.Anything, mock.Anything).Return(int64(2), nil)

	svc := session.NewService(repo, nil, nil, time.Hour, nil)

	swept := make(chan int64, 1)
	done := make(chan struct{})
	go func() {
		svc.RunSweeper(ctx, time.Millisecond, func(n int64) {
			select {
			case swept <- n:
			default:
			}
		})
		close(done)
	}()

	select {
	case n := <-swept:
		require.Equal(t, int64(2), n)
	case <-time.After(time.Second):
		t.Fatal("sweeper did not run")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop")
	}
}
