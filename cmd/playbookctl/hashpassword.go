package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/ganot/playbook/internal/domain/session"
	"github.com/urfave/cli/v2"
	"golang.org/x/term"
)

func hashPasswordCommand() *cli.Command {
	return &cli.Command{
		Name:  "hash-password",
		Usage: "Prompt for the admin password and print its argon2id hash for PLAYBOOK_ADMIN_PASSWORD_HASH.",
		Action: func(c *cli.Context) error {
			password, err := readPassword("Enter password:   ")
			if err != nil {
				return err
			}
			confirm, err := readPassword("Confirm password: ")
			if err != nil {
				return err
			}
			if password == "" {
				return errors.New("password cannot be empty")
			}
			if password != confirm {
				return errors.New("passwords do not match")
			}

			hash, err := session.HashPassword(password)
			if err != nil {
				return fmt.Errorf("hashing password: %w", err)
			}
			fmt.Fprintln(c.App.Writer, hash)
			return nil
		},
	}
}

// readPassword prompts on stderr and reads without echo when stdin is a
// terminal.
func readPassword(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		var line string
		if _, err := fmt.Fscanln(os.Stdin, &line); err != nil {
			return "", fmt.Errorf("reading password: %w", err)
		}
		return line, nil
	}
	b, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return string(b), nil
}
