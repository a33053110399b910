// Package bootstrap crea usuarios desde la CLI (bizflow user create).
package bootstrap

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/dropDatabas3/bizflow/internal/identity"
)

// UserConfig configura la creación de un usuario.
type UserConfig struct {
	Provider identity.Provider
	// Email y Password precargados; vacíos se piden por terminal.
	Email    string
	Password string
	// SkipPrompt falla en vez de preguntar (tests, CI).
	SkipPrompt bool

	In  io.Reader
	Out io.Writer
}

var (
	ErrMissingCredentials = errors.New("bootstrap: email and password are required")
	ErrPasswordMismatch   = errors.New("bootstrap: passwords do not match")
	ErrNotATerminal       = errors.New("bootstrap: stdin is not a terminal")
)

// CreateUser registra un usuario vía el identity provider.
func CreateUser(ctx context.Context, cfg UserConfig) (*identity.User, error) {
	if cfg.In == nil {
		cfg.In = os.Stdin
	}
	if cfg.Out == nil {
		cfg.Out = os.Stdout
	}

	email, pass := strings.TrimSpace(cfg.Email), cfg.Password
	if email == "" || pass == "" {
		if cfg.SkipPrompt {
			return nil, ErrMissingCredentials
		}
		var err error
		email, pass, err = prompt(cfg, email, pass)
		if err != nil {
			return nil, err
		}
	}

	u, err := cfg.Provider.SignUp(ctx, email, pass)
	if err != nil {
		return nil, fmt.Errorf("bootstrap: create user: %w", err)
	}
	return u, nil
}

func prompt(cfg UserConfig, email, pass string) (string, string, error) {
	if email == "" {
		fmt.Fprint(cfg.Out, "Email: ")
		line, err := bufio.NewReader(cfg.In).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return "", "", err
		}
		email = strings.TrimSpace(line)
		if email == "" {
			return "", "", ErrMissingCredentials
		}
	}
	if pass != "" {
		return email, pass, nil
	}

	f, ok := cfg.In.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return "", "", ErrNotATerminal
	}
	fd := int(f.Fd())

	fmt.Fprint(cfg.Out, "Password: ")
	p1, err := term.ReadPassword(fd)
	fmt.Fprintln(cfg.Out)
	if err != nil {
		return "", "", err
	}
	fmt.Fprint(cfg.Out, "Confirm password: ")
	p2, err := term.ReadPassword(fd)
	fmt.Fprintln(cfg.Out)
	if err != nil {
		return "", "", err
	}
	if string(p1) != string(p2) {
		return "", "", ErrPasswordMismatch
	}
	return email, string(p1), nil
}
