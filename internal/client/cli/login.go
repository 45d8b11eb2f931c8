package cli

import (
	"context"
	"errors"
	"fmt"

	clientapi "github.com/dukahq/dukapos/internal/client/api"
	"github.com/dukahq/dukapos/internal/validation"
)

func (c *Cli) runLogin(ctx context.Context) error {
	c.io.Println("=== Login ===")
	c.io.Println()

	// Запрашиваем username
	username, err := c.io.ReadInput("Username: ")
	if err != nil {
		return fmt.Errorf("failed to read username: %w", err)
	}

	// Запрашиваем пароль
	password, err := c.io.ReadPassword("Password: ")
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}

	// Непустоту проверяем здесь: клиент сессии это не перепроверяет
	if err := validation.ValidateCredentials(username, password); err != nil {
		return err
	}

	c.io.Println()
	c.io.Println("Authenticating...")

	user, err := c.session.Login(ctx, username, password)
	if err != nil {
		var authErr *clientapi.AuthenticationError
		if errors.As(err, &authErr) {
			// Не раскрываем, существует ли такой username
			return fmt.Errorf("invalid username or password")
		}
		return err
	}

	c.io.Println()
	c.io.Println("✓ Login successful!")
	c.io.Printf("User: %s (%s)\n", user.Username, user.Role)

	return nil
}
