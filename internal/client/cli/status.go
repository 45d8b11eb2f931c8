package cli

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func (c *Cli) runStatus(ctx context.Context) error {
	c.io.Println("=== Session Status ===")
	c.io.Println()

	user := c.session.CurrentUser(ctx)
	if user == nil || !c.session.IsAuthenticated(ctx) {
		c.io.Println("Status: Not authenticated")
		c.io.Println()
		c.io.Println("Run 'dukapos login' to authenticate.")
		return nil
	}

	c.io.Println("Status: Authenticated")
	c.io.Printf("User: %s\n", user.Username)
	c.io.Printf("Role: %s\n", user.Role)

	// Срок действия access token читаем из его же claims.
	// Подпись не проверяем: ее проверяет сервер, клиенту токен непрозрачен
	// во всем, кроме exp.
	if expiresAt, ok := tokenExpiry(c.session.AccessToken()); ok {
		remaining := time.Until(expiresAt)
		c.io.Printf("Access token expires: %s\n", expiresAt.Format(time.RFC3339))
		if remaining > 0 {
			c.io.Printf("Time remaining: %s\n", remaining.Round(time.Second))
		} else {
			c.io.Println("Access token has expired; it will be refreshed on the next request.")
		}
	}

	terminalID, err := c.metadata.GetTerminalID(ctx)
	if err != nil {
		// Не прерываем выполнение, просто предупреждаем
		c.io.Printf("Warning: failed to read terminal id: %v\n", err)
		return nil
	}
	c.io.Printf("Terminal: %s\n", terminalID)

	return nil
}

// tokenExpiry извлекает exp из access token без проверки подписи
func tokenExpiry(token string) (time.Time, bool) {
	if token == "" {
		return time.Time{}, false
	}

	parser := jwt.NewParser()
	parsed, _, err := parser.ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return time.Time{}, false
	}

	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}

	return exp.Time, true
}
