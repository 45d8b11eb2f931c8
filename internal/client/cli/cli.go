package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dukahq/dukapos/internal/client/iocli"
	"github.com/dukahq/dukapos/internal/client/pos"
	"github.com/dukahq/dukapos/internal/client/session"
	"github.com/dukahq/dukapos/internal/client/storage"
)

// Cli связывает команды терминала с клиентом сессии и сервисом ресурсов
type Cli struct {
	io       iocli.IO
	session  *session.Session
	pos      *pos.Service
	metadata storage.MetadataStorage
}

func New(io iocli.IO, sess *session.Session, posService *pos.Service, metadata storage.MetadataStorage) *Cli {
	return &Cli{
		io:       io,
		session:  sess,
		pos:      posService,
		metadata: metadata,
	}
}

// Run выполняет одну команду терминала
func (c *Cli) Run(ctx context.Context, command string, args []string) error {
	switch command {
	case "login":
		return c.runLogin(ctx)
	case "logout":
		return c.runLogout(ctx)
	case "status":
		return c.runStatus(ctx)
	case "sell":
		return c.runSell(ctx)
	case "products":
		return c.runProducts(ctx, args)
	case "categories":
		return c.runCategories(ctx, args)
	case "suppliers":
		return c.runSuppliers(ctx, args)
	case "users":
		return c.runUsers(ctx, args)
	case "cash":
		return c.runCash(ctx, args)
	case "report":
		return c.runReport(ctx)
	case "help":
		c.PrintUsage()
		return nil
	default:
		c.PrintUsage()
		return fmt.Errorf("unknown command: %s", command)
	}
}

// PrintUsage выводит справку по командам
func (c *Cli) PrintUsage() {
	c.io.Println("dukapos — POS terminal client")
	c.io.Println()
	c.io.Println("Usage: dukapos [flags] <command> [args]")
	c.io.Println()
	c.io.Println("Commands:")
	c.io.Println("  login                         sign in to the backend")
	c.io.Println("  logout                        sign out and clear the local session")
	c.io.Println("  status                        show session status")
	c.io.Println("  sell                          interactive checkout")
	c.io.Println("  products list|search|add|update|delete|adjust")
	c.io.Println("  categories list|add|update|delete")
	c.io.Println("  suppliers list|add|update|delete")
	c.io.Println("  users list|add|update|delete  (admin only)")
	c.io.Println("  cash show|in|out              cash register operations")
	c.io.Println("  report                        sales dashboard (admin only)")
	c.io.Println()
	c.io.Println("Flags:")
	c.io.Println("  -server URL   backend address (default http://localhost:5000, env DUKAPOS_API_URL)")
	c.io.Println("  -db PATH      local database file")
}

// requireAuth проверяет, что пользователь залогинен.
// Выполняется синхронно до любого сетевого вызова — это аналог редиректа
// неавторизованного пользователя на страницу логина.
func (c *Cli) requireAuth(ctx context.Context) error {
	if !c.session.IsAuthenticated(ctx) {
		return fmt.Errorf("not authenticated. Please run 'dukapos login' first")
	}
	return nil
}

// requireAdmin проверяет, что залогинен администратор
func (c *Cli) requireAdmin(ctx context.Context) error {
	if err := c.requireAuth(ctx); err != nil {
		return err
	}
	if !c.session.IsAdmin(ctx) {
		return fmt.Errorf("access denied: admin role required")
	}
	return nil
}

// explain переводит ошибки пайплайна в сообщение для кассира
func (c *Cli) explain(err error) error {
	if errors.Is(err, session.ErrSessionExpired) {
		return fmt.Errorf("session expired. Please run 'dukapos login' again")
	}
	return err
}
