package cli

import (
	"context"
	"fmt"

	"github.com/dukahq/dukapos/internal/validation"
	"github.com/dukahq/dukapos/pkg/api"
)

// Администрирование учетных записей. Все подкоманды доступны только админу.
func (c *Cli) runUsers(ctx context.Context, args []string) error {
	if err := c.requireAdmin(ctx); err != nil {
		return err
	}

	if len(args) == 0 {
		return fmt.Errorf("usage: dukapos users list|add|update|delete")
	}

	switch args[0] {
	case "list":
		return c.listUsers(ctx)
	case "add":
		return c.addUser(ctx)
	case "update":
		if len(args) < 2 {
			return fmt.Errorf("usage: dukapos users update <id>")
		}
		return c.updateUser(ctx, args[1])
	case "delete":
		if len(args) < 2 {
			return fmt.Errorf("usage: dukapos users delete <id>")
		}
		return c.deleteUser(ctx, args[1])
	default:
		return fmt.Errorf("unknown users subcommand: %s", args[0])
	}
}

func (c *Cli) listUsers(ctx context.Context) error {
	users, err := c.pos.GetUsers(ctx)
	if err != nil {
		return c.explain(err)
	}

	if len(users) == 0 {
		c.io.Println("No users.")
		return nil
	}

	c.io.Printf("%-6s %-24s %s\n", "ID", "USERNAME", "ROLE")
	for _, u := range users {
		c.io.Printf("%-6d %-24s %s\n", u.ID, u.Username, u.Role)
	}
	return nil
}

func (c *Cli) addUser(ctx context.Context) error {
	username, err := c.readRequired("Username: ")
	if err != nil {
		return err
	}
	if err := validation.ValidateUsername(username); err != nil {
		return err
	}

	role, err := c.readRequired("Role (admin/cashier): ")
	if err != nil {
		return err
	}
	if err := validation.ValidateRole(role); err != nil {
		return err
	}

	password, err := c.io.ReadPassword("Password: ")
	if err != nil {
		return err
	}
	if err := validation.ValidateNewPassword(password); err != nil {
		return err
	}

	created, err := c.pos.CreateUser(ctx, api.UserAccount{
		Username: username,
		Role:     role,
		Password: password,
	})
	if err != nil {
		return c.explain(err)
	}

	c.io.Printf("✓ User created: #%d %s (%s)\n", created.ID, created.Username, created.Role)
	return nil
}

func (c *Cli) updateUser(ctx context.Context, arg string) error {
	id, err := parseID(arg)
	if err != nil {
		return err
	}

	username, err := c.readRequired("Username: ")
	if err != nil {
		return err
	}
	if err := validation.ValidateUsername(username); err != nil {
		return err
	}

	role, err := c.readRequired("Role (admin/cashier): ")
	if err != nil {
		return err
	}
	if err := validation.ValidateRole(role); err != nil {
		return err
	}

	// Пустой пароль означает "не менять"
	password, err := c.io.ReadPassword("New password (leave empty to keep): ")
	if err != nil {
		return err
	}
	if password != "" {
		if err := validation.ValidateNewPassword(password); err != nil {
			return err
		}
	}

	updated, err := c.pos.UpdateUser(ctx, id, api.UserAccount{
		Username: username,
		Role:     role,
		Password: password,
	})
	if err != nil {
		return c.explain(err)
	}

	c.io.Printf("✓ User updated: #%d %s (%s)\n", updated.ID, updated.Username, updated.Role)
	return nil
}

func (c *Cli) deleteUser(ctx context.Context, arg string) error {
	id, err := parseID(arg)
	if err != nil {
		return err
	}

	// Нельзя удалить самого себя
	if current := c.session.CurrentUser(ctx); current != nil && current.ID == id {
		return fmt.Errorf("cannot delete the currently logged in user")
	}

	ok, err := c.io.Confirm(fmt.Sprintf("Delete user %d?", id))
	if err != nil {
		return err
	}
	if !ok {
		c.io.Println("Cancelled.")
		return nil
	}

	if err := c.pos.DeleteUser(ctx, id); err != nil {
		return c.explain(err)
	}

	c.io.Printf("✓ User %d deleted\n", id)
	return nil
}
