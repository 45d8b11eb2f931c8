package cli

import (
	"context"
	"fmt"

	"github.com/dukahq/dukapos/pkg/api"
)

func (c *Cli) runCategories(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: dukapos categories list|add|update|delete")
	}

	switch args[0] {
	case "list":
		if err := c.requireAuth(ctx); err != nil {
			return err
		}
		return c.listCategories(ctx)
	case "add":
		if err := c.requireAdmin(ctx); err != nil {
			return err
		}
		return c.addCategory(ctx)
	case "update":
		if err := c.requireAdmin(ctx); err != nil {
			return err
		}
		if len(args) < 2 {
			return fmt.Errorf("usage: dukapos categories update <id>")
		}
		return c.updateCategory(ctx, args[1])
	case "delete":
		if err := c.requireAdmin(ctx); err != nil {
			return err
		}
		if len(args) < 2 {
			return fmt.Errorf("usage: dukapos categories delete <id>")
		}
		return c.deleteCategory(ctx, args[1])
	default:
		return fmt.Errorf("unknown categories subcommand: %s", args[0])
	}
}

func (c *Cli) listCategories(ctx context.Context) error {
	categories, err := c.pos.GetCategories(ctx)
	if err != nil {
		return c.explain(err)
	}

	if len(categories) == 0 {
		c.io.Println("No categories.")
		return nil
	}

	c.io.Printf("%-6s %-24s %s\n", "ID", "NAME", "DESCRIPTION")
	for _, cat := range categories {
		c.io.Printf("%-6d %-24s %s\n", cat.ID, cat.Name, cat.Description)
	}
	return nil
}

func (c *Cli) addCategory(ctx context.Context) error {
	name, err := c.readRequired("Name: ")
	if err != nil {
		return err
	}
	description, err := c.io.ReadInput("Description (optional): ")
	if err != nil {
		return err
	}

	created, err := c.pos.CreateCategory(ctx, api.Category{
		Name:        name,
		Description: description,
	})
	if err != nil {
		return c.explain(err)
	}

	c.io.Printf("✓ Category created: #%d %s\n", created.ID, created.Name)
	return nil
}

func (c *Cli) updateCategory(ctx context.Context, arg string) error {
	id, err := parseID(arg)
	if err != nil {
		return err
	}

	name, err := c.readRequired("Name: ")
	if err != nil {
		return err
	}
	description, err := c.io.ReadInput("Description (optional): ")
	if err != nil {
		return err
	}

	updated, err := c.pos.UpdateCategory(ctx, id, api.Category{
		Name:        name,
		Description: description,
	})
	if err != nil {
		return c.explain(err)
	}

	c.io.Printf("✓ Category updated: #%d %s\n", updated.ID, updated.Name)
	return nil
}

func (c *Cli) deleteCategory(ctx context.Context, arg string) error {
	id, err := parseID(arg)
	if err != nil {
		return err
	}

	ok, err := c.io.Confirm(fmt.Sprintf("Delete category %d?", id))
	if err != nil {
		return err
	}
	if !ok {
		c.io.Println("Cancelled.")
		return nil
	}

	if err := c.pos.DeleteCategory(ctx, id); err != nil {
		return c.explain(err)
	}

	c.io.Printf("✓ Category %d deleted\n", id)
	return nil
}
