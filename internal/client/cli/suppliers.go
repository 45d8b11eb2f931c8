package cli

import (
	"context"
	"fmt"

	"github.com/dukahq/dukapos/pkg/api"
)

func (c *Cli) runSuppliers(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: dukapos suppliers list|add|update|delete")
	}

	switch args[0] {
	case "list":
		if err := c.requireAuth(ctx); err != nil {
			return err
		}
		return c.listSuppliers(ctx)
	case "add":
		if err := c.requireAdmin(ctx); err != nil {
			return err
		}
		return c.addSupplier(ctx)
	case "update":
		if err := c.requireAdmin(ctx); err != nil {
			return err
		}
		if len(args) < 2 {
			return fmt.Errorf("usage: dukapos suppliers update <id>")
		}
		return c.updateSupplier(ctx, args[1])
	case "delete":
		if err := c.requireAdmin(ctx); err != nil {
			return err
		}
		if len(args) < 2 {
			return fmt.Errorf("usage: dukapos suppliers delete <id>")
		}
		return c.deleteSupplier(ctx, args[1])
	default:
		return fmt.Errorf("unknown suppliers subcommand: %s", args[0])
	}
}

func (c *Cli) listSuppliers(ctx context.Context) error {
	suppliers, err := c.pos.GetSuppliers(ctx)
	if err != nil {
		return c.explain(err)
	}

	if len(suppliers) == 0 {
		c.io.Println("No suppliers.")
		return nil
	}

	c.io.Printf("%-6s %-24s %-16s %-24s %s\n", "ID", "NAME", "PHONE", "EMAIL", "CONTACT")
	for _, s := range suppliers {
		c.io.Printf("%-6d %-24s %-16s %-24s %s\n", s.ID, s.Name, s.Phone, s.Email, s.Contact)
	}
	return nil
}

func (c *Cli) promptSupplier() (api.Supplier, error) {
	var supplier api.Supplier
	var err error

	supplier.Name, err = c.readRequired("Name: ")
	if err != nil {
		return supplier, err
	}
	supplier.Contact, err = c.io.ReadInput("Contact person (optional): ")
	if err != nil {
		return supplier, err
	}
	supplier.Phone, err = c.io.ReadInput("Phone (optional): ")
	if err != nil {
		return supplier, err
	}
	supplier.Email, err = c.io.ReadInput("Email (optional): ")
	if err != nil {
		return supplier, err
	}
	supplier.Address, err = c.io.ReadInput("Address (optional): ")
	if err != nil {
		return supplier, err
	}

	return supplier, nil
}

func (c *Cli) addSupplier(ctx context.Context) error {
	supplier, err := c.promptSupplier()
	if err != nil {
		return err
	}

	created, err := c.pos.CreateSupplier(ctx, supplier)
	if err != nil {
		return c.explain(err)
	}

	c.io.Printf("✓ Supplier created: #%d %s\n", created.ID, created.Name)
	return nil
}

func (c *Cli) updateSupplier(ctx context.Context, arg string) error {
	id, err := parseID(arg)
	if err != nil {
		return err
	}

	supplier, err := c.promptSupplier()
	if err != nil {
		return err
	}

	updated, err := c.pos.UpdateSupplier(ctx, id, supplier)
	if err != nil {
		return c.explain(err)
	}

	c.io.Printf("✓ Supplier updated: #%d %s\n", updated.ID, updated.Name)
	return nil
}

func (c *Cli) deleteSupplier(ctx context.Context, arg string) error {
	id, err := parseID(arg)
	if err != nil {
		return err
	}

	ok, err := c.io.Confirm(fmt.Sprintf("Delete supplier %d?", id))
	if err != nil {
		return err
	}
	if !ok {
		c.io.Println("Cancelled.")
		return nil
	}

	if err := c.pos.DeleteSupplier(ctx, id); err != nil {
		return c.explain(err)
	}

	c.io.Printf("✓ Supplier %d deleted\n", id)
	return nil
}
