package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dukahq/dukapos/pkg/api"
)

func (c *Cli) runProducts(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: dukapos products list|search|add|update|delete|adjust")
	}

	// Чтение каталога доступно любому залогиненному, изменение — админу
	switch args[0] {
	case "list":
		if err := c.requireAuth(ctx); err != nil {
			return err
		}
		return c.listProducts(ctx)
	case "search":
		if err := c.requireAuth(ctx); err != nil {
			return err
		}
		if len(args) < 2 {
			return fmt.Errorf("usage: dukapos products search <query>")
		}
		return c.searchProducts(ctx, strings.Join(args[1:], " "))
	case "add":
		if err := c.requireAdmin(ctx); err != nil {
			return err
		}
		return c.addProduct(ctx)
	case "update":
		if err := c.requireAdmin(ctx); err != nil {
			return err
		}
		if len(args) < 2 {
			return fmt.Errorf("usage: dukapos products update <id>")
		}
		return c.updateProduct(ctx, args[1])
	case "delete":
		if err := c.requireAdmin(ctx); err != nil {
			return err
		}
		if len(args) < 2 {
			return fmt.Errorf("usage: dukapos products delete <id>")
		}
		return c.deleteProduct(ctx, args[1])
	case "adjust":
		if err := c.requireAdmin(ctx); err != nil {
			return err
		}
		if len(args) < 2 {
			return fmt.Errorf("usage: dukapos products adjust <id>")
		}
		return c.adjustStock(ctx, args[1])
	default:
		return fmt.Errorf("unknown products subcommand: %s", args[0])
	}
}

func (c *Cli) listProducts(ctx context.Context) error {
	products, err := c.pos.GetProducts(ctx)
	if err != nil {
		return c.explain(err)
	}
	c.printProducts(products)
	return nil
}

func (c *Cli) searchProducts(ctx context.Context, query string) error {
	products, err := c.pos.SearchProducts(ctx, query)
	if err != nil {
		return c.explain(err)
	}
	if len(products) == 0 {
		c.io.Printf("No products match %q\n", query)
		return nil
	}
	c.printProducts(products)
	return nil
}

func (c *Cli) addProduct(ctx context.Context) error {
	product, err := c.promptProduct(api.Product{})
	if err != nil {
		return err
	}

	created, err := c.pos.CreateProduct(ctx, product)
	if err != nil {
		return c.explain(err)
	}

	c.io.Printf("✓ Product created: #%d %s\n", created.ID, created.Name)
	return nil
}

func (c *Cli) updateProduct(ctx context.Context, arg string) error {
	id, err := parseID(arg)
	if err != nil {
		return err
	}

	// Текущие значения — как подсказки в полях формы
	current, err := c.pos.GetProducts(ctx)
	if err != nil {
		return c.explain(err)
	}
	var existing api.Product
	for _, p := range current {
		if p.ID == id {
			existing = p
			break
		}
	}
	if existing.ID == 0 {
		return fmt.Errorf("product %d not found", id)
	}

	product, err := c.promptProduct(existing)
	if err != nil {
		return err
	}

	updated, err := c.pos.UpdateProduct(ctx, id, product)
	if err != nil {
		return c.explain(err)
	}

	c.io.Printf("✓ Product updated: #%d %s\n", updated.ID, updated.Name)
	return nil
}

func (c *Cli) deleteProduct(ctx context.Context, arg string) error {
	id, err := parseID(arg)
	if err != nil {
		return err
	}

	ok, err := c.io.Confirm(fmt.Sprintf("Delete product %d?", id))
	if err != nil {
		return err
	}
	if !ok {
		c.io.Println("Cancelled.")
		return nil
	}

	if err := c.pos.DeleteProduct(ctx, id); err != nil {
		return c.explain(err)
	}

	c.io.Printf("✓ Product %d deleted\n", id)
	return nil
}

func (c *Cli) adjustStock(ctx context.Context, arg string) error {
	id, err := parseID(arg)
	if err != nil {
		return err
	}

	quantity, err := c.readInt("Quantity (+receive / -write off): ", 0)
	if err != nil {
		return err
	}
	if quantity == 0 {
		return fmt.Errorf("quantity cannot be zero")
	}

	reason, err := c.readRequired("Reason: ")
	if err != nil {
		return err
	}

	updated, err := c.pos.AdjustStock(ctx, id, api.StockAdjustment{
		Quantity: quantity,
		Reason:   reason,
	})
	if err != nil {
		return c.explain(err)
	}

	c.io.Printf("✓ Stock adjusted: %s now has %d units\n", updated.Name, updated.Stock)
	return nil
}

// promptProduct запрашивает поля товара; значения existing — подсказки
func (c *Cli) promptProduct(existing api.Product) (api.Product, error) {
	product := existing

	name, err := c.io.ReadInput(labeled("Name", existing.Name))
	if err != nil {
		return product, err
	}
	if name != "" {
		product.Name = name
	}
	if product.Name == "" {
		return product, fmt.Errorf("name cannot be empty")
	}

	barcode, err := c.io.ReadInput(labeled("Barcode", existing.Barcode))
	if err != nil {
		return product, err
	}
	if barcode != "" {
		product.Barcode = barcode
	}
	if product.Barcode == "" {
		return product, fmt.Errorf("barcode cannot be empty")
	}

	product.Price, err = c.readFloat(labeled("Price", fmt.Sprintf("%.2f", existing.Price)), existing.Price)
	if err != nil {
		return product, err
	}
	if product.Price <= 0 {
		return product, fmt.Errorf("price must be positive")
	}

	product.Stock, err = c.readInt(labeled("Stock", fmt.Sprintf("%d", existing.Stock)), existing.Stock)
	if err != nil {
		return product, err
	}

	product.MinStock, err = c.readInt(labeled("Min stock", fmt.Sprintf("%d", existing.MinStock)), existing.MinStock)
	if err != nil {
		return product, err
	}

	return product, nil
}

func labeled(field, current string) string {
	if current == "" || current == "0" || current == "0.00" {
		return field + ": "
	}
	return fmt.Sprintf("%s [%s]: ", field, current)
}

func (c *Cli) printProducts(products []api.Product) {
	if len(products) == 0 {
		c.io.Println("No products.")
		return
	}

	c.io.Printf("%-6s %-14s %-28s %10s %7s %5s\n", "ID", "BARCODE", "NAME", "PRICE", "STOCK", "MIN")
	for _, p := range products {
		c.io.Printf("%-6d %-14s %-28s %10.2f %7d %5d\n",
			p.ID, p.Barcode, p.Name, p.Price, p.Stock, p.MinStock)
	}
	c.io.Printf("\n%d product(s)\n", len(products))
}
