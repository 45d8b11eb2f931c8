package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	clientapi "github.com/dukahq/dukapos/internal/client/api"
	"github.com/dukahq/dukapos/internal/client/pos"
)

// runSell — интерактивная касса: сканирование штрихкодов в корзину,
// затем оплата наличными или M-Pesa
func (c *Cli) runSell(ctx context.Context) error {
	if err := c.requireAuth(ctx); err != nil {
		return err
	}

	c.io.Println("=== Checkout ===")
	c.io.Println("Scan a barcode, or type: done, cancel, list")
	c.io.Println()

	var cart []pos.CartItem

	for {
		input, err := c.io.ReadInput("barcode> ")
		if err != nil {
			return err
		}

		switch strings.ToLower(input) {
		case "":
			continue
		case "cancel":
			c.io.Println("Sale cancelled.")
			return nil
		case "list":
			c.printCart(cart)
			continue
		case "done":
			if len(cart) == 0 {
				c.io.Println("Cart is empty.")
				continue
			}
			return c.finishSale(ctx, cart)
		default:
			cart, err = c.scanIntoCart(ctx, cart, input)
			if err != nil {
				return err
			}
		}
	}
}

// scanIntoCart ищет товар по штрихкоду и добавляет его в корзину.
// Повторное сканирование увеличивает количество.
func (c *Cli) scanIntoCart(ctx context.Context, cart []pos.CartItem, barcode string) ([]pos.CartItem, error) {
	product, err := c.pos.GetProductByBarcode(ctx, barcode)
	if err != nil {
		var apiErr *clientapi.APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == 404 {
			c.io.Printf("Unknown barcode %q\n", barcode)
			return cart, nil
		}
		return cart, c.explain(err)
	}

	if product.Stock <= 0 {
		c.io.Printf("%s is out of stock\n", product.Name)
		return cart, nil
	}

	for i := range cart {
		if cart[i].Barcode == product.Barcode {
			cart[i].Quantity++
			c.io.Printf("%s x%d\n", cart[i].Name, cart[i].Quantity)
			return cart, nil
		}
	}

	cart = append(cart, pos.CartItem{
		Barcode:   product.Barcode,
		Name:      product.Name,
		ProductID: product.ID,
		Quantity:  1,
		Price:     product.Price,
	})
	c.io.Printf("%s  %.2f\n", product.Name, product.Price)

	return cart, nil
}

func (c *Cli) finishSale(ctx context.Context, cart []pos.CartItem) error {
	c.printCart(cart)

	payment, err := c.io.ReadInput("Payment (cash/mpesa): ")
	if err != nil {
		return err
	}
	payment = strings.ToLower(payment)

	var phone string
	if payment == pos.PaymentMpesa {
		phone, err = c.readRequired("Customer phone: ")
		if err != nil {
			return err
		}
		// Платежный шлюз не подключен: оплата M-Pesa симулируется
		c.io.Println("Simulating M-Pesa payment...")
	}

	terminalID, err := c.metadata.GetTerminalID(ctx)
	if err != nil {
		return fmt.Errorf("failed to get terminal id: %w", err)
	}

	receipt, err := c.pos.Checkout(ctx, terminalID, cart, payment, phone)
	if err != nil {
		return c.explain(err)
	}

	c.io.Println()
	c.io.Println("✓ Sale completed!")
	c.io.Printf("Sale: #%d\n", receipt.SaleID)
	c.io.Printf("Total: %.2f (%s)\n", receipt.Total, receipt.Payment)
	c.io.Printf("Receipt: %s\n", receipt.Reference)

	return nil
}

func (c *Cli) printCart(cart []pos.CartItem) {
	if len(cart) == 0 {
		c.io.Println("Cart is empty.")
		return
	}

	c.io.Println()
	for _, item := range cart {
		c.io.Printf("%-28s %3d x %8.2f = %10.2f\n", item.Name, item.Quantity, item.Price, item.Total())
	}
	c.io.Printf("%-28s %27.2f\n", "TOTAL", pos.CartTotal(cart))
	c.io.Println()
}
