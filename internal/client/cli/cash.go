package cli

import (
	"context"
	"fmt"

	"github.com/dukahq/dukapos/pkg/api"
)

func (c *Cli) runCash(ctx context.Context, args []string) error {
	if err := c.requireAuth(ctx); err != nil {
		return err
	}

	if len(args) == 0 {
		args = []string{"show"}
	}

	switch args[0] {
	case "show":
		return c.showCash(ctx)
	case "in":
		if len(args) < 2 {
			return fmt.Errorf("usage: dukapos cash in <amount>")
		}
		return c.moveCash(ctx, args[1], false)
	case "out":
		if len(args) < 2 {
			return fmt.Errorf("usage: dukapos cash out <amount>")
		}
		return c.moveCash(ctx, args[1], true)
	default:
		return fmt.Errorf("unknown cash subcommand: %s", args[0])
	}
}

func (c *Cli) showCash(ctx context.Context) error {
	register, err := c.pos.GetCashRegister(ctx)
	if err != nil {
		return c.explain(err)
	}

	c.io.Println("=== Cash Register ===")
	c.io.Printf("Balance:  %10.2f\n", register.Balance)
	c.io.Printf("Cash in:  %10.2f\n", register.CashIn)
	c.io.Printf("Cash out: %10.2f\n", register.CashOut)
	return nil
}

func (c *Cli) moveCash(ctx context.Context, arg string, out bool) error {
	amount, err := parseAmount(arg)
	if err != nil {
		return err
	}

	movement := api.CashMovement{CashIn: amount}
	if out {
		movement = api.CashMovement{CashOut: amount}
	}

	register, err := c.pos.UpdateCashRegister(ctx, movement)
	if err != nil {
		return c.explain(err)
	}

	c.io.Printf("✓ Recorded. Balance: %.2f\n", register.Balance)
	return nil
}
