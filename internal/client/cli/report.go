package cli

import (
	"context"
	"time"

	"github.com/dukahq/dukapos/internal/client/reports"
)

// runReport выводит дашборд администратора: метрики считаются на клиенте
// из загруженных продаж и каталога, как это делал веб-дашборд
func (c *Cli) runReport(ctx context.Context) error {
	if err := c.requireAdmin(ctx); err != nil {
		return err
	}

	sales, err := c.pos.GetSales(ctx)
	if err != nil {
		return c.explain(err)
	}
	products, err := c.pos.GetProducts(ctx)
	if err != nil {
		return c.explain(err)
	}
	register, err := c.pos.GetCashRegister(ctx)
	if err != nil {
		return c.explain(err)
	}

	today := reports.Daily(sales, time.Now())
	low := reports.LowStock(products)
	popular := reports.Popular(products, 5)

	c.io.Println("=== Sales Dashboard ===")
	c.io.Println()
	c.io.Printf("Today's revenue:      %10.2f\n", today.Revenue)
	c.io.Printf("Today's transactions: %10d\n", today.Transactions)
	c.io.Printf("Cash balance:         %10.2f\n", register.Balance)
	c.io.Printf("Low stock items:      %10d\n", len(low))

	if len(popular) > 0 {
		c.io.Println()
		c.io.Println("Top products:")
		for i, p := range popular {
			c.io.Printf("  %d. %-28s %5d sold  %10.2f\n", i+1, p.Name, p.Sales, p.Revenue)
		}
	}

	if len(low) > 0 {
		c.io.Println()
		c.io.Println("Low stock:")
		for _, level := range reports.StockLevels(low) {
			c.io.Printf("  %-28s %4d/%d (%s)\n", level.Product, level.Current, level.Minimum, level.Status)
		}
	}

	return nil
}
