// Package reports считает производные метрики дашборда из уже загруженных
// данных backend API. Все функции чистые: сеть и состояние — забота
// вызывающего кода.
package reports

import (
	"sort"
	"time"

	"github.com/dukahq/dukapos/pkg/api"
)

// Пороги остатков по умолчанию, когда товар не задает свой minStock
const (
	DefaultLowStockThreshold = 10
	DefaultMinimumStock      = 20
)

// DailySummary представляет сводку продаж за один день
type DailySummary struct {
	Revenue      float64 // сумма чеков за день
	Transactions int     // количество чеков за день
}

// Daily возвращает выручку и количество транзакций за календарный день day
func Daily(sales []api.Sale, day time.Time) DailySummary {
	var summary DailySummary

	y, m, d := day.Date()
	for _, sale := range sales {
		sy, sm, sd := sale.CreatedAt.Date()
		if sy == y && sm == m && sd == d {
			summary.Revenue += sale.TotalAmount
			summary.Transactions++
		}
	}

	return summary
}

// LowStock возвращает товары с остатком не выше порога.
// Порог — minStock товара, либо DefaultLowStockThreshold, если он не задан.
func LowStock(products []api.Product) []api.Product {
	var low []api.Product

	for _, p := range products {
		threshold := p.MinStock
		if threshold == 0 {
			threshold = DefaultLowStockThreshold
		}
		if p.Stock <= threshold {
			low = append(low, p)
		}
	}

	return low
}

// PopularProduct представляет строку рейтинга продаж
type PopularProduct struct {
	Name    string
	Sales   int     // продано единиц
	Revenue float64 // выручка по товару
}

// Popular возвращает топ-n товаров по количеству проданных единиц
func Popular(products []api.Product, n int) []PopularProduct {
	sorted := make([]api.Product, len(products))
	copy(sorted, products)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Sales > sorted[j].Sales
	})

	if n > len(sorted) {
		n = len(sorted)
	}

	popular := make([]PopularProduct, 0, n)
	for _, p := range sorted[:n] {
		popular = append(popular, PopularProduct{
			Name:    p.Name,
			Sales:   p.Sales,
			Revenue: float64(p.Sales) * p.Price,
		})
	}

	return popular
}

// Статусы остатков
const (
	StockGood     = "good"
	StockLow      = "low"
	StockCritical = "critical" // остаток не выше половины минимума
)

// StockLevel представляет состояние остатка одного товара
type StockLevel struct {
	Product string
	Status  string
	Current int
	Minimum int
}

// StockLevels возвращает состояние остатков по каждому товару
func StockLevels(products []api.Product) []StockLevel {
	levels := make([]StockLevel, 0, len(products))

	for _, p := range products {
		minimum := p.MinStock
		if minimum == 0 {
			minimum = DefaultMinimumStock
		}

		status := StockGood
		switch {
		case p.Stock*2 <= minimum:
			status = StockCritical
		case p.Stock <= minimum:
			status = StockLow
		}

		levels = append(levels, StockLevel{
			Product: p.Name,
			Current: p.Stock,
			Minimum: minimum,
			Status:  status,
		})
	}

	return levels
}
