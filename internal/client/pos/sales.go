package pos

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dukahq/dukapos/pkg/api"
)

// GetSales возвращает все продажи
func (s *Service) GetSales(ctx context.Context) ([]api.Sale, error) {
	var sales []api.Sale
	if err := s.pipeline.Request(ctx, http.MethodGet, "/sales", nil, &sales); err != nil {
		return nil, fmt.Errorf("get sales: %w", err)
	}
	return sales, nil
}

// CreateSale создает новый чек с итоговой суммой
func (s *Service) CreateSale(ctx context.Context, totalAmount float64) (*api.Sale, error) {
	var created api.Sale
	sale := api.Sale{TotalAmount: totalAmount}
	if err := s.pipeline.Request(ctx, http.MethodPost, "/sales", sale, &created); err != nil {
		return nil, fmt.Errorf("create sale: %w", err)
	}
	return &created, nil
}

// CreateSaleDetail добавляет позицию к чеку
func (s *Service) CreateSaleDetail(ctx context.Context, detail api.SaleDetail) (*api.SaleDetail, error) {
	var created api.SaleDetail
	if err := s.pipeline.Request(ctx, http.MethodPost, "/sales/details", detail, &created); err != nil {
		return nil, fmt.Errorf("create sale detail: %w", err)
	}
	return &created, nil
}

// GetCashRegister возвращает состояние кассы
func (s *Service) GetCashRegister(ctx context.Context) (*api.CashRegister, error) {
	var register api.CashRegister
	if err := s.pipeline.Request(ctx, http.MethodGet, "/cash", nil, &register); err != nil {
		return nil, fmt.Errorf("get cash register: %w", err)
	}
	return &register, nil
}

// UpdateCashRegister записывает приход или расход наличных
func (s *Service) UpdateCashRegister(ctx context.Context, movement api.CashMovement) (*api.CashRegister, error) {
	var register api.CashRegister
	if err := s.pipeline.Request(ctx, http.MethodPost, "/cash", movement, &register); err != nil {
		return nil, fmt.Errorf("update cash register: %w", err)
	}
	return &register, nil
}
