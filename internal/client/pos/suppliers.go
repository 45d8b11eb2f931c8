package pos

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dukahq/dukapos/pkg/api"
)

// GetSuppliers возвращает всех поставщиков
func (s *Service) GetSuppliers(ctx context.Context) ([]api.Supplier, error) {
	var suppliers []api.Supplier
	if err := s.pipeline.Request(ctx, http.MethodGet, "/suppliers", nil, &suppliers); err != nil {
		return nil, fmt.Errorf("get suppliers: %w", err)
	}
	return suppliers, nil
}

// CreateSupplier создает нового поставщика
func (s *Service) CreateSupplier(ctx context.Context, supplier api.Supplier) (*api.Supplier, error) {
	var created api.Supplier
	if err := s.pipeline.Request(ctx, http.MethodPost, "/suppliers", supplier, &created); err != nil {
		return nil, fmt.Errorf("create supplier: %w", err)
	}
	return &created, nil
}

// UpdateSupplier обновляет данные поставщика
func (s *Service) UpdateSupplier(ctx context.Context, id int64, supplier api.Supplier) (*api.Supplier, error) {
	var updated api.Supplier
	endpoint := fmt.Sprintf("/suppliers/%d", id)
	if err := s.pipeline.Request(ctx, http.MethodPut, endpoint, supplier, &updated); err != nil {
		return nil, fmt.Errorf("update supplier: %w", err)
	}
	return &updated, nil
}

// DeleteSupplier удаляет поставщика
func (s *Service) DeleteSupplier(ctx context.Context, id int64) error {
	endpoint := fmt.Sprintf("/suppliers/%d", id)
	if err := s.pipeline.Request(ctx, http.MethodDelete, endpoint, nil, nil); err != nil {
		return fmt.Errorf("delete supplier: %w", err)
	}
	return nil
}
