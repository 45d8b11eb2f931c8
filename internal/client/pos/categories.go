package pos

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dukahq/dukapos/pkg/api"
)

// GetCategories возвращает все категории товаров
func (s *Service) GetCategories(ctx context.Context) ([]api.Category, error) {
	var categories []api.Category
	if err := s.pipeline.Request(ctx, http.MethodGet, "/categories", nil, &categories); err != nil {
		return nil, fmt.Errorf("get categories: %w", err)
	}
	return categories, nil
}

// CreateCategory создает новую категорию
func (s *Service) CreateCategory(ctx context.Context, category api.Category) (*api.Category, error) {
	var created api.Category
	if err := s.pipeline.Request(ctx, http.MethodPost, "/categories", category, &created); err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return &created, nil
}

// UpdateCategory обновляет категорию
func (s *Service) UpdateCategory(ctx context.Context, id int64, category api.Category) (*api.Category, error) {
	var updated api.Category
	endpoint := fmt.Sprintf("/categories/%d", id)
	if err := s.pipeline.Request(ctx, http.MethodPut, endpoint, category, &updated); err != nil {
		return nil, fmt.Errorf("update category: %w", err)
	}
	return &updated, nil
}

// DeleteCategory удаляет категорию
func (s *Service) DeleteCategory(ctx context.Context, id int64) error {
	endpoint := fmt.Sprintf("/categories/%d", id)
	if err := s.pipeline.Request(ctx, http.MethodDelete, endpoint, nil, nil); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}
