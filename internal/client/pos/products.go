package pos

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/dukahq/dukapos/pkg/api"
)

// GetProducts возвращает весь каталог товаров
func (s *Service) GetProducts(ctx context.Context) ([]api.Product, error) {
	var products []api.Product
	if err := s.pipeline.Request(ctx, http.MethodGet, "/products", nil, &products); err != nil {
		return nil, fmt.Errorf("get products: %w", err)
	}
	return products, nil
}

// GetProductByBarcode возвращает товар по штрихкоду
func (s *Service) GetProductByBarcode(ctx context.Context, barcode string) (*api.Product, error) {
	var product api.Product
	endpoint := "/products/barcode/" + url.PathEscape(barcode)
	if err := s.pipeline.Request(ctx, http.MethodGet, endpoint, nil, &product); err != nil {
		return nil, fmt.Errorf("get product by barcode: %w", err)
	}
	return &product, nil
}

// SearchProducts выполняет поиск товаров по названию/штрихкоду
func (s *Service) SearchProducts(ctx context.Context, query string) ([]api.Product, error) {
	var products []api.Product
	endpoint := "/products/search?q=" + url.QueryEscape(query)
	if err := s.pipeline.Request(ctx, http.MethodGet, endpoint, nil, &products); err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}
	return products, nil
}

// CreateProduct создает новый товар
func (s *Service) CreateProduct(ctx context.Context, product api.Product) (*api.Product, error) {
	var created api.Product
	if err := s.pipeline.Request(ctx, http.MethodPost, "/products", product, &created); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	return &created, nil
}

// UpdateProduct обновляет существующий товар
func (s *Service) UpdateProduct(ctx context.Context, id int64, product api.Product) (*api.Product, error) {
	var updated api.Product
	endpoint := fmt.Sprintf("/products/%d", id)
	if err := s.pipeline.Request(ctx, http.MethodPut, endpoint, product, &updated); err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}
	return &updated, nil
}

// DeleteProduct удаляет товар
func (s *Service) DeleteProduct(ctx context.Context, id int64) error {
	endpoint := fmt.Sprintf("/products/%d", id)
	if err := s.pipeline.Request(ctx, http.MethodDelete, endpoint, nil, nil); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

// AdjustStock корректирует остаток товара (приемка, списание, инвентаризация)
func (s *Service) AdjustStock(ctx context.Context, productID int64, adj api.StockAdjustment) (*api.Product, error) {
	var updated api.Product
	endpoint := fmt.Sprintf("/products/%d/adjust-stock", productID)
	if err := s.pipeline.Request(ctx, http.MethodPost, endpoint, adj, &updated); err != nil {
		return nil, fmt.Errorf("adjust stock: %w", err)
	}
	return &updated, nil
}
