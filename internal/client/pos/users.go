package pos

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dukahq/dukapos/pkg/api"
)

// GetUsers возвращает все учетные записи (только для администратора)
func (s *Service) GetUsers(ctx context.Context) ([]api.UserAccount, error) {
	var users []api.UserAccount
	if err := s.pipeline.Request(ctx, http.MethodGet, "/users", nil, &users); err != nil {
		return nil, fmt.Errorf("get users: %w", err)
	}
	return users, nil
}

// CreateUser создает новую учетную запись
func (s *Service) CreateUser(ctx context.Context, user api.UserAccount) (*api.UserAccount, error) {
	var created api.UserAccount
	if err := s.pipeline.Request(ctx, http.MethodPost, "/users", user, &created); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return &created, nil
}

// UpdateUser обновляет учетную запись
func (s *Service) UpdateUser(ctx context.Context, id int64, user api.UserAccount) (*api.UserAccount, error) {
	var updated api.UserAccount
	endpoint := fmt.Sprintf("/users/%d", id)
	if err := s.pipeline.Request(ctx, http.MethodPut, endpoint, user, &updated); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return &updated, nil
}

// DeleteUser удаляет учетную запись
func (s *Service) DeleteUser(ctx context.Context, id int64) error {
	endpoint := fmt.Sprintf("/users/%d", id)
	if err := s.pipeline.Request(ctx, http.MethodDelete, endpoint, nil, nil); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}
