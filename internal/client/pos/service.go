package pos

import (
	"context"

	clientapi "github.com/dukahq/dukapos/internal/client/api"
)

// Pipeline — авторизованный канал к backend API.
// Единственная реализация — session.Session; интерфейс нужен, чтобы
// в тестах подменять пайплайн моком.
type Pipeline interface {
	Do(ctx context.Context, method, endpoint string, body []byte, headers map[string]string) (*clientapi.Response, error)
	Request(ctx context.Context, method, endpoint string, reqBody, result any) error
}

// Service предоставляет доступ к бизнес-ресурсам backend API.
// Все вызовы идут через пайплайн сессии: напрямую к авторизованным
// endpoint никто не ходит.
type Service struct {
	pipeline Pipeline
}

// NewService создает новый сервис ресурсов
func NewService(pipeline Pipeline) *Service {
	return &Service{pipeline: pipeline}
}
