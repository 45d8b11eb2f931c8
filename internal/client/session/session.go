package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"golang.org/x/sync/singleflight"

	clientapi "github.com/dukahq/dukapos/internal/client/api"
	"github.com/dukahq/dukapos/internal/client/storage"
	"github.com/dukahq/dukapos/pkg/api"
)

// Session — клиент сессии: единственная точка, через которую остальной код
// ходит к backend API с авторизацией. Владеет парой токенов в памяти и в
// durable storage, прозрачно обновляет access token по 401 и отвечает на
// вопросы "кто залогинен и с какой ролью".
//
// Состояние сессии пишут только Login, Logout и протокол refresh;
// все остальные только читают.
type Session struct {
	api   *clientapi.Client
	store storage.SessionStorage

	mu           sync.RWMutex
	accessToken  string
	refreshToken string

	// Конкурентные 401 сходятся в одну попытку refresh:
	// первый завершившийся будит всех ожидающих
	refreshGroup singleflight.Group
}

// New создает клиент сессии и восстанавливает токены из хранилища.
// Отсутствие сохраненной сессии не является ошибкой — клиент просто
// стартует анонимным.
func New(ctx context.Context, apiClient *clientapi.Client, store storage.SessionStorage) (*Session, error) {
	s := &Session{
		api:   apiClient,
		store: store,
	}

	stored, err := store.GetSession(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrSessionNotFound) {
			return s, nil
		}
		return nil, fmt.Errorf("failed to restore session: %w", err)
	}

	s.accessToken = stored.AccessToken
	s.refreshToken = stored.RefreshToken

	return s, nil
}

// Login выполняет аутентификацию и сохраняет новую сессию.
// Существующая сессия перезаписывается целиком; при неуспехе
// сохраненное состояние не меняется.
func (s *Session) Login(ctx context.Context, username, password string) (*api.User, error) {
	tokens, err := s.api.Login(ctx, api.LoginRequest{
		Username: username,
		Password: password,
	})
	if err != nil {
		return nil, err
	}

	user := tokens.User

	// Все три поля пишутся в хранилище одной транзакцией
	data := &storage.SessionData{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		User:         &user,
	}
	if err := s.store.SaveSession(ctx, data); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	s.mu.Lock()
	s.accessToken = tokens.AccessToken
	s.refreshToken = tokens.RefreshToken
	s.mu.Unlock()

	return &user, nil
}

// Logout выполняет выход из системы.
// Уведомление сервера — best effort: недоступность backend не должна
// мешать очистке локального состояния. Идемпотентен.
func (s *Session) Logout(ctx context.Context) error {
	s.mu.RLock()
	accessToken := s.accessToken
	refreshToken := s.refreshToken
	s.mu.RUnlock()

	if refreshToken != "" {
		if err := s.api.Logout(ctx, accessToken, refreshToken); err != nil {
			// Не прерываем процесс, если сервер недоступен
			slog.Warn("failed to logout on server", "error", err)
		}
	}

	return s.clear(ctx)
}

// CurrentUser возвращает залогиненного пользователя или nil.
// Каждый вызов читает durable storage, а не память: состояние всегда
// согласовано с последней записью любого кода. Битая или отсутствующая
// запись означает "сессии нет", а не ошибку.
func (s *Session) CurrentUser(ctx context.Context) *api.User {
	user, err := s.store.GetUser(ctx)
	if err != nil {
		if !errors.Is(err, storage.ErrSessionNotFound) {
			slog.Debug("failed to read user record", "error", err)
		}
		return nil
	}
	return user
}

// IsAuthenticated reports whether a usable session exists.
// Требуются оба условия: access token в памяти и читаемая запись
// пользователя. Токен без пользователя — это полузаписанное хранилище,
// такую сессию мы не считаем рабочей.
func (s *Session) IsAuthenticated(ctx context.Context) bool {
	s.mu.RLock()
	hasToken := s.accessToken != ""
	s.mu.RUnlock()

	return hasToken && s.CurrentUser(ctx) != nil
}

// HasRole reports whether the current user has exactly the given role.
// Сравнение строгое: иерархии ролей нет.
func (s *Session) HasRole(ctx context.Context, role string) bool {
	user := s.CurrentUser(ctx)
	return user != nil && user.Role == role
}

// IsAdmin reports whether the current user is an administrator
func (s *Session) IsAdmin(ctx context.Context) bool {
	return s.HasRole(ctx, api.RoleAdmin)
}

// IsCashier reports whether the current user is a cashier
func (s *Session) IsCashier(ctx context.Context) bool {
	return s.HasRole(ctx, api.RoleCashier)
}

// AccessToken возвращает текущий access token (пустая строка — нет токена)
func (s *Session) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken
}

// HasRefreshToken reports whether a refresh token is held
func (s *Session) HasRefreshToken() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refreshToken != ""
}

// Do выполняет авторизованный запрос к backend API.
//
// Пайплайн: собрать URL, навесить Content-Type и bearer, выполнить запрос;
// на 401 при наличии refresh token — обновить access token и повторить
// исходный запрос ровно один раз; если refresh провалился — очистить сессию
// и вернуть ErrSessionExpired. Любой другой не-2xx превращается в *APIError.
// Заголовки вызывающего кода накладываются поверх и выигрывают при конфликте.
func (s *Session) Do(
	ctx context.Context,
	method, endpoint string,
	body []byte,
	headers map[string]string,
) (*clientapi.Response, error) {
	resp, err := s.api.Do(ctx, method, endpoint, body, s.composeHeaders(headers))
	if err != nil {
		// Ответа не было вовсе — статус-кода нет
		return nil, &clientapi.APIError{Message: err.Error()}
	}

	if resp.StatusCode == http.StatusUnauthorized && s.HasRefreshToken() {
		if !s.refresh(ctx) {
			// Продлить сессию не удалось: чистим состояние без
			// уведомления сервера и отдаем вызывающему сигнал
			// отправить пользователя на логин
			if err := s.clear(ctx); err != nil {
				slog.Warn("failed to clear expired session", "error", err)
			}
			return nil, ErrSessionExpired
		}

		// Повторяем исходный запрос с новым токеном, не более одного раза
		resp, err = s.api.Do(ctx, method, endpoint, body, s.composeHeaders(headers))
		if err != nil {
			return nil, &clientapi.APIError{Message: err.Error()}
		}
	}

	if !resp.OK() {
		return nil, &clientapi.APIError{
			StatusCode: resp.StatusCode,
			Message:    resp.ErrorMessage(),
		}
	}

	return resp, nil
}

// Request — удобная обертка над Do: сериализует тело запроса и
// декодирует успешный ответ в result (result == nil — тело не нужно)
func (s *Session) Request(ctx context.Context, method, endpoint string, reqBody, result any) error {
	var body []byte
	if reqBody != nil {
		data, err := json.Marshal(reqBody)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		body = data
	}

	resp, err := s.Do(ctx, method, endpoint, body, nil)
	if err != nil {
		return err
	}

	if result != nil {
		return resp.Decode(result)
	}

	return nil
}

// composeHeaders собирает заголовки запроса: bearer при наличии токена,
// затем заголовки вызывающего кода поверх
func (s *Session) composeHeaders(callerHeaders map[string]string) map[string]string {
	headers := map[string]string{}

	if token := s.AccessToken(); token != "" {
		headers["Authorization"] = "Bearer " + token
	}
	for k, v := range callerHeaders {
		headers[k] = v
	}

	return headers
}

// refresh выполняет протокол обновления access token.
// Никогда не возвращает ошибку наружу — только успех/неуспех: вызывающий
// (Do) сам решает между повтором запроса и завершением сессии.
// Конкурентные вызовы делят одну попытку через singleflight.
func (s *Session) refresh(ctx context.Context) bool {
	result, _, _ := s.refreshGroup.Do("refresh", func() (any, error) {
		s.mu.RLock()
		refreshToken := s.refreshToken
		s.mu.RUnlock()

		// Без refresh token нет и сетевого вызова
		if refreshToken == "" {
			return false, nil
		}

		resp, err := s.api.Refresh(ctx, refreshToken)
		if err != nil {
			slog.Debug("token refresh failed", "error", err)
			return false, nil
		}

		// Обновляется только access token: refresh token и запись
		// пользователя не трогаем
		if err := s.store.SetAccessToken(ctx, resp.AccessToken); err != nil {
			slog.Warn("failed to persist refreshed access token", "error", err)
		}

		s.mu.Lock()
		s.accessToken = resp.AccessToken
		s.mu.Unlock()

		return true, nil
	})

	ok, _ := result.(bool)
	return ok
}

// clear удаляет сессию из памяти и из хранилища
func (s *Session) clear(ctx context.Context) error {
	s.mu.Lock()
	s.accessToken = ""
	s.refreshToken = ""
	s.mu.Unlock()

	if err := s.store.DeleteSession(ctx); err != nil {
		return fmt.Errorf("failed to delete session data: %w", err)
	}

	return nil
}
