package session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	clientapi "github.com/dukahq/dukapos/internal/client/api"
	"github.com/dukahq/dukapos/internal/client/storage"
	"github.com/dukahq/dukapos/internal/client/storage/boltdb"
	"github.com/dukahq/dukapos/pkg/api"
)

// создаем тестовое BoltDB хранилище сессии
func newTestStorage(t *testing.T) *boltdb.Storage {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "session_test.db")
	store, err := boltdb.New(context.Background(), dbPath)
	require.NoError(t, err)

	t.Cleanup(func() {
		require.NoError(t, store.Close())
	})

	return store
}

// создаем клиент сессии поверх httptest сервера
func newTestSession(t *testing.T, serverURL string, store storage.SessionStorage) *Session {
	t.Helper()

	sess, err := New(context.Background(), clientapi.NewClient(serverURL), store)
	require.NoError(t, err)
	return sess
}

// loginHandler отвечает на /auth/login фиксированной парой токенов
func loginHandler(t *testing.T, tokens api.TokenResponse) http.HandlerFunc {
	t.Helper()

	return func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/login", r.URL.Path)
		_ = json.NewEncoder(w).Encode(tokens)
	}
}

var adminTokens = api.TokenResponse{
	AccessToken:  "A1",
	RefreshToken: "R1",
	User:         api.User{ID: 1, Username: "admin", Role: "admin"},
}

// TestSession_LoginRoundTrip: после успешного логина CurrentUser возвращает
// пользователя с ролью сервера, IsAuthenticated/IsAdmin отвечают верно
func TestSession_LoginRoundTrip(t *testing.T) {
	server := httptest.NewServer(loginHandler(t, adminTokens))
	defer server.Close()

	store := newTestStorage(t)
	sess := newTestSession(t, server.URL, store)
	ctx := context.Background()

	user, err := sess.Login(ctx, "admin", "secret")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "admin", user.Username)

	// Все три поля сохранены как единое целое
	stored, err := store.GetSession(ctx)
	require.NoError(t, err)
	assert.Equal(t, "A1", stored.AccessToken)
	assert.Equal(t, "R1", stored.RefreshToken)
	require.NotNil(t, stored.User)
	assert.Equal(t, api.RoleAdmin, stored.User.Role)

	assert.True(t, sess.IsAuthenticated(ctx))
	assert.True(t, sess.IsAdmin(ctx))
	assert.False(t, sess.IsCashier(ctx))
}

// TestSession_LoginFailure: неуспешный логин не трогает сохраненную сессию
func TestSession_LoginFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(api.ErrorResponse{Message: "invalid credentials"})
	}))
	defer server.Close()

	store := newTestStorage(t)
	ctx := context.Background()

	// Существующая сессия до неудачной попытки
	existing := &storage.SessionData{
		AccessToken:  "OLD",
		RefreshToken: "OLDR",
		User:         &api.User{ID: 2, Username: "cashier1", Role: "cashier"},
	}
	require.NoError(t, store.SaveSession(ctx, existing))

	sess := newTestSession(t, server.URL, store)

	_, err := sess.Login(ctx, "admin", "wrong")
	require.Error(t, err)

	var authErr *clientapi.AuthenticationError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, "invalid credentials", authErr.Message)

	// Старая сессия осталась нетронутой
	stored, err := store.GetSession(ctx)
	require.NoError(t, err)
	assert.Equal(t, "OLD", stored.AccessToken)
	assert.Equal(t, "OLDR", stored.RefreshToken)
}

// TestSession_Logout: выход очищает память и хранилище и уведомляет сервер
func TestSession_Logout(t *testing.T) {
	var logoutCalled atomic.Bool

	mux := http.NewServeMux()
	mux.HandleFunc("/auth/login", loginHandler(t, adminTokens))
	mux.HandleFunc("/auth/logout", func(w http.ResponseWriter, r *http.Request) {
		var req api.LogoutRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "R1", req.RefreshToken)
		logoutCalled.Store(true)
		w.WriteHeader(http.StatusNoContent)
	})

	server := httptest.NewServer(mux)
	defer server.Close()

	store := newTestStorage(t)
	sess := newTestSession(t, server.URL, store)
	ctx := context.Background()

	_, err := sess.Login(ctx, "admin", "secret")
	require.NoError(t, err)

	require.NoError(t, sess.Logout(ctx))
	assert.True(t, logoutCalled.Load())

	assert.Nil(t, sess.CurrentUser(ctx))
	assert.False(t, sess.IsAuthenticated(ctx))

	_, err = store.GetSession(ctx)
	assert.ErrorIs(t, err, storage.ErrSessionNotFound)
}

// TestSession_LogoutIdempotent: повторный выход и выход без сессии не падают
func TestSession_LogoutIdempotent(t *testing.T) {
	server := httptest.NewServer(loginHandler(t, adminTokens))
	defer server.Close()

	store := newTestStorage(t)
	sess := newTestSession(t, server.URL, store)
	ctx := context.Background()

	// Выход без активной сессии — no-op
	require.NoError(t, sess.Logout(ctx))
	require.NoError(t, sess.Logout(ctx))

	_, err := store.GetSession(ctx)
	assert.ErrorIs(t, err, storage.ErrSessionNotFound)
}

// TestSession_LogoutServerDown: недоступность сервера не мешает очистке
func TestSession_LogoutServerDown(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/login", loginHandler(t, adminTokens))
	mux.HandleFunc("/auth/logout", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	server := httptest.NewServer(mux)
	defer server.Close()

	store := newTestStorage(t)
	sess := newTestSession(t, server.URL, store)
	ctx := context.Background()

	_, err := sess.Login(ctx, "admin", "secret")
	require.NoError(t, err)

	// Ошибка уведомления проглатывается, локальное состояние чистится всегда
	require.NoError(t, sess.Logout(ctx))
	assert.False(t, sess.IsAuthenticated(ctx))
}

// TestSession_RefreshRetry: 401 с валидным refresh token обновляет только
// access token и повторяет исходный запрос ровно один раз
func TestSession_RefreshRetry(t *testing.T) {
	var refreshCalls, productCalls atomic.Int32

	mux := http.NewServeMux()
	mux.HandleFunc("/auth/login", loginHandler(t, adminTokens))
	mux.HandleFunc("/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		refreshCalls.Add(1)

		var req api.RefreshRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "R1", req.RefreshToken)

		_ = json.NewEncoder(w).Encode(api.RefreshResponse{AccessToken: "A2"})
	})
	mux.HandleFunc("/products", func(w http.ResponseWriter, r *http.Request) {
		productCalls.Add(1)
		if r.Header.Get("Authorization") != "Bearer A2" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode([]api.Product{{ID: 1, Name: "Soap", Barcode: "100"}})
	})

	server := httptest.NewServer(mux)
	defer server.Close()

	store := newTestStorage(t)
	sess := newTestSession(t, server.URL, store)
	ctx := context.Background()

	_, err := sess.Login(ctx, "admin", "secret")
	require.NoError(t, err)

	var products []api.Product
	require.NoError(t, sess.Request(ctx, "GET", "/products", nil, &products))
	require.Len(t, products, 1)
	assert.Equal(t, "Soap", products[0].Name)

	assert.Equal(t, int32(1), refreshCalls.Load())
	assert.Equal(t, int32(2), productCalls.Load())

	// Обновился только access token, refresh token и пользователь целы
	stored, err := store.GetSession(ctx)
	require.NoError(t, err)
	assert.Equal(t, "A2", stored.AccessToken)
	assert.Equal(t, "R1", stored.RefreshToken)
	require.NotNil(t, stored.User)
	assert.Equal(t, "admin", stored.User.Username)
	assert.Equal(t, "A2", sess.AccessToken())
}

// TestSession_AtMostOneRetry: повторный 401 после успешного refresh
// не приводит к зацикливанию — ровно один повтор на запрос
func TestSession_AtMostOneRetry(t *testing.T) {
	var refreshCalls, dataCalls atomic.Int32

	mux := http.NewServeMux()
	mux.HandleFunc("/auth/login", loginHandler(t, adminTokens))
	mux.HandleFunc("/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		refreshCalls.Add(1)
		_ = json.NewEncoder(w).Encode(api.RefreshResponse{AccessToken: "A2"})
	})
	mux.HandleFunc("/sales", func(w http.ResponseWriter, r *http.Request) {
		dataCalls.Add(1)
		// Сервер упорно отвечает 401 даже на свежий токен
		w.WriteHeader(http.StatusUnauthorized)
	})

	server := httptest.NewServer(mux)
	defer server.Close()

	store := newTestStorage(t)
	sess := newTestSession(t, server.URL, store)
	ctx := context.Background()

	_, err := sess.Login(ctx, "admin", "secret")
	require.NoError(t, err)

	err = sess.Request(ctx, "GET", "/sales", nil, nil)
	require.Error(t, err)

	var apiErr *clientapi.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)

	assert.Equal(t, int32(1), refreshCalls.Load())
	assert.Equal(t, int32(2), dataCalls.Load())
}

// TestSession_RefreshFailure: отвергнутый refresh token насильно завершает
// сессию — все три поля очищены, наружу уходит ErrSessionExpired
func TestSession_RefreshFailure(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/login", loginHandler(t, adminTokens))
	mux.HandleFunc("/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	mux.HandleFunc("/products", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	server := httptest.NewServer(mux)
	defer server.Close()

	store := newTestStorage(t)
	sess := newTestSession(t, server.URL, store)
	ctx := context.Background()

	_, err := sess.Login(ctx, "admin", "secret")
	require.NoError(t, err)

	err = sess.Request(ctx, "GET", "/products", nil, nil)
	require.ErrorIs(t, err, ErrSessionExpired)

	assert.False(t, sess.IsAuthenticated(ctx))
	assert.Nil(t, sess.CurrentUser(ctx))
	assert.Equal(t, "", sess.AccessToken())
	assert.False(t, sess.HasRefreshToken())

	_, err = store.GetSession(ctx)
	assert.ErrorIs(t, err, storage.ErrSessionNotFound)
}

// TestSession_NoRefreshTokenNo401Handling: без refresh token протокол
// обновления не запускается и сетевой вызов /auth/refresh не делается
func TestSession_NoRefreshTokenNo401Handling(t *testing.T) {
	var refreshCalls atomic.Int32

	mux := http.NewServeMux()
	mux.HandleFunc("/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		refreshCalls.Add(1)
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/products", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	server := httptest.NewServer(mux)
	defer server.Close()

	store := newTestStorage(t)
	ctx := context.Background()

	// Сессия с access token, но без refresh token
	require.NoError(t, store.SaveSession(ctx, &storage.SessionData{
		AccessToken: "A1",
		User:        &api.User{ID: 1, Username: "admin", Role: "admin"},
	}))

	sess := newTestSession(t, server.URL, store)

	err := sess.Request(ctx, "GET", "/products", nil, nil)
	require.Error(t, err)

	var apiErr *clientapi.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, int32(0), refreshCalls.Load())
}

// TestSession_RoleExactness: роль сравнивается строго, иерархии нет
func TestSession_RoleExactness(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer server.Close()

	store := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.SaveSession(ctx, &storage.SessionData{
		AccessToken:  "A1",
		RefreshToken: "R1",
		User:         &api.User{ID: 3, Username: "jane", Role: "cashier"},
	}))

	sess := newTestSession(t, server.URL, store)

	assert.True(t, sess.IsCashier(ctx))
	assert.False(t, sess.IsAdmin(ctx))
	assert.True(t, sess.HasRole(ctx, api.RoleCashier))
	assert.False(t, sess.HasRole(ctx, "Cashier")) // регистр важен

	// Без пользователя обе проверки дают false
	require.NoError(t, store.DeleteSession(ctx))
	assert.False(t, sess.IsAdmin(ctx))
	assert.False(t, sess.IsCashier(ctx))
}

// TestSession_TokenWithoutUser: токен без записи пользователя — это не
// рабочая сессия (защита от полузаписанного хранилища)
func TestSession_TokenWithoutUser(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer server.Close()

	store := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.SaveSession(ctx, &storage.SessionData{
		AccessToken:  "A1",
		RefreshToken: "R1",
	}))

	sess := newTestSession(t, server.URL, store)

	assert.Equal(t, "A1", sess.AccessToken())
	assert.False(t, sess.IsAuthenticated(ctx))
}

// TestSession_CurrentUserReadsStorage: CurrentUser читает хранилище на
// каждый вызов и видит записи, сделанные в обход памяти клиента
func TestSession_CurrentUserReadsStorage(t *testing.T) {
	server := httptest.NewServer(loginHandler(t, adminTokens))
	defer server.Close()

	store := newTestStorage(t)
	sess := newTestSession(t, server.URL, store)
	ctx := context.Background()

	_, err := sess.Login(ctx, "admin", "secret")
	require.NoError(t, err)
	require.Equal(t, api.RoleAdmin, sess.CurrentUser(ctx).Role)

	// Пишем в хранилище напрямую — клиент обязан увидеть новую запись
	require.NoError(t, store.SaveSession(ctx, &storage.SessionData{
		AccessToken:  "A1",
		RefreshToken: "R1",
		User:         &api.User{ID: 9, Username: "other", Role: "cashier"},
	}))

	user := sess.CurrentUser(ctx)
	require.NotNil(t, user)
	assert.Equal(t, "other", user.Username)
	assert.Equal(t, api.RoleCashier, user.Role)
}

// TestSession_CallerHeadersWin: заголовки вызывающего кода перекрывают
// заголовки пайплайна
func TestSession_CallerHeadersWin(t *testing.T) {
	var seenAuth string

	mux := http.NewServeMux()
	mux.HandleFunc("/auth/login", loginHandler(t, adminTokens))
	mux.HandleFunc("/export", func(w http.ResponseWriter, r *http.Request) {
		seenAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusOK)
	})

	server := httptest.NewServer(mux)
	defer server.Close()

	store := newTestStorage(t)
	sess := newTestSession(t, server.URL, store)
	ctx := context.Background()

	_, err := sess.Login(ctx, "admin", "secret")
	require.NoError(t, err)

	_, err = sess.Do(ctx, "GET", "/export", nil, map[string]string{
		"Authorization": "Basic export-key",
	})
	require.NoError(t, err)
	assert.Equal(t, "Basic export-key", seenAuth)
}

// TestSession_ConcurrentRefreshCoalesced: одновременные 401 сходятся в одну
// попытку refresh — все ожидающие получают ее результат
func TestSession_ConcurrentRefreshCoalesced(t *testing.T) {
	const workers = 5

	var refreshCalls atomic.Int32
	var barrier sync.WaitGroup
	barrier.Add(workers)

	mux := http.NewServeMux()
	mux.HandleFunc("/auth/login", loginHandler(t, adminTokens))
	mux.HandleFunc("/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		refreshCalls.Add(1)
		// Искусственно растягиваем refresh, чтобы все 401 успели встать
		// в очередь за одной попыткой
		time.Sleep(100 * time.Millisecond)
		_ = json.NewEncoder(w).Encode(api.RefreshResponse{AccessToken: "A2"})
	})
	mux.HandleFunc("/data", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") == "Bearer A2" {
			_, _ = w.Write([]byte(`{}`))
			return
		}
		// Держим первые ответы, пока не придут все запросы со старым токеном
		barrier.Done()
		barrier.Wait()
		w.WriteHeader(http.StatusUnauthorized)
	})

	server := httptest.NewServer(mux)
	defer server.Close()

	store := newTestStorage(t)
	sess := newTestSession(t, server.URL, store)
	ctx := context.Background()

	_, err := sess.Login(ctx, "admin", "secret")
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = sess.Request(ctx, "GET", "/data", nil, nil)
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		assert.NoError(t, err, "worker %d", i)
	}
	assert.Equal(t, int32(1), refreshCalls.Load())
}

// TestSession_New_RestoresFromStorage: новый процесс продолжает сессию
// из хранилища, а не стартует пустым
func TestSession_New_RestoresFromStorage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer server.Close()

	store := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.SaveSession(ctx, &storage.SessionData{
		AccessToken:  "A1",
		RefreshToken: "R1",
		User:         &api.User{ID: 1, Username: "admin", Role: "admin"},
	}))

	sess := newTestSession(t, server.URL, store)

	assert.Equal(t, "A1", sess.AccessToken())
	assert.True(t, sess.HasRefreshToken())
	assert.True(t, sess.IsAuthenticated(ctx))
}

// TestSession_NetworkErrorIsAPIError: отсутствие ответа — это APIError
// без статус-кода, не паника и не 401-ветка
func TestSession_NetworkErrorIsAPIError(t *testing.T) {
	store := newTestStorage(t)
	sess := newTestSession(t, "http://127.0.0.1:1", store)

	err := sess.Request(context.Background(), "GET", "/products", nil, nil)
	require.Error(t, err)

	var apiErr *clientapi.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 0, apiErr.StatusCode)
}
