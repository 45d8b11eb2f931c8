package boltdb

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.etcd.io/bbolt"

	"github.com/dukahq/dukapos/internal/client/storage"
	"github.com/dukahq/dukapos/pkg/api"
)

// создаем тестовое BoltDB хранилище
func createTestStorage(t *testing.T) *Storage {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "session_test.db")

	store, err := New(context.Background(), dbPath)
	require.NoError(t, err)
	require.NotNil(t, store)

	t.Cleanup(func() {
		require.NoError(t, store.Close())
	})

	return store
}

func TestStorage_SaveGetDeleteSession(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)

	session := &storage.SessionData{
		AccessToken:  "A1",
		RefreshToken: "R1",
		User:         &api.User{ID: 1, Username: "admin", Role: "admin"},
	}

	// До сохранения GetSession выдает ErrSessionNotFound
	_, err := store.GetSession(ctx)
	assert.ErrorIs(t, err, storage.ErrSessionNotFound)

	// Сохраняем сессию
	require.NoError(t, store.SaveSession(ctx, session))

	// Читаем и сравниваем
	got, err := store.GetSession(ctx)
	require.NoError(t, err)
	assert.Equal(t, "A1", got.AccessToken)
	assert.Equal(t, "R1", got.RefreshToken)
	require.NotNil(t, got.User)
	assert.Equal(t, int64(1), got.User.ID)
	assert.Equal(t, "admin", got.User.Username)
	assert.Equal(t, "admin", got.User.Role)

	// Удаляем
	require.NoError(t, store.DeleteSession(ctx))

	_, err = store.GetSession(ctx)
	assert.ErrorIs(t, err, storage.ErrSessionNotFound)
}

// TestStorage_DeleteSessionIdempotent: повторное и "пустое" удаление
// не являются ошибкой
func TestStorage_DeleteSessionIdempotent(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)

	require.NoError(t, store.DeleteSession(ctx))
	require.NoError(t, store.DeleteSession(ctx))
}

// TestStorage_PartialSession: отсутствие access token не означает
// отсутствие refresh token
func TestStorage_PartialSession(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)

	require.NoError(t, store.SaveSession(ctx, &storage.SessionData{
		RefreshToken: "R1",
	}))

	got, err := store.GetSession(ctx)
	require.NoError(t, err)
	assert.Equal(t, "", got.AccessToken)
	assert.Equal(t, "R1", got.RefreshToken)
	assert.Nil(t, got.User)

	// Пользователя нет — GetUser сообщает об отсутствии сессии
	_, err = store.GetUser(ctx)
	assert.ErrorIs(t, err, storage.ErrSessionNotFound)
}

// TestStorage_SetAccessToken: refresh меняет только access token
func TestStorage_SetAccessToken(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)

	require.NoError(t, store.SaveSession(ctx, &storage.SessionData{
		AccessToken:  "A1",
		RefreshToken: "R1",
		User:         &api.User{ID: 1, Username: "admin", Role: "admin"},
	}))

	require.NoError(t, store.SetAccessToken(ctx, "A2"))

	got, err := store.GetSession(ctx)
	require.NoError(t, err)
	assert.Equal(t, "A2", got.AccessToken)
	assert.Equal(t, "R1", got.RefreshToken)
	require.NotNil(t, got.User)
	assert.Equal(t, "admin", got.User.Username)
}

// TestStorage_SaveSessionOverwrites: логин перезаписывает сессию целиком
func TestStorage_SaveSessionOverwrites(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)

	require.NoError(t, store.SaveSession(ctx, &storage.SessionData{
		AccessToken:  "A1",
		RefreshToken: "R1",
		User:         &api.User{ID: 1, Username: "admin", Role: "admin"},
	}))

	// Новая сессия без пользователя должна убрать старую запись user
	require.NoError(t, store.SaveSession(ctx, &storage.SessionData{
		AccessToken:  "B1",
		RefreshToken: "B2",
	}))

	got, err := store.GetSession(ctx)
	require.NoError(t, err)
	assert.Equal(t, "B1", got.AccessToken)
	assert.Equal(t, "B2", got.RefreshToken)
	assert.Nil(t, got.User)
}

// TestStorage_CorruptUserRecord: битая запись пользователя читается как
// отсутствие сессии, а не как ошибка
func TestStorage_CorruptUserRecord(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)

	require.NoError(t, store.SaveSession(ctx, &storage.SessionData{
		AccessToken:  "A1",
		RefreshToken: "R1",
		User:         &api.User{ID: 1, Username: "admin", Role: "admin"},
	}))

	// Портим запись напрямую в BoltDB
	require.NoError(t, store.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketSession).Put(keyUser, []byte("{not json"))
	}))

	_, err := store.GetUser(ctx)
	assert.ErrorIs(t, err, storage.ErrSessionNotFound)

	// GetSession при этом возвращает токены, но без пользователя
	got, err := store.GetSession(ctx)
	require.NoError(t, err)
	assert.Equal(t, "A1", got.AccessToken)
	assert.Nil(t, got.User)
}

// TestStorage_GetTerminalID: ID терминала генерируется один раз
// и переживает обращения
func TestStorage_GetTerminalID(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)

	first, err := store.GetTerminalID(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, first)

	second, err := store.GetTerminalID(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
