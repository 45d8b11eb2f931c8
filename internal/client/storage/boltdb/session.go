package boltdb

import (
	"context"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/dukahq/dukapos/internal/client/storage"
	"github.com/dukahq/dukapos/pkg/api"
)

// Ключи внутри session bucket. Ровно три записи, как в localStorage
// исходного веб-клиента.
var (
	keyAccessToken  = []byte("accessToken")
	keyRefreshToken = []byte("refreshToken")
	keyUser         = []byte("user")
)

// SaveSession writes all three session fields in a single transaction
func (s *Storage) SaveSession(ctx context.Context, session *storage.SessionData) error {
	if session == nil {
		return fmt.Errorf("session data is nil")
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketSession)
		if bucket == nil {
			return fmt.Errorf("session bucket not found")
		}

		// Токены: пустое значение означает отсутствие записи
		if err := putOrDelete(bucket, keyAccessToken, []byte(session.AccessToken)); err != nil {
			return fmt.Errorf("failed to save access token: %w", err)
		}
		if err := putOrDelete(bucket, keyRefreshToken, []byte(session.RefreshToken)); err != nil {
			return fmt.Errorf("failed to save refresh token: %w", err)
		}

		// Пользователь сериализуется в JSON
		if session.User == nil {
			if err := bucket.Delete(keyUser); err != nil {
				return fmt.Errorf("failed to clear user record: %w", err)
			}
			return nil
		}

		data, err := json.Marshal(session.User)
		if err != nil {
			return fmt.Errorf("failed to marshal user record: %w", err)
		}
		if err := bucket.Put(keyUser, data); err != nil {
			return fmt.Errorf("failed to save user record: %w", err)
		}

		return nil
	})
}

// GetSession retrieves stored session data.
// Партично заполненная сессия (например, только refresh token) валидна;
// ErrSessionNotFound возвращается, только если нет ни одной записи.
func (s *Storage) GetSession(ctx context.Context) (*storage.SessionData, error) {
	var session *storage.SessionData

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketSession)
		if bucket == nil {
			return fmt.Errorf("session bucket not found")
		}

		access := bucket.Get(keyAccessToken)
		refresh := bucket.Get(keyRefreshToken)
		userData := bucket.Get(keyUser)

		if access == nil && refresh == nil && userData == nil {
			return storage.ErrSessionNotFound
		}

		session = &storage.SessionData{
			AccessToken:  string(access),
			RefreshToken: string(refresh),
		}

		if userData != nil {
			user := &api.User{}
			if err := json.Unmarshal(userData, user); err == nil {
				session.User = user
			}
			// Битая запись пользователя приравнивается к ее отсутствию
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return session, nil
}

// SetAccessToken replaces only the stored access token
func (s *Storage) SetAccessToken(ctx context.Context, token string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketSession)
		if bucket == nil {
			return fmt.Errorf("session bucket not found")
		}

		if err := putOrDelete(bucket, keyAccessToken, []byte(token)); err != nil {
			return fmt.Errorf("failed to save access token: %w", err)
		}

		return nil
	})
}

// GetUser retrieves and decodes the stored user record
func (s *Storage) GetUser(ctx context.Context) (*api.User, error) {
	var user *api.User

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketSession)
		if bucket == nil {
			return fmt.Errorf("session bucket not found")
		}

		data := bucket.Get(keyUser)
		if data == nil {
			return storage.ErrSessionNotFound
		}

		user = &api.User{}
		if err := json.Unmarshal(data, user); err != nil {
			// Запись не парсится — считаем, что сессии нет
			return storage.ErrSessionNotFound
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return user, nil
}

// DeleteSession removes all session entries (logout)
func (s *Storage) DeleteSession(ctx context.Context) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketSession)
		if bucket == nil {
			return fmt.Errorf("session bucket not found")
		}

		// Удаление отсутствующих ключей не является ошибкой:
		// logout обязан быть идемпотентным
		for _, key := range [][]byte{keyAccessToken, keyRefreshToken, keyUser} {
			if err := bucket.Delete(key); err != nil {
				return fmt.Errorf("failed to delete %s: %w", key, err)
			}
		}

		return nil
	})
}

// putOrDelete сохраняет значение либо удаляет ключ, если значение пустое
func putOrDelete(bucket *bbolt.Bucket, key, value []byte) error {
	if len(value) == 0 {
		return bucket.Delete(key)
	}
	return bucket.Put(key, value)
}
