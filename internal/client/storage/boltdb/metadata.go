package boltdb

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.etcd.io/bbolt"
)

var keyTerminalID = []byte("terminal_id")

// GetTerminalID returns the persistent terminal ID, generating one on first call.
// ID уникален для каждого физического терминала и попадает в ссылки чеков.
func (s *Storage) GetTerminalID(ctx context.Context) (string, error) {
	var terminalID string

	err := s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketMetadata)
		if bucket == nil {
			return fmt.Errorf("metadata bucket not found")
		}

		if data := bucket.Get(keyTerminalID); data != nil {
			terminalID = string(data)
			return nil
		}

		// Первый запуск на этом терминале — генерируем новый ID
		terminalID = uuid.New().String()
		if err := bucket.Put(keyTerminalID, []byte(terminalID)); err != nil {
			return fmt.Errorf("failed to save terminal id: %w", err)
		}

		return nil
	})

	if err != nil {
		return "", err
	}

	return terminalID, nil
}
