package storage

import (
	"fmt"

	"keyshop-bot/internal/domain"
)

// Key format: 10 uppercase letters, a colon, 8 lowercase alphanumerics.
const (
	keyUpperLen = 10
	keyLowerLen = 8
)

func newKey() string {
	return randFrom(upperChars, keyUpperLen) + ":" + randFrom(lowerDigits, keyLowerLen)
}

// GenerateKeys appends count fresh tokens to the seller's queue and returns
// the batch in generation order.
func (db *FileDB) GenerateKeys(sellerID string, count int) ([]string, error) {
	if count <= 0 {
		return nil, fmt.Errorf("key count must be positive, got %d", count)
	}
	batch := make([]string, count)
	for i := range batch {
		batch[i] = newKey()
	}
	err := db.withWrite(func(s *domain.Snapshot) error {
		sel, ok := s.Sellers[sellerID]
		if !ok {
			return ErrNotFound
		}
		sel.Keys = append(sel.Keys, batch...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return batch, nil
}

// IssueKey pops the front of the queue. A popped token can never be issued
// again.
func (db *FileDB) IssueKey(sellerID string) (string, error) {
	var key string
	err := db.withWrite(func(s *domain.Snapshot) error {
		sel, ok := s.Sellers[sellerID]
		if !ok {
			return ErrNotFound
		}
		if len(sel.Keys) == 0 {
			return ErrEmptyStock
		}
		key = sel.Keys[0]
		sel.Keys = sel.Keys[1:]
		return nil
	})
	if err != nil {
		return "", err
	}
	return key, nil
}

// KeyCount reports current stock; unknown sellers count as zero.
func (db *FileDB) KeyCount(sellerID string) int {
	var n int
	db.withRead(func(s *domain.Snapshot) {
		if sel, ok := s.Sellers[sellerID]; ok {
			n = len(sel.Keys)
		}
	})
	return n
}
