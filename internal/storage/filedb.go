package storage

import (
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"os"
	"path/filepath"
	"sync"

	"keyshop-bot/internal/domain"
)

var (
	ErrNotFound    = errors.New("not found")
	ErrExists      = errors.New("already exists")
	ErrEmptyStock  = errors.New("no keys in stock")
	ErrPaymentDone = errors.New("payment already confirmed")
)

// FileDB holds the whole state in memory and rewrites the backing JSON file
// on every mutation. Updates arrive from a single goroutine, but the store
// does not rely on that: all access goes through the mutex.
type FileDB struct {
	mu   sync.RWMutex
	path string
	snap *domain.Snapshot
}

// OpenFileDB loads the backing document, seeding missing collections with
// their defaults (three demo sellers on first run). Existing content that
// fails to parse is a fatal condition for the caller: the error is returned
// rather than the file overwritten.
func OpenFileDB(path string) (*FileDB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	db := &FileDB{path: path, snap: &domain.Snapshot{}}
	raw, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// first run, snapshot stays empty until defaults are filled
	case err != nil:
		return nil, err
	case len(raw) > 0:
		if err := json.Unmarshal(raw, db.snap); err != nil {
			return nil, fmt.Errorf("corrupt store %s: %w", path, err)
		}
	}
	db.ensureDefaults()
	if err := db.flushLocked(); err != nil {
		return nil, err
	}
	return db, nil
}

// ensureDefaults is self-healing: each missing top-level collection gets its
// empty value, sellers specifically get the demo trio.
func (db *FileDB) ensureDefaults() {
	s := db.snap
	if s.Users == nil {
		s.Users = map[string]*domain.User{}
	}
	if s.Sellers == nil {
		s.Sellers = map[string]*domain.Seller{
			"seller_1": {Name: "🔥 Mega Keys", Price: 2.0, Keys: []string{}},
			"seller_2": {Name: "⚡ Pro Keys", Price: 3.0, Keys: []string{}},
			"seller_3": {Name: "💎 Elite Keys", Price: 4.0, Keys: []string{}},
		}
	}
	if s.Reviews == nil {
		s.Reviews = []domain.Review{}
	}
	if s.Tickets == nil {
		s.Tickets = map[string]*domain.Ticket{}
	}
	if s.PendingPayments == nil {
		s.PendingPayments = map[string]*domain.PendingPayment{}
	}
}

// flushLocked rewrites the whole document. Written to a temp file first so a
// crash mid-write leaves the previous snapshot intact.
func (db *FileDB) flushLocked() error {
	data, err := json.MarshalIndent(db.snap, "", "  ")
	if err != nil {
		return err
	}
	tmp := db.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, db.path)
}

func (db *FileDB) withWrite(fn func(*domain.Snapshot) error) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	if err := fn(db.snap); err != nil {
		return err
	}
	return db.flushLocked()
}

func (db *FileDB) withRead(fn func(*domain.Snapshot)) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	fn(db.snap)
}

const (
	upperChars  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	lowerDigits = "abcdefghijklmnopqrstuvwxyz0123456789"
	digits      = "0123456789"
)

func randFrom(charset string, n int) string {
	b := make([]byte, n)
	max := big.NewInt(int64(len(charset)))
	for i := range b {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			panic(err) // crypto/rand failure means the host is broken
		}
		b[i] = charset[idx.Int64()]
	}
	return string(b)
}
