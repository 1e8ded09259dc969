package storage

import (
	"strconv"
	"time"

	"keyshop-bot/internal/domain"
)

func userKey(id int64) string { return strconv.FormatInt(id, 10) }

// AddUser registers a user on first contact. Subsequent calls are no-ops.
func (db *FileDB) AddUser(id int64, username, lang string) error {
	return db.withWrite(func(s *domain.Snapshot) error {
		if _, ok := s.Users[userKey(id)]; ok {
			return nil
		}
		s.Users[userKey(id)] = &domain.User{
			Username:  username,
			Lang:      lang,
			Joined:    time.Now(),
			Purchases: []domain.Purchase{},
		}
		return nil
	})
}

func (db *FileDB) GetUser(id int64) (domain.User, error) {
	var out *domain.User
	db.withRead(func(s *domain.Snapshot) {
		if u, ok := s.Users[userKey(id)]; ok {
			out = copyUser(u)
		}
	})
	if out == nil {
		return domain.User{}, ErrNotFound
	}
	return *out, nil
}

// Users returns a copy of the whole user collection keyed by numeric id.
func (db *FileDB) Users() map[int64]domain.User {
	out := map[int64]domain.User{}
	db.withRead(func(s *domain.Snapshot) {
		for k, u := range s.Users {
			id, err := strconv.ParseInt(k, 10, 64)
			if err != nil {
				continue
			}
			out[id] = *copyUser(u)
		}
	})
	return out
}

func (db *FileDB) UserCount() int {
	var n int
	db.withRead(func(s *domain.Snapshot) { n = len(s.Users) })
	return n
}

// AddPurchase appends to the buyer's purchase history.
func (db *FileDB) AddPurchase(userID int64, p domain.Purchase) error {
	return db.withWrite(func(s *domain.Snapshot) error {
		u, ok := s.Users[userKey(userID)]
		if !ok {
			return ErrNotFound
		}
		u.Purchases = append(u.Purchases, p)
		return nil
	})
}

func copyUser(u *domain.User) *domain.User {
	cp := *u
	cp.Purchases = make([]domain.Purchase, len(u.Purchases))
	for i, p := range u.Purchases {
		cp.Purchases[i] = p
		cp.Purchases[i].Keys = append([]string(nil), p.Keys...)
	}
	return &cp
}
