package storage

import "keyshop-bot/internal/domain"

// Sellers returns a deep copy of the catalog keyed by seller id.
func (db *FileDB) Sellers() map[string]domain.Seller {
	out := map[string]domain.Seller{}
	db.withRead(func(s *domain.Snapshot) {
		for id, sel := range s.Sellers {
			cp := *sel
			cp.Keys = append([]string(nil), sel.Keys...)
			out[id] = cp
		}
	})
	return out
}

func (db *FileDB) GetSeller(id string) (domain.Seller, error) {
	var out *domain.Seller
	db.withRead(func(s *domain.Snapshot) {
		if sel, ok := s.Sellers[id]; ok {
			cp := *sel
			cp.Keys = append([]string(nil), sel.Keys...)
			out = &cp
		}
	})
	if out == nil {
		return domain.Seller{}, ErrNotFound
	}
	return *out, nil
}

func (db *FileDB) AddSeller(id, name string, price float64) error {
	return db.withWrite(func(s *domain.Snapshot) error {
		if _, ok := s.Sellers[id]; ok {
			return ErrExists
		}
		s.Sellers[id] = &domain.Seller{Name: name, Price: price, Keys: []string{}}
		return nil
	})
}

// RemoveSeller drops the seller together with its unissued keys. Historical
// payments and purchases keep referencing the id.
func (db *FileDB) RemoveSeller(id string) error {
	return db.withWrite(func(s *domain.Snapshot) error {
		if _, ok := s.Sellers[id]; !ok {
			return ErrNotFound
		}
		delete(s.Sellers, id)
		return nil
	})
}
