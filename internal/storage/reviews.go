package storage

import (
	"time"

	"keyshop-bot/internal/domain"
)

const reviewsShown = 20

// AddReview assigns id = current count + 1. After deletions this can mint a
// duplicate id; the original data exhibits the same numbering and downstream
// code tolerates it, so it is preserved rather than switched to max-based.
func (db *FileDB) AddReview(userID int64, text, label string) (int, error) {
	var id int
	err := db.withWrite(func(s *domain.Snapshot) error {
		id = len(s.Reviews) + 1
		s.Reviews = append(s.Reviews, domain.Review{
			ID:       id,
			UserID:   userID,
			Username: label,
			Text:     text,
			Date:     time.Now(),
		})
		return nil
	})
	return id, err
}

func (db *FileDB) EditReview(id int, text string) error {
	return db.withWrite(func(s *domain.Snapshot) error {
		for i := range s.Reviews {
			if s.Reviews[i].ID == id {
				now := time.Now()
				s.Reviews[i].Text = text
				s.Reviews[i].Edited = &now
				return nil
			}
		}
		return ErrNotFound
	})
}

func (db *FileDB) DeleteReview(id int) error {
	return db.withWrite(func(s *domain.Snapshot) error {
		kept := s.Reviews[:0]
		for _, r := range s.Reviews {
			if r.ID != id {
				kept = append(kept, r)
			}
		}
		s.Reviews = kept
		return nil
	})
}

// Reviews returns a copy of the most recent entries, oldest first.
func (db *FileDB) Reviews() []domain.Review {
	var out []domain.Review
	db.withRead(func(s *domain.Snapshot) {
		start := 0
		if len(s.Reviews) > reviewsShown {
			start = len(s.Reviews) - reviewsShown
		}
		out = append([]domain.Review(nil), s.Reviews[start:]...)
	})
	return out
}

func (db *FileDB) ReviewByID(id int) (domain.Review, error) {
	var out *domain.Review
	db.withRead(func(s *domain.Snapshot) {
		for _, r := range s.Reviews {
			if r.ID == id {
				cp := r
				out = &cp
				break
			}
		}
	})
	if out == nil {
		return domain.Review{}, ErrNotFound
	}
	return *out, nil
}
