package storage

import (
	"time"

	"keyshop-bot/internal/domain"
)

const paymentIDLen = 12

// CreatePayment mints a fresh 12-char A-Z0-9 identifier and stores a pending
// record with the amount frozen as computed by the caller.
func (db *FileDB) CreatePayment(userID int64, sellerID string, amount float64, quantity int) (string, error) {
	var id string
	err := db.withWrite(func(s *domain.Snapshot) error {
		for {
			id = randFrom(upperChars+digits, paymentIDLen)
			if _, taken := s.PendingPayments[id]; !taken {
				break
			}
		}
		s.PendingPayments[id] = &domain.PendingPayment{
			UserID:   userID,
			SellerID: sellerID,
			Amount:   amount,
			Quantity: quantity,
			Status:   domain.PaymentPending,
			Created:  time.Now(),
		}
		return nil
	})
	return id, err
}

func (db *FileDB) Payment(id string) (domain.PendingPayment, error) {
	var out *domain.PendingPayment
	db.withRead(func(s *domain.Snapshot) {
		if p, ok := s.PendingPayments[id]; ok {
			cp := *p
			out = &cp
		}
	})
	if out == nil {
		return domain.PendingPayment{}, ErrNotFound
	}
	return *out, nil
}

// ConfirmPayment flips pending to confirmed exactly once. It does not issue
// keys or record a purchase; that orchestration belongs to the service.
func (db *FileDB) ConfirmPayment(id string) error {
	return db.withWrite(func(s *domain.Snapshot) error {
		p, ok := s.PendingPayments[id]
		if !ok {
			return ErrNotFound
		}
		if p.Status == domain.PaymentConfirmed {
			return ErrPaymentDone
		}
		p.Status = domain.PaymentConfirmed
		return nil
	})
}

// PendingOnly returns copies of payments still awaiting confirmation.
func (db *FileDB) PendingOnly() map[string]domain.PendingPayment {
	out := map[string]domain.PendingPayment{}
	db.withRead(func(s *domain.Snapshot) {
		for id, p := range s.PendingPayments {
			if p.Status == domain.PaymentPending {
				out[id] = *p
			}
		}
	})
	return out
}
