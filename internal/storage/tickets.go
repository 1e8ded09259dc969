package storage

import (
	"strconv"
	"time"

	"keyshop-bot/internal/domain"
)

func ticketKey(id int) string { return strconv.Itoa(id) }

// CreateTicket opens a ticket with id = current count + 1.
func (db *FileDB) CreateTicket(userID int64, message string) (int, error) {
	var id int
	err := db.withWrite(func(s *domain.Snapshot) error {
		id = len(s.Tickets) + 1
		s.Tickets[ticketKey(id)] = &domain.Ticket{
			UserID:    userID,
			Message:   message,
			Status:    domain.TicketOpen,
			Created:   time.Now(),
			Responses: []domain.Response{},
		}
		return nil
	})
	return id, err
}

func (db *FileDB) Ticket(id int) (domain.Ticket, error) {
	var out *domain.Ticket
	db.withRead(func(s *domain.Snapshot) {
		if t, ok := s.Tickets[ticketKey(id)]; ok {
			out = copyTicket(t)
		}
	})
	if out == nil {
		return domain.Ticket{}, ErrNotFound
	}
	return *out, nil
}

func (db *FileDB) AddResponse(id int, adminID int64, text string) error {
	return db.withWrite(func(s *domain.Snapshot) error {
		t, ok := s.Tickets[ticketKey(id)]
		if !ok {
			return ErrNotFound
		}
		t.Responses = append(t.Responses, domain.Response{
			AdminID: adminID,
			Text:    text,
			Date:    time.Now(),
		})
		return nil
	})
}

// CloseTicket is idempotent: closing an already closed ticket is a no-op.
func (db *FileDB) CloseTicket(id int) error {
	return db.withWrite(func(s *domain.Snapshot) error {
		t, ok := s.Tickets[ticketKey(id)]
		if !ok {
			return ErrNotFound
		}
		t.Status = domain.TicketClosed
		return nil
	})
}

// OpenTickets returns copies of tickets still awaiting an admin, keyed by id.
func (db *FileDB) OpenTickets() map[int]domain.Ticket {
	out := map[int]domain.Ticket{}
	db.withRead(func(s *domain.Snapshot) {
		for k, t := range s.Tickets {
			if t.Status != domain.TicketOpen {
				continue
			}
			id, err := strconv.Atoi(k)
			if err != nil {
				continue
			}
			out[id] = *copyTicket(t)
		}
	})
	return out
}

func copyTicket(t *domain.Ticket) *domain.Ticket {
	cp := *t
	cp.Responses = append([]domain.Response(nil), t.Responses...)
	return &cp
}
