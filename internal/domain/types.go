package domain

import "time"

// TicketStatus is the lifecycle state of a support ticket.
type TicketStatus string

const (
	TicketOpen   TicketStatus = "open"
	TicketClosed TicketStatus = "closed"
)

// PaymentStatus is the lifecycle state of a pending payment.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentConfirmed PaymentStatus = "confirmed"
)

// User is a buyer known to the bot. Created on first contact, never deleted.
type User struct {
	Username  string     `json:"username,omitempty"`
	Lang      string     `json:"lang,omitempty"`
	Joined    time.Time  `json:"joined"`
	Purchases []Purchase `json:"purchases"`
}

// Seller is a catalog entry. Its id lives as the map key in the snapshot,
// Keys is the FIFO queue of unissued tokens.
type Seller struct {
	Name  string   `json:"name"`
	Price float64  `json:"price"`
	Keys  []string `json:"keys"`
}

type Review struct {
	ID     int    `json:"id"`
	UserID int64  `json:"user_id"`
	// Username is a free-text label used when the author is not a known user.
	Username string     `json:"username,omitempty"`
	Text     string     `json:"text"`
	Date     time.Time  `json:"date"`
	Edited   *time.Time `json:"edited,omitempty"`
}

type Ticket struct {
	UserID    int64        `json:"user_id"`
	Message   string       `json:"message"`
	Status    TicketStatus `json:"status"`
	Created   time.Time    `json:"created"`
	Responses []Response   `json:"responses"`
}

type Response struct {
	AdminID int64     `json:"admin_id"`
	Text    string    `json:"text"`
	Date    time.Time `json:"date"`
}

// PendingPayment freezes the amount at creation time; later price changes to
// the seller do not affect it.
type PendingPayment struct {
	UserID   int64         `json:"user_id"`
	SellerID string        `json:"seller_id"`
	Amount   float64       `json:"amount"`
	Quantity int           `json:"quantity"`
	Status   PaymentStatus `json:"status"`
	Created  time.Time     `json:"created"`
}

// Purchase is the durable record of a confirmed payment's fulfilled keys.
type Purchase struct {
	SellerID string    `json:"seller_id"`
	Keys     []string  `json:"keys"`
	Amount   float64   `json:"amount"`
	Date     time.Time `json:"date"`
}

// Snapshot is the root document persisted as a whole on every mutation.
// Map keys for users and tickets are stringified numeric ids.
type Snapshot struct {
	Users           map[string]*User           `json:"users"`
	Sellers         map[string]*Seller         `json:"sellers"`
	Reviews         []Review                   `json:"reviews"`
	Tickets         map[string]*Ticket         `json:"tickets"`
	PendingPayments map[string]*PendingPayment `json:"pending_payments"`
}
