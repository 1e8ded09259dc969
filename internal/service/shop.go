package service

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"keyshop-bot/internal/domain"
	"keyshop-bot/internal/storage"
)

// MaxPerOrder caps a single transaction regardless of stock.
const MaxPerOrder = 10

// Bounds the admin key-generation form accepts per batch.
const (
	MinGenKeys = 1
	MaxGenKeys = 100
)

var (
	ErrSellerIDEmpty = errors.New("seller id empty after stripping")
	ErrSellerIDShort = errors.New("seller id shorter than 3 characters")
	ErrSellerExists  = errors.New("seller id already taken")
	ErrBadPrice      = errors.New("price must be a number greater than zero")
	ErrBadKeyCount   = fmt.Errorf("key count must be between %d and %d", MinGenKeys, MaxGenKeys)
)

// InsufficientStockError reports the shortfall at confirmation time.
type InsufficientStockError struct {
	Need int
	Have int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient keys: need %d, have %d", e.Need, e.Have)
}

var sellerIDRe = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

// ValidSellerID reports whether an id has the allowed shape. Ids read back
// from stored payments are re-checked with this before issuing keys.
func ValidSellerID(id string) bool { return sellerIDRe.MatchString(id) }

// Shop implements the storefront operations on top of the file store.
type Shop struct {
	store *storage.FileDB
	log   *zap.Logger
}

func NewShop(store *storage.FileDB, log *zap.Logger) *Shop {
	return &Shop{store: store, log: log}
}

// RegisterUser records a buyer on first contact; repeat calls are no-ops.
func (sh *Shop) RegisterUser(id int64, username, lang string) error {
	if lang == "" {
		lang = "ru"
	}
	return sh.store.AddUser(id, username, lang)
}

// UserLang returns the stored language tag, defaulting to Russian.
func (sh *Shop) UserLang(id int64) string {
	u, err := sh.store.GetUser(id)
	if err != nil || u.Lang == "" {
		return "ru"
	}
	return u.Lang
}

// NormalizeSellerID lower-cases the input and strips everything outside
// [a-z0-9_]. The remainder must be at least 3 characters.
func NormalizeSellerID(raw string) (string, error) {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(raw)) {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '_' {
			b.WriteRune(r)
		}
	}
	id := b.String()
	if id == "" {
		return "", ErrSellerIDEmpty
	}
	if len(id) < 3 {
		return "", ErrSellerIDShort
	}
	return id, nil
}

// NewSellerID normalizes and additionally rejects ids already in the catalog.
func (sh *Shop) NewSellerID(raw string) (string, error) {
	id, err := NormalizeSellerID(raw)
	if err != nil {
		return "", err
	}
	if _, err := sh.store.GetSeller(id); err == nil {
		return "", ErrSellerExists
	}
	return id, nil
}

// ParsePrice accepts a decimal with either separator and requires it positive.
func ParsePrice(raw string) (float64, error) {
	raw = strings.ReplaceAll(strings.TrimSpace(raw), ",", ".")
	price, err := strconv.ParseFloat(raw, 64)
	if err != nil || price <= 0 {
		return 0, ErrBadPrice
	}
	return price, nil
}

// ParseKeyCount accepts an integer in [MinGenKeys, MaxGenKeys].
func ParseKeyCount(raw string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < MinGenKeys || n > MaxGenKeys {
		return 0, ErrBadKeyCount
	}
	return n, nil
}

// ResolveReviewSubject turns an admin-entered "@handle" or numeric id into a
// user id. Unresolvable input falls back to id 0 with the raw text kept as
// the display label. Permissive on purpose: there is no rejection path.
func (sh *Shop) ResolveReviewSubject(raw string) (int64, string) {
	handle := strings.TrimPrefix(strings.TrimSpace(raw), "@")
	for id, u := range sh.store.Users() {
		if u.Username != "" && u.Username == handle {
			return id, ""
		}
	}
	if id, err := strconv.ParseInt(handle, 10, 64); err == nil {
		return id, ""
	}
	return 0, handle
}

func (sh *Shop) AddSeller(id, name string, price float64) error {
	if err := sh.store.AddSeller(id, name, price); err != nil {
		return err
	}
	sh.log.Info("seller added", zap.String("seller", id), zap.Float64("price", price))
	return nil
}

func (sh *Shop) RemoveSeller(id string) error {
	if err := sh.store.RemoveSeller(id); err != nil {
		return err
	}
	sh.log.Info("seller removed", zap.String("seller", id))
	return nil
}

func (sh *Shop) GenerateKeys(sellerID string, count int) ([]string, error) {
	keys, err := sh.store.GenerateKeys(sellerID, count)
	if err != nil {
		return nil, err
	}
	sh.log.Info("keys generated", zap.String("seller", sellerID), zap.Int("count", count))
	return keys, nil
}

// Checkout creates a pending payment for qty keys of the given seller. The
// amount is frozen at the current unit price.
func (sh *Shop) Checkout(buyerID int64, sellerID string, qty int) (string, float64, error) {
	if !ValidSellerID(sellerID) {
		return "", 0, storage.ErrNotFound
	}
	seller, err := sh.store.GetSeller(sellerID)
	if err != nil {
		return "", 0, err
	}
	if qty < 1 || qty > MaxPerOrder || qty > len(seller.Keys) {
		return "", 0, fmt.Errorf("quantity %d not purchasable", qty)
	}
	amount := seller.Price * float64(qty)
	id, err := sh.store.CreatePayment(buyerID, sellerID, amount, qty)
	if err != nil {
		return "", 0, err
	}
	sh.log.Info("payment created",
		zap.String("payment", id),
		zap.Int64("buyer", buyerID),
		zap.String("seller", sellerID),
		zap.Float64("amount", amount),
	)
	return id, amount, nil
}

// ConfirmResult is what the admin workflow needs to deliver keys.
type ConfirmResult struct {
	BuyerID  int64
	SellerID string
	Keys     []string
	Amount   float64
}

// ConfirmPayment is the single logical unit behind /confirm: check the record
// is still pending, check stock, pop exactly the paid quantity, flip status
// and append the purchase. Insufficient stock aborts before any key is
// popped; partial issuance followed by failure must not happen.
func (sh *Shop) ConfirmPayment(paymentID string) (*ConfirmResult, error) {
	p, err := sh.store.Payment(paymentID)
	if err != nil {
		return nil, err
	}
	if p.Status == domain.PaymentConfirmed {
		return nil, storage.ErrPaymentDone
	}
	if !ValidSellerID(p.SellerID) {
		return nil, fmt.Errorf("payment %s references malformed seller id", paymentID)
	}
	if have := sh.store.KeyCount(p.SellerID); have < p.Quantity {
		return nil, &InsufficientStockError{Need: p.Quantity, Have: have}
	}
	keys := make([]string, 0, p.Quantity)
	for i := 0; i < p.Quantity; i++ {
		k, err := sh.store.IssueKey(p.SellerID)
		if err != nil {
			return nil, fmt.Errorf("issuing key %d of %d: %w", i+1, p.Quantity, err)
		}
		keys = append(keys, k)
	}
	if len(keys) != p.Quantity {
		return nil, fmt.Errorf("issued %d keys, expected %d", len(keys), p.Quantity)
	}
	if err := sh.store.ConfirmPayment(paymentID); err != nil {
		return nil, err
	}
	if err := sh.store.AddPurchase(p.UserID, domain.Purchase{
		SellerID: p.SellerID,
		Keys:     keys,
		Amount:   p.Amount,
		Date:     time.Now(),
	}); err != nil {
		return nil, err
	}
	sh.log.Info("payment confirmed",
		zap.String("payment", paymentID),
		zap.Int64("buyer", p.UserID),
		zap.Int("keys", len(keys)),
	)
	return &ConfirmResult{BuyerID: p.UserID, SellerID: p.SellerID, Keys: keys, Amount: p.Amount}, nil
}

// CreateTicket opens a support ticket for a user message.
func (sh *Shop) CreateTicket(userID int64, message string) (int, error) {
	id, err := sh.store.CreateTicket(userID, message)
	if err != nil {
		return 0, err
	}
	sh.log.Info("ticket opened", zap.Int("ticket", id), zap.Int64("user", userID))
	return id, err
}

// ReplyTicket appends an admin response and returns the ticket so the caller
// can deliver the reply to its requester.
func (sh *Shop) ReplyTicket(adminID int64, ticketID int, text string) (domain.Ticket, error) {
	if err := sh.store.AddResponse(ticketID, adminID, text); err != nil {
		return domain.Ticket{}, err
	}
	return sh.store.Ticket(ticketID)
}

func (sh *Shop) CloseTicket(ticketID int) error {
	return sh.store.CloseTicket(ticketID)
}

// SellerLine is one catalog row in Stats, sorted by id.
type SellerLine struct {
	ID    string
	Name  string
	Price float64
	Keys  int
}

type Stats struct {
	Users       int
	TotalKeys   int
	OpenTickets int
	Sellers     []SellerLine
}

func (sh *Shop) Stats() Stats {
	st := Stats{
		Users:       sh.store.UserCount(),
		OpenTickets: len(sh.store.OpenTickets()),
	}
	for id, sel := range sh.store.Sellers() {
		if !ValidSellerID(id) {
			continue
		}
		st.TotalKeys += len(sel.Keys)
		st.Sellers = append(st.Sellers, SellerLine{ID: id, Name: sel.Name, Price: sel.Price, Keys: len(sel.Keys)})
	}
	sort.Slice(st.Sellers, func(i, j int) bool { return st.Sellers[i].ID < st.Sellers[j].ID })
	return st
}

// StartupSweep removes sellers with malformed ids and tops up empty demo
// inventories so the shop is sellable right after first start.
func (sh *Shop) StartupSweep() {
	for id := range sh.store.Sellers() {
		if ValidSellerID(id) {
			continue
		}
		sh.log.Warn("removing seller with malformed id", zap.String("seller", id))
		if err := sh.store.RemoveSeller(id); err != nil {
			sh.log.Error("remove seller", zap.String("seller", id), zap.Error(err))
		}
	}
	for id := range sh.store.Sellers() {
		if sh.store.KeyCount(id) > 0 {
			continue
		}
		if _, err := sh.store.GenerateKeys(id, 20); err != nil {
			sh.log.Error("seed keys", zap.String("seller", id), zap.Error(err))
			continue
		}
		sh.log.Info("seeded keys for empty seller", zap.String("seller", id), zap.Int("count", 20))
	}
}

// Thin read facades for the presentation layer.

func (sh *Shop) Sellers() map[string]domain.Seller { return sh.store.Sellers() }

func (sh *Shop) GetSeller(id string) (domain.Seller, error) { return sh.store.GetSeller(id) }

func (sh *Shop) KeyCount(id string) int { return sh.store.KeyCount(id) }

func (sh *Shop) Reviews() []domain.Review { return sh.store.Reviews() }

func (sh *Shop) ReviewByID(id int) (domain.Review, error) { return sh.store.ReviewByID(id) }

func (sh *Shop) AddReview(userID int64, text, label string) (int, error) {
	return sh.store.AddReview(userID, text, label)
}

func (sh *Shop) EditReview(id int, text string) error { return sh.store.EditReview(id, text) }

func (sh *Shop) DeleteReview(id int) error { return sh.store.DeleteReview(id) }

func (sh *Shop) Payment(id string) (domain.PendingPayment, error) { return sh.store.Payment(id) }

func (sh *Shop) PendingPayments() map[string]domain.PendingPayment { return sh.store.PendingOnly() }

func (sh *Shop) OpenTickets() map[int]domain.Ticket { return sh.store.OpenTickets() }

func (sh *Shop) User(id int64) (domain.User, error) { return sh.store.GetUser(id) }

// UserLabel renders a user as @username when known, the bare id otherwise.
func (sh *Shop) UserLabel(id int64) string {
	u, err := sh.store.GetUser(id)
	if err != nil || u.Username == "" {
		return strconv.FormatInt(id, 10)
	}
	return "@" + u.Username
}
