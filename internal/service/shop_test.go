package service

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"keyshop-bot/internal/storage"
)

func newTestShop(t *testing.T) *Shop {
	t.Helper()
	store, err := storage.OpenFileDB(filepath.Join(t.TempDir(), "bot_data.json"))
	require.NoError(t, err)
	return NewShop(store, zap.NewNop())
}

func TestNormalizeSellerID(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
		err  error
	}{
		{"too short", "ab", "", ErrSellerIDShort},
		{"upper is lowered", "AB_9", "ab_9", nil},
		{"junk stripped", "ab 9!", "ab9", nil},
		{"only junk", "!!!", "", ErrSellerIDEmpty},
		{"short after strip", "a-b", "", ErrSellerIDShort},
		{"plain", "megashop", "megashop", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeSellerID(tt.in)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewSellerID_RejectsDuplicates(t *testing.T) {
	sh := newTestShop(t)

	id, err := sh.NewSellerID("AB_9")
	require.NoError(t, err)
	assert.Equal(t, "ab_9", id)

	_, err = sh.NewSellerID("seller_1")
	assert.ErrorIs(t, err, ErrSellerExists)
}

func TestParsePrice(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"2.5", 2.5, true},
		{"2,5", 2.5, true},
		{"3", 3, true},
		{"0", 0, false},
		{"-1", 0, false},
		{"abc", 0, false},
	}
	for _, tt := range tests {
		got, err := ParsePrice(tt.in)
		if !tt.ok {
			assert.ErrorIs(t, err, ErrBadPrice, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestParseKeyCount(t *testing.T) {
	for in, want := range map[string]int{"1": 1, "100": 100, "42": 42} {
		got, err := ParseKeyCount(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	for _, in := range []string{"0", "101", "-5", "ten", "1.5"} {
		_, err := ParseKeyCount(in)
		assert.ErrorIs(t, err, ErrBadKeyCount, in)
	}
}

func TestResolveReviewSubject(t *testing.T) {
	sh := newTestShop(t)
	require.NoError(t, sh.RegisterUser(777, "alice", "ru"))

	id, label := sh.ResolveReviewSubject("@alice")
	assert.Equal(t, int64(777), id)
	assert.Empty(t, label)

	id, label = sh.ResolveReviewSubject("12345")
	assert.Equal(t, int64(12345), id)
	assert.Empty(t, label)

	// unresolvable input degrades to the sentinel id with a display label
	id, label = sh.ResolveReviewSubject("@nobody")
	assert.Equal(t, int64(0), id)
	assert.Equal(t, "nobody", label)
}

func TestCheckout_FreezesAmount(t *testing.T) {
	sh := newTestShop(t)
	require.NoError(t, sh.RegisterUser(1, "buyer", "ru"))
	_, err := sh.GenerateKeys("seller_2", 5)
	require.NoError(t, err)

	// seller_2 unit price is 3.0
	pid, amount, err := sh.Checkout(1, "seller_2", 4)
	require.NoError(t, err)
	assert.Equal(t, 12.0, amount)

	p, err := sh.Payment(pid)
	require.NoError(t, err)
	assert.Equal(t, 12.0, p.Amount)
	assert.Equal(t, 4, p.Quantity)
}

func TestCheckout_Rejections(t *testing.T) {
	sh := newTestShop(t)
	_, err := sh.GenerateKeys("seller_1", 2)
	require.NoError(t, err)

	_, _, err = sh.Checkout(1, "no_such", 1)
	assert.ErrorIs(t, err, storage.ErrNotFound)
	_, _, err = sh.Checkout(1, "bad id!", 1)
	assert.ErrorIs(t, err, storage.ErrNotFound)
	_, _, err = sh.Checkout(1, "seller_1", 0)
	assert.Error(t, err)
	_, _, err = sh.Checkout(1, "seller_1", 3) // above stock
	assert.Error(t, err)
	_, _, err = sh.Checkout(1, "seller_1", MaxPerOrder+1)
	assert.Error(t, err)
}

func TestConfirmPayment_InsufficientStockAborts(t *testing.T) {
	sh := newTestShop(t)
	require.NoError(t, sh.RegisterUser(1, "buyer", "ru"))
	_, err := sh.GenerateKeys("seller_1", 3)
	require.NoError(t, err)

	pid, _, err := sh.Checkout(1, "seller_1", 3)
	require.NoError(t, err)

	// stock shrinks under the paid quantity before confirmation
	_, err = sh.store.IssueKey("seller_1")
	require.NoError(t, err)

	_, err = sh.ConfirmPayment(pid)
	var shortfall *InsufficientStockError
	require.ErrorAs(t, err, &shortfall)
	assert.Equal(t, 3, shortfall.Need)
	assert.Equal(t, 2, shortfall.Have)

	// nothing was popped, the payment is still pending
	assert.Equal(t, 2, sh.KeyCount("seller_1"))
	p, err := sh.Payment(pid)
	require.NoError(t, err)
	assert.Equal(t, "pending", string(p.Status))
}

func TestConfirmPayment_EndToEnd(t *testing.T) {
	sh := newTestShop(t)
	require.NoError(t, sh.RegisterUser(1, "buyer", "ru"))
	require.NoError(t, sh.AddSeller("alpha", "Alpha Keys", 1.5))

	_, err := sh.GenerateKeys("alpha", 5)
	require.NoError(t, err)
	require.Equal(t, 5, sh.KeyCount("alpha"))

	pid, amount, err := sh.Checkout(1, "alpha", 2)
	require.NoError(t, err)
	assert.Equal(t, 3.0, amount)

	res, err := sh.ConfirmPayment(pid)
	require.NoError(t, err)
	require.Len(t, res.Keys, 2)
	assert.Equal(t, int64(1), res.BuyerID)
	assert.Equal(t, 3.0, res.Amount)

	assert.Equal(t, 3, sh.KeyCount("alpha"))
	p, err := sh.Payment(pid)
	require.NoError(t, err)
	assert.Equal(t, "confirmed", string(p.Status))

	// issued keys are gone from the remaining stock
	remaining, err := sh.GetSeller("alpha")
	require.NoError(t, err)
	for _, issued := range res.Keys {
		assert.NotContains(t, remaining.Keys, issued)
	}

	u, err := sh.User(1)
	require.NoError(t, err)
	require.Len(t, u.Purchases, 1)
	assert.Equal(t, "alpha", u.Purchases[0].SellerID)
	assert.Len(t, u.Purchases[0].Keys, 2)
	assert.Equal(t, 3.0, u.Purchases[0].Amount)

	// second confirm is rejected as done
	_, err = sh.ConfirmPayment(pid)
	assert.ErrorIs(t, err, storage.ErrPaymentDone)
}

func TestTicketScenario(t *testing.T) {
	sh := newTestShop(t)
	require.NoError(t, sh.RegisterUser(5, "eve", "ru"))

	id, err := sh.CreateTicket(5, "my key does not work")
	require.NoError(t, err)
	assert.Equal(t, 1, id)

	tk, err := sh.ReplyTicket(999, id, "try again")
	require.NoError(t, err)
	assert.Equal(t, "open", string(tk.Status))
	require.Len(t, tk.Responses, 1)
	assert.Equal(t, int64(999), tk.Responses[0].AdminID)

	require.NoError(t, sh.CloseTicket(id))
	require.NoError(t, sh.CloseTicket(id))
	assert.Empty(t, sh.OpenTickets())
}

func TestStats(t *testing.T) {
	sh := newTestShop(t)
	require.NoError(t, sh.RegisterUser(1, "a", "ru"))
	require.NoError(t, sh.RegisterUser(2, "b", "ru"))
	_, err := sh.GenerateKeys("seller_1", 4)
	require.NoError(t, err)
	_, err = sh.CreateTicket(1, "q")
	require.NoError(t, err)

	st := sh.Stats()
	assert.Equal(t, 2, st.Users)
	assert.Equal(t, 4, st.TotalKeys)
	assert.Equal(t, 1, st.OpenTickets)
	require.Len(t, st.Sellers, 3)
	assert.Equal(t, "seller_1", st.Sellers[0].ID)
	assert.Equal(t, 4, st.Sellers[0].Keys)
}

func TestStartupSweep_SeedsEmptySellers(t *testing.T) {
	sh := newTestShop(t)
	require.NoError(t, sh.store.AddSeller("bad id!", "Broken", 1.0))

	sh.StartupSweep()

	_, err := sh.GetSeller("bad id!")
	assert.ErrorIs(t, err, storage.ErrNotFound)
	for id := range sh.Sellers() {
		assert.Equal(t, 20, sh.KeyCount(id), id)
	}
	// a second sweep does not top up non-empty queues
	sh.StartupSweep()
	for id := range sh.Sellers() {
		assert.Equal(t, 20, sh.KeyCount(id), id)
	}
}
