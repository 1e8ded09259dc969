package storage

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"keyshop-bot/internal/domain"
)

func newTestDB(t *testing.T) (*FileDB, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bot_data.json")
	db, err := OpenFileDB(path)
	require.NoError(t, err)
	return db, path
}

func TestOpenFileDB_SeedsDefaults(t *testing.T) {
	db, path := newTestDB(t)

	sellers := db.Sellers()
	require.Len(t, sellers, 3)
	assert.Equal(t, "🔥 Mega Keys", sellers["seller_1"].Name)
	assert.Equal(t, 2.0, sellers["seller_1"].Price)
	assert.Equal(t, 3.0, sellers["seller_2"].Price)
	assert.Equal(t, 4.0, sellers["seller_3"].Price)
	assert.Empty(t, sellers["seller_1"].Keys)
	assert.Equal(t, 0, db.UserCount())

	// seed is persisted immediately
	_, err := os.Stat(path)
	require.NoError(t, err)
}

func TestOpenFileDB_SelfHealsMissingCollections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bot_data.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"users":{}}`), 0o644))

	db, err := OpenFileDB(path)
	require.NoError(t, err)
	assert.Len(t, db.Sellers(), 3)
	assert.Empty(t, db.Reviews())
	assert.Empty(t, db.OpenTickets())
}

func TestOpenFileDB_CorruptFileFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bot_data.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := OpenFileDB(path)
	require.Error(t, err)
}

func TestRoundTrip_ReloadYieldsSameState(t *testing.T) {
	db, path := newTestDB(t)

	require.NoError(t, db.AddUser(42, "alice", "ru"))
	_, err := db.GenerateKeys("seller_1", 4)
	require.NoError(t, err)
	_, err = db.AddReview(42, "great shop", "")
	require.NoError(t, err)
	tid, err := db.CreateTicket(42, "help me")
	require.NoError(t, err)
	pid, err := db.CreatePayment(42, "seller_1", 8.0, 4)
	require.NoError(t, err)

	re, err := OpenFileDB(path)
	require.NoError(t, err)

	assert.Equal(t, db.Sellers(), re.Sellers())
	assert.Equal(t, db.UserCount(), re.UserCount())

	orig, loaded := db.Reviews(), re.Reviews()
	require.Len(t, loaded, len(orig))
	for i := range orig {
		assert.Equal(t, orig[i].ID, loaded[i].ID)
		assert.Equal(t, orig[i].Text, loaded[i].Text)
		assert.True(t, orig[i].Date.Equal(loaded[i].Date))
	}

	reTicket, err := re.Ticket(tid)
	require.NoError(t, err)
	assert.Equal(t, "help me", reTicket.Message)
	assert.Equal(t, domain.TicketOpen, reTicket.Status)

	rePayment, err := re.Payment(pid)
	require.NoError(t, err)
	assert.Equal(t, 8.0, rePayment.Amount)
	assert.Equal(t, domain.PaymentPending, rePayment.Status)
}

func TestGenerateKeys_FormatAndOrder(t *testing.T) {
	db, _ := newTestDB(t)

	batch, err := db.GenerateKeys("seller_1", 5)
	require.NoError(t, err)
	require.Len(t, batch, 5)

	keyRe := regexp.MustCompile(`^[A-Z]{10}:[a-z0-9]{8}$`)
	for _, k := range batch {
		assert.Regexp(t, keyRe, k)
	}
	// queue holds the batch in generation order
	assert.Equal(t, batch, db.Sellers()["seller_1"].Keys)

	_, err = db.GenerateKeys("seller_1", 0)
	assert.Error(t, err)
	_, err = db.GenerateKeys("nobody", 1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestIssueKey_DrainsFIFOThenEmpty(t *testing.T) {
	db, _ := newTestDB(t)

	batch, err := db.GenerateKeys("seller_1", 3)
	require.NoError(t, err)

	seen := map[string]bool{}
	for i := 0; i < 3; i++ {
		k, err := db.IssueKey("seller_1")
		require.NoError(t, err)
		assert.Equal(t, batch[i], k)
		assert.False(t, seen[k], "token issued twice")
		seen[k] = true
	}
	_, err = db.IssueKey("seller_1")
	assert.ErrorIs(t, err, ErrEmptyStock)
	_, err = db.IssueKey("nobody")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReviews_SequentialIDs(t *testing.T) {
	db, _ := newTestDB(t)

	for i, text := range []string{"a", "b", "c"} {
		id, err := db.AddReview(1, text, "")
		require.NoError(t, err)
		assert.Equal(t, i+1, id)
	}

	require.NoError(t, db.EditReview(2, "b2"))
	r, err := db.ReviewByID(2)
	require.NoError(t, err)
	assert.Equal(t, "b2", r.Text)
	assert.NotNil(t, r.Edited)

	require.NoError(t, db.DeleteReview(1))
	_, err = db.ReviewByID(1)
	assert.ErrorIs(t, err, ErrNotFound)

	// count-based numbering: after a deletion the next id collides with an
	// existing one. Preserved behavior, not a fix target.
	id, err := db.AddReview(1, "d", "")
	require.NoError(t, err)
	assert.Equal(t, 3, id)
}

func TestPaymentLifecycle(t *testing.T) {
	db, _ := newTestDB(t)

	pid, err := db.CreatePayment(7, "seller_2", 12.0, 4)
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^[A-Z0-9]{12}$`), pid)

	p, err := db.Payment(pid)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentPending, p.Status)
	assert.Equal(t, 12.0, p.Amount)

	require.NoError(t, db.ConfirmPayment(pid))
	p, err = db.Payment(pid)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentConfirmed, p.Status)

	assert.ErrorIs(t, db.ConfirmPayment(pid), ErrPaymentDone)
	assert.ErrorIs(t, db.ConfirmPayment("UNKNOWN12345"), ErrNotFound)
}

func TestTickets_CloseIdempotent(t *testing.T) {
	db, _ := newTestDB(t)

	id, err := db.CreateTicket(9, "first")
	require.NoError(t, err)
	assert.Equal(t, 1, id)

	require.NoError(t, db.AddResponse(id, 100, "hello"))
	tk, err := db.Ticket(id)
	require.NoError(t, err)
	assert.Equal(t, domain.TicketOpen, tk.Status)
	require.Len(t, tk.Responses, 1)

	require.NoError(t, db.CloseTicket(id))
	require.NoError(t, db.CloseTicket(id)) // no-op, no error
	tk, err = db.Ticket(id)
	require.NoError(t, err)
	assert.Equal(t, domain.TicketClosed, tk.Status)
	assert.Empty(t, db.OpenTickets())

	assert.ErrorIs(t, db.CloseTicket(99), ErrNotFound)
}

func TestReadAccessors_ReturnCopies(t *testing.T) {
	db, _ := newTestDB(t)

	_, err := db.GenerateKeys("seller_1", 2)
	require.NoError(t, err)

	cp := db.Sellers()["seller_1"]
	cp.Keys[0] = "tampered"
	assert.NotEqual(t, "tampered", db.Sellers()["seller_1"].Keys[0])
}

func TestReviews_ShowsOnlyLast20(t *testing.T) {
	db, _ := newTestDB(t)

	for i := 0; i < 25; i++ {
		_, err := db.AddReview(1, "text", "")
		require.NoError(t, err)
	}
	got := db.Reviews()
	require.Len(t, got, 20)
	assert.Equal(t, 6, got[0].ID)
	assert.Equal(t, 25, got[19].ID)
}
