package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessions_BeginReplacesLiveForm(t *testing.T) {
	s := newSessions()

	first := s.begin(1, stepSellerID)
	first.fields["seller_id"] = "megashop"
	require.Same(t, first, s.get(1))

	// starting a new workflow silently discards the old one
	second := s.begin(1, stepGenCount)
	require.Same(t, second, s.get(1))
	assert.Empty(t, second.fields)

	s.clear(1)
	assert.Nil(t, s.get(1))
}

func TestSessions_PerUser(t *testing.T) {
	s := newSessions()
	s.begin(1, stepSupportMessage)
	assert.Nil(t, s.get(2))
}

func TestT_Fallbacks(t *testing.T) {
	assert.Equal(t, "🛒 Продавцы", T("ru", "btn.sellers"))
	assert.Equal(t, "🛒 Sellers", T("en", "btn.sellers"))
	// unknown language falls back to Russian
	assert.Equal(t, "🛒 Продавцы", T("de", "btn.sellers"))
	// unknown key renders as the key so the miss is visible
	assert.Equal(t, "no.such.key", T("ru", "no.such.key"))
}

func TestT_Interpolation(t *testing.T) {
	got := T("en", "support.accepted", 7)
	assert.Contains(t, got, "#7")
}

func TestMatchButton(t *testing.T) {
	for _, text := range []string{"🛒 Продавцы", "🛒 Sellers"} {
		key, ok := matchButton(text)
		require.True(t, ok, text)
		assert.Equal(t, "btn.sellers", key)
	}
	_, ok := matchButton("random text")
	assert.False(t, ok)
}

func TestFmtAmount(t *testing.T) {
	assert.Equal(t, "2", fmtAmount(2.0))
	assert.Equal(t, "1.5", fmtAmount(1.5))
	assert.Equal(t, "12.25", fmtAmount(12.25))
	assert.Equal(t, "3", fmtAmount(3.00))
}

func TestQuantityKeyboard_RowsOfFiveCappedAtTen(t *testing.T) {
	kb := quantityKeyboard("ru", "seller_1", 25)
	// 10 buttons in rows of five, plus the back row
	require.Len(t, kb.InlineKeyboard, 3)
	assert.Len(t, kb.InlineKeyboard[0], 5)
	assert.Len(t, kb.InlineKeyboard[1], 5)
	assert.Equal(t, "qty_seller_1_10", *kb.InlineKeyboard[1][4].CallbackData)

	kb = quantityKeyboard("ru", "seller_1", 3)
	require.Len(t, kb.InlineKeyboard, 2)
	assert.Len(t, kb.InlineKeyboard[0], 3)
}
