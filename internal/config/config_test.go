package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_RequiresToken(t *testing.T) {
	t.Setenv("BOT_TOKEN", "")
	_, err := New()
	require.Error(t, err)
}

func TestNew_Defaults(t *testing.T) {
	t.Setenv("BOT_TOKEN", "123:abc")

	cfg, err := New()
	require.NoError(t, err)
	assert.Equal(t, "123:abc", cfg.BotToken)
	assert.Equal(t, int64(0), cfg.AdminID)
	assert.Equal(t, "bot_data.json", cfg.DBFile)
	assert.Empty(t, cfg.USDTWallet)
	assert.False(t, cfg.Debug)
}

func TestNew_Overrides(t *testing.T) {
	t.Setenv("BOT_TOKEN", "123:abc")
	t.Setenv("ADMIN_ID", "8226794980")
	t.Setenv("USDT_WALLET", "TWalletAddress")
	t.Setenv("DB_FILE", "/var/lib/keyshop/data.json")
	t.Setenv("DEBUG", "true")

	cfg, err := New()
	require.NoError(t, err)
	assert.Equal(t, int64(8226794980), cfg.AdminID)
	assert.Equal(t, "TWalletAddress", cfg.USDTWallet)
	assert.Equal(t, "/var/lib/keyshop/data.json", cfg.DBFile)
	assert.True(t, cfg.Debug)
}
