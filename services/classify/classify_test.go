package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsCrypto(t *testing.T) {
	tests := []struct {
		symbol string
		want   bool
	}{
		{"BTC", true},
		{"btc", true},
		{"BTC-USD", true},
		{"eth/usd", true},
		{"Bitcoin", true},
		{"HYPE", true},
		{"AAPL", false},
		{"GOLD", false},
		{"SPX", false},
		{"", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, IsCrypto(tt.symbol), "symbol %q", tt.symbol)
	}
}

func TestCoinGeckoID(t *testing.T) {
	assert.Equal(t, "bitcoin", CoinGeckoID("BTC"))
	assert.Equal(t, "bitcoin", CoinGeckoID("BTC-USD"))
	assert.Equal(t, "ethereum", CoinGeckoID("eth"))
	assert.Equal(t, "matic-network", CoinGeckoID("POLYGON"))
	assert.Equal(t, "avalanche-2", CoinGeckoID("AVAX"))

	// Unknown symbols fall back to lowercase
	assert.Equal(t, "pepe", CoinGeckoID("PEPE"))
}

func TestMapSymbol(t *testing.T) {
	assert.Equal(t, "GLD", MapSymbol("GOLD"))
	assert.Equal(t, "GLD", MapSymbol("gold"))
	assert.Equal(t, "SLV", MapSymbol("SILVER"))
	assert.Equal(t, "USO", MapSymbol("OIL"))
	assert.Equal(t, "SPY", MapSymbol("SPX"))

	// Unmapped symbols pass through uppercased
	assert.Equal(t, "AAPL", MapSymbol("aapl"))
	assert.Equal(t, "QQQ", MapSymbol("QQQ"))
}
