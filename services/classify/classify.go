package classify

import "strings"

// coinGeckoIDs maps normalized ticker aliases to CoinGecko coin identifiers.
var coinGeckoIDs = map[string]string{
	"BTC":       "bitcoin",
	"BITCOIN":   "bitcoin",
	"ETH":       "ethereum",
	"ETHEREUM":  "ethereum",
	"SOL":       "solana",
	"SOLANA":    "solana",
	"ADA":       "cardano",
	"CARDANO":   "cardano",
	"XRP":       "ripple",
	"RIPPLE":    "ripple",
	"DOT":       "polkadot",
	"POLKADOT":  "polkadot",
	"DOGE":      "dogecoin",
	"DOGECOIN":  "dogecoin",
	"MATIC":     "matic-network",
	"POLYGON":   "matic-network",
	"LINK":      "chainlink",
	"CHAINLINK": "chainlink",
	"UNI":       "uniswap",
	"UNISWAP":   "uniswap",
	"AVAX":      "avalanche-2",
	"AVALANCHE": "avalanche-2",
	"HYPE":      "hyperliquid",
}

// equityAliases rewrites friendly display names into tradable tickers.
var equityAliases = map[string]string{
	"GOLD":   "GLD",
	"SILVER": "SLV",
	"OIL":    "USO",
	"SPX":    "SPY",
}

// normalize uppercases the symbol and strips USD quote suffixes.
func normalize(symbol string) string {
	s := strings.ToUpper(symbol)
	s = strings.ReplaceAll(s, "-USD", "")
	s = strings.ReplaceAll(s, "/USD", "")
	return s
}

// IsCrypto reports whether the symbol is a known cryptocurrency alias.
func IsCrypto(symbol string) bool {
	_, ok := coinGeckoIDs[normalize(symbol)]
	return ok
}

// CoinGeckoID returns the canonical CoinGecko coin identifier for a symbol.
// Unknown symbols fall back to their lowercased form; that is a best-effort
// default, not a guarantee the provider knows the coin.
func CoinGeckoID(symbol string) string {
	if id, ok := coinGeckoIDs[normalize(symbol)]; ok {
		return id
	}
	return strings.ToLower(symbol)
}

// MapSymbol maps a display symbol to the ticker the equity provider trades.
// Unmapped symbols pass through uppercased.
func MapSymbol(symbol string) string {
	upper := strings.ToUpper(symbol)
	if mapped, ok := equityAliases[upper]; ok {
		return mapped
	}
	return upper
}
