package marketdata

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
)

// CoinGeckoClient fetches daily price history from the CoinGecko market
// chart endpoint and downsamples it into weekly closing prices.
type CoinGeckoClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewCoinGeckoClient creates a new CoinGecko client
func NewCoinGeckoClient(baseURL string) *CoinGeckoClient {
	return &CoinGeckoClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: RequestTimeout,
		},
	}
}

// Name returns the provider display name used in asset records
func (c *CoinGeckoClient) Name() string {
	return "CoinGecko"
}

// FetchWeeklyCloses fetches a daily price history spanning maPeriod*7+30
// days and collapses it into weekly closes, most recent week first.
func (c *CoinGeckoClient) FetchWeeklyCloses(coinID string, maPeriod int) ([]float64, error) {
	days := maPeriod*7 + 30
	url := fmt.Sprintf("%s/coins/%s/market_chart?vs_currency=usd&days=%d&interval=daily", c.baseURL, coinID, days)

	resp, err := c.httpClient.Get(url)
	if err != nil {
		return nil, &FetchError{
			Provider: c.Name(),
			Message:  fmt.Sprintf("CoinGecko API request failed for %s", coinID),
			Err:      err,
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &FetchError{
			Provider: c.Name(),
			Message:  fmt.Sprintf("CoinGecko API returned status %d for %s", resp.StatusCode, coinID),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{
			Provider: c.Name(),
			Message:  fmt.Sprintf("failed to read CoinGecko response for %s", coinID),
			Err:      err,
		}
	}

	// The prices field must be present; an empty object means the coin id
	// was not recognized.
	var payload map[string]json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, &FetchError{
			Provider: c.Name(),
			Message:  fmt.Sprintf("failed to parse CoinGecko response for %s", coinID),
			Err:      err,
		}
	}

	rawPrices, ok := payload["prices"]
	if !ok {
		return nil, &FetchError{
			Provider: c.Name(),
			Message:  fmt.Sprintf("no price data available for %s", coinID),
		}
	}

	// Each point is a [timestamp, price] pair, oldest first.
	var prices [][]float64
	if err := json.Unmarshal(rawPrices, &prices); err != nil {
		return nil, &FetchError{
			Provider: c.Name(),
			Message:  fmt.Sprintf("failed to parse CoinGecko prices for %s", coinID),
			Err:      err,
		}
	}

	weekly := make([]float64, 0, len(prices)/7+1)
	for i := 0; i < len(prices); i += 7 {
		end := i + 7
		if end > len(prices) {
			end = len(prices)
		}
		// Last daily observation within each non-overlapping 7-day bucket
		last := prices[end-1]
		if len(last) < 2 {
			return nil, &FetchError{
				Provider: c.Name(),
				Message:  fmt.Sprintf("malformed price point in CoinGecko response for %s", coinID),
			}
		}
		weekly = append(weekly, last[1])
	}

	// The chart arrives oldest first; callers expect index 0 to be the most
	// recent week.
	for i, j := 0, len(weekly)-1; i < j; i, j = i+1, j-1 {
		weekly[i], weekly[j] = weekly[j], weekly[i]
	}

	log.Printf("CoinGecko: fetched %d weeks for %s", len(weekly), coinID)
	return weekly, nil
}

var _ PriceFetcher = (*CoinGeckoClient)(nil)
