package marketdata

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
)

// TwelveDataClient fetches weekly time-series bars from the Twelve Data API.
// The free tier allows 800 calls per day and 8 calls per minute, which is
// why upstream fetches go through the service-level pacer.
type TwelveDataClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewTwelveDataClient creates a new Twelve Data client
func NewTwelveDataClient(baseURL, apiKey string) *TwelveDataClient {
	return &TwelveDataClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: RequestTimeout,
		},
	}
}

// Name returns the provider display name used in asset records
func (c *TwelveDataClient) Name() string {
	return "Twelve Data"
}

// timeSeriesResponse represents the Twelve Data time_series response. On
// failure the provider reports status "error" with a message instead of an
// HTTP error code.
type timeSeriesResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Values  []struct {
		Close string `json:"close"`
	} `json:"values"`
}

// FetchWeeklyCloses requests maPeriod+10 weekly bars for a ticker. The
// provider returns bars most recent first, so the order is kept as-is.
func (c *TwelveDataClient) FetchWeeklyCloses(symbol string, maPeriod int) ([]float64, error) {
	requestURL := fmt.Sprintf("%s/time_series?symbol=%s&interval=1week&outputsize=%d&apikey=%s",
		c.baseURL, url.QueryEscape(symbol), maPeriod+10, url.QueryEscape(c.apiKey))

	resp, err := c.httpClient.Get(requestURL)
	if err != nil {
		return nil, &FetchError{
			Provider: c.Name(),
			Message:  fmt.Sprintf("Twelve Data API request failed for %s", symbol),
			Err:      err,
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &FetchError{
			Provider: c.Name(),
			Message:  fmt.Sprintf("Twelve Data API returned status %d for %s", resp.StatusCode, symbol),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{
			Provider: c.Name(),
			Message:  fmt.Sprintf("failed to read Twelve Data response for %s", symbol),
			Err:      err,
		}
	}

	var payload timeSeriesResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, &FetchError{
			Provider: c.Name(),
			Message:  fmt.Sprintf("failed to parse Twelve Data response for %s", symbol),
			Err:      err,
		}
	}

	if payload.Status == "error" {
		message := payload.Message
		if message == "" {
			message = "Unknown error"
		}
		return nil, &FetchError{
			Provider: c.Name(),
			Message:  fmt.Sprintf("Twelve Data error for %s: %s", symbol, message),
		}
	}

	if len(payload.Values) == 0 {
		return nil, &FetchError{
			Provider: c.Name(),
			Message:  fmt.Sprintf("no data available for %s", symbol),
		}
	}

	closes := make([]float64, 0, len(payload.Values))
	for _, bar := range payload.Values {
		price, err := strconv.ParseFloat(bar.Close, 64)
		if err != nil {
			return nil, &FetchError{
				Provider: c.Name(),
				Message:  fmt.Sprintf("malformed closing price %q for %s", bar.Close, symbol),
				Err:      err,
			}
		}
		closes = append(closes, price)
	}

	log.Printf("Twelve Data: fetched %d weeks for %s", len(closes), symbol)
	return closes, nil
}

var _ PriceFetcher = (*TwelveDataClient)(nil)
