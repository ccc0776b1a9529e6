package analysis

import (
	"fmt"

	"asset_strength_backend/models"

	"github.com/montanaflynn/stats"
	"github.com/shopspring/decimal"
)

// InsufficientDataError reports a price series shorter than the requested
// moving-average period.
type InsufficientDataError struct {
	Period int
	Points int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("insufficient data for %d-week SMA (got %d points)", e.Period, e.Points)
}

// round2 and round6 reproduce the dashboard's display rounding: prices and
// percentages to 2 decimal places, ratios to 6. Bankers rounding keeps
// output parity with the original backend.
func round2(v float64) float64 {
	return decimal.NewFromFloat(v).RoundBank(2).InexactFloat64()
}

func round6(v float64) float64 {
	return decimal.NewFromFloat(v).RoundBank(6).InexactFloat64()
}

// ComputeMetrics derives SMA-based metrics from a weekly closing series.
// The series must be ordered most recent week first; the SMA is the mean of
// the first maPeriod closes.
func ComputeMetrics(symbol string, series []float64, maPeriod int, source, lastUpdated string) (*models.AssetRecord, error) {
	if maPeriod < 1 {
		return nil, fmt.Errorf("invalid MA period %d", maPeriod)
	}
	if len(series) < maPeriod {
		return nil, &InsufficientDataError{Period: maPeriod, Points: len(series)}
	}

	sma, err := stats.Mean(series[:maPeriod])
	if err != nil {
		return nil, fmt.Errorf("failed to compute %d-week SMA for %s: %w", maPeriod, symbol, err)
	}
	if sma == 0 {
		return nil, fmt.Errorf("zero %d-week SMA for %s", maPeriod, symbol)
	}

	current := series[0]

	// Week-over-week change; a single data point is not an error, but a zero
	// prior close (dead or delisted asset) makes the change incomputable
	priceChange := 0.0
	if len(series) > 1 {
		if series[1] == 0 {
			return nil, fmt.Errorf("zero prior close for %s", symbol)
		}
		priceChange = (series[0] - series[1]) / series[1] * 100
	}

	return &models.AssetRecord{
		Symbol:        symbol,
		CurrentPrice:  round2(current),
		MovingAverage: round2(sma),
		IsAboveMA:     current > sma,
		PercentFromMA: round2((current - sma) / sma * 100),
		PriceChange:   round2(priceChange),
		DataPoints:    len(series),
		Source:        source,
		LastUpdated:   lastUpdated,
	}, nil
}

// RelativeStrength compares how far the base asset's price-to-MA ratio
// diverges from the quote asset's. Both records must have been computed for
// the same MA period. A zero denominator makes the pair incomparable.
func RelativeStrength(base, quote *models.AssetRecord) (models.StrengthRecord, error) {
	if quote.CurrentPrice == 0 || quote.MovingAverage == 0 {
		return models.StrengthRecord{}, fmt.Errorf("cannot compare %s against %s: zero price or MA", base.Symbol, quote.Symbol)
	}

	priceRatio := base.CurrentPrice / quote.CurrentPrice
	maRatio := base.MovingAverage / quote.MovingAverage
	if maRatio == 0 {
		return models.StrengthRecord{}, fmt.Errorf("cannot compare %s against %s: zero MA ratio", base.Symbol, quote.Symbol)
	}

	return models.StrengthRecord{
		IsAboveMA: priceRatio > maRatio,
		Strength:  round2((priceRatio - maRatio) / maRatio * 100),
		Ratio:     round6(priceRatio),
	}, nil
}
