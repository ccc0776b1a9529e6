package services

import (
	"errors"
	"log"
	"time"

	"asset_strength_backend/models"
	"asset_strength_backend/services/analysis"
	"asset_strength_backend/services/classify"
	"asset_strength_backend/services/marketdata"
)

// AssetService sequences classification, caching, provider fetches and
// metric computation for asset requests.
type AssetService struct {
	crypto   marketdata.PriceFetcher
	equity   marketdata.PriceFetcher
	cache    *DailyCache
	pacer    *Pacer
	boundary *RefreshBoundary
}

// NewAssetService creates a new asset service
func NewAssetService(crypto, equity marketdata.PriceFetcher, cache *DailyCache, pacer *Pacer, boundary *RefreshBoundary) *AssetService {
	return &AssetService{
		crypto:   crypto,
		equity:   equity,
		cache:    cache,
		pacer:    pacer,
		boundary: boundary,
	}
}

// GetAsset returns the computed record for one symbol, served from the
// daily cache when fresh.
func (s *AssetService) GetAsset(symbol string, maPeriod int) (*models.AssetRecord, error) {
	key := CacheKey(symbol, maPeriod)
	return s.cache.GetOrCompute(key, func() (*models.AssetRecord, error) {
		return s.computeAsset(symbol, maPeriod)
	})
}

// computeAsset performs the actual provider fetch and metric computation.
// Only this path is paced; cache hits never reach it.
func (s *AssetService) computeAsset(symbol string, maPeriod int) (*models.AssetRecord, error) {
	s.pacer.Wait()

	var (
		series []float64
		source string
		err    error
	)
	if classify.IsCrypto(symbol) {
		log.Printf("%s detected as crypto, using %s", symbol, s.crypto.Name())
		series, err = s.crypto.FetchWeeklyCloses(classify.CoinGeckoID(symbol), maPeriod)
		source = s.crypto.Name()
	} else {
		log.Printf("%s detected as stock/ETF, using %s", symbol, s.equity.Name())
		series, err = s.equity.FetchWeeklyCloses(classify.MapSymbol(symbol), maPeriod)
		source = s.equity.Name()
	}
	if err != nil {
		return nil, err
	}

	lastUpdated := s.boundary.Last(time.Now()).Format(time.RFC3339)
	return analysis.ComputeMetrics(symbol, series, maPeriod, source, lastUpdated)
}

// GetAssets resolves each symbol independently, in caller order. Failures
// land in the returned error map instead of aborting the batch.
func (s *AssetService) GetAssets(symbols []string, maPeriod int) (map[string]*models.AssetRecord, map[string]string) {
	records := make(map[string]*models.AssetRecord)
	errs := make(map[string]string)

	for _, symbol := range symbols {
		record, err := s.GetAsset(symbol, maPeriod)
		if err != nil {
			log.Printf("Error fetching %s: %v", symbol, err)
			errs[symbol] = err.Error()
			continue
		}
		records[symbol] = record
	}

	return records, errs
}

// StrengthMatrix resolves all symbols, then computes a StrengthRecord for
// every ordered pair of distinct symbols that resolved successfully.
// Unresolved symbols are silently excluded from the matrix; pairs with a
// zero denominator are skipped rather than failing the request.
func (s *AssetService) StrengthMatrix(symbols []string, maPeriod int) (map[string]*models.AssetRecord, map[string]map[string]models.StrengthRecord) {
	records, _ := s.GetAssets(symbols, maPeriod)

	matrix := make(map[string]map[string]models.StrengthRecord)
	for _, base := range symbols {
		baseRecord, ok := records[base]
		if !ok {
			continue
		}

		row := make(map[string]models.StrengthRecord)
		for _, quote := range symbols {
			if quote == base {
				continue
			}
			quoteRecord, ok := records[quote]
			if !ok {
				continue
			}
			strength, err := analysis.RelativeStrength(baseRecord, quoteRecord)
			if err != nil {
				log.Printf("Skipping %s/%s pair: %v", base, quote, err)
				continue
			}
			row[quote] = strength
		}
		matrix[base] = row
	}

	return records, matrix
}

// IsClientError reports whether err is a data or provider error the client
// caused or can act on, as opposed to an unexpected internal failure.
func IsClientError(err error) bool {
	var fetchErr *marketdata.FetchError
	var insufficientErr *analysis.InsufficientDataError
	return errors.As(err, &fetchErr) || errors.As(err, &insufficientErr)
}
