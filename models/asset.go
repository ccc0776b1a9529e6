package models

// AssetRecord holds the computed weekly metrics for a single asset at a
// given moving-average period. Records are immutable once computed and are
// cached per (symbol, period) until the next daily refresh boundary.
type AssetRecord struct {
	Symbol        string  `json:"symbol"`
	CurrentPrice  float64 `json:"currentPrice"`
	MovingAverage float64 `json:"ma"`
	IsAboveMA     bool    `json:"isAboveMA"`
	PercentFromMA float64 `json:"percentFromMA"`
	PriceChange   float64 `json:"priceChange"`
	DataPoints    int     `json:"dataPoints"`
	Source        string  `json:"source"`
	LastUpdated   string  `json:"lastUpdated"`
}

// StrengthRecord expresses how far one asset's price-to-MA ratio diverges
// from another's. Derived on demand from two AssetRecords, never cached.
type StrengthRecord struct {
	IsAboveMA bool    `json:"isAboveMA"`
	Strength  float64 `json:"strength"`
	Ratio     float64 `json:"ratio"`
}

// BatchRequest is the body of POST /api/assets and POST /api/matrix.
type BatchRequest struct {
	Symbols  []string `json:"symbols"`
	MAPeriod int      `json:"ma_period"`
}

// BatchResponse is returned by POST /api/assets. Errors is nil (rendered as
// JSON null) when every symbol resolved.
type BatchResponse struct {
	Data       map[string]*AssetRecord `json:"data"`
	Errors     map[string]string       `json:"errors"`
	LastUpdate string                  `json:"lastUpdate"`
	NextUpdate string                  `json:"nextUpdate"`
	Timestamp  string                  `json:"timestamp"`
}

// MatrixResponse is returned by POST /api/matrix. Symbols that failed to
// resolve are absent from both Assets and Matrix.
type MatrixResponse struct {
	Assets     map[string]*AssetRecord              `json:"assets"`
	Matrix     map[string]map[string]StrengthRecord `json:"matrix"`
	LastUpdate string                               `json:"lastUpdate"`
	NextUpdate string                               `json:"nextUpdate"`
	Timestamp  string                               `json:"timestamp"`
}
