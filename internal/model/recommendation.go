package model

import "time"

// Recommendation is a persisted tracked position. At most one ACTIVE,
// not-sold row exists per (symbol, tier) pair.
type Recommendation struct {
	ID               int64
	Symbol           string
	CompanyName      string
	Sector           string
	MarketCap        int64
	Date             time.Time
	Recommendation   string
	Score            float64
	RiskLevel        string
	EntryPrice       float64
	TargetPrice      float64
	StopLoss         float64
	Reason           string
	TrendScore       float64
	MomentumScore    float64
	RSIScore         float64
	VolumeScore      float64
	PriceActionScore float64
	Tier             Tier
	Status           Status
	IsSold           bool
	LastFridayPrice  float64
	PromotionDate    *time.Time
	SellDate         *time.Time
	SellPrice        *float64
	RealizedReturn   *float64
	MoneyMade        *float64
}

// PerformanceSnapshot is one mark-to-market observation of an active
// recommendation. Keyed by (RecommendationID, CheckDate): re-checking the
// same day replaces instead of appending.
type PerformanceSnapshot struct {
	RecommendationID int64
	CheckDate        time.Time
	CurrentPrice     float64
	ReturnPct        float64
	DaysHeld         int
	Status           string
}

// FridayAnalysis is one cached (symbol, reference Friday) scoring row used
// for repeated backtesting queries.
type FridayAnalysis struct {
	Symbol           string
	FridayDate       time.Time
	Price            float64
	TotalScore       float64
	Recommendation   string
	RiskLevel        string
	Tier             Tier
	TrendScore       float64
	MomentumScore    float64
	RSIScore         float64
	VolumeScore      float64
	PriceActionScore float64
}
