package model

// SubScore is one scoring family's result: the clamped raw value, its
// weighted contribution to the total, and the signal labels that fired.
type SubScore struct {
	Raw      float64
	Weighted float64
	Signals  []string
}

// ScoreBreakdown is the composite output of the signal scorer. TotalScore
// is the sum of the five weighted contributions; Recommendation and
// RiskLevel are pure functions of TotalScore.
type ScoreBreakdown struct {
	Trend          SubScore
	Momentum       SubScore
	RSI            SubScore
	Volume         SubScore
	PriceAction    SubScore
	TotalScore     float64
	Recommendation string
	RiskLevel      string
}

// Tier classifies a tracked position's conviction level.
type Tier string

const (
	TierStrong Tier = "STRONG"
	TierWeak   Tier = "WEAK"
	TierHold   Tier = "HOLD"
)

// Status is a recommendation's lifecycle state.
type Status string

const (
	StatusActive Status = "ACTIVE"
	StatusSold   Status = "SOLD"
	StatusClosed Status = "CLOSED"
)
