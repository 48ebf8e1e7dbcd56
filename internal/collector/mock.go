package collector

import (
	"sync"
	"time"

	"NiftyScreener/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
// Bars takes precedence per symbol; symbols in Fail return their mapped
// error; everything else gets generated drifting bars around Price.
type MockFetcher struct {
	Price float64
	Bars  map[string][]model.PriceBar
	Fail  map[string]error

	// RateLimitUntil makes every call fail with ErrRateLimited until the
	// counter runs out. Used to exercise backoff.
	RateLimitUntil int

	mu    sync.Mutex
	calls int
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) rateLimited() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	return m.calls <= m.RateLimitUntil
}

func (m *MockFetcher) symbolBars(symbol string, lookbackDays int) ([]model.PriceBar, error) {
	if m.rateLimited() {
		return nil, ErrRateLimited
	}
	if err, ok := m.Fail[symbol]; ok {
		return nil, err
	}
	if bars, ok := m.Bars[symbol]; ok {
		if len(bars) == 0 {
			return nil, ErrNoData
		}
		return bars, nil
	}
	price := m.Price
	if price == 0 {
		price = 100
	}
	return GenerateBars(price, lookbackDays), nil
}

func (m *MockFetcher) FetchDailyBars(symbol string, lookbackDays int) ([]model.PriceBar, error) {
	return m.symbolBars(symbol, lookbackDays)
}

func (m *MockFetcher) FetchDailyBarsBatch(symbols []string, lookbackDays int) (map[string][]model.PriceBar, error) {
	out := make(map[string][]model.PriceBar, len(symbols))
	for _, symbol := range symbols {
		bars, err := m.symbolBars(symbol, lookbackDays)
		if err != nil {
			if err == ErrRateLimited {
				return nil, err
			}
			continue // missing from the batch response
		}
		out[symbol] = bars
	}
	return out, nil
}

func (m *MockFetcher) FetchCurrentPrice(symbol string) (float64, error) {
	bars, err := m.symbolBars(symbol, 1)
	if err != nil {
		return 0, err
	}
	return bars[len(bars)-1].Close, nil
}

// GenerateBars builds count weekday bars ending today with a mild upward
// drift around basePrice.
func GenerateBars(basePrice float64, count int) []model.PriceBar {
	dates := make([]time.Time, 0, count)
	day := time.Now().UTC().Truncate(24 * time.Hour)
	for len(dates) < count {
		if wd := day.Weekday(); wd != time.Saturday && wd != time.Sunday {
			dates = append(dates, day)
		}
		day = day.AddDate(0, 0, -1)
	}

	bars := make([]model.PriceBar, count)
	for i := range bars {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		bars[i] = model.PriceBar{
			Date:   dates[count-1-i],
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1_000_000,
		}
	}
	return bars
}
