package analyzer

import (
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"NiftyScreener/internal/calendar"
	"NiftyScreener/internal/collector"
	"NiftyScreener/internal/indicator"
	"NiftyScreener/internal/model"
	"NiftyScreener/internal/scoring"
	"NiftyScreener/internal/store"
	"NiftyScreener/internal/symbols"
)

func fastBatch() collector.BatchConfig {
	return collector.BatchConfig{
		GroupSize:  100,
		Workers:    2,
		GroupDelay: time.Millisecond,
		RetryDelay: time.Millisecond,
	}
}

// newTestAnalyzer seeds the symbol cache so the directory never reaches for
// the network.
func newTestAnalyzer(t *testing.T, mock *collector.MockFetcher, universe []string) (*Analyzer, *store.Store) {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	infos := make([]model.StockInfo, len(universe))
	for i, s := range universe {
		infos[i] = model.StockInfo{Symbol: s, CompanyName: s + " Ltd"}
	}
	if err := st.SaveSymbols(infos); err != nil {
		t.Fatalf("SaveSymbols: %v", err)
	}

	a := New(mock, st, symbols.NewDirectory(st), Options{
		MinScore: -1000, // track everything in tests
		Batch:    fastBatch(),
	})
	return a, st
}

func breakdown(total float64) *model.ScoreBreakdown {
	label, risk := scoring.Recommendation(total)
	return &model.ScoreBreakdown{TotalScore: total, Recommendation: label, RiskLevel: risk}
}

func TestRunWeeklyTracksUniverse(t *testing.T) {
	universe := []string{"AAA", "BBB", "CCC"}
	mock := &collector.MockFetcher{
		Price: 100,
		Fail:  map[string]error{"CCC": collector.ErrNoData},
	}
	a, st := newTestAnalyzer(t, mock, universe)

	results, err := a.RunWeekly()
	if err != nil {
		t.Fatalf("RunWeekly: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 actionable results, got %d", len(results))
	}
	for i := 1; i < len(results); i++ {
		if results[i].Score > results[i-1].Score {
			t.Error("results not sorted best first")
		}
	}

	active, err := st.ListActive()
	if err != nil {
		t.Fatalf("ListActive: %v", err)
	}
	if len(active) != 2 {
		t.Errorf("expected 2 tracked positions, got %d", len(active))
	}
	for _, rec := range active {
		if rec.Symbol == "CCC" {
			t.Error("failed symbol must not be tracked")
		}
		if rec.CompanyName == "" {
			t.Error("directory metadata not attached")
		}
	}
}

func TestRunDailySellsBreachedStrong(t *testing.T) {
	// STRONG entered at 200, now trading at 185: -7.5% trips the hard stop.
	bars := collector.GenerateBars(185, 60)
	bars[len(bars)-1].Close = 185
	mock := &collector.MockFetcher{Bars: map[string][]model.PriceBar{"RELIANCE": bars}}
	a, st := newTestAnalyzer(t, mock, []string{"RELIANCE"})

	info := model.StockInfo{Symbol: "RELIANCE", CurrentPrice: 200}
	if _, _, err := a.Manager().Upsert(info, breakdown(78)); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	clock := time.Date(2026, 8, 26, 11, 0, 0, 0, time.UTC) // a Wednesday
	a.WithClock(func() time.Time { return clock })

	if err := a.RunDaily(); err != nil {
		t.Fatalf("RunDaily: %v", err)
	}

	if live, _ := st.GetActive("RELIANCE", model.TierStrong); live != nil {
		t.Fatalf("breached position still live: %+v", live)
	}
}

func TestRunDailyLeavesUnconfirmedWeak(t *testing.T) {
	// Drift is over 2% but the synthetic re-score stays far below 70, so
	// the WEAK position must not be promoted.
	mock := &collector.MockFetcher{Bars: map[string][]model.PriceBar{
		"TITAN": collector.GenerateBars(103, 60),
	}}
	a, st := newTestAnalyzer(t, mock, []string{"TITAN"})

	info := model.StockInfo{Symbol: "TITAN", CurrentPrice: 100}
	if _, _, err := a.Manager().Upsert(info, breakdown(55)); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	clock := time.Date(2026, 8, 26, 11, 0, 0, 0, time.UTC)
	a.WithClock(func() time.Time { return clock })

	if err := a.RunDaily(); err != nil {
		t.Fatalf("RunDaily: %v", err)
	}

	if weak, _ := st.GetActive("TITAN", model.TierWeak); weak == nil {
		t.Error("unconfirmed weak position should remain WEAK")
	}
	if strong, _ := st.GetActive("TITAN", model.TierStrong); strong != nil {
		t.Errorf("unexpected promotion: %+v", strong)
	}
}

func TestRunDailySkipsWeekend(t *testing.T) {
	mock := &collector.MockFetcher{Price: 100}
	a, st := newTestAnalyzer(t, mock, []string{"AAA"})

	info := model.StockInfo{Symbol: "AAA", CurrentPrice: 200}
	if _, _, err := a.Manager().Upsert(info, breakdown(78)); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	clock := time.Date(2026, 8, 29, 11, 0, 0, 0, time.UTC) // a Saturday
	a.WithClock(func() time.Time { return clock })

	if err := a.RunDaily(); err != nil {
		t.Fatalf("RunDaily: %v", err)
	}
	if snap, _ := st.LatestPerformance(1); snap != nil {
		t.Error("weekend run must not touch performance data")
	}
}

func TestScoreSymbolAsOf(t *testing.T) {
	bars := collector.GenerateBars(100, 400)
	mock := &collector.MockFetcher{Bars: map[string][]model.PriceBar{"AAA": bars}}
	a, _ := newTestAnalyzer(t, mock, []string{"AAA"})

	asOf := bars[250].Date
	got, err := a.ScoreSymbol("AAA", asOf)
	if err != nil {
		t.Fatalf("ScoreSymbol: %v", err)
	}
	want := scoring.ScoreBars(indicator.ClipToDate(bars, asOf))
	if !reflect.DeepEqual(got, want) {
		t.Error("as-of score must equal scoring the truncated series directly")
	}
}

func TestBacktestCaching(t *testing.T) {
	mock := &collector.MockFetcher{Price: 100}
	a, st := newTestAnalyzer(t, mock, []string{"AAA", "BBB"})

	if err := a.Backtest([]string{"AAA", "BBB"}, 3, 2, false); err != nil {
		t.Fatalf("Backtest: %v", err)
	}

	seq := calendar.FridaySequence(time.Now(), 3, 2)
	for _, period := range seq {
		rows, err := st.FridayAnalyses(period.Date, -1000)
		if err != nil {
			t.Fatalf("FridayAnalyses: %v", err)
		}
		if len(rows) != 2 {
			t.Errorf("%s: expected 2 cached rows, got %d", period.Label, len(rows))
		}
	}

	// Re-running without force must not duplicate.
	if err := a.Backtest([]string{"AAA", "BBB"}, 3, 2, false); err != nil {
		t.Fatalf("second Backtest: %v", err)
	}
	rows, _ := st.FridayAnalyses(seq[0].Date, -1000)
	if len(rows) != 2 {
		t.Errorf("cache duplicated rows: %d", len(rows))
	}

	// Force re-derives without error.
	if err := a.Backtest([]string{"AAA"}, 3, 2, true); err != nil {
		t.Fatalf("forced Backtest: %v", err)
	}
}
