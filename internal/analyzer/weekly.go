package analyzer

import (
	"log"
	"sort"

	"NiftyScreener/internal/model"
	"NiftyScreener/internal/scoring"
	"NiftyScreener/internal/store"
)

// WeeklyResult is one symbol's outcome from a full scan.
type WeeklyResult struct {
	Symbol    string
	Score     float64
	Tier      model.Tier
	Breakdown *model.ScoreBreakdown
	Price     float64
}

// RunWeekly scans the whole symbol universe: batch-fetch history, score
// every symbol, and track everything at or above the score floor. Returns
// the actionable results sorted best first.
func (a *Analyzer) RunWeekly() ([]WeeklyResult, error) {
	start := a.now()
	universe := a.Universe()
	log.Printf("[INFO] weekly scan over %d symbols", len(universe))

	fetched := a.batcher.CollectAll(universe, a.opts.LookbackDays)

	var (
		results   []WeeklyResult
		succeeded int
		failed    int
		tiers     = map[model.Tier]int{}
		scoreSum  float64
	)
	for _, symbol := range universe {
		res := fetched[symbol]
		if !res.OK() {
			failed++
			continue
		}
		breakdown := scoring.ScoreBars(res.Bars)
		succeeded++
		scoreSum += breakdown.TotalScore

		tier := scoring.ClassifyTier(breakdown.TotalScore)
		tiers[tier]++

		if breakdown.TotalScore < a.opts.MinScore {
			continue
		}

		price := res.Bars[len(res.Bars)-1].Close
		info := a.dir.Metadata(symbol)
		info.CurrentPrice = price
		if _, _, err := a.manager.Upsert(info, breakdown); err != nil {
			log.Printf("[WARN] track %s: %v", symbol, err)
			continue
		}
		results = append(results, WeeklyResult{
			Symbol:    symbol,
			Score:     breakdown.TotalScore,
			Tier:      tier,
			Breakdown: breakdown,
			Price:     price,
		})
	}

	sort.Slice(results, func(i, j int) bool { return results[i].Score > results[j].Score })

	avgScore := 0.0
	if succeeded > 0 {
		avgScore = scoreSum / float64(succeeded)
	}
	duration := a.now().Sub(start).Seconds()
	if err := a.store.SaveAnalysisRun(&store.RunSummary{
		RunDate:     a.now().Format("2006-01-02"),
		Analyzed:    len(universe),
		Succeeded:   succeeded,
		Failed:      failed,
		StrongCount: tiers[model.TierStrong],
		WeakCount:   tiers[model.TierWeak],
		HoldCount:   tiers[model.TierHold],
		AvgScore:    avgScore,
		Duration:    duration,
	}); err != nil {
		log.Printf("[WARN] save run summary: %v", err)
	}

	log.Printf("[INFO] weekly scan done: %d scored, %d failed, %d actionable (%.0fs)",
		succeeded, failed, len(results), duration)
	return results, nil
}
