package analyzer

import (
	"log"

	"NiftyScreener/internal/calendar"
	"NiftyScreener/internal/indicator"
	"NiftyScreener/internal/model"
	"NiftyScreener/internal/scoring"
)

// Backtest scores the given symbols as of each of the trailing reference
// Fridays, caching one row per (symbol, Friday). History is fetched once
// per symbol and truncated per Friday so no later bar leaks into an earlier
// score. Cached pairs are skipped unless force re-derives them.
func (a *Analyzer) Backtest(syms []string, startN, periods int, force bool) error {
	seq := calendar.FridaySequence(a.now(), startN, periods)
	if len(seq) == 0 {
		return nil
	}
	log.Printf("[INFO] backtest: %d symbols over %d fridays (%s .. %s)",
		len(syms), len(seq),
		seq[0].Date.Format("2006-01-02"), seq[len(seq)-1].Date.Format("2006-01-02"))

	fetched := a.batcher.CollectAll(syms, a.opts.LookbackDays)

	cached, scored, failed := 0, 0, 0
	for _, symbol := range syms {
		res := fetched[symbol]
		if !res.OK() {
			failed++
			log.Printf("[WARN] backtest skip %s: %v", symbol, res.Err)
			continue
		}

		for _, period := range seq {
			if !force {
				has, err := a.store.HasFridayAnalysis(symbol, period.Date)
				if err != nil {
					return err
				}
				if has {
					cached++
					continue
				}
			}

			bars := indicator.ClipToDate(res.Bars, period.Date)
			if len(bars) == 0 {
				continue
			}
			breakdown := scoring.ScoreBars(bars)
			scored++

			if err := a.store.SaveFridayAnalysis(&model.FridayAnalysis{
				Symbol:           symbol,
				FridayDate:       period.Date,
				Price:            bars[len(bars)-1].Close,
				TotalScore:       breakdown.TotalScore,
				Recommendation:   breakdown.Recommendation,
				RiskLevel:        breakdown.RiskLevel,
				Tier:             scoring.ClassifyTier(breakdown.TotalScore),
				TrendScore:       breakdown.Trend.Raw,
				MomentumScore:    breakdown.Momentum.Raw,
				RSIScore:         breakdown.RSI.Raw,
				VolumeScore:      breakdown.Volume.Raw,
				PriceActionScore: breakdown.PriceAction.Raw,
			}, force); err != nil {
				return err
			}
		}
	}

	log.Printf("[INFO] backtest done: %d scored, %d cached, %d failed", scored, cached, failed)
	return nil
}
