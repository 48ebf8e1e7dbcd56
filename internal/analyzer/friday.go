package analyzer

import (
	"log"
	"time"

	"NiftyScreener/internal/model"
)

// RunFriday is the end-of-week maintenance routine: sweep out lagging
// STRONG positions, refresh the Friday baselines promotion checks measure
// against, then run the full weekly scan. Outside Friday it only runs when
// forced.
func (a *Analyzer) RunFriday(force bool) ([]WeeklyResult, error) {
	if wd := a.now().Weekday(); wd != time.Friday && !force {
		log.Printf("[INFO] today is %s, skipping friday routine", wd)
		return nil, nil
	}

	log.Println("[INFO] friday routine: cleaning up lagging STRONG positions")
	if err := a.cleanupStrong(); err != nil {
		log.Printf("[WARN] cleanup: %v", err)
	}

	log.Println("[INFO] friday routine: refreshing baselines")
	if err := a.refreshBaselines(); err != nil {
		log.Printf("[WARN] refresh baselines: %v", err)
	}

	log.Println("[INFO] friday routine: running weekly scan")
	return a.RunWeekly()
}

func (a *Analyzer) cleanupStrong() error {
	strong, err := a.store.ListByTier(model.TierStrong)
	if err != nil {
		return err
	}
	if len(strong) == 0 {
		return nil
	}

	prices := a.currentPrices(symbolsOf(strong))
	sold, err := a.manager.Cleanup(prices)
	if err != nil {
		return err
	}
	if len(sold) > 0 {
		log.Printf("[INFO] cleanup sold %d positions: %v", len(sold), sold)
	}
	return nil
}

func (a *Analyzer) refreshBaselines() error {
	active, err := a.store.ListActive()
	if err != nil {
		return err
	}
	if len(active) == 0 {
		return nil
	}
	prices := a.currentPrices(symbolsOf(active))
	return a.manager.RefreshFridayBaselines(prices)
}
