package collector

import (
	"errors"
	"log"
	"math/rand"
	"sync"
	"time"
)

// BatchConfig tunes the batched collection pass.
type BatchConfig struct {
	GroupSize   int           // symbols per batch call
	Workers     int           // concurrent group fetches, clamped to [2,5]
	GroupDelay  time.Duration // pause between group fetches
	RetryDelay  time.Duration // shorter pause in the straggler pass
	MaxAttempts int           // rate-limit backoff ceiling
}

func (c BatchConfig) withDefaults() BatchConfig {
	if c.GroupSize <= 0 {
		c.GroupSize = 100
	}
	if c.Workers < 2 {
		c.Workers = 2
	}
	if c.Workers > 5 {
		c.Workers = 5
	}
	if c.GroupDelay <= 0 {
		c.GroupDelay = 2 * time.Second
	}
	if c.RetryDelay <= 0 {
		c.RetryDelay = 500 * time.Millisecond
	}
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = 3
	}
	return c
}

// Batcher runs the two-pass collection policy: batched group fetches first,
// then an individual straggler pass over whatever the groups missed.
type Batcher struct {
	fetcher Fetcher
	cfg     BatchConfig
}

func NewBatcher(fetcher Fetcher, cfg BatchConfig) *Batcher {
	return &Batcher{fetcher: fetcher, cfg: cfg.withDefaults()}
}

// CollectAll fetches daily history for every symbol. One symbol's failure
// never aborts the rest; the returned map carries an entry per requested
// symbol, failed ones with Err set.
func (b *Batcher) CollectAll(symbols []string, lookbackDays int) map[string]Result {
	results := make(map[string]Result, len(symbols))
	var mu sync.Mutex

	groups := chunk(symbols, b.cfg.GroupSize)
	groupCh := make(chan []string)
	var wg sync.WaitGroup

	for w := 0; w < b.cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for group := range groupCh {
				got := b.fetchGroup(group, lookbackDays)
				mu.Lock()
				for symbol, res := range got {
					results[symbol] = res
				}
				mu.Unlock()
				sleepJittered(b.cfg.GroupDelay)
			}
		}()
	}
	for _, group := range groups {
		groupCh <- group
	}
	close(groupCh)
	wg.Wait()

	// Straggler pass: whatever the groups missed gets one individual
	// attempt each, with a shorter delay between calls.
	var stragglers []string
	for _, symbol := range symbols {
		if res, ok := results[symbol]; !ok || !res.OK() {
			stragglers = append(stragglers, symbol)
		}
	}
	if len(stragglers) > 0 {
		log.Printf("[INFO] retrying %d stragglers individually", len(stragglers))
	}
	for _, symbol := range stragglers {
		bars, err := b.withBackoff(func() ([]Result, error) {
			bars, err := b.fetcher.FetchDailyBars(symbol, lookbackDays)
			if err != nil {
				return nil, err
			}
			return []Result{{Symbol: symbol, Bars: bars}}, nil
		})
		if err != nil {
			results[symbol] = Result{Symbol: symbol, Err: err}
		} else {
			results[symbol] = bars[0]
		}
		sleepJittered(b.cfg.RetryDelay)
	}

	ok := 0
	for _, res := range results {
		if res.OK() {
			ok++
		}
	}
	log.Printf("[INFO] collected %d/%d symbols", ok, len(symbols))
	return results
}

// fetchGroup runs one batch call. A group-level failure marks every symbol
// in the group failed; symbols silently absent from a successful response
// are marked ErrNoData so the straggler pass picks them up.
func (b *Batcher) fetchGroup(group []string, lookbackDays int) map[string]Result {
	out := make(map[string]Result, len(group))

	got, err := b.withBackoff(func() ([]Result, error) {
		barsBySymbol, err := b.fetcher.FetchDailyBarsBatch(group, lookbackDays)
		if err != nil {
			return nil, err
		}
		results := make([]Result, 0, len(barsBySymbol))
		for symbol, bars := range barsBySymbol {
			results = append(results, Result{Symbol: symbol, Bars: bars})
		}
		return results, nil
	})
	if err != nil {
		log.Printf("[WARN] group of %d failed: %v", len(group), err)
		for _, symbol := range group {
			out[symbol] = Result{Symbol: symbol, Err: err}
		}
		return out
	}

	for _, res := range got {
		out[res.Symbol] = res
	}
	for _, symbol := range group {
		if _, ok := out[symbol]; !ok {
			out[symbol] = Result{Symbol: symbol, Err: ErrNoData}
		}
	}
	return out
}

// withBackoff retries rate-limited calls with exponential backoff up to the
// attempt ceiling. Other errors return immediately.
func (b *Batcher) withBackoff(fetch func() ([]Result, error)) ([]Result, error) {
	delay := b.cfg.RetryDelay
	var lastErr error
	for attempt := 1; attempt <= b.cfg.MaxAttempts; attempt++ {
		results, err := fetch()
		if err == nil {
			return results, nil
		}
		lastErr = err
		if !errors.Is(err, ErrRateLimited) {
			return nil, err
		}
		if attempt < b.cfg.MaxAttempts {
			log.Printf("[WARN] rate limited, backing off %v (attempt %d/%d)",
				delay, attempt, b.cfg.MaxAttempts)
			sleepJittered(delay)
			delay *= 2
		}
	}
	return nil, lastErr
}

func chunk(symbols []string, size int) [][]string {
	var out [][]string
	for len(symbols) > size {
		out = append(out, symbols[:size])
		symbols = symbols[size:]
	}
	if len(symbols) > 0 {
		out = append(out, symbols)
	}
	return out
}

func sleepJittered(base time.Duration) {
	if base <= 0 {
		return
	}
	jitter := time.Duration(rand.Int63n(int64(base) / 2))
	time.Sleep(base/2 + jitter)
}
