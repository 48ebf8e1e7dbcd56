package main

import (
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"NiftyScreener/internal/analyzer"
	"NiftyScreener/internal/collector"
	"NiftyScreener/internal/config"
	"NiftyScreener/internal/scheduler"
	"NiftyScreener/internal/store"
	"NiftyScreener/internal/symbols"

	"github.com/joho/godotenv"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] NiftyScreener starting...")

	// .env is optional; real env always wins.
	_ = godotenv.Load()

	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	var fetcher collector.Fetcher
	switch cfg.DataSource.Provider {
	case "mock":
		fetcher = &collector.MockFetcher{Price: 100}
	default:
		yf := collector.NewYahooFetcher()
		yf.Suffix = cfg.DataSource.Suffix
		fetcher = yf
	}
	log.Printf("[INFO] data source: %s", fetcher.Name())

	st, err := store.Open(cfg.Database.SQLitePath)
	if err != nil {
		log.Fatalf("[FATAL] open store: %v", err)
	}
	defer st.Close()

	dir := symbols.NewDirectory(st)
	a := analyzer.New(fetcher, st, dir, analyzer.Options{
		MinScore:     cfg.Analysis.MinScore,
		LookbackDays: cfg.Analysis.LookbackDays,
		Universe:     cfg.Analysis.Universe,
		Batch: collector.BatchConfig{
			GroupSize: cfg.Analysis.BatchSize,
			Workers:   cfg.Analysis.Workers,
		},
	})

	switch strings.ToLower(os.Getenv("RUN_MODE")) {
	case "daily":
		if err := a.RunDaily(); err != nil {
			log.Fatalf("[FATAL] daily run: %v", err)
		}
		return
	case "friday":
		results, err := a.RunFriday(true)
		if err != nil {
			log.Fatalf("[FATAL] friday run: %v", err)
		}
		printTopResults(results)
		return
	case "backtest":
		syms := a.Universe()
		if err := a.Backtest(syms, cfg.Backtest.StartN, cfg.Backtest.Periods, os.Getenv("FORCE") == "true"); err != nil {
			log.Fatalf("[FATAL] backtest: %v", err)
		}
		return
	}

	sched := scheduler.NewScheduler(a)
	if err := sched.RegisterAll(cfg.Schedule.DailyCron, cfg.Schedule.FridayCron); err != nil {
		log.Fatalf("[FATAL] register cron tasks: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, executing friday routine now")
		go sched.RunFridayNow()
	}

	log.Println("[INFO] NiftyScreener is running. Press Ctrl+C to stop.")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
}

func printTopResults(results []analyzer.WeeklyResult) {
	n := len(results)
	if n > 10 {
		n = 10
	}
	for i := 0; i < n; i++ {
		r := results[i]
		label, risk := analyzer.Recommendation(r.Score, true)
		log.Printf("[INFO] #%d %-12s %6.1f  %-12s tier=%-6s risk=%s price=%.2f",
			i+1, r.Symbol, r.Score, label, r.Tier, risk, r.Price)
	}
}
