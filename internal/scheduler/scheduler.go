package scheduler

import (
	"fmt"
	"log"

	"NiftyScreener/internal/analyzer"

	"github.com/robfig/cron/v3"
)

// Scheduler manages the cron tasks: the trading-day monitor and the Friday
// end-of-week routine.
type Scheduler struct {
	Cron     *cron.Cron
	Analyzer *analyzer.Analyzer
}

// NewScheduler creates a new Scheduler.
func NewScheduler(a *analyzer.Analyzer) *Scheduler {
	return &Scheduler{
		Cron:     cron.New(cron.WithSeconds()),
		Analyzer: a,
	}
}

// RegisterAll registers the daily and Friday tasks.
func (s *Scheduler) RegisterAll(dailyCron, fridayCron string) error {
	if _, err := s.Cron.AddFunc(dailyCron, s.dailyTask); err != nil {
		return fmt.Errorf("register daily task: %w", err)
	}
	if _, err := s.Cron.AddFunc(fridayCron, s.fridayTask); err != nil {
		return fmt.Errorf("register friday task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunFridayNow executes the Friday routine immediately (manual trigger /
// RUN_ON_START), forcing it even off-Friday.
func (s *Scheduler) RunFridayNow() {
	if _, err := s.Analyzer.RunFriday(true); err != nil {
		log.Printf("[ERROR] friday run: %v", err)
	}
}

func (s *Scheduler) dailyTask() {
	log.Println("[INFO] running daily task")
	if err := s.Analyzer.RunDaily(); err != nil {
		log.Printf("[ERROR] daily monitoring: %v", err)
	}
}

func (s *Scheduler) fridayTask() {
	log.Println("[INFO] running friday task")
	if _, err := s.Analyzer.RunFriday(false); err != nil {
		log.Printf("[ERROR] friday analysis: %v", err)
	}
}
