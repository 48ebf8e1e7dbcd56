package calendar

import (
	"fmt"
	"time"
)

// marketCloseHour is the local hour after which a Friday counts as complete.
// NSE closes at 15:30 IST.
const marketCloseHour = 15

// NthLastFriday returns the date of the nth most recent completed Friday
// relative to now (n=1 is the most recent). On a Friday before 15:00 the
// current day is treated as not yet complete and the prior Friday is used.
// Pure in now, so backtests stay reproducible.
func NthLastFriday(now time.Time, n int) time.Time {
	if n < 1 {
		n = 1
	}

	var daysBack int
	switch wd := now.Weekday(); wd {
	case time.Friday:
		if now.Hour() < marketCloseHour {
			daysBack = 7
		} else {
			daysBack = 0
		}
	case time.Saturday:
		daysBack = 1
	case time.Sunday:
		daysBack = 2
	default: // Monday..Thursday
		daysBack = int(wd) + 2
	}
	daysBack += (n - 1) * 7

	d := now.AddDate(0, 0, -daysBack)
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, d.Location())
}

// FridayPeriod is one reference date of a monitoring cadence.
type FridayPeriod struct {
	Date  time.Time
	Label string
}

// FridaySequence returns `periods` consecutive reference Fridays ending at
// the startN-th last Friday's week, oldest first.
func FridaySequence(now time.Time, startN, periods int) []FridayPeriod {
	seq := make([]FridayPeriod, 0, periods)
	for i := 0; i < periods; i++ {
		n := startN - i
		if n < 1 {
			break
		}
		seq = append(seq, FridayPeriod{
			Date:  NthLastFriday(now, n),
			Label: fridayLabel(n),
		})
	}
	return seq
}

func fridayLabel(n int) string {
	switch n {
	case 1:
		return "Last Friday"
	case 2:
		return "2nd Last Friday"
	case 3:
		return "3rd Last Friday"
	default:
		return fmt.Sprintf("%dth Last Friday", n)
	}
}
