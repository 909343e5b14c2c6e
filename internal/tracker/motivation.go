package tracker

import (
	"time"

	"github.com/julianstephens/tinyhabits/internal/clock"
)

var quotes = []string{
	"Small steps, every day.",
	"Consistency beats intensity.",
	"Done is better than perfect.",
	"Tiny wins compound over time.",
	"Show up for your future self.",
}

// HeroMessage is the headline for today's progress
func HeroMessage(completed, total int) string {
	switch {
	case completed == 0:
		return "Pick one tiny habit and knock it out. Momentum beats motivation."
	case completed < total:
		return "Great start! Keep stacking wins to lock in your streak."
	default:
		return "Perfect day. Enjoy the glow, you earned it."
	}
}

// DailyQuote rotates through the quotes by day of month
func DailyQuote(cal clock.Calendar, now time.Time) string {
	day := now.In(cal.Location()).Day()
	return quotes[day%len(quotes)]
}
