package tracker

import (
	"testing"
	"time"
)

func TestHeroMessage(t *testing.T) {
	tests := []struct {
		completed, total int
		want             string
	}{
		{0, 3, "Pick one tiny habit and knock it out. Momentum beats motivation."},
		{1, 3, "Great start! Keep stacking wins to lock in your streak."},
		{3, 3, "Perfect day. Enjoy the glow, you earned it."},
		{0, 0, "Pick one tiny habit and knock it out. Momentum beats motivation."},
	}

	for _, tt := range tests {
		if got := HeroMessage(tt.completed, tt.total); got != tt.want {
			t.Errorf("HeroMessage(%d, %d) = %q, want %q", tt.completed, tt.total, got, tt.want)
		}
	}
}

func TestDailyQuoteRotates(t *testing.T) {
	first := DailyQuote(utc, time.Date(2026, 10, 5, 8, 0, 0, 0, time.UTC))
	if first != "Small steps, every day." {
		t.Errorf("expected the first quote on day 5, got %q", first)
	}

	second := DailyQuote(utc, time.Date(2026, 10, 6, 8, 0, 0, 0, time.UTC))
	if second != "Consistency beats intensity." {
		t.Errorf("expected the second quote on day 6, got %q", second)
	}
}
