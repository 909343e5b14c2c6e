package tracker

import (
	"fmt"

	"github.com/julianstephens/tinyhabits/internal/constants"
	"github.com/julianstephens/tinyhabits/internal/models"
)

// SelectBestDay picks the day with the highest completion. Ties go to the
// earlier day. With no completed habits the result is a placeholder.
func SelectBestDay(stats []models.DayStat) models.BestDay {
	best := -1
	for i, s := range stats {
		if s.Total == 0 || s.Percent <= 0 {
			continue
		}
		if best < 0 || s.Percent > stats[best].Percent {
			best = i
		}
	}

	if best < 0 {
		return models.BestDay{
			Label:  constants.NoBestDayLabel,
			Detail: constants.NoBestDayDetail,
		}
	}

	s := stats[best]
	weekday := s.Date.Weekday().String()
	return models.BestDay{
		Label:   weekday,
		Detail:  fmt.Sprintf("%s completion on %s.", FormatPercent(s.Percent), weekday),
		Date:    s.Date,
		Percent: s.Percent,
		Found:   true,
	}
}
