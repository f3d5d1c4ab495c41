package view

import (
	"fmt"
	"math"
	"time"

	"github.com/glageb/cur-vintage-jobs/internal/model"
)

// PrintedLabel describes how long ago a card was posted, counted in whole
// calendar days in now's location. Unparsable or future dates fall back to
// "printed on <posted>".
func PrintedLabel(posted string, now time.Time) string {
	date, err := time.ParseInLocation(model.DateLayout, posted, now.Location())
	if err != nil {
		return "printed on " + posted
	}
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	days := int(math.Round(today.Sub(date).Hours() / 24))

	switch {
	case days < 0:
		return "printed on " + posted
	case days == 0:
		return "printed today on " + posted
	case days == 1:
		return "printed 1 day ago on " + posted
	}
	return fmt.Sprintf("printed %d days ago on %s", days, posted)
}
