package verifier

import (
	"errors"
	"strings"
	"time"
)

var ErrUnparseableDeparture = errors.New("unparseable_departure")

const dateLayout = "2006-01-02"

var clockLayouts = []string{"03:04 PM", "3:04 PM", "15:04"}

// DepartureInstant combines a YYYY-MM-DD date and a wall clock time such as
// "08:00 AM" into one instant in loc.
func DepartureInstant(date string, clock string, loc *time.Location) (time.Time, error) {
	date = strings.TrimSpace(date)
	clock = strings.ToUpper(strings.TrimSpace(clock))
	if date == "" || clock == "" {
		return time.Time{}, ErrUnparseableDeparture
	}

	for _, layout := range clockLayouts {
		t, err := time.ParseInLocation(dateLayout+" "+layout, date+" "+clock, loc)
		if err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrUnparseableDeparture
}
