package presenter

import (
	"math"
	"strconv"
	"strings"
	"time"
)

const (
	dateTimeSeparator = "T"
	locationSeparator = " of "

	defaultLocationFallback = "Near the"
	defaultTimeLayout       = "3:04 PM"

	maxMagnitudeBucket = 10
)

// removeTime returns the part of dateTime before the first "T", or all of it
// when there is no "T".
func removeTime(dateTime string) string {
	return strings.SplitN(dateTime, dateTimeSeparator, 2)[0]
}

// formatMagnitude formats a numeric section to one decimal place. Sections
// that are not numbers come back unchanged with bucket NoMagnitude.
func formatMagnitude(section string) (formatted string, bucket int) {
	v, err := strconv.ParseFloat(strings.TrimSpace(section), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return section, NoMagnitude
	}
	return strconv.FormatFloat(v, 'f', 1, 64), magnitudeBucket(v)
}

// magnitudeBucket maps a magnitude to a colour bucket. 0 and 1 share bucket 1,
// anything at or above 10 lands in bucket 10.
func magnitudeBucket(v float64) int {
	floor := int(math.Floor(v))
	switch {
	case floor <= 1:
		return 1
	case floor >= maxMagnitudeBucket:
		return maxMagnitudeBucket
	}
	return floor
}

// splitLocation splits "5km N of Cairo, Egypt" into "5km N of" and
// "Cairo, Egypt". Locations without " of " get the fallback offset.
func splitLocation(location, fallback string) (offset, primary string) {
	before, after, found := strings.Cut(location, locationSeparator)
	if !found {
		return fallback, location
	}
	return before + strings.TrimRight(locationSeparator, " "), after
}

// formatTime renders the clock time of an RFC 3339 timestamp. Unparseable
// input yields "".
func formatTime(dateTime, layout string) string {
	t, err := time.Parse(time.RFC3339, strings.TrimSpace(dateTime))
	if err != nil {
		return ""
	}
	return t.Format(layout)
}
