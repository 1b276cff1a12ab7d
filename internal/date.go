package internal

import (
	"strconv"
	"time"
)

// TakeoutLayout is the "formatted" rendering used in takeout sidecars.
const TakeoutLayout = "Mon, 02 Jan 2006 15:04:05 UTC"

// EpochSeconds truncates t toward zero to whole seconds since the epoch.
func EpochSeconds(t time.Time) int64 {
	sec := t.Unix()
	// Unix() floors; pre-1970 instants with a fractional part round up.
	if sec < 0 && t.Nanosecond() > 0 {
		sec++
	}
	return sec
}

// FormatTimestamp renders sec in UTC with TakeoutLayout.
func FormatTimestamp(sec int64) string {
	return time.Unix(sec, 0).UTC().Format(TakeoutLayout)
}

// ParseFormatted is the inverse of FormatTimestamp.
func ParseFormatted(s string) (int64, error) {
	t, err := time.Parse(TakeoutLayout, s)
	if err != nil {
		return 0, err
	}
	return t.Unix(), nil
}

// NewTimeObject builds the {timestamp, formatted} pair for sec.
func NewTimeObject(sec int64) TimeObject {
	return TimeObject{
		Timestamp: strconv.FormatInt(sec, 10),
		Formatted: FormatTimestamp(sec),
	}
}
