// Package patchts formats and parses the timestamp that trails a unified
// diff's `--- `/`+++ ` file header: `YYYY-MM-DD HH:MM:SS [+-]HHMM`, the
// original file's mtime in its local offset from UTC. A patch (§4.1) never
// needs this value to apply; it exists only so producers/consumers that
// care about mtimes have a shared, round-trippable form.
package patchts

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// Groups: 1 = date and time, 2 = sign and offset hours, 3 = offset minutes.
var patchDateRE = regexp.MustCompile(`(\d+-\d+-\d+\s+\d+:\d+:\d+)\s*([+-]\d\d)(\d\d)$`)
var patchDateNoOffsetRE = regexp.MustCompile(`\d+-\d+-\d+\s+\d+:\d+:\d+$`)

// Format renders the UTC instant secs seconds after the epoch, at the given
// offset (seconds east of UTC), as a patch timestamp. offset must be a
// whole number of minutes. The epoch itself is always rendered in UTC,
// regardless of offset, so callers never need to reason about pre-epoch
// local times on platforms whose time libraries can't represent them.
func Format(secs, offset int64) (string, error) {
	if offset%60 != 0 {
		return "", NewFormatOffsetError(offset)
	}
	if secs == 0 {
		offset = 0
	}
	if secs+offset < 0 {
		return "", NewNegativeTimeError(secs, offset)
	}

	dt := time.Unix(secs+offset, 0).UTC()

	sign := byte('+')
	abs := offset
	if offset < 0 {
		sign = '-'
		abs = -offset
	}
	hours := abs / 3600
	minutes := (abs / 60) % 60

	return fmt.Sprintf("%s %c%02d%02d", dt.Format("2006-01-02 15:04:05"), sign, hours, minutes), nil
}

// Parse parses a patch timestamp into a UTC unix timestamp and the offset
// (seconds east of UTC) it carried.
func Parse(s string) (secs, offset int64, err error) {
	m := patchDateRE.FindStringSubmatch(s)
	if m == nil {
		if patchDateNoOffsetRE.MatchString(s) {
			return 0, 0, NewMissingTimezoneOffsetError(s)
		}
		return 0, 0, NewInvalidDateError(s)
	}

	dateStr, hoursStr, minutesStr := m[1], m[2], m[3]

	offsetHours, err := strconv.ParseInt(hoursStr, 10, 64)
	if err != nil {
		return 0, 0, NewInvalidTimezoneOffsetError(s)
	}
	offsetMinutes, err := strconv.ParseInt(minutesStr, 10, 64)
	if err != nil {
		return 0, 0, NewInvalidTimezoneOffsetError(s)
	}
	if abs64(offsetHours) >= 24 || offsetMinutes >= 60 {
		return 0, 0, NewInvalidTimezoneOffsetError(s)
	}
	offset = offsetHours*3600 + offsetMinutes*60
	if hoursStr[0] == '-' {
		offset = offsetHours*3600 - offsetMinutes*60
	}

	naive, err := time.Parse("2006-01-02 15:04:05", dateStr)
	if err != nil {
		return 0, 0, NewInvalidDateError(s)
	}
	// naive is already in UTC (time.Parse defaults to UTC absent a zone in
	// the layout); subtracting offset converts the local wall-clock reading
	// back to the UTC instant it names.
	dt := naive.Add(-time.Duration(offset) * time.Second)
	return dt.Unix(), offset, nil
}

func abs64(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}
