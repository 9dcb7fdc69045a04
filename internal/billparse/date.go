package billparse

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"
)

const (
	// Numbers outside (serialMin, serialMax) are amounts or ids, not dates.
	serialMin = 30000
	serialMax = 60000

	secondsPerDay = 86400
	// Pushes k/86400 fractions that land just under an integer second back over it.
	serialEpsilon = 1e-7
)

var spreadsheetEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

var dateTimePattern = regexp.MustCompile(
	`^(\d{4})[-年](\d{1,2})[-月](\d{1,2})日?(?:[\sT]+(\d{1,2})[:：](\d{1,2})(?:[:：](\d{1,2}))?)?`,
)

// NormalizeDate converts a raw date cell into a canonical "YYYY-MM-DD HH:mm:ss"
// string. Numeric cells are decoded as spreadsheet serials when they fall in
// the plausible date range and yield "" otherwise. Text that does not look
// like a date is returned as-is after trimming and slash replacement.
func NormalizeDate(v Value) string {
	if f, ok := v.Float(); ok {
		if math.IsNaN(f) || f <= serialMin || f >= serialMax {
			return ""
		}
		return serialToTimestamp(f)
	}

	s := strings.TrimSpace(v.Raw())
	if s == "" {
		return ""
	}
	s = strings.ReplaceAll(s, "/", "-")

	m := dateTimePattern.FindStringSubmatch(s)
	if m == nil {
		return s
	}

	clock := "00:00:00"
	if m[4] != "" {
		clock = fmt.Sprintf("%s:%s:%s", pad2(m[4]), pad2(m[5]), pad2(m[6]))
	}
	return fmt.Sprintf("%s-%s-%s %s", m[1], pad2(m[2]), pad2(m[3]), clock)
}

// serialToTimestamp splits the serial into whole days and seconds of the day.
// The clock comes from integer arithmetic on the fractional day.
func serialToTimestamp(serial float64) string {
	days := math.Floor(serial)
	secs := int(math.Floor(secondsPerDay * (serial - days + serialEpsilon)))
	if secs >= secondsPerDay {
		days++
		secs -= secondsPerDay
	}

	d := spreadsheetEpoch.AddDate(0, 0, int(days))
	return fmt.Sprintf("%04d-%02d-%02d %02d:%02d:%02d",
		d.Year(), int(d.Month()), d.Day(),
		secs/3600, secs/60%60, secs%60)
}

func pad2(s string) string {
	switch len(s) {
	case 0:
		return "00"
	case 1:
		return "0" + s
	default:
		return s
	}
}
