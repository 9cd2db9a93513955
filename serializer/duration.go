package serializer

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

const msgDurationFormat = "Duration has wrong format. Use one of these formats instead: [DD] [HH:[MM:]]ss[.uuuuuu]."

var errDurationFormat = errors.New(msgDurationFormat)

// FormatDuration renders d as "[D ]HH:MM:SS[.ffffff]".
func FormatDuration(d time.Duration) string {
	sign := ""
	if d < 0 {
		sign = "-"
		d = -d
	}

	days := d / (24 * time.Hour)
	d -= days * 24 * time.Hour
	hours := d / time.Hour
	d -= hours * time.Hour
	minutes := d / time.Minute
	d -= minutes * time.Minute
	seconds := d / time.Second
	d -= seconds * time.Second
	micros := d / time.Microsecond

	s := fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
	if days > 0 {
		s = fmt.Sprintf("%d %s", days, s)
	}
	if micros > 0 {
		s = fmt.Sprintf("%s.%06d", s, micros)
	}

	return sign + s
}

// ParseDuration accepts the FormatDuration layout, "MM:SS", bare seconds,
// Go duration strings such as "1h30m", or a JSON number of seconds.
func ParseDuration(raw json.RawMessage) (time.Duration, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return 0, errDurationFormat
	}

	if raw[0] != '"' {
		secs, err := strconv.ParseFloat(string(raw), 64)
		if err != nil {
			return 0, errDurationFormat
		}
		ns := secs * float64(time.Second)
		if math.IsNaN(ns) || ns >= math.MaxInt64 || ns <= math.MinInt64 {
			return 0, errDurationFormat
		}
		return time.Duration(ns), nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return 0, errDurationFormat
	}

	return ParseDurationString(s)
}

func ParseDurationString(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errDurationFormat
	}

	if d, err := parseClock(s); err == nil {
		return d, nil
	}
	if d, err := time.ParseDuration(s); err == nil {
		return d, nil
	}

	return 0, errDurationFormat
}

func parseClock(s string) (time.Duration, error) {
	var days time.Duration

	if i := strings.IndexByte(s, ' '); i >= 0 {
		n, err := strconv.ParseInt(s[:i], 10, 64)
		if err != nil {
			return 0, errDurationFormat
		}
		neg := n < 0
		if neg {
			n = -n
		}
		d, ok := scale(n, 24*time.Hour)
		if !ok {
			return 0, errDurationFormat
		}
		if neg {
			d = -d
		}
		days = d

		s = strings.TrimSpace(s[i+1:])
		s = strings.TrimPrefix(s, "days, ")
		s = strings.TrimPrefix(s, "day, ")
	}

	sign := time.Duration(1)
	if strings.HasPrefix(s, "-") {
		sign = -1
		s = s[1:]
	}

	parts := strings.Split(s, ":")
	if len(parts) > 3 {
		return 0, errDurationFormat
	}

	secPart := parts[len(parts)-1]
	frac := ""
	if i := strings.IndexAny(secPart, ".,"); i >= 0 {
		secPart, frac = secPart[:i], secPart[i+1:]
		if frac == "" || len(frac) > 12 {
			return 0, errDurationFormat
		}
	}

	units := []time.Duration{time.Second, time.Minute, time.Hour}
	fields := append(parts[:len(parts)-1:len(parts)-1], secPart)
	var clock time.Duration
	for i := range fields {
		v, err := strconv.ParseInt(fields[len(fields)-1-i], 10, 64)
		if err != nil {
			return 0, errDurationFormat
		}
		d, ok := scale(v, units[i])
		if !ok {
			return 0, errDurationFormat
		}
		if clock, ok = add(clock, d); !ok {
			return 0, errDurationFormat
		}
	}

	if frac != "" {
		if len(frac) > 6 {
			frac = frac[:6]
		}
		us, err := strconv.Atoi(frac + strings.Repeat("0", 6-len(frac)))
		if err != nil || us < 0 {
			return 0, errDurationFormat
		}
		var ok bool
		if clock, ok = add(clock, time.Duration(us)*time.Microsecond); !ok {
			return 0, errDurationFormat
		}
	}

	// Opposite signs cannot overflow.
	if (days < 0) != (sign < 0) {
		return days + sign*clock, nil
	}
	total, ok := add(abs(days), clock)
	if !ok {
		return 0, errDurationFormat
	}

	return sign * total, nil
}

// scale returns v*unit, or false when v is negative or the product does not fit.
func scale(v int64, unit time.Duration) (time.Duration, bool) {
	if v < 0 || v > int64(math.MaxInt64/unit) {
		return 0, false
	}

	return time.Duration(v) * unit, true
}

// add sums two non-negative durations, or returns false on overflow.
func add(a, b time.Duration) (time.Duration, bool) {
	if a > math.MaxInt64-b {
		return 0, false
	}

	return a + b, true
}

func abs(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}

	return d
}
