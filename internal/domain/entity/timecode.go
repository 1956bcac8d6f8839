package entity

import (
	"fmt"
	"regexp"
	"strconv"
)

var timecodeRe = regexp.MustCompile(`^(\d+):(\d{1,2})(\.\d+)?$`)

// ParseTimecode converts "mm:ss" or "mm:ss.ss" to seconds.
func ParseTimecode(s string) (float64, error) {
	m := timecodeRe.FindStringSubmatch(s)
	if m == nil {
		return 0, fmt.Errorf("%w: invalid timecode %q, expected mm:ss or mm:ss.ss", ErrValidation, s)
	}

	minutes, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, fmt.Errorf("%w: invalid minutes in %q", ErrValidation, s)
	}
	seconds, err := strconv.Atoi(m[2])
	if err != nil {
		return 0, fmt.Errorf("%w: invalid seconds in %q", ErrValidation, s)
	}
	if seconds > 59 {
		return 0, fmt.Errorf("%w: seconds out of range in %q", ErrValidation, s)
	}

	total := float64(minutes)*60 + float64(seconds)
	if m[3] != "" {
		frac, err := strconv.ParseFloat(m[3], 64)
		if err != nil {
			return 0, fmt.Errorf("%w: invalid fraction in %q", ErrValidation, s)
		}
		total += frac
	}
	return total, nil
}

// TimeRange is the inclusive [Start, End] window in seconds within the
// source video. The raw strings are kept for metadata round-tripping.
type TimeRange struct {
	Start    float64
	End      float64
	StartRaw string
	EndRaw   string
}

// NewTimeRange parses and validates a start/end timecode pair.
func NewTimeRange(start, end string) (TimeRange, error) {
	s, err := ParseTimecode(start)
	if err != nil {
		return TimeRange{}, fmt.Errorf("start time: %w", err)
	}
	e, err := ParseTimecode(end)
	if err != nil {
		return TimeRange{}, fmt.Errorf("end time: %w", err)
	}
	if e <= s {
		return TimeRange{}, fmt.Errorf("%w: end time %q must be after start time %q", ErrValidation, end, start)
	}
	return TimeRange{Start: s, End: e, StartRaw: start, EndRaw: end}, nil
}

// Length returns the window duration in seconds.
func (r TimeRange) Length() float64 {
	return r.End - r.Start
}
