package media

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// TimeUnit is a non-negative instant or duration with millisecond precision.
type TimeUnit int64

// Millis returns a TimeUnit of ms milliseconds. Negative input clamps to zero.
func Millis(ms int64) TimeUnit {
	if ms < 0 {
		return 0
	}
	return TimeUnit(ms)
}

// FromDuration truncates d to whole milliseconds.
func FromDuration(d time.Duration) TimeUnit {
	return Millis(d.Milliseconds())
}

// ParseSeconds parses a decimal seconds value as reported by ffprobe
// ("1437.123000"). ok is false for empty, non-numeric, negative or
// non-finite input.
func ParseSeconds(s string) (t TimeUnit, ok bool) {
	s = strings.TrimSpace(s)
	if s == "" || s == "N/A" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f < 0 || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, false
	}
	// Round at the microsecond first so "60.000000" parsed as 59.9999999 stays 60000.
	us := math.Round(f * 1e6)
	return Millis(int64(us) / 1000), true
}

// Milliseconds returns t as a millisecond count.
func (t TimeUnit) Milliseconds() int64 { return int64(t) }

// Duration converts t to a time.Duration.
func (t TimeUnit) Duration() time.Duration { return time.Duration(t) * time.Millisecond }

// Add returns t + d.
func (t TimeUnit) Add(d TimeUnit) TimeUnit { return t + d }

// Format renders t as HH:MM:SS.mmm. Hours are not wrapped at 24.
func (t TimeUnit) Format() string {
	ms := int64(t)
	h := ms / 3_600_000
	ms -= h * 3_600_000
	m := ms / 60_000
	ms -= m * 60_000
	s := ms / 1000
	ms -= s * 1000
	return fmt.Sprintf("%02d:%02d:%02d.%03d", h, m, s, ms)
}

// String implements fmt.Stringer.
func (t TimeUnit) String() string { return t.Format() }
