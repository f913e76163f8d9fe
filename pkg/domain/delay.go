package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Delay units and their length in seconds.
const (
	UnitSeconds = "seconds"
	UnitMinutes = "minutes"
	UnitHours   = "hours"
	UnitDays    = "days"
)

var unitSeconds = map[string]float64{
	UnitSeconds: 1,
	UnitMinutes: 60,
	UnitHours:   3600,
	UnitDays:    86400,
}

var (
	// ErrDelayMissing is returned when a delay block carries no duration.
	ErrDelayMissing = errors.New("delay duration is missing")
	// ErrDelayNotNumeric is returned when the duration cannot be read as a number.
	ErrDelayNotNumeric = errors.New("delay duration is not a number")
	// ErrDelayUnit is returned for a unit outside seconds/minutes/hours/days.
	ErrDelayUnit = errors.New("unknown delay unit")
)

// Seconds normalizes the delay to seconds. The unit defaults to seconds.
func (d DelayBlock) Seconds() (float64, error) {
	unit := strings.ToLower(strings.TrimSpace(d.Unit))
	if unit == "" {
		unit = UnitSeconds
	}
	mult, ok := unitSeconds[unit]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrDelayUnit, d.Unit)
	}

	amount, err := numeric(d.Amount)
	if err != nil {
		return 0, err
	}
	return amount * mult, nil
}

func numeric(v any) (float64, error) {
	var f float64
	switch n := v.(type) {
	case nil:
		return 0, ErrDelayMissing
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case int32:
		f = float64(n)
	case uint:
		f = float64(n)
	case uint64:
		f = float64(n)
	case uint32:
		f = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrDelayNotNumeric, n.String())
		}
		f = parsed
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			return 0, ErrDelayMissing
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrDelayNotNumeric, n)
		}
		f = parsed
	default:
		return 0, fmt.Errorf("%w: %T", ErrDelayNotNumeric, v)
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: %v", ErrDelayNotNumeric, f)
	}
	return f, nil
}
