package output

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Unit selects how a duration in seconds is rendered.
type Unit string

const (
	UnitSeconds Unit = "s"
	UnitMinutes Unit = "m"
	UnitHours   Unit = "h"

	// UnitHMS renders a compound token such as "1h01m01s".
	UnitHMS Unit = "hms"
)

var (
	secondsPerMinute = decimal.NewFromInt(60)
	secondsPerHour   = decimal.NewFromInt(3600)
)

// ParseUnit validates a unit name.
func ParseUnit(s string) (Unit, error) {
	switch u := Unit(s); u {
	case UnitSeconds, UnitMinutes, UnitHours, UnitHMS:
		return u, nil
	default:
		return "", fmt.Errorf("unit=(%s) must equal 'hms' / 'h' / 'm' / 's'", s)
	}
}

// FormatSeconds renders a signed number of seconds. Minutes and hours use the
// exact decimal quotient rounded half away from zero to two places.
func FormatSeconds(seconds int64, unit Unit) (string, error) {
	neg := seconds < 0
	mag := uint64(seconds)
	if neg {
		mag = -mag
	}
	return format(neg, mag, unit)
}

// FormatUnsigned renders an unsigned number of seconds.
func FormatUnsigned(seconds uint64, unit Unit) (string, error) {
	return format(false, seconds, unit)
}

func format(neg bool, mag uint64, unit Unit) (string, error) {
	sign := ""
	if neg {
		sign = "-"
	}

	switch unit {
	case UnitSeconds:
		return sign + strconv.FormatUint(mag, 10), nil
	case UnitMinutes:
		return sign + quotient(mag, secondsPerMinute), nil
	case UnitHours:
		return sign + quotient(mag, secondsPerHour), nil
	case UnitHMS:
		return sign + hms(mag), nil
	default:
		_, err := ParseUnit(string(unit))
		return "", err
	}
}

func quotient(mag uint64, divisor decimal.Decimal) string {
	d := decimal.NewFromBigInt(new(big.Int).SetUint64(mag), 0)
	return d.Div(divisor).StringFixed(2)
}

func hms(mag uint64) string {
	h := mag / 3600
	m := (mag % 3600) / 60
	s := mag % 60

	var b strings.Builder
	if h > 0 {
		fmt.Fprintf(&b, "%dh", h)
	}
	if m > 0 {
		if b.Len() == 0 {
			fmt.Fprintf(&b, "%dm", m)
		} else {
			fmt.Fprintf(&b, "%02dm", m)
		}
	}
	if s > 0 || b.Len() == 0 {
		if b.Len() == 0 {
			fmt.Fprintf(&b, "%ds", s)
		} else {
			fmt.Fprintf(&b, "%02ds", s)
		}
	}
	return b.String()
}
