// Package subscription holds the calendar arithmetic behind account
// expiry dates. Both the account-creation path and the extension path go
// through the same unit switch so the two can never drift apart.
package subscription

import (
	"errors"
	"time"
)

// Unit is the calendar unit an extension is expressed in.
type Unit string

const (
	UnitDays   Unit = "days"
	UnitWeeks  Unit = "weeks"
	UnitMonths Unit = "months"
)

var (
	ErrInvalidUnit      = errors.New("subscription: unknown extension unit")
	ErrInvalidMagnitude = errors.New("subscription: extension magnitude must be a positive integer")
)

// ComputeAbsoluteExpiry adds magnitude units to base using calendar
// arithmetic. Months follow time.AddDate normalization: Jan 31 + 1 month
// rolls into early March when February is shorter, matching standard
// calendar-add rules. Non-positive magnitudes are rejected, never clamped.
func ComputeAbsoluteExpiry(base time.Time, unit Unit, magnitude int) (time.Time, error) {
	if magnitude <= 0 {
		return time.Time{}, ErrInvalidMagnitude
	}

	switch unit {
	case UnitDays:
		return base.AddDate(0, 0, magnitude), nil
	case UnitWeeks:
		return base.AddDate(0, 0, magnitude*7), nil
	case UnitMonths:
		return base.AddDate(0, magnitude, 0), nil
	default:
		return time.Time{}, ErrInvalidUnit
	}
}

// ExtendExpiry computes a renewed expiry relative to the current one.
// The base is the existing expiry while the subscription is still active,
// otherwise now: an active subscription is never shortened, and lapsed
// time is not credited back.
func ExtendExpiry(current *time.Time, unit Unit, magnitude int, now time.Time) (time.Time, error) {
	base := now
	if current != nil && current.After(now) {
		base = *current
	}
	return ComputeAbsoluteExpiry(base, unit, magnitude)
}

// ParseUnit validates a wire-format unit string.
func ParseUnit(s string) (Unit, error) {
	switch Unit(s) {
	case UnitDays, UnitWeeks, UnitMonths:
		return Unit(s), nil
	default:
		return "", ErrInvalidUnit
	}
}
