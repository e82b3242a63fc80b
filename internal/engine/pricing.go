package engine

import (
	"fmt"
	"math"

	"bhara-backend/internal/domain"
)

// DurationUnit is the granularity a rental is priced at.
type DurationUnit string

const (
	UnitHour  DurationUnit = "hour"
	UnitDay   DurationUnit = "day"
	UnitWeek  DurationUnit = "week"
	UnitMonth DurationUnit = "month"
)

// ValidUnit reports whether u is one of the four recognized units.
// Unknown strings are a validation failure, never a silent default.
func ValidUnit(u DurationUnit) bool {
	switch u {
	case UnitHour, UnitDay, UnitWeek, UnitMonth:
		return true
	}
	return false
}

// Fallback-rate policy: the day rate is mandatory, the other rates derive
// from it when a listing does not set them explicitly.
//
//	hour  = day / 24, rounded half-up
//	week  = 7  x day
//	month = 30 x day
//
// The same constants convert a date range into duration units for quotes,
// so a derived rate and a derived duration always agree.
const (
	HoursPerDay  = 24
	DaysPerWeek  = 7
	DaysPerMonth = 30
)

// RateFor resolves the per-unit rate in cents for a product, applying the
// fallback policy for absent (zero) rates.
func RateFor(product *domain.Product, unit DurationUnit) (int64, error) {
	if err := checkProduct(product); err != nil {
		return 0, err
	}
	if !ValidUnit(unit) {
		return 0, &ValidationError{Field: "unit", Reason: fmt.Sprintf("unknown duration unit %q", unit)}
	}
	if product.PricePerDayCents <= 0 {
		return 0, &ValidationError{Field: "price_per_day_cents", Reason: "listing has no day rate"}
	}
	switch unit {
	case UnitHour:
		if product.PricePerHourCents > 0 {
			return product.PricePerHourCents, nil
		}
		// integer half-up division
		return (product.PricePerDayCents + HoursPerDay/2) / HoursPerDay, nil
	case UnitDay:
		return product.PricePerDayCents, nil
	case UnitWeek:
		if product.PricePerWeekCents > 0 {
			return product.PricePerWeekCents, nil
		}
		return DaysPerWeek * product.PricePerDayCents, nil
	case UnitMonth:
		if product.PricePerMonthCents > 0 {
			return product.PricePerMonthCents, nil
		}
		return DaysPerMonth * product.PricePerDayCents, nil
	}
	return 0, &ValidationError{Field: "unit", Reason: fmt.Sprintf("unknown duration unit %q", unit)}
}

// CalculatePrice returns the total price in cents for renting the product
// for duration units. Straight per-unit multiplication, no tiering.
func CalculatePrice(product *domain.Product, duration int64, unit DurationUnit) (int64, error) {
	if duration <= 0 {
		return 0, &ValidationError{Field: "duration", Reason: "must be a positive integer"}
	}
	rate, err := RateFor(product, unit)
	if err != nil {
		return 0, err
	}
	if rate > 0 && duration > math.MaxInt64/rate {
		return 0, &ValidationError{Field: "duration", Reason: "total price exceeds the representable amount"}
	}
	return rate * duration, nil
}

// FormatCents renders an amount of cents with two fractional digits, the
// precision quoted to renters.
func FormatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}
