package models

import (
	"errors"
	"fmt"

	"scanalyze/internal/currency"
)

// ErrInvalidUsageType is returned for usage types outside the known set.
var ErrInvalidUsageType = errors.New("invalid usage type")

// UsageType selects between personal and business feature sets.
type UsageType string

const (
	UsagePersonal UsageType = "personal"
	UsageBusiness UsageType = "business"
)

// Valid reports whether u is a known usage type.
func (u UsageType) Valid() bool {
	return u == UsagePersonal || u == UsageBusiness
}

// Settings holds per-install preferences.
type Settings struct {
	// MonthlyLimit is the spending limit used by insights. Zero means
	// no limit is set.
	MonthlyLimit currency.Amount

	// LimitCurrency is the ISO 4217 code of MonthlyLimit.
	LimitCurrency string

	// UsageType selects personal or business mode.
	UsageType UsageType
}

// DefaultSettings returns the initial settings for a fresh install.
func DefaultSettings() Settings {
	return Settings{
		MonthlyLimit:  currency.Amount{Minor: 100000}, // 1000.00
		LimitCurrency: "USD",
		UsageType:     UsagePersonal,
	}
}

// Validate checks settings invariants.
func (s Settings) Validate() error {
	if s.MonthlyLimit.Minor < 0 {
		return ErrNegativeAmount
	}
	if !currency.Valid(s.LimitCurrency) {
		return fmt.Errorf("%w: %q", currency.ErrUnknownCurrency, s.LimitCurrency)
	}
	if !s.UsageType.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidUsageType, s.UsageType)
	}
	return nil
}
