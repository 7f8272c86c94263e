// Package currency provides fixed-point money amounts and ISO 4217 validation.
//
// Amounts are held in minor units (cents for most currencies) and only
// converted to decimal strings for display. All arithmetic stays in int64.
package currency

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

var (
	ErrUnknownCurrency = errors.New("unknown currency code")
	ErrInvalidAmount   = errors.New("invalid amount")
)

// minorDigits maps ISO 4217 codes to the number of digits after the decimal
// point. Codes not listed here are rejected rather than defaulted.
var minorDigits = map[string]int{
	"AED": 2, "ARS": 2, "AUD": 2, "BDT": 2, "BHD": 3, "BRL": 2,
	"CAD": 2, "CHF": 2, "CLP": 0, "CNY": 2, "COP": 2, "CZK": 2,
	"DKK": 2, "EGP": 2, "EUR": 2, "GBP": 2, "HKD": 2, "HUF": 2,
	"IDR": 2, "ILS": 2, "INR": 2, "ISK": 0, "JOD": 3, "JPY": 0,
	"KES": 2, "KRW": 0, "KWD": 3, "LKR": 2, "MAD": 2, "MXN": 2,
	"MYR": 2, "NGN": 2, "NOK": 2, "NPR": 2, "NZD": 2, "OMR": 3,
	"PHP": 2, "PKR": 2, "PLN": 2, "QAR": 2, "RON": 2, "SAR": 2,
	"SEK": 2, "SGD": 2, "THB": 2, "TND": 3, "TRY": 2, "TWD": 2,
	"UGX": 0, "USD": 2, "VND": 0, "ZAR": 2,
}

// Valid reports whether code is a known ISO 4217 currency code.
func Valid(code string) bool {
	_, ok := minorDigits[code]
	return ok
}

// MinorDigits returns the decimal exponent for a known currency code.
func MinorDigits(code string) (int, error) {
	d, ok := minorDigits[code]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownCurrency, code)
	}
	return d, nil
}

// Amount is a monetary value in minor units of some currency.
// The currency itself travels separately (on the receipt).
type Amount struct {
	Minor int64
}

// Add returns the sum of two amounts. Callers are responsible for only
// adding amounts of the same currency.
func (a Amount) Add(b Amount) Amount {
	return Amount{Minor: a.Minor + b.Minor}
}

// Mul returns the amount multiplied by an integer quantity.
func (a Amount) Mul(n int) Amount {
	return Amount{Minor: a.Minor * int64(n)}
}

// IsZero reports whether the amount is exactly zero.
func (a Amount) IsZero() bool {
	return a.Minor == 0
}

// Float returns the decimal value as a float64 for display only.
// Calculations must stay in minor units.
func (a Amount) Float(code string) float64 {
	d, err := MinorDigits(code)
	if err != nil {
		d = 2
	}
	return float64(a.Minor) / float64(pow10(d))
}

// Format renders the amount as "12.34" using the currency's exponent.
func Format(a Amount, code string) (string, error) {
	d, err := MinorDigits(code)
	if err != nil {
		return "", err
	}
	if d == 0 {
		return strconv.FormatInt(a.Minor, 10), nil
	}
	scale := pow10(d)
	sign := ""
	minor := a.Minor
	if minor < 0 {
		sign = "-"
		minor = -minor
	}
	return fmt.Sprintf("%s%d.%0*d", sign, minor/scale, d, minor%scale), nil
}

// MarshalJSON encodes the amount as a bare integer of minor units.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatInt(a.Minor, 10)), nil
}

// UnmarshalJSON decodes a bare integer of minor units.
func (a *Amount) UnmarshalJSON(data []byte) error {
	v, err := strconv.ParseInt(strings.TrimSpace(string(data)), 10, 64)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidAmount, data)
	}
	a.Minor = v
	return nil
}

// ParseDecimal converts a decimal string to an Amount in the given currency's
// minor units. It accepts both dot (12.34) and comma (12,34) separators and
// performs half-up rounding on the first digit past the currency exponent.
// Negative values are rejected; zero is allowed (free line items exist).
func ParseDecimal(s, code string) (Amount, error) {
	d, err := MinorDigits(code)
	if err != nil {
		return Amount{}, err
	}

	s = strings.TrimSpace(s)
	if s == "" {
		return Amount{}, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", ".")
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return Amount{}, ErrInvalidAmount
	}

	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return Amount{}, ErrInvalidAmount
	}
	intPart := parts[0]
	fracPart := ""
	if len(parts) == 2 {
		fracPart = parts[1]
	}
	if intPart == "" {
		intPart = "0"
	}
	for _, r := range intPart {
		if !unicode.IsDigit(r) {
			return Amount{}, ErrInvalidAmount
		}
	}
	for _, r := range fracPart {
		if !unicode.IsDigit(r) {
			return Amount{}, ErrInvalidAmount
		}
	}

	iv, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return Amount{}, ErrInvalidAmount
	}
	var frac int64
	for i := 0; i < d; i++ {
		frac *= 10
		if i < len(fracPart) {
			frac += int64(fracPart[i] - '0')
		}
	}
	// Half-up rounding on the digit past the exponent.
	if len(fracPart) > d && fracPart[d] >= '5' {
		frac++
	}

	// iv*scale+frac must fit in int64; guarding against scale alone is not
	// enough when the fractional part pushes past the max.
	scale := pow10(d)
	if iv > ((1<<63-1)-frac)/scale {
		return Amount{}, ErrInvalidAmount
	}

	return Amount{Minor: iv*scale + frac}, nil
}

func pow10(d int) int64 {
	n := int64(1)
	for i := 0; i < d; i++ {
		n *= 10
	}
	return n
}
