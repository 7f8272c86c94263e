package currency

import (
	"errors"
	"testing"
)

func TestParseDecimal(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		code    string
		want    int64
		wantErr bool
	}{
		{name: "dot separator", input: "12.34", code: "USD", want: 1234},
		{name: "comma separator", input: "12,34", code: "EUR", want: 1234},
		{name: "integer only", input: "12", code: "USD", want: 1200},
		{name: "rounds down third decimal", input: "12.344", code: "USD", want: 1234},
		{name: "rounds up third decimal", input: "12.345", code: "USD", want: 1235},
		{name: "zero allowed", input: "0", code: "USD", want: 0},
		{name: "leading dot", input: ".50", code: "USD", want: 50},
		{name: "zero-decimal currency", input: "1500", code: "JPY", want: 1500},
		{name: "zero-decimal rounds fraction", input: "1500.6", code: "JPY", want: 1501},
		{name: "three-decimal currency", input: "1.2345", code: "KWD", want: 1235},
		{name: "negative rejected", input: "-5.00", code: "USD", wantErr: true},
		{name: "plus sign rejected", input: "+5.00", code: "USD", wantErr: true},
		{name: "empty rejected", input: "", code: "USD", wantErr: true},
		{name: "garbage rejected", input: "12.3x", code: "USD", wantErr: true},
		{name: "two dots rejected", input: "1.2.3", code: "USD", wantErr: true},
		{name: "unknown currency rejected", input: "10.00", code: "XXX", wantErr: true},
		{name: "max int64 minor units", input: "92233720368547758.07", code: "USD", want: 9223372036854775807},
		{name: "overflow via fraction rejected", input: "92233720368547758.08", code: "USD", wantErr: true},
		{name: "overflow via integer rejected", input: "92233720368547759.00", code: "USD", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDecimal(tt.input, tt.code)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseDecimal(%q, %q) error = %v, wantErr %v", tt.input, tt.code, err, tt.wantErr)
			}
			if !tt.wantErr && got.Minor != tt.want {
				t.Errorf("ParseDecimal(%q, %q) = %d, want %d", tt.input, tt.code, got.Minor, tt.want)
			}
		})
	}
}

func TestParseDecimalUnknownCurrencySentinel(t *testing.T) {
	_, err := ParseDecimal("10.00", "ZZZ")
	if !errors.Is(err, ErrUnknownCurrency) {
		t.Errorf("expected ErrUnknownCurrency, got %v", err)
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name    string
		amount  Amount
		code    string
		want    string
		wantErr bool
	}{
		{name: "two decimals", amount: Amount{Minor: 1234}, code: "USD", want: "12.34"},
		{name: "pads fraction", amount: Amount{Minor: 1205}, code: "EUR", want: "12.05"},
		{name: "zero", amount: Amount{Minor: 0}, code: "USD", want: "0.00"},
		{name: "zero-decimal", amount: Amount{Minor: 1500}, code: "JPY", want: "1500"},
		{name: "three decimals", amount: Amount{Minor: 1235}, code: "KWD", want: "1.235"},
		{name: "negative", amount: Amount{Minor: -150}, code: "USD", want: "-1.50"},
		{name: "unknown code", amount: Amount{Minor: 100}, code: "ZZZ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Format(tt.amount, tt.code)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Format error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Format(%d, %s) = %q, want %q", tt.amount.Minor, tt.code, got, tt.want)
			}
		})
	}
}

func TestAmountArithmetic(t *testing.T) {
	a := Amount{Minor: 300}
	b := Amount{Minor: 150}

	if got := a.Add(b); got.Minor != 450 {
		t.Errorf("Add = %d, want 450", got.Minor)
	}
	if got := a.Mul(3); got.Minor != 900 {
		t.Errorf("Mul = %d, want 900", got.Minor)
	}
	if !(Amount{}).IsZero() {
		t.Error("zero Amount should report IsZero")
	}
	if a.IsZero() {
		t.Error("non-zero Amount should not report IsZero")
	}
}

func TestValid(t *testing.T) {
	for _, code := range []string{"USD", "EUR", "INR", "JPY", "KWD"} {
		if !Valid(code) {
			t.Errorf("Valid(%q) = false, want true", code)
		}
	}
	for _, code := range []string{"", "usd", "US", "ABCD", "XBT"} {
		if Valid(code) {
			t.Errorf("Valid(%q) = true, want false", code)
		}
	}
}
