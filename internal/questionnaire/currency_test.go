// internal/questionnaire/currency_test.go
package questionnaire

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty input", "", ""},
		{"single digit", "5", "5"},
		{"three digits", "999", "999"},
		{"four digits", "5000", "5,000"},
		{"five digits", "50000", "50,000"},
		{"six digits", "150000", "1,50,000"},
		{"seven digits", "1234567", "12,34,567"},
		{"nine digits", "123456789", "12,34,56,789"},
		{"already grouped", "1,50,000", "1,50,000"},
		{"mixed noise stripped", "₹1a50b000", "1,50,000"},
		{"leading zeros dropped", "0500", "500"},
		{"plain zero", "0", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatCurrency(tt.in))
		})
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"1,50,000", 150000},
		{"50,000", 50000},
		{"500", 500},
		{"", 0},
		{"abc", 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseAmount(tt.in), "input %q", tt.in)
	}
}

func TestCurrencyRoundTrip(t *testing.T) {
	assert.Equal(t, "1,50,000", FormatCurrency("150000"))
	assert.Equal(t, 150000, ParseAmount("1,50,000"))
}

func TestFilterPhone(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain digits", "9876543210", "9876543210"},
		{"strips formatting", "+91 98765-43210", "9198765432"},
		{"caps at ten digits", "98765432109999", "9876543210"},
		{"letters removed", "98abc76", "9876"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterPhone(tt.in))
		})
	}
}

func TestIsCurrencyKey(t *testing.T) {
	for _, key := range []string{
		"income", "fdAmount", "fdInterest", "rdAmount", "savingsAmount",
		"loan_2_amount", "loan_10_emi", "cc_1_limit", "cc_3_payment_partial",
		"bnpl_1_emi", "need_4_amount",
	} {
		assert.True(t, IsCurrencyKey(key), "key %s", key)
	}

	for _, key := range []string{
		"name", "phone", "fdTenure", "loan_1_rate", "loan_1_tenure",
		"cc_1_bill_date", "bnpl_1_tenure", "need_1_tenure", "cibilScore",
	} {
		assert.False(t, IsCurrencyKey(key), "key %s", key)
	}
}
