// internal/questionnaire/currency.go
package questionnaire

import (
	"regexp"
	"strings"
)

var (
	nonDigitPattern = regexp.MustCompile(`\D`)

	currencyKeys = map[string]bool{
		"income":        true,
		"fdAmount":      true,
		"fdInterest":    true,
		"rdAmount":      true,
		"savingsAmount": true,
	}

	loanCurrencyPattern = regexp.MustCompile(`^loan_\d+_(amount|emi)$`)
	ccCurrencyPattern   = regexp.MustCompile(`^cc_\d+_(limit|fee|outstanding|payment_partial)$`)
	bnplCurrencyPattern = regexp.MustCompile(`^bnpl_\d+_(amount|emi)$`)
	needCurrencyPattern = regexp.MustCompile(`^need_\d+_amount$`)
)

// IsCurrencyKey reports whether the answer at key is stored as a grouped
// rupee string.
func IsCurrencyKey(key string) bool {
	return currencyKeys[key] ||
		loanCurrencyPattern.MatchString(key) ||
		ccCurrencyPattern.MatchString(key) ||
		bnplCurrencyPattern.MatchString(key) ||
		needCurrencyPattern.MatchString(key)
}

// FormatCurrency normalizes raw input into an Indian-system grouped digit
// string: the last three digits form one group, every group before that has
// two. Non-digits are stripped first; empty input yields an empty string.
func FormatCurrency(raw string) string {
	digits := nonDigitPattern.ReplaceAllString(raw, "")
	digits = strings.TrimLeft(digits, "0")
	if digits == "" {
		if strings.ContainsAny(raw, "0123456789") {
			return "0"
		}
		return ""
	}
	return groupIndian(digits)
}

func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}

	head := digits[:len(digits)-3]
	tail := digits[len(digits)-3:]

	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	if head != "" {
		groups = append([]string{head}, groups...)
	}
	groups = append(groups, tail)
	return strings.Join(groups, ",")
}

// ParseAmount strips grouping and parses the value as a non-negative integer,
// defaulting to 0.
func ParseAmount(s string) int {
	digits := nonDigitPattern.ReplaceAllString(s, "")
	if digits == "" {
		return 0
	}
	n := 0
	for _, c := range digits {
		n = n*10 + int(c-'0')
	}
	return n
}

// FilterPhone keeps only digits and caps the result at ten characters.
func FilterPhone(raw string) string {
	digits := nonDigitPattern.ReplaceAllString(raw, "")
	if len(digits) > 10 {
		digits = digits[:10]
	}
	return digits
}
