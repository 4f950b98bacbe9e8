// internal/questionnaire/models.go
package questionnaire

import (
	"strconv"
	"strings"
)

// AnswerSet holds raw answers keyed by input name. Fixed keys are camelCase
// (name, phone, hasFD, ...); repeated sections use positional keys like
// loan_2_emi or cc_1_payment_type.
type AnswerSet map[string]string

// Get returns the raw answer for key, empty when absent.
func (a AnswerSet) Get(key string) string {
	return a[key]
}

// Set stores a raw answer.
func (a AnswerSet) Set(key, value string) {
	a[key] = value
}

// Count parses the answer at key as a non-negative count, defaulting to 0.
func (a AnswerSet) Count(key string) int {
	n, err := strconv.Atoi(a[key])
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// Clone returns an independent copy of the answer set.
func (a AnswerSet) Clone() AnswerSet {
	out := make(AnswerSet, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// fixedKeys lists every fixed answer-set key. Positional keys (loan_1_emi,
// need_2_amount, ...) are lowercase already and need no entry.
var fixedKeys = []string{
	"name", "phone", "email", "occupation", "income",
	"hasMonthlyNeeds", "monthlyNeedsCount",
	"hasFD", "fdBank", "fdAmount", "fdInterest", "fdTenure",
	"hasRD", "rdBank", "rdAmount", "rdTenure",
	"hasSavings", "savingsAmount", "physicalAssets",
	"hasLoans", "activeLoansCount",
	"hasCreditCards", "activeCreditCardsCount",
	"hasBNPL", "activeBNPLCount",
	"cibilScore",
}

var canonicalKeys = func() map[string]string {
	m := make(map[string]string, len(fixedKeys))
	for _, k := range fixedKeys {
		m[strings.ToLower(k)] = k
	}
	return m
}()

// CanonicalKey restores the canonical casing of a fixed answer-set key.
// Intake channels that lowercase their field refs would otherwise produce
// keys like "hasmonthlyneeds" that no lookup matches. Unknown keys pass
// through unchanged.
func CanonicalKey(key string) string {
	if canon, ok := canonicalKeys[strings.ToLower(key)]; ok {
		return canon
	}
	return key
}

// Kind classifies the input widget a question expects.
type Kind string

const (
	KindText     Kind = "text"
	KindTel      Kind = "tel"
	KindEmail    Kind = "email"
	KindNumber   Kind = "number"
	KindSelect   Kind = "select"
	KindTextarea Kind = "textarea"
)

// Question is one step of the derived sequence.
type Question struct {
	ID          string   `json:"id"`
	Label       string   `json:"label"`
	Prompt      string   `json:"question"`
	Subtext     string   `json:"subtext"`
	Key         string   `json:"inputName"`
	Kind        Kind     `json:"type"`
	Options     []string `json:"options,omitempty"`
	Placeholder string   `json:"placeholder,omitempty"`
}

var (
	yesNoOptions = []string{"Yes", "No"}

	occupationOptions = []string{
		"Salaried employee",
		"Student",
		"Freelancer / Consultant",
		"Business owner",
		"Homemaker",
		"Retired",
	}

	loanTypeOptions = []string{
		"Personal Loan",
		"Education Loan",
		"Home Loan",
		"Vehicle Loan",
		"Gold Loan",
		"Business Loan",
	}

	paymentTypeOptions = []string{"Full Amount", "Minimum Due", "Partial Amount"}
)
