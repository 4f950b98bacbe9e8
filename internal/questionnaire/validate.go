// internal/questionnaire/validate.go
package questionnaire

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ==========================
// 1. Validation Errors
// ==========================

const (
	CodeRequired       = "required"
	CodeInvalidPhone   = "invalid_phone"
	CodeInvalidEmail   = "invalid_email"
	CodeNotANumber     = "not_a_number"
	CodeNotPositive    = "not_positive"
	CodeInvalidDay     = "invalid_day"
	CodeOutOfRange     = "out_of_range"
	CodeMissingSavings = "missing_savings_amount"
)

// ValidationError describes why an answer was rejected for a step.
type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
}

func newValidationError(field, code, message string) *ValidationError {
	return &ValidationError{Field: field, Code: code, Message: message}
}

// ==========================
// 2. Field Classification
// ==========================

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]{2,}$`)

	numericIDs = map[string]bool{
		"income":      true,
		"needs_count": true,
		"fd_amount":   true,
		"fd_interest": true,
		"fd_tenure":   true,
		"rd_amount":   true,
		"rd_tenure":   true,
		"loans_count": true,
		"cc_count":    true,
		"bnpl_count":  true,
	}

	loanNumericPattern = regexp.MustCompile(`^loan_\d+_(amount|rate|emi|tenure)$`)
	ccNumericPattern   = regexp.MustCompile(`^cc_\d+_(limit|fee|outstanding|payment_partial|bill_date|due_date)$`)
	bnplNumericPattern = regexp.MustCompile(`^bnpl_\d+_(amount|emi|tenure)$`)
	needNumericPattern = regexp.MustCompile(`^need_\d+_(amount|tenure)$`)
)

func isNumericQuestion(id string) bool {
	return numericIDs[id] ||
		loanNumericPattern.MatchString(id) ||
		ccNumericPattern.MatchString(id) ||
		bnplNumericPattern.MatchString(id) ||
		needNumericPattern.MatchString(id)
}

// ==========================
// 3. Step Validation
// ==========================

// ValidateStep checks the answer for one question against the full answer set.
// Physical assets and the CIBIL score are the only optional steps; the CIBIL
// range check still applies when a score is present. The savings gate also
// requires its inline amount when answered Yes.
func ValidateStep(q Question, answers AnswerSet) error {
	val := answers.Get(q.Key)

	if q.Key != "physicalAssets" && q.Key != "cibilScore" {
		if strings.TrimSpace(val) == "" {
			return newValidationError(q.Key, CodeRequired, "This field is required.")
		}
	}

	if q.ID == "phone" && len(val) < 10 {
		return newValidationError(q.Key, CodeInvalidPhone, "Please enter a valid 10-digit number.")
	}

	if q.Kind == KindEmail && !emailPattern.MatchString(val) {
		return newValidationError(q.Key, CodeInvalidEmail, "Please enter a valid email address.")
	}

	if isNumericQuestion(q.ID) {
		num, err := strconv.ParseFloat(strings.ReplaceAll(val, ",", ""), 64)
		if err != nil {
			return newValidationError(q.Key, CodeNotANumber, "Please enter a valid number.")
		}
		// Monthly FD interest and card fees may legitimately be zero.
		if q.ID != "fd_interest" && !strings.Contains(q.ID, "fee") && num <= 0 {
			return newValidationError(q.Key, CodeNotPositive, "Value must be greater than zero.")
		}
		if (strings.Contains(q.ID, "bill_date") || strings.Contains(q.ID, "due_date")) && (num < 1 || num > 31) {
			return newValidationError(q.Key, CodeInvalidDay, "Please enter a valid day (1-31).")
		}
	}

	if q.Key == "cibilScore" && strings.TrimSpace(val) != "" {
		score, err := strconv.Atoi(strings.TrimSpace(val))
		if err != nil || score < 300 || score > 900 {
			return newValidationError(q.Key, CodeOutOfRange, "Score must be between 300 and 900.")
		}
	}

	if q.Key == "hasSavings" && answers.Get("hasSavings") == "Yes" {
		if ParseAmount(answers.Get("savingsAmount")) <= 0 {
			return newValidationError("savingsAmount", CodeMissingSavings, "Please enter the available balance.")
		}
	}

	return nil
}

// ValidateAll runs ValidateStep over the derived sequence and returns every
// failure in sequence order.
func ValidateAll(answers AnswerSet) []*ValidationError {
	var errs []*ValidationError
	for _, q := range BuildSequence(answers) {
		if err := ValidateStep(q, answers); err != nil {
			if ve, ok := err.(*ValidationError); ok {
				errs = append(errs, ve)
			}
		}
	}
	return errs
}
