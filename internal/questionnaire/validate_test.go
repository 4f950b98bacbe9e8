// internal/questionnaire/validate_test.go
package questionnaire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func findQuestion(t *testing.T, answers AnswerSet, id string) Question {
	t.Helper()
	for _, q := range BuildSequence(answers) {
		if q.ID == id {
			return q
		}
	}
	t.Fatalf("question %s not in sequence", id)
	return Question{}
}

func TestValidateStep(t *testing.T) {
	tests := []struct {
		name       string
		questionID string
		setup      func(AnswerSet)
		wantCode   string
	}{
		{
			name:       "empty required field",
			questionID: "name",
			setup:      func(a AnswerSet) { a.Set("name", "   ") },
			wantCode:   CodeRequired,
		},
		{
			name:       "short phone number",
			questionID: "phone",
			setup:      func(a AnswerSet) { a.Set("phone", "98765") },
			wantCode:   CodeInvalidPhone,
		},
		{
			name:       "email without tld",
			questionID: "email",
			setup:      func(a AnswerSet) { a.Set("email", "asha@example") },
			wantCode:   CodeInvalidEmail,
		},
		{
			name:       "income is not a number",
			questionID: "income",
			setup:      func(a AnswerSet) { a.Set("income", "abc") },
			wantCode:   CodeNotANumber,
		},
		{
			name:       "zero income rejected",
			questionID: "income",
			setup:      func(a AnswerSet) { a.Set("income", "0") },
			wantCode:   CodeNotPositive,
		},
		{
			name:       "cibil below range",
			questionID: "cibil_score",
			setup:      func(a AnswerSet) { a.Set("cibilScore", "250") },
			wantCode:   CodeOutOfRange,
		},
		{
			name:       "cibil above range",
			questionID: "cibil_score",
			setup:      func(a AnswerSet) { a.Set("cibilScore", "950") },
			wantCode:   CodeOutOfRange,
		},
		{
			name:       "savings gate yes without inline amount",
			questionID: "savings_check",
			setup: func(a AnswerSet) {
				a.Set("hasSavings", "Yes")
				a.Set("savingsAmount", "")
			},
			wantCode: CodeMissingSavings,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			answers := createTestAnswers()
			tt.setup(answers)

			q := findQuestion(t, answers, tt.questionID)
			err := ValidateStep(q, answers)
			require.Error(t, err)

			ve, ok := err.(*ValidationError)
			require.True(t, ok)
			assert.Equal(t, tt.wantCode, ve.Code)
			assert.NotEmpty(t, ve.Message)
		})
	}
}

func TestValidateStepAccepts(t *testing.T) {
	tests := []struct {
		name       string
		questionID string
		setup      func(AnswerSet)
	}{
		{
			name:       "grouped income",
			questionID: "income",
			setup:      func(a AnswerSet) { a.Set("income", "1,50,000") },
		},
		{
			name:       "blank optional physical assets",
			questionID: "physical_assets",
			setup:      func(a AnswerSet) { a.Set("physicalAssets", "") },
		},
		{
			name:       "blank optional cibil score",
			questionID: "cibil_score",
			setup:      func(a AnswerSet) { a.Set("cibilScore", "") },
		},
		{
			name:       "cibil at lower bound",
			questionID: "cibil_score",
			setup:      func(a AnswerSet) { a.Set("cibilScore", "300") },
		},
		{
			name:       "savings gate yes with inline amount",
			questionID: "savings_check",
			setup: func(a AnswerSet) {
				a.Set("hasSavings", "Yes")
				a.Set("savingsAmount", "25,000")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			answers := createTestAnswers()
			tt.setup(answers)

			q := findQuestion(t, answers, tt.questionID)
			assert.NoError(t, ValidateStep(q, answers))
		})
	}
}

func TestValidateStepZeroExceptions(t *testing.T) {
	answers := createTestAnswers()
	answers.Set("hasFD", "Yes")
	answers.Set("fdInterest", "0")

	// FD interest may be zero.
	q := findQuestion(t, answers, "fd_interest")
	assert.NoError(t, ValidateStep(q, answers))

	// Card fees may be zero, the limit may not.
	answers = createTestAnswers()
	answers.Set("hasCreditCards", "Yes")
	answers.Set("activeCreditCardsCount", "1")
	answers.Set("cc_1_fee", "0")
	answers.Set("cc_1_limit", "0")

	q = findQuestion(t, answers, "cc_1_fee")
	assert.NoError(t, ValidateStep(q, answers))

	q = findQuestion(t, answers, "cc_1_limit")
	err := ValidateStep(q, answers)
	require.Error(t, err)
	assert.Equal(t, CodeNotPositive, err.(*ValidationError).Code)
}

func TestValidateStepBillingDays(t *testing.T) {
	answers := createTestAnswers()
	answers.Set("hasCreditCards", "Yes")
	answers.Set("activeCreditCardsCount", "1")

	q := findQuestion(t, answers, "cc_1_bill_date")

	answers.Set("cc_1_bill_date", "32")
	err := ValidateStep(q, answers)
	require.Error(t, err)
	assert.Equal(t, CodeInvalidDay, err.(*ValidationError).Code)

	answers.Set("cc_1_bill_date", "15")
	assert.NoError(t, ValidateStep(q, answers))
}

func TestValidateAllReportsEveryFailure(t *testing.T) {
	answers := createTestAnswers()
	answers.Set("phone", "123")
	answers.Set("email", "broken")

	errs := ValidateAll(answers)
	require.Len(t, errs, 2)
	assert.Equal(t, "phone", errs[0].Field)
	assert.Equal(t, "email", errs[1].Field)
}
