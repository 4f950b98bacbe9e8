// internal/questionnaire/sequence_test.go
package questionnaire

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createTestAnswers returns a complete identity prefix with all gates off.
func createTestAnswers() AnswerSet {
	return AnswerSet{
		"name":            "Asha",
		"phone":           "9876543210",
		"email":           "asha@example.com",
		"occupation":      "Salaried employee",
		"income":          "50,000",
		"hasMonthlyNeeds": "No",
		"hasFD":           "No",
		"hasRD":           "No",
		"hasSavings":      "No",
		"hasLoans":        "No",
		"hasCreditCards":  "No",
		"hasBNPL":         "No",
	}
}

func questionIDs(seq []Question) []string {
	ids := make([]string, len(seq))
	for i, q := range seq {
		ids[i] = q.ID
	}
	return ids
}

func TestBuildSequenceBaseline(t *testing.T) {
	seq := BuildSequence(createTestAnswers())

	assert.Equal(t, []string{
		"name", "phone", "email", "occupation", "income",
		"needs_check", "fd_check", "rd_check", "savings_check",
		"physical_assets", "loans_check", "cc_check", "bnpl_check",
		"cibil_score",
	}, questionIDs(seq))
}

func TestBuildSequenceGateExpansion(t *testing.T) {
	tests := []struct {
		name     string
		gate     string
		countKey string
		count    string
		added    int
	}{
		{
			name:     "two loans add count plus six each",
			gate:     "hasLoans",
			countKey: "activeLoansCount",
			count:    "2",
			added:    1 + 2*6,
		},
		{
			name:     "three bnpl plans add count plus four each",
			gate:     "hasBNPL",
			countKey: "activeBNPLCount",
			count:    "3",
			added:    1 + 3*4,
		},
		{
			name:     "two monthly needs add count plus two each",
			gate:     "hasMonthlyNeeds",
			countKey: "monthlyNeedsCount",
			count:    "2",
			added:    1 + 2*2,
		},
		{
			name:     "fd block adds four without a count",
			gate:     "hasFD",
			countKey: "",
			count:    "",
			added:    4,
		},
		{
			name:     "gate on with zero count adds only the count question",
			gate:     "hasLoans",
			countKey: "activeLoansCount",
			count:    "0",
			added:    1,
		},
	}

	base := len(BuildSequence(createTestAnswers()))

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			answers := createTestAnswers()
			answers.Set(tt.gate, "Yes")
			if tt.countKey != "" {
				answers.Set(tt.countKey, tt.count)
			}

			seq := BuildSequence(answers)
			assert.Len(t, seq, base+tt.added)
		})
	}
}

func TestBuildSequenceCreditCardBlock(t *testing.T) {
	answers := createTestAnswers()
	answers.Set("hasCreditCards", "Yes")
	answers.Set("activeCreditCardsCount", "1")

	base := len(BuildSequence(createTestAnswers()))

	// Count question plus six per card when the payment is not partial.
	seq := BuildSequence(answers)
	assert.Len(t, seq, base+1+6)
	assert.NotContains(t, questionIDs(seq), "cc_1_payment_partial")

	// Choosing partial payment inserts the amount question before the cycle
	// questions; switching away removes it again.
	answers.Set("cc_1_payment_type", "Partial Amount")
	seq = BuildSequence(answers)
	require.Len(t, seq, base+1+7)

	ids := questionIDs(seq)
	var partialIdx, billIdx int
	for i, id := range ids {
		switch id {
		case "cc_1_payment_partial":
			partialIdx = i
		case "cc_1_bill_date":
			billIdx = i
		}
	}
	assert.Equal(t, billIdx-1, partialIdx)

	answers.Set("cc_1_payment_type", "Full Amount")
	seq = BuildSequence(answers)
	assert.Len(t, seq, base+1+6)
	assert.NotContains(t, questionIDs(seq), "cc_1_payment_partial")
}

func TestBuildSequenceGateOffHidesStaleAnswers(t *testing.T) {
	answers := createTestAnswers()
	answers.Set("hasLoans", "Yes")
	answers.Set("activeLoansCount", "2")
	answers.Set("loan_1_type", "Home Loan")
	answers.Set("loan_2_emi", "15,000")

	// Flipping the gate back to No must hide every loan question even though
	// the count and item answers are still present.
	answers.Set("hasLoans", "No")

	for _, id := range questionIDs(BuildSequence(answers)) {
		assert.NotContains(t, id, "loan_")
		assert.NotEqual(t, "loans_count", id)
	}
}

func TestBuildSequenceDeterministic(t *testing.T) {
	answers := createTestAnswers()
	answers.Set("hasCreditCards", "Yes")
	answers.Set("activeCreditCardsCount", "2")
	answers.Set("cc_2_payment_type", "Partial Amount")

	first := BuildSequence(answers)
	second := BuildSequence(answers)
	assert.Equal(t, first, second)
}

func TestBuildSequenceItemNumbering(t *testing.T) {
	answers := createTestAnswers()
	answers.Set("hasBNPL", "Yes")
	answers.Set("activeBNPLCount", "2")

	ids := questionIDs(BuildSequence(answers))
	for i := 1; i <= 2; i++ {
		for _, attr := range []string{"provider", "amount", "emi", "tenure"} {
			assert.Contains(t, ids, fmt.Sprintf("bnpl_%d_%s", i, attr))
		}
	}
}
