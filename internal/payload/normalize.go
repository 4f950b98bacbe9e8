// internal/payload/normalize.go
package payload

import (
	"fmt"
	"strconv"
	"strings"

	"minus-backend/internal/questionnaire"
)

// Normalize converts a raw answer set into the typed submission. The
// transformation is total: missing or malformed values become zero or empty
// rather than errors, matching the intake contract. Repeated sections are
// materialized positionally from 1 to the entered count, and only when their
// gate is Yes.
func Normalize(answers questionnaire.AnswerSet) Submission {
	sub := Submission{
		Name:       answers.Get("name"),
		Phone:      "+91" + answers.Get("phone"),
		Email:      answers.Get("email"),
		Occupation: answers.Get("occupation"),
		Income:     amount(answers, "income"),
		CibilScore: whole(answers, "cibilScore"),

		HasMonthlyNeeds:   answers.Get("hasMonthlyNeeds"),
		MonthlyNeedsCount: whole(answers, "monthlyNeedsCount"),

		HasFD:      answers.Get("hasFD"),
		FDBank:     answers.Get("fdBank"),
		FDAmount:   amount(answers, "fdAmount"),
		FDInterest: amount(answers, "fdInterest"),
		FDTenure:   decimal(answers, "fdTenure"),

		HasRD:    answers.Get("hasRD"),
		RDBank:   answers.Get("rdBank"),
		RDAmount: amount(answers, "rdAmount"),
		RDTenure: whole(answers, "rdTenure"),

		HasSavings:     answers.Get("hasSavings"),
		SavingsAmount:  amount(answers, "savingsAmount"),
		PhysicalAssets: answers.Get("physicalAssets"),

		HasLoans:         answers.Get("hasLoans"),
		ActiveLoansCount: whole(answers, "activeLoansCount"),

		HasCreditCards:         answers.Get("hasCreditCards"),
		ActiveCreditCardsCount: whole(answers, "activeCreditCardsCount"),

		HasBNPL:         answers.Get("hasBNPL"),
		ActiveBNPLCount: whole(answers, "activeBNPLCount"),

		MonthlyRequirements: []MonthlyRequirement{},
		Loans:               []Loan{},
		CreditCards:         []CreditCard{},
		BNPLPlans:           []BNPLPlan{},
	}

	if sub.HasMonthlyNeeds == "Yes" {
		for i := 1; i <= sub.MonthlyNeedsCount; i++ {
			sub.MonthlyRequirements = append(sub.MonthlyRequirements, MonthlyRequirement{
				Amount: amount(answers, fmt.Sprintf("need_%d_amount", i)),
				Tenure: whole(answers, fmt.Sprintf("need_%d_tenure", i)),
			})
		}
	}

	if sub.HasLoans == "Yes" {
		for i := 1; i <= sub.ActiveLoansCount; i++ {
			sub.Loans = append(sub.Loans, Loan{
				Type:        answers.Get(fmt.Sprintf("loan_%d_type", i)),
				Bank:        answers.Get(fmt.Sprintf("loan_%d_bank", i)),
				Outstanding: amount(answers, fmt.Sprintf("loan_%d_amount", i)),
				Rate:        decimal(answers, fmt.Sprintf("loan_%d_rate", i)),
				EMI:         amount(answers, fmt.Sprintf("loan_%d_emi", i)),
				Tenure:      whole(answers, fmt.Sprintf("loan_%d_tenure", i)),
			})
		}
	}

	if sub.HasCreditCards == "Yes" {
		for i := 1; i <= sub.ActiveCreditCardsCount; i++ {
			sub.CreditCards = append(sub.CreditCards, CreditCard{
				Limit:          amount(answers, fmt.Sprintf("cc_%d_limit", i)),
				Fee:            amount(answers, fmt.Sprintf("cc_%d_fee", i)),
				Outstanding:    amount(answers, fmt.Sprintf("cc_%d_outstanding", i)),
				PaymentType:    answers.Get(fmt.Sprintf("cc_%d_payment_type", i)),
				PaymentPartial: amount(answers, fmt.Sprintf("cc_%d_payment_partial", i)),
				BillDate:       whole(answers, fmt.Sprintf("cc_%d_bill_date", i)),
				DueDate:        whole(answers, fmt.Sprintf("cc_%d_due_date", i)),
			})
		}
	}

	if sub.HasBNPL == "Yes" {
		for i := 1; i <= sub.ActiveBNPLCount; i++ {
			sub.BNPLPlans = append(sub.BNPLPlans, BNPLPlan{
				Provider:    answers.Get(fmt.Sprintf("bnpl_%d_provider", i)),
				Outstanding: amount(answers, fmt.Sprintf("bnpl_%d_amount", i)),
				EMI:         amount(answers, fmt.Sprintf("bnpl_%d_emi", i)),
				Tenure:      whole(answers, fmt.Sprintf("bnpl_%d_tenure", i)),
			})
		}
	}

	return sub
}

// amount parses a possibly-grouped rupee string, defaulting to 0.
func amount(a questionnaire.AnswerSet, key string) int {
	return questionnaire.ParseAmount(a.Get(key))
}

// whole parses a plain integer answer, defaulting to 0.
func whole(a questionnaire.AnswerSet, key string) int {
	n, err := strconv.Atoi(strings.TrimSpace(a.Get(key)))
	if err != nil {
		return 0
	}
	return n
}

// decimal parses a fractional answer, defaulting to 0.
func decimal(a questionnaire.AnswerSet, key string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(a.Get(key)), 64)
	if err != nil {
		return 0
	}
	return f
}
