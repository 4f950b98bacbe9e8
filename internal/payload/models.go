// internal/payload/models.go
package payload

// Submission is the typed wire payload sent for analysis. Field names match
// the intake contract exactly; numeric fields are plain integers with all
// currency grouping removed.
type Submission struct {
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
	Occupation string `json:"occupation"`
	Income     int    `json:"income"`
	CibilScore int    `json:"cibilScore"`

	HasMonthlyNeeds     string               `json:"hasMonthlyNeeds"`
	MonthlyNeedsCount   int                  `json:"monthlyNeedsCount"`
	MonthlyRequirements []MonthlyRequirement `json:"monthlyRequirements"`

	HasFD      string  `json:"hasFD"`
	FDBank     string  `json:"fdBank"`
	FDAmount   int     `json:"fdAmount"`
	FDInterest int     `json:"fdInterest"`
	FDTenure   float64 `json:"fdTenure"`

	HasRD    string `json:"hasRD"`
	RDBank   string `json:"rdBank"`
	RDAmount int    `json:"rdAmount"`
	RDTenure int    `json:"rdTenure"`

	HasSavings     string `json:"hasSavings"`
	SavingsAmount  int    `json:"savingsAmount"`
	PhysicalAssets string `json:"physicalAssets"`

	HasLoans         string `json:"hasLoans"`
	ActiveLoansCount int    `json:"activeLoansCount"`
	Loans            []Loan `json:"loans"`

	HasCreditCards         string       `json:"hasCreditCards"`
	ActiveCreditCardsCount int          `json:"activeCreditCardsCount"`
	CreditCards            []CreditCard `json:"creditCards"`

	HasBNPL         string     `json:"hasBNPL"`
	ActiveBNPLCount int        `json:"activeBNPLCount"`
	BNPLPlans       []BNPLPlan `json:"bnplPlans"`
}

// MonthlyRequirement is one fixed monthly obligation.
type MonthlyRequirement struct {
	Amount int `json:"amount"`
	Tenure int `json:"tenure"`
}

// Loan is one active loan.
type Loan struct {
	Type        string  `json:"type"`
	Bank        string  `json:"bank"`
	Outstanding int     `json:"outstanding"`
	Rate        float64 `json:"rate"`
	EMI         int     `json:"emi"`
	Tenure      int     `json:"tenure"`
}

// CreditCard is one active credit card.
type CreditCard struct {
	Limit          int    `json:"limit"`
	Fee            int    `json:"fee"`
	Outstanding    int    `json:"outstanding"`
	PaymentType    string `json:"paymentType"`
	PaymentPartial int    `json:"paymentPartial"`
	BillDate       int    `json:"billDate"`
	DueDate        int    `json:"dueDate"`
}

// BNPLPlan is one active pay-later plan.
type BNPLPlan struct {
	Provider    string `json:"provider"`
	Outstanding int    `json:"outstanding"`
	EMI         int    `json:"emi"`
	Tenure      int    `json:"tenure"`
}
