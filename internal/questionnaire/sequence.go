// internal/questionnaire/sequence.go
package questionnaire

import "fmt"

// BuildSequence derives the full question sequence from the current answers.
// The result depends only on the gate and count answers; re-deriving after any
// mutation yields the authoritative sequence. Items for repeated sections are
// expanded positionally from 1 to the entered count.
func BuildSequence(answers AnswerSet) []Question {
	questions := []Question{
		{
			ID:          "name",
			Label:       "Identity",
			Prompt:      "What should we call you?",
			Subtext:     "Your first name is enough.",
			Key:         "name",
			Kind:        KindText,
			Placeholder: "Type here...",
		},
		{
			ID:          "phone",
			Label:       "Contact",
			Prompt:      "Your phone number",
			Subtext:     "For your Minus plan delivery only.",
			Key:         "phone",
			Kind:        KindTel,
			Placeholder: "98765 43210",
		},
		{
			ID:          "email",
			Label:       "Digital",
			Prompt:      "Your email address",
			Subtext:     "Supports Gmail, Yahoo, Outlook, etc.",
			Key:         "email",
			Kind:        KindEmail,
			Placeholder: "name@example.com",
		},
		{
			ID:      "occupation",
			Label:   "Profile",
			Prompt:  "Which best describes you right now?",
			Subtext: "Please select your current work or life situation.",
			Key:     "occupation",
			Kind:    KindSelect,
			Options: occupationOptions,
		},
		{
			ID:          "income",
			Label:       "Financials",
			Prompt:      "What is your monthly income? (₹)",
			Subtext:     "Type your answer here...",
			Key:         "income",
			Kind:        KindText,
			Placeholder: "e.g. 50,000",
		},
	}

	questions = append(questions, Question{
		ID:      "needs_check",
		Label:   "Obligations",
		Prompt:  "Do you have any fixed monthly financial requirements?",
		Subtext: "These are mandatory expenses that must be paid on time. Minus will always protect these first. If an expense is optional, do not include it here.",
		Key:     "hasMonthlyNeeds",
		Kind:    KindSelect,
		Options: yesNoOptions,
	})

	if answers.Get("hasMonthlyNeeds") == "Yes" {
		questions = append(questions, Question{
			ID:          "needs_count",
			Label:       "Obligation Count",
			Prompt:      "How many separate monthly requirements do you have?",
			Subtext:     "Enter the number of separate obligations.",
			Key:         "monthlyNeedsCount",
			Kind:        KindNumber,
			Placeholder: "e.g. 1",
		})

		for i := 1; i <= answers.Count("monthlyNeedsCount"); i++ {
			questions = append(questions,
				Question{
					ID:          fmt.Sprintf("need_%d_amount", i),
					Label:       fmt.Sprintf("Requirement %d Value", i),
					Prompt:      fmt.Sprintf("How much amount do you need per month for Requirement %d? (₹)", i),
					Subtext:     "The fixed monthly outflow.",
					Key:         fmt.Sprintf("need_%d_amount", i),
					Kind:        KindText,
					Placeholder: "e.g. 5,000",
				},
				Question{
					ID:          fmt.Sprintf("need_%d_tenure", i),
					Label:       fmt.Sprintf("Requirement %d Duration", i),
					Prompt:      fmt.Sprintf("For how long will Requirement %d continue? (Months)", i),
					Subtext:     "Duration of this obligation.",
					Key:         fmt.Sprintf("need_%d_tenure", i),
					Kind:        KindNumber,
					Placeholder: "e.g. 12",
				},
			)
		}
	}

	questions = append(questions, Question{
		ID:      "fd_check",
		Label:   "Assets",
		Prompt:  "Do you currently have a Fixed Deposit (FD)?",
		Subtext: "This helps us find hidden yield opportunities.",
		Key:     "hasFD",
		Kind:    KindSelect,
		Options: yesNoOptions,
	})

	if answers.Get("hasFD") == "Yes" {
		questions = append(questions,
			Question{
				ID:          "fd_bank",
				Label:       "Asset Details",
				Prompt:      "Which institution holds your FD?",
				Subtext:     "Name of the bank or platform.",
				Key:         "fdBank",
				Kind:        KindText,
				Placeholder: "e.g. HDFC, SBI, Groww",
			},
			Question{
				ID:          "fd_amount",
				Label:       "Asset Value",
				Prompt:      "What is the total amount invested? (₹)",
				Subtext:     "The principal amount currently locked.",
				Key:         "fdAmount",
				Kind:        KindText,
				Placeholder: "e.g. 1,00,000",
			},
			Question{
				ID:          "fd_interest",
				Label:       "Yield",
				Prompt:      "How much monthly interest does it earn? (₹)",
				Subtext:     "Estimate the monthly accumulation.",
				Key:         "fdInterest",
				Kind:        KindText,
				Placeholder: "e.g. 500",
			},
			Question{
				ID:          "fd_tenure",
				Label:       "Timeline",
				Prompt:      "What is the remaining tenure until maturity? (Years)",
				Subtext:     "Time left before the deposit unlocks.",
				Key:         "fdTenure",
				Kind:        KindNumber,
				Placeholder: "e.g. 1",
			},
		)
	}

	questions = append(questions, Question{
		ID:      "rd_check",
		Label:   "Assets",
		Prompt:  "Do you currently have a Recurring Deposit (RD)?",
		Subtext: "Regular savings that might be better utilized.",
		Key:     "hasRD",
		Kind:    KindSelect,
		Options: yesNoOptions,
	})

	if answers.Get("hasRD") == "Yes" {
		questions = append(questions,
			Question{
				ID:          "rd_bank",
				Label:       "Asset Details",
				Prompt:      "Which institution holds your RD?",
				Subtext:     "Name of the bank or platform.",
				Key:         "rdBank",
				Kind:        KindText,
				Placeholder: "e.g. ICICI, Post Office",
			},
			Question{
				ID:          "rd_amount",
				Label:       "Cashflow",
				Prompt:      "What is your monthly installment amount? (₹)",
				Subtext:     "The fixed amount deposited each month.",
				Key:         "rdAmount",
				Kind:        KindText,
				Placeholder: "e.g. 5,000",
			},
			Question{
				ID:          "rd_tenure",
				Label:       "Timeline",
				Prompt:      "What is the remaining tenure until maturity? (Months)",
				Subtext:     "Time left before the deposit unlocks.",
				Key:         "rdTenure",
				Kind:        KindNumber,
				Placeholder: "e.g. 12",
			},
		)
	}

	// Savings amount is captured inline on the gate step itself.
	questions = append(questions, Question{
		ID:      "savings_check",
		Label:   "Liquidity",
		Prompt:  "Do you maintain an idle balance in a Savings Account?",
		Subtext: "Liquid funds typically earning 3-4% interest.",
		Key:     "hasSavings",
		Kind:    KindSelect,
		Options: yesNoOptions,
	})

	questions = append(questions, Question{
		ID:          "physical_assets",
		Label:       "Solvency",
		Prompt:      "Declare any Non-Liquid Assets.",
		Subtext:     "e.g. Gold Bullion, Real Estate, Land. (Optional)",
		Key:         "physicalAssets",
		Kind:        KindTextarea,
		Placeholder: "e.g. 200g Gold, Plot in City X...",
	})

	questions = append(questions, Question{
		ID:      "loans_check",
		Label:   "Liabilities",
		Prompt:  "Do you currently have any active loans?",
		Subtext: "Personal Loans, Car Loans, or Mortgages (Exclude Credit Cards).",
		Key:     "hasLoans",
		Kind:    KindSelect,
		Options: yesNoOptions,
	})

	if answers.Get("hasLoans") == "Yes" {
		questions = append(questions, Question{
			ID:          "loans_count",
			Label:       "Liability Details",
			Prompt:      "How many active loans do you have?",
			Subtext:     "Enter the total count (Exclude Credit Cards).",
			Key:         "activeLoansCount",
			Kind:        KindNumber,
			Placeholder: "e.g. 2",
		})

		for i := 1; i <= answers.Count("activeLoansCount"); i++ {
			questions = append(questions,
				Question{
					ID:      fmt.Sprintf("loan_%d_type", i),
					Label:   fmt.Sprintf("Loan %d Type", i),
					Prompt:  fmt.Sprintf("What type of loan is Loan %d?", i),
					Subtext: "Select the category that fits best.",
					Key:     fmt.Sprintf("loan_%d_type", i),
					Kind:    KindSelect,
					Options: loanTypeOptions,
				},
				Question{
					ID:          fmt.Sprintf("loan_%d_bank", i),
					Label:       fmt.Sprintf("Loan %d Lender", i),
					Prompt:      fmt.Sprintf("Who is your bank or lender for Loan %d?", i),
					Subtext:     "e.g. HDFC, SBI, Bajaj Finserv",
					Key:         fmt.Sprintf("loan_%d_bank", i),
					Kind:        KindText,
					Placeholder: "Bank/Lender Name",
				},
				Question{
					ID:          fmt.Sprintf("loan_%d_amount", i),
					Label:       fmt.Sprintf("Loan %d Balance", i),
					Prompt:      fmt.Sprintf("What is the outstanding amount for Loan %d? (₹)", i),
					Subtext:     "The principal amount left to pay.",
					Key:         fmt.Sprintf("loan_%d_amount", i),
					Kind:        KindText,
					Placeholder: "e.g. 5,00,000",
				},
				Question{
					ID:          fmt.Sprintf("loan_%d_rate", i),
					Label:       fmt.Sprintf("Loan %d Cost", i),
					Prompt:      fmt.Sprintf("What is the interest rate for Loan %d? (%%)", i),
					Subtext:     "Annual interest rate.",
					Key:         fmt.Sprintf("loan_%d_rate", i),
					Kind:        KindNumber,
					Placeholder: "e.g. 12",
				},
				Question{
					ID:          fmt.Sprintf("loan_%d_emi", i),
					Label:       fmt.Sprintf("Loan %d Outflow", i),
					Prompt:      fmt.Sprintf("What is the EMI amount for Loan %d? (₹)", i),
					Subtext:     "Your monthly payment.",
					Key:         fmt.Sprintf("loan_%d_emi", i),
					Kind:        KindText,
					Placeholder: "e.g. 15,000",
				},
				Question{
					ID:          fmt.Sprintf("loan_%d_tenure", i),
					Label:       fmt.Sprintf("Loan %d Timeline", i),
					Prompt:      fmt.Sprintf("Remaining tenure for Loan %d (months)", i),
					Subtext:     "Months left to be debt-free on this loan.",
					Key:         fmt.Sprintf("loan_%d_tenure", i),
					Kind:        KindNumber,
					Placeholder: "e.g. 36",
				},
			)
		}
	}

	questions = append(questions, Question{
		ID:      "cc_check",
		Label:   "Credit Facilities",
		Prompt:  "Do you currently use any credit cards?",
		Subtext: "Select 'Yes' even if you clear the bill monthly.",
		Key:     "hasCreditCards",
		Kind:    KindSelect,
		Options: yesNoOptions,
	})

	if answers.Get("hasCreditCards") == "Yes" {
		questions = append(questions, Question{
			ID:          "cc_count",
			Label:       "Credit Details",
			Prompt:      "How many credit cards do you use?",
			Subtext:     "Enter the number of active cards.",
			Key:         "activeCreditCardsCount",
			Kind:        KindNumber,
			Placeholder: "e.g. 2",
		})

		for i := 1; i <= answers.Count("activeCreditCardsCount"); i++ {
			questions = append(questions,
				Question{
					ID:          fmt.Sprintf("cc_%d_limit", i),
					Label:       fmt.Sprintf("Card %d Limit", i),
					Prompt:      fmt.Sprintf("What is the total limit on Card %d? (₹)", i),
					Subtext:     "The maximum amount you can spend.",
					Key:         fmt.Sprintf("cc_%d_limit", i),
					Kind:        KindText,
					Placeholder: "e.g. 1,00,000",
				},
				Question{
					ID:          fmt.Sprintf("cc_%d_fee", i),
					Label:       fmt.Sprintf("Card %d Cost", i),
					Prompt:      fmt.Sprintf("What is the annual fee for Card %d? (₹)", i),
					Subtext:     "Enter 0 if it is a lifetime free card.",
					Key:         fmt.Sprintf("cc_%d_fee", i),
					Kind:        KindText,
					Placeholder: "e.g. 1,000",
				},
				Question{
					ID:          fmt.Sprintf("cc_%d_outstanding", i),
					Label:       fmt.Sprintf("Card %d Balance", i),
					Prompt:      fmt.Sprintf("How much do you currently owe on Card %d? (₹)", i),
					Subtext:     "The unbilled + billed amount used.",
					Key:         fmt.Sprintf("cc_%d_outstanding", i),
					Kind:        KindText,
					Placeholder: "e.g. 15,000",
				},
				Question{
					ID:      fmt.Sprintf("cc_%d_payment_type", i),
					Label:   fmt.Sprintf("Card %d Behavior", i),
					Prompt:  fmt.Sprintf("How do you usually pay the bill for Card %d?", i),
					Subtext: "Be honest. This helps us calculate risk.",
					Key:     fmt.Sprintf("cc_%d_payment_type", i),
					Kind:    KindSelect,
					Options: paymentTypeOptions,
				},
			)

			if answers.Get(fmt.Sprintf("cc_%d_payment_type", i)) == "Partial Amount" {
				questions = append(questions, Question{
					ID:          fmt.Sprintf("cc_%d_payment_partial", i),
					Label:       fmt.Sprintf("Card %d Payment", i),
					Prompt:      fmt.Sprintf("How much do you typically pay for Card %d? (₹)", i),
					Subtext:     "The average amount you pay monthly.",
					Key:         fmt.Sprintf("cc_%d_payment_partial", i),
					Kind:        KindText,
					Placeholder: "e.g. 5,000",
				})
			}

			questions = append(questions,
				Question{
					ID:          fmt.Sprintf("cc_%d_bill_date", i),
					Label:       fmt.Sprintf("Card %d Cycle", i),
					Prompt:      fmt.Sprintf("On which day is the bill generated for Card %d?", i),
					Subtext:     "Enter the day of the month (e.g., 15).",
					Key:         fmt.Sprintf("cc_%d_bill_date", i),
					Kind:        KindNumber,
					Placeholder: "1-31",
				},
				Question{
					ID:          fmt.Sprintf("cc_%d_due_date", i),
					Label:       fmt.Sprintf("Card %d Deadline", i),
					Prompt:      fmt.Sprintf("On which day is the payment due for Card %d?", i),
					Subtext:     "Enter the day of the month (e.g., 5).",
					Key:         fmt.Sprintf("cc_%d_due_date", i),
					Kind:        KindNumber,
					Placeholder: "1-31",
				},
			)
		}
	}

	questions = append(questions, Question{
		ID:      "bnpl_check",
		Label:   "Micro-Credit",
		Prompt:  "Do you have any active Buy Now, Pay Later (BNPL) plans or ongoing EMIs?",
		Subtext: "e.g. Amazon Pay Later, Flipkart Pay Later, ZestMoney, etc.",
		Key:     "hasBNPL",
		Kind:    KindSelect,
		Options: yesNoOptions,
	})

	if answers.Get("hasBNPL") == "Yes" {
		questions = append(questions, Question{
			ID:          "bnpl_count",
			Label:       "Micro-Credit Details",
			Prompt:      "How many active BNPL/EMI plans do you have?",
			Subtext:     "Enter the total number of active plans.",
			Key:         "activeBNPLCount",
			Kind:        KindNumber,
			Placeholder: "e.g. 2",
		})

		for i := 1; i <= answers.Count("activeBNPLCount"); i++ {
			questions = append(questions,
				Question{
					ID:          fmt.Sprintf("bnpl_%d_provider", i),
					Label:       fmt.Sprintf("Plan %d Provider", i),
					Prompt:      fmt.Sprintf("Who is the provider for Plan %d?", i),
					Subtext:     "e.g. Amazon Pay Later, Flipkart, Zest, Bajaj Finserv, etc.",
					Key:         fmt.Sprintf("bnpl_%d_provider", i),
					Kind:        KindText,
					Placeholder: "Provider Name",
				},
				Question{
					ID:          fmt.Sprintf("bnpl_%d_amount", i),
					Label:       fmt.Sprintf("Plan %d Balance", i),
					Prompt:      fmt.Sprintf("What is the total outstanding amount for Plan %d? (₹)", i),
					Subtext:     "The total amount left to be paid.",
					Key:         fmt.Sprintf("bnpl_%d_amount", i),
					Kind:        KindText,
					Placeholder: "e.g. 15,000",
				},
				Question{
					ID:          fmt.Sprintf("bnpl_%d_emi", i),
					Label:       fmt.Sprintf("Plan %d Outflow", i),
					Prompt:      fmt.Sprintf("What is the monthly EMI for Plan %d? (₹)", i),
					Subtext:     "Amount deducted every month.",
					Key:         fmt.Sprintf("bnpl_%d_emi", i),
					Kind:        KindText,
					Placeholder: "e.g. 2,500",
				},
				Question{
					ID:          fmt.Sprintf("bnpl_%d_tenure", i),
					Label:       fmt.Sprintf("Plan %d Timeline", i),
					Prompt:      fmt.Sprintf("How many months are left for Plan %d?", i),
					Subtext:     "Remaining tenure.",
					Key:         fmt.Sprintf("bnpl_%d_tenure", i),
					Kind:        KindNumber,
					Placeholder: "e.g. 6",
				},
			)
		}
	}

	questions = append(questions, Question{
		ID:          "cibil_score",
		Label:       "Credit Health",
		Prompt:      "What is your current CIBIL Score?",
		Subtext:     "Range is usually 300 to 900. (Optional)",
		Key:         "cibilScore",
		Kind:        KindNumber,
		Placeholder: "e.g. 750",
	})

	return questions
}
