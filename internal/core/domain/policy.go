package domain

import "time"

// MaxActiveLoans is the maximum number of loans a user may hold at once
const MaxActiveLoans = 3

// BorrowerStanding is the verdict of the user-level eligibility check
type BorrowerStanding struct {
	IsInGoodStanding bool `json:"is_in_good_standing"`
	ActiveLoansCount int  `json:"active_loans_count"`
	CanBorrow        bool `json:"can_borrow"`
}

// EvaluateBorrower applies the borrowing rules to a user's loan history:
// no overdue loans and fewer than MaxActiveLoans active ones. Overdue is
// resolved from the due date, not from the stored status. A user with no
// loan history is trivially in good standing.
func EvaluateBorrower(loans []LoanSnapshot, now time.Time) BorrowerStanding {
	activeCount := 0
	hasOverdue := false

	for _, loan := range loans {
		switch loan.EffectiveStatus(now) {
		case LoanStatusActive:
			activeCount++
		case LoanStatusOverdue:
			hasOverdue = true
		}
	}

	return BorrowerStanding{
		IsInGoodStanding: !hasOverdue,
		ActiveLoansCount: activeCount,
		CanBorrow:        !hasOverdue && activeCount < MaxActiveLoans,
	}
}
