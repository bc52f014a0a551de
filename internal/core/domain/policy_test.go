package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var now = time.Date(2024, time.June, 10, 12, 0, 0, 0, time.Local)

func activeLoan(due time.Time) LoanSnapshot {
	return LoanSnapshot{Status: LoanStatusActive, DueDate: due}
}

func TestEffectiveStatusDerivesOverdue(t *testing.T) {
	past := activeLoan(now.AddDate(0, 0, -1))
	future := activeLoan(now.AddDate(0, 0, 5))
	returned := LoanSnapshot{Status: LoanStatusReturned, DueDate: now.AddDate(0, 0, -10)}

	assert.Equal(t, LoanStatusOverdue, past.EffectiveStatus(now))
	assert.Equal(t, LoanStatusActive, future.EffectiveStatus(now))
	// A returned loan never becomes overdue, no matter the due date
	assert.Equal(t, LoanStatusReturned, returned.EffectiveStatus(now))
}

func TestEvaluateBorrowerNoHistory(t *testing.T) {
	standing := EvaluateBorrower(nil, now)

	assert.True(t, standing.IsInGoodStanding)
	assert.Equal(t, 0, standing.ActiveLoansCount)
	assert.True(t, standing.CanBorrow)
}

func TestEvaluateBorrowerUnderLimit(t *testing.T) {
	loans := []LoanSnapshot{
		activeLoan(now.AddDate(0, 0, 3)),
		activeLoan(now.AddDate(0, 0, 7)),
	}

	standing := EvaluateBorrower(loans, now)

	assert.True(t, standing.IsInGoodStanding)
	assert.Equal(t, 2, standing.ActiveLoansCount)
	assert.True(t, standing.CanBorrow)
}

func TestEvaluateBorrowerAtLimit(t *testing.T) {
	loans := []LoanSnapshot{
		activeLoan(now.AddDate(0, 0, 3)),
		activeLoan(now.AddDate(0, 0, 5)),
		activeLoan(now.AddDate(0, 0, 7)),
	}

	standing := EvaluateBorrower(loans, now)

	assert.True(t, standing.IsInGoodStanding)
	assert.Equal(t, 3, standing.ActiveLoansCount)
	assert.False(t, standing.CanBorrow)
}

func TestEvaluateBorrowerWithOverdueLoan(t *testing.T) {
	loans := []LoanSnapshot{
		activeLoan(now.AddDate(0, 0, -2)), // overdue
	}

	standing := EvaluateBorrower(loans, now)

	assert.False(t, standing.IsInGoodStanding)
	assert.Equal(t, 0, standing.ActiveLoansCount)
	assert.False(t, standing.CanBorrow)
}

func TestEvaluateBorrowerOverdueBlocksRegardlessOfCount(t *testing.T) {
	loans := []LoanSnapshot{
		activeLoan(now.AddDate(0, 0, 4)),
		activeLoan(now.AddDate(0, 0, -1)), // overdue
	}

	standing := EvaluateBorrower(loans, now)

	assert.False(t, standing.IsInGoodStanding)
	assert.Equal(t, 1, standing.ActiveLoansCount)
	assert.False(t, standing.CanBorrow)
}

func TestEvaluateBorrowerReturnedLoansDoNotCount(t *testing.T) {
	loans := []LoanSnapshot{
		{Status: LoanStatusReturned, DueDate: now.AddDate(0, 0, -30)},
		{Status: LoanStatusReturned, DueDate: now.AddDate(0, 0, -20)},
	}

	standing := EvaluateBorrower(loans, now)

	assert.True(t, standing.IsInGoodStanding)
	assert.Equal(t, 0, standing.ActiveLoansCount)
	assert.True(t, standing.CanBorrow)
}

func TestLoanDuration(t *testing.T) {
	assert.Equal(t, 3, DurationShort.WorkingDays())
	assert.Equal(t, 15, DurationLong.WorkingDays())
	assert.True(t, DurationShort.Valid())
	assert.True(t, DurationLong.Valid())
	assert.False(t, LoanDuration("7days").Valid())
}
