package domain

import "time"

// Role represents a user role in the system
type Role string

const (
	RoleStudent Role = "student"
	RoleTeacher Role = "teacher"
	RoleAdmin   Role = "admin"
)

// Valid reports whether the role is one of the known roles
func (r Role) Valid() bool {
	return r == RoleStudent || r == RoleTeacher || r == RoleAdmin
}

// UserStatus represents a user account status
type UserStatus string

const (
	UserStatusActive   UserStatus = "active"
	UserStatusInactive UserStatus = "inactive"
)

// LoanStatus represents a loan state. Only "active" and "returned" are
// ever persisted; "overdue" is derived at read time from the due date.
type LoanStatus string

const (
	LoanStatusActive   LoanStatus = "active"
	LoanStatusReturned LoanStatus = "returned"
	LoanStatusOverdue  LoanStatus = "overdue"
)

// LoanDuration represents the allowed loan durations
type LoanDuration string

const (
	DurationShort LoanDuration = "3days"
	DurationLong  LoanDuration = "15days"
)

// Valid reports whether the duration is one of the allowed values
func (d LoanDuration) Valid() bool {
	return d == DurationShort || d == DurationLong
}

// WorkingDays returns the number of working days the duration spans
func (d LoanDuration) WorkingDays() int {
	if d == DurationShort {
		return 3
	}
	return 15
}

// LoanSnapshot is the storage-agnostic view of a loan that the
// eligibility policy and clearance evaluation operate on.
type LoanSnapshot struct {
	Status  LoanStatus
	DueDate time.Time
}

// EffectiveStatus resolves the derived loan state: a stored-active loan
// whose due date has passed is overdue.
func (s LoanSnapshot) EffectiveStatus(now time.Time) LoanStatus {
	if s.Status == LoanStatusActive && s.DueDate.Before(now) {
		return LoanStatusOverdue
	}
	return s.Status
}
