package domain

import "errors"

// Common domain errors
var (
	ErrBookNotFound     = errors.New("book not found")
	ErrUserNotFound     = errors.New("user not found")
	ErrLoanNotFound     = errors.New("loan not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrAuthorNotFound   = errors.New("author not found")
)

// Loan eligibility and lifecycle errors
var (
	ErrInvalidDuration   = errors.New("loan duration must be 3days or 15days")
	ErrBookUnavailable   = errors.New("book is not available for loan")
	ErrBookAlreadyOnLoan = errors.New("book is already on loan")
	ErrUserDelinquent    = errors.New("user has overdue loans pending")
	ErrLoanLimitReached  = errors.New("user has reached the active loan limit")
	ErrLoanNotActive     = errors.New("loan is not active")
	ErrInconsistentWrite = errors.New("loan record and book stock are out of sync")
	ErrBookOnLoan        = errors.New("book is on loan and cannot be removed")
	ErrInternalCodeTaken = errors.New("a book with this internal code already exists")
)

// User errors
var (
	ErrDocumentIDTaken     = errors.New("a user with this document ID already exists")
	ErrUserInactive        = errors.New("user account is inactive")
	ErrInvalidRole         = errors.New("role must be student, teacher or admin")
	ErrInvalidUserStatus   = errors.New("status must be active or inactive")
	ErrUserHasPendingLoans = errors.New("user has active loans and cannot be removed")
	ErrWeakPassword        = errors.New("password must be at least 8 characters")
)
