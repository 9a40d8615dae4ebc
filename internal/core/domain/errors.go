package domain

import "errors"

// Loan errors
var (
	ErrBookNotFound    = errors.New("book not found")
	ErrDuplicateLoan   = errors.New("user already has an open loan for this book")
	ErrNoCopyAvailable = errors.New("no copy available for this book")
	ErrInvalidDueDate  = errors.New("due date must be between tomorrow and 30 days out")
	ErrNoActiveLoan    = errors.New("no active loan found for this book")
	ErrInvalidRating   = errors.New("rating must be between 0 and 5")
)
