package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"univ-biblio/internal/adapters/persistence/models"
	"univ-biblio/internal/adapters/persistence/repositories"
	"univ-biblio/internal/core/domain"
	"univ-biblio/internal/pkg/clock"

	"gorm.io/gorm"
)

const (
	// DefaultLoanDays is the loan period applied when no due date is requested
	DefaultLoanDays = 14

	// MaxDueDays is how far out a requested due date may be
	MaxDueDays = 30
)

// TxRunner runs a function inside a database transaction; everything the
// function writes lands atomically or not at all. *gorm.DB implements it.
type TxRunner interface {
	Transaction(fn func(tx *gorm.DB) error, opts ...*sql.TxOptions) error
}

// LoanService keeps the available-copy counter consistent with the loan
// ledger. All counter mutations in the system go through Borrow and Return.
type LoanService struct {
	db       TxRunner
	bookRepo repositories.BookRepository
	loanRepo repositories.LoanRepository
	clock    clock.Clock
}

// NewLoanService creates a new loan service
func NewLoanService(db TxRunner, bookRepo repositories.BookRepository, loanRepo repositories.LoanRepository, clk clock.Clock) *LoanService {
	return &LoanService{
		db:       db,
		bookRepo: bookRepo,
		loanRepo: loanRepo,
		clock:    clk,
	}
}

// Borrow creates an open loan for (user, book) and decrements the book's
// available-copy counter in one transaction.
//
// Validation happens before any write: a user may not hold two open loans
// on the same book, the book must exist with a copy available, and a
// requested due date must fall between tomorrow and MaxDueDays out (day
// granularity). The decrement inside the transaction is guarded, so two
// concurrent borrows racing for the last copy resolve to exactly one loan.
func (s *LoanService) Borrow(ctx context.Context, userID, bookID uint, requestedDue *time.Time) error {
	now := s.clock.Now()

	if _, err := s.loanRepo.FindOpen(ctx, userID, bookID); err == nil {
		return domain.ErrDuplicateLoan
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	book, err := s.bookRepo.GetByID(ctx, bookID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrBookNotFound
		}
		return err
	}
	if book.AvailableCopies <= 0 {
		return domain.ErrNoCopyAvailable
	}

	due, err := s.resolveDueDate(now, requestedDue)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		loans := s.loanRepo.WithTx(tx)
		books := s.bookRepo.WithTx(tx)

		// Re-check under row lock; two in-flight borrows may both have
		// passed the fast-path duplicate check.
		if _, err := loans.FindOpenForUpdate(ctx, userID, bookID); err == nil {
			return domain.ErrDuplicateLoan
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		rows, err := books.AdjustAvailable(ctx, bookID, -1)
		if err != nil {
			return err
		}
		if rows == 0 {
			// Lost the race for the last copy.
			return domain.ErrNoCopyAvailable
		}

		return loans.Create(ctx, &models.Loan{
			UserID:     userID,
			BookID:     bookID,
			BorrowDate: now,
			DueDate:    due,
		})
	})
}

// Return closes the open loan for (user, book), appends the historical
// return record and increments the available-copy counter, atomically.
// An optional rating from the user is stored on the return record.
func (s *LoanService) Return(ctx context.Context, userID, bookID uint, rating *int) error {
	now := s.clock.Now()

	if rating != nil && (*rating < 0 || *rating > 5) {
		return domain.ErrInvalidRating
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		loans := s.loanRepo.WithTx(tx)
		books := s.bookRepo.WithTx(tx)

		loan, err := loans.FindOpenForUpdate(ctx, userID, bookID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrNoActiveLoan
			}
			return err
		}

		if err := loans.Close(ctx, loan.ID, now); err != nil {
			return err
		}

		rec := &models.ReturnRecord{
			LoanID:      loan.ID,
			UserID:      userID,
			BookID:      bookID,
			BorrowDate:  loan.BorrowDate,
			ReturnDate:  now,
			RatingGiven: rating,
		}
		if err := loans.CreateReturnRecord(ctx, rec); err != nil {
			return err
		}

		rows, err := books.AdjustAvailable(ctx, bookID, +1)
		if err != nil {
			return err
		}
		if rows == 0 {
			// Counter already at total while an open loan existed; the
			// ledger and the counter disagree. Roll everything back.
			return fmt.Errorf("availability counter out of sync for book %d", bookID)
		}

		return nil
	})
}

// ActiveLoans lists the user's open loans with book data
func (s *LoanService) ActiveLoans(ctx context.Context, userID uint) ([]*models.LoanResponse, error) {
	loans, err := s.loanRepo.ListOpenByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	responses := make([]*models.LoanResponse, len(loans))
	for i, loan := range loans {
		responses[i] = loan.ToResponse()
	}
	return responses, nil
}

// resolveDueDate validates a requested due date against "now" at day
// granularity: tomorrow through MaxDueDays out, inclusive on both ends.
// A nil request gets the default loan period.
func (s *LoanService) resolveDueDate(now time.Time, requested *time.Time) (time.Time, error) {
	if requested == nil {
		return now.AddDate(0, 0, DefaultLoanDays), nil
	}

	today := dateOf(now)
	earliest := today.AddDate(0, 0, 1)
	latest := today.AddDate(0, 0, MaxDueDays)

	reqDay := dateOf(requested.In(now.Location()))
	if reqDay.Before(earliest) || reqDay.After(latest) {
		return time.Time{}, domain.ErrInvalidDueDate
	}

	return *requested, nil
}

func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
