package services

import (
	"context"
	"errors"
	"time"

	"univ-biblio/internal/adapters/persistence/models"
	"univ-biblio/internal/adapters/persistence/repositories"
	"univ-biblio/internal/pkg/clock"

	"gorm.io/gorm"
)

// DashboardService handles read-only aggregation for the dashboard and
// stats endpoints.
type DashboardService struct {
	userRepo repositories.UserRepository
	bookRepo repositories.BookRepository
	loanRepo repositories.LoanRepository
	clock    clock.Clock
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	userRepo repositories.UserRepository,
	bookRepo repositories.BookRepository,
	loanRepo repositories.LoanRepository,
	clk clock.Clock,
) *DashboardService {
	return &DashboardService{
		userRepo: userRepo,
		bookRepo: bookRepo,
		loanRepo: loanRepo,
		clock:    clk,
	}
}

// BorrowedBookRow is one currently-borrowed book on the dashboard
type BorrowedBookRow struct {
	BookID     uint      `json:"book_id"`
	Title      string    `json:"title"`
	Author     string    `json:"author"`
	Rating     float64   `json:"rating"`
	Cover      string    `json:"cover"`
	BorrowDate time.Time `json:"borrow_date"`
	DueDate    time.Time `json:"due_date"`
}

// HistoryRow is one past or present loan on the dashboard
type HistoryRow struct {
	BookID     uint       `json:"book_id"`
	Title      string     `json:"title"`
	Author     string     `json:"author"`
	BorrowDate time.Time  `json:"borrow_date"`
	ReturnDate *time.Time `json:"return_date"`
}

// DashboardData represents the user dashboard payload
type DashboardData struct {
	User             *models.UserResponse `json:"user"`
	BorrowedBooks    []BorrowedBookRow    `json:"borrowed_books"`
	BorrowingHistory []HistoryRow         `json:"borrowing_history"`
}

// GetDashboard returns the authenticated user's dashboard: profile,
// currently-borrowed books and the full borrowing history.
func (s *DashboardService) GetDashboard(ctx context.Context, userID uint) (*DashboardData, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFoundSvc
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, ErrUserNotFoundSvc
	}

	data := &DashboardData{
		User:             user.ToResponse(),
		BorrowedBooks:    []BorrowedBookRow{},
		BorrowingHistory: []HistoryRow{},
	}

	open, err := s.loanRepo.ListOpenByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, loan := range open {
		row := BorrowedBookRow{
			BookID:     loan.BookID,
			BorrowDate: loan.BorrowDate,
			DueDate:    loan.DueDate,
		}
		if loan.Book != nil {
			row.Title = loan.Book.Title
			row.Author = loan.Book.Author
			row.Rating = loan.Book.Rating
			row.Cover = loan.Book.Cover
		}
		data.BorrowedBooks = append(data.BorrowedBooks, row)
	}

	history, err := s.loanRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, loan := range history {
		row := HistoryRow{
			BookID:     loan.BookID,
			BorrowDate: loan.BorrowDate,
			ReturnDate: loan.ReturnedAt,
		}
		if loan.Book != nil {
			row.Title = loan.Book.Title
			row.Author = loan.Book.Author
		}
		data.BorrowingHistory = append(data.BorrowingHistory, row)
	}

	return data, nil
}

// Stats represents the library-wide statistics payload
type Stats struct {
	TotalBooks    int64 `json:"total_books"`
	TotalStudents int64 `json:"total_students"`
	TotalLoans    int64 `json:"total_loans"`
	TotalReturns  int64 `json:"total_returns"`
	OverdueLoans  int64 `json:"overdue_loans"`
}

// GetStats returns library-wide statistics
func (s *DashboardService) GetStats(ctx context.Context) (*Stats, error) {
	stats := &Stats{}
	var err error

	if stats.TotalBooks, err = s.bookRepo.Count(ctx); err != nil {
		return nil, err
	}
	if stats.TotalStudents, err = s.userRepo.Count(ctx); err != nil {
		return nil, err
	}
	if stats.TotalLoans, err = s.loanRepo.Count(ctx); err != nil {
		return nil, err
	}
	if stats.TotalReturns, err = s.loanRepo.CountReturned(ctx); err != nil {
		return nil, err
	}
	if stats.OverdueLoans, err = s.loanRepo.CountOverdue(ctx, s.clock.Now()); err != nil {
		return nil, err
	}

	return stats, nil
}
