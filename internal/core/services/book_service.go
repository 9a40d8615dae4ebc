package services

import (
	"context"
	"errors"

	"univ-biblio/internal/adapters/persistence/models"
	"univ-biblio/internal/adapters/persistence/repositories"
	"univ-biblio/internal/core/domain"

	"gorm.io/gorm"
)

// Book service errors
var (
	ErrInvalidBookData  = errors.New("title, author and category are required and rating must be between 0 and 5")
	ErrInvalidCopyCount = errors.New("copy count must not be negative")
	ErrBookHasOpenLoans = errors.New("book has open loans and cannot be deleted")
)

// MostBorrowedLimit caps the popular-books listing
const MostBorrowedLimit = 8

// BookService handles catalog management. It never touches
// available_copies directly except to re-derive it from the loan ledger
// when the total changes; day-to-day counter updates belong to LoanService.
type BookService struct {
	db       TxRunner
	bookRepo repositories.BookRepository
	loanRepo repositories.LoanRepository
}

// NewBookService creates a new book service
func NewBookService(db TxRunner, bookRepo repositories.BookRepository, loanRepo repositories.LoanRepository) *BookService {
	return &BookService{
		db:       db,
		bookRepo: bookRepo,
		loanRepo: loanRepo,
	}
}

// BookInput represents create/update book input
type BookInput struct {
	Title       string  `json:"title"`
	Author      string  `json:"author"`
	Category    string  `json:"category"`
	Rating      float64 `json:"rating"`
	TotalCopies int     `json:"total_copies"`
	Cover       string  `json:"cover,omitempty"`
}

func (in *BookInput) validate() error {
	if in.Title == "" || in.Author == "" || in.Category == "" || in.Rating < 0 || in.Rating > 5 {
		return ErrInvalidBookData
	}
	if in.TotalCopies < 0 {
		return ErrInvalidCopyCount
	}
	return nil
}

// List lists books with pagination
func (s *BookService) List(ctx context.Context, offset, limit int) ([]*models.Book, int64, error) {
	return s.bookRepo.List(ctx, offset, limit)
}

// GetByID gets a book by ID
func (s *BookService) GetByID(ctx context.Context, id uint) (*models.Book, error) {
	book, err := s.bookRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrBookNotFound
		}
		return nil, err
	}
	return book, nil
}

// Create creates a new book with all copies available
func (s *BookService) Create(ctx context.Context, input *BookInput) (*models.Book, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	total := input.TotalCopies
	if total == 0 {
		total = 1
	}

	cover := input.Cover
	if cover == "" {
		cover = models.DefaultCover
	}

	book := &models.Book{
		Title:           input.Title,
		Author:          input.Author,
		Category:        input.Category,
		Rating:          input.Rating,
		Cover:           cover,
		TotalCopies:     total,
		AvailableCopies: total,
	}

	if err := s.bookRepo.Create(ctx, book); err != nil {
		return nil, err
	}
	return book, nil
}

// Update updates a book. The available counter is re-derived from the
// ledger (total minus open loans, floored at zero) in the same
// transaction so a concurrent borrow cannot slip between the read and
// the write.
func (s *BookService) Update(ctx context.Context, id uint, input *BookInput) (*models.Book, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	total := input.TotalCopies
	if total == 0 {
		total = 1
	}

	cover := input.Cover
	if cover == "" {
		cover = models.DefaultCover
	}

	var updated *models.Book
	err := s.db.Transaction(func(tx *gorm.DB) error {
		books := s.bookRepo.WithTx(tx)
		loans := s.loanRepo.WithTx(tx)

		book, err := books.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrBookNotFound
			}
			return err
		}

		open, err := loans.CountOpenByBook(ctx, id)
		if err != nil {
			return err
		}

		available := total - int(open)
		if available < 0 {
			available = 0
		}

		book.Title = input.Title
		book.Author = input.Author
		book.Category = input.Category
		book.Rating = input.Rating
		book.Cover = cover
		book.TotalCopies = total
		book.AvailableCopies = available

		if err := books.Update(ctx, book); err != nil {
			return err
		}
		updated = book
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes a book unless an open loan still references it
func (s *BookService) Delete(ctx context.Context, id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		books := s.bookRepo.WithTx(tx)
		loans := s.loanRepo.WithTx(tx)

		if _, err := books.GetByID(ctx, id); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrBookNotFound
			}
			return err
		}

		open, err := loans.CountOpenByBook(ctx, id)
		if err != nil {
			return err
		}
		if open > 0 {
			return ErrBookHasOpenLoans
		}

		return books.Delete(ctx, id)
	})
}

// MostBorrowed returns the most borrowed books of all time
func (s *BookService) MostBorrowed(ctx context.Context) ([]*models.BookWithBorrowCount, error) {
	return s.bookRepo.MostBorrowed(ctx, MostBorrowedLimit)
}
