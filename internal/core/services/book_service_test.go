package services

import (
	"context"
	"testing"

	"univ-biblio/internal/adapters/persistence/models"
	"univ-biblio/internal/core/domain"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func validBookInput() *BookInput {
	return &BookInput{
		Title:       "Clean Architecture",
		Author:      "Robert C. Martin",
		Category:    "Software",
		Rating:      4.5,
		TotalCopies: 3,
	}
}

func TestCreateBookAllCopiesAvailable(t *testing.T) {
	var created *models.Book
	books := &mockBookRepo{
		CreateFn: func(ctx context.Context, book *models.Book) error {
			created = book
			return nil
		},
	}

	svc := NewBookService(&fakeTxRunner{}, books, &mockLoanRepo{})
	book, err := svc.Create(context.Background(), validBookInput())
	require.NoError(t, err)

	require.Equal(t, created, book)
	require.Equal(t, 3, book.TotalCopies)
	require.Equal(t, 3, book.AvailableCopies)
}

func TestCreateBookZeroCopiesDefaultsToOne(t *testing.T) {
	books := &mockBookRepo{
		CreateFn: func(ctx context.Context, book *models.Book) error { return nil },
	}

	svc := NewBookService(&fakeTxRunner{}, books, &mockLoanRepo{})

	input := validBookInput()
	input.TotalCopies = 0
	book, err := svc.Create(context.Background(), input)
	require.NoError(t, err)
	require.Equal(t, 1, book.TotalCopies)
	require.Equal(t, 1, book.AvailableCopies)
}

func TestCreateBookAppliesDefaultCover(t *testing.T) {
	books := &mockBookRepo{
		CreateFn: func(ctx context.Context, book *models.Book) error { return nil },
	}

	svc := NewBookService(&fakeTxRunner{}, books, &mockLoanRepo{})
	book, err := svc.Create(context.Background(), validBookInput())
	require.NoError(t, err)
	require.Equal(t, models.DefaultCover, book.Cover)
}

func TestCreateBookValidation(t *testing.T) {
	svc := NewBookService(&fakeTxRunner{}, &mockBookRepo{}, &mockLoanRepo{})

	missingTitle := validBookInput()
	missingTitle.Title = ""
	_, err := svc.Create(context.Background(), missingTitle)
	require.ErrorIs(t, err, ErrInvalidBookData)

	badRating := validBookInput()
	badRating.Rating = 5.5
	_, err = svc.Create(context.Background(), badRating)
	require.ErrorIs(t, err, ErrInvalidBookData)

	negativeCopies := validBookInput()
	negativeCopies.TotalCopies = -1
	_, err = svc.Create(context.Background(), negativeCopies)
	require.ErrorIs(t, err, ErrInvalidCopyCount)
}

func TestUpdateBookRederivesAvailableFromLedger(t *testing.T) {
	var saved *models.Book
	books := &mockBookRepo{
		GetByIDFn: func(ctx context.Context, id uint) (*models.Book, error) {
			return &models.Book{ID: id, TotalCopies: 5, AvailableCopies: 5}, nil
		},
		UpdateFn: func(ctx context.Context, book *models.Book) error {
			saved = book
			return nil
		},
	}
	loans := &mockLoanRepo{
		CountOpenByBookFn: func(ctx context.Context, bookID uint) (int64, error) {
			return 2, nil
		},
	}

	svc := NewBookService(&fakeTxRunner{}, books, loans)

	input := validBookInput()
	input.TotalCopies = 4
	book, err := svc.Update(context.Background(), 1, input)
	require.NoError(t, err)

	require.Equal(t, saved, book)
	require.Equal(t, 4, book.TotalCopies)
	require.Equal(t, 2, book.AvailableCopies)
}

func TestUpdateBookAvailableFlooredAtZero(t *testing.T) {
	books := &mockBookRepo{
		GetByIDFn: func(ctx context.Context, id uint) (*models.Book, error) {
			return &models.Book{ID: id, TotalCopies: 5, AvailableCopies: 0}, nil
		},
		UpdateFn: func(ctx context.Context, book *models.Book) error { return nil },
	}
	loans := &mockLoanRepo{
		CountOpenByBookFn: func(ctx context.Context, bookID uint) (int64, error) {
			return 5, nil
		},
	}

	svc := NewBookService(&fakeTxRunner{}, books, loans)

	// Shrinking total below the open-loan count must not go negative.
	input := validBookInput()
	input.TotalCopies = 2
	book, err := svc.Update(context.Background(), 1, input)
	require.NoError(t, err)
	require.Equal(t, 0, book.AvailableCopies)
}

func TestUpdateBookNotFound(t *testing.T) {
	books := &mockBookRepo{
		GetByIDFn: func(ctx context.Context, id uint) (*models.Book, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}

	svc := NewBookService(&fakeTxRunner{}, books, &mockLoanRepo{})
	_, err := svc.Update(context.Background(), 99, validBookInput())
	require.ErrorIs(t, err, domain.ErrBookNotFound)
}

func TestDeleteBookRejectedWhileBorrowed(t *testing.T) {
	deleted := false
	books := &mockBookRepo{
		GetByIDFn: func(ctx context.Context, id uint) (*models.Book, error) {
			return &models.Book{ID: id}, nil
		},
		DeleteFn: func(ctx context.Context, id uint) error {
			deleted = true
			return nil
		},
	}
	loans := &mockLoanRepo{
		CountOpenByBookFn: func(ctx context.Context, bookID uint) (int64, error) {
			return 1, nil
		},
	}

	svc := NewBookService(&fakeTxRunner{}, books, loans)
	err := svc.Delete(context.Background(), 1)
	require.ErrorIs(t, err, ErrBookHasOpenLoans)
	require.False(t, deleted)
}

func TestDeleteBookWithoutOpenLoans(t *testing.T) {
	deleted := false
	books := &mockBookRepo{
		GetByIDFn: func(ctx context.Context, id uint) (*models.Book, error) {
			return &models.Book{ID: id}, nil
		},
		DeleteFn: func(ctx context.Context, id uint) error {
			deleted = true
			return nil
		},
	}
	loans := &mockLoanRepo{
		CountOpenByBookFn: func(ctx context.Context, bookID uint) (int64, error) {
			return 0, nil
		},
	}

	svc := NewBookService(&fakeTxRunner{}, books, loans)
	require.NoError(t, svc.Delete(context.Background(), 1))
	require.True(t, deleted)
}

func TestMostBorrowedUsesFixedLimit(t *testing.T) {
	var gotLimit int
	books := &mockBookRepo{
		MostBorrowedFn: func(ctx context.Context, limit int) ([]*models.BookWithBorrowCount, error) {
			gotLimit = limit
			return []*models.BookWithBorrowCount{}, nil
		},
	}

	svc := NewBookService(&fakeTxRunner{}, books, &mockLoanRepo{})
	_, err := svc.MostBorrowed(context.Background())
	require.NoError(t, err)
	require.Equal(t, MostBorrowedLimit, gotLimit)
}
