package repositories

import (
	"context"
	"time"

	"univ-biblio/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// UserRepository defines user repository interface
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, offset, limit int) ([]*models.User, int64, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Count(ctx context.Context) (int64, error)
}

// RefreshTokenRepository defines refresh token repository interface
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *models.RefreshToken) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*models.RefreshToken, error)
	Revoke(ctx context.Context, id uint) error
	RevokeByTokenHash(ctx context.Context, tokenHash string) error
	RevokeAllByUserID(ctx context.Context, userID uint) error
	DeleteExpired(ctx context.Context) error
}

// BookRepository defines catalog repository interface.
// AdjustAvailable is the guarded counter update: the decrement only lands
// when a copy is actually available, the increment only when the counter
// is still below total, and the returned row count tells the caller
// whether it won the race.
type BookRepository interface {
	WithTx(tx *gorm.DB) BookRepository
	Create(ctx context.Context, book *models.Book) error
	GetByID(ctx context.Context, id uint) (*models.Book, error)
	Update(ctx context.Context, book *models.Book) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, offset, limit int) ([]*models.Book, int64, error)
	MostBorrowed(ctx context.Context, limit int) ([]*models.BookWithBorrowCount, error)
	AdjustAvailable(ctx context.Context, id uint, delta int) (int64, error)
	Count(ctx context.Context) (int64, error)
}

// LoanRepository defines loan ledger repository interface
type LoanRepository interface {
	WithTx(tx *gorm.DB) LoanRepository
	Create(ctx context.Context, loan *models.Loan) error
	FindOpen(ctx context.Context, userID, bookID uint) (*models.Loan, error)
	FindOpenForUpdate(ctx context.Context, userID, bookID uint) (*models.Loan, error)
	Close(ctx context.Context, loanID uint, returnedAt time.Time) error
	CreateReturnRecord(ctx context.Context, rec *models.ReturnRecord) error
	ListOpenByUser(ctx context.Context, userID uint) ([]*models.Loan, error)
	ListByUser(ctx context.Context, userID uint) ([]*models.Loan, error)
	ListOverdue(ctx context.Context, now time.Time) ([]*models.Loan, error)
	CountOpenByBook(ctx context.Context, bookID uint) (int64, error)
	CountByUser(ctx context.Context, userID uint) (int64, error)
	Count(ctx context.Context) (int64, error)
	CountReturned(ctx context.Context) (int64, error)
	CountOverdue(ctx context.Context, now time.Time) (int64, error)
}
