package services

import (
	"context"
	"database/sql"
	"time"

	"univ-biblio/internal/adapters/persistence/models"
	"univ-biblio/internal/adapters/persistence/repositories"

	"gorm.io/gorm"
)

// fakeTxRunner runs the transaction body directly. The repositories under
// test are function-field mocks, so there is no real tx to hand them.
type fakeTxRunner struct{}

func (f *fakeTxRunner) Transaction(fn func(tx *gorm.DB) error, opts ...*sql.TxOptions) error {
	return fn(nil)
}

type mockBookRepo struct {
	CreateFn          func(ctx context.Context, book *models.Book) error
	GetByIDFn         func(ctx context.Context, id uint) (*models.Book, error)
	UpdateFn          func(ctx context.Context, book *models.Book) error
	DeleteFn          func(ctx context.Context, id uint) error
	ListFn            func(ctx context.Context, offset, limit int) ([]*models.Book, int64, error)
	MostBorrowedFn    func(ctx context.Context, limit int) ([]*models.BookWithBorrowCount, error)
	AdjustAvailableFn func(ctx context.Context, id uint, delta int) (int64, error)
	CountFn           func(ctx context.Context) (int64, error)
}

func (m *mockBookRepo) WithTx(tx *gorm.DB) repositories.BookRepository { return m }
func (m *mockBookRepo) Create(ctx context.Context, book *models.Book) error {
	return m.CreateFn(ctx, book)
}
func (m *mockBookRepo) GetByID(ctx context.Context, id uint) (*models.Book, error) {
	return m.GetByIDFn(ctx, id)
}
func (m *mockBookRepo) Update(ctx context.Context, book *models.Book) error {
	return m.UpdateFn(ctx, book)
}
func (m *mockBookRepo) Delete(ctx context.Context, id uint) error {
	return m.DeleteFn(ctx, id)
}
func (m *mockBookRepo) List(ctx context.Context, offset, limit int) ([]*models.Book, int64, error) {
	return m.ListFn(ctx, offset, limit)
}
func (m *mockBookRepo) MostBorrowed(ctx context.Context, limit int) ([]*models.BookWithBorrowCount, error) {
	return m.MostBorrowedFn(ctx, limit)
}
func (m *mockBookRepo) AdjustAvailable(ctx context.Context, id uint, delta int) (int64, error) {
	return m.AdjustAvailableFn(ctx, id, delta)
}
func (m *mockBookRepo) Count(ctx context.Context) (int64, error) {
	return m.CountFn(ctx)
}

type mockLoanRepo struct {
	CreateFn             func(ctx context.Context, loan *models.Loan) error
	FindOpenFn           func(ctx context.Context, userID, bookID uint) (*models.Loan, error)
	FindOpenForUpdateFn  func(ctx context.Context, userID, bookID uint) (*models.Loan, error)
	CloseFn              func(ctx context.Context, loanID uint, returnedAt time.Time) error
	CreateReturnRecordFn func(ctx context.Context, rec *models.ReturnRecord) error
	ListOpenByUserFn     func(ctx context.Context, userID uint) ([]*models.Loan, error)
	ListByUserFn         func(ctx context.Context, userID uint) ([]*models.Loan, error)
	ListOverdueFn        func(ctx context.Context, now time.Time) ([]*models.Loan, error)
	CountOpenByBookFn    func(ctx context.Context, bookID uint) (int64, error)
	CountByUserFn        func(ctx context.Context, userID uint) (int64, error)
	CountFn              func(ctx context.Context) (int64, error)
	CountReturnedFn      func(ctx context.Context) (int64, error)
	CountOverdueFn       func(ctx context.Context, now time.Time) (int64, error)
}

func (m *mockLoanRepo) WithTx(tx *gorm.DB) repositories.LoanRepository { return m }
func (m *mockLoanRepo) Create(ctx context.Context, loan *models.Loan) error {
	return m.CreateFn(ctx, loan)
}
func (m *mockLoanRepo) FindOpen(ctx context.Context, userID, bookID uint) (*models.Loan, error) {
	return m.FindOpenFn(ctx, userID, bookID)
}
func (m *mockLoanRepo) FindOpenForUpdate(ctx context.Context, userID, bookID uint) (*models.Loan, error) {
	return m.FindOpenForUpdateFn(ctx, userID, bookID)
}
func (m *mockLoanRepo) Close(ctx context.Context, loanID uint, returnedAt time.Time) error {
	return m.CloseFn(ctx, loanID, returnedAt)
}
func (m *mockLoanRepo) CreateReturnRecord(ctx context.Context, rec *models.ReturnRecord) error {
	return m.CreateReturnRecordFn(ctx, rec)
}
func (m *mockLoanRepo) ListOpenByUser(ctx context.Context, userID uint) ([]*models.Loan, error) {
	return m.ListOpenByUserFn(ctx, userID)
}
func (m *mockLoanRepo) ListByUser(ctx context.Context, userID uint) ([]*models.Loan, error) {
	return m.ListByUserFn(ctx, userID)
}
func (m *mockLoanRepo) ListOverdue(ctx context.Context, now time.Time) ([]*models.Loan, error) {
	return m.ListOverdueFn(ctx, now)
}
func (m *mockLoanRepo) CountOpenByBook(ctx context.Context, bookID uint) (int64, error) {
	return m.CountOpenByBookFn(ctx, bookID)
}
func (m *mockLoanRepo) CountByUser(ctx context.Context, userID uint) (int64, error) {
	return m.CountByUserFn(ctx, userID)
}
func (m *mockLoanRepo) Count(ctx context.Context) (int64, error) {
	return m.CountFn(ctx)
}
func (m *mockLoanRepo) CountReturned(ctx context.Context) (int64, error) {
	return m.CountReturnedFn(ctx)
}
func (m *mockLoanRepo) CountOverdue(ctx context.Context, now time.Time) (int64, error) {
	return m.CountOverdueFn(ctx, now)
}

type mockUserRepo struct {
	CreateFn        func(ctx context.Context, user *models.User) error
	GetByIDFn       func(ctx context.Context, id uint) (*models.User, error)
	GetByEmailFn    func(ctx context.Context, email string) (*models.User, error)
	UpdateFn        func(ctx context.Context, user *models.User) error
	DeleteFn        func(ctx context.Context, id uint) error
	ListFn          func(ctx context.Context, offset, limit int) ([]*models.User, int64, error)
	ExistsByEmailFn func(ctx context.Context, email string) (bool, error)
	CountFn         func(ctx context.Context) (int64, error)
}

func (m *mockUserRepo) Create(ctx context.Context, user *models.User) error {
	return m.CreateFn(ctx, user)
}
func (m *mockUserRepo) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return m.GetByIDFn(ctx, id)
}
func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return m.GetByEmailFn(ctx, email)
}
func (m *mockUserRepo) Update(ctx context.Context, user *models.User) error {
	return m.UpdateFn(ctx, user)
}
func (m *mockUserRepo) Delete(ctx context.Context, id uint) error {
	return m.DeleteFn(ctx, id)
}
func (m *mockUserRepo) List(ctx context.Context, offset, limit int) ([]*models.User, int64, error) {
	return m.ListFn(ctx, offset, limit)
}
func (m *mockUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return m.ExistsByEmailFn(ctx, email)
}
func (m *mockUserRepo) Count(ctx context.Context) (int64, error) {
	return m.CountFn(ctx)
}

type mockRefreshTokenRepo struct {
	CreateFn            func(ctx context.Context, token *models.RefreshToken) error
	GetByTokenHashFn    func(ctx context.Context, tokenHash string) (*models.RefreshToken, error)
	RevokeFn            func(ctx context.Context, id uint) error
	RevokeByTokenHashFn func(ctx context.Context, tokenHash string) error
	RevokeAllByUserIDFn func(ctx context.Context, userID uint) error
	DeleteExpiredFn     func(ctx context.Context) error
}

func (m *mockRefreshTokenRepo) Create(ctx context.Context, token *models.RefreshToken) error {
	return m.CreateFn(ctx, token)
}
func (m *mockRefreshTokenRepo) GetByTokenHash(ctx context.Context, tokenHash string) (*models.RefreshToken, error) {
	return m.GetByTokenHashFn(ctx, tokenHash)
}
func (m *mockRefreshTokenRepo) Revoke(ctx context.Context, id uint) error {
	return m.RevokeFn(ctx, id)
}
func (m *mockRefreshTokenRepo) RevokeByTokenHash(ctx context.Context, tokenHash string) error {
	return m.RevokeByTokenHashFn(ctx, tokenHash)
}
func (m *mockRefreshTokenRepo) RevokeAllByUserID(ctx context.Context, userID uint) error {
	return m.RevokeAllByUserIDFn(ctx, userID)
}
func (m *mockRefreshTokenRepo) DeleteExpired(ctx context.Context) error {
	return m.DeleteExpiredFn(ctx)
}
