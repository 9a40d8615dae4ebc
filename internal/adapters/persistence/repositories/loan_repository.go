package repositories

import (
	"context"
	"time"

	"univ-biblio/internal/adapters/persistence/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// loanRepository implements LoanRepository with GORM
type loanRepository struct {
	db *gorm.DB
}

// NewLoanRepository creates a new loan repository
func NewLoanRepository(db *gorm.DB) LoanRepository {
	return &loanRepository{db: db}
}

// WithTx returns a repository bound to the given transaction
func (r *loanRepository) WithTx(tx *gorm.DB) LoanRepository {
	return &loanRepository{db: tx}
}

func (r *loanRepository) Create(ctx context.Context, loan *models.Loan) error {
	return r.db.WithContext(ctx).Create(loan).Error
}

// FindOpen finds the open loan for (user, book), if any
func (r *loanRepository) FindOpen(ctx context.Context, userID, bookID uint) (*models.Loan, error) {
	var loan models.Loan
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND book_id = ? AND returned_at IS NULL", userID, bookID).
		First(&loan).Error
	if err != nil {
		return nil, err
	}
	return &loan, nil
}

// FindOpenForUpdate is FindOpen with a row lock, for use inside a
// transaction that is about to close the loan or guard against a
// duplicate insert.
func (r *loanRepository) FindOpenForUpdate(ctx context.Context, userID, bookID uint) (*models.Loan, error) {
	var loan models.Loan
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ? AND book_id = ? AND returned_at IS NULL", userID, bookID).
		First(&loan).Error
	if err != nil {
		return nil, err
	}
	return &loan, nil
}

// Close stamps the loan's return timestamp
func (r *loanRepository) Close(ctx context.Context, loanID uint, returnedAt time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.Loan{}).
		Where("id = ?", loanID).
		Update("returned_at", &returnedAt).Error
}

func (r *loanRepository) CreateReturnRecord(ctx context.Context, rec *models.ReturnRecord) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *loanRepository) ListOpenByUser(ctx context.Context, userID uint) ([]*models.Loan, error) {
	var loans []*models.Loan
	err := r.db.WithContext(ctx).
		Preload("Book").
		Where("user_id = ? AND returned_at IS NULL", userID).
		Order("borrow_date DESC").
		Find(&loans).Error
	return loans, err
}

func (r *loanRepository) ListByUser(ctx context.Context, userID uint) ([]*models.Loan, error) {
	var loans []*models.Loan
	err := r.db.WithContext(ctx).
		Preload("Book").
		Where("user_id = ?", userID).
		Order("borrow_date DESC").
		Find(&loans).Error
	return loans, err
}

// ListOverdue returns open loans whose due date has passed
func (r *loanRepository) ListOverdue(ctx context.Context, now time.Time) ([]*models.Loan, error) {
	var loans []*models.Loan
	err := r.db.WithContext(ctx).
		Preload("Book").
		Preload("User").
		Where("returned_at IS NULL AND due_date < ?", now).
		Order("due_date ASC").
		Find(&loans).Error
	return loans, err
}

func (r *loanRepository) CountOpenByBook(ctx context.Context, bookID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Loan{}).
		Where("book_id = ? AND returned_at IS NULL", bookID).
		Count(&count).Error
	return count, err
}

func (r *loanRepository) CountByUser(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Loan{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}

func (r *loanRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Loan{}).Count(&count).Error
	return count, err
}

func (r *loanRepository) CountReturned(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Loan{}).
		Where("returned_at IS NOT NULL").
		Count(&count).Error
	return count, err
}

func (r *loanRepository) CountOverdue(ctx context.Context, now time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Loan{}).
		Where("returned_at IS NULL AND due_date < ?", now).
		Count(&count).Error
	return count, err
}
