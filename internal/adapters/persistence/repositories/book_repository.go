package repositories

import (
	"context"

	"univ-biblio/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// bookRepository implements BookRepository with GORM
type bookRepository struct {
	db *gorm.DB
}

// NewBookRepository creates a new book repository
func NewBookRepository(db *gorm.DB) BookRepository {
	return &bookRepository{db: db}
}

// WithTx returns a repository bound to the given transaction
func (r *bookRepository) WithTx(tx *gorm.DB) BookRepository {
	return &bookRepository{db: tx}
}

func (r *bookRepository) Create(ctx context.Context, book *models.Book) error {
	return r.db.WithContext(ctx).Create(book).Error
}

func (r *bookRepository) GetByID(ctx context.Context, id uint) (*models.Book, error) {
	var book models.Book
	err := r.db.WithContext(ctx).First(&book, id).Error
	if err != nil {
		return nil, err
	}
	return &book, nil
}

func (r *bookRepository) Update(ctx context.Context, book *models.Book) error {
	return r.db.WithContext(ctx).Save(book).Error
}

func (r *bookRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Book{}, id).Error
}

func (r *bookRepository) List(ctx context.Context, offset, limit int) ([]*models.Book, int64, error) {
	var books []*models.Book
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Book{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Order("title ASC").
		Offset(offset).
		Limit(limit).
		Find(&books).Error

	return books, total, err
}

// MostBorrowed returns the books with the highest all-time loan count
func (r *bookRepository) MostBorrowed(ctx context.Context, limit int) ([]*models.BookWithBorrowCount, error) {
	var rows []*models.BookWithBorrowCount
	err := r.db.WithContext(ctx).
		Model(&models.Book{}).
		Select("books.*, COUNT(loans.id) AS borrow_count").
		Joins("LEFT JOIN loans ON loans.book_id = books.id").
		Group("books.id").
		Order("borrow_count DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

// AdjustAvailable applies a guarded delta to available_copies and reports
// how many rows were touched. The WHERE clause keeps the counter inside
// [0, total_copies] and doubles as the compare-and-swap that serializes
// concurrent borrows: a loser of the race affects zero rows.
func (r *bookRepository) AdjustAvailable(ctx context.Context, id uint, delta int) (int64, error) {
	q := r.db.WithContext(ctx).
		Model(&models.Book{}).
		Where("id = ?", id)

	if delta < 0 {
		q = q.Where("available_copies >= ?", -delta)
	} else {
		q = q.Where("available_copies + ? <= total_copies", delta)
	}

	res := q.UpdateColumn("available_copies", gorm.Expr("available_copies + ?", delta))
	return res.RowsAffected, res.Error
}

func (r *bookRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Book{}).Count(&count).Error
	return count, err
}
