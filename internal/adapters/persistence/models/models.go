package models

import (
	"time"

	"gorm.io/gorm"
)

// DefaultCover is used when a book is created without a cover reference
const DefaultCover = "https://cdn-icons-png.flaticon.com/512/29/29302.png"

// ============================================================
// Auth & User Tables
// ============================================================

// User represents users table (students and administrators)
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	FirstName string    `gorm:"size:100;not null" json:"first_name"`
	LastName  string    `gorm:"size:100;not null" json:"last_name"`
	Email     string    `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Password  string    `gorm:"size:255;not null" json:"-"`
	Phone     string    `gorm:"size:20" json:"phone"`
	Role      string    `gorm:"size:20;default:'USER'" json:"role"`
	IsActive  bool      `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// UserResponse DTO
type UserResponse struct {
	ID        uint      `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		FullName:  u.FirstName + " " + u.LastName,
		Email:     u.Email,
		Phone:     u.Phone,
		Role:      u.Role,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}

// RefreshToken represents refresh_tokens table
type RefreshToken struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"index;not null" json:"user_id"`
	TokenHash string     `gorm:"size:255;not null;index" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	RevokedAt *time.Time `gorm:"index" json:"revoked_at"`
	User      User       `gorm:"foreignKey:UserID" json:"-"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

func (rt *RefreshToken) IsRevoked() bool {
	return rt.RevokedAt != nil
}

func (rt *RefreshToken) IsExpired() bool {
	return time.Now().After(rt.ExpiresAt)
}

// ============================================================
// Catalog Tables
// ============================================================

// Book represents books table.
// AvailableCopies is mutated only by the loan service so that it never
// diverges from the number of open loans on the book.
type Book struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Title           string    `gorm:"size:255;not null;index" json:"title"`
	Author          string    `gorm:"size:255;not null" json:"author"`
	Category        string    `gorm:"size:100;not null;index" json:"category"`
	Rating          float64   `gorm:"type:decimal(2,1);not null;default:0" json:"rating"`
	Cover           string    `gorm:"size:500" json:"cover"`
	TotalCopies     int       `gorm:"not null;default:1" json:"total_copies"`
	AvailableCopies int       `gorm:"not null;default:1" json:"available_copies"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Book) TableName() string {
	return "books"
}

// BookWithBorrowCount is the projection returned by the popular-books query
type BookWithBorrowCount struct {
	Book
	BorrowCount int64 `json:"borrow_count"`
}

// ============================================================
// Loan Tables
// ============================================================

// Loan represents loans table. A loan is open while ReturnedAt is nil.
// Loans are never deleted; they are the ledger the availability counter
// is reconciled against.
type Loan struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	UserID     uint       `gorm:"not null;index:idx_loans_user_book" json:"user_id"`
	BookID     uint       `gorm:"not null;index:idx_loans_user_book;index" json:"book_id"`
	BorrowDate time.Time  `gorm:"not null" json:"borrow_date"`
	DueDate    time.Time  `gorm:"not null;index" json:"due_date"`
	ReturnedAt *time.Time `gorm:"index" json:"returned_at"`
	Extended   bool       `gorm:"default:false" json:"extended"`
	CreatedAt  time.Time  `gorm:"autoCreateTime" json:"created_at"`

	// Relations
	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Book *Book `gorm:"foreignKey:BookID" json:"book,omitempty"`
}

func (Loan) TableName() string {
	return "loans"
}

func (l *Loan) IsOpen() bool {
	return l.ReturnedAt == nil
}

// LoanResponse DTO
type LoanResponse struct {
	ID         uint       `json:"id"`
	BookID     uint       `json:"book_id"`
	Title      string     `json:"title,omitempty"`
	Author     string     `json:"author,omitempty"`
	Cover      string     `json:"cover,omitempty"`
	BorrowDate time.Time  `json:"borrow_date"`
	DueDate    time.Time  `json:"due_date"`
	ReturnedAt *time.Time `json:"returned_at"`
	Extended   bool       `json:"extended"`
}

func (l *Loan) ToResponse() *LoanResponse {
	resp := &LoanResponse{
		ID:         l.ID,
		BookID:     l.BookID,
		BorrowDate: l.BorrowDate,
		DueDate:    l.DueDate,
		ReturnedAt: l.ReturnedAt,
		Extended:   l.Extended,
	}

	if l.Book != nil {
		resp.Title = l.Book.Title
		resp.Author = l.Book.Author
		resp.Cover = l.Book.Cover
	}

	return resp
}

// ReturnRecord represents return_records table, the denormalized history
// written when a loan is closed. LoanID links the record to its loan
// directly instead of correlating by (user, book, borrow date).
type ReturnRecord struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	LoanID      uint      `gorm:"not null;uniqueIndex" json:"loan_id"`
	UserID      uint      `gorm:"not null;index" json:"user_id"`
	BookID      uint      `gorm:"not null;index" json:"book_id"`
	BorrowDate  time.Time `gorm:"not null" json:"borrow_date"`
	ReturnDate  time.Time `gorm:"not null" json:"return_date"`
	RatingGiven *int      `json:"rating_given,omitempty"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Relations
	Loan *Loan `gorm:"foreignKey:LoanID" json:"loan,omitempty"`
}

func (ReturnRecord) TableName() string {
	return "return_records"
}

// ============================================================
// Auto Migration
// ============================================================

// AutoMigrate runs auto migration for all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&RefreshToken{},
		&Book{},
		&Loan{},
		&ReturnRecord{},
	)
}
