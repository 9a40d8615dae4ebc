package handlers

import (
	"errors"
	"log"
	"time"

	"univ-biblio/internal/core/domain"
	"univ-biblio/internal/core/services"
	"univ-biblio/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// LoanHandler handles borrow/return endpoints
type LoanHandler struct {
	loanService *services.LoanService
}

// NewLoanHandler creates a new loan handler
func NewLoanHandler(loanService *services.LoanService) *LoanHandler {
	return &LoanHandler{loanService: loanService}
}

// BorrowRequest represents borrow request
type BorrowRequest struct {
	BookID  uint   `json:"book_id"`
	DueDate string `json:"due_date,omitempty"`
}

// ReturnRequest represents return request
type ReturnRequest struct {
	BookID uint `json:"book_id"`
	Rating *int `json:"rating,omitempty"`
}

// parseDueDate accepts a plain date or an RFC 3339 timestamp
func parseDueDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Borrow handles borrowing a book
// @Summary Borrow a book
// @Description Create an open loan for the authenticated user and decrement availability
// @Tags Loans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body BorrowRequest true "Borrow data"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 500 {object} response.Response
// @Router /loans/borrow [post]
func (h *LoanHandler) Borrow(c *fiber.Ctx) error {
	var req BorrowRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.BookID == 0 {
		return response.BadRequest(c, "book_id is required")
	}

	due, err := parseDueDate(req.DueDate)
	if err != nil {
		return response.BadRequest(c, "InvalidDueDate")
	}

	userID, _ := c.Locals("userID").(uint)

	if err := h.loanService.Borrow(c.Context(), userID, req.BookID, due); err != nil {
		switch {
		case errors.Is(err, domain.ErrDuplicateLoan):
			return response.BadRequest(c, "DuplicateLoan")
		case errors.Is(err, domain.ErrNoCopyAvailable):
			return response.BadRequest(c, "NoCopyAvailable")
		case errors.Is(err, domain.ErrInvalidDueDate):
			return response.BadRequest(c, "InvalidDueDate")
		case errors.Is(err, domain.ErrBookNotFound):
			return response.NotFound(c, "Book not found")
		default:
			log.Printf("❌ Borrow failed (user=%d book=%d): %v", userID, req.BookID, err)
			return response.InternalServerError(c, "Failed to borrow book")
		}
	}

	return response.Success(c, "Book borrowed successfully", nil)
}

// Return handles returning a book
// @Summary Return a book
// @Description Close the authenticated user's open loan and increment availability
// @Tags Loans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body ReturnRequest true "Return data"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 500 {object} response.Response
// @Router /loans/return [post]
func (h *LoanHandler) Return(c *fiber.Ctx) error {
	var req ReturnRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.BookID == 0 {
		return response.BadRequest(c, "book_id is required")
	}

	userID, _ := c.Locals("userID").(uint)

	if err := h.loanService.Return(c.Context(), userID, req.BookID, req.Rating); err != nil {
		switch {
		case errors.Is(err, domain.ErrNoActiveLoan):
			return response.BadRequest(c, "NoActiveLoan")
		case errors.Is(err, domain.ErrInvalidRating):
			return response.BadRequest(c, "InvalidRating")
		default:
			log.Printf("❌ Return failed (user=%d book=%d): %v", userID, req.BookID, err)
			return response.InternalServerError(c, "Failed to return book")
		}
	}

	return response.Success(c, "Book returned successfully", nil)
}

// MyLoans lists the caller's active loans
// @Summary My active loans
// @Description List the authenticated user's open loans
// @Tags Loans
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /loans/me [get]
func (h *LoanHandler) MyLoans(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(uint)

	loans, err := h.loanService.ActiveLoans(c.Context(), userID)
	if err != nil {
		return response.InternalServerError(c, "Failed to list loans")
	}

	return response.Success(c, "Active loans retrieved", fiber.Map{
		"loans": loans,
	})
}
