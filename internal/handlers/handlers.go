package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"library/internal/models"
	"library/internal/reports"
	"library/internal/services"
)

var (
	ErrMissingFields = errors.New("please fill all fields")
	ErrBookNotFound  = errors.New("book not found")
	ErrDuplicateIsbn = errors.New("book with this isbn already exists")
	ErrNotAvailable  = errors.New("book not available")
	ErrNoOpenRecord  = errors.New("no matching borrow record found")
	ErrUnknownStatus = errors.New("status must be one of all, active, overdue")
)

type LibraryHandler struct {
	svc services.LibraryManager
}

func RegisterRoutes(r *gin.Engine, svc services.LibraryManager) {
	h := &LibraryHandler{svc: svc}

	r.GET("/healthz", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	// Catalog
	r.GET("/books", h.listBooks)
	r.GET("/books/:isbn", h.getBook)
	r.POST("/books", h.createBook)
	r.PUT("/books/:isbn", h.editBook)
	r.DELETE("/books/:isbn", h.deleteBook)

	// Lending
	r.POST("/books/:isbn/borrow", h.borrowBook)
	r.POST("/books/:isbn/return", h.returnBook)
	r.GET("/records", h.listRecords)

	// Reports
	r.GET("/reports/inventory", h.inventoryReport)
	r.GET("/reports/borrowing", h.borrowingReport)
}

// ─── Responses ────────────────────────────────────────────────────────────────

type bookResponse struct {
	ISBN            string `json:"isbn"`
	Title           string `json:"title"`
	Author          string `json:"author"`
	Category        string `json:"category"`
	TotalCopies     int    `json:"total_copies"`
	AvailableCopies int    `json:"available_copies"`
	DateAdded       string `json:"date_added"`
}

func toBookResponse(b models.Book) bookResponse {
	return bookResponse{
		ISBN:            b.ISBN,
		Title:           b.Title,
		Author:          b.Author,
		Category:        b.Category,
		TotalCopies:     b.TotalCopies,
		AvailableCopies: b.AvailableCopies,
		DateAdded:       b.DateAdded.Format(models.DateLayout),
	}
}

func toBookResponses(books []models.Book) []bookResponse {
	out := make([]bookResponse, 0, len(books))
	for _, b := range books {
		out = append(out, toBookResponse(b))
	}
	return out
}

type recordResponse struct {
	ID            uuid.UUID           `json:"id"`
	ISBN          string              `json:"isbn"`
	Title         string              `json:"title"`
	BorrowerName  string              `json:"borrower_name"`
	BorrowerEmail string              `json:"borrower_email"`
	BorrowDate    string              `json:"borrow_date"`
	DueDate       string              `json:"due_date"`
	ReturnDate    string              `json:"return_date,omitempty"`
	Returned      bool                `json:"returned"`
	Status        models.RecordStatus `json:"status"`
}

func toRecordResponse(r models.BorrowRecord, today time.Time) recordResponse {
	resp := recordResponse{
		ID:            r.ID,
		ISBN:          r.ISBN,
		Title:         r.Title,
		BorrowerName:  r.BorrowerName,
		BorrowerEmail: r.BorrowerEmail,
		BorrowDate:    r.BorrowDate.Format(models.DateLayout),
		DueDate:       r.DueDate.Format(models.DateLayout),
		Returned:      r.Returned,
		Status:        r.Status(today),
	}
	if r.ReturnDate != nil {
		resp.ReturnDate = r.ReturnDate.Format(models.DateLayout)
	}
	return resp
}

func errorBody(err error) gin.H {
	return gin.H{"error": err.Error()}
}

// blank reports whether any field is empty once surrounding space is removed.
func blank(fields ...string) bool {
	for _, f := range fields {
		if strings.TrimSpace(f) == "" {
			return true
		}
	}
	return false
}

// ─── Catalog ──────────────────────────────────────────────────────────────────

// listBooks searches when q has content and lists the whole catalog otherwise.
func (h *LibraryHandler) listBooks(c *gin.Context) {
	q := c.Query("q")
	if strings.TrimSpace(q) == "" {
		c.JSON(http.StatusOK, toBookResponses(h.svc.GetAllBooks()))
		return
	}
	c.JSON(http.StatusOK, toBookResponses(h.svc.SearchBooks(q)))
}

func (h *LibraryHandler) getBook(c *gin.Context) {
	book, ok := h.svc.FindBookByIsbn(c.Param("isbn"))
	if !ok {
		c.JSON(http.StatusNotFound, errorBody(ErrBookNotFound))
		return
	}
	c.JSON(http.StatusOK, toBookResponse(book))
}

type createBookRequest struct {
	ISBN        string `json:"isbn" binding:"required"`
	Title       string `json:"title" binding:"required"`
	Author      string `json:"author" binding:"required"`
	Category    string `json:"category" binding:"required"`
	TotalCopies int    `json:"total_copies" binding:"required,min=1,max=100"`
}

func (h *LibraryHandler) createBook(c *gin.Context) {
	var req createBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody(err))
		return
	}
	if blank(req.ISBN, req.Title, req.Author, req.Category) {
		c.JSON(http.StatusBadRequest, errorBody(ErrMissingFields))
		return
	}

	book := models.NewBook(
		strings.TrimSpace(req.ISBN),
		strings.TrimSpace(req.Title),
		strings.TrimSpace(req.Author),
		strings.TrimSpace(req.Category),
		req.TotalCopies,
		h.svc.Today(),
	)
	if !h.svc.AddBook(book) {
		c.JSON(http.StatusConflict, errorBody(ErrDuplicateIsbn))
		return
	}
	c.JSON(http.StatusCreated, toBookResponse(book))
}

type editBookRequest struct {
	Title       string `json:"title" binding:"required"`
	Author      string `json:"author" binding:"required"`
	Category    string `json:"category" binding:"required"`
	TotalCopies int    `json:"total_copies" binding:"required,min=1,max=100"`
}

func (h *LibraryHandler) editBook(c *gin.Context) {
	isbn := c.Param("isbn")

	var req editBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody(err))
		return
	}
	if blank(req.Title, req.Author, req.Category) {
		c.JSON(http.StatusBadRequest, errorBody(ErrMissingFields))
		return
	}

	ok := h.svc.EditBook(isbn,
		strings.TrimSpace(req.Title),
		strings.TrimSpace(req.Author),
		strings.TrimSpace(req.Category),
		req.TotalCopies,
	)
	if !ok {
		c.JSON(http.StatusNotFound, errorBody(ErrBookNotFound))
		return
	}
	h.getBook(c)
}

func (h *LibraryHandler) deleteBook(c *gin.Context) {
	if !h.svc.RemoveBook(c.Param("isbn")) {
		c.JSON(http.StatusNotFound, errorBody(ErrBookNotFound))
		return
	}
	c.Status(http.StatusNoContent)
}

// ─── Lending ──────────────────────────────────────────────────────────────────

type borrowRequest struct {
	BorrowerName  string `json:"borrower_name" binding:"required"`
	BorrowerEmail string `json:"borrower_email" binding:"required"`
}

func (h *LibraryHandler) borrowBook(c *gin.Context) {
	isbn := c.Param("isbn")

	var req borrowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody(err))
		return
	}
	if blank(req.BorrowerName, req.BorrowerEmail) {
		c.JSON(http.StatusBadRequest, errorBody(ErrMissingFields))
		return
	}

	record, ok := h.svc.Borrow(isbn, strings.TrimSpace(req.BorrowerName), strings.TrimSpace(req.BorrowerEmail))
	if !ok {
		// The core only says no; tell a missing book apart from an exhausted one.
		if _, exists := h.svc.FindBookByIsbn(isbn); !exists {
			c.JSON(http.StatusNotFound, errorBody(ErrBookNotFound))
			return
		}
		c.JSON(http.StatusConflict, errorBody(ErrNotAvailable))
		return
	}
	c.JSON(http.StatusCreated, toRecordResponse(record, h.svc.Today()))
}

type returnRequest struct {
	BorrowerName string `json:"borrower_name" binding:"required"`
}

func (h *LibraryHandler) returnBook(c *gin.Context) {
	var req returnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody(err))
		return
	}
	if blank(req.BorrowerName) {
		c.JSON(http.StatusBadRequest, errorBody(ErrMissingFields))
		return
	}

	record, ok := h.svc.Return(c.Param("isbn"), strings.TrimSpace(req.BorrowerName))
	if !ok {
		c.JSON(http.StatusNotFound, errorBody(ErrNoOpenRecord))
		return
	}
	c.JSON(http.StatusOK, toRecordResponse(record, h.svc.Today()))
}

func (h *LibraryHandler) listRecords(c *gin.Context) {
	var records []models.BorrowRecord
	switch c.DefaultQuery("status", "all") {
	case "all":
		records = h.svc.GetAllBorrowRecords()
	case "active":
		records = h.svc.GetActiveBorrowRecords()
	case "overdue":
		records = h.svc.GetOverdueRecords()
	default:
		c.JSON(http.StatusBadRequest, errorBody(ErrUnknownStatus))
		return
	}

	today := h.svc.Today()
	out := make([]recordResponse, 0, len(records))
	for _, r := range records {
		out = append(out, toRecordResponse(r, today))
	}
	c.JSON(http.StatusOK, out)
}

// ─── Reports ──────────────────────────────────────────────────────────────────

func (h *LibraryHandler) inventoryReport(c *gin.Context) {
	c.String(http.StatusOK, reports.InventoryOf(h.svc))
}

func (h *LibraryHandler) borrowingReport(c *gin.Context) {
	c.String(http.StatusOK, reports.BorrowingOf(h.svc))
}
