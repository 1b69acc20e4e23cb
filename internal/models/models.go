package models

import (
	"time"

	"github.com/google/uuid"
)

// LoanPeriodDays is the number of days between a borrow and its due date.
const LoanPeriodDays = 14

// DateLayout is the calendar-date format used wherever a date is displayed.
const DateLayout = "2006-01-02"

type RecordStatus string

const (
	RecordStatusActive   RecordStatus = "ACTIVE"
	RecordStatusOverdue  RecordStatus = "OVERDUE"
	RecordStatusReturned RecordStatus = "RETURNED"
)

// DateOf truncates t to midnight of its calendar day, keeping t's location.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

type Book struct {
	ISBN            string    `json:"isbn"`
	Title           string    `json:"title"`
	Author          string    `json:"author"`
	Category        string    `json:"category"`
	TotalCopies     int       `json:"total_copies"`
	AvailableCopies int       `json:"available_copies"`
	DateAdded       time.Time `json:"date_added"`
}

// NewBook creates a book with every copy on the shelf.
func NewBook(isbn, title, author, category string, totalCopies int, now time.Time) Book {
	return Book{
		ISBN:            isbn,
		Title:           title,
		Author:          author,
		Category:        category,
		TotalCopies:     totalCopies,
		AvailableCopies: totalCopies,
		DateAdded:       DateOf(now),
	}
}

// SetTotalCopies changes the copy count, keeping AvailableCopies within
// [0, total]. A negative total is treated as zero.
func (b *Book) SetTotalCopies(total int) {
	b.TotalCopies = max(total, 0)
	b.AvailableCopies = min(max(b.AvailableCopies, 0), b.TotalCopies)
}

// Borrow takes one copy off the shelf. It reports false when none is left.
func (b *Book) Borrow() bool {
	if b.AvailableCopies > 0 {
		b.AvailableCopies--
		return true
	}
	return false
}

// Return puts one copy back, never above TotalCopies.
func (b *Book) Return() {
	if b.AvailableCopies < b.TotalCopies {
		b.AvailableCopies++
	}
}

func (b Book) IsAvailable() bool {
	return b.AvailableCopies > 0
}

// SeedBook is a catalog entry loaded at startup.
type SeedBook struct {
	ISBN     string `yaml:"isbn" json:"isbn"`
	Title    string `yaml:"title" json:"title"`
	Author   string `yaml:"author" json:"author"`
	Category string `yaml:"category" json:"category"`
	Copies   int    `yaml:"copies" json:"copies"`
}

type BorrowRecord struct {
	ID            uuid.UUID  `json:"id"`
	ISBN          string     `json:"isbn"`
	Title         string     `json:"title"`
	BorrowerName  string     `json:"borrower_name"`
	BorrowerEmail string     `json:"borrower_email"`
	BorrowDate    time.Time  `json:"borrow_date"`
	DueDate       time.Time  `json:"due_date"`
	ReturnDate    *time.Time `json:"return_date"`
	Returned      bool       `json:"returned"`
}

// NewBorrowRecord opens a loan dated today and due LoanPeriodDays later.
// The title is copied so later catalog edits do not rewrite history.
func NewBorrowRecord(isbn, title, borrowerName, borrowerEmail string, now time.Time) BorrowRecord {
	borrowed := DateOf(now)
	return BorrowRecord{
		ID:            uuid.New(),
		ISBN:          isbn,
		Title:         title,
		BorrowerName:  borrowerName,
		BorrowerEmail: borrowerEmail,
		BorrowDate:    borrowed,
		DueDate:       borrowed.AddDate(0, 0, LoanPeriodDays),
	}
}

// MarkReturned closes the loan. ReturnDate is set together with Returned.
func (r *BorrowRecord) MarkReturned(now time.Time) {
	returned := DateOf(now)
	r.Returned = true
	r.ReturnDate = &returned
}

// IsOverdue reports whether the loan is still open and today is past the due date.
func (r BorrowRecord) IsOverdue(now time.Time) bool {
	return !r.Returned && DateOf(now).After(r.DueDate)
}

func (r BorrowRecord) Status(now time.Time) RecordStatus {
	switch {
	case r.Returned:
		return RecordStatusReturned
	case r.IsOverdue(now):
		return RecordStatusOverdue
	default:
		return RecordStatusActive
	}
}

// Clone returns a copy that shares no memory with r.
func (r BorrowRecord) Clone() BorrowRecord {
	if r.ReturnDate != nil {
		d := *r.ReturnDate
		r.ReturnDate = &d
	}
	return r
}
