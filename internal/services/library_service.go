package services

import (
	"log"
	"strings"
	"sync"
	"time"

	"golang.org/x/text/cases"

	"library/internal/models"
	"library/internal/repositories"
)

// ─── Clock ────────────────────────────────────────────────────────────────────

// Clock supplies the current time; dates derived from it are calendar dates
// in the returned time's location.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now()
}

// ─── Manager Interface ────────────────────────────────────────────────────────

// LibraryManager owns the catalog and the lending ledger. Every method runs
// under a single lock and returns copies, never live references.
//
// Failures are reported as false / absent results: duplicate isbn, unknown
// isbn, no available copy, no open record to return.
type LibraryManager interface {
	AddBook(book models.Book) bool
	EditBook(isbn, title, author, category string, totalCopies int) bool
	RemoveBook(isbn string) bool
	FindBookByIsbn(isbn string) (models.Book, bool)
	SearchBooks(query string) []models.Book

	BorrowBook(isbn, borrowerName, borrowerEmail string) bool
	Borrow(isbn, borrowerName, borrowerEmail string) (models.BorrowRecord, bool)
	ReturnBook(isbn, borrowerName string) bool
	Return(isbn, borrowerName string) (models.BorrowRecord, bool)

	GetAllBooks() []models.Book
	GetAllBorrowRecords() []models.BorrowRecord
	GetActiveBorrowRecords() []models.BorrowRecord
	GetOverdueRecords() []models.BorrowRecord

	// Today is the manager's current calendar date, for deriving record status.
	Today() time.Time
}

// ─── Implementation ───────────────────────────────────────────────────────────

type libraryManager struct {
	mu         sync.Mutex
	clock      Clock
	bookRepo   repositories.BookRepository
	recordRepo repositories.BorrowRecordRepository
}

type Option func(*libraryManager)

// WithClock replaces the wall clock, mainly for tests.
func WithClock(c Clock) Option {
	return func(m *libraryManager) { m.clock = c }
}

// WithRepositories swaps the default in-memory repositories.
func WithRepositories(books repositories.BookRepository, records repositories.BorrowRecordRepository) Option {
	return func(m *libraryManager) {
		m.bookRepo = books
		m.recordRepo = records
	}
}

// NewLibraryManager builds a manager whose catalog starts with seed, in order.
// Seed entries repeating an isbn are skipped.
func NewLibraryManager(seed []models.SeedBook, opts ...Option) LibraryManager {
	m := &libraryManager{
		clock:      realClock{},
		bookRepo:   repositories.NewBookRepository(),
		recordRepo: repositories.NewBorrowRecordRepository(),
	}
	for _, opt := range opts {
		opt(m)
	}

	now := m.clock.Now()
	for _, s := range seed {
		book := models.NewBook(s.ISBN, s.Title, s.Author, s.Category, s.Copies, now)
		if !m.addBook(book) {
			log.Printf("[WARN] NewLibraryManager: duplicate seed isbn %s skipped", s.ISBN)
		}
	}
	log.Printf("[INFO] NewLibraryManager: catalog seeded with %d books", len(m.bookRepo.List()))
	return m
}

func (m *libraryManager) Today() time.Time {
	return models.DateOf(m.clock.Now())
}

// ─── Catalog ──────────────────────────────────────────────────────────────────

// AddBook appends book unless its isbn is already catalogued.
func (m *libraryManager) AddBook(book models.Book) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if book.DateAdded.IsZero() {
		book.DateAdded = models.DateOf(m.clock.Now())
	}
	book.SetTotalCopies(book.TotalCopies)

	if !m.addBook(book) {
		log.Printf("[WARN] AddBook: isbn %s already exists", book.ISBN)
		return false
	}
	log.Printf("[INFO] AddBook: added %q (isbn=%s) with %d copies", book.Title, book.ISBN, book.TotalCopies)
	return true
}

func (m *libraryManager) addBook(book models.Book) bool {
	if _, exists := m.bookRepo.GetByISBN(book.ISBN); exists {
		return false
	}
	m.bookRepo.Create(book)
	return true
}

// EditBook updates the descriptive fields and copy count of a book. Lowering
// the copy count clamps the available copies.
func (m *libraryManager) EditBook(isbn, title, author, category string, totalCopies int) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	book, ok := m.bookRepo.GetByISBN(isbn)
	if !ok {
		log.Printf("[WARN] EditBook: isbn %s not found", isbn)
		return false
	}
	book.Title = title
	book.Author = author
	book.Category = category
	book.SetTotalCopies(totalCopies)
	log.Printf("[INFO] EditBook: updated isbn %s (total=%d, available=%d)", isbn, book.TotalCopies, book.AvailableCopies)
	return true
}

// RemoveBook deletes the book unconditionally; open loans stay in the ledger.
func (m *libraryManager) RemoveBook(isbn string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.bookRepo.Delete(isbn) {
		log.Printf("[WARN] RemoveBook: isbn %s not found", isbn)
		return false
	}
	log.Printf("[INFO] RemoveBook: removed isbn %s", isbn)
	return true
}

func (m *libraryManager) FindBookByIsbn(isbn string) (models.Book, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	book, ok := m.bookRepo.GetByISBN(isbn)
	if !ok {
		return models.Book{}, false
	}
	return *book, true
}

// SearchBooks matches query case-insensitively as a substring of the title,
// author, isbn or category. An empty query matches every book.
func (m *libraryManager) SearchBooks(query string) []models.Book {
	m.mu.Lock()
	defer m.mu.Unlock()

	fold := cases.Fold()
	needle := fold.String(query)

	results := make([]models.Book, 0)
	for _, book := range m.bookRepo.List() {
		if strings.Contains(fold.String(book.Title), needle) ||
			strings.Contains(fold.String(book.Author), needle) ||
			strings.Contains(fold.String(book.ISBN), needle) ||
			strings.Contains(fold.String(book.Category), needle) {
			results = append(results, book)
		}
	}
	return results
}

// ─── Lending ──────────────────────────────────────────────────────────────────

func (m *libraryManager) BorrowBook(isbn, borrowerName, borrowerEmail string) bool {
	_, ok := m.Borrow(isbn, borrowerName, borrowerEmail)
	return ok
}

// Borrow reserves one copy and opens a loan due LoanPeriodDays from today.
// Either both happen or neither does.
func (m *libraryManager) Borrow(isbn, borrowerName, borrowerEmail string) (models.BorrowRecord, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	book, ok := m.bookRepo.GetByISBN(isbn)
	if !ok {
		log.Printf("[WARN] BorrowBook: isbn %s not found", isbn)
		return models.BorrowRecord{}, false
	}
	if !book.Borrow() {
		log.Printf("[WARN] BorrowBook: no copies of isbn %s available for %s", isbn, borrowerName)
		return models.BorrowRecord{}, false
	}

	record := models.NewBorrowRecord(isbn, book.Title, borrowerName, borrowerEmail, m.clock.Now())
	m.recordRepo.Create(record)
	log.Printf("[INFO] BorrowBook: record %s opened for %s / isbn %s, due %s",
		record.ID, borrowerName, isbn, record.DueDate.Format(models.DateLayout))
	return record.Clone(), true
}

func (m *libraryManager) ReturnBook(isbn, borrowerName string) bool {
	_, ok := m.Return(isbn, borrowerName)
	return ok
}

// Return closes the oldest open loan of isbn held by borrowerName and puts the
// copy back on the shelf if the book is still catalogued.
func (m *libraryManager) Return(isbn, borrowerName string) (models.BorrowRecord, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	record, ok := m.recordRepo.FindOpen(isbn, borrowerName)
	if !ok {
		log.Printf("[WARN] ReturnBook: no open record for %s / isbn %s", borrowerName, isbn)
		return models.BorrowRecord{}, false
	}
	record.MarkReturned(m.clock.Now())

	if book, ok := m.bookRepo.GetByISBN(isbn); ok {
		book.Return()
	} else {
		log.Printf("[WARN] ReturnBook: isbn %s no longer catalogued, copy count untouched", isbn)
	}
	log.Printf("[INFO] ReturnBook: record %s returned by %s on %s",
		record.ID, borrowerName, record.ReturnDate.Format(models.DateLayout))
	return record.Clone(), true
}

// ─── Queries ──────────────────────────────────────────────────────────────────

func (m *libraryManager) GetAllBooks() []models.Book {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.bookRepo.List()
}

func (m *libraryManager) GetAllBorrowRecords() []models.BorrowRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.recordRepo.List()
}

// GetActiveBorrowRecords returns every open record, overdue ones included.
func (m *libraryManager) GetActiveBorrowRecords() []models.BorrowRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.recordRepo.Filter(func(r models.BorrowRecord) bool { return !r.Returned })
}

// GetOverdueRecords is evaluated against the clock on every call.
func (m *libraryManager) GetOverdueRecords() []models.BorrowRecord {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.clock.Now()
	return m.recordRepo.Filter(func(r models.BorrowRecord) bool { return r.IsOverdue(now) })
}
