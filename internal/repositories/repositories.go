package repositories

import (
	"library/internal/models"
)

// Repositories keep state in process memory only and are not safe for
// concurrent use; callers serialize access.

type BookRepository interface {
	Create(book models.Book)
	List() []models.Book
	GetByISBN(isbn string) (*models.Book, bool)
	Delete(isbn string) bool
}

type BorrowRecordRepository interface {
	Create(record models.BorrowRecord)
	List() []models.BorrowRecord
	Filter(keep func(models.BorrowRecord) bool) []models.BorrowRecord
	FindOpen(isbn, borrowerName string) (*models.BorrowRecord, bool)
}

// concrete implementations

type bookRepository struct {
	books []models.Book
}

func NewBookRepository() BookRepository {
	return &bookRepository{}
}

func (r *bookRepository) Create(book models.Book) {
	r.books = append(r.books, book)
}

func (r *bookRepository) List() []models.Book {
	books := make([]models.Book, len(r.books))
	copy(books, r.books)
	return books
}

// GetByISBN returns a handle into the repository; it is only valid until the
// next Create or Delete.
func (r *bookRepository) GetByISBN(isbn string) (*models.Book, bool) {
	for i := range r.books {
		if r.books[i].ISBN == isbn {
			return &r.books[i], true
		}
	}
	return nil, false
}

func (r *bookRepository) Delete(isbn string) bool {
	for i := range r.books {
		if r.books[i].ISBN == isbn {
			r.books = append(r.books[:i], r.books[i+1:]...)
			return true
		}
	}
	return false
}

type borrowRecordRepository struct {
	records []models.BorrowRecord
}

func NewBorrowRecordRepository() BorrowRecordRepository {
	return &borrowRecordRepository{}
}

func (r *borrowRecordRepository) Create(record models.BorrowRecord) {
	r.records = append(r.records, record)
}

func (r *borrowRecordRepository) List() []models.BorrowRecord {
	return r.Filter(func(models.BorrowRecord) bool { return true })
}

func (r *borrowRecordRepository) Filter(keep func(models.BorrowRecord) bool) []models.BorrowRecord {
	records := make([]models.BorrowRecord, 0, len(r.records))
	for _, rec := range r.records {
		if keep(rec) {
			records = append(records, rec.Clone())
		}
	}
	return records
}

// FindOpen scans oldest-first for an unreturned record of isbn held by borrowerName.
func (r *borrowRecordRepository) FindOpen(isbn, borrowerName string) (*models.BorrowRecord, bool) {
	for i := range r.records {
		rec := &r.records[i]
		if rec.ISBN == isbn && rec.BorrowerName == borrowerName && !rec.Returned {
			return rec, true
		}
	}
	return nil, false
}
