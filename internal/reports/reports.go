// Package reports renders plain-text summaries from catalog and ledger snapshots.
package reports

import (
	"fmt"
	"strings"

	"library/internal/models"
)

const separator = "----------------------------------------\n"

// Inventory lists every book with its copy counts.
func Inventory(books []models.Book) string {
	var sb strings.Builder
	sb.WriteString("LIBRARY INVENTORY REPORT\n")
	sb.WriteString("========================\n\n")
	fmt.Fprintf(&sb, "Total Books: %d\n\n", len(books))

	for _, b := range books {
		fmt.Fprintf(&sb, "ISBN: %s\n", b.ISBN)
		fmt.Fprintf(&sb, "Title: %s\n", b.Title)
		fmt.Fprintf(&sb, "Author: %s\n", b.Author)
		fmt.Fprintf(&sb, "Category: %s\n", b.Category)
		fmt.Fprintf(&sb, "Total Copies: %d\n", b.TotalCopies)
		fmt.Fprintf(&sb, "Available: %d\n", b.AvailableCopies)
		sb.WriteString(separator)
	}
	return sb.String()
}

// Borrowing summarizes ledger activity and details each overdue loan.
func Borrowing(all, active, overdue []models.BorrowRecord) string {
	var sb strings.Builder
	sb.WriteString("BORROWING ACTIVITY REPORT\n")
	sb.WriteString("=========================\n\n")
	fmt.Fprintf(&sb, "Total Borrowing Records: %d\n", len(all))
	fmt.Fprintf(&sb, "Active Borrows: %d\n", len(active))
	fmt.Fprintf(&sb, "Overdue Books: %d\n\n", len(overdue))

	if len(overdue) == 0 {
		return sb.String()
	}
	sb.WriteString("OVERDUE BOOKS:\n")
	sb.WriteString("==============\n")
	for _, r := range overdue {
		fmt.Fprintf(&sb, "Title: %s\n", r.Title)
		fmt.Fprintf(&sb, "Borrower: %s\n", r.BorrowerName)
		fmt.Fprintf(&sb, "Due Date: %s\n", r.DueDate.Format(models.DateLayout))
		sb.WriteString(separator)
	}
	return sb.String()
}

// Source is the read side of the library manager that reports draw from.
type Source interface {
	GetAllBooks() []models.Book
	GetAllBorrowRecords() []models.BorrowRecord
	GetActiveBorrowRecords() []models.BorrowRecord
	GetOverdueRecords() []models.BorrowRecord
}

func InventoryOf(src Source) string {
	return Inventory(src.GetAllBooks())
}

func BorrowingOf(src Source) string {
	return Borrowing(src.GetAllBorrowRecords(), src.GetActiveBorrowRecords(), src.GetOverdueRecords())
}
