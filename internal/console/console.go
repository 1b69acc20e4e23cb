// Package console is a line-oriented terminal front end for the library manager.
package console

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/term"

	"library/internal/models"
	"library/internal/reports"
	"library/internal/services"
)

const (
	minCopies = 1
	maxCopies = 100
)

// IsInteractive reports whether f is attached to a terminal.
func IsInteractive(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

type Console struct {
	sc      *bufio.Scanner
	out     io.Writer
	mgr     services.LibraryManager
	prompts bool
}

// New builds a console reading commands from in. Prompts are written only
// when prompts is true so piped input produces clean output.
func New(in io.Reader, out io.Writer, mgr services.LibraryManager, prompts bool) *Console {
	return &Console{
		sc:      bufio.NewScanner(in),
		out:     out,
		mgr:     mgr,
		prompts: prompts,
	}
}

// Run processes commands until "exit" or end of input.
func (c *Console) Run() {
	c.println("Welcome to the Library Management System!")
	c.printHelp()

	for {
		c.prompt("\n> ")
		if !c.sc.Scan() {
			return
		}
		cmd := strings.ToLower(strings.TrimSpace(c.sc.Text()))

		switch cmd {
		case "":
			continue
		case "list books":
			c.handleListBooks()
		case "search", "search book":
			c.handleSearch()
		case "add book":
			c.handleAddBook()
		case "edit book":
			c.handleEditBook()
		case "delete book":
			c.handleDeleteBook()
		case "borrow":
			c.handleBorrow()
		case "return":
			c.handleReturn()
		case "records":
			c.printRecords(c.mgr.GetAllBorrowRecords())
		case "active":
			c.printRecords(c.mgr.GetActiveBorrowRecords())
		case "overdue":
			c.printRecords(c.mgr.GetOverdueRecords())
		case "inventory report":
			c.print(reports.InventoryOf(c.mgr))
		case "borrowing report":
			c.print(reports.BorrowingOf(c.mgr))
		case "help":
			c.printHelp()
		case "exit", "quit":
			c.println("Goodbye!")
			return
		default:
			c.println("Unknown command. Type 'help' to see the available commands.")
		}
	}
}

func (c *Console) printHelp() {
	c.println("Available commands:")
	c.println("  Books: list books, search, add book, edit book, delete book")
	c.println("  Lending: borrow, return")
	c.println("  Records: records, active, overdue")
	c.println("  Reports: inventory report, borrowing report")
	c.println("  System: help, exit")
}

// ─── Input helpers ────────────────────────────────────────────────────────────

func (c *Console) print(s string)                 { fmt.Fprint(c.out, s) }
func (c *Console) println(s string)               { fmt.Fprintln(c.out, s) }
func (c *Console) printf(format string, a ...any) { fmt.Fprintf(c.out, format, a...) }

func (c *Console) prompt(s string) {
	if c.prompts {
		fmt.Fprint(c.out, s)
	}
}

// ask prompts for one line; ok is false at end of input.
func (c *Console) ask(label string) (string, bool) {
	c.prompt(label)
	if !c.sc.Scan() {
		return "", false
	}
	return strings.TrimSpace(c.sc.Text()), true
}

// askAll reads each label in turn and refuses blank answers.
func (c *Console) askAll(labels ...string) ([]string, bool) {
	values := make([]string, 0, len(labels))
	for _, l := range labels {
		v, ok := c.ask(l)
		if !ok {
			return nil, false
		}
		values = append(values, v)
	}
	for _, v := range values {
		if v == "" {
			c.println("Please fill all fields.")
			return nil, false
		}
	}
	return values, true
}

func (c *Console) askCopies(label string) (int, bool) {
	v, ok := c.ask(label)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < minCopies || n > maxCopies {
		c.printf("Total copies must be a number between %d and %d.\n", minCopies, maxCopies)
		return 0, false
	}
	return n, true
}

// ─── Catalog ──────────────────────────────────────────────────────────────────

func (c *Console) handleListBooks() {
	c.printBooks(c.mgr.GetAllBooks())
}

func (c *Console) handleSearch() {
	q, ok := c.ask("Query: ")
	if !ok {
		return
	}
	if q == "" {
		c.printBooks(c.mgr.GetAllBooks())
		return
	}
	books := c.mgr.SearchBooks(q)
	if len(books) == 0 {
		c.printf("No books found matching '%s'.\n", q)
		return
	}
	c.printf("Found %d book(s) matching '%s':\n", len(books), q)
	c.printBooks(books)
}

func (c *Console) handleAddBook() {
	fields, ok := c.askAll("ISBN: ", "Title: ", "Author: ", "Category: ")
	if !ok {
		return
	}
	copies, ok := c.askCopies("Total copies: ")
	if !ok {
		return
	}

	book := models.NewBook(fields[0], fields[1], fields[2], fields[3], copies, c.mgr.Today())
	if !c.mgr.AddBook(book) {
		c.println("Book with this ISBN already exists.")
		return
	}
	c.println("Book added successfully!")
}

func (c *Console) handleEditBook() {
	isbn, ok := c.ask("ISBN: ")
	if !ok {
		return
	}
	book, found := c.mgr.FindBookByIsbn(isbn)
	if !found {
		c.println("Book not found.")
		return
	}
	c.printf("Editing '%s' by %s [%s], %d copies.\n", book.Title, book.Author, book.Category, book.TotalCopies)

	fields, ok := c.askAll("Title: ", "Author: ", "Category: ")
	if !ok {
		return
	}
	copies, ok := c.askCopies("Total copies: ")
	if !ok {
		return
	}

	if !c.mgr.EditBook(isbn, fields[0], fields[1], fields[2], copies) {
		c.println("Book not found.")
		return
	}
	c.println("Book updated successfully!")
}

func (c *Console) handleDeleteBook() {
	isbn, ok := c.ask("ISBN: ")
	if !ok {
		return
	}
	book, found := c.mgr.FindBookByIsbn(isbn)
	if !found {
		c.println("Book not found.")
		return
	}
	c.printf("Are you sure you want to delete '%s'? (y/n): ", book.Title)
	answer, ok := c.ask("")
	if !ok || (!strings.EqualFold(answer, "y") && !strings.EqualFold(answer, "yes")) {
		c.println("Delete cancelled.")
		return
	}
	if c.mgr.RemoveBook(isbn) {
		c.println("Book deleted successfully!")
	}
}

// ─── Lending ──────────────────────────────────────────────────────────────────

func (c *Console) handleBorrow() {
	fields, ok := c.askAll("ISBN: ", "Borrower name: ", "Borrower email: ")
	if !ok {
		return
	}
	record, borrowed := c.mgr.Borrow(fields[0], fields[1], fields[2])
	if !borrowed {
		c.println("Book not available or not found.")
		return
	}
	c.printf("Book borrowed successfully! Due on %s.\n", record.DueDate.Format(models.DateLayout))
}

func (c *Console) handleReturn() {
	fields, ok := c.askAll("ISBN: ", "Borrower name: ")
	if !ok {
		return
	}
	if !c.mgr.ReturnBook(fields[0], fields[1]) {
		c.println("No matching borrow record found.")
		return
	}
	c.println("Book returned successfully!")
}

// ─── Tables ───────────────────────────────────────────────────────────────────

func (c *Console) printBooks(books []models.Book) {
	if len(books) == 0 {
		c.println("No books in library.")
		return
	}
	c.printf("%-16s %-30s %-20s %-12s %-6s %-9s %s\n", "ISBN", "Title", "Author", "Category", "Total", "Available", "Added")
	c.println(strings.Repeat("-", 110))
	for _, b := range books {
		c.printf("%-16s %-30s %-20s %-12s %-6d %-9d %s\n",
			b.ISBN,
			truncateString(b.Title, 30),
			truncateString(b.Author, 20),
			truncateString(b.Category, 12),
			b.TotalCopies,
			b.AvailableCopies,
			b.DateAdded.Format(models.DateLayout))
	}
}

func (c *Console) printRecords(records []models.BorrowRecord) {
	if len(records) == 0 {
		c.println("No borrow records.")
		return
	}
	today := c.mgr.Today()
	c.printf("%-16s %-25s %-15s %-22s %-10s %-10s %-10s %s\n", "ISBN", "Title", "Borrower", "Email", "Borrowed", "Due", "Returned", "Status")
	c.println(strings.Repeat("-", 125))
	for _, r := range records {
		c.printf("%-16s %-25s %-15s %-22s %-10s %-10s %-10s %s\n",
			r.ISBN,
			truncateString(r.Title, 25),
			truncateString(r.BorrowerName, 15),
			truncateString(r.BorrowerEmail, 22),
			r.BorrowDate.Format(models.DateLayout),
			r.DueDate.Format(models.DateLayout),
			formatDate(r.ReturnDate),
			statusLabel(r.Status(today)))
	}
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(models.DateLayout)
}

func statusLabel(s models.RecordStatus) string {
	switch s {
	case models.RecordStatusReturned:
		return "Returned"
	case models.RecordStatusOverdue:
		return "Overdue"
	default:
		return "Active"
	}
}

// truncateString shortens s to maxLen characters, counted in runes.
func truncateString(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}
