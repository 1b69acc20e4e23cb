//go:build ignore
// +build ignore

// Package main is a manual concurrency stress test for the borrow endpoint.
//
// Usage:
//
//	go run ./scripts/concurrency_test.go <isbn> [borrowers]
//
// Or with environment variables:
//
//	ISBN=978-1617294945  BORROWERS=40  go run ./scripts/concurrency_test.go
//
// What it does:
//  1. Reads the book's available copies.
//  2. Fires one goroutine per borrower, all borrowing the same isbn at once.
//  3. Checks that successful borrows never exceed the copies that were on the shelf.
//
// The server must be running (library serve).

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"sync"
	"time"
)

const (
	defaultServerAddr = "http://localhost:8080"
	defaultISBN       = "978-1617294945"
	defaultBorrowers  = 20
)

type borrowResult struct {
	Borrower   string
	StatusCode int
	Err        error
}

var client = &http.Client{Timeout: 10 * time.Second}

func main() {
	serverAddr := os.Getenv("SERVER_URL")
	if serverAddr == "" {
		serverAddr = defaultServerAddr
	}

	isbn := os.Getenv("ISBN")
	if isbn == "" {
		isbn = defaultISBN
	}
	borrowers := defaultBorrowers
	if v := os.Getenv("BORROWERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			log.Fatalf("BORROWERS must be a positive number, got %q", v)
		}
		borrowers = n
	}

	args := os.Args[1:]
	if len(args) >= 1 {
		isbn = args[0]
	}
	if len(args) >= 2 {
		n, err := strconv.Atoi(args[1])
		if err != nil || n < 1 {
			log.Fatalf("borrowers must be a positive number, got %q", args[1])
		}
		borrowers = n
	}

	available, err := availableCopies(serverAddr, isbn)
	if err != nil {
		log.Fatalf("read book %s: %v", isbn, err)
	}

	fmt.Printf("=== Library Concurrency Test ===\n")
	fmt.Printf("Server    : %s\n", serverAddr)
	fmt.Printf("ISBN      : %s\n", isbn)
	fmt.Printf("Available : %d\n", available)
	fmt.Printf("Borrowers : %d\n\n", borrowers)

	results := make([]borrowResult, borrowers)
	var wg sync.WaitGroup
	start := make(chan struct{})

	for i := 0; i < borrowers; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			<-start
			results[idx] = attemptBorrow(serverAddr, isbn, fmt.Sprintf("borrower-%02d", idx))
		}(i)
	}

	fmt.Println("Firing all requests simultaneously...")
	close(start)
	wg.Wait()
	fmt.Println("All requests completed.")

	var borrowed, refused, failures int
	for _, r := range results {
		switch {
		case r.Err != nil:
			failures++
			fmt.Printf("  [ERR ] %-12s err=%v\n", r.Borrower, r.Err)
		case r.StatusCode == http.StatusCreated:
			borrowed++
			fmt.Printf("  [BRRW] %-12s status=%d\n", r.Borrower, r.StatusCode)
		case r.StatusCode == http.StatusConflict:
			refused++
			fmt.Printf("  [FULL] %-12s status=%d\n", r.Borrower, r.StatusCode)
		default:
			failures++
			fmt.Printf("  [FAIL] %-12s status=%d unexpected response\n", r.Borrower, r.StatusCode)
		}
	}

	fmt.Printf("\n--- Summary ---\n")
	fmt.Printf("Borrowed : %d\n", borrowed)
	fmt.Printf("Refused  : %d\n", refused)
	fmt.Printf("Failures : %d\n", failures)
	fmt.Printf("Total    : %d\n\n", borrowers)

	remaining, err := availableCopies(serverAddr, isbn)
	if err != nil {
		log.Fatalf("re-read book %s: %v", isbn, err)
	}

	fmt.Println("--- Invariant Check ---")
	ok := borrowed <= available && remaining == available-borrowed
	fmt.Printf("Borrowed %d of %d available, %d left on the shelf.\n", borrowed, available, remaining)
	if !ok {
		fmt.Println("[FAIL] copy counts do not add up")
		os.Exit(1)
	}
	fmt.Println("[OK] no copy was lent twice")

	if failures > 0 {
		fmt.Printf("\n[WARNING] %d request(s) failed, check server logs for details.\n", failures)
		os.Exit(1)
	}
}

func availableCopies(serverAddr, isbn string) (int, error) {
	resp, err := client.Get(fmt.Sprintf("%s/books/%s", serverAddr, isbn))
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("status %d", resp.StatusCode)
	}

	var book struct {
		AvailableCopies int `json:"available_copies"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&book); err != nil {
		return 0, fmt.Errorf("bad JSON: %w", err)
	}
	return book.AvailableCopies, nil
}

// attemptBorrow sends POST /books/{isbn}/borrow for one borrower.
func attemptBorrow(serverAddr, isbn, borrower string) borrowResult {
	body, err := json.Marshal(map[string]string{
		"borrower_name":  borrower,
		"borrower_email": borrower + "@example.com",
	})
	if err != nil {
		return borrowResult{Borrower: borrower, Err: err}
	}

	resp, err := client.Post(fmt.Sprintf("%s/books/%s/borrow", serverAddr, isbn), "application/json", bytes.NewReader(body))
	if err != nil {
		return borrowResult{Borrower: borrower, Err: err}
	}
	defer resp.Body.Close()

	return borrowResult{Borrower: borrower, StatusCode: resp.StatusCode}
}
