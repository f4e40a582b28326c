package db

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"librarysystem/models"
)

func TestBorrowReturnLifecycle(t *testing.T) {
	r := testRepo(t)
	ctx := context.Background()

	b := seedBook(t, r, "Dune", "Frank Herbert")
	if b.Status != models.BookAvailable {
		t.Fatalf("new book status %q", b.Status)
	}

	entry, err := r.BorrowBook(ctx, b.ID)
	if err != nil {
		t.Fatalf("borrow: %v", err)
	}
	if entry.Status != models.BorrowingOpen || entry.ReturnDate != nil {
		t.Fatalf("open entry: %+v", entry)
	}

	got, _ := r.FindBookByID(ctx, b.ID)
	if got.Status != models.BookBorrowed {
		t.Fatalf("book status after borrow: %q", got.Status)
	}
	if n, _ := r.CountOpenBorrowings(ctx, b.ID); n != 1 {
		t.Fatalf("open entries after borrow: %d", n)
	}

	closed, err := r.ReturnBook(ctx, b.ID)
	if err != nil {
		t.Fatalf("return: %v", err)
	}
	if closed.ID != entry.ID {
		t.Fatalf("returned entry %d, borrowed %d", closed.ID, entry.ID)
	}
	if closed.Status != models.BorrowingReturned || closed.ReturnDate == nil {
		t.Fatalf("closed entry: %+v", closed)
	}

	got, _ = r.FindBookByID(ctx, b.ID)
	if got.Status != models.BookAvailable {
		t.Fatalf("book status after return: %q", got.Status)
	}
	if n, _ := r.CountOpenBorrowings(ctx, b.ID); n != 0 {
		t.Fatalf("open entries after return: %d", n)
	}

	history, err := r.BookHistory(ctx, b.ID)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 1 || history[0].ID != entry.ID {
		t.Fatalf("history: %+v", history)
	}
}

func TestBorrowPreconditions(t *testing.T) {
	r := testRepo(t)
	ctx := context.Background()

	if _, err := r.BorrowBook(ctx, 999); !errors.Is(err, ErrBookNotFound) {
		t.Fatalf("borrow missing: %v", err)
	}

	b := seedBook(t, r, "Dune", "Frank Herbert")
	if _, err := r.BorrowBook(ctx, b.ID); err != nil {
		t.Fatalf("borrow: %v", err)
	}
	if _, err := r.BorrowBook(ctx, b.ID); !errors.Is(err, ErrNotAvailable) {
		t.Fatalf("borrow borrowed: %v", err)
	}
	// the failed borrow left no ledger entry behind
	if n, _ := r.CountOpenBorrowings(ctx, b.ID); n != 1 {
		t.Fatalf("open entries: %d", n)
	}
	history, _ := r.BookHistory(ctx, b.ID)
	if len(history) != 1 {
		t.Fatalf("ledger grew on failed borrow: %d entries", len(history))
	}
}

func TestReturnPreconditions(t *testing.T) {
	r := testRepo(t)
	ctx := context.Background()

	if _, err := r.ReturnBook(ctx, 999); !errors.Is(err, ErrBookNotFound) {
		t.Fatalf("return missing: %v", err)
	}

	b := seedBook(t, r, "Dune", "Frank Herbert")
	if _, err := r.ReturnBook(ctx, b.ID); !errors.Is(err, ErrNotBorrowed) {
		t.Fatalf("return available: %v", err)
	}
}

func TestReturnLedgerMismatch(t *testing.T) {
	r := testRepo(t)
	ctx := context.Background()

	b := seedBook(t, r, "Dune", "Frank Herbert")

	// Corrupt the denormalized status without a ledger entry.
	if err := r.DB.Model(&models.Book{}).
		Where("id = ?", b.ID).
		Update("status", models.BookBorrowed).Error; err != nil {
		t.Fatalf("corrupt status: %v", err)
	}

	if _, err := r.ReturnBook(ctx, b.ID); !errors.Is(err, ErrLedgerMismatch) {
		t.Fatalf("return with no open entry: %v", err)
	}

	// The whole transition rolled back; nothing silently repaired.
	got, _ := r.FindBookByID(ctx, b.ID)
	if got.Status != models.BookBorrowed {
		t.Fatalf("mismatch was repaired behind our back: %q", got.Status)
	}
}

func TestHistoryAppendsNewestFirst(t *testing.T) {
	r := testRepo(t)
	ctx := context.Background()

	b := seedBook(t, r, "Dune", "Frank Herbert")
	var ids []uint
	for i := 0; i < 3; i++ {
		e, err := r.BorrowBook(ctx, b.ID)
		if err != nil {
			t.Fatalf("borrow %d: %v", i, err)
		}
		ids = append(ids, e.ID)
		if _, err := r.ReturnBook(ctx, b.ID); err != nil {
			t.Fatalf("return %d: %v", i, err)
		}
		time.Sleep(2 * time.Millisecond)
	}

	history, err := r.BookHistory(ctx, b.ID)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 3 {
		t.Fatalf("re-borrow overwrote the ledger: %d entries", len(history))
	}
	for i := 0; i < len(history)-1; i++ {
		if history[i].BorrowDate.Before(history[i+1].BorrowDate) {
			t.Fatalf("history not descending at %d: %v < %v", i, history[i].BorrowDate, history[i+1].BorrowDate)
		}
	}
	// newest first
	if history[0].ID != ids[2] || history[2].ID != ids[0] {
		t.Fatalf("history order: %+v, borrowed %v", history, ids)
	}

	if _, err := r.BookHistory(ctx, 999); !errors.Is(err, ErrBookNotFound) {
		t.Fatalf("history of missing book: %v", err)
	}
}

func TestConcurrentBorrowOneWinner(t *testing.T) {
	r := testRepo(t)
	ctx := context.Background()

	b := seedBook(t, r, "Dune", "Frank Herbert")

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = r.BorrowBook(ctx, b.ID)
		}(i)
	}
	wg.Wait()

	var wins, rejects int
	for _, err := range errs {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, ErrNotAvailable):
			rejects++
		default:
			t.Fatalf("unexpected borrow error: %v", err)
		}
	}
	if wins != 1 || rejects != 1 {
		t.Fatalf("got %d winners and %d rejects, want exactly one of each", wins, rejects)
	}

	if n, _ := r.CountOpenBorrowings(ctx, b.ID); n != 1 {
		t.Fatalf("open entries after race: %d", n)
	}
	got, _ := r.FindBookByID(ctx, b.ID)
	if got.Status != models.BookBorrowed {
		t.Fatalf("book status after race: %q", got.Status)
	}
}
