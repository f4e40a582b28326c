package db

import (
	"context"
	"errors"
	"time"

	"librarysystem/models"

	"gorm.io/gorm"
)

var (
	ErrNotAvailable = errors.New("book is not available")
	ErrNotBorrowed  = errors.New("book is not borrowed")

	// ErrLedgerMismatch means the book row claims Borrowed but no open
	// ledger entry exists. Surfaced to the caller, never repaired here.
	ErrLedgerMismatch = errors.New("book is marked borrowed but has no open borrowing")
)

// casBookStatus flips the book's status from one value to the other, but
// only if the row still carries the expected value. RowsAffected == 0
// means the precondition failed or a concurrent transition won; the loser
// re-reads to tell the two apart, and retries once if the precondition
// holds again after the race.
func casBookStatus(tx *gorm.DB, bookID uint, from, to string, now time.Time) error {
	for attempt := 0; ; attempt++ {
		res := tx.Model(&models.Book{}).
			Where("id = ? AND status = ?", bookID, from).
			Updates(map[string]interface{}{
				"status":        to,
				"last_modified": now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			return nil
		}
		var b models.Book
		if err := tx.First(&b, "id = ?", bookID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookNotFound
			}
			return err
		}
		if b.Status != from || attempt > 0 {
			if from == models.BookAvailable {
				return ErrNotAvailable
			}
			return ErrNotBorrowed
		}
		// Lost a race that a later transition has already undone; one retry.
	}
}

// 借出：原子操作 = 占用 status → 追加台账
func (r *Repo) BorrowBook(ctx context.Context, bookID uint) (*models.Borrowing, error) {
	var entry *models.Borrowing
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now().UTC()
		if err := casBookStatus(tx, bookID, models.BookAvailable, models.BookBorrowed, now); err != nil {
			return err
		}
		e := &models.Borrowing{
			BookID:     bookID,
			BorrowDate: now,
			ReturnDate: nil,
			Status:     models.BorrowingOpen,
		}
		// 唯一部分索引兜底：并发重复打开会在这里失败
		if err := tx.Create(e).Error; err != nil {
			return err
		}
		entry = e
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// 归还：原子操作 = 释放 status → 关闭台账
func (r *Repo) ReturnBook(ctx context.Context, bookID uint) (*models.Borrowing, error) {
	var entry *models.Borrowing
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now().UTC()
		if err := casBookStatus(tx, bookID, models.BookBorrowed, models.BookAvailable, now); err != nil {
			return err
		}

		// Most recent open entry. Ordering makes the pick deterministic
		// even if more than one open entry slipped in through a bug.
		var e models.Borrowing
		if err := tx.
			Where("book_id = ? AND status = ?", bookID, models.BorrowingOpen).
			Order("borrow_date DESC, id DESC").
			First(&e).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// Rolls back the status flip above.
				return ErrLedgerMismatch
			}
			return err
		}

		e.ReturnDate = &now
		e.Status = models.BorrowingReturned
		if err := tx.Save(&e).Error; err != nil {
			return err
		}
		entry = &e
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// BookHistory returns the full ledger for one book, newest first.
func (r *Repo) BookHistory(ctx context.Context, bookID uint) ([]models.Borrowing, error) {
	if _, err := r.FindBookByID(ctx, bookID); err != nil {
		return nil, err
	}
	var entries []models.Borrowing
	if err := r.DB.WithContext(ctx).
		Where("book_id = ?", bookID).
		Order("borrow_date DESC, id DESC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// CountOpenBorrowings reports how many open entries a book has; the
// invariant keeps this at zero or one.
func (r *Repo) CountOpenBorrowings(ctx context.Context, bookID uint) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&models.Borrowing{}).
		Where("book_id = ? AND return_date IS NULL", bookID).
		Count(&n).Error
	return n, err
}
