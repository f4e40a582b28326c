// models/borrowing.go
package models

import "time"

const BorrowingTable = "borrowings"

const (
	BorrowingOpen     = "Borrowed"
	BorrowingReturned = "Returned"
)

// Borrowing is one ledger entry. Created by a borrow, closed exactly once
// by a return, never deleted. ReturnDate stays nil while the loan is open.
type Borrowing struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	BookID     uint       `gorm:"index;not null" json:"bookId"`
	BorrowDate time.Time  `gorm:"index;not null" json:"borrowDate"`
	ReturnDate *time.Time `json:"returnDate,omitempty"`
	Status     string     `gorm:"size:50;not null;default:'Borrowed'" json:"status"`
}

func (Borrowing) TableName() string { return BorrowingTable }
