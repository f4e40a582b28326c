// models/book.go
package models

import "time"

const BookTable = "books"

// Book status values. Status mirrors "an open borrowing exists" and is
// only written inside the borrow/return transaction.
const (
	BookAvailable = "Available"
	BookBorrowed  = "Borrowed"
)

type Book struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Title        string    `gorm:"size:200;not null" json:"title"`
	AuthorID     int       `gorm:"not null" json:"authorId"`
	AuthorName   string    `gorm:"size:100;not null" json:"authorName"`
	Price        float64   `gorm:"type:decimal(18,2);not null" json:"price"`
	Status       string    `gorm:"size:50;not null;default:'Available'" json:"status"`
	LastModified time.Time `gorm:"not null" json:"lastModified"`
}

func (Book) TableName() string { return BookTable }
