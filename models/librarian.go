// models/librarian.go
package models

import "time"

const LibrarianTable = "librarians"

// Librarian is a staff login. There is no self-service registration;
// accounts are seeded at bootstrap.
type Librarian struct {
	ID           string `gorm:"primaryKey;type:uuid" json:"id"`
	Email        string `gorm:"uniqueIndex;size:255;not null" json:"email"`
	DisplayName  string `gorm:"size:255;not null" json:"displayName"`
	PasswordHash []byte `gorm:"not null" json:"-"`

	LastLoginAt *time.Time `gorm:"index" json:"lastLoginAt,omitempty"`
	LastSeenAt  *time.Time `gorm:"index" json:"lastSeenAt,omitempty"`
	LoginCount  int64      `gorm:"not null;default:0" json:"loginCount"`
	LastLoginIP string     `gorm:"size:45" json:"-"`
	LastLoginUA string     `gorm:"size:255" json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Librarian) TableName() string { return LibrarianTable }
