// models/member.go
package models

import "time"

const MemberTable = "members"

const (
	MemberActive    = "Active"
	MemberSuspended = "Suspended"
)

// Member has no coupling to the lending ledger; it is plain directory data.
type Member struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Name           string    `gorm:"size:100;not null" json:"name"`
	Email          string    `gorm:"size:150;not null" json:"email"`
	Phone          string    `gorm:"size:20;not null" json:"phone"`
	Address        string    `gorm:"size:250;not null" json:"address"`
	MembershipDate time.Time `gorm:"not null" json:"membershipDate"`
	Status         string    `gorm:"size:20;not null;default:'Active'" json:"status"`
}

func (Member) TableName() string { return MemberTable }
