package entities

import (
	"github.com/google/uuid"
	"time"
)

type Branch struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name    string    `gorm:"uniqueIndex" json:"name"`
	Address string    `json:"address,omitempty"`
	Phone   string    `json:"phone,omitempty"`

	Staff []*StaffMember `gorm:"foreignKey:BranchID"`
	Timestamp
}

type StaffMember struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	BranchID  uuid.UUID `gorm:"index" json:"branch_id"`
	StaffName string    `json:"staff_name"`
	CreatedAt time.Time `gorm:"type:timestamp" json:"created_at"`

	Branch *Branch `gorm:"foreignKey:BranchID"`
}
