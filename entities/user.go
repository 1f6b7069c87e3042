package entities

import (
	"github.com/google/uuid"
)

type User struct {
	ID       uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	Name     string     `json:"name"`
	Email    string     `gorm:"uniqueIndex" json:"email"`
	Password string     `json:"-"`
	Role     string     `json:"role"` // "owner", "staff"
	BranchID *uuid.UUID `json:"branch_id,omitempty"`

	Branch *Branch `gorm:"foreignKey:BranchID"`
	Timestamp
}
