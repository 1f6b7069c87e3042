package entities

import (
	"github.com/google/uuid"
	"time"
)

type Request struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	BranchID    uuid.UUID `gorm:"index" json:"branch_id"`
	UserID      uuid.UUID `json:"user_id"`
	RequestedAt time.Time `gorm:"type:timestamp" json:"requested_at"`
	Status      string    `json:"status"` // "pending", "fulfilled"

	Branch *Branch        `gorm:"foreignKey:BranchID"`
	User   *User          `gorm:"foreignKey:UserID"`
	Items  []*RequestItem `gorm:"foreignKey:RequestID"`
	Timestamp
}

type RequestItem struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	RequestID      uuid.UUID `gorm:"index" json:"request_id"`
	IngredientID   uuid.UUID `json:"ingredient_id"`
	Quantity       float64   `json:"quantity"`
	Note           string    `json:"note,omitempty"`
	RecommendedQty float64   `json:"recommended_qty,omitempty"`
	CurrentQty     float64   `json:"current_qty,omitempty"`
	Fulfilled      bool      `json:"fulfilled"`

	Request    *Request    `gorm:"foreignKey:RequestID"`
	Ingredient *Ingredient `gorm:"foreignKey:IngredientID"`
	Timestamp
}
