package entities

import (
	"github.com/google/uuid"
)

type Category struct {
	ID   uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name string    `gorm:"uniqueIndex" json:"name"`

	Ingredients []*Ingredient `gorm:"foreignKey:CategoryID"`
	Timestamp
}

type Ingredient struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	Name        string     `json:"name"`
	Unit        string     `json:"unit"`
	CostPerUnit float64    `json:"cost_per_unit,omitempty"`
	CategoryID  uuid.UUID  `gorm:"index" json:"category_id"`
	BranchID    *uuid.UUID `gorm:"index" json:"branch_id,omitempty"`
	ImageURL    string     `json:"image_url,omitempty"`

	Category *Category `gorm:"foreignKey:CategoryID"`
	Branch   *Branch   `gorm:"foreignKey:BranchID"`
	Timestamp
}
