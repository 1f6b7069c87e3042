package entities

import (
	"github.com/google/uuid"
	"time"
)

// StockItem is the branch-scoped inventory row. OnHandQty is mutated in
// place by stock checks; LastChange holds the diff of the most recent
// committed check for the ingredient.
type StockItem struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	BranchID     uuid.UUID `gorm:"index:idx_stock_items_branch_ingredient,unique" json:"branch_id"`
	IngredientID uuid.UUID `gorm:"index:idx_stock_items_branch_ingredient,unique" json:"ingredient_id"`
	OnHandQty    float64   `json:"on_hand_qty"`
	ReorderPoint float64   `json:"reorder_point"`
	LastChange   float64   `json:"last_change"`

	Branch     *Branch     `gorm:"foreignKey:BranchID"`
	Ingredient *Ingredient `gorm:"foreignKey:IngredientID"`
	Timestamp
}

// StockCheck and its items are append-only audit rows, never updated
// after creation.
type StockCheck struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	BranchID  uuid.UUID `gorm:"index" json:"branch_id"`
	UserID    uuid.UUID `json:"user_id"`
	CheckedAt time.Time `gorm:"type:timestamp" json:"checked_at"`

	Branch *Branch           `gorm:"foreignKey:BranchID"`
	User   *User             `gorm:"foreignKey:UserID"`
	Items  []*StockCheckItem `gorm:"foreignKey:StockCheckID"`
}

type StockCheckItem struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	StockCheckID uuid.UUID `gorm:"index" json:"stock_check_id"`
	IngredientID uuid.UUID `json:"ingredient_id"`
	OnHandBefore float64   `json:"on_hand_before"`
	OnHandAfter  float64   `json:"on_hand_after"`
	QtyDiff      float64   `json:"qty_diff"`

	StockCheck *StockCheck `gorm:"foreignKey:StockCheckID"`
	Ingredient *Ingredient `gorm:"foreignKey:IngredientID"`
}
