package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessGetStockItems  = "stock items retrieved successfully"
	MessageSuccessRegisterItem   = "stock item registered successfully"
	MessageSuccessSaveStockCheck = "stock check saved successfully"
	MessageSuccessNoChanges      = "no quantity changes to save"
	MessageSuccessGetActivity    = "stock activity retrieved successfully"
	MessageSuccessGetStockStats  = "stock statistics retrieved successfully"

	MessageFailedGetStockItems  = "failed to retrieve stock items"
	MessageFailedRegisterItem   = "failed to register stock item"
	MessageFailedSaveStockCheck = "failed to save stock check"
	MessageFailedGetActivity    = "failed to retrieve stock activity"
	MessageFailedGetStockStats  = "failed to retrieve stock statistics"

	ErrStockItemNotFound = errors.New("stock item not found for ingredient")
	ErrNegativeOnHand    = errors.New("on-hand quantity cannot be negative")
)

type (
	RegisterStockItemRequest struct {
		BranchID     string  `json:"branch_id" validate:"required,uuid"`
		IngredientID string  `json:"ingredient_id" validate:"required,uuid"`
		OnHandQty    float64 `json:"on_hand_qty" validate:"min=0"`
		ReorderPoint float64 `json:"reorder_point" validate:"min=0"`
	}

	StockItemResponse struct {
		ID           string  `json:"id"`
		IngredientID string  `json:"ingredient_id"`
		Name         string  `json:"name"`
		Unit         string  `json:"unit"`
		CategoryID   string  `json:"category_id"`
		CategoryName string  `json:"category_name"`
		OnHandQty    float64 `json:"on_hand_qty"`
		ReorderPoint float64 `json:"reorder_point"`
		LastChange   float64 `json:"last_change"`
		CostPerUnit  float64 `json:"cost_per_unit,omitempty"`
		BranchID     string  `json:"branch_id"`
	}

	StockCheckEdit struct {
		IngredientID string  `json:"ingredient_id" validate:"required,uuid"`
		CountedQty   float64 `json:"counted_qty" validate:"min=0"`
	}

	SaveStockCheckRequest struct {
		BranchID string           `json:"branch_id" validate:"required,uuid"`
		Items    []StockCheckEdit `json:"items" validate:"dive"`
	}

	SaveStockCheckResponse struct {
		StockCheckID string    `json:"stock_check_id,omitempty"`
		CheckedAt    time.Time `json:"checked_at,omitempty"`
		ItemsChanged int       `json:"items_changed"`
	}

	StockActivityResponse struct {
		StockCheckID   string    `json:"stock_check_id"`
		IngredientID   string    `json:"ingredient_id"`
		IngredientName string    `json:"ingredient_name"`
		Unit           string    `json:"unit"`
		OnHandBefore   float64   `json:"on_hand_before"`
		OnHandAfter    float64   `json:"on_hand_after"`
		QtyDiff        float64   `json:"qty_diff"`
		CheckedAt      time.Time `json:"checked_at"`
		CheckedBy      string    `json:"checked_by"`
	}

	StockStatsResponse struct {
		TotalItems      int `json:"total_items"`
		LowStockItems   int `json:"low_stock_items"`
		PendingRequests int `json:"pending_requests"`
	}
)
