package domain

import (
	"errors"
	"time"
)

const (
	RequestStatusPending   = "pending"
	RequestStatusFulfilled = "fulfilled"

	QuickActionRequest     = "request"
	QuickActionStockUpdate = "stock-update"
)

var (
	MessageSuccessCreateRequest  = "replenishment request created successfully"
	MessageSuccessGetRequests    = "requests retrieved successfully"
	MessageSuccessDeleteRequest  = "request deleted successfully"
	MessageSuccessFulfillRequest = "request fulfilled successfully"
	MessageSuccessQuickRequest   = "quick request submitted successfully"
	MessageSuccessQuickUpdate    = "stock updated successfully"

	MessageFailedCreateRequest  = "failed to create request"
	MessageFailedGetRequests    = "failed to retrieve requests"
	MessageFailedDeleteRequest  = "failed to delete request"
	MessageFailedFulfillRequest = "failed to fulfill request"
	MessageFailedQuickRequest   = "failed to submit quick request"

	ErrRequestNotFound    = errors.New("request not found")
	ErrRequestNotPending  = errors.New("request is not pending")
	ErrNoItemsSelected    = errors.New("no items with quantity above zero selected")
	ErrBranchRequired     = errors.New("branch selection is required")
	ErrStaffRequired      = errors.New("staff selection is required")
	ErrUnknownQuickAction = errors.New("unknown quick request action")
)

type (
	RequestItemInput struct {
		IngredientID string  `json:"ingredient_id" validate:"required,uuid"`
		Quantity     float64 `json:"quantity" validate:"min=0"`
		Note         string  `json:"note"`
	}

	CreateRequestRequest struct {
		BranchID string             `json:"branch_id" validate:"required,uuid"`
		Items    []RequestItemInput `json:"items" validate:"required,dive"`
	}

	QuickRequestRequest struct {
		BranchID string             `json:"branch_id" validate:"required,uuid"`
		StaffID  string             `json:"staff_id" validate:"required,uuid"`
		Action   string             `json:"action" validate:"required,oneof=request stock-update"`
		Items    []RequestItemInput `json:"items" validate:"required,dive"`
	}

	QuickRequestResponse struct {
		Action       string `json:"action"`
		RequestID    string `json:"request_id,omitempty"`
		StockCheckID string `json:"stock_check_id,omitempty"`
		ItemCount    int    `json:"item_count"`
	}

	RequestItemResponse struct {
		ID             string  `json:"id"`
		IngredientID   string  `json:"ingredient_id"`
		IngredientName string  `json:"ingredient_name"`
		Unit           string  `json:"unit"`
		Quantity       float64 `json:"quantity"`
		Note           string  `json:"note,omitempty"`
		RecommendedQty float64 `json:"recommended_qty,omitempty"`
		CurrentQty     float64 `json:"current_qty,omitempty"`
		Fulfilled      bool    `json:"fulfilled"`
	}

	RequestResponse struct {
		ID          string                `json:"id"`
		BranchID    string                `json:"branch_id"`
		UserID      string                `json:"user_id"`
		RequestedAt time.Time             `json:"requested_at"`
		Status      string                `json:"status"`
		Items       []RequestItemResponse `json:"items"`
	}
)
