package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessCreateBranch = "branch created successfully"
	MessageSuccessGetBranches  = "branches retrieved successfully"
	MessageSuccessUpdateBranch = "branch updated successfully"
	MessageSuccessDeleteBranch = "branch deleted successfully"
	MessageSuccessCreateStaff  = "staff member created successfully"
	MessageSuccessGetStaff     = "staff members retrieved successfully"
	MessageSuccessDeleteStaff  = "staff member deleted successfully"

	MessageFailedCreateBranch = "failed to create branch"
	MessageFailedGetBranches  = "failed to retrieve branches"
	MessageFailedUpdateBranch = "failed to update branch"
	MessageFailedDeleteBranch = "failed to delete branch"
	MessageFailedCreateStaff  = "failed to create staff member"
	MessageFailedGetStaff     = "failed to retrieve staff members"
	MessageFailedDeleteStaff  = "failed to delete staff member"

	ErrBranchNotFound   = errors.New("branch not found")
	ErrBranchNotVisible = errors.New("branch not visible to user")
	ErrBranchNotEmpty   = errors.New("branch still has stock, staff, or requests")
	ErrStaffNotFound    = errors.New("staff member not found")
)

type (
	CreateBranchRequest struct {
		Name    string `json:"name" validate:"required"`
		Address string `json:"address"`
		Phone   string `json:"phone"`
	}

	UpdateBranchRequest struct {
		Name    string `json:"name" validate:"omitempty"`
		Address string `json:"address" validate:"omitempty"`
		Phone   string `json:"phone" validate:"omitempty"`
	}

	BranchResponse struct {
		ID      string `json:"id"`
		Name    string `json:"name"`
		Address string `json:"address,omitempty"`
		Phone   string `json:"phone,omitempty"`
	}

	CreateStaffRequest struct {
		BranchID  string `json:"branch_id" validate:"required,uuid"`
		StaffName string `json:"staff_name" validate:"required"`
	}

	StaffResponse struct {
		ID        string    `json:"id"`
		BranchID  string    `json:"branch_id"`
		StaffName string    `json:"staff_name"`
		CreatedAt time.Time `json:"created_at"`
	}
)
