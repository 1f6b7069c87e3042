package handlers

import (
	"kedaistock-backend/domain"
	"kedaistock-backend/internal/api/presenters"
	"kedaistock-backend/pkg/branch"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	BranchHandler interface {
		CreateBranch(c *fiber.Ctx) error
		GetBranches(c *fiber.Ctx) error
		UpdateBranch(c *fiber.Ctx) error
		DeleteBranch(c *fiber.Ctx) error
		CreateStaffMember(c *fiber.Ctx) error
		GetStaffMembers(c *fiber.Ctx) error
		DeleteStaffMember(c *fiber.Ctx) error
	}

	branchHandler struct {
		branchService branch.BranchService
		validator     *validator.Validate
	}
)

func NewBranchHandler(branchService branch.BranchService, validator *validator.Validate) BranchHandler {
	return &branchHandler{
		branchService: branchService,
		validator:     validator,
	}
}

func (h *branchHandler) CreateBranch(c *fiber.Ctx) error {
	req := new(domain.CreateBranchRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateBranch, err)
	}

	res, err := h.branchService.CreateBranch(c.Context(), *req)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateBranch, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateBranch)
}

func (h *branchHandler) GetBranches(c *fiber.Ctx) error {
	res, err := h.branchService.GetBranches(c.Context(), scopeFromCtx(c))
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetBranches, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetBranches)
}

func (h *branchHandler) UpdateBranch(c *fiber.Ctx) error {
	branchID := c.Params("id")
	req := new(domain.UpdateBranchRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateBranch, err)
	}

	res, err := h.branchService.UpdateBranch(c.Context(), branchID, *req)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateBranch, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateBranch)
}

func (h *branchHandler) DeleteBranch(c *fiber.Ctx) error {
	branchID := c.Params("id")

	if err := h.branchService.DeleteBranch(c.Context(), branchID); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedDeleteBranch, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteBranch)
}

func (h *branchHandler) CreateStaffMember(c *fiber.Ctx) error {
	req := new(domain.CreateStaffRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateStaff, err)
	}

	res, err := h.branchService.CreateStaffMember(c.Context(), scopeFromCtx(c), *req)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateStaff, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateStaff)
}

func (h *branchHandler) GetStaffMembers(c *fiber.Ctx) error {
	branchID := c.Query("branch_id")

	res, err := h.branchService.GetStaffMembers(c.Context(), scopeFromCtx(c), branchID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetStaff, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetStaff)
}

func (h *branchHandler) DeleteStaffMember(c *fiber.Ctx) error {
	staffID := c.Params("id")

	if err := h.branchService.DeleteStaffMember(c.Context(), scopeFromCtx(c), staffID); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedDeleteStaff, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteStaff)
}
