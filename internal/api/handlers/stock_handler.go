package handlers

import (
	"errors"
	"kedaistock-backend/domain"
	"kedaistock-backend/internal/api/presenters"
	"kedaistock-backend/pkg/stock"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	StockHandler interface {
		GetStockItems(c *fiber.Ctx) error
		RegisterStockItem(c *fiber.Ctx) error
		SaveStockCheck(c *fiber.Ctx) error
		GetActivity(c *fiber.Ctx) error
		GetStats(c *fiber.Ctx) error
	}

	stockHandler struct {
		stockService stock.StockService
		validator    *validator.Validate
	}
)

func NewStockHandler(stockService stock.StockService, validator *validator.Validate) StockHandler {
	return &stockHandler{
		stockService: stockService,
		validator:    validator,
	}
}

func (h *stockHandler) GetStockItems(c *fiber.Ctx) error {
	branchID := c.Query("branch_id")

	res, err := h.stockService.GetStockItems(c.Context(), scopeFromCtx(c), branchID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetStockItems, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetStockItems)
}

func (h *stockHandler) RegisterStockItem(c *fiber.Ctx) error {
	req := new(domain.RegisterStockItemRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedRegisterItem, err)
	}

	res, err := h.stockService.RegisterStockItem(c.Context(), scopeFromCtx(c), *req)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedRegisterItem, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessRegisterItem)
}

func (h *stockHandler) SaveStockCheck(c *fiber.Ctx) error {
	req := new(domain.SaveStockCheckRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSaveStockCheck, err)
	}

	res, err := h.stockService.SaveStockCheck(c.Context(), scopeFromCtx(c), *req)
	if err != nil {
		var partial *domain.PartialWriteError
		if errors.As(err, &partial) {
			return presenters.ErrorResponse(c, fiber.StatusConflict, domain.MessageFailedSaveStockCheck, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSaveStockCheck, err)
	}

	if res.ItemsChanged == 0 {
		return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessNoChanges)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessSaveStockCheck)
}

func (h *stockHandler) GetActivity(c *fiber.Ctx) error {
	branchID := c.Query("branch_id")
	limit, err := strconv.Atoi(c.Query("limit", "20"))
	if err != nil || limit <= 0 {
		limit = 20
	}

	res, err := h.stockService.GetActivity(c.Context(), scopeFromCtx(c), branchID, limit)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetActivity, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetActivity)
}

func (h *stockHandler) GetStats(c *fiber.Ctx) error {
	branchID := c.Query("branch_id")

	res, err := h.stockService.GetStats(c.Context(), scopeFromCtx(c), branchID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetStockStats, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetStockStats)
}
