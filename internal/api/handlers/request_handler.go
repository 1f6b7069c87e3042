package handlers

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"kedaistock-backend/domain"
	"kedaistock-backend/internal/api/presenters"
	"kedaistock-backend/pkg/realtime"
	"kedaistock-backend/pkg/request"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
)

type (
	RequestHandler interface {
		CreateRequest(c *fiber.Ctx) error
		GetRequests(c *fiber.Ctx) error
		DeleteRequest(c *fiber.Ctx) error
		FulfillRequest(c *fiber.Ctx) error
		SubmitQuickRequest(c *fiber.Ctx) error
		StreamEvents(c *fiber.Ctx) error
	}

	requestHandler struct {
		requestService request.RequestService
		broker         realtime.Broker
		validator      *validator.Validate
	}
)

func NewRequestHandler(requestService request.RequestService, broker realtime.Broker, validator *validator.Validate) RequestHandler {
	return &requestHandler{
		requestService: requestService,
		broker:         broker,
		validator:      validator,
	}
}

func (h *requestHandler) CreateRequest(c *fiber.Ctx) error {
	req := new(domain.CreateRequestRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateRequest, err)
	}

	res, err := h.requestService.CreateRequest(c.Context(), scopeFromCtx(c), *req)
	if err != nil {
		var partial *domain.PartialWriteError
		if errors.As(err, &partial) {
			return presenters.ErrorResponse(c, fiber.StatusConflict, domain.MessageFailedCreateRequest, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateRequest, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateRequest)
}

func (h *requestHandler) GetRequests(c *fiber.Ctx) error {
	branchID := c.Query("branch_id")
	status := c.Query("status")

	res, err := h.requestService.GetRequests(c.Context(), scopeFromCtx(c), branchID, status)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetRequests, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetRequests)
}

func (h *requestHandler) DeleteRequest(c *fiber.Ctx) error {
	requestID := c.Params("id")

	if err := h.requestService.DeleteRequest(c.Context(), scopeFromCtx(c), requestID); err != nil {
		var partial *domain.PartialWriteError
		if errors.As(err, &partial) {
			return presenters.ErrorResponse(c, fiber.StatusConflict, domain.MessageFailedDeleteRequest, err)
		}
		if errors.Is(err, domain.ErrRequestNotFound) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedDeleteRequest, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedDeleteRequest, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteRequest)
}

func (h *requestHandler) FulfillRequest(c *fiber.Ctx) error {
	requestID := c.Params("id")

	if err := h.requestService.FulfillRequest(c.Context(), scopeFromCtx(c), requestID); err != nil {
		if errors.Is(err, domain.ErrRequestNotFound) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedFulfillRequest, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedFulfillRequest, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessFulfillRequest)
}

func (h *requestHandler) SubmitQuickRequest(c *fiber.Ctx) error {
	req := new(domain.QuickRequestRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedQuickRequest, err)
	}

	res, err := h.requestService.SubmitQuickRequest(c.Context(), scopeFromCtx(c), *req)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedQuickRequest, err)
	}

	message := domain.MessageSuccessQuickRequest
	if res.Action == domain.QuickActionStockUpdate {
		message = domain.MessageSuccessQuickUpdate
	}
	return presenters.SuccessResponse(c, res, fiber.StatusCreated, message)
}

// StreamEvents pushes request and request-item change events over SSE so
// active views can refetch. Non-owner connections only receive events for
// their own branch. A comment heartbeat every 15s surfaces dead clients.
func (h *requestHandler) StreamEvents(c *fiber.Ctx) error {
	scope := scopeFromCtx(c)

	sub, err := h.broker.Subscribe(c.Context(), realtime.TableRequests, realtime.TableRequestItems)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedGetRequests, err)
	}

	c.Set("Content-Type", "text/event-stream")
	c.Set("Cache-Control", "no-cache")
	c.Set("Connection", "keep-alive")

	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		defer sub.Close()

		heartbeat := time.NewTicker(15 * time.Second)
		defer heartbeat.Stop()

		for {
			select {
			case event, ok := <-sub.C:
				if !ok {
					return
				}
				if scope.Role != domain.RoleOwner && event.BranchID != "" && event.BranchID != scope.BranchID {
					continue
				}
				payload, err := json.Marshal(event)
				if err != nil {
					log.Printf("event stream marshal failed: %v", err)
					continue
				}
				fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Table, payload)
				if err := w.Flush(); err != nil {
					return
				}
			case <-heartbeat.C:
				fmt.Fprint(w, ": keep-alive\n\n")
				if err := w.Flush(); err != nil {
					return
				}
			}
		}
	}))

	return nil
}
