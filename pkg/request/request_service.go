package request

import (
	"context"
	"errors"
	"kedaistock-backend/domain"
	"kedaistock-backend/entities"
	"kedaistock-backend/pkg/branch"
	"kedaistock-backend/pkg/realtime"
	"kedaistock-backend/pkg/stock"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	RequestService interface {
		CreateRequest(ctx context.Context, scope branch.Scope, req domain.CreateRequestRequest) (domain.RequestResponse, error)
		GetRequests(ctx context.Context, scope branch.Scope, branchID string, status string) ([]domain.RequestResponse, error)
		DeleteRequest(ctx context.Context, scope branch.Scope, id string) error
		FulfillRequest(ctx context.Context, scope branch.Scope, id string) error
		SubmitQuickRequest(ctx context.Context, scope branch.Scope, req domain.QuickRequestRequest) (domain.QuickRequestResponse, error)
	}

	requestService struct {
		requestRepository RequestRepository
		branchRepository  branch.BranchRepository
		stockService      stock.StockService
		broker            realtime.Broker
	}
)

func NewRequestService(
	requestRepository RequestRepository,
	branchRepository branch.BranchRepository,
	stockService stock.StockService,
	broker realtime.Broker,
) RequestService {
	return &requestService{
		requestRepository: requestRepository,
		branchRepository:  branchRepository,
		stockService:      stockService,
		broker:            broker,
	}
}

func (s *requestService) CreateRequest(ctx context.Context, scope branch.Scope, req domain.CreateRequestRequest) (domain.RequestResponse, error) {
	resolved, err := branch.ResolveBranchID(scope, req.BranchID)
	if err != nil {
		return domain.RequestResponse{}, err
	}

	request, err := s.buildRequest(ctx, scope, resolved, req.Items)
	if err != nil {
		return domain.RequestResponse{}, err
	}

	if err := s.requestRepository.CreateRequest(ctx, request); err != nil {
		return domain.RequestResponse{}, &domain.PartialWriteError{Op: "request create", Err: err}
	}

	s.publish(ctx, realtime.TableRequests, realtime.ActionInsert, request.ID.String(), resolved)
	s.publish(ctx, realtime.TableRequestItems, realtime.ActionInsert, request.ID.String(), resolved)

	return toRequestResponse(request), nil
}

// buildRequest keeps only entries with quantity above zero and snapshots
// the branch's current on-hand quantities into the item rows.
func (s *requestService) buildRequest(ctx context.Context, scope branch.Scope, branchID string, items []domain.RequestItemInput) (*entities.Request, error) {
	branchUUID, err := uuid.Parse(branchID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}
	userUUID, err := uuid.Parse(scope.UserID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	stockItems, err := s.stockService.GetStockItems(ctx, scope, branchID)
	if err != nil {
		return nil, err
	}
	onHand := make(map[string]domain.StockItemResponse, len(stockItems))
	for _, item := range stockItems {
		onHand[item.IngredientID] = item
	}

	request := &entities.Request{
		ID:          uuid.New(),
		BranchID:    branchUUID,
		UserID:      userUUID,
		RequestedAt: time.Now(),
		Status:      domain.RequestStatusPending,
	}

	for _, input := range items {
		if input.Quantity <= 0 {
			continue
		}

		ingredientUUID, err := uuid.Parse(input.IngredientID)
		if err != nil {
			return nil, domain.ErrParseUUID
		}

		item := &entities.RequestItem{
			ID:           uuid.New(),
			RequestID:    request.ID,
			IngredientID: ingredientUUID,
			Quantity:     input.Quantity,
			Note:         input.Note,
		}
		if current, ok := onHand[input.IngredientID]; ok {
			item.CurrentQty = current.OnHandQty
			item.RecommendedQty = current.ReorderPoint
		}
		request.Items = append(request.Items, item)
	}

	if len(request.Items) == 0 {
		return nil, domain.ErrNoItemsSelected
	}
	return request, nil
}

func (s *requestService) GetRequests(ctx context.Context, scope branch.Scope, branchID string, status string) ([]domain.RequestResponse, error) {
	resolved, err := branch.ResolveBranchID(scope, branchID)
	if err != nil {
		return nil, err
	}

	requests, err := s.requestRepository.GetRequests(ctx, resolved, status)
	if err != nil {
		return nil, err
	}

	response := make([]domain.RequestResponse, 0, len(requests))
	for _, request := range requests {
		response = append(response, toRequestResponse(request))
	}
	return response, nil
}

func (s *requestService) DeleteRequest(ctx context.Context, scope branch.Scope, id string) error {
	request, err := s.requestRepository.GetRequestByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrRequestNotFound
		}
		return err
	}

	if _, err := branch.ResolveBranchID(scope, request.BranchID.String()); err != nil {
		return err
	}

	if err := s.requestRepository.DeleteRequestWithItems(ctx, id); err != nil {
		return &domain.PartialWriteError{Op: "request delete", Err: err}
	}

	s.publish(ctx, realtime.TableRequestItems, realtime.ActionDelete, id, request.BranchID.String())
	s.publish(ctx, realtime.TableRequests, realtime.ActionDelete, id, request.BranchID.String())
	return nil
}

func (s *requestService) FulfillRequest(ctx context.Context, scope branch.Scope, id string) error {
	request, err := s.requestRepository.GetRequestByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrRequestNotFound
		}
		return err
	}

	if _, err := branch.ResolveBranchID(scope, request.BranchID.String()); err != nil {
		return err
	}
	if request.Status != domain.RequestStatusPending {
		return domain.ErrRequestNotPending
	}

	if err := s.requestRepository.FulfillRequest(ctx, id); err != nil {
		return &domain.PartialWriteError{Op: "request fulfill", Err: err}
	}

	s.publish(ctx, realtime.TableRequests, realtime.ActionUpdate, id, request.BranchID.String())
	s.publish(ctx, realtime.TableRequestItems, realtime.ActionUpdate, id, request.BranchID.String())
	return nil
}

// SubmitQuickRequest validates the single-screen form and dispatches on
// the action: "request" creates a pending replenishment request,
// "stock-update" applies the quantities as relative on-hand deltas through
// the audited stock-check path. Zero Request rows are written for the
// latter.
func (s *requestService) SubmitQuickRequest(ctx context.Context, scope branch.Scope, req domain.QuickRequestRequest) (domain.QuickRequestResponse, error) {
	if req.BranchID == "" {
		return domain.QuickRequestResponse{}, domain.ErrBranchRequired
	}
	if req.StaffID == "" {
		return domain.QuickRequestResponse{}, domain.ErrStaffRequired
	}

	resolved, err := branch.ResolveBranchID(scope, req.BranchID)
	if err != nil {
		return domain.QuickRequestResponse{}, err
	}

	staff, err := s.branchRepository.GetStaffMemberByID(ctx, req.StaffID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.QuickRequestResponse{}, domain.ErrStaffNotFound
		}
		return domain.QuickRequestResponse{}, err
	}
	if staff.BranchID.String() != resolved {
		return domain.QuickRequestResponse{}, domain.ErrStaffNotFound
	}

	selected := make([]domain.RequestItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		if item.Quantity > 0 {
			selected = append(selected, item)
		}
	}
	if len(selected) == 0 {
		return domain.QuickRequestResponse{}, domain.ErrNoItemsSelected
	}

	switch req.Action {
	case domain.QuickActionRequest:
		created, err := s.CreateRequest(ctx, scope, domain.CreateRequestRequest{
			BranchID: resolved,
			Items:    selected,
		})
		if err != nil {
			return domain.QuickRequestResponse{}, err
		}
		return domain.QuickRequestResponse{
			Action:    req.Action,
			RequestID: created.ID,
			ItemCount: len(created.Items),
		}, nil

	case domain.QuickActionStockUpdate:
		deltas := make(map[string]float64, len(selected))
		for _, item := range selected {
			deltas[item.IngredientID] += item.Quantity
		}
		saved, err := s.stockService.ApplyQuickDeltas(ctx, scope, resolved, deltas)
		if err != nil {
			return domain.QuickRequestResponse{}, err
		}
		return domain.QuickRequestResponse{
			Action:       req.Action,
			StockCheckID: saved.StockCheckID,
			ItemCount:    saved.ItemsChanged,
		}, nil

	default:
		return domain.QuickRequestResponse{}, domain.ErrUnknownQuickAction
	}
}

func (s *requestService) publish(ctx context.Context, table, action, rowID, branchID string) {
	event := realtime.Event{
		Table:    table,
		Action:   action,
		RowID:    rowID,
		BranchID: branchID,
		At:       time.Now(),
	}
	if err := s.broker.Publish(ctx, event); err != nil {
		log.Printf("realtime publish %s/%s failed: %v", table, action, err)
	}
}

func toRequestResponse(request *entities.Request) domain.RequestResponse {
	response := domain.RequestResponse{
		ID:          request.ID.String(),
		BranchID:    request.BranchID.String(),
		UserID:      request.UserID.String(),
		RequestedAt: request.RequestedAt,
		Status:      request.Status,
		Items:       make([]domain.RequestItemResponse, 0, len(request.Items)),
	}

	for _, item := range request.Items {
		itemResponse := domain.RequestItemResponse{
			ID:             item.ID.String(),
			IngredientID:   item.IngredientID.String(),
			Quantity:       item.Quantity,
			Note:           item.Note,
			RecommendedQty: item.RecommendedQty,
			CurrentQty:     item.CurrentQty,
			Fulfilled:      item.Fulfilled,
		}
		if item.Ingredient != nil {
			itemResponse.IngredientName = item.Ingredient.Name
			itemResponse.Unit = item.Ingredient.Unit
		}
		response.Items = append(response.Items, itemResponse)
	}
	return response
}
