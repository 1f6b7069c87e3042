package stock

import (
	"context"
	"errors"
	"fmt"
	"kedaistock-backend/domain"
	"kedaistock-backend/entities"
	"kedaistock-backend/internal/utils"
	"kedaistock-backend/internal/utils/mailing"
	"kedaistock-backend/pkg/branch"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	StockService interface {
		GetStockItems(ctx context.Context, scope branch.Scope, branchID string) ([]domain.StockItemResponse, error)
		RegisterStockItem(ctx context.Context, scope branch.Scope, req domain.RegisterStockItemRequest) (domain.StockItemResponse, error)
		SaveStockCheck(ctx context.Context, scope branch.Scope, req domain.SaveStockCheckRequest) (domain.SaveStockCheckResponse, error)
		ApplyQuickDeltas(ctx context.Context, scope branch.Scope, branchID string, deltas map[string]float64) (domain.SaveStockCheckResponse, error)
		GetActivity(ctx context.Context, scope branch.Scope, branchID string, limit int) ([]domain.StockActivityResponse, error)
		GetStats(ctx context.Context, scope branch.Scope, branchID string) (domain.StockStatsResponse, error)
	}

	stockService struct {
		stockRepository  StockRepository
		branchRepository branch.BranchRepository
	}
)

func NewStockService(stockRepository StockRepository, branchRepository branch.BranchRepository) StockService {
	return &stockService{
		stockRepository:  stockRepository,
		branchRepository: branchRepository,
	}
}

func (s *stockService) GetStockItems(ctx context.Context, scope branch.Scope, branchID string) ([]domain.StockItemResponse, error) {
	resolved, err := branch.ResolveBranchID(scope, branchID)
	if err != nil {
		return nil, err
	}

	items, err := s.stockRepository.GetStockItems(ctx, resolved)
	if err != nil {
		return nil, err
	}

	response := make([]domain.StockItemResponse, 0, len(items))
	for _, item := range items {
		response = append(response, toStockItemResponse(item))
	}
	return response, nil
}

func (s *stockService) RegisterStockItem(ctx context.Context, scope branch.Scope, req domain.RegisterStockItemRequest) (domain.StockItemResponse, error) {
	resolved, err := branch.ResolveBranchID(scope, req.BranchID)
	if err != nil {
		return domain.StockItemResponse{}, err
	}

	branchUUID, err := uuid.Parse(resolved)
	if err != nil {
		return domain.StockItemResponse{}, domain.ErrParseUUID
	}
	ingredientUUID, err := uuid.Parse(req.IngredientID)
	if err != nil {
		return domain.StockItemResponse{}, domain.ErrParseUUID
	}

	item := &entities.StockItem{
		ID:           uuid.New(),
		BranchID:     branchUUID,
		IngredientID: ingredientUUID,
		OnHandQty:    req.OnHandQty,
		ReorderPoint: req.ReorderPoint,
	}

	if err := s.stockRepository.CreateStockItem(ctx, item); err != nil {
		return domain.StockItemResponse{}, err
	}

	return toStockItemResponse(item), nil
}

// SaveStockCheck turns the client's edit buffer into one StockCheck plus
// one StockCheckItem per nonzero diff, all committed atomically. An empty
// effective buffer creates no rows at all.
func (s *stockService) SaveStockCheck(ctx context.Context, scope branch.Scope, req domain.SaveStockCheckRequest) (domain.SaveStockCheckResponse, error) {
	resolved, err := branch.ResolveBranchID(scope, req.BranchID)
	if err != nil {
		return domain.SaveStockCheckResponse{}, err
	}

	counted := make(map[string]float64, len(req.Items))
	for _, edit := range req.Items {
		if edit.CountedQty < 0 {
			return domain.SaveStockCheckResponse{}, domain.ErrNegativeOnHand
		}
		counted[edit.IngredientID] = edit.CountedQty
	}

	return s.commitCheck(ctx, scope, resolved, counted, false)
}

// ApplyQuickDeltas is the quick-request stock-update path: the submitted
// quantities are relative deltas against current on-hand, recorded through
// the same audited stock-check save.
func (s *stockService) ApplyQuickDeltas(ctx context.Context, scope branch.Scope, branchID string, deltas map[string]float64) (domain.SaveStockCheckResponse, error) {
	resolved, err := branch.ResolveBranchID(scope, branchID)
	if err != nil {
		return domain.SaveStockCheckResponse{}, err
	}

	items, err := s.stockRepository.GetStockItems(ctx, resolved)
	if err != nil {
		return domain.SaveStockCheckResponse{}, err
	}

	onHand := make(map[string]float64, len(items))
	for _, item := range items {
		onHand[item.IngredientID.String()] = item.OnHandQty
	}

	counted := make(map[string]float64, len(deltas))
	for ingredientID, delta := range deltas {
		current, ok := onHand[ingredientID]
		if !ok {
			return domain.SaveStockCheckResponse{}, domain.ErrStockItemNotFound
		}
		after := current + delta
		if after < 0 {
			return domain.SaveStockCheckResponse{}, domain.ErrNegativeOnHand
		}
		counted[ingredientID] = after
	}

	return s.commitCheck(ctx, scope, resolved, counted, true)
}

func (s *stockService) commitCheck(ctx context.Context, scope branch.Scope, branchID string, counted map[string]float64, fromQuickUpdate bool) (domain.SaveStockCheckResponse, error) {
	items, err := s.stockRepository.GetStockItems(ctx, branchID)
	if err != nil {
		return domain.SaveStockCheckResponse{}, err
	}

	byIngredient := make(map[string]*entities.StockItem, len(items))
	for _, item := range items {
		byIngredient[item.IngredientID.String()] = item
	}

	branchUUID, err := uuid.Parse(branchID)
	if err != nil {
		return domain.SaveStockCheckResponse{}, domain.ErrParseUUID
	}
	userUUID, err := uuid.Parse(scope.UserID)
	if err != nil {
		return domain.SaveStockCheckResponse{}, domain.ErrParseUUID
	}

	check := &entities.StockCheck{
		ID:        uuid.New(),
		BranchID:  branchUUID,
		UserID:    userUUID,
		CheckedAt: time.Now(),
	}

	var updates []*entities.StockItem
	for ingredientID, after := range counted {
		item, ok := byIngredient[ingredientID]
		if !ok {
			return domain.SaveStockCheckResponse{}, domain.ErrStockItemNotFound
		}

		diff := after - item.OnHandQty
		if diff == 0 {
			continue
		}

		check.Items = append(check.Items, &entities.StockCheckItem{
			ID:           uuid.New(),
			StockCheckID: check.ID,
			IngredientID: item.IngredientID,
			OnHandBefore: item.OnHandQty,
			OnHandAfter:  after,
			QtyDiff:      diff,
		})

		updated := *item
		updated.OnHandQty = after
		updated.LastChange = diff
		updates = append(updates, &updated)
	}

	if len(check.Items) == 0 {
		return domain.SaveStockCheckResponse{ItemsChanged: 0}, nil
	}

	if err := s.stockRepository.SaveStockCheck(ctx, check, updates); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.SaveStockCheckResponse{}, domain.ErrStockItemNotFound
		}
		return domain.SaveStockCheckResponse{}, &domain.PartialWriteError{Op: "stock check save", Err: err}
	}

	if !fromQuickUpdate {
		go s.notifyLowStock(branchID, updates)
	}

	return domain.SaveStockCheckResponse{
		StockCheckID: check.ID.String(),
		CheckedAt:    check.CheckedAt,
		ItemsChanged: len(check.Items),
	}, nil
}

// notifyLowStock mails the configured alert address when a save leaves
// items at or below their reorder point. Best effort only.
func (s *stockService) notifyLowStock(branchID string, updates []*entities.StockItem) {
	alertEmail := utils.GetConfig("ALERT_EMAIL")
	if alertEmail == "" {
		return
	}

	items, err := s.stockRepository.GetStockItems(context.Background(), branchID)
	if err != nil {
		log.Printf("low stock notification skipped: %v", err)
		return
	}

	updatedIDs := make(map[string]struct{}, len(updates))
	for _, u := range updates {
		updatedIDs[u.IngredientID.String()] = struct{}{}
	}

	var lines []string
	for _, item := range items {
		if _, ok := updatedIDs[item.IngredientID.String()]; !ok {
			continue
		}
		if item.OnHandQty > item.ReorderPoint {
			continue
		}
		name := item.IngredientID.String()
		unit := ""
		if item.Ingredient != nil {
			name = item.Ingredient.Name
			unit = item.Ingredient.Unit
		}
		lines = append(lines, fmt.Sprintf("<li>%s: %.2f %s on hand (reorder at %.2f)</li>", name, item.OnHandQty, unit, item.ReorderPoint))
	}

	if len(lines) == 0 {
		return
	}

	branchName := branchID
	if b, err := s.branchRepository.GetBranchByID(context.Background(), branchID); err == nil {
		branchName = b.Name
	}

	subject := fmt.Sprintf("Low stock after check at %s", branchName)
	body := fmt.Sprintf("<p>The latest stock check left these items at or below their reorder point:</p><ul>%s</ul>", strings.Join(lines, ""))

	if err := mailing.SendMail(alertEmail, subject, body); err != nil {
		log.Printf("low stock notification failed: %v", err)
	}
}

func (s *stockService) GetActivity(ctx context.Context, scope branch.Scope, branchID string, limit int) ([]domain.StockActivityResponse, error) {
	resolved, err := branch.ResolveBranchID(scope, branchID)
	if err != nil {
		return nil, err
	}

	items, err := s.stockRepository.GetActivity(ctx, resolved, limit)
	if err != nil {
		return nil, err
	}

	response := make([]domain.StockActivityResponse, 0, len(items))
	for _, item := range items {
		activity := domain.StockActivityResponse{
			StockCheckID: item.StockCheckID.String(),
			IngredientID: item.IngredientID.String(),
			OnHandBefore: item.OnHandBefore,
			OnHandAfter:  item.OnHandAfter,
			QtyDiff:      item.QtyDiff,
		}
		if item.Ingredient != nil {
			activity.IngredientName = item.Ingredient.Name
			activity.Unit = item.Ingredient.Unit
		}
		if item.StockCheck != nil {
			activity.CheckedAt = item.StockCheck.CheckedAt
			if item.StockCheck.User != nil {
				activity.CheckedBy = item.StockCheck.User.Name
			}
		}
		response = append(response, activity)
	}
	return response, nil
}

func (s *stockService) GetStats(ctx context.Context, scope branch.Scope, branchID string) (domain.StockStatsResponse, error) {
	resolved, err := branch.ResolveBranchID(scope, branchID)
	if err != nil {
		return domain.StockStatsResponse{}, err
	}

	total, err := s.stockRepository.CountStockItems(ctx, resolved)
	if err != nil {
		return domain.StockStatsResponse{}, err
	}

	low, err := s.stockRepository.CountLowStockItems(ctx, resolved)
	if err != nil {
		return domain.StockStatsResponse{}, err
	}

	pending, err := s.stockRepository.CountPendingRequests(ctx, resolved)
	if err != nil {
		return domain.StockStatsResponse{}, err
	}

	return domain.StockStatsResponse{
		TotalItems:      int(total),
		LowStockItems:   int(low),
		PendingRequests: int(pending),
	}, nil
}

func toStockItemResponse(item *entities.StockItem) domain.StockItemResponse {
	response := domain.StockItemResponse{
		ID:           item.ID.String(),
		IngredientID: item.IngredientID.String(),
		OnHandQty:    item.OnHandQty,
		ReorderPoint: item.ReorderPoint,
		LastChange:   item.LastChange,
		BranchID:     item.BranchID.String(),
	}
	if item.Ingredient != nil {
		response.Name = item.Ingredient.Name
		response.Unit = item.Ingredient.Unit
		response.CategoryID = item.Ingredient.CategoryID.String()
		response.CostPerUnit = item.Ingredient.CostPerUnit
		if item.Ingredient.Category != nil {
			response.CategoryName = item.Ingredient.Category.Name
		}
	}
	return response
}
