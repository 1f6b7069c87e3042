package stock

import (
	"context"
	"kedaistock-backend/entities"

	"gorm.io/gorm"
)

type (
	StockRepository interface {
		GetStockItems(ctx context.Context, branchID string) ([]*entities.StockItem, error)
		CreateStockItem(ctx context.Context, item *entities.StockItem) error
		SaveStockCheck(ctx context.Context, check *entities.StockCheck, updates []*entities.StockItem) error
		GetActivity(ctx context.Context, branchID string, limit int) ([]*entities.StockCheckItem, error)
		CountStockItems(ctx context.Context, branchID string) (int64, error)
		CountLowStockItems(ctx context.Context, branchID string) (int64, error)
		CountPendingRequests(ctx context.Context, branchID string) (int64, error)
	}

	stockRepository struct {
		db *gorm.DB
	}
)

func NewStockRepository(db *gorm.DB) StockRepository {
	return &stockRepository{db: db}
}

func (r *stockRepository) GetStockItems(ctx context.Context, branchID string) ([]*entities.StockItem, error) {
	var items []*entities.StockItem
	if err := r.db.WithContext(ctx).
		Preload("Ingredient").
		Preload("Ingredient.Category").
		Where("branch_id = ?", branchID).
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *stockRepository) CreateStockItem(ctx context.Context, item *entities.StockItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

// SaveStockCheck writes the check, its items, and the matching stock item
// updates as one unit of work. A failure anywhere rolls everything back,
// so no check item can exist without its parent and no on-hand quantity
// moves without its audit row.
func (r *stockRepository) SaveStockCheck(ctx context.Context, check *entities.StockCheck, updates []*entities.StockItem) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(check).Error; err != nil {
			return err
		}
		for _, item := range updates {
			result := tx.Model(&entities.StockItem{}).
				Where("id = ?", item.ID).
				Updates(map[string]interface{}{
					"on_hand_qty": item.OnHandQty,
					"last_change": item.LastChange,
				})
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return gorm.ErrRecordNotFound
			}
		}
		return nil
	})
}

func (r *stockRepository) GetActivity(ctx context.Context, branchID string, limit int) ([]*entities.StockCheckItem, error) {
	var items []*entities.StockCheckItem
	query := r.db.WithContext(ctx).
		Preload("Ingredient").
		Preload("StockCheck").
		Preload("StockCheck.User").
		Joins("JOIN stock_checks ON stock_checks.id = stock_check_items.stock_check_id").
		Where("stock_checks.branch_id = ?", branchID).
		Order("stock_checks.checked_at DESC")

	if limit > 0 {
		query = query.Limit(limit)
	}

	if err := query.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *stockRepository) CountStockItems(ctx context.Context, branchID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.StockItem{}).
		Where("branch_id = ?", branchID).
		Count(&count).Error
	return count, err
}

func (r *stockRepository) CountLowStockItems(ctx context.Context, branchID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.StockItem{}).
		Where("branch_id = ? AND on_hand_qty <= reorder_point", branchID).
		Count(&count).Error
	return count, err
}

func (r *stockRepository) CountPendingRequests(ctx context.Context, branchID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.Request{}).
		Where("branch_id = ? AND status = ?", branchID, "pending").
		Count(&count).Error
	return count, err
}
