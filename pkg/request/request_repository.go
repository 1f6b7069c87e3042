package request

import (
	"context"
	"kedaistock-backend/entities"

	"gorm.io/gorm"
)

type (
	RequestRepository interface {
		CreateRequest(ctx context.Context, request *entities.Request) error
		GetRequests(ctx context.Context, branchID string, status string) ([]*entities.Request, error)
		GetRequestByID(ctx context.Context, id string) (*entities.Request, error)
		DeleteRequestWithItems(ctx context.Context, id string) error
		FulfillRequest(ctx context.Context, id string) error
	}

	requestRepository struct {
		db *gorm.DB
	}
)

func NewRequestRepository(db *gorm.DB) RequestRepository {
	return &requestRepository{db: db}
}

// CreateRequest writes the request and its items as one unit; gorm creates
// the association rows inside the same transaction as the parent.
func (r *requestRepository) CreateRequest(ctx context.Context, request *entities.Request) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(request).Error
	})
}

func (r *requestRepository) GetRequests(ctx context.Context, branchID string, status string) ([]*entities.Request, error) {
	var requests []*entities.Request

	query := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Items.Ingredient").
		Where("branch_id = ?", branchID)

	if status != "" && status != "all" {
		query = query.Where("status = ?", status)
	}

	if err := query.Order("requested_at DESC").Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *requestRepository) GetRequestByID(ctx context.Context, id string) (*entities.Request, error) {
	var request entities.Request
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Items.Ingredient").
		Where("id = ?", id).
		First(&request).Error; err != nil {
		return nil, err
	}
	return &request, nil
}

// DeleteRequestWithItems removes the item rows first and the parent only
// if that succeeded, inside one transaction: the observable outcome is all
// rows gone or none.
func (r *requestRepository) DeleteRequestWithItems(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("request_id = ?", id).Delete(&entities.RequestItem{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&entities.Request{}).Error
	})
}

func (r *requestRepository) FulfillRequest(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&entities.Request{}).
			Where("id = ?", id).
			Update("status", "fulfilled").Error; err != nil {
			return err
		}
		return tx.Model(&entities.RequestItem{}).
			Where("request_id = ?", id).
			Update("fulfilled", true).Error
	})
}
