package ingredient

import (
	"context"
	"errors"
	"fmt"
	"kedaistock-backend/domain"
	"kedaistock-backend/entities"
	"kedaistock-backend/internal/utils/storage"
	"kedaistock-backend/pkg/branch"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	IngredientService interface {
		CreateCategory(ctx context.Context, req domain.CreateCategoryRequest) (domain.CategoryResponse, error)
		GetCategories(ctx context.Context) ([]domain.CategoryResponse, error)

		CreateIngredient(ctx context.Context, req domain.CreateIngredientRequest) (domain.IngredientResponse, error)
		GetIngredients(ctx context.Context, scope branch.Scope, branchID, searchText, categoryID string) ([]domain.IngredientResponse, error)
		UpdateIngredient(ctx context.Context, id string, req domain.UpdateIngredientRequest) error
		DeleteIngredient(ctx context.Context, id string) error
		UploadIngredientImage(ctx context.Context, req domain.UploadIngredientImageRequest) error
	}

	ingredientService struct {
		ingredientRepository IngredientRepository
		s3                   storage.AwsS3
	}
)

func NewIngredientService(ingredientRepository IngredientRepository, s3 storage.AwsS3) IngredientService {
	return &ingredientService{
		ingredientRepository: ingredientRepository,
		s3:                   s3,
	}
}

func (s *ingredientService) CreateCategory(ctx context.Context, req domain.CreateCategoryRequest) (domain.CategoryResponse, error) {
	category := &entities.Category{
		ID:   uuid.New(),
		Name: req.Name,
	}

	if err := s.ingredientRepository.CreateCategory(ctx, category); err != nil {
		return domain.CategoryResponse{}, err
	}

	return domain.CategoryResponse{ID: category.ID.String(), Name: category.Name}, nil
}

func (s *ingredientService) GetCategories(ctx context.Context) ([]domain.CategoryResponse, error) {
	categories, err := s.ingredientRepository.GetCategories(ctx)
	if err != nil {
		return nil, err
	}

	response := make([]domain.CategoryResponse, 0, len(categories))
	for _, c := range categories {
		response = append(response, domain.CategoryResponse{ID: c.ID.String(), Name: c.Name})
	}
	return response, nil
}

func (s *ingredientService) CreateIngredient(ctx context.Context, req domain.CreateIngredientRequest) (domain.IngredientResponse, error) {
	categoryUUID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		return domain.IngredientResponse{}, domain.ErrParseUUID
	}

	if _, err := s.ingredientRepository.GetCategoryByID(ctx, req.CategoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.IngredientResponse{}, domain.ErrCategoryNotFound
		}
		return domain.IngredientResponse{}, err
	}

	ingredient := &entities.Ingredient{
		ID:          uuid.New(),
		Name:        req.Name,
		Unit:        req.Unit,
		CostPerUnit: req.CostPerUnit,
		CategoryID:  categoryUUID,
	}

	if req.BranchID != "" {
		branchUUID, err := uuid.Parse(req.BranchID)
		if err != nil {
			return domain.IngredientResponse{}, domain.ErrParseUUID
		}
		ingredient.BranchID = &branchUUID
	}

	if err := s.ingredientRepository.CreateIngredient(ctx, ingredient); err != nil {
		return domain.IngredientResponse{}, err
	}

	created, err := s.ingredientRepository.GetIngredientByID(ctx, ingredient.ID.String())
	if err != nil {
		return domain.IngredientResponse{}, err
	}

	return toIngredientResponse(created), nil
}

// GetIngredients loads the registry for a visible branch and applies the
// in-memory search/category filter over the loaded list. Shared rows with
// no branch stay visible to every caller; branch-private rows only resolve
// through the scope.
func (s *ingredientService) GetIngredients(ctx context.Context, scope branch.Scope, branchID, searchText, categoryID string) ([]domain.IngredientResponse, error) {
	resolved, err := branch.ResolveBranchID(scope, branchID)
	if err != nil {
		return nil, err
	}

	ingredients, err := s.ingredientRepository.GetIngredients(ctx, resolved)
	if err != nil {
		return nil, err
	}

	response := make([]domain.IngredientResponse, 0, len(ingredients))
	for _, item := range ingredients {
		response = append(response, toIngredientResponse(item))
	}

	if HasFilters(searchText, categoryID) {
		response = Filter(response, searchText, categoryID)
	}
	return response, nil
}

func (s *ingredientService) UpdateIngredient(ctx context.Context, id string, req domain.UpdateIngredientRequest) error {
	ingredient, err := s.ingredientRepository.GetIngredientByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrIngredientNotFound
		}
		return err
	}

	if req.Name != "" {
		ingredient.Name = req.Name
	}
	if req.Unit != "" {
		ingredient.Unit = req.Unit
	}
	if req.CostPerUnit > 0 {
		ingredient.CostPerUnit = req.CostPerUnit
	}
	if req.CategoryID != "" {
		categoryUUID, err := uuid.Parse(req.CategoryID)
		if err != nil {
			return domain.ErrParseUUID
		}
		if _, err := s.ingredientRepository.GetCategoryByID(ctx, req.CategoryID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrCategoryNotFound
			}
			return err
		}
		ingredient.CategoryID = categoryUUID
	}

	return s.ingredientRepository.UpdateIngredient(ctx, ingredient)
}

func (s *ingredientService) DeleteIngredient(ctx context.Context, id string) error {
	ingredient, err := s.ingredientRepository.GetIngredientByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrIngredientNotFound
		}
		return err
	}

	if ingredient.ImageURL != "" {
		objectKey := s.s3.GetObjectKeyFromLink(ingredient.ImageURL)
		if objectKey != "" {
			_ = s.s3.DeleteFile(objectKey)
		}
	}

	return s.ingredientRepository.DeleteIngredient(ctx, id)
}

func (s *ingredientService) UploadIngredientImage(ctx context.Context, req domain.UploadIngredientImageRequest) error {
	ingredient, err := s.ingredientRepository.GetIngredientByID(ctx, req.IngredientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrIngredientNotFound
		}
		return err
	}

	fileName := fmt.Sprintf("ingredient-%s", ingredient.ID.String())
	var objectKey string
	var uploadErr error

	if ingredient.ImageURL != "" {
		existingKey := s.s3.GetObjectKeyFromLink(ingredient.ImageURL)
		if existingKey != "" {
			objectKey, uploadErr = s.s3.UpdateFile(existingKey, req.Image, storage.AllowImage...)
		} else {
			objectKey, uploadErr = s.s3.UploadFile(fileName, req.Image, "ingredients", storage.AllowImage...)
		}
	} else {
		objectKey, uploadErr = s.s3.UploadFile(fileName, req.Image, "ingredients", storage.AllowImage...)
	}

	if uploadErr != nil {
		return uploadErr
	}

	ingredient.ImageURL = s.s3.GetPublicLinkKey(objectKey)
	return s.ingredientRepository.UpdateIngredient(ctx, ingredient)
}

func toIngredientResponse(item *entities.Ingredient) domain.IngredientResponse {
	response := domain.IngredientResponse{
		ID:          item.ID.String(),
		Name:        item.Name,
		Unit:        item.Unit,
		CostPerUnit: item.CostPerUnit,
		CategoryID:  item.CategoryID.String(),
		ImageURL:    item.ImageURL,
	}
	if item.Category != nil {
		response.CategoryName = item.Category.Name
	}
	if item.BranchID != nil {
		response.BranchID = item.BranchID.String()
	}
	return response
}
