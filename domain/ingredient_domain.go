package domain

import (
	"errors"
	"mime/multipart"
)

var (
	MessageSuccessCreateCategory   = "category created successfully"
	MessageSuccessGetCategories    = "categories retrieved successfully"
	MessageSuccessCreateIngredient = "ingredient created successfully"
	MessageSuccessGetIngredients   = "ingredients retrieved successfully"
	MessageSuccessUpdateIngredient = "ingredient updated successfully"
	MessageSuccessDeleteIngredient = "ingredient deleted successfully"
	MessageSuccessUploadImage      = "ingredient image uploaded successfully"

	MessageFailedCreateCategory   = "failed to create category"
	MessageFailedGetCategories    = "failed to retrieve categories"
	MessageFailedCreateIngredient = "failed to create ingredient"
	MessageFailedGetIngredients   = "failed to retrieve ingredients"
	MessageFailedUpdateIngredient = "failed to update ingredient"
	MessageFailedDeleteIngredient = "failed to delete ingredient"
	MessageFailedUploadImage      = "failed to upload ingredient image"

	ErrCategoryNotFound   = errors.New("category not found")
	ErrIngredientNotFound = errors.New("ingredient not found")
)

type (
	CreateCategoryRequest struct {
		Name string `json:"name" validate:"required"`
	}

	CategoryResponse struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}

	CreateIngredientRequest struct {
		Name        string  `json:"name" validate:"required"`
		Unit        string  `json:"unit" validate:"required"`
		CostPerUnit float64 `json:"cost_per_unit" validate:"omitempty,min=0"`
		CategoryID  string  `json:"category_id" validate:"required,uuid"`
		BranchID    string  `json:"branch_id" validate:"omitempty,uuid"`
	}

	UpdateIngredientRequest struct {
		Name        string  `json:"name" validate:"omitempty"`
		Unit        string  `json:"unit" validate:"omitempty"`
		CostPerUnit float64 `json:"cost_per_unit" validate:"omitempty,min=0"`
		CategoryID  string  `json:"category_id" validate:"omitempty,uuid"`
	}

	UploadIngredientImageRequest struct {
		IngredientID string                `json:"ingredient_id" form:"ingredient_id" validate:"required,uuid"`
		Image        *multipart.FileHeader `json:"image" form:"image" validate:"required"`
	}

	IngredientResponse struct {
		ID           string  `json:"id"`
		Name         string  `json:"name"`
		Unit         string  `json:"unit"`
		CostPerUnit  float64 `json:"cost_per_unit,omitempty"`
		CategoryID   string  `json:"category_id"`
		CategoryName string  `json:"category_name"`
		BranchID     string  `json:"branch_id,omitempty"`
		ImageURL     string  `json:"image_url,omitempty"`
	}
)
