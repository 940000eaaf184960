package service

import (
	"errors"
	"strings"

	"github.com/finance-tracker/internal/models"
	"github.com/finance-tracker/internal/repository"
)

var (
	ErrCategoryInput    = errors.New("name and a valid type (expense/income) are required")
	ErrCategoryExists   = errors.New("category already exists")
	ErrCategoryNotFound = errors.New("category not found or access denied")
	ErrNoCategoryUpdate = errors.New("no valid updates provided")
)

// CategoryService handles category CRUD and the ownership rules around
// shared default categories
type CategoryService struct {
	categoryRepo *repository.CategoryRepository
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(categoryRepo *repository.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

// CreateCategoryRequest represents the category creation request
type CreateCategoryRequest struct {
	Name  string                 `json:"name"`
	Type  models.TransactionType `json:"type"`
	Color string                 `json:"color"`
	Icon  string                 `json:"icon"`
}

// UpdateCategoryRequest represents the category update request. Only
// non-empty fields are applied.
type UpdateCategoryRequest struct {
	Name  string                 `json:"name"`
	Type  models.TransactionType `json:"type"`
	Color string                 `json:"color"`
	Icon  string                 `json:"icon"`
}

// ListCategoriesRequest represents the category listing request
type ListCategoriesRequest struct {
	Search string
	Page   int
	Limit  int
}

// Create creates a category owned by the user. The duplicate-name check
// is scoped to the owner, so two users may each have a "Food" category.
func (s *CategoryService) Create(userID uint, req *CreateCategoryRequest) (*models.Category, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" || !req.Type.Valid() {
		return nil, ErrCategoryInput
	}

	exists, err := s.categoryRepo.ExistsByNameAndOwner(name, userID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrCategoryExists
	}

	color := req.Color
	if color == "" {
		color = models.DefaultCategoryColor
	}
	icon := req.Icon
	if icon == "" {
		icon = models.DefaultCategoryIcon
	}

	category := &models.Category{
		Name:      name,
		Type:      req.Type,
		Color:     color,
		Icon:      icon,
		UserID:    &userID,
		IsDefault: false,
	}

	if err := s.categoryRepo.Create(category); err != nil {
		return nil, err
	}

	return category, nil
}

// List retrieves categories with optional name filtering
func (s *CategoryService) List(req *ListCategoriesRequest) ([]models.Category, int64, error) {
	return s.categoryRepo.ListPaginated(req.Search, req.Page, req.Limit)
}

// Get retrieves a category the user may see: their own or a default.
// Absence and access denial are indistinguishable.
func (s *CategoryService) Get(userID, categoryID uint) (*models.Category, error) {
	category, err := s.categoryRepo.GetVisible(categoryID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return category, nil
}

// Update applies the provided fields to an owned, non-default category
func (s *CategoryService) Update(userID, categoryID uint, req *UpdateCategoryRequest) (*models.Category, error) {
	updates := map[string]interface{}{}
	if name := strings.TrimSpace(req.Name); name != "" {
		updates["name"] = name
	}
	if req.Type != "" {
		if !req.Type.Valid() {
			return nil, ErrCategoryInput
		}
		updates["type"] = req.Type
	}
	if req.Color != "" {
		updates["color"] = req.Color
	}
	if req.Icon != "" {
		updates["icon"] = req.Icon
	}

	if len(updates) == 0 {
		return nil, ErrNoCategoryUpdate
	}

	category, err := s.categoryRepo.UpdateOwnedFields(categoryID, userID, updates)
	if err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return category, nil
}

// Delete removes an owned, non-default category.
//
// TODO: reject deletion while transactions still reference the category.
func (s *CategoryService) Delete(userID, categoryID uint) error {
	err := s.categoryRepo.DeleteOwned(categoryID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return ErrCategoryNotFound
		}
		return err
	}
	return nil
}

// SeedDefaults inserts the builtin shared categories when none exist yet
func (s *CategoryService) SeedDefaults() error {
	count, err := s.categoryRepo.CountDefaults()
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	defaults := []models.Category{
		{Name: "Salary", Type: models.TypeIncome, Color: "#2E7D32", Icon: "briefcase", IsDefault: true},
		{Name: "Other Income", Type: models.TypeIncome, Color: "#66BB6A", Icon: "plus-circle", IsDefault: true},
		{Name: "Food", Type: models.TypeExpense, Color: "#EF6C00", Icon: "utensils", IsDefault: true},
		{Name: "Transport", Type: models.TypeExpense, Color: "#1565C0", Icon: "bus", IsDefault: true},
		{Name: "Housing", Type: models.TypeExpense, Color: "#6A1B9A", Icon: "home", IsDefault: true},
		{Name: "Other Expense", Type: models.TypeExpense, Color: "#757575", Icon: "minus-circle", IsDefault: true},
	}

	return s.categoryRepo.CreateBatch(defaults)
}
