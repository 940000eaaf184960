package repository

import (
	"errors"
	"strings"

	"github.com/finance-tracker/internal/models"
	"gorm.io/gorm"
)

var (
	ErrCategoryNotFound = errors.New("category not found")
)

// CategoryRepository handles category data access
type CategoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new CategoryRepository
func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// Create creates a new category
func (r *CategoryRepository) Create(category *models.Category) error {
	return r.db.Create(category).Error
}

// GetByID retrieves a category by ID regardless of ownership
func (r *CategoryRepository) GetByID(id uint) (*models.Category, error) {
	var category models.Category
	result := r.db.First(&category, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, result.Error
	}
	return &category, nil
}

// GetVisible retrieves a category the user may see: their own or a
// shared default
func (r *CategoryRepository) GetVisible(id, userID uint) (*models.Category, error) {
	var category models.Category
	result := r.db.Preload("User").
		Where("id = ? AND (user_id = ? OR is_default = ?)", id, userID, true).
		First(&category)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, result.Error
	}
	return &category, nil
}

// GetVisibleByType retrieves a visible category that also matches the
// given transaction type
func (r *CategoryRepository) GetVisibleByType(id, userID uint, txType models.TransactionType) (*models.Category, error) {
	var category models.Category
	result := r.db.
		Where("id = ? AND type = ? AND (user_id = ? OR is_default = ?)", id, txType, userID, true).
		First(&category)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, result.Error
	}
	return &category, nil
}

// ExistsByNameAndOwner checks whether the owner already has a category
// with this exact name
func (r *CategoryRepository) ExistsByNameAndOwner(name string, userID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Category{}).
		Where("name = ? AND user_id = ?", name, userID).
		Count(&count).Error
	return count > 0, err
}

// ListPaginated retrieves categories with an optional case-insensitive
// name filter, sorted by name
func (r *CategoryRepository) ListPaginated(search string, page, limit int) ([]models.Category, int64, error) {
	var categories []models.Category
	var total int64

	query := r.db.Model(&models.Category{})
	if search != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(search)+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	result := query.Preload("User").
		Order("name ASC").
		Offset(offset).
		Limit(limit).
		Find(&categories)

	if result.Error != nil {
		return nil, 0, result.Error
	}

	return categories, total, nil
}

// UpdateOwnedFields applies a partial update to a user-owned, non-default
// category. Returns ErrCategoryNotFound when no such category exists,
// whether because it is absent, owned by someone else, or a default.
func (r *CategoryRepository) UpdateOwnedFields(id, userID uint, updates map[string]interface{}) (*models.Category, error) {
	result := r.db.Model(&models.Category{}).
		Where("id = ? AND user_id = ? AND is_default = ?", id, userID, false).
		Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrCategoryNotFound
	}
	return r.GetByID(id)
}

// DeleteOwned deletes a user-owned, non-default category
func (r *CategoryRepository) DeleteOwned(id, userID uint) error {
	result := r.db.
		Where("id = ? AND user_id = ? AND is_default = ?", id, userID, false).
		Delete(&models.Category{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

// CountDefaults counts the shared default categories
func (r *CategoryRepository) CountDefaults() (int64, error) {
	var count int64
	err := r.db.Model(&models.Category{}).Where("is_default = ?", true).Count(&count).Error
	return count, err
}

// CreateBatch inserts multiple categories at once
func (r *CategoryRepository) CreateBatch(categories []models.Category) error {
	return r.db.Create(&categories).Error
}
