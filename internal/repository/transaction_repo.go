package repository

import (
	"errors"
	"time"

	"github.com/finance-tracker/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrTransactionNotFound = errors.New("transaction not found")
)

// TransactionFilter narrows transaction queries. UserID is always set;
// the remaining fields are optional.
type TransactionFilter struct {
	UserID     uint
	StartDate  *time.Time
	EndDate    *time.Time
	CategoryID *uint
	Type       models.TransactionType
}

// Summary holds aggregate totals over a set of transactions
type Summary struct {
	Income            float64 `json:"income"`
	Expense           float64 `json:"expense"`
	Balance           float64 `json:"balance"`
	TotalTransactions int64   `json:"totalTransactions"`
}

// TransactionRepository handles transaction data access
type TransactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new TransactionRepository
func NewTransactionRepository(db *gorm.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// Create creates a new transaction
func (r *TransactionRepository) Create(txn *models.Transaction) error {
	return r.db.Create(txn).Error
}

// GetByIDAndUserID retrieves a transaction owned by the user
func (r *TransactionRepository) GetByIDAndUserID(id, userID uint) (*models.Transaction, error) {
	var txn models.Transaction
	result := r.db.Where("id = ? AND user_id = ?", id, userID).First(&txn)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, result.Error
	}
	return &txn, nil
}

// GetWithRelations retrieves a transaction with category and user preloaded
func (r *TransactionRepository) GetWithRelations(id uint) (*models.Transaction, error) {
	var txn models.Transaction
	result := r.db.Preload("Category").Preload("User").First(&txn, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, result.Error
	}
	return &txn, nil
}

func applyFilter(query *gorm.DB, filter TransactionFilter) *gorm.DB {
	query = query.Where("user_id = ?", filter.UserID)
	if filter.StartDate != nil {
		query = query.Where("date >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		query = query.Where("date <= ?", *filter.EndDate)
	}
	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	return query
}

// ListPaginated retrieves transactions matching the filter, newest date first
func (r *TransactionRepository) ListPaginated(filter TransactionFilter, page, limit int) ([]models.Transaction, int64, error) {
	var txns []models.Transaction
	var total int64

	if err := applyFilter(r.db.Model(&models.Transaction{}), filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	result := applyFilter(r.db.Preload("Category").Preload("User"), filter).
		Order("date DESC").
		Offset(offset).
		Limit(limit).
		Find(&txns)

	if result.Error != nil {
		return nil, 0, result.Error
	}

	return txns, total, nil
}

// Summarize aggregates income, expense, and count over matching transactions
func (r *TransactionRepository) Summarize(filter TransactionFilter) (*Summary, error) {
	var row struct {
		Income  float64
		Expense float64
		Count   int64
	}

	err := applyFilter(r.db.Model(&models.Transaction{}), filter).
		Select(
			"COALESCE(SUM(CASE WHEN type = ? THEN amount ELSE 0 END), 0) AS income, "+
				"COALESCE(SUM(CASE WHEN type = ? THEN amount ELSE 0 END), 0) AS expense, "+
				"COUNT(*) AS count",
			models.TypeIncome, models.TypeExpense,
		).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}

	return &Summary{
		Income:            row.Income,
		Expense:           row.Expense,
		Balance:           row.Income - row.Expense,
		TotalTransactions: row.Count,
	}, nil
}

// Update saves changes to a transaction without touching its relations
func (r *TransactionRepository) Update(txn *models.Transaction) error {
	return r.db.Omit(clause.Associations).Save(txn).Error
}

// DeleteOwned deletes a transaction owned by the user
func (r *TransactionRepository) DeleteOwned(id, userID uint) error {
	result := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Transaction{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTransactionNotFound
	}
	return nil
}
