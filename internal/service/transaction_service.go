package service

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/finance-tracker/internal/models"
	"github.com/finance-tracker/internal/repository"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidAmount       = errors.New("a valid positive amount is required")
	ErrInvalidType         = errors.New("valid type (expense/income) is required")
	ErrCategoryRequired    = errors.New("category is required")
	ErrInvalidDate         = errors.New("invalid date format")
	ErrInvalidStartDate    = errors.New("invalid start date format")
	ErrInvalidEndDate      = errors.New("invalid end date format")
	ErrCategoryMismatch    = errors.New("category not found or type mismatch")
	ErrTypeMismatch        = errors.New("type must match category type")
	ErrTransactionNotFound = errors.New("transaction not found or access denied")
)

// dateFormats are the accepted date layouts, tried in order
var dateFormats = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func parseDate(value string) (time.Time, error) {
	for _, layout := range dateFormats {
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrInvalidDate
}

// endOfDay pins a parsed end date to 23:59:59.999 so the day is
// included in range filters regardless of any time component supplied
func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 999_000_000, t.Location())
}

func roundAmount(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

// TransactionService handles transaction CRUD and aggregation. It reads
// the category store to enforce that a transaction's type always matches
// its category's type.
type TransactionService struct {
	transactionRepo *repository.TransactionRepository
	categoryRepo    *repository.CategoryRepository
}

// NewTransactionService creates a new TransactionService
func NewTransactionService(
	transactionRepo *repository.TransactionRepository,
	categoryRepo *repository.CategoryRepository,
) *TransactionService {
	return &TransactionService{
		transactionRepo: transactionRepo,
		categoryRepo:    categoryRepo,
	}
}

// CreateTransactionRequest represents the transaction creation request.
// Amount is bound as a decimal so fractional digits survive exactly as
// sent before rounding.
type CreateTransactionRequest struct {
	Amount      decimal.Decimal        `json:"amount"`
	Description string                 `json:"description"`
	Date        string                 `json:"date"`
	Type        models.TransactionType `json:"type"`
	Category    uint                   `json:"category"`
}

// UpdateTransactionRequest represents the transaction update request.
// Amount and description distinguish absent from zero-valued; the other
// fields treat their zero value as absent.
type UpdateTransactionRequest struct {
	Amount      *decimal.Decimal       `json:"amount"`
	Description *string                `json:"description"`
	Date        string                 `json:"date"`
	Type        models.TransactionType `json:"type"`
	Category    uint                   `json:"category"`
}

// ListTransactionsRequest represents the transaction listing request
type ListTransactionsRequest struct {
	StartDate string
	EndDate   string
	Category  string
	Type      string
	Page      int
	Limit     int
}

// SummaryRequest represents the summary request
type SummaryRequest struct {
	StartDate string
	EndDate   string
	Category  string
}

// Create validates and persists a new transaction owned by the user.
// Validation order: amount, type, category presence, date, then the
// combined category visibility and type-match lookup.
func (s *TransactionService) Create(userID uint, req *CreateTransactionRequest) (*models.Transaction, error) {
	if !req.Amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	if !req.Type.Valid() {
		return nil, ErrInvalidType
	}
	if req.Category == 0 {
		return nil, ErrCategoryRequired
	}

	date := time.Now()
	if req.Date != "" {
		parsed, err := parseDate(req.Date)
		if err != nil {
			return nil, ErrInvalidDate
		}
		date = parsed
	}

	// One lookup covers both visibility (owner or default) and the
	// type-match invariant; callers cannot tell the failure modes apart.
	if _, err := s.categoryRepo.GetVisibleByType(req.Category, userID, req.Type); err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return nil, ErrCategoryMismatch
		}
		return nil, err
	}

	txn := &models.Transaction{
		Amount:      roundAmount(req.Amount),
		Description: strings.TrimSpace(req.Description),
		Date:        date,
		Type:        req.Type,
		CategoryID:  req.Category,
		UserID:      userID,
	}

	if err := s.transactionRepo.Create(txn); err != nil {
		return nil, err
	}

	return s.transactionRepo.GetWithRelations(txn.ID)
}

// buildFilter translates list/summary query inputs into a repository
// filter, validating each date independently and resolving the category
// under the owner-or-default rule
func (s *TransactionService) buildFilter(userID uint, startDate, endDate, category string) (repository.TransactionFilter, error) {
	filter := repository.TransactionFilter{UserID: userID}

	if startDate != "" {
		start, err := parseDate(startDate)
		if err != nil {
			return filter, ErrInvalidStartDate
		}
		filter.StartDate = &start
	}
	if endDate != "" {
		end, err := parseDate(endDate)
		if err != nil {
			return filter, ErrInvalidEndDate
		}
		end = endOfDay(end)
		filter.EndDate = &end
	}

	if category != "" {
		id, err := strconv.ParseUint(category, 10, 64)
		if err != nil {
			return filter, ErrCategoryNotFound
		}
		cat, err := s.categoryRepo.GetVisible(uint(id), userID)
		if err != nil {
			if errors.Is(err, repository.ErrCategoryNotFound) {
				return filter, ErrCategoryNotFound
			}
			return filter, err
		}
		filter.CategoryID = &cat.ID
	}

	return filter, nil
}

// List retrieves the user's transactions, newest date first. An invalid
// type filter value is ignored rather than rejected.
func (s *TransactionService) List(userID uint, req *ListTransactionsRequest) ([]models.Transaction, int64, error) {
	filter, err := s.buildFilter(userID, req.StartDate, req.EndDate, req.Category)
	if err != nil {
		return nil, 0, err
	}

	if t := models.TransactionType(req.Type); t.Valid() {
		filter.Type = t
	}

	return s.transactionRepo.ListPaginated(filter, req.Page, req.Limit)
}

// Summary aggregates income, expense, balance, and count over the same
// optional date/category filters as List. An empty result is all zeros,
// never an error.
func (s *TransactionService) Summary(userID uint, req *SummaryRequest) (*repository.Summary, error) {
	filter, err := s.buildFilter(userID, req.StartDate, req.EndDate, req.Category)
	if err != nil {
		return nil, err
	}

	summary, err := s.transactionRepo.Summarize(filter)
	if err != nil {
		return nil, err
	}

	summary.Income = roundAmount(decimal.NewFromFloat(summary.Income))
	summary.Expense = roundAmount(decimal.NewFromFloat(summary.Expense))
	summary.Balance = roundAmount(decimal.NewFromFloat(summary.Balance))
	return summary, nil
}

// Update applies the supplied fields to an owned transaction. Each field
// is validated like create. When category and type arrive together they
// must agree; type alone is checked against the transaction's current
// category, and category alone against the current type. An invalid type
// value is ignored here, unlike create.
func (s *TransactionService) Update(userID, id uint, req *UpdateTransactionRequest) (*models.Transaction, error) {
	txn, err := s.transactionRepo.GetByIDAndUserID(id, userID)
	if err != nil {
		if errors.Is(err, repository.ErrTransactionNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, err
	}

	if req.Amount != nil {
		if !req.Amount.IsPositive() {
			return nil, ErrInvalidAmount
		}
		txn.Amount = roundAmount(*req.Amount)
	}

	if req.Date != "" {
		date, err := parseDate(req.Date)
		if err != nil {
			return nil, ErrInvalidDate
		}
		txn.Date = date
	}

	if req.Category != 0 {
		cat, err := s.categoryRepo.GetVisible(req.Category, userID)
		if err != nil {
			if errors.Is(err, repository.ErrCategoryNotFound) {
				return nil, ErrCategoryNotFound
			}
			return nil, err
		}
		if req.Type != "" {
			if cat.Type != req.Type {
				return nil, ErrTypeMismatch
			}
		} else if cat.Type != txn.Type {
			return nil, ErrTypeMismatch
		}
		txn.CategoryID = cat.ID
	}

	if req.Type.Valid() {
		cat, err := s.categoryRepo.GetByID(txn.CategoryID)
		if err == nil && cat.Type != req.Type {
			return nil, ErrTypeMismatch
		}
		txn.Type = req.Type
	}

	if req.Description != nil {
		txn.Description = strings.TrimSpace(*req.Description)
	}

	if err := s.transactionRepo.Update(txn); err != nil {
		return nil, err
	}

	return s.transactionRepo.GetWithRelations(txn.ID)
}

// Delete removes an owned transaction
func (s *TransactionService) Delete(userID, id uint) error {
	err := s.transactionRepo.DeleteOwned(id, userID)
	if err != nil {
		if errors.Is(err, repository.ErrTransactionNotFound) {
			return ErrTransactionNotFound
		}
		return err
	}
	return nil
}
