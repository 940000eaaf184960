package handler

import (
	"errors"

	"github.com/finance-tracker/internal/middleware"
	"github.com/finance-tracker/internal/service"
	"github.com/finance-tracker/pkg/response"
	"github.com/gin-gonic/gin"
)

// TransactionHandler handles transaction API requests
type TransactionHandler struct {
	transactionService *service.TransactionService
}

// NewTransactionHandler creates a new TransactionHandler
func NewTransactionHandler(transactionService *service.TransactionService) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
	}
}

// handleTransactionError maps service errors onto the HTTP surface.
// Validation failures are 400s; anything touching a record the caller
// may not see is a 404, indistinguishable from absence.
func (h *TransactionHandler) handleTransactionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidAmount),
		errors.Is(err, service.ErrInvalidType),
		errors.Is(err, service.ErrCategoryRequired),
		errors.Is(err, service.ErrInvalidDate),
		errors.Is(err, service.ErrInvalidStartDate),
		errors.Is(err, service.ErrInvalidEndDate),
		errors.Is(err, service.ErrTypeMismatch):
		response.BadRequest(c, err.Error())
	case errors.Is(err, service.ErrCategoryMismatch),
		errors.Is(err, service.ErrCategoryNotFound),
		errors.Is(err, service.ErrTransactionNotFound):
		response.NotFound(c, err.Error())
	default:
		response.InternalError(c, "transaction operation failed", err)
	}
}

// Create handles transaction creation
// POST /transactions
func (h *TransactionHandler) Create(c *gin.Context) {
	var req service.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	txn, err := h.transactionService.Create(middleware.GetUserID(c), &req)
	if err != nil {
		h.handleTransactionError(c, err)
		return
	}

	response.Created(c, "transaction added successfully", txn)
}

// List handles paginated transaction listing with date/category/type filters
// GET /transactions
func (h *TransactionHandler) List(c *gin.Context) {
	page, limit := parsePagination(c)

	req := &service.ListTransactionsRequest{
		StartDate: c.Query("startDate"),
		EndDate:   c.Query("endDate"),
		Category:  c.Query("category"),
		Type:      c.Query("type"),
		Page:      page,
		Limit:     limit,
	}

	txns, total, err := h.transactionService.List(middleware.GetUserID(c), req)
	if err != nil {
		h.handleTransactionError(c, err)
		return
	}

	response.Paginated(c, txns, len(txns), total, page, limit)
}

// Summary handles the aggregate totals request
// GET /transactions/summary
func (h *TransactionHandler) Summary(c *gin.Context) {
	req := &service.SummaryRequest{
		StartDate: c.Query("startDate"),
		EndDate:   c.Query("endDate"),
		Category:  c.Query("category"),
	}

	summary, err := h.transactionService.Summary(middleware.GetUserID(c), req)
	if err != nil {
		h.handleTransactionError(c, err)
		return
	}

	response.OK(c, "", summary)
}

// Update handles updating an owned transaction
// PUT /transactions/:id
func (h *TransactionHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		response.BadRequest(c, "invalid transaction ID format")
		return
	}

	var req service.UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	txn, err := h.transactionService.Update(middleware.GetUserID(c), id, &req)
	if err != nil {
		h.handleTransactionError(c, err)
		return
	}

	response.OK(c, "transaction updated successfully", txn)
}

// Delete handles deleting an owned transaction
// DELETE /transactions/:id
func (h *TransactionHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		response.BadRequest(c, "invalid transaction ID format")
		return
	}

	if err := h.transactionService.Delete(middleware.GetUserID(c), id); err != nil {
		h.handleTransactionError(c, err)
		return
	}

	response.OK(c, "transaction deleted successfully", gin.H{"id": id})
}

// RegisterRoutes registers transaction routes, all behind authentication
func (h *TransactionHandler) RegisterRoutes(rg *gin.RouterGroup, authMiddleware gin.HandlerFunc) {
	transactions := rg.Group("/transactions", authMiddleware)
	{
		audit := middleware.AuditLoggerMiddleware()
		transactions.POST("", audit, h.Create)
		transactions.GET("", h.List)
		transactions.GET("/summary", h.Summary)
		transactions.PUT("/:id", audit, h.Update)
		transactions.DELETE("/:id", audit, h.Delete)
	}
}
