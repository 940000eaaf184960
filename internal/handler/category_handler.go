package handler

import (
	"errors"

	"github.com/finance-tracker/internal/middleware"
	"github.com/finance-tracker/internal/service"
	"github.com/finance-tracker/pkg/response"
	"github.com/gin-gonic/gin"
)

// CategoryHandler handles category API requests
type CategoryHandler struct {
	categoryService *service.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categoryService *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{
		categoryService: categoryService,
	}
}

// Create handles category creation
// POST /categories
func (h *CategoryHandler) Create(c *gin.Context) {
	var req service.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	category, err := h.categoryService.Create(middleware.GetUserID(c), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCategoryInput), errors.Is(err, service.ErrCategoryExists):
			response.BadRequest(c, err.Error())
		default:
			response.InternalError(c, "failed to create category", err)
		}
		return
	}

	response.Created(c, "category created successfully", category)
}

// List handles paginated category listing with an optional name filter
// GET /categories
func (h *CategoryHandler) List(c *gin.Context) {
	page, limit := parsePagination(c)

	req := &service.ListCategoriesRequest{
		Search: c.Query("search"),
		Page:   page,
		Limit:  limit,
	}

	categories, total, err := h.categoryService.List(req)
	if err != nil {
		response.InternalError(c, "failed to fetch categories", err)
		return
	}

	response.Paginated(c, categories, len(categories), total, page, limit)
}

// Get handles fetching a single owned-or-default category
// GET /categories/:id
func (h *CategoryHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		response.BadRequest(c, "invalid category ID format")
		return
	}

	category, err := h.categoryService.Get(middleware.GetUserID(c), id)
	if err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			response.NotFound(c, err.Error())
			return
		}
		response.InternalError(c, "failed to fetch category", err)
		return
	}

	response.OK(c, "", category)
}

// Update handles updating an owned, non-default category
// PUT /categories/:id
func (h *CategoryHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		response.BadRequest(c, "invalid category ID format")
		return
	}

	var req service.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	category, err := h.categoryService.Update(middleware.GetUserID(c), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoCategoryUpdate), errors.Is(err, service.ErrCategoryInput):
			response.BadRequest(c, err.Error())
		case errors.Is(err, service.ErrCategoryNotFound):
			response.NotFound(c, "category not found or cannot be updated")
		default:
			response.InternalError(c, "failed to update category", err)
		}
		return
	}

	response.OK(c, "category updated successfully", category)
}

// Delete handles deleting an owned, non-default category
// DELETE /categories/:id
func (h *CategoryHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		response.BadRequest(c, "invalid category ID format")
		return
	}

	err := h.categoryService.Delete(middleware.GetUserID(c), id)
	if err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			response.NotFound(c, "category not found or cannot be deleted")
			return
		}
		response.InternalError(c, "failed to delete category", err)
		return
	}

	response.OK(c, "category deleted successfully", nil)
}

// RegisterRoutes registers category routes, all behind authentication
func (h *CategoryHandler) RegisterRoutes(rg *gin.RouterGroup, authMiddleware gin.HandlerFunc) {
	categories := rg.Group("/categories", authMiddleware)
	{
		audit := middleware.AuditLoggerMiddleware()
		categories.POST("", audit, h.Create)
		categories.GET("", h.List)
		categories.GET("/:id", h.Get)
		categories.PUT("/:id", audit, h.Update)
		categories.DELETE("/:id", audit, h.Delete)
	}
}
