package handler

import (
	"errors"
	"net/http"

	"github.com/finance-tracker/internal/middleware"
	"github.com/finance-tracker/internal/models"
	"github.com/finance-tracker/internal/service"
	"github.com/finance-tracker/pkg/response"
	"github.com/gin-gonic/gin"
)

// AuthHandler handles registration, login, and profile API requests
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

func profilePayload(user *models.User) gin.H {
	return gin.H{
		"id":    user.ID,
		"name":  user.Name,
		"email": user.Email,
		"role":  user.Role,
	}
}

// Register handles user registration
// POST /register
func (h *AuthHandler) Register(c *gin.Context) {
	var req service.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	user, token, err := h.authService.Register(&req)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			response.BadRequest(c, err.Error())
			return
		}
		response.InternalError(c, "failed to register user", err)
		return
	}

	response.WithToken(c, http.StatusCreated, "user registered successfully", profilePayload(user), token)
}

// Login handles user login
// POST /login
func (h *AuthHandler) Login(c *gin.Context) {
	var req service.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	user, token, err := h.authService.Login(&req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			response.BadRequest(c, err.Error())
			return
		}
		response.InternalError(c, "failed to login", err)
		return
	}

	response.WithToken(c, http.StatusOK, "login successful", profilePayload(user), token)
}

// Logout acknowledges logout; tokens are stateless so the server keeps
// nothing to clear
// POST /logout
func (h *AuthHandler) Logout(c *gin.Context) {
	response.OK(c, "logged out successfully, discard the token client-side", nil)
}

// Me returns the current user's profile
// GET /me
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.authService.GetUserByID(middleware.GetUserID(c))
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.NotFound(c, err.Error())
			return
		}
		response.InternalError(c, "failed to fetch profile", err)
		return
	}

	response.OK(c, "", user)
}

// UpdateProfile updates name, avatar, and currency for the current user
// PUT /me
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	var req service.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	user, err := h.authService.UpdateProfile(middleware.GetUserID(c), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoProfileUpdates):
			response.BadRequest(c, err.Error())
		case errors.Is(err, service.ErrUserNotFound):
			response.NotFound(c, err.Error())
		default:
			response.InternalError(c, "failed to update profile", err)
		}
		return
	}

	response.OK(c, "profile updated successfully", user)
}

// ListUsers returns a paginated user listing for admins
// GET /users
func (h *AuthHandler) ListUsers(c *gin.Context) {
	page, limit := parsePagination(c)

	req := &service.ListUsersRequest{
		Search: c.Query("search"),
		Role:   models.Role(c.Query("role")),
		Page:   page,
		Limit:  limit,
	}

	users, total, err := h.authService.ListUsers(req)
	if err != nil {
		response.InternalError(c, "failed to fetch users", err)
		return
	}

	response.Paginated(c, users, len(users), total, page, limit)
}

// RegisterRoutes registers user and auth routes
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup, authMiddleware, rateLimiter gin.HandlerFunc) {
	rg.POST("/register", rateLimiter, h.Register)
	rg.POST("/login", rateLimiter, h.Login)

	protected := rg.Group("", authMiddleware)
	{
		protected.POST("/logout", h.Logout)
		protected.GET("/me", h.Me)
		protected.PUT("/me", h.UpdateProfile)
		protected.GET("/users", middleware.AdminOnly(), h.ListUsers)
	}
}
