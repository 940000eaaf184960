package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Body is the standard API response envelope
type Body struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Token   string      `json:"token,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// OK sends a 200 response
func OK(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Body{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Created sends a 201 response
func Created(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, Body{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// WithToken sends a response carrying a bearer token alongside the data
func WithToken(c *gin.Context, status int, message string, data interface{}, token string) {
	c.JSON(status, Body{
		Success: true,
		Message: message,
		Data:    data,
		Token:   token,
	})
}

// Fail sends an error response
func Fail(c *gin.Context, status int, message string) {
	c.JSON(status, Body{
		Success: false,
		Message: message,
	})
}

// BadRequest sends a 400 error response
func BadRequest(c *gin.Context, message string) {
	Fail(c, http.StatusBadRequest, message)
}

// Unauthorized sends a 401 error response
func Unauthorized(c *gin.Context, message string) {
	Fail(c, http.StatusUnauthorized, message)
}

// Forbidden sends a 403 error response
func Forbidden(c *gin.Context, message string) {
	Fail(c, http.StatusForbidden, message)
}

// NotFound sends a 404 error response
func NotFound(c *gin.Context, message string) {
	Fail(c, http.StatusNotFound, message)
}

// TooManyRequests sends a 429 error response
func TooManyRequests(c *gin.Context, message string) {
	Fail(c, http.StatusTooManyRequests, message)
}

// InternalError sends a 500 error response. The underlying error detail
// is exposed only in debug mode.
func InternalError(c *gin.Context, message string, err error) {
	body := Body{
		Success: false,
		Message: message,
	}
	if err != nil && gin.IsDebugging() {
		body.Error = err.Error()
	}
	c.JSON(http.StatusInternalServerError, body)
}

// Page is the paginated response envelope shared by every list endpoint
type Page struct {
	Success bool        `json:"success"`
	Count   int         `json:"count"`
	Total   int64       `json:"total"`
	Page    int         `json:"page"`
	Pages   int         `json:"pages"`
	Data    interface{} `json:"data"`
}

// Paginated sends a 200 paginated response
func Paginated(c *gin.Context, data interface{}, count int, total int64, page, limit int) {
	pages := int(total) / limit
	if int(total)%limit > 0 {
		pages++
	}

	c.JSON(http.StatusOK, Page{
		Success: true,
		Count:   count,
		Total:   total,
		Page:    page,
		Pages:   pages,
		Data:    data,
	})
}
