package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	defaultPage  = 1
	defaultLimit = 10
)

// parsePagination reads page/limit query params, falling back to the
// defaults on anything missing or non-positive
func parsePagination(c *gin.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", ""))
	if page < 1 {
		page = defaultPage
	}
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", ""))
	if limit < 1 {
		limit = defaultLimit
	}
	return page, limit
}

// parseIDParam parses the :id path parameter as an unsigned integer
func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
