package utils

import (
	"math"

	"github.com/gofiber/fiber/v2"
)

// ParsePagination reads page/limit query params with the standard defaults.
// Both are coerced to positive integers.
func ParsePagination(c *fiber.Ctx) (page, limit int) {
	page = c.QueryInt("page", 1)
	limit = c.QueryInt("limit", 10)
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	return page, limit
}

// PaginationMeta builds the canonical pagination block used by every list
// endpoint: {page, limit, total, pages}.
func PaginationMeta(page, limit int, total int64) fiber.Map {
	pages := 0
	if total > 0 {
		pages = int(math.Ceil(float64(total) / float64(limit)))
	}
	return fiber.Map{
		"page":  page,
		"limit": limit,
		"total": total,
		"pages": pages,
	}
}
