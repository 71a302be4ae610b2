package utils_test

import (
	"net/http/httptest"
	"testing"

	"scholaria/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseFor(t *testing.T, target string) (page, limit int) {
	t.Helper()

	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		page, limit = utils.ParsePagination(c)
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest("GET", target, nil))
	require.NoError(t, err)
	resp.Body.Close()
	return page, limit
}

func TestParsePagination(t *testing.T) {
	page, limit := parseFor(t, "/")
	assert.Equal(t, 1, page)
	assert.Equal(t, 10, limit)

	page, limit = parseFor(t, "/?page=3&limit=25")
	assert.Equal(t, 3, page)
	assert.Equal(t, 25, limit)

	// Nonsense values fall back to the defaults
	page, limit = parseFor(t, "/?page=-2&limit=0")
	assert.Equal(t, 1, page)
	assert.Equal(t, 10, limit)

	page, limit = parseFor(t, "/?page=abc&limit=xyz")
	assert.Equal(t, 1, page)
	assert.Equal(t, 10, limit)
}

func TestPaginationMeta(t *testing.T) {
	meta := utils.PaginationMeta(2, 10, 35)
	assert.Equal(t, 2, meta["page"])
	assert.Equal(t, 10, meta["limit"])
	assert.Equal(t, int64(35), meta["total"])
	assert.Equal(t, 4, meta["pages"], "pages rounds up")

	meta = utils.PaginationMeta(1, 10, 0)
	assert.Equal(t, 0, meta["pages"])

	meta = utils.PaginationMeta(1, 10, 10)
	assert.Equal(t, 1, meta["pages"])
}
