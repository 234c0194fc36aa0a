package pagination

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

const (
	DefaultPerPage = 15
	MaxPerPage     = 100
)

type Pagination struct {
	Page    int
	PerPage int
	Offset  int
	Total   int64
}

// ParseFromRequest reads the page and per_page query parameters, falling
// back to the defaults on missing or invalid values.
func ParseFromRequest(c *fiber.Ctx) Pagination {
	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	perPage, err := strconv.Atoi(c.Query("per_page", strconv.Itoa(DefaultPerPage)))
	if err != nil || perPage < 1 {
		perPage = DefaultPerPage
	}
	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}
	return Pagination{
		Page:    page,
		PerPage: perPage,
		Offset:  (page - 1) * perPage,
	}
}

// LastPage is at least 1, even for an empty result.
func (p Pagination) LastPage() int64 {
	if p.Total == 0 {
		return 1
	}
	last := p.Total / int64(p.PerPage)
	if p.Total%int64(p.PerPage) > 0 {
		last++
	}
	return last
}

// Meta describes the page for the response envelope.
func (p Pagination) Meta() fiber.Map {
	return fiber.Map{
		"current_page": p.Page,
		"per_page":     p.PerPage,
		"total":        p.Total,
		"last_page":    p.LastPage(),
	}
}
