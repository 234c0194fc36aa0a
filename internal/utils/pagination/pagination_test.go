package pagination

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFromRequest(t *testing.T) {
	tests := []struct {
		query string
		want  Pagination
	}{
		{"", Pagination{Page: 1, PerPage: DefaultPerPage, Offset: 0}},
		{"?page=3&per_page=10", Pagination{Page: 3, PerPage: 10, Offset: 20}},
		{"?page=0&per_page=-2", Pagination{Page: 1, PerPage: DefaultPerPage, Offset: 0}},
		{"?page=abc&per_page=1000", Pagination{Page: 1, PerPage: MaxPerPage, Offset: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			var got Pagination
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error {
				got = ParseFromRequest(c)
				return nil
			})
			_, err := app.Test(httptest.NewRequest("GET", "/"+tt.query, nil))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLastPage(t *testing.T) {
	assert.EqualValues(t, 1, Pagination{PerPage: 15}.LastPage())
	assert.EqualValues(t, 1, Pagination{PerPage: 15, Total: 15}.LastPage())
	assert.EqualValues(t, 2, Pagination{PerPage: 15, Total: 16}.LastPage())

	meta := Pagination{Page: 2, PerPage: 10, Total: 35}.Meta()
	assert.Equal(t, int64(4), meta["last_page"])
	assert.Equal(t, int64(35), meta["total"])
}
