package pagination

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEnvelope(t *testing.T) {
	params := &Params{Page: 2, PageSize: 10}

	envelope := NewEnvelope([]string{"a"}, params, 35)

	assert.Equal(t, int64(35), envelope.Count)
	assert.Equal(t, 2, envelope.CurrentPage)
	assert.Equal(t, 4, envelope.TotalPages)
	assert.True(t, envelope.HasNext)
	assert.True(t, envelope.HasPrevious)
	assert.Equal(t, 10, envelope.PageSize)
}

func TestNewEnvelopeInvariants(t *testing.T) {
	cases := []struct {
		page        int
		pageSize    int
		total       int64
		hasNext     bool
		hasPrevious bool
	}{
		{1, 10, 0, false, false},
		{1, 10, 10, false, false},
		{1, 10, 11, true, false},
		{2, 10, 11, false, true},
		{3, 5, 100, true, true},
	}

	for _, tc := range cases {
		envelope := NewEnvelope(nil, &Params{Page: tc.page, PageSize: tc.pageSize}, tc.total)

		// has_next == (current_page < total_pages), has_previous == (current_page > 1)
		assert.Equal(t, tc.hasNext, envelope.HasNext, "page=%d size=%d total=%d", tc.page, tc.pageSize, tc.total)
		assert.Equal(t, tc.hasPrevious, envelope.HasPrevious, "page=%d size=%d total=%d", tc.page, tc.pageSize, tc.total)
		assert.Equal(t, envelope.HasNext, envelope.CurrentPage < envelope.TotalPages)
		assert.Equal(t, envelope.HasPrevious, envelope.CurrentPage > 1)
	}
}

func TestGetParams(t *testing.T) {
	app := fiber.New()

	var got *Params
	app.Get("/", func(c *fiber.Ctx) error {
		got = GetParams(c)
		return c.SendStatus(fiber.StatusOK)
	})

	cases := []struct {
		query    string
		page     int
		pageSize int
		offset   int
	}{
		{"", 1, 10, 0},
		{"?page=3&page_size=20", 3, 20, 40},
		{"?page=0&page_size=-5", 1, 10, 0},
		{"?page_size=9999", 1, 100, 0}, // capped at MaxPageSize
		{"?page=abc", 1, 10, 0},
	}

	for _, tc := range cases {
		req := httptest.NewRequest("GET", "/"+tc.query, nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		resp.Body.Close()

		assert.Equal(t, tc.page, got.Page, "query %q", tc.query)
		assert.Equal(t, tc.pageSize, got.PageSize, "query %q", tc.query)
		assert.Equal(t, tc.offset, got.Offset, "query %q", tc.query)
	}
}
