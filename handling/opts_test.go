package handling

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseProductListOptions(t *testing.T) {
	t.Run("full query string", func(t *testing.T) {
		colorId := uuid.New()
		r := httptest.NewRequest("GET",
			"/products?page=2&page_size=12&search=jacket&category=outerwear"+
				"&color_id="+colorId.String()+
				"&min_price=5000&max_price=25000&in_stock=true"+
				"&sort_by=price&sort_desc=true", nil)

		opts, err := ParseProductListOptions(r)
		require.NoError(t, err)

		assert.Equal(t, 2, opts.Page)
		assert.Equal(t, 12, opts.PageSize)
		assert.Equal(t, "jacket", opts.Search)
		assert.Equal(t, "outerwear", opts.Category)
		require.NotNil(t, opts.ColorId)
		assert.Equal(t, colorId, *opts.ColorId)
		assert.Nil(t, opts.SizeId)
		require.NotNil(t, opts.MinPrice)
		assert.Equal(t, int64(5000), *opts.MinPrice)
		require.NotNil(t, opts.MaxPrice)
		assert.Equal(t, int64(25000), *opts.MaxPrice)
		assert.True(t, opts.InStock)
		assert.Equal(t, "price", opts.SortBy)
		assert.True(t, opts.SortDesc)
	})

	t.Run("empty query yields zero options", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/products", nil)

		opts, err := ParseProductListOptions(r)
		require.NoError(t, err)
		assert.Zero(t, opts.Page)
		assert.Empty(t, opts.Search)
	})

	t.Run("rejects malformed values", func(t *testing.T) {
		for _, target := range []string{
			"/products?page=abc",
			"/products?min_price=cheap",
			"/products?in_stock=maybe",
			"/products?color_id=not-a-uuid",
		} {
			r := httptest.NewRequest("GET", target, nil)
			_, err := ParseProductListOptions(r)
			assert.Error(t, err, target)
		}
	})
}

func TestParseOrderListOptions(t *testing.T) {
	r := httptest.NewRequest("GET",
		"/admin/orders?page=3&page_size=50&status=pending&payment_status=paid&search=ORD-", nil)

	opts, err := ParseOrderListOptions(r)
	require.NoError(t, err)

	assert.Equal(t, 3, opts.Page)
	assert.Equal(t, 50, opts.PageSize)
	assert.Equal(t, "pending", opts.Status)
	assert.Equal(t, "paid", opts.PaymentStatus)
	assert.Equal(t, "ORD-", opts.Search)
}

func TestParseActivityListOptions(t *testing.T) {
	t.Run("with time window", func(t *testing.T) {
		r := httptest.NewRequest("GET",
			"/admin/activities?action_type=update&from=2026-01-01T00:00:00Z&to=2026-02-01T00:00:00Z", nil)

		opts, err := ParseActivityListOptions(r)
		require.NoError(t, err)

		assert.Equal(t, "update", opts.ActionType)
		require.NotNil(t, opts.From)
		assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), opts.From.UTC())
		require.NotNil(t, opts.To)
	})

	t.Run("rejects bad timestamps", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/admin/activities?from=yesterday", nil)
		_, err := ParseActivityListOptions(r)
		assert.Error(t, err)
	})
}

func TestParseReportOptions(t *testing.T) {
	t.Run("defaults to last 30 days", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/admin/reports?type=sales", nil)

		opts, err := ParseReportOptions(r)
		require.NoError(t, err)

		assert.Equal(t, "sales", opts.Type)
		assert.WithinDuration(t, time.Now(), opts.To, time.Minute)
		assert.WithinDuration(t, time.Now().AddDate(0, 0, -30), opts.From, time.Minute)
	})

	t.Run("explicit window", func(t *testing.T) {
		r := httptest.NewRequest("GET",
			"/admin/reports?type=products&from=2026-03-01T00:00:00Z&to=2026-03-31T00:00:00Z", nil)

		opts, err := ParseReportOptions(r)
		require.NoError(t, err)

		assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), opts.From.UTC())
		assert.Equal(t, time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC), opts.To.UTC())
	})
}

func TestParsePagination(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/orders", nil)
		page, pageSize := ParsePagination(r)
		assert.Equal(t, 1, page)
		assert.Equal(t, 20, pageSize)
	})

	t.Run("explicit values", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/orders?page=4&page_size=10", nil)
		page, pageSize := ParsePagination(r)
		assert.Equal(t, 4, page)
		assert.Equal(t, 10, pageSize)
	})

	t.Run("ignores garbage and non-positive values", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/orders?page=-1&page_size=zero", nil)
		page, pageSize := ParsePagination(r)
		assert.Equal(t, 1, page)
		assert.Equal(t, 20, pageSize)
	})
}
