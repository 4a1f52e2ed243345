package handling

import (
	"net/http"
	"strconv"
	"time"

	"fairfoul_server/structs"

	"github.com/google/uuid"
)

// ParseProductListOptions parses HTTP query parameters into ProductListOptions
func ParseProductListOptions(r *http.Request) (*structs.ProductListOptions, error) {
	query := r.URL.Query()

	opts := &structs.ProductListOptions{}
	if len(query) == 0 {
		return opts, nil
	}

	var err error
	var valInt int
	var val64 int64
	var valBool bool

	// Parse pagination parameters
	if page := query.Get("page"); page != "" {
		if valInt, err = strconv.Atoi(page); err != nil {
			return nil, err
		}
		opts.Page = valInt
	}

	if pageSize := query.Get("page_size"); pageSize != "" {
		if valInt, err = strconv.Atoi(pageSize); err != nil {
			return nil, err
		}
		opts.PageSize = valInt
	}

	if searchTerm := query.Get("search"); searchTerm != "" {
		opts.Search = searchTerm
	}

	if category := query.Get("category"); category != "" {
		opts.Category = category
	}

	// Variant filters
	if colorId := query.Get("color_id"); colorId != "" {
		id, err := uuid.Parse(colorId)
		if err != nil {
			return nil, err
		}
		opts.ColorId = &id
	}

	if sizeId := query.Get("size_id"); sizeId != "" {
		id, err := uuid.Parse(sizeId)
		if err != nil {
			return nil, err
		}
		opts.SizeId = &id
	}

	// Parse price filters (cents)
	if minPrice := query.Get("min_price"); minPrice != "" {
		if val64, err = strconv.ParseInt(minPrice, 10, 64); err != nil {
			return nil, err
		}
		opts.MinPrice = &val64
	}

	if maxPrice := query.Get("max_price"); maxPrice != "" {
		if val64, err = strconv.ParseInt(maxPrice, 10, 64); err != nil {
			return nil, err
		}
		opts.MaxPrice = &val64
	}

	if inStock := query.Get("in_stock"); inStock != "" {
		if valBool, err = strconv.ParseBool(inStock); err != nil {
			return nil, err
		}
		opts.InStock = valBool
	}

	// Parse sorting parameters
	if sortBy := query.Get("sort_by"); sortBy != "" {
		opts.SortBy = sortBy
	}

	if sortDesc := query.Get("sort_desc"); sortDesc != "" {
		if valBool, err = strconv.ParseBool(sortDesc); err != nil {
			return nil, err
		}
		opts.SortDesc = valBool
	}

	return opts, nil
}

// ParseOrderListOptions parses HTTP query parameters into OrderListOptions
func ParseOrderListOptions(r *http.Request) (*structs.OrderListOptions, error) {
	query := r.URL.Query()

	opts := &structs.OrderListOptions{}

	var err error
	var valInt int

	if page := query.Get("page"); page != "" {
		if valInt, err = strconv.Atoi(page); err != nil {
			return nil, err
		}
		opts.Page = valInt
	}

	if pageSize := query.Get("page_size"); pageSize != "" {
		if valInt, err = strconv.Atoi(pageSize); err != nil {
			return nil, err
		}
		opts.PageSize = valInt
	}

	opts.Status = query.Get("status")
	opts.PaymentStatus = query.Get("payment_status")
	opts.Search = query.Get("search")

	return opts, nil
}

// ParseActivityListOptions parses HTTP query parameters into ActivityListOptions
func ParseActivityListOptions(r *http.Request) (*structs.ActivityListOptions, error) {
	query := r.URL.Query()

	opts := &structs.ActivityListOptions{}

	var err error
	var valInt int

	if page := query.Get("page"); page != "" {
		if valInt, err = strconv.Atoi(page); err != nil {
			return nil, err
		}
		opts.Page = valInt
	}

	if pageSize := query.Get("page_size"); pageSize != "" {
		if valInt, err = strconv.Atoi(pageSize); err != nil {
			return nil, err
		}
		opts.PageSize = valInt
	}

	opts.ActionType = query.Get("action_type")
	opts.UserId = query.Get("user_id")

	if from := query.Get("from"); from != "" {
		t, err := time.Parse(time.RFC3339, from)
		if err != nil {
			return nil, err
		}
		opts.From = &t
	}

	if to := query.Get("to"); to != "" {
		t, err := time.Parse(time.RFC3339, to)
		if err != nil {
			return nil, err
		}
		opts.To = &t
	}

	return opts, nil
}

// ParseReportOptions parses HTTP query parameters into ReportOptions.
// The window defaults to the last 30 days when from/to are omitted.
func ParseReportOptions(r *http.Request) (*structs.ReportOptions, error) {
	query := r.URL.Query()

	opts := &structs.ReportOptions{
		Type: query.Get("type"),
		From: time.Now().AddDate(0, 0, -30),
		To:   time.Now(),
	}

	if from := query.Get("from"); from != "" {
		t, err := time.Parse(time.RFC3339, from)
		if err != nil {
			return nil, err
		}
		opts.From = t
	}

	if to := query.Get("to"); to != "" {
		t, err := time.Parse(time.RFC3339, to)
		if err != nil {
			return nil, err
		}
		opts.To = t
	}

	return opts, nil
}

// ParsePagination reads page/page_size with sane fallbacks for simple list endpoints
func ParsePagination(r *http.Request) (page, pageSize int) {
	page = 1
	pageSize = 20

	if pageStr := r.URL.Query().Get("page"); pageStr != "" {
		if val, err := strconv.Atoi(pageStr); err == nil && val > 0 {
			page = val
		}
	}

	if pageSizeStr := r.URL.Query().Get("page_size"); pageSizeStr != "" {
		if val, err := strconv.Atoi(pageSizeStr); err == nil && val > 0 {
			pageSize = val
		}
	}

	return page, pageSize
}
