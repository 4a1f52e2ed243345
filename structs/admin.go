package structs

import "time"

// ActivityListOptions carries parsed activity log query parameters
type ActivityListOptions struct {
	Page       int
	PageSize   int
	ActionType string
	UserId     string
	From       *time.Time
	To         *time.Time
}

// ReportOptions carries parsed reporting query parameters
type ReportOptions struct {
	Type string
	From time.Time
	To   time.Time
}

// SalesReportRow is one bucket of the sales report
type SalesReportRow struct {
	Day        time.Time `json:"day" bun:"day"`
	OrderCount int       `json:"order_count" bun:"order_count"`
	Revenue    int64     `json:"revenue" bun:"revenue"`
}

// ProductPerformanceRow aggregates units and revenue per product
type ProductPerformanceRow struct {
	ProductName string `json:"product_name" bun:"product_name"`
	UnitsSold   int    `json:"units_sold" bun:"units_sold"`
	Revenue     int64  `json:"revenue" bun:"revenue"`
}

// UserActivityRow aggregates registrations and orders per day
type UserActivityRow struct {
	Day           time.Time `json:"day" bun:"day"`
	Registrations int       `json:"registrations" bun:"registrations"`
	OrdersPlaced  int       `json:"orders_placed" bun:"orders_placed"`
}
