package services

import (
	"context"
	"errors"
	"fairfoul_server/database"
	"fairfoul_server/lib"
	"fairfoul_server/structs"
	"fairfoul_server/structs/tables"
	"time"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
)

var ErrUnknownReportType = errors.New("unknown report type")

const defaultLowStockThreshold = 5

// Revenue figures only count orders that completed the full lifecycle, so
// every aggregate below filters on the delivered status.
const (
	totalRevenueSQL = "SELECT COALESCE(SUM(total_amount), 0) AS revenue FROM orders WHERE status = ?"

	salesReportSQL = `
		SELECT date_trunc('day', created_at) AS day,
		       COUNT(*) AS order_count,
		       COALESCE(SUM(total_amount), 0) AS revenue
		FROM orders
		WHERE created_at >= ? AND created_at <= ?
		  AND status = ?
		GROUP BY 1
		ORDER BY 1`

	productPerformanceSQL = `
		SELECT oi.product_name,
		       COALESCE(SUM(oi.quantity), 0) AS units_sold,
		       COALESCE(SUM(oi.total_price), 0) AS revenue
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		WHERE o.created_at >= ? AND o.created_at <= ?
		  AND o.status = ?
		GROUP BY oi.product_name
		ORDER BY revenue DESC
		LIMIT 50`
)

type AdminService struct {
	logger *gecho.Logger
	db     *database.DB
}

func NewAdminService(logger *gecho.Logger, db *database.DB) *AdminService {
	return &AdminService{
		logger: logger,
		db:     db,
	}
}

// RecordActivity appends a row to the append-only admin activity log.
// Failures are logged but never fail the operation being recorded.
func (as *AdminService) RecordActivity(userId *uuid.UUID, action tables.AdminActionType, targetModel, targetId, description, ip string) {
	activity := &tables.AdminActivity{
		UserId:      userId,
		ActionType:  action,
		TargetModel: targetModel,
		TargetId:    targetId,
		Description: description,
		IpAddress:   ip,
	}

	if _, err := database.Query[tables.AdminActivity](as.db).Insert(context.Background(), activity); err != nil {
		as.logger.Error("Failed to record admin activity",
			gecho.Field("error", err),
			gecho.Field("action", action),
			gecho.Field("target_model", targetModel),
		)
	}
}

// ListActivities returns a filtered, paginated view of the activity log
func (as *AdminService) ListActivities(opts *structs.ActivityListOptions) (*database.PaginationResult[tables.AdminActivity], error) {
	q := database.Query[tables.AdminActivity](as.db).
		With("User").
		OrderBy("created_at", database.DESC)

	if opts.ActionType != "" {
		q = q.Where("aa.action_type", opts.ActionType)
	}
	if opts.UserId != "" {
		if userId, err := uuid.Parse(opts.UserId); err == nil {
			q = q.Where("aa.user_id", userId)
		}
	}
	if opts.From != nil {
		q = q.WhereOp("aa.created_at", ">=", *opts.From)
	}
	if opts.To != nil {
		q = q.WhereOp("aa.created_at", "<=", *opts.To)
	}

	result, err := database.Paginate(q, context.Background(), opts.Page, opts.PageSize)
	if err != nil {
		return nil, lib.MapPgError(err)
	}

	for i := range result.Data {
		if result.Data[i].User != nil {
			result.Data[i].User.PasswordHash = ""
		}
	}
	return result, nil
}

// GetActivity returns a single activity log entry
func (as *AdminService) GetActivity(id uuid.UUID) (*tables.AdminActivity, error) {
	activity, err := database.Query[tables.AdminActivity](as.db).
		With("User").
		Where("aa.id", id).
		First(context.Background())
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	if activity == nil {
		return nil, lib.ErrNotFound
	}
	if activity.User != nil {
		activity.User.PasswordHash = ""
	}
	return activity, nil
}

// GetMetrics recomputes the dashboard metrics row from live data on every
// read, upserting the single row.
func (as *AdminService) GetMetrics() (*tables.DashboardMetrics, error) {
	ctx := context.Background()

	totalOrders, err := database.Query[tables.Order](as.db).Count(ctx)
	if err != nil {
		return nil, lib.MapPgError(err)
	}

	pendingOrders, err := database.Query[tables.Order](as.db).Where("status", tables.OrderStatusPending).Count(ctx)
	if err != nil {
		return nil, lib.MapPgError(err)
	}

	type revenueRow struct {
		Revenue int64 `bun:"revenue"`
	}
	revenue, err := database.RawQueryOne[revenueRow](as.db, ctx,
		totalRevenueSQL, tables.OrderStatusDelivered)
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	var totalRevenue int64
	if revenue != nil {
		totalRevenue = revenue.Revenue
	}

	totalUsers, err := database.Query[tables.User](as.db).Count(ctx)
	if err != nil {
		return nil, lib.MapPgError(err)
	}

	startOfDay := time.Now().Truncate(24 * time.Hour)
	newUsersToday, err := database.Query[tables.User](as.db).WhereOp("created_at", ">=", startOfDay).Count(ctx)
	if err != nil {
		return nil, lib.MapPgError(err)
	}

	totalProducts, err := database.Query[tables.Product](as.db).Count(ctx)
	if err != nil {
		return nil, lib.MapPgError(err)
	}

	lowStock, err := database.Query[tables.Product](as.db).
		Where("is_active", true).
		WhereOp("stock_quantity", "<=", defaultLowStockThreshold).
		Count(ctx)
	if err != nil {
		return nil, lib.MapPgError(err)
	}

	openMessages, err := database.Query[tables.ContactMessage](as.db).
		WhereIn("status", []any{string(tables.ContactStatusNew), string(tables.ContactStatusInProgress)}).
		Count(ctx)
	if err != nil {
		return nil, lib.MapPgError(err)
	}

	metrics := &tables.DashboardMetrics{
		TotalOrders:      totalOrders,
		PendingOrders:    pendingOrders,
		TotalRevenue:     totalRevenue,
		TotalUsers:       totalUsers,
		NewUsersToday:    newUsersToday,
		TotalProducts:    totalProducts,
		LowStockProducts: lowStock,
		OpenMessages:     openMessages,
		UpdatedAt:        time.Now(),
	}

	// Persist into the single metrics row so the table mirrors the last read
	existing, err := database.Query[tables.DashboardMetrics](as.db).First(ctx)
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	if existing == nil {
		if _, err := database.Query[tables.DashboardMetrics](as.db).Insert(ctx, metrics); err != nil {
			as.logger.Warn("Failed to persist dashboard metrics", gecho.Field("error", err))
		}
	} else {
		metrics.Id = existing.Id
		if _, err := database.Query[tables.DashboardMetrics](as.db).Where("id", existing.Id).Update(ctx, map[string]any{
			"total_orders":       metrics.TotalOrders,
			"pending_orders":     metrics.PendingOrders,
			"total_revenue":      metrics.TotalRevenue,
			"total_users":        metrics.TotalUsers,
			"new_users_today":    metrics.NewUsersToday,
			"total_products":     metrics.TotalProducts,
			"low_stock_products": metrics.LowStockProducts,
			"open_messages":      metrics.OpenMessages,
			"updated_at":         metrics.UpdatedAt,
		}); err != nil {
			as.logger.Warn("Failed to persist dashboard metrics", gecho.Field("error", err))
		}
	}

	return metrics, nil
}

// Dashboard bundles metrics with recent orders and recent activity
type Dashboard struct {
	Metrics          *tables.DashboardMetrics `json:"metrics"`
	RecentOrders     []tables.Order           `json:"recent_orders"`
	RecentActivities []tables.AdminActivity   `json:"recent_activities"`
}

func (as *AdminService) GetDashboard() (*Dashboard, error) {
	metrics, err := as.GetMetrics()
	if err != nil {
		return nil, err
	}

	recentOrders, err := database.Query[tables.Order](as.db).
		With("User").
		OrderBy("created_at", database.DESC).
		Limit(10).
		All(context.Background())
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	for i := range recentOrders {
		if recentOrders[i].User != nil {
			recentOrders[i].User.PasswordHash = ""
		}
	}

	recentActivities, err := database.Query[tables.AdminActivity](as.db).
		With("User").
		OrderBy("created_at", database.DESC).
		Limit(10).
		All(context.Background())
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	for i := range recentActivities {
		if recentActivities[i].User != nil {
			recentActivities[i].User.PasswordHash = ""
		}
	}

	return &Dashboard{
		Metrics:          metrics,
		RecentOrders:     recentOrders,
		RecentActivities: recentActivities,
	}, nil
}

// Report runs one of the aggregate reports over [from, to]
func (as *AdminService) Report(opts *structs.ReportOptions) (any, error) {
	ctx := context.Background()

	switch opts.Type {
	case "sales":
		rows, err := database.RawQuery[structs.SalesReportRow](as.db, ctx, salesReportSQL,
			opts.From, opts.To, tables.OrderStatusDelivered)
		if err != nil {
			return nil, lib.MapPgError(err)
		}
		return rows, nil

	case "product_performance":
		rows, err := database.RawQuery[structs.ProductPerformanceRow](as.db, ctx, productPerformanceSQL,
			opts.From, opts.To, tables.OrderStatusDelivered)
		if err != nil {
			return nil, lib.MapPgError(err)
		}
		return rows, nil

	case "user_activity":
		rows, err := database.RawQuery[structs.UserActivityRow](as.db, ctx, `
			SELECT d.day,
			       COALESCE(u.registrations, 0) AS registrations,
			       COALESCE(o.orders_placed, 0) AS orders_placed
			FROM generate_series(date_trunc('day', ?::timestamptz), date_trunc('day', ?::timestamptz), interval '1 day') AS d(day)
			LEFT JOIN (
				SELECT date_trunc('day', created_at) AS day, COUNT(*) AS registrations
				FROM users GROUP BY 1
			) u ON u.day = d.day
			LEFT JOIN (
				SELECT date_trunc('day', created_at) AS day, COUNT(*) AS orders_placed
				FROM orders GROUP BY 1
			) o ON o.day = d.day
			ORDER BY d.day`,
			opts.From, opts.To)
		if err != nil {
			return nil, lib.MapPgError(err)
		}
		return rows, nil

	default:
		return nil, ErrUnknownReportType
	}
}

// ListLowStock returns active products at or below the stock threshold
func (as *AdminService) ListLowStock(threshold int) ([]tables.Product, error) {
	if threshold < 0 {
		threshold = defaultLowStockThreshold
	}

	products, err := database.Query[tables.Product](as.db).
		Where("is_active", true).
		WhereOp("stock_quantity", "<=", threshold).
		OrderBy("stock_quantity", database.ASC).
		All(context.Background())
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	return products, nil
}
