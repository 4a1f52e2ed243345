package tables

import (
	"time"

	"github.com/google/uuid"
)

type AdminActionType string

const (
	AdminActionLogin        AdminActionType = "login"
	AdminActionLogout       AdminActionType = "logout"
	AdminActionCreate       AdminActionType = "create"
	AdminActionUpdate       AdminActionType = "update"
	AdminActionDelete       AdminActionType = "delete"
	AdminActionStatusChange AdminActionType = "status_change"
)

// AdminActivity is append-only. Rows are never updated or deleted.
type AdminActivity struct {
	tableName   struct{}        `bun:"table:admin_activities,alias:aa"`
	Id          uuid.UUID       `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	UserId      *uuid.UUID      `bun:"user_id,type:uuid" json:"user_id,omitempty"`
	ActionType  AdminActionType `bun:"action_type,notnull" json:"action_type"`
	TargetModel string          `bun:"target_model" json:"target_model,omitempty"`
	TargetId    string          `bun:"target_id" json:"target_id,omitempty"`
	Description string          `bun:"description,notnull" json:"description"`
	IpAddress   string          `bun:"ip_address" json:"ip_address,omitempty"`
	CreatedAt   time.Time       `bun:"created_at,notnull,default:now()" json:"created_at"`
	User        *User           `bun:"rel:belongs-to,join:user_id=id" json:"user,omitempty"`
}

// DashboardMetrics is a single-row table recomputed on read. Revenue is in
// cents.
type DashboardMetrics struct {
	tableName        struct{}  `bun:"table:dashboard_metrics,alias:dm"`
	Id               uuid.UUID `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	TotalOrders      int       `bun:"total_orders,notnull,default:0" json:"total_orders"`
	PendingOrders    int       `bun:"pending_orders,notnull,default:0" json:"pending_orders"`
	TotalRevenue     int64     `bun:"total_revenue,notnull,default:0" json:"total_revenue"`
	TotalUsers       int       `bun:"total_users,notnull,default:0" json:"total_users"`
	NewUsersToday    int       `bun:"new_users_today,notnull,default:0" json:"new_users_today"`
	TotalProducts    int       `bun:"total_products,notnull,default:0" json:"total_products"`
	LowStockProducts int       `bun:"low_stock_products,notnull,default:0" json:"low_stock_products"`
	OpenMessages     int       `bun:"open_messages,notnull,default:0" json:"open_messages"`
	UpdatedAt        time.Time `bun:"updated_at,notnull,default:now()" json:"updated_at"`
}
