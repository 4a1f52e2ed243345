package api

import (
	"fairfoul_server/api/admin"
	"fairfoul_server/api/contact"
	"fairfoul_server/api/health"
	"fairfoul_server/api/middleware"
	"fairfoul_server/api/orders"
	"fairfoul_server/api/products"
	"fairfoul_server/api/users"
	"fairfoul_server/database"
	"fairfoul_server/services"
	"fairfoul_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type routerManager struct {
	userRoutes    *users.UserRoutesManager
	productRoutes *products.ProductRoutesManager
	orderRoutes   *orders.OrderRoutesManager
	adminRoutes   *admin.AdminRoutesManager
	contactRoutes *contact.ContactRoutesManager
	healthRoutes  *health.HealthRoutesManager
}

func NewRouterManager(logger *gecho.Logger, db *database.DB, cfg *structs.Config, sm *services.ServiceManager, mw *middleware.Middleware) *routerManager {
	return &routerManager{
		userRoutes:    users.NewUserRoutesManager(logger, sm.AuthService, sm.UserService, sm.EmailService, cfg, mw),
		productRoutes: products.NewProductRoutesManager(logger, sm.ProductService, mw),
		orderRoutes:   orders.NewOrderRoutesManager(logger, sm.AuthService, sm.CartService, sm.OrderService, sm.CouponService, mw),
		adminRoutes: admin.NewAdminRoutesManager(logger, sm.AuthService, sm.UserService, sm.ProductService,
			sm.OrderService, sm.CouponService, sm.AdminService, sm.ContactService, cfg, mw),
		contactRoutes: contact.NewContactRoutesManager(logger, sm.ContactService),
		healthRoutes:  health.NewHealthRoutesManager(sm.HealthService),
	}
}

func (rm *routerManager) RegisterRoutes(r chi.Router) {
	rm.userRoutes.RegisterRoutes(r)
	rm.productRoutes.RegisterRoutes(r)
	rm.orderRoutes.RegisterRoutes(r)
	rm.adminRoutes.RegisterRoutes(r)
	rm.contactRoutes.RegisterRoutes(r)
	rm.healthRoutes.RegisterRoutes(r)
}
