package admin

import (
	"fairfoul_server/api/middleware"
	"fairfoul_server/services"
	"fairfoul_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type AdminRoutesManager struct {
	logger         *gecho.Logger
	authService    *services.AuthService
	userService    *services.UserService
	productService *services.ProductService
	orderService   *services.OrderService
	couponService  *services.CouponService
	adminService   *services.AdminService
	contactService *services.ContactService
	cfg            *structs.Config
	mw             *middleware.Middleware
}

func NewAdminRoutesManager(
	logger *gecho.Logger,
	authService *services.AuthService,
	userService *services.UserService,
	productService *services.ProductService,
	orderService *services.OrderService,
	couponService *services.CouponService,
	adminService *services.AdminService,
	contactService *services.ContactService,
	cfg *structs.Config,
	mw *middleware.Middleware,
) *AdminRoutesManager {
	return &AdminRoutesManager{
		logger:         logger,
		authService:    authService,
		userService:    userService,
		productService: productService,
		orderService:   orderService,
		couponService:  couponService,
		adminService:   adminService,
		contactService: contactService,
		cfg:            cfg,
		mw:             mw,
	}
}

func (arm *AdminRoutesManager) RegisterRoutes(r chi.Router) {
	r.Route("/admin", func(r chi.Router) {
		// Staff login is public, everything else requires a staff session
		r.Post("/login", arm.HandleStaffLogin)

		r.Group(func(r chi.Router) {
			r.Use(arm.mw.UserAuthMiddleware)
			r.Use(arm.mw.StaffAuthMiddleware)

			r.Post("/logout", arm.HandleStaffLogout)
			r.Get("/verify", arm.HandleVerifySession)

			// Console
			r.Get("/dashboard", arm.GetDashboard)
			r.Get("/metrics", arm.GetMetrics)
			r.Get("/activities", arm.ListActivities)
			r.Get("/activities/{id}", arm.GetActivity)
			r.Get("/reports", arm.GetReport)
			r.Get("/low-stock", arm.ListLowStock)

			// Catalog management
			r.Get("/products", arm.ListProducts)
			r.Post("/products", arm.CreateProduct)
			r.Patch("/products/{id}", arm.UpdateProduct)
			r.Delete("/products/{id}", arm.DeleteProduct)
			r.Put("/products/{id}/sizes", arm.UpsertProductSize)
			r.Post("/products/{id}/images", arm.AddProductImage)
			r.Post("/products/{id}/images/{imageId}/primary", arm.SetPrimaryImage)
			r.Post("/products/{id}/colors/{colorId}/default", arm.SetDefaultColor)
			r.Delete("/products/{id}/images/{imageId}", arm.DeleteProductImage)

			r.Get("/categories", arm.ListCategories)
			r.Post("/categories", arm.CreateCategory)
			r.Patch("/categories/{id}", arm.UpdateCategory)
			r.Delete("/categories/{id}", arm.DeleteCategory)
			r.Post("/colors", arm.CreateColor)
			r.Patch("/colors/{id}", arm.UpdateColor)
			r.Delete("/colors/{id}", arm.DeleteColor)
			r.Post("/sizes", arm.CreateSize)
			r.Patch("/sizes/{id}", arm.UpdateSize)
			r.Delete("/sizes/{id}", arm.DeleteSize)

			// Order management
			r.Get("/orders", arm.ListOrders)
			r.Get("/orders/{id}", arm.GetOrder)
			r.Delete("/orders/{id}", arm.DeleteOrder)
			r.Patch("/orders/{id}/status", arm.UpdateOrderStatus)
			r.Patch("/orders/{id}/payment", arm.UpdatePaymentStatus)

			// Coupons
			r.Get("/coupons", arm.ListCoupons)
			r.Post("/coupons", arm.CreateCoupon)
			r.Patch("/coupons/{id}", arm.UpdateCoupon)
			r.Delete("/coupons/{id}", arm.DeleteCoupon)

			// Contact messages
			r.Get("/messages", arm.ListMessages)
			r.Get("/messages/{id}", arm.GetMessage)
			r.Patch("/messages/{id}", arm.UpdateMessage)
			r.Delete("/messages/{id}", arm.DeleteMessage)

			// User management is superadmin-only
			r.Group(func(r chi.Router) {
				r.Use(arm.mw.SuperuserAuthMiddleware)
				r.Get("/users", arm.ListUsers)
				r.Post("/users", arm.CreateUser)
				r.Get("/users/{id}", arm.GetUser)
				r.Patch("/users/{id}", arm.UpdateUser)
				r.Delete("/users/{id}", arm.DeleteUser)
				r.Post("/users/{id}/toggle-status", arm.ToggleUserStatus)
				r.Post("/users/{id}/change-role", arm.ChangeUserRole)
			})
		})
	})
}
