package services

import (
	"fairfoul_server/database"
	"fairfoul_server/structs"

	"github.com/MonkyMars/gecho"
)

type ServiceManager struct {
	AuthService    *AuthService
	UserService    *UserService
	EmailService   *EmailService
	CacheService   *CacheService
	HealthService  *HealthService
	ProductService *ProductService
	CartService    *CartService
	OrderService   *OrderService
	CouponService  *CouponService
	AdminService   *AdminService
	ContactService *ContactService
}

func NewServiceManager(logger *gecho.Logger, cfg *structs.Config, db *database.DB) *ServiceManager {
	cacheService := NewCacheService(logger, cfg)
	authService := NewAuthService(cfg, logger, db, cacheService)
	userService := NewUserService(logger, db, cacheService)
	emailService := NewEmailService(logger, cfg, db)
	healthService := NewHealthService(logger, db, cacheService)
	productService := NewProductService(logger, db, cacheService)
	cartService := NewCartService(logger, db, productService)
	orderService := NewOrderService(logger, cfg, db, cartService, emailService)
	couponService := NewCouponService(logger, db)
	adminService := NewAdminService(logger, db)
	contactService := NewContactService(logger, db, emailService)

	return &ServiceManager{
		AuthService:    authService,
		UserService:    userService,
		EmailService:   emailService,
		CacheService:   cacheService,
		HealthService:  healthService,
		ProductService: productService,
		CartService:    cartService,
		OrderService:   orderService,
		CouponService:  couponService,
		AdminService:   adminService,
		ContactService: contactService,
	}
}
