package orders

import (
	"fairfoul_server/api/middleware"
	"fairfoul_server/services"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type OrderRoutesManager struct {
	logger        *gecho.Logger
	authService   *services.AuthService
	cartService   *services.CartService
	orderService  *services.OrderService
	couponService *services.CouponService
	mw            *middleware.Middleware
}

func NewOrderRoutesManager(
	logger *gecho.Logger,
	authService *services.AuthService,
	cartService *services.CartService,
	orderService *services.OrderService,
	couponService *services.CouponService,
	mw *middleware.Middleware,
) *OrderRoutesManager {
	return &OrderRoutesManager{
		logger:        logger,
		authService:   authService,
		cartService:   cartService,
		orderService:  orderService,
		couponService: couponService,
		mw:            mw,
	}
}

func (orm *OrderRoutesManager) RegisterRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(orm.mw.UserAuthMiddleware)

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", orm.GetCart)
			r.Delete("/", orm.ClearCart)
			r.Post("/items", orm.AddCartItem)
			r.Patch("/items/{id}", orm.UpdateCartItem)
			r.Delete("/items/{id}", orm.RemoveCartItem)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Post("/checkout", orm.Checkout)
			r.Get("/", orm.ListOrders)
			r.Get("/{id}", orm.GetOrder)
			r.Post("/{id}/cancel", orm.CancelOrder)
			r.Post("/{id}/note", orm.AddOrderNote)
		})

		r.Post("/coupons/validate", orm.ValidateCoupon)
	})
}
