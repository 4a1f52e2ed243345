package products

import (
	"fairfoul_server/api/middleware"
	"fairfoul_server/services"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type ProductRoutesManager struct {
	logger         *gecho.Logger
	productService *services.ProductService
	mw             *middleware.Middleware
}

func NewProductRoutesManager(
	logger *gecho.Logger,
	productService *services.ProductService,
	mw *middleware.Middleware,
) *ProductRoutesManager {
	return &ProductRoutesManager{
		logger:         logger,
		productService: productService,
		mw:             mw,
	}
}

func (prm *ProductRoutesManager) RegisterRoutes(r chi.Router) {
	// Public catalog
	r.Get("/products", prm.FetchProducts)
	r.Get("/products/featured", prm.FetchFeatured)
	r.Get("/products/bestsellers", prm.FetchBestsellers)
	r.Get("/products/new-arrivals", prm.FetchNewArrivals)
	r.Get("/products/{slug}", prm.FetchProductBySlug)
	r.Get("/products/{slug}/related", prm.FetchRelated)
	r.Get("/products/{slug}/reviews", prm.FetchReviews)

	r.Get("/categories", prm.FetchCategories)
	r.Get("/categories/{slug}", prm.FetchCategory)
	r.Get("/colors", prm.FetchColors)
	r.Get("/sizes", prm.FetchSizes)

	// Authenticated routes
	r.Group(func(r chi.Router) {
		r.Use(prm.mw.UserAuthMiddleware)

		r.Post("/products/{slug}/reviews", prm.SubmitReview)
		r.Delete("/products/{slug}/reviews", prm.DeleteReview)

		r.Get("/wishlist", prm.FetchWishlist)
		r.Post("/wishlist/{productId}", prm.AddToWishlist)
		r.Delete("/wishlist/{productId}", prm.RemoveFromWishlist)
	})
}
