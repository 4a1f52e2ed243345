package products

import (
	"errors"
	"net/http"

	"fairfoul_server/api/middleware"
	"fairfoul_server/lib"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func (prm *ProductRoutesManager) FetchWishlist(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaimsFromContext(r.Context())
	if !ok {
		gecho.Unauthorized(w, gecho.WithMessage("Not logged in"), gecho.Send())
		return
	}

	items, err := prm.productService.ListWishlist(claims.Sub)
	if err != nil {
		prm.logger.Error("Failed to fetch wishlist", gecho.Field("error", err), gecho.Field("userID", claims.Sub))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to fetch wishlist"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithData(items),
		gecho.Send(),
	)
}

func (prm *ProductRoutesManager) AddToWishlist(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaimsFromContext(r.Context())
	if !ok {
		gecho.Unauthorized(w, gecho.WithMessage("Not logged in"), gecho.Send())
		return
	}

	productId, err := uuid.Parse(chi.URLParam(r, "productId"))
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("Invalid product ID"), gecho.Send())
		return
	}

	item, err := prm.productService.AddToWishlist(claims.Sub, productId)
	if err != nil {
		if errors.Is(err, lib.ErrNotFound) {
			gecho.NotFound(w, gecho.WithMessage("Product not found"), gecho.Send())
			return
		}
		prm.logger.Error("Failed to add to wishlist", gecho.Field("error", err), gecho.Field("productID", productId))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to update wishlist"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Added to wishlist"),
		gecho.WithData(item),
		gecho.Send(),
	)
}

func (prm *ProductRoutesManager) RemoveFromWishlist(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaimsFromContext(r.Context())
	if !ok {
		gecho.Unauthorized(w, gecho.WithMessage("Not logged in"), gecho.Send())
		return
	}

	productId, err := uuid.Parse(chi.URLParam(r, "productId"))
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("Invalid product ID"), gecho.Send())
		return
	}

	if err := prm.productService.RemoveFromWishlist(claims.Sub, productId); err != nil {
		if errors.Is(err, lib.ErrNotFound) {
			gecho.NotFound(w, gecho.WithMessage("Wishlist item not found"), gecho.Send())
			return
		}
		prm.logger.Error("Failed to remove from wishlist", gecho.Field("error", err), gecho.Field("productID", productId))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to update wishlist"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Removed from wishlist"),
		gecho.Send(),
	)
}
