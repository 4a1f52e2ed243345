package orders

import (
	"errors"
	"net/http"

	"fairfoul_server/api/middleware"
	"fairfoul_server/lib"
	"fairfoul_server/services"
	"fairfoul_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func (orm *OrderRoutesManager) GetCart(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaimsFromContext(r.Context())
	if !ok {
		gecho.Unauthorized(w, gecho.WithMessage("Not logged in"), gecho.Send())
		return
	}

	cart, err := orm.cartService.GetOrCreateCart(claims.Sub)
	if err != nil {
		orm.logger.Error("Failed to fetch cart", gecho.Field("error", err), gecho.Field("userID", claims.Sub))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to fetch cart"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithData(cart),
		gecho.Send(),
	)
}

func (orm *OrderRoutesManager) AddCartItem(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaimsFromContext(r.Context())
	if !ok {
		gecho.Unauthorized(w, gecho.WithMessage("Not logged in"), gecho.Send())
		return
	}

	body, err := lib.ExtractAndValidateBody[structs.AddCartItemRequest](r)
	if err != nil {
		orm.logger.Warn("Failed to extract cart item body", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage("Please check the item details and try again"), gecho.Send())
		return
	}

	cart, err := orm.cartService.AddItem(claims.Sub, body)
	if err != nil {
		orm.respondCartError(w, err, claims.Sub)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Item added to cart"),
		gecho.WithData(cart),
		gecho.Send(),
	)
}

func (orm *OrderRoutesManager) UpdateCartItem(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaimsFromContext(r.Context())
	if !ok {
		gecho.Unauthorized(w, gecho.WithMessage("Not logged in"), gecho.Send())
		return
	}

	itemId, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("Invalid cart item ID"), gecho.Send())
		return
	}

	body, err := lib.ExtractAndValidateBody[structs.UpdateCartItemRequest](r)
	if err != nil {
		orm.logger.Warn("Failed to extract cart item body", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage("Please check the item details and try again"), gecho.Send())
		return
	}

	cart, err := orm.cartService.UpdateItem(claims.Sub, itemId, body.Quantity)
	if err != nil {
		orm.respondCartError(w, err, claims.Sub)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Cart updated"),
		gecho.WithData(cart),
		gecho.Send(),
	)
}

func (orm *OrderRoutesManager) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaimsFromContext(r.Context())
	if !ok {
		gecho.Unauthorized(w, gecho.WithMessage("Not logged in"), gecho.Send())
		return
	}

	itemId, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("Invalid cart item ID"), gecho.Send())
		return
	}

	cart, err := orm.cartService.RemoveItem(claims.Sub, itemId)
	if err != nil {
		orm.respondCartError(w, err, claims.Sub)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Item removed from cart"),
		gecho.WithData(cart),
		gecho.Send(),
	)
}

func (orm *OrderRoutesManager) ClearCart(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaimsFromContext(r.Context())
	if !ok {
		gecho.Unauthorized(w, gecho.WithMessage("Not logged in"), gecho.Send())
		return
	}

	cart, err := orm.cartService.ClearCart(claims.Sub)
	if err != nil {
		orm.logger.Error("Failed to clear cart", gecho.Field("error", err), gecho.Field("userID", claims.Sub))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to clear cart"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Cart cleared"),
		gecho.WithData(cart),
		gecho.Send(),
	)
}

func (orm *OrderRoutesManager) respondCartError(w http.ResponseWriter, err error, userId uuid.UUID) {
	switch {
	case errors.Is(err, lib.ErrNotFound):
		gecho.NotFound(w, gecho.WithMessage("Item not found"), gecho.Send())
	case errors.Is(err, services.ErrInsufficientStock):
		gecho.Conflict(w, gecho.WithMessage("Not enough stock available"), gecho.Send())
	default:
		orm.logger.Error("Cart operation failed", gecho.Field("error", err), gecho.Field("userID", userId))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to update cart"), gecho.Send())
	}
}
