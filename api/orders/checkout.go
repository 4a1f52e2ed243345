package orders

import (
	"errors"
	"net/http"

	"fairfoul_server/api/middleware"
	"fairfoul_server/lib"
	"fairfoul_server/services"
	"fairfoul_server/structs"

	"github.com/MonkyMars/gecho"
)

func (orm *OrderRoutesManager) Checkout(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaimsFromContext(r.Context())
	if !ok {
		gecho.Unauthorized(w, gecho.WithMessage("Not logged in"), gecho.Send())
		return
	}

	body, err := lib.ExtractAndValidateBody[structs.CheckoutRequest](r)
	if err != nil {
		orm.logger.Warn("Failed to extract checkout body", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage("Please check your checkout details and try again"), gecho.Send())
		return
	}

	user, err := orm.authService.GetUserByID(claims.Sub)
	if err != nil || user == nil {
		orm.logger.Error("Failed to load user for checkout", gecho.Field("error", err), gecho.Field("userID", claims.Sub))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to place order"), gecho.Send())
		return
	}

	order, err := orm.orderService.Checkout(user, body)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyCart):
			gecho.BadRequest(w, gecho.WithMessage("Your cart is empty"), gecho.Send())
		case errors.Is(err, services.ErrInsufficientStock):
			gecho.Conflict(w, gecho.WithMessage("One or more items are out of stock"), gecho.Send())
		case errors.Is(err, services.ErrInvalidCoupon):
			gecho.BadRequest(w, gecho.WithMessage("Coupon code is not valid for this order"), gecho.Send())
		case errors.Is(err, services.ErrProductUnavailable):
			gecho.BadRequest(w, gecho.WithMessage("One or more items are no longer available"), gecho.Send())
		case errors.Is(err, lib.ErrNotFound):
			gecho.NotFound(w, gecho.WithMessage("Address not found"), gecho.Send())
		default:
			orm.logger.Error("Checkout failed", gecho.Field("error", err), gecho.Field("userID", claims.Sub))
			gecho.InternalServerError(w, gecho.WithMessage("Unable to place order. Please try again"), gecho.Send())
		}
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Order placed successfully"),
		gecho.WithData(order),
		gecho.Send(),
	)
}
