package orders

import (
	"net/http"

	"fairfoul_server/api/middleware"
	"fairfoul_server/lib"
	"fairfoul_server/structs"

	"github.com/MonkyMars/gecho"
)

// ValidateCoupon checks a coupon against the caller's current cart without
// consuming a use. When the request omits the subtotal, the cart subtotal is used.
func (orm *OrderRoutesManager) ValidateCoupon(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaimsFromContext(r.Context())
	if !ok {
		gecho.Unauthorized(w, gecho.WithMessage("Not logged in"), gecho.Send())
		return
	}

	body, err := lib.ExtractAndValidateBody[structs.ValidateCouponRequest](r)
	if err != nil {
		orm.logger.Warn("Failed to extract coupon body", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage("Please check the coupon code and try again"), gecho.Send())
		return
	}

	subtotal := body.Subtotal
	if subtotal == 0 {
		cart, err := orm.cartService.GetOrCreateCart(claims.Sub)
		if err != nil {
			orm.logger.Error("Failed to fetch cart for coupon validation", gecho.Field("error", err), gecho.Field("userID", claims.Sub))
			gecho.InternalServerError(w, gecho.WithMessage("Unable to validate coupon"), gecho.Send())
			return
		}
		subtotal = cart.Subtotal()
	}

	validation, err := orm.couponService.Validate(body.Code, subtotal)
	if err != nil {
		orm.logger.Error("Coupon validation failed", gecho.Field("error", err), gecho.Field("code", body.Code))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to validate coupon"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithData(validation),
		gecho.Send(),
	)
}
