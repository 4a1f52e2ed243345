package admin

import (
	"errors"
	"net/http"

	"fairfoul_server/api/middleware"
	"fairfoul_server/handling"
	"fairfoul_server/lib"
	"fairfoul_server/structs"
	"fairfoul_server/structs/tables"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func (arm *AdminRoutesManager) ListCoupons(w http.ResponseWriter, r *http.Request) {
	page, pageSize := handling.ParsePagination(r)

	result, err := arm.couponService.ListCoupons(page, pageSize)
	if err != nil {
		arm.logger.Error("Failed to list coupons", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to fetch coupons"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithData(result),
		gecho.Send(),
	)
}

func (arm *AdminRoutesManager) CreateCoupon(w http.ResponseWriter, r *http.Request) {
	claims, _ := middleware.GetClaimsFromContext(r.Context())

	body, err := lib.ExtractAndValidateBody[structs.CouponRequest](r)
	if err != nil {
		arm.logger.Warn("Failed to extract coupon body", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage("Please check the coupon details and try again"), gecho.Send())
		return
	}

	coupon, err := arm.couponService.CreateCoupon(body)
	if err != nil {
		if errors.Is(err, lib.ErrConflict) {
			gecho.Conflict(w, gecho.WithMessage("A coupon with this code already exists"), gecho.Send())
			return
		}
		arm.logger.Error("Failed to create coupon", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to create coupon"), gecho.Send())
		return
	}

	arm.adminService.RecordActivity(&claims.Sub, tables.AdminActionCreate, "coupon", coupon.Id.String(),
		"Created coupon "+coupon.Code, middleware.ClientIP(r))

	gecho.Success(w,
		gecho.WithMessage("Coupon created"),
		gecho.WithData(coupon),
		gecho.Send(),
	)
}

func (arm *AdminRoutesManager) UpdateCoupon(w http.ResponseWriter, r *http.Request) {
	claims, _ := middleware.GetClaimsFromContext(r.Context())

	couponId, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("Invalid coupon ID"), gecho.Send())
		return
	}

	body, err := lib.ExtractAndValidateBody[structs.CouponRequest](r)
	if err != nil {
		arm.logger.Warn("Failed to extract coupon body", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage("Please check the coupon details and try again"), gecho.Send())
		return
	}

	coupon, err := arm.couponService.UpdateCoupon(couponId, body)
	if err != nil {
		if errors.Is(err, lib.ErrNotFound) {
			gecho.NotFound(w, gecho.WithMessage("Coupon not found"), gecho.Send())
			return
		}
		arm.logger.Error("Failed to update coupon", gecho.Field("error", err), gecho.Field("couponID", couponId))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to update coupon"), gecho.Send())
		return
	}

	arm.adminService.RecordActivity(&claims.Sub, tables.AdminActionUpdate, "coupon", coupon.Id.String(),
		"Updated coupon "+coupon.Code, middleware.ClientIP(r))

	gecho.Success(w,
		gecho.WithMessage("Coupon updated"),
		gecho.WithData(coupon),
		gecho.Send(),
	)
}

func (arm *AdminRoutesManager) DeleteCoupon(w http.ResponseWriter, r *http.Request) {
	claims, _ := middleware.GetClaimsFromContext(r.Context())

	couponId, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("Invalid coupon ID"), gecho.Send())
		return
	}

	if err := arm.couponService.DeleteCoupon(couponId); err != nil {
		if errors.Is(err, lib.ErrNotFound) {
			gecho.NotFound(w, gecho.WithMessage("Coupon not found"), gecho.Send())
			return
		}
		arm.logger.Error("Failed to delete coupon", gecho.Field("error", err), gecho.Field("couponID", couponId))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to delete coupon"), gecho.Send())
		return
	}

	arm.adminService.RecordActivity(&claims.Sub, tables.AdminActionDelete, "coupon", couponId.String(),
		"Deleted coupon", middleware.ClientIP(r))

	gecho.Success(w,
		gecho.WithMessage("Coupon deleted"),
		gecho.Send(),
	)
}
