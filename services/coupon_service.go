package services

import (
	"context"
	"fairfoul_server/database"
	"fairfoul_server/lib"
	"fairfoul_server/structs"
	"fairfoul_server/structs/tables"
	"time"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
)

type CouponService struct {
	logger *gecho.Logger
	db     *database.DB
}

func NewCouponService(logger *gecho.Logger, db *database.DB) *CouponService {
	return &CouponService{
		logger: logger,
		db:     db,
	}
}

// CouponValidation is the public validation result for a coupon code
type CouponValidation struct {
	Valid    bool   `json:"valid"`
	Code     string `json:"code"`
	Discount int64  `json:"discount"`
	Reason   string `json:"reason,omitempty"`
}

// Validate checks a coupon code against a subtotal without consuming a use
func (cs *CouponService) Validate(code string, subtotal int64) (*CouponValidation, error) {
	coupon, err := database.Query[tables.Coupon](cs.db).Where("code", code).First(context.Background())
	if err != nil {
		return nil, lib.MapPgError(err)
	}

	if coupon == nil {
		return &CouponValidation{Valid: false, Code: code, Reason: "unknown coupon code"}, nil
	}
	if !coupon.IsValidAt(time.Now()) {
		return &CouponValidation{Valid: false, Code: code, Reason: "coupon is inactive, expired or used up"}, nil
	}
	if subtotal < coupon.MinOrder {
		return &CouponValidation{Valid: false, Code: code, Reason: "order subtotal below coupon minimum"}, nil
	}

	return &CouponValidation{
		Valid:    true,
		Code:     coupon.Code,
		Discount: coupon.DiscountFor(subtotal),
	}, nil
}

// ListCoupons returns all coupons for staff, newest first
func (cs *CouponService) ListCoupons(page, pageSize int) (*database.PaginationResult[tables.Coupon], error) {
	q := database.Query[tables.Coupon](cs.db).OrderBy("created_at", database.DESC)

	result, err := database.Paginate(q, context.Background(), page, pageSize)
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	return result, nil
}

func (cs *CouponService) CreateCoupon(req *structs.CouponRequest) (*tables.Coupon, error) {
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	couponType := tables.DiscountTypeFixed
	if req.Type != "" {
		couponType = tables.DiscountType(req.Type)
	}

	coupon := &tables.Coupon{
		Code:       req.Code,
		Type:       couponType,
		AmountOff:  req.AmountOff,
		PercentOff: req.PercentOff,
		MinOrder:   req.MinOrder,
		IsActive:   isActive,
		ValidFrom:  req.ValidFrom,
		ValidTo:    req.ValidTo,
		UsageLimit: req.UsageLimit,
	}

	result, err := database.Query[tables.Coupon](cs.db).Insert(context.Background(), coupon)
	if err != nil {
		if lib.IsUniqueViolation(err) {
			cs.logger.Warn("Coupon code already exists", gecho.Field("code", req.Code))
		} else {
			cs.logger.Error("Failed to create coupon", gecho.Field("error", err), gecho.Field("code", req.Code))
		}
		return nil, lib.MapPgError(err)
	}

	return result, nil
}

func (cs *CouponService) UpdateCoupon(id uuid.UUID, req *structs.CouponRequest) (*tables.Coupon, error) {
	updates := map[string]any{
		"code":        req.Code,
		"amount_off":  req.AmountOff,
		"percent_off": req.PercentOff,
		"min_order":   req.MinOrder,
		"valid_from":  req.ValidFrom,
		"valid_to":    req.ValidTo,
		"usage_limit": req.UsageLimit,
		"updated_at":  time.Now(),
	}
	if req.Type != "" {
		updates["type"] = req.Type
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	results, err := database.Query[tables.Coupon](cs.db).Where("id", id).UpdateReturning(context.Background(), updates)
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	if len(results) == 0 {
		return nil, lib.ErrNotFound
	}
	return &results[0], nil
}

func (cs *CouponService) DeleteCoupon(id uuid.UUID) error {
	count, err := database.Query[tables.Coupon](cs.db).Where("id", id).Delete(context.Background())
	if err != nil {
		return lib.MapPgError(err)
	}
	if count == 0 {
		return lib.ErrNotFound
	}
	return nil
}
