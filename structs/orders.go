package structs

import (
	"time"

	"github.com/google/uuid"
)

type AddCartItemRequest struct {
	ProductId uuid.UUID  `json:"product_id" validate:"required"`
	ColorId   *uuid.UUID `json:"color_id"`
	SizeId    *uuid.UUID `json:"size_id"`
	Quantity  int        `json:"quantity" validate:"required,gte=1,lte=100"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" validate:"required,gte=1,lte=100"`
}

type CheckoutRequest struct {
	ShippingAddressId uuid.UUID  `json:"shipping_address_id" validate:"required"`
	BillingAddressId  *uuid.UUID `json:"billing_address_id"`
	PaymentMethod     string     `json:"payment_method" validate:"omitempty,max=50"`
	CouponCode        string     `json:"coupon_code" validate:"omitempty,max=50"`
	CustomerNote      string     `json:"customer_note" validate:"omitempty,max=2000"`
}

type ValidateCouponRequest struct {
	Code     string `json:"code" validate:"required,max=50"`
	Subtotal int64  `json:"subtotal" validate:"gte=0"`
}

type CouponRequest struct {
	Code       string    `json:"code" validate:"required,min=2,max=50"`
	Type       string    `json:"type" validate:"omitempty,oneof=fixed percentage"`
	AmountOff  int64     `json:"amount_off" validate:"gte=0"`
	PercentOff int       `json:"percent_off" validate:"gte=0,lte=100"`
	MinOrder   int64     `json:"min_order" validate:"gte=0"`
	IsActive   *bool     `json:"is_active"`
	ValidFrom  time.Time `json:"valid_from" validate:"required"`
	ValidTo    time.Time `json:"valid_to" validate:"required"`
	UsageLimit int       `json:"usage_limit" validate:"gte=0"`
}

type OrderNoteRequest struct {
	Note string `json:"note" validate:"required,min=1,max=2000"`
}

type CancelOrderRequest struct {
	Reason string `json:"reason" validate:"omitempty,max=500"`
}

type UpdateOrderStatusRequest struct {
	Status         string `json:"status" validate:"required,oneof=pending confirmed processing shipped delivered cancelled refunded"`
	TrackingNumber string `json:"tracking_number" validate:"omitempty,max=100"`
	Carrier        string `json:"carrier" validate:"omitempty,max=100"`
}

type UpdatePaymentStatusRequest struct {
	PaymentStatus string `json:"payment_status" validate:"required,oneof=pending paid failed refunded"`
	PaymentMethod string `json:"payment_method" validate:"omitempty,max=50"`
}

// OrderListOptions carries parsed order listing query parameters
type OrderListOptions struct {
	Page          int
	PageSize      int
	Status        string
	PaymentStatus string
	Search        string
}
