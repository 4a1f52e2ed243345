package tables

import (
	"time"

	"github.com/google/uuid"
)

type Cart struct {
	tableName struct{}    `bun:"table:carts,alias:c"`
	Id        uuid.UUID   `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	UserId    uuid.UUID   `bun:"user_id,notnull,unique,type:uuid" json:"user_id"`
	CreatedAt time.Time   `bun:"created_at,notnull,default:now()" json:"created_at"`
	UpdatedAt time.Time   `bun:"updated_at,notnull,default:now()" json:"updated_at"`
	Items     []*CartItem `bun:"rel:has-many,join:id=cart_id" json:"items,omitempty"`
}

// Subtotal sums effective unit prices times quantities across the cart.
func (c *Cart) Subtotal() int64 {
	var total int64
	for _, item := range c.Items {
		if item.Product != nil {
			total += item.Product.EffectivePrice() * int64(item.Quantity)
		}
	}
	return total
}

type CartItem struct {
	tableName struct{}   `bun:"table:cart_items,alias:ci"`
	Id        uuid.UUID  `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	CartId    uuid.UUID  `bun:"cart_id,notnull,type:uuid" json:"cart_id"`
	ProductId uuid.UUID  `bun:"product_id,notnull,type:uuid" json:"product_id"`
	ColorId   *uuid.UUID `bun:"color_id,type:uuid" json:"color_id,omitempty"`
	SizeId    *uuid.UUID `bun:"size_id,type:uuid" json:"size_id,omitempty"`
	Quantity  int        `bun:"quantity,notnull,default:1" json:"quantity" validate:"gte=1"`
	CreatedAt time.Time  `bun:"created_at,notnull,default:now()" json:"created_at"`
	UpdatedAt time.Time  `bun:"updated_at,notnull,default:now()" json:"updated_at"`
	Product   *Product   `bun:"rel:belongs-to,join:product_id=id" json:"product,omitempty"`
	Color     *Color     `bun:"rel:belongs-to,join:color_id=id" json:"color,omitempty"`
	Size      *Size      `bun:"rel:belongs-to,join:size_id=id" json:"size,omitempty"`
}

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusConfirmed  OrderStatus = "confirmed"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
	OrderStatusRefunded   OrderStatus = "refunded"
)

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// Order monetary amounts are in cents.
type Order struct {
	tableName         struct{}      `bun:"table:orders,alias:o"`
	Id                uuid.UUID     `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	OrderNumber       string        `bun:"order_number,notnull,unique" json:"order_number"`
	UserId            uuid.UUID     `bun:"user_id,notnull,type:uuid" json:"user_id"`
	Status            OrderStatus   `bun:"status,notnull,default:'pending'" json:"status"`
	PaymentStatus     PaymentStatus `bun:"payment_status,notnull,default:'pending'" json:"payment_status"`
	PaymentMethod     string        `bun:"payment_method" json:"payment_method,omitempty"`
	Subtotal          int64         `bun:"subtotal,notnull" json:"subtotal"`
	TaxAmount         int64         `bun:"tax_amount,notnull,default:0" json:"tax_amount"`
	ShippingAmount    int64         `bun:"shipping_amount,notnull,default:0" json:"shipping_amount"`
	DiscountAmount    int64         `bun:"discount_amount,notnull,default:0" json:"discount_amount"`
	TotalAmount       int64         `bun:"total_amount,notnull" json:"total_amount"`
	CouponId          *uuid.UUID    `bun:"coupon_id,type:uuid" json:"coupon_id,omitempty"`
	ShippingAddressId uuid.UUID     `bun:"shipping_address_id,notnull,type:uuid" json:"shipping_address_id"`
	BillingAddressId  *uuid.UUID    `bun:"billing_address_id,type:uuid" json:"billing_address_id,omitempty"`
	TrackingNumber    string        `bun:"tracking_number" json:"tracking_number,omitempty"`
	Carrier           string        `bun:"carrier" json:"carrier,omitempty"`
	CustomerNote      string        `bun:"customer_note" json:"customer_note,omitempty"`
	CreatedAt         time.Time     `bun:"created_at,notnull,default:now()" json:"created_at"`
	UpdatedAt         time.Time     `bun:"updated_at,notnull,default:now()" json:"updated_at"`
	Items             []*OrderItem  `bun:"rel:has-many,join:id=order_id" json:"items,omitempty"`
	Events            []*OrderEvent `bun:"rel:has-many,join:id=order_id" json:"events,omitempty"`
	User              *User         `bun:"rel:belongs-to,join:user_id=id" json:"user,omitempty"`
	ShippingAddress   *Address      `bun:"rel:belongs-to,join:shipping_address_id=id" json:"shipping_address,omitempty"`
	BillingAddress    *Address      `bun:"rel:belongs-to,join:billing_address_id=id" json:"billing_address,omitempty"`
	Coupon            *Coupon       `bun:"rel:belongs-to,join:coupon_id=id" json:"coupon,omitempty"`
}

// CanCancel reports whether the customer may still cancel this order.
// Shipped and delivered orders are past the point of no return.
func (o *Order) CanCancel() bool {
	return o.Status != OrderStatusShipped && o.Status != OrderStatusDelivered
}

// OrderItem snapshots the product at purchase time so later catalog edits
// never rewrite order history.
type OrderItem struct {
	tableName   struct{}   `bun:"table:order_items,alias:oi"`
	Id          uuid.UUID  `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	OrderId     uuid.UUID  `bun:"order_id,notnull,type:uuid" json:"order_id"`
	ProductId   *uuid.UUID `bun:"product_id,type:uuid" json:"product_id,omitempty"`
	ProductName string     `bun:"product_name,notnull" json:"product_name"`
	ProductSku  string     `bun:"product_sku" json:"product_sku,omitempty"`
	ColorId     *uuid.UUID `bun:"color_id,type:uuid" json:"color_id,omitempty"`
	SizeId      *uuid.UUID `bun:"size_id,type:uuid" json:"size_id,omitempty"`
	ColorName   string     `bun:"color_name" json:"color_name,omitempty"`
	SizeName    string     `bun:"size_name" json:"size_name,omitempty"`
	UnitPrice   int64      `bun:"unit_price,notnull" json:"unit_price"`
	Quantity    int        `bun:"quantity,notnull" json:"quantity"`
	TotalPrice  int64      `bun:"total_price,notnull" json:"total_price"`
	CreatedAt   time.Time  `bun:"created_at,notnull,default:now()" json:"created_at"`
}

type OrderEventType string

const (
	OrderEventStatusChange    OrderEventType = "status_change"
	OrderEventPaymentUpdate   OrderEventType = "payment_update"
	OrderEventTrackingUpdated OrderEventType = "tracking_updated"
	OrderEventNoteAdded       OrderEventType = "note_added"
)

type OrderEvent struct {
	tableName   struct{}       `bun:"table:order_events,alias:oe"`
	Id          uuid.UUID      `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	OrderId     uuid.UUID      `bun:"order_id,notnull,type:uuid" json:"order_id"`
	EventType   OrderEventType `bun:"event_type,notnull" json:"event_type"`
	Description string         `bun:"description,notnull" json:"description"`
	CreatedById *uuid.UUID     `bun:"created_by_id,type:uuid" json:"created_by_id,omitempty"`
	CreatedAt   time.Time      `bun:"created_at,notnull,default:now()" json:"created_at"`
}

type DiscountType string

const (
	DiscountTypeFixed      DiscountType = "fixed"
	DiscountTypePercentage DiscountType = "percentage"
)

// Coupon amounts are in cents; PercentOff is a whole percentage.
type Coupon struct {
	tableName  struct{}     `bun:"table:coupons,alias:cp"`
	Id         uuid.UUID    `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	Code       string       `bun:"code,notnull,unique" json:"code" validate:"required,min=2,max=50"`
	Type       DiscountType `bun:"type,notnull,default:'fixed'" json:"type" validate:"omitempty,oneof=fixed percentage"`
	AmountOff  int64        `bun:"amount_off,notnull,default:0" json:"amount_off" validate:"gte=0"`
	PercentOff int          `bun:"percent_off,notnull,default:0" json:"percent_off" validate:"gte=0,lte=100"`
	MinOrder   int64        `bun:"min_order,notnull,default:0" json:"min_order" validate:"gte=0"`
	IsActive   bool         `bun:"is_active,notnull,default:true" json:"is_active"`
	ValidFrom  time.Time    `bun:"valid_from,notnull" json:"valid_from"`
	ValidTo    time.Time    `bun:"valid_to,notnull" json:"valid_to"`
	UsageLimit int          `bun:"usage_limit,notnull,default:0" json:"usage_limit" validate:"gte=0"`
	TimesUsed  int          `bun:"times_used,notnull,default:0" json:"times_used"`
	CreatedAt  time.Time    `bun:"created_at,notnull,default:now()" json:"created_at"`
	UpdatedAt  time.Time    `bun:"updated_at,notnull,default:now()" json:"updated_at"`
}

// IsValidAt reports whether the coupon can be applied at the given moment.
// A usage limit of zero means unlimited.
func (c *Coupon) IsValidAt(now time.Time) bool {
	if !c.IsActive {
		return false
	}
	if now.Before(c.ValidFrom) || now.After(c.ValidTo) {
		return false
	}
	if c.UsageLimit > 0 && c.TimesUsed >= c.UsageLimit {
		return false
	}
	return true
}

// DiscountFor computes the discount this coupon grants on a subtotal.
// A fixed amount takes precedence over a percentage and is capped at the
// subtotal so totals never go negative.
func (c *Coupon) DiscountFor(subtotal int64) int64 {
	if c.AmountOff > 0 {
		if c.AmountOff > subtotal {
			return subtotal
		}
		return c.AmountOff
	}
	if c.PercentOff > 0 {
		return subtotal * int64(c.PercentOff) / 100
	}
	return 0
}
