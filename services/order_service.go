package services

import (
	"context"
	"errors"
	"fairfoul_server/database"
	"fairfoul_server/lib"
	"fairfoul_server/structs"
	"fairfoul_server/structs/tables"
	"fmt"
	"time"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

var (
	ErrEmptyCart          = errors.New("cart is empty")
	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrInvalidCoupon      = errors.New("coupon is not valid")
	ErrCannotCancel       = errors.New("order can no longer be cancelled")
	ErrProductUnavailable = errors.New("product is no longer available")
)

type OrderService struct {
	logger       *gecho.Logger
	cfg          *structs.Config
	db           *database.DB
	cartService  *CartService
	emailService *EmailService
}

func NewOrderService(logger *gecho.Logger, cfg *structs.Config, db *database.DB, cartService *CartService, emailService *EmailService) *OrderService {
	return &OrderService{
		logger:       logger,
		cfg:          cfg,
		db:           db,
		cartService:  cartService,
		emailService: emailService,
	}
}

// Checkout turns the user's cart into an order inside a single transaction:
// verify the cart, verify address ownership, price the items, apply the
// coupon, snapshot the lines, decrement stock and clear the cart. Any error
// rolls the whole order back.
func (os *OrderService) Checkout(user *tables.User, req *structs.CheckoutRequest) (*tables.Order, error) {
	startTime := time.Now()

	cart, err := os.cartService.GetOrCreateCart(user.Id)
	if err != nil {
		return nil, err
	}
	if len(cart.Items) == 0 {
		return nil, ErrEmptyCart
	}

	shippingAddress, err := os.ownedAddress(user.Id, req.ShippingAddressId)
	if err != nil {
		return nil, err
	}
	var explicitBilling *tables.Address
	if req.BillingAddressId != nil {
		explicitBilling, err = os.ownedAddress(user.Id, *req.BillingAddressId)
		if err != nil {
			return nil, err
		}
	}
	billingAddress := orderBillingAddress(shippingAddress, explicitBilling)

	order, err := database.TransactionWithResult(context.Background(), func(tx bun.Tx) (*tables.Order, error) {
		ctx := context.Background()

		// Price every line against the current catalog and re-check stock
		var subtotal int64
		items := make([]tables.OrderItem, 0, len(cart.Items))
		for _, line := range cart.Items {
			if line.Product == nil || !line.Product.IsActive {
				return nil, ErrProductUnavailable
			}

			if err := os.decrementStock(tx, line); err != nil {
				return nil, err
			}

			item := orderItemFromLine(line)
			subtotal += item.TotalPrice
			items = append(items, item)
		}

		// Apply the coupon, when present and valid
		var coupon *tables.Coupon
		var discount int64
		if req.CouponCode != "" {
			coupon, err = database.QueryTx[tables.Coupon](os.db, tx).
				Where("code", req.CouponCode).
				First(ctx)
			if err != nil {
				return nil, err
			}
			if coupon == nil || !coupon.IsValidAt(time.Now()) || subtotal < coupon.MinOrder {
				return nil, ErrInvalidCoupon
			}

			discount = coupon.DiscountFor(subtotal)

			if _, err := database.QueryTx[tables.Coupon](os.db, tx).
				Where("id", coupon.Id).
				Update(ctx, map[string]any{
					"times_used": coupon.TimesUsed + 1,
					"updated_at": time.Now(),
				}); err != nil {
				return nil, err
			}
		}

		orderNumber, err := lib.GenerateOrderNumber()
		if err != nil {
			return nil, err
		}

		// Tax and shipping are not charged yet; totals keep the columns so
		// the schema does not change when they are.
		order := &tables.Order{
			OrderNumber:       orderNumber,
			UserId:            user.Id,
			Status:            tables.OrderStatusPending,
			PaymentStatus:     tables.PaymentStatusPending,
			PaymentMethod:     req.PaymentMethod,
			Subtotal:          subtotal,
			TaxAmount:         0,
			ShippingAmount:    0,
			DiscountAmount:    discount,
			TotalAmount:       subtotal - discount,
			ShippingAddressId: shippingAddress.Id,
			BillingAddressId:  &billingAddress.Id,
			CustomerNote:      req.CustomerNote,
		}
		if coupon != nil {
			order.CouponId = &coupon.Id
		}

		order, err = database.QueryTx[tables.Order](os.db, tx).Insert(ctx, order)
		if err != nil {
			return nil, err
		}

		for i := range items {
			items[i].OrderId = order.Id
		}
		items, err = database.QueryTx[tables.OrderItem](os.db, tx).InsertMany(ctx, items)
		if err != nil {
			return nil, err
		}

		event := &tables.OrderEvent{
			OrderId:     order.Id,
			EventType:   tables.OrderEventStatusChange,
			Description: fmt.Sprintf("Order placed with status %s", order.Status),
			CreatedById: &user.Id,
		}
		if _, err := database.QueryTx[tables.OrderEvent](os.db, tx).Insert(ctx, event); err != nil {
			return nil, err
		}

		if _, err := database.QueryTx[tables.CartItem](os.db, tx).Where("cart_id", cart.Id).Delete(ctx); err != nil {
			return nil, err
		}

		itemsCopy := make([]*tables.OrderItem, len(items))
		for i := range items {
			itemsCopy[i] = &items[i]
		}
		order.Items = itemsCopy
		return order, nil
	})
	if err != nil {
		mapped := lib.MapPgError(err)
		if errors.Is(mapped, ErrInvalidCoupon) || errors.Is(mapped, ErrInsufficientStock) || errors.Is(mapped, ErrProductUnavailable) {
			os.logger.Warn("Checkout rejected",
				gecho.Field("user_id", user.Id),
				gecho.Field("reason", mapped.Error()),
			)
		} else {
			os.logger.Error("Checkout failed", gecho.Field("error", mapped), gecho.Field("user_id", user.Id))
		}
		return nil, mapped
	}

	os.logger.Info("Order placed",
		gecho.Field("order_number", order.OrderNumber),
		gecho.Field("user_id", user.Id),
		gecho.Field("total", order.TotalAmount),
		gecho.Field("elapsed_ms", time.Since(startTime).Milliseconds()),
	)

	// Best effort, the order stands even if the email fails
	go func() {
		if err := os.emailService.SendOrderConfirmationEmail(user.Email, user.Username, order); err != nil {
			os.logger.Warn("Failed to send order confirmation email",
				gecho.Field("error", err),
				gecho.Field("order_number", order.OrderNumber),
			)
		}
	}()

	return order, nil
}

// orderBillingAddress falls back to the shipping address when the checkout
// request named no billing address, so every order stores both.
func orderBillingAddress(shipping, billing *tables.Address) *tables.Address {
	if billing == nil {
		return shipping
	}
	return billing
}

// orderItemFromLine snapshots a cart line into an order item: current catalog
// name, SKU, effective price and the exact color/size variant.
func orderItemFromLine(line *tables.CartItem) tables.OrderItem {
	unitPrice := line.Product.EffectivePrice()
	item := tables.OrderItem{
		ProductId:   &line.ProductId,
		ProductName: line.Product.Name,
		ProductSku:  line.Product.Sku,
		ColorId:     line.ColorId,
		SizeId:      line.SizeId,
		UnitPrice:   unitPrice,
		Quantity:    line.Quantity,
		TotalPrice:  unitPrice * int64(line.Quantity),
	}
	if line.Color != nil {
		item.ColorName = line.Color.Name
	}
	if line.Size != nil {
		item.SizeName = line.Size.Name
	}
	return item
}

// decrementStock takes stock from the per-size row when the line has a size,
// otherwise from the product row. A sized line never touches product-level
// stock; the per-size row is authoritative for it, matching the cart's
// availability check.
func (os *OrderService) decrementStock(tx bun.Tx, line *tables.CartItem) error {
	ctx := context.Background()

	if line.SizeId != nil {
		q := database.QueryTx[tables.ProductSize](os.db, tx).
			Where("product_id", line.ProductId).
			Where("size_id", *line.SizeId).
			WhereOp("stock_quantity", ">=", line.Quantity)
		if line.ColorId != nil {
			q = q.Where("color_id", *line.ColorId)
		} else {
			q = q.WhereNull("color_id")
		}

		count, err := q.Update(ctx, map[string]any{
			"stock_quantity": bun.Safe(fmt.Sprintf("stock_quantity - %d", line.Quantity)),
		})
		if err != nil {
			return err
		}
		if count == 0 {
			return ErrInsufficientStock
		}
		return nil
	}

	count, err := database.QueryTx[tables.Product](os.db, tx).
		Where("id", line.ProductId).
		WhereOp("stock_quantity", ">=", line.Quantity).
		Update(ctx, map[string]any{
			"stock_quantity": bun.Safe(fmt.Sprintf("stock_quantity - %d", line.Quantity)),
			"updated_at":     time.Now(),
		})
	if err != nil {
		return err
	}
	if count == 0 {
		return ErrInsufficientStock
	}
	return nil
}

// restoreStock puts a cancelled item's quantity back on the same row the
// checkout took it from.
func (os *OrderService) restoreStock(tx bun.Tx, item *tables.OrderItem) error {
	ctx := context.Background()

	if item.SizeId != nil {
		q := database.QueryTx[tables.ProductSize](os.db, tx).
			Where("product_id", *item.ProductId).
			Where("size_id", *item.SizeId)
		if item.ColorId != nil {
			q = q.Where("color_id", *item.ColorId)
		} else {
			q = q.WhereNull("color_id")
		}

		_, err := q.Update(ctx, map[string]any{
			"stock_quantity": bun.Safe(fmt.Sprintf("stock_quantity + %d", item.Quantity)),
		})
		return err
	}

	_, err := database.QueryTx[tables.Product](os.db, tx).
		Where("id", *item.ProductId).
		Update(ctx, map[string]any{
			"stock_quantity": bun.Safe(fmt.Sprintf("stock_quantity + %d", item.Quantity)),
		})
	return err
}

func (os *OrderService) ownedAddress(userId, addressId uuid.UUID) (*tables.Address, error) {
	address, err := database.Query[tables.Address](os.db).
		Where("id", addressId).
		Where("user_id", userId).
		First(context.Background())
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	if address == nil {
		return nil, lib.ErrNotFound
	}
	return address, nil
}

// ListOrders returns the user's orders newest first
func (os *OrderService) ListOrders(userId uuid.UUID, page, pageSize int) (*database.PaginationResult[tables.Order], error) {
	q := database.Query[tables.Order](os.db).
		Where("user_id", userId).
		With("Items").
		OrderBy("created_at", database.DESC)

	result, err := database.Paginate(q, context.Background(), page, pageSize)
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	return result, nil
}

// GetOrder returns one order with all detail relations. When userId is
// non-nil the order must belong to that user (customer view); staff pass nil.
func (os *OrderService) GetOrder(orderId uuid.UUID, userId *uuid.UUID) (*tables.Order, error) {
	q := database.Query[tables.Order](os.db).
		Where("o.id", orderId).
		With("Items").
		With("Events").
		With("ShippingAddress").
		With("BillingAddress").
		With("Coupon")
	if userId != nil {
		q = q.Where("o.user_id", *userId)
	} else {
		q = q.With("User")
	}

	order, err := q.First(context.Background())
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	if order == nil {
		return nil, lib.ErrNotFound
	}
	if order.User != nil {
		order.User.PasswordHash = ""
	}
	return order, nil
}

// cancelDescription phrases the cancellation event, carrying the customer's
// reason when one was given.
func cancelDescription(reason string) string {
	if reason == "" {
		return "Order cancelled by customer"
	}
	return fmt.Sprintf("Order cancelled. Reason: %s", reason)
}

// CancelOrder cancels the user's order unless it has shipped or been
// delivered. Stock is restored for lines whose product still exists.
func (os *OrderService) CancelOrder(orderId, userId uuid.UUID, reason string) (*tables.Order, error) {
	order, err := os.GetOrder(orderId, &userId)
	if err != nil {
		return nil, err
	}
	if !order.CanCancel() {
		return nil, ErrCannotCancel
	}

	result, err := database.TransactionWithResult(context.Background(), func(tx bun.Tx) (*tables.Order, error) {
		ctx := context.Background()

		results, err := database.QueryTx[tables.Order](os.db, tx).
			Where("id", orderId).
			UpdateReturning(ctx, map[string]any{
				"status":     tables.OrderStatusCancelled,
				"updated_at": time.Now(),
			})
		if err != nil {
			return nil, err
		}
		if len(results) == 0 {
			return nil, lib.ErrNotFound
		}

		for _, item := range order.Items {
			if item.ProductId == nil {
				continue
			}
			if err := os.restoreStock(tx, item); err != nil {
				return nil, err
			}
		}

		event := &tables.OrderEvent{
			OrderId:     orderId,
			EventType:   tables.OrderEventStatusChange,
			Description: cancelDescription(reason),
			CreatedById: &userId,
		}
		if _, err := database.QueryTx[tables.OrderEvent](os.db, tx).Insert(ctx, event); err != nil {
			return nil, err
		}

		return &results[0], nil
	})
	if err != nil {
		os.logger.Error("Failed to cancel order", gecho.Field("error", err), gecho.Field("order_id", orderId))
		return nil, lib.MapPgError(err)
	}

	os.logger.Info("Order cancelled", gecho.Field("order_number", order.OrderNumber), gecho.Field("user_id", userId))
	return result, nil
}

// AddNote appends a note event to the user's own order
func (os *OrderService) AddNote(orderId, userId uuid.UUID, note string) (*tables.OrderEvent, error) {
	if _, err := os.GetOrder(orderId, &userId); err != nil {
		return nil, err
	}

	event := &tables.OrderEvent{
		OrderId:     orderId,
		EventType:   tables.OrderEventNoteAdded,
		Description: note,
		CreatedById: &userId,
	}
	result, err := database.Query[tables.OrderEvent](os.db).Insert(context.Background(), event)
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	return result, nil
}

// Staff operations

// ListAllOrders returns a filtered, paginated order listing for staff
func (os *OrderService) ListAllOrders(opts *structs.OrderListOptions) (*database.PaginationResult[tables.Order], error) {
	q := database.Query[tables.Order](os.db).
		With("Items").
		With("User").
		OrderBy("created_at", database.DESC)

	if opts.Status != "" {
		q = q.Where("o.status", opts.Status)
	}
	if opts.PaymentStatus != "" {
		q = q.Where("o.payment_status", opts.PaymentStatus)
	}
	if opts.Search != "" {
		q = q.WhereOp("o.order_number", "ILIKE", "%"+opts.Search+"%")
	}

	result, err := database.Paginate(q, context.Background(), opts.Page, opts.PageSize)
	if err != nil {
		return nil, lib.MapPgError(err)
	}

	for i := range result.Data {
		if result.Data[i].User != nil {
			result.Data[i].User.PasswordHash = ""
		}
	}
	return result, nil
}

// UpdateStatus sets the order status, appending a status_change event and a
// tracking_updated event when tracking details are supplied.
func (os *OrderService) UpdateStatus(orderId uuid.UUID, staffId uuid.UUID, req *structs.UpdateOrderStatusRequest) (*tables.Order, error) {
	order, err := os.GetOrder(orderId, nil)
	if err != nil {
		return nil, err
	}

	result, err := database.TransactionWithResult(context.Background(), func(tx bun.Tx) (*tables.Order, error) {
		ctx := context.Background()

		updates := map[string]any{
			"status":     req.Status,
			"updated_at": time.Now(),
		}
		if req.TrackingNumber != "" {
			updates["tracking_number"] = req.TrackingNumber
		}
		if req.Carrier != "" {
			updates["carrier"] = req.Carrier
		}

		results, err := database.QueryTx[tables.Order](os.db, tx).
			Where("id", orderId).
			UpdateReturning(ctx, updates)
		if err != nil {
			return nil, err
		}
		if len(results) == 0 {
			return nil, lib.ErrNotFound
		}

		event := &tables.OrderEvent{
			OrderId:     orderId,
			EventType:   tables.OrderEventStatusChange,
			Description: fmt.Sprintf("Status changed from %s to %s", order.Status, req.Status),
			CreatedById: &staffId,
		}
		if _, err := database.QueryTx[tables.OrderEvent](os.db, tx).Insert(ctx, event); err != nil {
			return nil, err
		}

		if req.TrackingNumber != "" {
			tracking := &tables.OrderEvent{
				OrderId:     orderId,
				EventType:   tables.OrderEventTrackingUpdated,
				Description: fmt.Sprintf("Tracking number set to %s (%s)", req.TrackingNumber, req.Carrier),
				CreatedById: &staffId,
			}
			if _, err := database.QueryTx[tables.OrderEvent](os.db, tx).Insert(ctx, tracking); err != nil {
				return nil, err
			}
		}

		return &results[0], nil
	})
	if err != nil {
		os.logger.Error("Failed to update order status", gecho.Field("error", err), gecho.Field("order_id", orderId))
		return nil, lib.MapPgError(err)
	}

	return result, nil
}

// UpdatePaymentStatus sets the payment status and appends a payment_update event
func (os *OrderService) UpdatePaymentStatus(orderId uuid.UUID, staffId uuid.UUID, req *structs.UpdatePaymentStatusRequest) (*tables.Order, error) {
	order, err := os.GetOrder(orderId, nil)
	if err != nil {
		return nil, err
	}

	result, err := database.TransactionWithResult(context.Background(), func(tx bun.Tx) (*tables.Order, error) {
		ctx := context.Background()

		updates := map[string]any{
			"payment_status": req.PaymentStatus,
			"updated_at":     time.Now(),
		}
		if req.PaymentMethod != "" {
			updates["payment_method"] = req.PaymentMethod
		}

		results, err := database.QueryTx[tables.Order](os.db, tx).
			Where("id", orderId).
			UpdateReturning(ctx, updates)
		if err != nil {
			return nil, err
		}
		if len(results) == 0 {
			return nil, lib.ErrNotFound
		}

		event := &tables.OrderEvent{
			OrderId:     orderId,
			EventType:   tables.OrderEventPaymentUpdate,
			Description: fmt.Sprintf("Payment status changed from %s to %s", order.PaymentStatus, req.PaymentStatus),
			CreatedById: &staffId,
		}
		if _, err := database.QueryTx[tables.OrderEvent](os.db, tx).Insert(ctx, event); err != nil {
			return nil, err
		}

		return &results[0], nil
	})
	if err != nil {
		os.logger.Error("Failed to update payment status", gecho.Field("error", err), gecho.Field("order_id", orderId))
		return nil, lib.MapPgError(err)
	}

	return result, nil
}

// DeleteOrder removes an order outright. Items and events follow via FK
// cascades. Staff surface only; customers cancel instead.
func (os *OrderService) DeleteOrder(orderId uuid.UUID) error {
	deleted, err := database.Query[tables.Order](os.db).Where("id", orderId).Delete(context.Background())
	if err != nil {
		os.logger.Error("Failed to delete order", gecho.Field("error", err), gecho.Field("order_id", orderId))
		return lib.MapPgError(err)
	}
	if deleted == 0 {
		return lib.ErrNotFound
	}
	return nil
}
