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

func (arm *AdminRoutesManager) ListOrders(w http.ResponseWriter, r *http.Request) {
	opts, err := handling.ParseOrderListOptions(r)
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("Invalid query parameters"), gecho.Send())
		return
	}

	result, err := arm.orderService.ListAllOrders(opts)
	if err != nil {
		arm.logger.Error("Failed to list orders", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to fetch orders"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithData(result),
		gecho.Send(),
	)
}

func (arm *AdminRoutesManager) GetOrder(w http.ResponseWriter, r *http.Request) {
	orderId, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("Invalid order ID"), gecho.Send())
		return
	}

	// nil user means no ownership filter, staff can see any order
	order, err := arm.orderService.GetOrder(orderId, nil)
	if err != nil {
		if errors.Is(err, lib.ErrNotFound) {
			gecho.NotFound(w, gecho.WithMessage("Order not found"), gecho.Send())
			return
		}
		arm.logger.Error("Failed to fetch order", gecho.Field("error", err), gecho.Field("orderID", orderId))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to fetch order"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithData(order),
		gecho.Send(),
	)
}

func (arm *AdminRoutesManager) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	claims, _ := middleware.GetClaimsFromContext(r.Context())

	orderId, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("Invalid order ID"), gecho.Send())
		return
	}

	if err := arm.orderService.DeleteOrder(orderId); err != nil {
		if errors.Is(err, lib.ErrNotFound) {
			gecho.NotFound(w, gecho.WithMessage("Order not found"), gecho.Send())
			return
		}
		arm.logger.Error("Failed to delete order", gecho.Field("error", err), gecho.Field("orderID", orderId))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to delete order"), gecho.Send())
		return
	}

	arm.adminService.RecordActivity(&claims.Sub, tables.AdminActionDelete, "order", orderId.String(),
		"Deleted order", middleware.ClientIP(r))

	gecho.Success(w,
		gecho.WithMessage("Order deleted"),
		gecho.Send(),
	)
}

func (arm *AdminRoutesManager) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	claims, _ := middleware.GetClaimsFromContext(r.Context())

	orderId, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("Invalid order ID"), gecho.Send())
		return
	}

	body, err := lib.ExtractAndValidateBody[structs.UpdateOrderStatusRequest](r)
	if err != nil {
		arm.logger.Warn("Failed to extract status body", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage("Please check the status details and try again"), gecho.Send())
		return
	}

	order, err := arm.orderService.UpdateStatus(orderId, claims.Sub, body)
	if err != nil {
		if errors.Is(err, lib.ErrNotFound) {
			gecho.NotFound(w, gecho.WithMessage("Order not found"), gecho.Send())
			return
		}
		arm.logger.Error("Failed to update order status", gecho.Field("error", err), gecho.Field("orderID", orderId))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to update order status"), gecho.Send())
		return
	}

	arm.adminService.RecordActivity(&claims.Sub, tables.AdminActionStatusChange, "order", order.Id.String(),
		"Changed order "+order.OrderNumber+" status to "+body.Status, middleware.ClientIP(r))

	gecho.Success(w,
		gecho.WithMessage("Order status updated"),
		gecho.WithData(order),
		gecho.Send(),
	)
}

func (arm *AdminRoutesManager) UpdatePaymentStatus(w http.ResponseWriter, r *http.Request) {
	claims, _ := middleware.GetClaimsFromContext(r.Context())

	orderId, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("Invalid order ID"), gecho.Send())
		return
	}

	body, err := lib.ExtractAndValidateBody[structs.UpdatePaymentStatusRequest](r)
	if err != nil {
		arm.logger.Warn("Failed to extract payment body", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage("Please check the payment details and try again"), gecho.Send())
		return
	}

	order, err := arm.orderService.UpdatePaymentStatus(orderId, claims.Sub, body)
	if err != nil {
		if errors.Is(err, lib.ErrNotFound) {
			gecho.NotFound(w, gecho.WithMessage("Order not found"), gecho.Send())
			return
		}
		arm.logger.Error("Failed to update payment status", gecho.Field("error", err), gecho.Field("orderID", orderId))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to update payment status"), gecho.Send())
		return
	}

	arm.adminService.RecordActivity(&claims.Sub, tables.AdminActionStatusChange, "order", order.Id.String(),
		"Changed order "+order.OrderNumber+" payment status to "+body.PaymentStatus, middleware.ClientIP(r))

	gecho.Success(w,
		gecho.WithMessage("Payment status updated"),
		gecho.WithData(order),
		gecho.Send(),
	)
}
