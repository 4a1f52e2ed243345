package orders

import (
	"errors"
	"net/http"

	"fairfoul_server/api/middleware"
	"fairfoul_server/handling"
	"fairfoul_server/lib"
	"fairfoul_server/services"
	"fairfoul_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func (orm *OrderRoutesManager) ListOrders(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaimsFromContext(r.Context())
	if !ok {
		gecho.Unauthorized(w, gecho.WithMessage("Not logged in"), gecho.Send())
		return
	}

	page, pageSize := handling.ParsePagination(r)

	result, err := orm.orderService.ListOrders(claims.Sub, page, pageSize)
	if err != nil {
		orm.logger.Error("Failed to list orders", gecho.Field("error", err), gecho.Field("userID", claims.Sub))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to fetch orders"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithData(result),
		gecho.Send(),
	)
}

func (orm *OrderRoutesManager) GetOrder(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaimsFromContext(r.Context())
	if !ok {
		gecho.Unauthorized(w, gecho.WithMessage("Not logged in"), gecho.Send())
		return
	}

	orderId, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("Invalid order ID"), gecho.Send())
		return
	}

	order, err := orm.orderService.GetOrder(orderId, &claims.Sub)
	if err != nil {
		if errors.Is(err, lib.ErrNotFound) {
			gecho.NotFound(w, gecho.WithMessage("Order not found"), gecho.Send())
			return
		}
		orm.logger.Error("Failed to fetch order", gecho.Field("error", err), gecho.Field("orderID", orderId))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to fetch order"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithData(order),
		gecho.Send(),
	)
}

func (orm *OrderRoutesManager) CancelOrder(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaimsFromContext(r.Context())
	if !ok {
		gecho.Unauthorized(w, gecho.WithMessage("Not logged in"), gecho.Send())
		return
	}

	orderId, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("Invalid order ID"), gecho.Send())
		return
	}

	// The reason is optional, an empty or absent body cancels without one
	var reason string
	if body, err := lib.ExtractAndValidateBody[structs.CancelOrderRequest](r); err == nil {
		reason = body.Reason
	}

	order, err := orm.orderService.CancelOrder(orderId, claims.Sub, reason)
	if err != nil {
		switch {
		case errors.Is(err, lib.ErrNotFound):
			gecho.NotFound(w, gecho.WithMessage("Order not found"), gecho.Send())
		case errors.Is(err, services.ErrCannotCancel):
			gecho.BadRequest(w, gecho.WithMessage("This order can no longer be cancelled"), gecho.Send())
		default:
			orm.logger.Error("Failed to cancel order", gecho.Field("error", err), gecho.Field("orderID", orderId))
			gecho.InternalServerError(w, gecho.WithMessage("Unable to cancel order"), gecho.Send())
		}
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Order cancelled"),
		gecho.WithData(order),
		gecho.Send(),
	)
}

func (orm *OrderRoutesManager) AddOrderNote(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaimsFromContext(r.Context())
	if !ok {
		gecho.Unauthorized(w, gecho.WithMessage("Not logged in"), gecho.Send())
		return
	}

	orderId, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("Invalid order ID"), gecho.Send())
		return
	}

	body, err := lib.ExtractAndValidateBody[structs.OrderNoteRequest](r)
	if err != nil {
		orm.logger.Warn("Failed to extract note body", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage("Please check your note and try again"), gecho.Send())
		return
	}

	event, err := orm.orderService.AddNote(orderId, claims.Sub, body.Note)
	if err != nil {
		if errors.Is(err, lib.ErrNotFound) {
			gecho.NotFound(w, gecho.WithMessage("Order not found"), gecho.Send())
			return
		}
		orm.logger.Error("Failed to add order note", gecho.Field("error", err), gecho.Field("orderID", orderId))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to add note"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Note added"),
		gecho.WithData(event),
		gecho.Send(),
	)
}
