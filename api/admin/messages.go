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

func (arm *AdminRoutesManager) ListMessages(w http.ResponseWriter, r *http.Request) {
	page, pageSize := handling.ParsePagination(r)
	status := r.URL.Query().Get("status")

	result, err := arm.contactService.ListMessages(page, pageSize, status)
	if err != nil {
		arm.logger.Error("Failed to list contact messages", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to fetch messages"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithData(result),
		gecho.Send(),
	)
}

func (arm *AdminRoutesManager) GetMessage(w http.ResponseWriter, r *http.Request) {
	messageId, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("Invalid message ID"), gecho.Send())
		return
	}

	message, err := arm.contactService.GetMessage(messageId)
	if err != nil {
		if errors.Is(err, lib.ErrNotFound) {
			gecho.NotFound(w, gecho.WithMessage("Message not found"), gecho.Send())
			return
		}
		arm.logger.Error("Failed to fetch contact message", gecho.Field("error", err), gecho.Field("messageID", messageId))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to fetch message"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithData(message),
		gecho.Send(),
	)
}

func (arm *AdminRoutesManager) UpdateMessage(w http.ResponseWriter, r *http.Request) {
	claims, _ := middleware.GetClaimsFromContext(r.Context())

	messageId, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("Invalid message ID"), gecho.Send())
		return
	}

	body, err := lib.ExtractAndValidateBody[structs.UpdateContactMessageRequest](r)
	if err != nil {
		arm.logger.Warn("Failed to extract message body", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage("Please check the message details and try again"), gecho.Send())
		return
	}

	message, err := arm.contactService.UpdateMessage(messageId, body)
	if err != nil {
		if errors.Is(err, lib.ErrNotFound) {
			gecho.NotFound(w, gecho.WithMessage("Message not found"), gecho.Send())
			return
		}
		arm.logger.Error("Failed to update contact message", gecho.Field("error", err), gecho.Field("messageID", messageId))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to update message"), gecho.Send())
		return
	}

	arm.adminService.RecordActivity(&claims.Sub, tables.AdminActionUpdate, "contact_message", message.Id.String(),
		"Updated contact message", middleware.ClientIP(r))

	gecho.Success(w,
		gecho.WithMessage("Message updated"),
		gecho.WithData(message),
		gecho.Send(),
	)
}

func (arm *AdminRoutesManager) DeleteMessage(w http.ResponseWriter, r *http.Request) {
	claims, _ := middleware.GetClaimsFromContext(r.Context())

	messageId, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("Invalid message ID"), gecho.Send())
		return
	}

	if err := arm.contactService.DeleteMessage(messageId); err != nil {
		if errors.Is(err, lib.ErrNotFound) {
			gecho.NotFound(w, gecho.WithMessage("Message not found"), gecho.Send())
			return
		}
		arm.logger.Error("Failed to delete contact message", gecho.Field("error", err), gecho.Field("messageID", messageId))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to delete message"), gecho.Send())
		return
	}

	arm.adminService.RecordActivity(&claims.Sub, tables.AdminActionDelete, "contact_message", messageId.String(),
		"Deleted contact message", middleware.ClientIP(r))

	gecho.Success(w,
		gecho.WithMessage("Message deleted"),
		gecho.Send(),
	)
}
