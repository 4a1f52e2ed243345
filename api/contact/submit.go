package contact

import (
	"net/http"

	"fairfoul_server/lib"
	"fairfoul_server/structs"

	"github.com/MonkyMars/gecho"
)

func (crm *ContactRoutesManager) SubmitMessage(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.ContactRequest](r)
	if err != nil {
		crm.logger.Warn("Failed to extract contact body", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage("Please check your message and try again"), gecho.Send())
		return
	}

	message, err := crm.contactService.SubmitMessage(body)
	if err != nil {
		crm.logger.Error("Failed to submit contact message", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to send your message. Please try again"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Thank you for reaching out. We'll get back to you soon"),
		gecho.WithData(message),
		gecho.Send(),
	)
}
