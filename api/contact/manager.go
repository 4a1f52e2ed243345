package contact

import (
	"fairfoul_server/services"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type ContactRoutesManager struct {
	logger         *gecho.Logger
	contactService *services.ContactService
}

func NewContactRoutesManager(logger *gecho.Logger, contactService *services.ContactService) *ContactRoutesManager {
	return &ContactRoutesManager{
		logger:         logger,
		contactService: contactService,
	}
}

func (crm *ContactRoutesManager) RegisterRoutes(r chi.Router) {
	r.Post("/contact", crm.SubmitMessage)
}
