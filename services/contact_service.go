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

type ContactService struct {
	logger       *gecho.Logger
	db           *database.DB
	emailService *EmailService
}

func NewContactService(logger *gecho.Logger, db *database.DB, emailService *EmailService) *ContactService {
	return &ContactService{
		logger:       logger,
		db:           db,
		emailService: emailService,
	}
}

// SubmitMessage stores a contact form submission and notifies support by
// email on a best-effort basis.
func (cs *ContactService) SubmitMessage(req *structs.ContactRequest) (*tables.ContactMessage, error) {
	message := &tables.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Subject: req.Subject,
		Message: req.Message,
		Status:  tables.ContactStatusNew,
	}

	result, err := database.Query[tables.ContactMessage](cs.db).Insert(context.Background(), message)
	if err != nil {
		cs.logger.Error("Failed to store contact message", gecho.Field("error", err), gecho.Field("email", req.Email))
		return nil, lib.MapPgError(err)
	}

	// The submission stands even when the notification fails
	go func() {
		if err := cs.emailService.SendContactNotificationEmail(result); err != nil {
			cs.logger.Warn("Failed to send contact notification email",
				gecho.Field("error", err),
				gecho.Field("message_id", result.Id),
			)
		}
	}()

	return result, nil
}

// ListMessages returns a filtered, paginated message listing for staff
func (cs *ContactService) ListMessages(page, pageSize int, status string) (*database.PaginationResult[tables.ContactMessage], error) {
	q := database.Query[tables.ContactMessage](cs.db).OrderBy("created_at", database.DESC)
	if status != "" {
		q = q.Where("status", status)
	}

	result, err := database.Paginate(q, context.Background(), page, pageSize)
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	return result, nil
}

func (cs *ContactService) GetMessage(id uuid.UUID) (*tables.ContactMessage, error) {
	message, err := database.Query[tables.ContactMessage](cs.db).Where("id", id).First(context.Background())
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	if message == nil {
		return nil, lib.ErrNotFound
	}
	return message, nil
}

// UpdateMessage applies status and admin note changes
func (cs *ContactService) UpdateMessage(id uuid.UUID, req *structs.UpdateContactMessageRequest) (*tables.ContactMessage, error) {
	updates := map[string]any{"updated_at": time.Now()}
	if req.Status != nil {
		updates["status"] = *req.Status
	}
	if req.AdminNote != nil {
		updates["admin_note"] = *req.AdminNote
	}

	results, err := database.Query[tables.ContactMessage](cs.db).Where("id", id).UpdateReturning(context.Background(), updates)
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	if len(results) == 0 {
		return nil, lib.ErrNotFound
	}
	return &results[0], nil
}

func (cs *ContactService) DeleteMessage(id uuid.UUID) error {
	count, err := database.Query[tables.ContactMessage](cs.db).Where("id", id).Delete(context.Background())
	if err != nil {
		return lib.MapPgError(err)
	}
	if count == 0 {
		return lib.ErrNotFound
	}
	return nil
}
