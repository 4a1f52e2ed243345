package tables

import (
	"time"

	"github.com/google/uuid"
)

type ContactStatus string

const (
	ContactStatusNew        ContactStatus = "new"
	ContactStatusInProgress ContactStatus = "in_progress"
	ContactStatusResolved   ContactStatus = "resolved"
	ContactStatusClosed     ContactStatus = "closed"
)

type ContactMessage struct {
	tableName struct{}      `bun:"table:contact_messages,alias:cm"`
	Id        uuid.UUID     `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	Name      string        `bun:"name,notnull" json:"name" validate:"required,min=2,max=255"`
	Email     string        `bun:"email,notnull" json:"email" validate:"required,email"`
	Phone     string        `bun:"phone" json:"phone,omitempty" validate:"omitempty,min=7,max=15"`
	Subject   string        `bun:"subject,notnull" json:"subject" validate:"required,min=2,max=255"`
	Message   string        `bun:"message,notnull" json:"message" validate:"required,min=5,max=5000"`
	Status    ContactStatus `bun:"status,notnull,default:'new'" json:"status"`
	AdminNote string        `bun:"admin_note" json:"admin_note,omitempty"`
	CreatedAt time.Time     `bun:"created_at,notnull,default:now()" json:"created_at"`
	UpdatedAt time.Time     `bun:"updated_at,notnull,default:now()" json:"updated_at"`
}
