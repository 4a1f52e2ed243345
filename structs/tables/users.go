package tables

import (
	"time"

	"github.com/google/uuid"
)

type AuthResponse struct {
	User         *User  `json:"user"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type UserRole string

const (
	RoleUser       UserRole = "user"
	RoleAdmin      UserRole = "admin"
	RoleSuperAdmin UserRole = "superadmin"
)

type User struct {
	tableName     struct{}  `bun:"table:users,alias:u"`
	Id            uuid.UUID `json:"id" bun:"id,pk,type:uuid,default:gen_random_uuid()"`
	Username      string    `json:"username" bun:"username,unique,notnull"`
	Email         string    `json:"email" bun:"email,unique,notnull"`
	PasswordHash  string    `json:"-" bun:"password_hash,notnull"`
	FirstName     string    `json:"first_name" bun:"first_name"`
	LastName      string    `json:"last_name" bun:"last_name"`
	PhoneNumber   string    `json:"phone_number" bun:"phone_number"`
	Role          UserRole  `json:"role" bun:"role,notnull,default:'user'"`
	IsActive      bool      `json:"is_active" bun:"is_active,notnull,default:true"`
	EmailVerified bool      `json:"email_verified" bun:"email_verified,notnull,default:false"`
	LastLogin     time.Time `json:"last_login" bun:"last_login,default:now()"`
	CreatedAt     time.Time `json:"created_at" bun:"created_at,notnull,default:now()"`
	UpdatedAt     time.Time `json:"updated_at" bun:"updated_at,notnull,default:now()"`
}

// IsStaff reports whether the user passes the staff gate.
func (u *User) IsStaff() bool {
	return u.Role == RoleAdmin || u.Role == RoleSuperAdmin
}

// IsSuperuser reports whether the user passes the superuser gate.
func (u *User) IsSuperuser() bool {
	return u.Role == RoleSuperAdmin
}

type EmailVerification struct {
	tableName struct{}  `bun:"table:email_verifications,alias:ev"`
	Id        uuid.UUID `bun:"id,pk,type:uuid,default:gen_random_uuid()"`
	UserId    uuid.UUID `bun:"user_id,notnull,type:uuid"`
	Token     string    `bun:"token,notnull,unique"`
	ExpiresAt time.Time `bun:"expires_at,notnull"`
	Used      bool      `bun:"used,notnull,default:false"`
	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp"`
	User      *User     `bun:"rel:belongs-to,join:user_id=id,on_delete:cascade"`
}

type AddressType string

const (
	AddressTypeShipping AddressType = "shipping"
	AddressTypeBilling  AddressType = "billing"
	AddressTypeBoth     AddressType = "both"
)

type Address struct {
	tableName    struct{}    `bun:"table:addresses,alias:a"`
	Id           uuid.UUID   `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	UserId       uuid.UUID   `bun:"user_id,notnull,type:uuid" json:"user_id"`
	AddressType  AddressType `bun:"address_type,notnull,default:'both'" json:"address_type" validate:"omitempty,oneof=shipping billing both"`
	IsDefault    bool        `bun:"is_default,notnull,default:false" json:"is_default"`
	FullName     string      `bun:"full_name,notnull" json:"full_name" validate:"required,min=2,max=255"`
	PhoneNumber  string      `bun:"phone_number,notnull" json:"phone_number" validate:"required,min=7,max=15"`
	AddressLine1 string      `bun:"address_line1,notnull" json:"address_line1" validate:"required,max=255"`
	AddressLine2 string      `bun:"address_line2" json:"address_line2,omitempty" validate:"omitempty,max=255"`
	City         string      `bun:"city,notnull" json:"city" validate:"required,max=100"`
	State        string      `bun:"state,notnull" json:"state" validate:"required,max=100"`
	PostalCode   string      `bun:"postal_code,notnull" json:"postal_code" validate:"required,max=20"`
	Country      string      `bun:"country,notnull,default:'United States'" json:"country"`
	CreatedAt    time.Time   `bun:"created_at,notnull,default:now()" json:"created_at"`
	UpdatedAt    time.Time   `bun:"updated_at,notnull,default:now()" json:"updated_at"`
}

// OverlappingTypes returns the address types whose defaults conflict with
// this address. A "both" default displaces shipping and billing defaults,
// and vice versa.
func (a *Address) OverlappingTypes() []AddressType {
	if a.AddressType == AddressTypeBoth {
		return []AddressType{AddressTypeShipping, AddressTypeBilling, AddressTypeBoth}
	}
	return []AddressType{a.AddressType, AddressTypeBoth}
}
