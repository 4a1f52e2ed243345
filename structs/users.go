package structs

type UpdateProfileRequest struct {
	FirstName   *string `json:"first_name" validate:"omitempty,max=100"`
	LastName    *string `json:"last_name" validate:"omitempty,max=100"`
	PhoneNumber *string `json:"phone_number" validate:"omitempty,min=7,max=15"`
}

type AddressRequest struct {
	AddressType  string `json:"address_type" validate:"omitempty,oneof=shipping billing both"`
	IsDefault    bool   `json:"is_default"`
	FullName     string `json:"full_name" validate:"required,min=2,max=255"`
	PhoneNumber  string `json:"phone_number" validate:"required,min=7,max=15"`
	AddressLine1 string `json:"address_line1" validate:"required,max=255"`
	AddressLine2 string `json:"address_line2" validate:"omitempty,max=255"`
	City         string `json:"city" validate:"required,max=100"`
	State        string `json:"state" validate:"required,max=100"`
	PostalCode   string `json:"postal_code" validate:"required,max=20"`
	Country      string `json:"country" validate:"omitempty,max=100"`
}

type UpdateAddressRequest struct {
	AddressType  *string `json:"address_type" validate:"omitempty,oneof=shipping billing both"`
	IsDefault    *bool   `json:"is_default"`
	FullName     *string `json:"full_name" validate:"omitempty,min=2,max=255"`
	PhoneNumber  *string `json:"phone_number" validate:"omitempty,min=7,max=15"`
	AddressLine1 *string `json:"address_line1" validate:"omitempty,max=255"`
	AddressLine2 *string `json:"address_line2" validate:"omitempty,max=255"`
	City         *string `json:"city" validate:"omitempty,max=100"`
	State        *string `json:"state" validate:"omitempty,max=100"`
	PostalCode   *string `json:"postal_code" validate:"omitempty,max=20"`
	Country      *string `json:"country" validate:"omitempty,max=100"`
}

// UpdateUserRequest is the superuser-only user management payload
type UpdateUserRequest struct {
	Role     *string `json:"role" validate:"omitempty,oneof=user admin superadmin"`
	IsActive *bool   `json:"is_active"`
}

// AdminCreateUserRequest lets a superuser provision an account directly,
// optionally with an elevated role.
type AdminCreateUserRequest struct {
	Email     string  `json:"email" validate:"required,email"`
	Password  string  `json:"password" validate:"required,min=8,max=128"`
	Username  string  `json:"username" validate:"required,min=3,max=150"`
	FirstName string  `json:"first_name" validate:"omitempty,max=100"`
	LastName  string  `json:"last_name" validate:"omitempty,max=100"`
	Role      *string `json:"role" validate:"omitempty,oneof=user admin superadmin"`
	IsActive  *bool   `json:"is_active"`
}

// ChangeRoleRequest sets a user's role (superuser only)
type ChangeRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=user admin superadmin"`
}
