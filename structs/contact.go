package structs

type ContactRequest struct {
	Name    string `json:"name" validate:"required,min=2,max=255"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone" validate:"omitempty,min=7,max=15"`
	Subject string `json:"subject" validate:"required,min=2,max=255"`
	Message string `json:"message" validate:"required,min=5,max=5000"`
}

type UpdateContactMessageRequest struct {
	Status    *string `json:"status" validate:"omitempty,oneof=new in_progress resolved closed"`
	AdminNote *string `json:"admin_note" validate:"omitempty,max=4000"`
}
