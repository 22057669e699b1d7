package people

import "tenniscourt/internal/domain"

type CreatePersonRequest struct {
	Name           string   `json:"name" binding:"required" validate:"required,max=255"`
	Email          string   `json:"email" validate:"omitempty,email"`
	Phone          string   `json:"phone" validate:"omitempty,max=32"`
	Roles          []string `json:"roles" binding:"required" validate:"min=1,max=2,dive,oneof=client participant"`
	OwningClientID *int64   `json:"owning_client_id,omitempty" validate:"omitempty,gt=0"`
}

type SetOwnerRequest struct {
	ClientID int64 `json:"client_id" binding:"required" validate:"gt=0"`
}

// PersonResponse is a person together with the participants they own.
type PersonResponse struct {
	*domain.Person
	Participants []int64 `json:"participant_ids"`
}

type TotalResponse struct {
	ClientID int64   `json:"client_id"`
	Total    float64 `json:"total"`
}
