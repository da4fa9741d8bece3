package dto

import (
	"time"

	"github.com/google/uuid"
)

type UserProfileResponse struct {
	Id                    uuid.UUID `json:"id"`
	Email                 string    `json:"email"`
	Username              string    `json:"username"`
	EmergencyContactEmail *string   `json:"emergency_contact_email,omitempty"`
	WearableLinked        bool      `json:"wearable_linked"`
	CreatedAt             time.Time `json:"created_at"`
}

type UpdateProfileRequest struct {
	Username              string  `json:"username" validate:"omitempty,min=3,max=50"`
	EmergencyContactEmail *string `json:"emergency_contact_email" validate:"omitempty,email"`
}

type LinkWearableRequest struct {
	AccessToken  string `json:"access_token" validate:"required"`
	RefreshToken string `json:"refresh_token" validate:"required"`
}
