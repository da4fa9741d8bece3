package entity

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	Id                    uuid.UUID
	Email                 string
	PasswordHash          *string
	Username              string
	EmergencyContactEmail *string
	WearableAccessToken   *string // Fitbit OAuth token, nil when not linked
	WearableRefreshToken  *string
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// HasWearableLinked reports whether a wearable account is connected.
func (u *User) HasWearableLinked() bool {
	return u != nil && u.WearableAccessToken != nil && *u.WearableAccessToken != ""
}
