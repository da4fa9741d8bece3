package contract

import (
	"context"

	"mindmate-be/internal/entity"
	"mindmate-be/internal/repository/specification"

	"github.com/google/uuid"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	Update(ctx context.Context, user *entity.User) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	UpdateEmergencyContact(ctx context.Context, userId uuid.UUID, contactEmail *string) error
	UpdateWearableTokens(ctx context.Context, userId uuid.UUID, accessToken, refreshToken string) error
}
