package mapper

import (
	"mindmate-be/internal/entity"
	"mindmate-be/internal/model"
)

type UserMapper struct{}

func NewUserMapper() *UserMapper {
	return &UserMapper{}
}

func (m *UserMapper) ToEntity(u *model.User) *entity.User {
	if u == nil {
		return nil
	}
	return &entity.User{
		Id:                    u.Id,
		Email:                 u.Email,
		PasswordHash:          u.PasswordHash,
		Username:              u.Username,
		EmergencyContactEmail: u.EmergencyContactEmail,
		WearableAccessToken:   u.WearableAccessToken,
		WearableRefreshToken:  u.WearableRefreshToken,
		CreatedAt:             u.CreatedAt,
		UpdatedAt:             u.UpdatedAt,
	}
}

func (m *UserMapper) ToModel(u *entity.User) *model.User {
	if u == nil {
		return nil
	}
	return &model.User{
		Id:                    u.Id,
		Email:                 u.Email,
		PasswordHash:          u.PasswordHash,
		Username:              u.Username,
		EmergencyContactEmail: u.EmergencyContactEmail,
		WearableAccessToken:   u.WearableAccessToken,
		WearableRefreshToken:  u.WearableRefreshToken,
		CreatedAt:             u.CreatedAt,
		UpdatedAt:             u.UpdatedAt,
	}
}
