package service

import (
	"context"
	"errors"

	"mindmate-be/internal/dto"
	"mindmate-be/internal/entity"
	"mindmate-be/internal/repository/memory"
	"mindmate-be/internal/repository/specification"
	"mindmate-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IUserService interface {
	GetProfile(ctx context.Context, userId uuid.UUID) (*dto.UserProfileResponse, error)
	UpdateProfile(ctx context.Context, userId uuid.UUID, req *dto.UpdateProfileRequest) error
	LinkWearable(ctx context.Context, userId uuid.UUID, req *dto.LinkWearableRequest) error

	// GetUser returns the cached entity for internal collaborators
	// (orchestration, crisis path). Controllers use GetProfile.
	GetUser(ctx context.Context, userId uuid.UUID) (*entity.User, error)
}

type userService struct {
	uowFactory   unitofwork.RepositoryFactory
	profileCache *memory.ProfileCache
}

func NewUserService(uowFactory unitofwork.RepositoryFactory, profileCache *memory.ProfileCache) IUserService {
	return &userService{
		uowFactory:   uowFactory,
		profileCache: profileCache,
	}
}

func (s *userService) GetUser(ctx context.Context, userId uuid.UUID) (*entity.User, error) {
	if cached, found := s.profileCache.Get(userId); found {
		return cached, nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.New("user not found")
	}

	s.profileCache.Save(user)
	return user, nil
}

func (s *userService) GetProfile(ctx context.Context, userId uuid.UUID) (*dto.UserProfileResponse, error) {
	user, err := s.GetUser(ctx, userId)
	if err != nil {
		return nil, err
	}

	return &dto.UserProfileResponse{
		Id:                    user.Id,
		Email:                 user.Email,
		Username:              user.Username,
		EmergencyContactEmail: user.EmergencyContactEmail,
		WearableLinked:        user.HasWearableLinked(),
		CreatedAt:             user.CreatedAt,
	}, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userId uuid.UUID, req *dto.UpdateProfileRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return err
	}
	if user == nil {
		return errors.New("user not found")
	}

	if req.Username != "" {
		user.Username = req.Username
		if err := uow.UserRepository().Update(ctx, user); err != nil {
			return err
		}
	}

	if err := uow.UserRepository().UpdateEmergencyContact(ctx, userId, req.EmergencyContactEmail); err != nil {
		return err
	}

	s.profileCache.Invalidate(userId)
	return nil
}

func (s *userService) LinkWearable(ctx context.Context, userId uuid.UUID, req *dto.LinkWearableRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if err := uow.UserRepository().UpdateWearableTokens(ctx, userId, req.AccessToken, req.RefreshToken); err != nil {
		return err
	}

	s.profileCache.Invalidate(userId)
	return nil
}
