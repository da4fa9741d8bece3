package service

import (
	"context"
	"errors"

	"mindmate-be/pkg/wearable"

	"github.com/google/uuid"
)

var ErrWearableNotLinked = errors.New("no wearable account linked")

type IWearableService interface {
	GetHistory(ctx context.Context, userId uuid.UUID, days int) (*wearable.WellnessSnapshot, error)
	GetRecentWellness(ctx context.Context, userId uuid.UUID) (*wearable.WellnessSnapshot, error)
}

// wearableService resolves a user's stored OAuth grant and calls the
// vendor client with it.
type wearableService struct {
	userService IUserService
	provider    wearable.Provider
}

func NewWearableService(userService IUserService, provider wearable.Provider) IWearableService {
	return &wearableService{
		userService: userService,
		provider:    provider,
	}
}

func (s *wearableService) tokens(ctx context.Context, userId uuid.UUID) (string, string, error) {
	user, err := s.userService.GetUser(ctx, userId)
	if err != nil {
		return "", "", err
	}
	if !user.HasWearableLinked() {
		return "", "", ErrWearableNotLinked
	}
	refresh := ""
	if user.WearableRefreshToken != nil {
		refresh = *user.WearableRefreshToken
	}
	return *user.WearableAccessToken, refresh, nil
}

func (s *wearableService) GetHistory(ctx context.Context, userId uuid.UUID, days int) (*wearable.WellnessSnapshot, error) {
	access, refresh, err := s.tokens(ctx, userId)
	if err != nil {
		return nil, err
	}
	return s.provider.GetRecent(ctx, access, refresh, days)
}

func (s *wearableService) GetRecentWellness(ctx context.Context, userId uuid.UUID) (*wearable.WellnessSnapshot, error) {
	access, refresh, err := s.tokens(ctx, userId)
	if err != nil {
		return nil, err
	}
	return s.provider.GetRecent(ctx, access, refresh, 1)
}
