package wearable

import "context"

// Provider fetches wellness history for a linked user. Tokens are supplied
// per call because each user carries their own grant.
type Provider interface {
	// GetRecent returns up to `days` daily summaries ending today.
	GetRecent(ctx context.Context, accessToken, refreshToken string, days int) (*WellnessSnapshot, error)
}
