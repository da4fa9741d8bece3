package access

import (
	"context"
	"fmt"
	"time"

	"mindmate-be/internal/dto"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Limiter enforces the per-user daily chat quota. Counters live in redis
// under a per-day key that expires shortly after local midnight, so the
// reset needs no scheduled job.
type Limiter struct {
	rdb   *redis.Client
	limit int
}

func NewLimiter(rdb *redis.Client, dailyLimit int) *Limiter {
	return &Limiter{
		rdb:   rdb,
		limit: dailyLimit,
	}
}

func (l *Limiter) key(userId uuid.UUID, now time.Time) string {
	return fmt.Sprintf("chat_limit:%s:%s", userId, now.Format("2006-01-02"))
}

// CheckAndIncrement consumes one unit of quota. It returns
// *dto.LimitExceededError when the user is over the daily limit.
// Limit < 0 means unlimited.
func (l *Limiter) CheckAndIncrement(ctx context.Context, userId uuid.UUID) error {
	if l.limit < 0 {
		return nil
	}

	now := time.Now()
	key := l.key(userId, now)

	count, err := l.rdb.Incr(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("failed to increment usage counter: %w", err)
	}

	if count == 1 {
		// Key lives until just past midnight; a small buffer covers clock skew.
		midnight := time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, now.Location())
		l.rdb.Expire(ctx, key, time.Until(midnight)+time.Minute)
	}

	if int(count) > l.limit {
		resetTime := time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, now.Location())
		return &dto.LimitExceededError{
			Limit:      l.limit,
			Used:       int(count) - 1,
			ResetAfter: resetTime,
		}
	}

	return nil
}

// Usage reports the consumed quota for today without incrementing.
func (l *Limiter) Usage(ctx context.Context, userId uuid.UUID) (int, error) {
	count, err := l.rdb.Get(ctx, l.key(userId, time.Now())).Int()
	if err != nil {
		if err == redis.Nil {
			return 0, nil
		}
		return 0, err
	}
	return count, nil
}
