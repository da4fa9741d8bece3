package memory

import (
	"time"

	"mindmate-be/internal/entity"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// ProfileCache keeps recently loaded user rows out of the hot chat path.
// Entries expire quickly so profile edits show up within a few minutes.
type ProfileCache struct {
	cache *cache.Cache
}

func NewProfileCache() *ProfileCache {
	c := cache.New(5*time.Minute, 10*time.Minute)
	return &ProfileCache{
		cache: c,
	}
}

func (r *ProfileCache) Save(user *entity.User) {
	r.cache.Set(user.Id.String(), user, cache.DefaultExpiration)
}

func (r *ProfileCache) Get(userId uuid.UUID) (*entity.User, bool) {
	if x, found := r.cache.Get(userId.String()); found {
		return x.(*entity.User), true
	}
	return nil, false
}

func (r *ProfileCache) Invalidate(userId uuid.UUID) {
	r.cache.Delete(userId.String())
}
