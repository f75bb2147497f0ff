package screen

import (
	"time"

	"github.com/patrickmn/go-cache"
)

const bannerKey = "banner"

// banner holds at most one notification, which expires after ttl.
type banner struct {
	cache *cache.Cache
}

func newBanner(ttl time.Duration) *banner {
	return &banner{cache: cache.New(ttl, 0)}
}

// show replaces any pending notification with message.
func (b *banner) show(message string) {
	b.cache.Delete(bannerKey)
	b.cache.Set(bannerKey, message, cache.DefaultExpiration)
}

func (b *banner) current() (string, bool) {
	value, ok := b.cache.Get(bannerKey)
	if !ok {
		return "", false
	}

	return value.(string), true
}

func (b *banner) dismiss() {
	b.cache.Delete(bannerKey)
}
