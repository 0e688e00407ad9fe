package gateway

import (
	"time"

	"gorm.io/gorm"
)

// CacheTTL is how long catalog responses stay fresh in both cache tiers.
const CacheTTL = 5 * time.Minute

// Gateway wraps every call to the data backend: cached catalog reads with
// retry, the multi-step order submission, and promo validation/redemption.
type Gateway struct {
	db    *gorm.DB
	cache *responseCache
	sleep func(time.Duration)
}

// New builds a Gateway. mirror may be nil to run with the in-memory cache
// tier only.
func New(db *gorm.DB, mirror CacheMirror) *Gateway {
	return &Gateway{
		db:    db,
		cache: newResponseCache(CacheTTL, mirror),
		sleep: time.Sleep,
	}
}
