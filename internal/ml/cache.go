package ml

import (
	"fmt"
	"strings"
	"sync"
	"time"

	cache "github.com/patrickmn/go-cache"

	"github.com/yourusername/esports-predictor/internal/metrics"
)

// CacheKey identifies one prediction: the pairing is directional, since
// swapping sides flips the probability.
type CacheKey struct {
	Team1 string
	Team2 string
	AsOf  string // YYYY-MM-DD
}

// String returns the string representation of the cache key.
func (k CacheKey) String() string {
	return strings.Join([]string{k.Team1, k.Team2, k.AsOf}, ":")
}

// PredictionCache provides in-memory caching for served predictions.
type PredictionCache struct {
	cache     *cache.Cache
	maxSize   int
	mu        sync.Mutex
	hitCount  uint64
	missCount uint64
}

// NewPredictionCache creates a prediction cache with the given TTL and
// a soft size cap.
func NewPredictionCache(ttl time.Duration, maxSize int) *PredictionCache {
	return &PredictionCache{
		cache:   cache.New(ttl, ttl*2),
		maxSize: maxSize,
	}
}

// Get retrieves a cached prediction, or nil on a miss.
func (pc *PredictionCache) Get(key CacheKey) *PredictResponse {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	if cached, found := pc.cache.Get(key.String()); found {
		pc.hitCount++
		metrics.PredictionCacheHitsTotal.Inc()
		if prediction, ok := cached.(*PredictResponse); ok {
			return prediction
		}
	}

	pc.missCount++
	return nil
}

// Set stores a prediction. When the cache is at its size cap the entry
// is dropped; expiry will make room.
func (pc *PredictionCache) Set(key CacheKey, prediction *PredictResponse) {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	if pc.cache.ItemCount() >= pc.maxSize {
		pc.cache.DeleteExpired()
		if pc.cache.ItemCount() >= pc.maxSize {
			return
		}
	}
	pc.cache.SetDefault(key.String(), prediction)
}

// Stats reports hit and miss counts.
func (pc *PredictionCache) Stats() (hits, misses uint64) {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	return pc.hitCount, pc.missCount
}

// Flush empties the cache.
func (pc *PredictionCache) Flush() {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	pc.cache.Flush()
	pc.hitCount = 0
	pc.missCount = 0
}

var _ fmt.Stringer = CacheKey{}
