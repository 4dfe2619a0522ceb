package layout

import (
	"context"
	"encoding/json"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/egoview/egoview/pkg/cache"
	"github.com/egoview/egoview/pkg/errors"
	"github.com/egoview/egoview/pkg/graph"
)

// Position algorithm names. These double as layout cache key components.
const (
	AlgoStress = "stress"
	AlgoSpring = "spring"

	// AlgoCommunity keys the community partition alongside positions.
	AlgoCommunity = "community"
)

// Cache memoizes layout computations keyed by (graph fingerprint, algorithm).
//
// The single-flight group guarantees at most one concurrent computation per
// key: a second request for the same layout blocks and shares the first
// result instead of recomputing. Returned maps are shared and must be treated
// as read-only.
type Cache struct {
	store cache.Cache
	keyer cache.Keyer
	group singleflight.Group
	ttl   time.Duration
}

// NewCache creates a layout cache on top of the given byte store.
// If store is nil, a memory cache is used. If keyer is nil, the default
// keyer is used.
func NewCache(store cache.Cache, keyer cache.Keyer) *Cache {
	if store == nil {
		store = cache.NewMemoryCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	return &Cache{store: store, keyer: keyer, ttl: cache.TTLLayout}
}

// Positions returns the cached or freshly computed 2D embedding of g under
// the named algorithm (AlgoStress or AlgoSpring).
func (c *Cache) Positions(ctx context.Context, g *graph.DiGraph, algorithm string) (map[string]Point, error) {
	var compute func(*graph.DiGraph) (map[string]Point, error)
	switch algorithm {
	case AlgoStress:
		compute = StressPositions
	case AlgoSpring:
		compute = SpringPositions
	default:
		return nil, errors.New(errors.ErrCodeInvalidLayout, "unknown position algorithm %q", algorithm)
	}

	key := c.keyer.LayoutKey(g.Fingerprint(), cache.LayoutKeyOpts{Algorithm: algorithm})
	v, err, _ := c.group.Do(key, func() (any, error) {
		if data, hit, err := c.store.Get(ctx, key); err == nil && hit {
			var cached map[string]Point
			if err := json.Unmarshal(data, &cached); err == nil {
				return cached, nil
			}
		}

		positions, err := compute(g)
		if err != nil {
			return nil, err
		}
		if data, err := json.Marshal(positions); err == nil {
			_ = c.store.Set(ctx, key, data, c.ttl)
		}
		return positions, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(map[string]Point), nil
}

// Communities returns the cached or freshly computed community partition of g.
func (c *Cache) Communities(ctx context.Context, g *graph.DiGraph) (map[string]int, error) {
	key := c.keyer.LayoutKey(g.Fingerprint(), cache.LayoutKeyOpts{Algorithm: AlgoCommunity})
	v, err, _ := c.group.Do(key, func() (any, error) {
		if data, hit, err := c.store.Get(ctx, key); err == nil && hit {
			var cached map[string]int
			if err := json.Unmarshal(data, &cached); err == nil {
				return cached, nil
			}
		}

		communities, err := GreedyCommunities(g)
		if err != nil {
			return nil, err
		}
		if data, err := json.Marshal(communities); err == nil {
			_ = c.store.Set(ctx, key, data, c.ttl)
		}
		return communities, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(map[string]int), nil
}

// Invalidate drops all cached computations for the graph. Call it when a data
// source is replaced in place; graphs with new content invalidate themselves
// through their fingerprint.
func (c *Cache) Invalidate(ctx context.Context, g *graph.DiGraph) error {
	fp := g.Fingerprint()
	var firstErr error
	for _, algorithm := range []string{AlgoStress, AlgoSpring, AlgoCommunity} {
		key := c.keyer.LayoutKey(fp, cache.LayoutKeyOpts{Algorithm: algorithm})
		if err := c.store.Delete(ctx, key); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
