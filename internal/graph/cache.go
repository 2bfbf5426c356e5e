package graph

import (
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"

	"navicampus/internal/floorplan"
)

// MergedCache caches the merged multi-floor graph per registry. Floor data is
// immutable after load, so an entry stays valid for the lifetime of its
// registry; swapping in a new registry naturally gets a fresh entry. A
// singleflight.Group coalesces concurrent first-time builds for the same
// registry.
type MergedCache struct {
	portalWeight float64

	mu      sync.RWMutex
	entries map[*floorplan.Registry]*Graph
	group   singleflight.Group
}

// NewMergedCache creates an empty cache using portalWeight for synthesized
// inter-floor edges.
func NewMergedCache(portalWeight float64) *MergedCache {
	return &MergedCache{
		portalWeight: portalWeight,
		entries:      make(map[*floorplan.Registry]*Graph),
	}
}

// Get returns the merged graph for the registry, building it on first use.
func (c *MergedCache) Get(reg *floorplan.Registry) *Graph {
	c.mu.RLock()
	g, ok := c.entries[reg]
	c.mu.RUnlock()
	if ok {
		return g
	}

	key := fmt.Sprintf("%s@%p", reg.Building, reg)
	v, _, _ := c.group.Do(key, func() (interface{}, error) {
		built := BuildMerged(reg.Floors, c.portalWeight)
		c.mu.Lock()
		c.entries[reg] = built
		c.mu.Unlock()
		return built, nil
	})
	return v.(*Graph)
}
