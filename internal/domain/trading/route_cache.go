package trading

import (
	"time"

	"github.com/orbitalworks/stellarsim/internal/domain/shared"
)

// DefaultRouteTTL is how long a discovered route stays reusable before the
// finder must rescan the market geometry.
const DefaultRouteTTL = 10 * time.Second

// CachedRoute wraps a TradeOpportunity with its discovery timestamp and TTL
type CachedRoute struct {
	opportunity *TradeOpportunity
	cachedAt    time.Time
	ttl         time.Duration
}

// Opportunity returns the cached opportunity
func (c *CachedRoute) Opportunity() *TradeOpportunity {
	return c.opportunity
}

// CachedAt returns when the route was discovered
func (c *CachedRoute) CachedAt() time.Time {
	return c.cachedAt
}

// Expired reports whether the route has outlived its TTL at the given time
func (c *CachedRoute) Expired(now time.Time) bool {
	return now.Sub(c.cachedAt) > c.ttl
}

// RouteCache retains recently discovered trade opportunities per agent so a
// re-query shortly after the last scan skips recomputation entirely.
//
// Multiple routes are retained per agent; BestFor returns the highest
// scoring unexpired one. The cache is owned by the route finder and is not
// safe for concurrent use.
type RouteCache struct {
	clock  shared.Clock
	ttl    time.Duration
	routes map[shared.EntityID][]*CachedRoute
}

// NewRouteCache creates an empty cache. A nil clock defaults to the real
// clock; a non-positive ttl defaults to DefaultRouteTTL.
func NewRouteCache(clock shared.Clock, ttl time.Duration) *RouteCache {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	if ttl <= 0 {
		ttl = DefaultRouteTTL
	}
	return &RouteCache{
		clock:  clock,
		ttl:    ttl,
		routes: make(map[shared.EntityID][]*CachedRoute),
	}
}

// Put replaces the agent's cached routes with the given opportunities,
// stamped with the current time
func (c *RouteCache) Put(agent shared.EntityID, opportunities []*TradeOpportunity) {
	if len(opportunities) == 0 {
		delete(c.routes, agent)
		return
	}

	now := c.clock.Now()
	cached := make([]*CachedRoute, 0, len(opportunities))
	for _, opp := range opportunities {
		cached = append(cached, &CachedRoute{opportunity: opp, cachedAt: now, ttl: c.ttl})
	}
	c.routes[agent] = cached
}

// BestFor returns the highest scoring unexpired route cached for the agent,
// or nil when every entry is expired or absent. Expired entries are pruned
// as a side effect.
func (c *RouteCache) BestFor(agent shared.EntityID) *TradeOpportunity {
	entries, ok := c.routes[agent]
	if !ok {
		return nil
	}

	now := c.clock.Now()
	var best *TradeOpportunity
	live := entries[:0]
	for _, entry := range entries {
		if entry.Expired(now) {
			continue
		}
		live = append(live, entry)
		if best == nil || entry.opportunity.Score() > best.Score() {
			best = entry.opportunity
		}
	}

	if len(live) == 0 {
		delete(c.routes, agent)
		return nil
	}
	c.routes[agent] = live
	return best
}

// Invalidate drops all cached routes for one agent
func (c *RouteCache) Invalidate(agent shared.EntityID) {
	delete(c.routes, agent)
}

// InvalidateAll drops every cached route
func (c *RouteCache) InvalidateAll() {
	c.routes = make(map[shared.EntityID][]*CachedRoute)
}
