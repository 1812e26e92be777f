// Package routing implements trade route discovery: it combines the
// proximity index with market queries to enumerate, score, and rank
// opportunities between nearby station pairs, caching results per agent.
package routing

import (
	"sort"
	"time"

	"golang.org/x/time/rate"

	"github.com/orbitalworks/stellarsim/internal/domain/behavior"
	"github.com/orbitalworks/stellarsim/internal/domain/ports"
	"github.com/orbitalworks/stellarsim/internal/domain/shared"
	"github.com/orbitalworks/stellarsim/internal/domain/spatial"
	"github.com/orbitalworks/stellarsim/internal/domain/trading"
)

// Defaults for the finder's tunables
const (
	DefaultRefreshInterval = time.Second
	DefaultMaxCachedRoutes = 10
)

// Config tunes a Finder
type Config struct {
	// CellSize is the proximity index cell edge, in AU
	CellSize float64

	// RefreshInterval throttles station position re-reads into the index
	RefreshInterval time.Duration

	// RouteTTL bounds how long cached routes are served without rescanning
	RouteTTL time.Duration

	// MaxCachedRoutes is how many top results are cached per agent
	MaxCachedRoutes int
}

func (c Config) withDefaults() Config {
	if c.CellSize <= 0 {
		c.CellSize = spatial.DefaultCellSize
	}
	if c.RefreshInterval <= 0 {
		c.RefreshInterval = DefaultRefreshInterval
	}
	if c.RouteTTL <= 0 {
		c.RouteTTL = trading.DefaultRouteTTL
	}
	if c.MaxCachedRoutes <= 0 {
		c.MaxCachedRoutes = DefaultMaxCachedRoutes
	}
	return c
}

// Finder discovers profitable trades between stations near an agent.
// It owns the station proximity index and the per-agent route cache; both
// are mutated only from the tick loop, so the type is not safe for
// concurrent use.
type Finder struct {
	registry ports.Registry
	index    *spatial.ProximityIndex
	cache    *trading.RouteCache
	limiter  *rate.Limiter
	cfg      Config
}

// Compile-time check that Finder satisfies the domain contract.
var _ trading.RouteFinder = (*Finder)(nil)

// NewFinder creates a route finder over the given registry. A nil clock
// defaults to the real clock (the cache TTL uses it; the refresh throttle
// always runs on wall time via rate.Limiter).
func NewFinder(registry ports.Registry, clock shared.Clock, cfg Config) *Finder {
	cfg = cfg.withDefaults()
	return &Finder{
		registry: registry,
		index:    spatial.NewProximityIndex(cfg.CellSize),
		cache:    trading.NewRouteCache(clock, cfg.RouteTTL),
		limiter:  rate.NewLimiter(rate.Every(cfg.RefreshInterval), 1),
		cfg:      cfg,
	}
}

// Index exposes the station index for diagnostics
func (f *Finder) Index() *spatial.ProximityIndex {
	return f.index
}

// UpdateIndex re-reads every station's current position into the proximity
// index. Throttled to at most one refresh per configured interval unless
// force is set. Stations that vanished since the last refresh are dropped.
func (f *Finder) UpdateIndex(force bool) {
	if !force && !f.limiter.Allow() {
		return
	}

	seen := make(map[shared.EntityID]struct{})
	for _, station := range f.registry.Stations() {
		pos := station.Position()
		f.index.Update(station.ID(), pos.X, pos.Y)
		seen[station.ID()] = struct{}{}
	}
	for _, id := range f.index.IDs() {
		if _, ok := seen[id]; !ok {
			f.index.Remove(id)
		}
	}
}

// FindBestRoute returns the agent's best opportunity, serving an unexpired
// cached route when one exists; the whole point of the cache is skipping
// the pair scan on rapid re-queries. On a miss, the top results are cached
// with the current timestamp and the best is returned (nil when nothing
// qualifies).
func (f *Finder) FindBestRoute(
	agent shared.EntityID,
	position shared.Position,
	cargoSpace int,
	maxDistance float64,
	minProfit float64,
) *trading.TradeOpportunity {
	if cached := f.cache.BestFor(agent); cached != nil {
		return cached
	}

	routes := f.FindAllRoutes(position, cargoSpace, maxDistance, minProfit, f.cfg.MaxCachedRoutes)
	if len(routes) == 0 {
		return nil
	}
	f.cache.Put(agent, routes)
	return routes[0]
}

// FindAllRoutes enumerates opportunities between station pairs near the
// position, best first, up to limit (0 means unlimited).
//
// Candidates come from one proximity query; every ordered pair and resource
// kind is priced through the market collaborator and clamped against stock,
// cargo space, destination storage, and destination funds. Complexity is
// O(k²·r) for k nearby stations and r resource kinds, which is fine: k is
// bounded by maxDistance and grid locality, not by total station count.
func (f *Finder) FindAllRoutes(
	position shared.Position,
	cargoSpace int,
	maxDistance float64,
	minProfit float64,
	limit int,
) []*trading.TradeOpportunity {
	f.UpdateIndex(false)

	ids := f.index.GetNearby(position.X, position.Y, maxDistance)
	if len(ids) < 2 {
		return nil
	}
	// Deterministic encounter order makes the stable sort's tie-break
	// reproducible.
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	candidates := make([]ports.Station, 0, len(ids))
	for _, id := range ids {
		if station, ok := f.registry.Station(id); ok {
			candidates = append(candidates, station)
		}
	}

	var found []*trading.TradeOpportunity
	for _, src := range candidates {
		for _, dst := range candidates {
			if src.ID() == dst.ID() {
				continue
			}
			for _, resource := range shared.AllResources() {
				if opp := behavior.EvaluatePair(src, dst, resource, cargoSpace, minProfit); opp != nil {
					found = append(found, opp)
				}
			}
		}
	}

	sort.SliceStable(found, func(i, j int) bool {
		return found[i].Score() > found[j].Score()
	})
	if limit > 0 && len(found) > limit {
		found = found[:limit]
	}
	return found
}

// InvalidateCache forces recomputation on the agent's next query. Callers
// use it when conditions changed materially, e.g. cargo just emptied.
func (f *Finder) InvalidateCache(agent shared.EntityID) {
	f.cache.Invalidate(agent)
}

// InvalidateAllCaches drops every agent's cached routes
func (f *Finder) InvalidateAllCaches() {
	f.cache.InvalidateAll()
}
