// Package mapctl is the cross-view command channel between the network
// panel and the map panel: a single-slot pan-to registration.
package mapctl

import (
	"sync"

	"casevis/pkg/store"
)

// PanFunc recenters the map on a coordinate.
type PanFunc func(lat, lng float64)

// Controller owns the single pan-to slot. The most recent registration
// wins; invoking with no registered handler is silently dropped, never
// queued or retried.
type Controller struct {
	mu      sync.Mutex
	handler PanFunc
	token   int
}

// NewController creates an empty Controller.
func NewController() *Controller {
	return &Controller{}
}

// Register installs fn as the active pan handler, displacing any previous
// registration. The returned release function clears the slot, but only if
// this registration is still the active one, so a stale view unmounting
// cannot unregister its successor.
func (c *Controller) Register(fn PanFunc) (release func()) {
	c.mu.Lock()
	c.token++
	token := c.token
	c.handler = fn
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.token == token {
			c.handler = nil
		}
	}
}

// PanTo invokes the active handler, if any.
func (c *Controller) PanTo(lat, lng float64) {
	c.mu.Lock()
	fn := c.handler
	c.mu.Unlock()
	if fn != nil {
		fn(lat, lng)
	}
}

// PanToIndividual resolves the individual's first related location (in
// list order) and pans to its coordinate. Unknown individuals and
// individuals with no related location are silent no-ops.
func (c *Controller) PanToIndividual(s *store.Store, individualID string) {
	ind, ok := s.IndividualByID(individualID)
	if !ok || len(ind.RelatedLocationIDs) == 0 {
		return
	}
	loc, ok := s.LocationByID(ind.RelatedLocationIDs[0])
	if !ok {
		return
	}
	c.PanTo(loc.GeoLocation.Latitude, loc.GeoLocation.Longitude)
}
