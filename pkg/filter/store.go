package filter

import (
	"sync"
	"time"

	"casevis/pkg/model"
)

// Store is the explicit filter-state container. Views read snapshots and
// write through the setters; every mutation notifies subscribers. Each
// setter replaces its own field only.
type Store struct {
	mu        sync.Mutex
	state     State
	nextSub   int
	listeners map[int]func(State)
}

// NewStore creates a Store with the given initial state.
func NewStore(initial State) *Store {
	return &Store{
		state:     initial.Clone(),
		listeners: make(map[int]func(State)),
	}
}

// State returns a snapshot of the current filter state.
func (st *Store) State() State {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.state.Clone()
}

// Subscribe registers fn to be called with a snapshot after every mutation.
// The returned function removes the subscription.
func (st *Store) Subscribe(fn func(State)) (unsubscribe func()) {
	st.mu.Lock()
	id := st.nextSub
	st.nextSub++
	st.listeners[id] = fn
	st.mu.Unlock()

	return func() {
		st.mu.Lock()
		delete(st.listeners, id)
		st.mu.Unlock()
	}
}

// mutate applies fn under the lock and notifies subscribers outside it.
func (st *Store) mutate(fn func(*State)) {
	st.mu.Lock()
	fn(&st.state)
	snapshot := st.state.Clone()
	subs := make([]func(State), 0, len(st.listeners))
	for _, l := range st.listeners {
		subs = append(subs, l)
	}
	st.mu.Unlock()

	for _, l := range subs {
		l(snapshot)
	}
}

// SetSelectedCases replaces the case selection.
func (st *Store) SetSelectedCases(ids []string) {
	ids = append([]string(nil), ids...)
	st.mutate(func(s *State) { s.SelectedCaseIDs = ids })
}

// SetSelectedLocationTypes replaces the location type selection.
func (st *Store) SetSelectedLocationTypes(types []model.LocationType) {
	types = append([]model.LocationType(nil), types...)
	st.mutate(func(s *State) { s.SelectedLocationTypes = types })
}

// SetSelectedEventTypes replaces the event type selection.
func (st *Store) SetSelectedEventTypes(types []model.EventType) {
	types = append([]model.EventType(nil), types...)
	st.mutate(func(s *State) { s.SelectedEventTypes = types })
}

// SetSelectedRoles replaces the role selection.
func (st *Store) SetSelectedRoles(roles []model.IndividualRole) {
	roles = append([]model.IndividualRole(nil), roles...)
	st.mutate(func(s *State) { s.SelectedRoles = roles })
}

// SetDateRange replaces both boundaries of the timeline window.
func (st *Store) SetDateRange(start, end *time.Time) {
	st.mutate(func(s *State) { s.DateRange = DateRange{Start: start, End: end} })
}

// SetCurrentTimePoint replaces the timeline play head.
func (st *Store) SetCurrentTimePoint(t *time.Time) {
	st.mutate(func(s *State) { s.CurrentTimePoint = t })
}

// SetMapBounds replaces the map viewport rectangle.
func (st *Store) SetMapBounds(b *model.MapBounds) {
	st.mutate(func(s *State) { s.MapBounds = b })
}

// SetMapZoom replaces the map zoom level.
func (st *Store) SetMapZoom(zoom int) {
	st.mutate(func(s *State) { s.MapZoom = zoom })
}

// ToggleCase flips a case in or out of the selection.
func (st *Store) ToggleCase(id string) {
	st.mutate(func(s *State) { s.SelectedCaseIDs = toggle(s.SelectedCaseIDs, id) })
}

// ToggleLocationType flips a location type in or out of the selection.
func (st *Store) ToggleLocationType(t model.LocationType) {
	st.mutate(func(s *State) { s.SelectedLocationTypes = toggle(s.SelectedLocationTypes, t) })
}

// ToggleEventType flips an event type in or out of the selection.
func (st *Store) ToggleEventType(t model.EventType) {
	st.mutate(func(s *State) { s.SelectedEventTypes = toggle(s.SelectedEventTypes, t) })
}

// ToggleRole flips a role in or out of the selection.
func (st *Store) ToggleRole(r model.IndividualRole) {
	st.mutate(func(s *State) { s.SelectedRoles = toggle(s.SelectedRoles, r) })
}

// ClearSelections empties the four selection filters in one mutation.
// The date range and play head are left untouched.
func (st *Store) ClearSelections() {
	st.mutate(func(s *State) {
		s.SelectedCaseIDs = nil
		s.SelectedLocationTypes = nil
		s.SelectedEventTypes = nil
		s.SelectedRoles = nil
	})
}
