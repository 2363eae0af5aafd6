package filter

import (
	"casevis/pkg/model"
	"casevis/pkg/store"
)

// Derived holds the filtered subsets every view renders from. Slices keep
// source collection order (stable filter), so identical inputs always
// produce identical output.
type Derived struct {
	Events             []model.Event
	Locations          []model.Location
	Individuals        []model.Individual
	VisibleIndividuals []model.Individual
}

// Derive recomputes all derived subsets from scratch. Stages run in a fixed
// dependency order because location and individual membership depends on
// which events survived the time cut:
//
//  1. filtered events (case, type, play head, date range)
//  2. location/individual ID sets touched by those events
//  3. filtered locations
//  4. filtered individuals
//  5. visible individuals (map viewport restriction)
//
// Two deliberate rules, kept from the original behavior: selecting any case
// suppresses the time-derived membership test for locations and individuals
// (a selected case shows its full footprint regardless of the play head),
// while events themselves stay time-cut. Unlike the original, DateRange.End
// is applied as an upper bound on events, symmetric with Start.
func Derive(s *store.Store, st State) Derived {
	selectedCases := make(map[string]bool, len(st.SelectedCaseIDs))
	for _, id := range st.SelectedCaseIDs {
		selectedCases[id] = true
	}
	eventTypes := make(map[model.EventType]bool, len(st.SelectedEventTypes))
	for _, t := range st.SelectedEventTypes {
		eventTypes[t] = true
	}
	locationTypes := make(map[model.LocationType]bool, len(st.SelectedLocationTypes))
	for _, t := range st.SelectedLocationTypes {
		locationTypes[t] = true
	}
	roles := make(map[model.IndividualRole]bool, len(st.SelectedRoles))
	for _, r := range st.SelectedRoles {
		roles[r] = true
	}

	var d Derived

	// Stage 1: events.
	for _, e := range s.Events {
		if len(selectedCases) > 0 && !hasAny(selectedCases, e.CaseIDs) {
			continue
		}
		if len(eventTypes) > 0 && !eventTypes[e.Type] {
			continue
		}
		if st.CurrentTimePoint != nil && e.Timestamp.After(*st.CurrentTimePoint) {
			continue
		}
		if st.DateRange.Start != nil && e.Timestamp.Before(*st.DateRange.Start) {
			continue
		}
		if st.DateRange.End != nil && e.Timestamp.After(*st.DateRange.End) {
			continue
		}
		d.Events = append(d.Events, e)
	}

	// Stage 2: entities touched by surviving events.
	locationsWithEvents := make(map[string]bool, len(d.Events))
	individualsWithEvents := make(map[string]bool)
	for _, e := range d.Events {
		locationsWithEvents[e.LocationID] = true
		for _, iid := range e.RelatedIndividualIDs {
			individualsWithEvents[iid] = true
		}
	}

	// Stage 3: locations.
	filteredLocations := make(map[string]bool)
	for _, l := range s.Locations {
		if len(selectedCases) > 0 && !hasAny(selectedCases, l.CaseIDs) {
			continue
		}
		if len(locationTypes) > 0 && !locationTypes[l.Type] {
			continue
		}
		if len(selectedCases) == 0 && !locationsWithEvents[l.ID] {
			continue
		}
		d.Locations = append(d.Locations, l)
		filteredLocations[l.ID] = true
	}

	// Stage 4: individuals.
	for _, i := range s.Individuals {
		if len(selectedCases) > 0 && !hasAny(selectedCases, i.CaseIDs) {
			continue
		}
		if len(roles) > 0 && !roles[i.Role] {
			continue
		}
		if len(selectedCases) == 0 && !individualsWithEvents[i.ID] {
			continue
		}
		d.Individuals = append(d.Individuals, i)
	}

	// Stage 5: viewport restriction.
	if st.MapBounds == nil {
		d.VisibleIndividuals = append([]model.Individual(nil), d.Individuals...)
		return d
	}
	for _, i := range d.Individuals {
		for _, lid := range i.RelatedLocationIDs {
			if !filteredLocations[lid] {
				continue
			}
			l, ok := s.LocationByID(lid)
			if !ok {
				continue
			}
			if st.MapBounds.Contains(l.GeoLocation) {
				d.VisibleIndividuals = append(d.VisibleIndividuals, i)
				break
			}
		}
	}
	return d
}

// VisibleRelationships returns the relationships whose endpoints are both
// in the visible individual set, in source order. The network panel draws
// exactly these edges.
func VisibleRelationships(s *store.Store, visible []model.Individual) []model.Relationship {
	ids := make(map[string]bool, len(visible))
	for _, i := range visible {
		ids[i.ID] = true
	}
	var out []model.Relationship
	for _, r := range s.Relationships {
		if ids[r.SourceIndividualID] && ids[r.TargetIndividualID] {
			out = append(out, r)
		}
	}
	return out
}
