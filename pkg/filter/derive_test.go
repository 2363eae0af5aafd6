package filter_test

import (
	"reflect"
	"testing"
	"time"

	"casevis/pkg/filter"
	"casevis/pkg/model"
	"casevis/pkg/store"
)

func at(month, day int) time.Time {
	return time.Date(2024, time.Month(month), day, 12, 0, 0, 0, time.UTC)
}

func tp(t time.Time) *time.Time { return &t }

// fixtureStore builds a small two-case world:
//
//	loc-a (crime_scene, case-001)  ev-1 Feb 10: ind-1, ind-2
//	loc-b (business, case-002)     ev-2 Jun 01: ind-3
//	loc-c (meeting_point, case-001) ev-3 Sep 15: ind-1
func fixtureStore(t *testing.T) *store.Store {
	t.Helper()
	ds := &model.Dataset{
		Cases: []model.Case{
			{ID: "case-001", Name: "Harbor Smuggling", Status: model.CaseOpen, StartDate: at(1, 1)},
			{ID: "case-002", Name: "Riverside Fraud", Status: model.CasePending, StartDate: at(1, 1)},
		},
		Locations: []model.Location{
			{ID: "loc-a", Name: "Pier 9", Type: model.LocCrimeScene,
				GeoLocation: model.GeoLocation{Latitude: 34.0, Longitude: -118.2}, CaseIDs: []string{"case-001"}},
			{ID: "loc-b", Name: "Branch Office", Type: model.LocBusiness,
				GeoLocation: model.GeoLocation{Latitude: 40.7, Longitude: -74.0}, CaseIDs: []string{"case-002"}},
			{ID: "loc-c", Name: "Rest Stop", Type: model.LocMeetingPoint,
				GeoLocation: model.GeoLocation{Latitude: 33.5, Longitude: -112.1}, CaseIDs: []string{"case-001"}},
		},
		Events: []model.Event{
			{ID: "ev-1", Name: "Meeting observed", Type: model.EvtMeeting, Timestamp: at(2, 10),
				LocationID: "loc-a", RelatedIndividualIDs: []string{"ind-1", "ind-2"}},
			{ID: "ev-2", Name: "Wire transfer", Type: model.EvtTransaction, Timestamp: at(6, 1),
				LocationID: "loc-b", RelatedIndividualIDs: []string{"ind-3"}},
			{ID: "ev-3", Name: "Stakeout", Type: model.EvtSurveillance, Timestamp: at(9, 15),
				LocationID: "loc-c", RelatedIndividualIDs: []string{"ind-1"}},
		},
		Individuals: []model.Individual{
			{ID: "ind-1", Name: "Ray Molina", Role: model.RoleSuspect, CaseIDs: []string{"case-001"}},
			{ID: "ind-2", Name: "Dana Voss", Role: model.RoleWitness, CaseIDs: []string{"case-001"}},
			{ID: "ind-3", Name: "Leo Marsh", Role: model.RoleVictim, CaseIDs: []string{"case-002"}},
		},
		Relationships: []model.Relationship{
			{ID: "rel-1", SourceIndividualID: "ind-2", TargetIndividualID: "ind-1",
				RelationshipType: model.RelWitnessSuspect, CaseIDs: []string{"case-001"}},
			{ID: "rel-2", SourceIndividualID: "ind-1", TargetIndividualID: "ind-3",
				RelationshipType: model.RelAssociate, CaseIDs: []string{"case-001"}},
		},
	}
	s, err := store.New(ds)
	if err != nil {
		t.Fatalf("fixture store: %v", err)
	}
	return s
}

func eventIDs(events []model.Event) []string {
	out := make([]string, len(events))
	for i, e := range events {
		out[i] = e.ID
	}
	return out
}

func locationIDs(locs []model.Location) []string {
	out := make([]string, len(locs))
	for i, l := range locs {
		out[i] = l.ID
	}
	return out
}

func individualIDs(inds []model.Individual) []string {
	out := make([]string, len(inds))
	for i, ind := range inds {
		out[i] = ind.ID
	}
	return out
}

func TestIdentityLaw(t *testing.T) {
	s := fixtureStore(t)
	d := filter.Derive(s, filter.State{})

	if len(d.Events) != len(s.Events) {
		t.Errorf("unfiltered events = %d, want %d", len(d.Events), len(s.Events))
	}
	if len(d.Locations) != len(s.Locations) {
		t.Errorf("unfiltered locations = %d, want %d", len(d.Locations), len(s.Locations))
	}
	if len(d.Individuals) != len(s.Individuals) {
		t.Errorf("unfiltered individuals = %d, want %d", len(d.Individuals), len(s.Individuals))
	}
	if !reflect.DeepEqual(individualIDs(d.VisibleIndividuals), individualIDs(d.Individuals)) {
		t.Error("with no viewport, visible individuals should equal filtered individuals")
	}
}

func TestEventTimeBounds(t *testing.T) {
	s := fixtureStore(t)
	st := filter.State{
		DateRange:        filter.DateRange{Start: tp(at(3, 1))},
		CurrentTimePoint: tp(at(7, 1)),
	}
	d := filter.Derive(s, st)

	if got := eventIDs(d.Events); !reflect.DeepEqual(got, []string{"ev-2"}) {
		t.Fatalf("filtered events = %v, want [ev-2]", got)
	}
	for _, e := range d.Events {
		if e.Timestamp.After(*st.CurrentTimePoint) {
			t.Errorf("event %s postdates the play head", e.ID)
		}
		if e.Timestamp.Before(*st.DateRange.Start) {
			t.Errorf("event %s predates the range start", e.ID)
		}
	}
}

func TestDateRangeEndBoundsEvents(t *testing.T) {
	s := fixtureStore(t)
	d := filter.Derive(s, filter.State{DateRange: filter.DateRange{End: tp(at(5, 1))}})
	if got := eventIDs(d.Events); !reflect.DeepEqual(got, []string{"ev-1"}) {
		t.Fatalf("events bounded by range end = %v, want [ev-1]", got)
	}
}

func TestPlayHeadScenarios(t *testing.T) {
	ds := &model.Dataset{
		Cases: []model.Case{{ID: "case-001", Name: "Solo", Status: model.CaseOpen, StartDate: at(1, 1)}},
		Locations: []model.Location{{ID: "loc-1", Name: "Spot", Type: model.LocPublicPlace,
			GeoLocation: model.GeoLocation{Latitude: 33, Longitude: -112}, CaseIDs: []string{"case-001"}}},
		Events: []model.Event{{ID: "ev-1", Name: "Sighting", Type: model.EvtIncident,
			Timestamp: at(6, 1), LocationID: "loc-1", RelatedIndividualIDs: []string{"ind-1"}}},
		Individuals: []model.Individual{{ID: "ind-1", Name: "Ray Molina", Role: model.RoleSuspect,
			CaseIDs: []string{"case-001"}}},
	}
	s, err := store.New(ds)
	if err != nil {
		t.Fatal(err)
	}
	window := filter.DateRange{Start: tp(at(1, 1)), End: tp(at(12, 31))}

	t.Run("play head before event hides everything", func(t *testing.T) {
		d := filter.Derive(s, filter.State{DateRange: window, CurrentTimePoint: tp(at(5, 1))})
		if len(d.Events) != 0 {
			t.Errorf("filtered events = %v, want none", eventIDs(d.Events))
		}
		if len(d.Locations) != 0 || len(d.Individuals) != 0 {
			t.Error("locations/individuals should drop out with no surviving events and no case selected")
		}
	})

	t.Run("play head after event shows its footprint", func(t *testing.T) {
		d := filter.Derive(s, filter.State{DateRange: window, CurrentTimePoint: tp(at(7, 1))})
		if got := eventIDs(d.Events); !reflect.DeepEqual(got, []string{"ev-1"}) {
			t.Fatalf("filtered events = %v, want [ev-1]", got)
		}
		if got := locationIDs(d.Locations); !reflect.DeepEqual(got, []string{"loc-1"}) {
			t.Errorf("filtered locations = %v, want [loc-1]", got)
		}
		if got := individualIDs(d.Individuals); !reflect.DeepEqual(got, []string{"ind-1"}) {
			t.Errorf("filtered individuals = %v, want [ind-1]", got)
		}
	})
}

func TestCaseSelectionExcludesOtherCases(t *testing.T) {
	s := fixtureStore(t)
	// ev-2 at loc-b (case-002) is inside the active window, but loc-b
	// belongs only to a case that is not selected.
	d := filter.Derive(s, filter.State{
		SelectedCaseIDs:  []string{"case-001"},
		CurrentTimePoint: tp(at(12, 31)),
	})
	for _, l := range d.Locations {
		if l.ID == "loc-b" {
			t.Error("loc-b belongs only to case-002 and must be excluded")
		}
	}
	for _, e := range d.Events {
		if e.ID == "ev-2" {
			t.Error("ev-2 inherits case-002 only and must be excluded")
		}
	}
}

func TestCaseSelectionSuppressesTimeMembership(t *testing.T) {
	s := fixtureStore(t)
	// Play head before every event: no events survive, but the selected
	// case still shows its full location/individual footprint.
	d := filter.Derive(s, filter.State{
		SelectedCaseIDs:  []string{"case-001"},
		CurrentTimePoint: tp(at(1, 1)),
	})
	if len(d.Events) != 0 {
		t.Fatalf("events should stay time-cut, got %v", eventIDs(d.Events))
	}
	if got := locationIDs(d.Locations); !reflect.DeepEqual(got, []string{"loc-a", "loc-c"}) {
		t.Errorf("case footprint locations = %v, want [loc-a loc-c]", got)
	}
	if got := individualIDs(d.Individuals); !reflect.DeepEqual(got, []string{"ind-1", "ind-2"}) {
		t.Errorf("case footprint individuals = %v, want [ind-1 ind-2]", got)
	}
}

func TestNoCaseSelectedRequiresEventMembership(t *testing.T) {
	s := fixtureStore(t)
	d := filter.Derive(s, filter.State{CurrentTimePoint: tp(at(3, 1))})

	// Only ev-1 survives, so only loc-a and its participants remain.
	if got := locationIDs(d.Locations); !reflect.DeepEqual(got, []string{"loc-a"}) {
		t.Errorf("filtered locations = %v, want [loc-a]", got)
	}
	if got := individualIDs(d.Individuals); !reflect.DeepEqual(got, []string{"ind-1", "ind-2"}) {
		t.Errorf("filtered individuals = %v, want [ind-1 ind-2]", got)
	}
}

func TestTypeAndRoleFilters(t *testing.T) {
	s := fixtureStore(t)

	d := filter.Derive(s, filter.State{SelectedEventTypes: []model.EventType{model.EvtTransaction}})
	if got := eventIDs(d.Events); !reflect.DeepEqual(got, []string{"ev-2"}) {
		t.Errorf("type-filtered events = %v, want [ev-2]", got)
	}

	d = filter.Derive(s, filter.State{SelectedLocationTypes: []model.LocationType{model.LocBusiness}})
	if got := locationIDs(d.Locations); !reflect.DeepEqual(got, []string{"loc-b"}) {
		t.Errorf("type-filtered locations = %v, want [loc-b]", got)
	}

	d = filter.Derive(s, filter.State{SelectedRoles: []model.IndividualRole{model.RoleWitness}})
	if got := individualIDs(d.Individuals); !reflect.DeepEqual(got, []string{"ind-2"}) {
		t.Errorf("role-filtered individuals = %v, want [ind-2]", got)
	}
}

func TestViewportLaw(t *testing.T) {
	s := fixtureStore(t)
	// Bounds around loc-a only.
	bounds := &model.MapBounds{North: 35, South: 33.8, East: -118, West: -119}
	st := filter.State{MapBounds: bounds}
	d := filter.Derive(s, st)

	if got := individualIDs(d.VisibleIndividuals); !reflect.DeepEqual(got, []string{"ind-1", "ind-2"}) {
		t.Fatalf("visible individuals = %v, want [ind-1 ind-2]", got)
	}

	// Cross-check against the membership formula.
	filtered := make(map[string]model.Location)
	for _, l := range d.Locations {
		filtered[l.ID] = l
	}
	visible := make(map[string]bool)
	for _, i := range d.VisibleIndividuals {
		visible[i.ID] = true
	}
	for _, i := range d.Individuals {
		want := false
		for _, lid := range i.RelatedLocationIDs {
			if l, ok := filtered[lid]; ok && bounds.Contains(l.GeoLocation) {
				want = true
				break
			}
		}
		if visible[i.ID] != want {
			t.Errorf("individual %s: visible=%v, formula says %v", i.ID, visible[i.ID], want)
		}
	}
}

func TestDeriveDeterministicAndStable(t *testing.T) {
	s := fixtureStore(t)
	st := filter.State{CurrentTimePoint: tp(at(10, 1))}

	first := filter.Derive(s, st)
	second := filter.Derive(s, st)
	if !reflect.DeepEqual(eventIDs(first.Events), eventIDs(second.Events)) ||
		!reflect.DeepEqual(locationIDs(first.Locations), locationIDs(second.Locations)) ||
		!reflect.DeepEqual(individualIDs(first.Individuals), individualIDs(second.Individuals)) {
		t.Fatal("identical inputs must yield identical derived sets")
	}

	// Output preserves source collection order.
	if got := eventIDs(first.Events); !reflect.DeepEqual(got, []string{"ev-1", "ev-2", "ev-3"}) {
		t.Errorf("event order = %v, want source order", got)
	}
}

func TestVisibleRelationships(t *testing.T) {
	s := fixtureStore(t)
	d := filter.Derive(s, filter.State{SelectedCaseIDs: []string{"case-001"}})

	rels := filter.VisibleRelationships(s, d.VisibleIndividuals)
	if len(rels) != 1 || rels[0].ID != "rel-1" {
		ids := make([]string, len(rels))
		for i, r := range rels {
			ids[i] = r.ID
		}
		t.Errorf("visible relationships = %v, want [rel-1] (rel-2 reaches out of the visible set)", ids)
	}
}
