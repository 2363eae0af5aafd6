package filter_test

import (
	"reflect"
	"sort"
	"testing"

	"casevis/pkg/filter"
	"casevis/pkg/model"
)

func TestToggleInvolution(t *testing.T) {
	st := filter.NewStore(filter.State{SelectedCaseIDs: []string{"case-002", "case-001"}})

	st.ToggleCase("case-003")
	st.ToggleCase("case-003")
	got := st.State().SelectedCaseIDs
	sort.Strings(got)
	if !reflect.DeepEqual(got, []string{"case-001", "case-002"}) {
		t.Errorf("toggle twice changed the element set: %v", got)
	}

	st.ToggleCase("case-001")
	st.ToggleCase("case-001")
	got = st.State().SelectedCaseIDs
	sort.Strings(got)
	if !reflect.DeepEqual(got, []string{"case-001", "case-002"}) {
		t.Errorf("remove-then-add changed the element set: %v", got)
	}
}

func TestToggleFlipsMembership(t *testing.T) {
	st := filter.NewStore(filter.State{})

	st.ToggleEventType(model.EvtArrest)
	if got := st.State().SelectedEventTypes; !reflect.DeepEqual(got, []model.EventType{model.EvtArrest}) {
		t.Fatalf("toggle add = %v", got)
	}
	st.ToggleEventType(model.EvtArrest)
	if got := st.State().SelectedEventTypes; len(got) != 0 {
		t.Fatalf("toggle remove = %v, want empty", got)
	}
}

func TestSettersAreIndependent(t *testing.T) {
	st := filter.NewStore(filter.State{})
	st.SetSelectedRoles([]model.IndividualRole{model.RoleSuspect})
	st.SetMapZoom(9)
	st.SetSelectedCases([]string{"case-001"})

	s := st.State()
	if !reflect.DeepEqual(s.SelectedRoles, []model.IndividualRole{model.RoleSuspect}) {
		t.Error("role selection clobbered by later setters")
	}
	if s.MapZoom != 9 {
		t.Errorf("map zoom = %d, want 9", s.MapZoom)
	}
	if !reflect.DeepEqual(s.SelectedCaseIDs, []string{"case-001"}) {
		t.Error("case selection not applied")
	}
}

func TestClearSelectionsKeepsTimeline(t *testing.T) {
	start, end, head := at(1, 1), at(12, 31), at(6, 1)
	st := filter.NewStore(filter.State{
		SelectedCaseIDs:       []string{"case-001"},
		SelectedLocationTypes: []model.LocationType{model.LocBusiness},
		SelectedEventTypes:    []model.EventType{model.EvtArrest},
		SelectedRoles:         []model.IndividualRole{model.RoleVictim},
		DateRange:             filter.DateRange{Start: &start, End: &end},
		CurrentTimePoint:      &head,
	})

	st.ClearSelections()
	s := st.State()
	if len(s.SelectedCaseIDs)+len(s.SelectedLocationTypes)+len(s.SelectedEventTypes)+len(s.SelectedRoles) != 0 {
		t.Error("clear-all should empty all four selection filters")
	}
	if s.DateRange.Start == nil || s.DateRange.End == nil || s.CurrentTimePoint == nil {
		t.Error("clear-all must not touch the date range or play head")
	}
}

func TestSubscribeNotifiesOnEveryMutation(t *testing.T) {
	st := filter.NewStore(filter.State{})

	var calls int
	var last filter.State
	unsubscribe := st.Subscribe(func(s filter.State) {
		calls++
		last = s
	})

	st.SetMapZoom(7)
	st.ToggleRole(model.RoleInformant)
	if calls != 2 {
		t.Fatalf("listener called %d times, want 2", calls)
	}
	if last.MapZoom != 7 || len(last.SelectedRoles) != 1 {
		t.Error("listener snapshot missing earlier mutations")
	}

	unsubscribe()
	st.SetMapZoom(3)
	if calls != 2 {
		t.Error("listener called after unsubscribe")
	}
}

func TestSnapshotDoesNotAliasStore(t *testing.T) {
	st := filter.NewStore(filter.State{SelectedCaseIDs: []string{"case-001"}})
	snap := st.State()
	snap.SelectedCaseIDs[0] = "tampered"
	if st.State().SelectedCaseIDs[0] != "case-001" {
		t.Error("mutating a snapshot leaked into the store")
	}
}

func TestIdempotentReapply(t *testing.T) {
	s := fixtureStore(t)
	st := filter.NewStore(filter.State{SelectedCaseIDs: []string{"case-001"}})

	before := filter.Derive(s, st.State())
	st.SetSelectedCases(st.State().SelectedCaseIDs)
	after := filter.Derive(s, st.State())

	if !reflect.DeepEqual(eventIDs(before.Events), eventIDs(after.Events)) ||
		!reflect.DeepEqual(locationIDs(before.Locations), locationIDs(after.Locations)) ||
		!reflect.DeepEqual(individualIDs(before.Individuals), individualIDs(after.Individuals)) {
		t.Error("re-applying the current selection changed the derived sets")
	}
}
