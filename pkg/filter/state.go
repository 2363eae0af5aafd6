// Package filter holds the user-selected filter predicates and the pure
// derivation of filtered entity subsets consumed by every view.
package filter

import (
	"time"

	"casevis/pkg/model"
)

// DateRange is the timeline window. Either boundary may be unset.
type DateRange struct {
	Start *time.Time
	End   *time.Time
}

// State is the full set of filter predicates plus transient view state.
// Empty selection slices mean "unfiltered". Setters replace exactly one
// field; no cross-field reconciliation happens here (the timeline view
// clamps the play head itself when it edits the range).
type State struct {
	SelectedCaseIDs       []string
	SelectedLocationTypes []model.LocationType
	SelectedEventTypes    []model.EventType
	SelectedRoles         []model.IndividualRole
	DateRange             DateRange
	CurrentTimePoint      *time.Time
	MapBounds             *model.MapBounds
	MapZoom               int
}

// Clone returns a deep copy so a snapshot handed to views cannot alias
// the store's live state.
func (s State) Clone() State {
	out := s
	out.SelectedCaseIDs = append([]string(nil), s.SelectedCaseIDs...)
	out.SelectedLocationTypes = append([]model.LocationType(nil), s.SelectedLocationTypes...)
	out.SelectedEventTypes = append([]model.EventType(nil), s.SelectedEventTypes...)
	out.SelectedRoles = append([]model.IndividualRole(nil), s.SelectedRoles...)
	if s.DateRange.Start != nil {
		v := *s.DateRange.Start
		out.DateRange.Start = &v
	}
	if s.DateRange.End != nil {
		v := *s.DateRange.End
		out.DateRange.End = &v
	}
	if s.CurrentTimePoint != nil {
		v := *s.CurrentTimePoint
		out.CurrentTimePoint = &v
	}
	if s.MapBounds != nil {
		v := *s.MapBounds
		out.MapBounds = &v
	}
	return out
}

// toggle flips membership of v in list: append if absent, remove if present.
// Order of the remaining elements is preserved.
func toggle[T comparable](list []T, v T) []T {
	for i, have := range list {
		if have == v {
			out := make([]T, 0, len(list)-1)
			out = append(out, list[:i]...)
			return append(out, list[i+1:]...)
		}
	}
	out := make([]T, 0, len(list)+1)
	out = append(out, list...)
	return append(out, v)
}

// hasAny reports whether any member of ids is in the selected set.
func hasAny(selected map[string]bool, ids []string) bool {
	for _, id := range ids {
		if selected[id] {
			return true
		}
	}
	return false
}
