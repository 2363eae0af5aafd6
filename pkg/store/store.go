// Package store holds one load generation of case data: write-once
// collections, ID indexes, and the materialized back-reference lists.
package store

import (
	"fmt"
	"time"

	"casevis/pkg/model"
)

// Store is an immutable view over one loaded dataset. All denormalized
// back-reference lists (Case.LocationIDs, Location.RelatedEventIDs,
// Individual.RelatedLocationIDs, Event.CaseIDs, ...) are rebuilt here from
// the forward references, so the inversion invariants hold regardless of
// what the source files claimed.
type Store struct {
	Cases         []model.Case
	Locations     []model.Location
	Events        []model.Event
	Individuals   []model.Individual
	Relationships []model.Relationship

	caseByID       map[string]*model.Case
	locationByID   map[string]*model.Location
	eventByID      map[string]*model.Event
	individualByID map[string]*model.Individual
}

// New builds a Store from a loaded dataset. It validates every entity,
// checks all forward references for dangling IDs, and rebuilds the
// back-reference lists. The dataset itself is not retained.
func New(ds *model.Dataset) (*Store, error) {
	s := &Store{
		Cases:         append([]model.Case(nil), ds.Cases...),
		Locations:     append([]model.Location(nil), ds.Locations...),
		Events:        append([]model.Event(nil), ds.Events...),
		Individuals:   append([]model.Individual(nil), ds.Individuals...),
		Relationships: append([]model.Relationship(nil), ds.Relationships...),
	}

	s.buildIndexes()
	if err := s.validate(); err != nil {
		return nil, err
	}
	s.reindex()
	return s, nil
}

func (s *Store) buildIndexes() {
	s.caseByID = make(map[string]*model.Case, len(s.Cases))
	for i := range s.Cases {
		s.caseByID[s.Cases[i].ID] = &s.Cases[i]
	}
	s.locationByID = make(map[string]*model.Location, len(s.Locations))
	for i := range s.Locations {
		s.locationByID[s.Locations[i].ID] = &s.Locations[i]
	}
	s.eventByID = make(map[string]*model.Event, len(s.Events))
	for i := range s.Events {
		s.eventByID[s.Events[i].ID] = &s.Events[i]
	}
	s.individualByID = make(map[string]*model.Individual, len(s.Individuals))
	for i := range s.Individuals {
		s.individualByID[s.Individuals[i].ID] = &s.Individuals[i]
	}
}

// validate checks per-entity validity and that every forward reference
// names an entity present in this load generation.
func (s *Store) validate() error {
	for i := range s.Cases {
		if err := s.Cases[i].Validate(); err != nil {
			return err
		}
	}
	for i := range s.Locations {
		l := &s.Locations[i]
		if err := l.Validate(); err != nil {
			return err
		}
		for _, cid := range l.CaseIDs {
			if _, ok := s.caseByID[cid]; !ok {
				return fmt.Errorf("location %s references unknown case %s", l.ID, cid)
			}
		}
	}
	for i := range s.Events {
		e := &s.Events[i]
		if err := e.Validate(); err != nil {
			return err
		}
		if _, ok := s.locationByID[e.LocationID]; !ok {
			return fmt.Errorf("event %s references unknown location %s", e.ID, e.LocationID)
		}
		for _, iid := range e.RelatedIndividualIDs {
			if _, ok := s.individualByID[iid]; !ok {
				return fmt.Errorf("event %s references unknown individual %s", e.ID, iid)
			}
		}
	}
	for i := range s.Individuals {
		ind := &s.Individuals[i]
		if err := ind.Validate(); err != nil {
			return err
		}
		for _, cid := range ind.CaseIDs {
			if _, ok := s.caseByID[cid]; !ok {
				return fmt.Errorf("individual %s references unknown case %s", ind.ID, cid)
			}
		}
	}
	for i := range s.Relationships {
		r := &s.Relationships[i]
		if err := r.Validate(); err != nil {
			return err
		}
		if _, ok := s.individualByID[r.SourceIndividualID]; !ok {
			return fmt.Errorf("relationship %s references unknown individual %s", r.ID, r.SourceIndividualID)
		}
		if _, ok := s.individualByID[r.TargetIndividualID]; !ok {
			return fmt.Errorf("relationship %s references unknown individual %s", r.ID, r.TargetIndividualID)
		}
		for _, eid := range r.EventIDs {
			if _, ok := s.eventByID[eid]; !ok {
				return fmt.Errorf("relationship %s references unknown event %s", r.ID, eid)
			}
		}
	}
	return nil
}

// reindex rebuilds every derived list from the forward references:
// event→location, event→individuals, location→cases, individual→cases.
// List order follows source collection order, first occurrence wins.
func (s *Store) reindex() {
	for i := range s.Locations {
		s.Locations[i].RelatedEventIDs = nil
		s.Locations[i].RelatedIndividualIDs = nil
	}
	for i := range s.Individuals {
		s.Individuals[i].RelatedEventIDs = nil
		s.Individuals[i].RelatedLocationIDs = nil
	}
	for i := range s.Cases {
		s.Cases[i].LocationIDs = nil
		s.Cases[i].EventIDs = nil
		s.Cases[i].IndividualIDs = nil
	}

	locSeenInd := make(map[string]map[string]bool, len(s.Locations))
	indSeenLoc := make(map[string]map[string]bool, len(s.Individuals))

	for i := range s.Events {
		e := &s.Events[i]
		loc := s.locationByID[e.LocationID]

		// Events inherit case membership from where they occurred.
		e.CaseIDs = append([]string(nil), loc.CaseIDs...)

		loc.RelatedEventIDs = append(loc.RelatedEventIDs, e.ID)
		for _, iid := range e.RelatedIndividualIDs {
			ind := s.individualByID[iid]
			ind.RelatedEventIDs = append(ind.RelatedEventIDs, e.ID)

			seen := locSeenInd[loc.ID]
			if seen == nil {
				seen = make(map[string]bool)
				locSeenInd[loc.ID] = seen
			}
			if !seen[iid] {
				seen[iid] = true
				loc.RelatedIndividualIDs = append(loc.RelatedIndividualIDs, iid)
			}

			seenLoc := indSeenLoc[iid]
			if seenLoc == nil {
				seenLoc = make(map[string]bool)
				indSeenLoc[iid] = seenLoc
			}
			if !seenLoc[loc.ID] {
				seenLoc[loc.ID] = true
				ind.RelatedLocationIDs = append(ind.RelatedLocationIDs, loc.ID)
			}
		}
	}

	for i := range s.Locations {
		for _, cid := range s.Locations[i].CaseIDs {
			c := s.caseByID[cid]
			c.LocationIDs = append(c.LocationIDs, s.Locations[i].ID)
		}
	}
	for i := range s.Events {
		for _, cid := range s.Events[i].CaseIDs {
			c := s.caseByID[cid]
			c.EventIDs = append(c.EventIDs, s.Events[i].ID)
		}
	}
	for i := range s.Individuals {
		for _, cid := range s.Individuals[i].CaseIDs {
			c := s.caseByID[cid]
			c.IndividualIDs = append(c.IndividualIDs, s.Individuals[i].ID)
		}
	}
}

// CaseByID looks up a case.
func (s *Store) CaseByID(id string) (*model.Case, bool) {
	c, ok := s.caseByID[id]
	return c, ok
}

// LocationByID looks up a location.
func (s *Store) LocationByID(id string) (*model.Location, bool) {
	l, ok := s.locationByID[id]
	return l, ok
}

// EventByID looks up an event.
func (s *Store) EventByID(id string) (*model.Event, bool) {
	e, ok := s.eventByID[id]
	return e, ok
}

// IndividualByID looks up an individual.
func (s *Store) IndividualByID(id string) (*model.Individual, bool) {
	i, ok := s.individualByID[id]
	return i, ok
}

// TimeSpan returns the earliest and latest event timestamps. ok is false
// when the store holds no events.
func (s *Store) TimeSpan() (min, max time.Time, ok bool) {
	if len(s.Events) == 0 {
		return time.Time{}, time.Time{}, false
	}
	min, max = s.Events[0].Timestamp, s.Events[0].Timestamp
	for _, e := range s.Events[1:] {
		if e.Timestamp.Before(min) {
			min = e.Timestamp
		}
		if e.Timestamp.After(max) {
			max = e.Timestamp
		}
	}
	return min, max, true
}
