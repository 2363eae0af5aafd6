package model

import (
	"fmt"
	"time"
)

// Case is an investigation grouping that tags locations, events, and
// individuals as related. The back-reference ID lists are derived at load
// time by the store, never trusted from the source files.
type Case struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Description   string     `json:"description"`
	Status        CaseStatus `json:"status"`
	StartDate     time.Time  `json:"startDate"`
	EndDate       *time.Time `json:"endDate,omitempty"`
	LocationIDs   []string   `json:"locationIds"`
	EventIDs      []string   `json:"eventIds"`
	IndividualIDs []string   `json:"individualIds"`
}

// Validate checks that the case data is logically valid.
func (c *Case) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("case ID cannot be empty")
	}
	if c.Name == "" {
		return fmt.Errorf("case %s: name cannot be empty", c.ID)
	}
	if !c.Status.IsValid() {
		return fmt.Errorf("case %s: invalid status %q", c.ID, c.Status)
	}
	if c.EndDate != nil && c.EndDate.Before(c.StartDate) {
		return fmt.Errorf("case %s: endDate (%v) before startDate (%v)", c.ID, c.EndDate, c.StartDate)
	}
	return nil
}

// CaseStatus represents the lifecycle state of a case.
type CaseStatus string

const (
	CaseOpen    CaseStatus = "open"
	CaseClosed  CaseStatus = "closed"
	CasePending CaseStatus = "pending"
)

// IsValid returns true if the status is a recognized value.
func (s CaseStatus) IsValid() bool {
	switch s {
	case CaseOpen, CaseClosed, CasePending:
		return true
	}
	return false
}

// GeoLocation is a WGS84 decimal-degree coordinate. Values are taken from
// the generated data as-is and not range checked.
type GeoLocation struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Location is a geographic point of interest tied to one or more cases.
type Location struct {
	ID                   string       `json:"id"`
	Name                 string       `json:"name"`
	Type                 LocationType `json:"type"`
	Description          string       `json:"description"`
	GeoLocation          GeoLocation  `json:"geoLocation"`
	Address              string       `json:"address,omitempty"`
	RelatedEventIDs      []string     `json:"relatedEventIds"`
	RelatedIndividualIDs []string     `json:"relatedIndividualIds"`
	CaseIDs              []string     `json:"caseIds"`
}

// Validate checks that the location data is logically valid.
func (l *Location) Validate() error {
	if l.ID == "" {
		return fmt.Errorf("location ID cannot be empty")
	}
	if l.Name == "" {
		return fmt.Errorf("location %s: name cannot be empty", l.ID)
	}
	if !l.Type.IsValid() {
		return fmt.Errorf("location %s: invalid type %q", l.ID, l.Type)
	}
	return nil
}

// LocationType categorizes a location.
type LocationType string

const (
	LocCrimeScene       LocationType = "crime_scene"
	LocSuspectResidence LocationType = "suspect_residence"
	LocWitnessResidence LocationType = "witness_residence"
	LocVictimResidence  LocationType = "victim_residence"
	LocBusiness         LocationType = "business"
	LocPublicPlace      LocationType = "public_place"
	LocVehicleLocation  LocationType = "vehicle_location"
	LocMeetingPoint     LocationType = "meeting_point"
	LocEvidenceLocation LocationType = "evidence_location"
)

// LocationTypes lists all location types in display order.
var LocationTypes = []LocationType{
	LocCrimeScene,
	LocSuspectResidence,
	LocWitnessResidence,
	LocVictimResidence,
	LocBusiness,
	LocPublicPlace,
	LocVehicleLocation,
	LocMeetingPoint,
	LocEvidenceLocation,
}

// IsValid returns true if the location type is a recognized value.
func (t LocationType) IsValid() bool {
	for _, known := range LocationTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Event is a point-in-time occurrence at exactly one location. Its case
// membership is inherited from that location.
type Event struct {
	ID                   string    `json:"id"`
	Name                 string    `json:"name"`
	Type                 EventType `json:"type"`
	Description          string    `json:"description"`
	Timestamp            time.Time `json:"timestamp"`
	LocationID           string    `json:"locationId"`
	RelatedIndividualIDs []string  `json:"relatedIndividualIds"`
	CaseIDs              []string  `json:"caseIds"`
}

// Validate checks that the event data is logically valid.
func (e *Event) Validate() error {
	if e.ID == "" {
		return fmt.Errorf("event ID cannot be empty")
	}
	if e.Name == "" {
		return fmt.Errorf("event %s: name cannot be empty", e.ID)
	}
	if !e.Type.IsValid() {
		return fmt.Errorf("event %s: invalid type %q", e.ID, e.Type)
	}
	if e.LocationID == "" {
		return fmt.Errorf("event %s: locationId cannot be empty", e.ID)
	}
	if e.Timestamp.IsZero() {
		return fmt.Errorf("event %s: timestamp cannot be zero", e.ID)
	}
	return nil
}

// EventType categorizes an event.
type EventType string

const (
	EvtMeeting            EventType = "meeting"
	EvtTransaction        EventType = "transaction"
	EvtCommunication      EventType = "communication"
	EvtArrest             EventType = "arrest"
	EvtIncident           EventType = "incident"
	EvtSurveillance       EventType = "surveillance"
	EvtInterview          EventType = "interview"
	EvtEvidenceCollection EventType = "evidence_collection"
)

// EventTypes lists all event types in display order.
var EventTypes = []EventType{
	EvtMeeting,
	EvtTransaction,
	EvtCommunication,
	EvtArrest,
	EvtIncident,
	EvtSurveillance,
	EvtInterview,
	EvtEvidenceCollection,
}

// IsValid returns true if the event type is a recognized value.
func (t EventType) IsValid() bool {
	for _, known := range EventTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Individual is a person connected to one or more cases.
type Individual struct {
	ID                 string         `json:"id"`
	Name               string         `json:"name"`
	Role               IndividualRole `json:"role"`
	Description        string         `json:"description"`
	Alias              string         `json:"alias,omitempty"`
	RelatedEventIDs    []string       `json:"relatedEventIds"`
	RelatedLocationIDs []string       `json:"relatedLocationIds"`
	CaseIDs            []string       `json:"caseIds"`
}

// Validate checks that the individual data is logically valid.
func (i *Individual) Validate() error {
	if i.ID == "" {
		return fmt.Errorf("individual ID cannot be empty")
	}
	if i.Name == "" {
		return fmt.Errorf("individual %s: name cannot be empty", i.ID)
	}
	if !i.Role.IsValid() {
		return fmt.Errorf("individual %s: invalid role %q", i.ID, i.Role)
	}
	return nil
}

// IndividualRole categorizes a person's part in an investigation.
type IndividualRole string

const (
	RoleSuspect          IndividualRole = "suspect"
	RoleWitness          IndividualRole = "witness"
	RoleVictim           IndividualRole = "victim"
	RolePersonOfInterest IndividualRole = "person_of_interest"
	RoleInformant        IndividualRole = "informant"
	RoleLawEnforcement   IndividualRole = "law_enforcement"
)

// IndividualRoles lists all roles in display order.
var IndividualRoles = []IndividualRole{
	RoleSuspect,
	RoleWitness,
	RoleVictim,
	RolePersonOfInterest,
	RoleInformant,
	RoleLawEnforcement,
}

// IsValid returns true if the role is a recognized value.
func (r IndividualRole) IsValid() bool {
	for _, known := range IndividualRoles {
		if r == known {
			return true
		}
	}
	return false
}

// Relationship is a directed edge between two individuals.
type Relationship struct {
	ID                 string           `json:"id"`
	SourceIndividualID string           `json:"sourceIndividualId"`
	TargetIndividualID string           `json:"targetIndividualId"`
	RelationshipType   RelationshipType `json:"relationshipType"`
	Description        string           `json:"description,omitempty"`
	CaseIDs            []string         `json:"caseIds"`
	EventIDs           []string         `json:"eventIds,omitempty"`
}

// Validate checks that the relationship data is logically valid.
func (r *Relationship) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("relationship ID cannot be empty")
	}
	if r.SourceIndividualID == "" || r.TargetIndividualID == "" {
		return fmt.Errorf("relationship %s: source and target cannot be empty", r.ID)
	}
	if !r.RelationshipType.IsValid() {
		return fmt.Errorf("relationship %s: invalid type %q", r.ID, r.RelationshipType)
	}
	return nil
}

// RelationshipType categorizes the connection between two individuals.
type RelationshipType string

const (
	RelSuspectVictim    RelationshipType = "suspect-victim"
	RelWitnessSuspect   RelationshipType = "witness-suspect"
	RelWitnessVictim    RelationshipType = "witness-victim"
	RelAssociate        RelationshipType = "associate"
	RelFamily           RelationshipType = "family"
	RelEmployerEmployee RelationshipType = "employer-employee"
	RelBusinessPartner  RelationshipType = "business_partner"
	RelKnownContact     RelationshipType = "known_contact"
)

// RelationshipTypes lists all relationship types in display order.
var RelationshipTypes = []RelationshipType{
	RelSuspectVictim,
	RelWitnessSuspect,
	RelWitnessVictim,
	RelAssociate,
	RelFamily,
	RelEmployerEmployee,
	RelBusinessPartner,
	RelKnownContact,
}

// IsValid returns true if the relationship type is a recognized value.
func (t RelationshipType) IsValid() bool {
	for _, known := range RelationshipTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Dataset bundles the five collections of one load generation.
type Dataset struct {
	Cases         []Case
	Locations     []Location
	Events        []Event
	Individuals   []Individual
	Relationships []Relationship
}
