package domain

import "fmt"

// Status is the pipeline stage of a tracked property. The order below
// is the kanban column order; it is a presentation convention only and
// any status may be set from any other one.
type Status string

const (
	StatusSeen             Status = "Seen"
	StatusInterested       Status = "Interested"
	StatusContactedRealtor Status = "Contacted Realtor"
	StatusVisited          Status = "Visited"
	StatusOnHold           Status = "On Hold"
	StatusIrrelevant       Status = "Irrelevant"
	StatusPurchased        Status = "Purchased"
)

// StatusOrder lists all statuses in kanban column order.
var StatusOrder = []Status{
	StatusSeen,
	StatusInterested,
	StatusContactedRealtor,
	StatusVisited,
	StatusOnHold,
	StatusIrrelevant,
	StatusPurchased,
}

// DefaultCollapsedStatuses are the columns the board renders collapsed
// until the user expands them.
var DefaultCollapsedStatuses = []Status{StatusIrrelevant, StatusPurchased}

// DefaultStatus is assigned to newly created properties.
const DefaultStatus = StatusSeen

// ParseStatus returns the Status matching s, or an error.
func ParseStatus(s string) (Status, error) {
	for _, st := range StatusOrder {
		if string(st) == s {
			return st, nil
		}
	}
	return "", fmt.Errorf("%w: unknown status %q", ErrValidation, s)
}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	_, err := ParseStatus(string(s))
	return err == nil
}

// Source is where a listing was found.
type Source string

const (
	SourceYad2          Source = "Yad2"
	SourceFriendsFamily Source = "Friends & Family"
	SourceFacebook      Source = "Facebook"
	SourceMadlan        Source = "Madlan"
	SourceOther         Source = "Other"
)

var sources = []Source{SourceYad2, SourceFriendsFamily, SourceFacebook, SourceMadlan, SourceOther}

// Valid reports whether s is one of the known sources.
func (s Source) Valid() bool {
	for _, v := range sources {
		if v == s {
			return true
		}
	}
	return false
}

// PropertyType distinguishes new construction from existing apartments.
type PropertyType string

const (
	PropertyTypeNew      PropertyType = "New"
	PropertyTypeExisting PropertyType = "Existing apartment"
)

// Valid reports whether t is one of the known property types.
func (t PropertyType) Valid() bool {
	return t == PropertyTypeNew || t == PropertyTypeExisting
}
