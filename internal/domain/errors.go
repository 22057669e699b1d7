package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotImplemented  = errors.New("not implemented")
	ErrInvalidInterval = errors.New("invalid interval")
	ErrNotFound        = errors.New("not found")
	ErrInvalidPerson   = errors.New("invalid person")
	ErrDuplicateCourt  = errors.New("court number already registered")

	// ErrTimeUnavailable and ErrRoleMismatch are the targets errors.Is
	// matches for the typed errors below.
	ErrTimeUnavailable = errors.New("time unavailable")
	ErrRoleMismatch    = errors.New("role mismatch")
)

type ResourceType string

const (
	ResourceCourt     ResourceType = "court"
	ResourceTrainer   ResourceType = "trainer"
	ResourceEquipment ResourceType = "equipment"
)

// TimeUnavailableError is returned by the booking factories when a resource
// is already taken (or not working) for the requested interval.
type TimeUnavailableError struct {
	Resource   ResourceType
	ResourceID int64
	Interval   Interval
}

func (e *TimeUnavailableError) Error() string {
	return fmt.Sprintf("%s %d unavailable for %s", e.Resource, e.ResourceID, e.Interval)
}

func (e *TimeUnavailableError) Is(target error) bool {
	return target == ErrTimeUnavailable
}

// Side names which end of an operation lacked the role.
type Side string

const (
	SideClient      Side = "client"
	SideParticipant Side = "participant"
)

type RoleMismatchError struct {
	Side     Side
	PersonID int64
	Required Role
}

func (e *RoleMismatchError) Error() string {
	return fmt.Sprintf("%s %d lacks role %s", e.Side, e.PersonID, e.Required)
}

func (e *RoleMismatchError) Is(target error) bool {
	return target == ErrRoleMismatch
}

func roleMismatch(side Side, p *Person, required Role) error {
	var id int64
	if p != nil {
		id = p.ID
	}
	return &RoleMismatchError{Side: side, PersonID: id, Required: required}
}
