package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Role is a capability flag on a Person.
type Role uint8

const (
	RoleClient Role = 1 << iota
	RoleParticipant
)

func (r Role) String() string {
	switch r {
	case RoleClient:
		return "client"
	case RoleParticipant:
		return "participant"
	case RoleClient | RoleParticipant:
		return "client+participant"
	default:
		return fmt.Sprintf("role(%d)", uint8(r))
	}
}

// Roles is the set of capabilities a person holds.
type Roles uint8

func (rs Roles) Has(r Role) bool { return Roles(r)&rs == Roles(r) }

func (rs Roles) List() []string {
	var out []string
	if rs.Has(RoleClient) {
		out = append(out, RoleClient.String())
	}
	if rs.Has(RoleParticipant) {
		out = append(out, RoleParticipant.String())
	}
	return out
}

func (rs Roles) MarshalJSON() ([]byte, error) {
	return json.Marshal(rs.List())
}

// ParseRoles accepts "client", "participant" or both.
func ParseRoles(names []string) (Roles, error) {
	var rs Roles
	for _, n := range names {
		switch strings.ToLower(strings.TrimSpace(n)) {
		case "client":
			rs |= Roles(RoleClient)
		case "participant":
			rs |= Roles(RoleParticipant)
		default:
			return 0, fmt.Errorf("%w: unknown role %q", ErrInvalidPerson, n)
		}
	}
	if rs == 0 {
		return 0, fmt.Errorf("%w: at least one role required", ErrInvalidPerson)
	}
	return rs, nil
}

type Person struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
	Roles Roles  `json:"roles"`
	// OwningClientID is set for every participant-only person.
	OwningClientID *int64 `json:"owning_client_id,omitempty"`
}

func (p *Person) IsClient() bool      { return p != nil && p.Roles.Has(RoleClient) }
func (p *Person) IsParticipant() bool { return p != nil && p.Roles.Has(RoleParticipant) }

// NeedsOwner is true for participants who cannot pay for themselves.
func (p *Person) NeedsOwner() bool {
	return p.IsParticipant() && !p.IsClient()
}

func NewClient(id int64, name string) (*Person, error) {
	return NewPerson(id, name, Roles(RoleClient), nil)
}

func NewClientParticipant(id int64, name string) (*Person, error) {
	return NewPerson(id, name, Roles(RoleClient|RoleParticipant), nil)
}

func NewParticipant(id int64, name string, owner *Person) (*Person, error) {
	if !owner.IsClient() {
		return nil, roleMismatch(SideClient, owner, RoleClient)
	}
	ownerID := owner.ID
	return NewPerson(id, name, Roles(RoleParticipant), &ownerID)
}

// NewPerson validates the role set against the owning client reference.
func NewPerson(id int64, name string, roles Roles, owningClientID *int64) (*Person, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidPerson)
	}
	if roles == 0 || roles&^Roles(RoleClient|RoleParticipant) != 0 {
		return nil, fmt.Errorf("%w: invalid role set %d", ErrInvalidPerson, roles)
	}
	p := &Person{ID: id, Name: name, Roles: roles}
	if p.NeedsOwner() {
		if owningClientID == nil {
			return nil, fmt.Errorf("%w: participant needs an owning client", ErrInvalidPerson)
		}
		v := *owningClientID
		p.OwningClientID = &v
	} else if owningClientID != nil && roles.Has(RoleParticipant) {
		v := *owningClientID
		p.OwningClientID = &v
	}
	return p, nil
}
