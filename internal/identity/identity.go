package identity

import (
	"fmt"
	"net/http"
)

// Role is the coarse access level assigned by the identity provider.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleOrganizer Role = "organizer"
	RoleAttendee  Role = "attendee"
)

// Identity is the validated caller identity supplied by the external
// identity provider. The service trusts this payload as-is; credential
// validation (JWT signature checks, expiry) happens upstream.
type Identity struct {
	SubjectID string
	Email     string
	Role      Role
}

// Provider extracts a validated identity from an incoming request.
type Provider interface {
	Identify(r *http.Request) (*Identity, error)
}

// HeaderProvider reads the identity the gateway injects after validating
// the bearer credential. It must only be used behind a trusted proxy that
// strips these headers from external traffic.
type HeaderProvider struct{}

func NewHeaderProvider() *HeaderProvider {
	return &HeaderProvider{}
}

func (p *HeaderProvider) Identify(r *http.Request) (*Identity, error) {
	subject := r.Header.Get("X-Auth-Subject")
	if subject == "" {
		return nil, fmt.Errorf("missing caller identity")
	}

	role := Role(r.Header.Get("X-Auth-Role"))
	switch role {
	case RoleAdmin, RoleOrganizer, RoleAttendee:
	default:
		return nil, fmt.Errorf("unknown role %q", role)
	}

	return &Identity{
		SubjectID: subject,
		Email:     r.Header.Get("X-Auth-Email"),
		Role:      role,
	}, nil
}
