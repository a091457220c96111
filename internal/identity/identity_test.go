package identity

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeaderProvider_Identify(t *testing.T) {
	provider := NewHeaderProvider()

	req := httptest.NewRequest(http.MethodGet, "/events", nil)
	req.Header.Set("X-Auth-Subject", "user_123")
	req.Header.Set("X-Auth-Email", "organizer@example.com")
	req.Header.Set("X-Auth-Role", "organizer")

	ident, err := provider.Identify(req)

	require.NoError(t, err)
	assert.Equal(t, "user_123", ident.SubjectID)
	assert.Equal(t, "organizer@example.com", ident.Email)
	assert.Equal(t, RoleOrganizer, ident.Role)
}

func TestHeaderProvider_Identify_MissingSubject(t *testing.T) {
	provider := NewHeaderProvider()

	ident, err := provider.Identify(httptest.NewRequest(http.MethodGet, "/events", nil))

	assert.Nil(t, ident)
	assert.Error(t, err)
}

func TestHeaderProvider_Identify_UnknownRole(t *testing.T) {
	provider := NewHeaderProvider()

	req := httptest.NewRequest(http.MethodGet, "/events", nil)
	req.Header.Set("X-Auth-Subject", "user_123")
	req.Header.Set("X-Auth-Role", "superuser")

	ident, err := provider.Identify(req)

	assert.Nil(t, ident)
	assert.Error(t, err)
}
