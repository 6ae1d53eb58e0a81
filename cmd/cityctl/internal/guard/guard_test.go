package guard

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/S-Arafin/City-Resolved/pkg/sdk"
)

type staticRole struct {
	role    sdk.Role
	loading bool
}

func (s staticRole) Resolve(context.Context) (sdk.Role, bool) {
	return s.role, s.loading
}

func TestCheckRoleFailClosed(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		source   staticRole
		required sdk.Role
		allowed  bool
	}{
		{"admin passes admin guard", staticRole{role: sdk.RoleAdmin}, sdk.RoleAdmin, true},
		{"staff passes staff guard", staticRole{role: sdk.RoleStaff}, sdk.RoleStaff, true},
		{"citizen passes citizen guard", staticRole{role: sdk.RoleCitizen}, sdk.RoleCitizen, true},
		{"citizen denied by admin guard", staticRole{role: sdk.RoleCitizen}, sdk.RoleAdmin, false},
		{"staff denied by admin guard", staticRole{role: sdk.RoleStaff}, sdk.RoleAdmin, false},
		{"admin denied by staff guard", staticRole{role: sdk.RoleAdmin}, sdk.RoleStaff, false},
		{"unresolved denied everywhere", staticRole{role: sdk.RoleUnresolved}, sdk.RoleCitizen, false},
		{"pending lookup denied", staticRole{role: sdk.RoleUnresolved, loading: true}, sdk.RoleAdmin, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckRole(ctx, tt.source, tt.required)
			if tt.allowed {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

// Drive the guard through the resolver states a session passes through:
// protected content must never show before the role is known.
func TestCheckRoleNeverFlashesProtectedContent(t *testing.T) {
	ctx := context.Background()

	assert.Error(t, CheckRole(ctx, staticRole{role: sdk.RoleUnresolved}, sdk.RoleAdmin))
	assert.Error(t, CheckRole(ctx, staticRole{role: sdk.RoleCitizen}, sdk.RoleAdmin))
	assert.NoError(t, CheckRole(ctx, staticRole{role: sdk.RoleAdmin}, sdk.RoleAdmin))
}

func TestCheckSignedIn(t *testing.T) {
	assert.Error(t, CheckSignedIn(sdk.Session{Loading: true}))
	assert.Error(t, CheckSignedIn(sdk.Session{}))
	assert.NoError(t, CheckSignedIn(sdk.Session{Identity: &sdk.Identity{Email: "a@b.com"}}))
}
