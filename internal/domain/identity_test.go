package domain_test

import (
	"testing"

	"github.com/sem/quill/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestIdentity_CanEdit(t *testing.T) {
	post := &domain.Post{ID: 10, AuthorID: 1}

	tests := []struct {
		name     string
		identity domain.Identity
		want     bool
	}{
		{
			name:     "owner may edit",
			identity: domain.Identity{UserID: 1, Role: domain.RoleRegular},
			want:     true,
		},
		{
			name:     "other user may not edit",
			identity: domain.Identity{UserID: 2, Role: domain.RoleRegular},
			want:     false,
		},
		{
			name:     "anonymous may not edit",
			identity: domain.Anonymous,
			want:     false,
		},
		{
			name:     "administrator gets no ownership override",
			identity: domain.Identity{UserID: 3, Role: domain.RoleAdministrator},
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.identity.CanEdit(post))
			// Delete uses the same predicate as edit.
			assert.Equal(t, tt.want, tt.identity.CanDelete(post))
		})
	}
}

func TestIdentity_IsAdministrator(t *testing.T) {
	assert.True(t, domain.Identity{UserID: 1, Role: domain.RoleAdministrator}.IsAdministrator())
	assert.False(t, domain.Identity{UserID: 1, Role: domain.RoleRegular}.IsAdministrator())
	assert.False(t, domain.Anonymous.IsAdministrator())
	// A role claim without a user binding carries no privilege.
	assert.False(t, domain.Identity{Role: domain.RoleAdministrator}.IsAdministrator())
}

func TestRole_IsValid(t *testing.T) {
	for _, role := range domain.AllRoles {
		assert.True(t, role.IsValid())
	}
	assert.False(t, domain.Role("superuser").IsValid())
	assert.False(t, domain.Role("").IsValid())
}
