package accounts

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsBackdoor(t *testing.T) {
	assert.True(t, IsBackdoor("admin@bn.com", "admin123"))
	assert.False(t, IsBackdoor("admin@bn.com", "wrong"))
	assert.False(t, IsBackdoor("user@bn.com", "admin123"))
	assert.False(t, IsBackdoor("", ""))
}

func TestAdminIdentity(t *testing.T) {
	u := AdminIdentity()
	assert.Equal(t, "admin", u.ID)
	assert.Equal(t, RoleAdmin, u.Role)
	assert.Equal(t, AdminEmail, u.Email)
	// the synthetic admin never carries a stored password
	assert.Empty(t, u.Password)
}
