package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessSetNormalize(t *testing.T) {
	set := AccessSet{AccessCRSD2, AccessCRSD1, AccessCRSD2, "bogus"}
	assert.Equal(t, AccessSet{AccessCRSD1, AccessCRSD2}, set.Normalize())

	assert.Empty(t, AccessSet(nil).Normalize())
}

func TestAccessSetValueIsOrderedAndDeduplicated(t *testing.T) {
	a := AccessSet{AccessCRSD2, AccessCRSD1}
	b := AccessSet{AccessCRSD1, AccessCRSD2, AccessCRSD1}

	va, err := a.Value()
	require.NoError(t, err)
	vb, err := b.Value()
	require.NoError(t, err)

	// Himpunan yang sama selalu ter-serialize identik
	assert.Equal(t, va, vb)
	assert.Equal(t, `["crsd1","crsd2"]`, va)
}

func TestAccessSetScan(t *testing.T) {
	var set AccessSet
	require.NoError(t, set.Scan(`["crsd2","crsd1","crsd2"]`))
	assert.Equal(t, AccessSet{AccessCRSD1, AccessCRSD2}, set)

	require.NoError(t, set.Scan(nil))
	assert.Empty(t, set)

	require.NoError(t, set.Scan([]byte(`[]`)))
	assert.Empty(t, set)
}

func TestDivisionName(t *testing.T) {
	name, ok := AccessCRSD1.DivisionName()
	require.True(t, ok)
	assert.Equal(t, "CRSD 1", name)

	name, ok = AccessCRSD2.DivisionName()
	require.True(t, ok)
	assert.Equal(t, "CRSD 2", name)

	_, ok = AccessToken("crsd9").DivisionName()
	assert.False(t, ok)
}

func TestParseRoleFallsBackToUser(t *testing.T) {
	assert.Equal(t, RoleSuperadmin, ParseRole("superadmin"))
	assert.Equal(t, RoleAdmin, ParseRole("admin"))
	assert.Equal(t, RoleUser, ParseRole("user"))
	assert.Equal(t, RoleUser, ParseRole("chef"))
	assert.Equal(t, RoleUser, ParseRole(""))
}

func TestRoleCapabilities(t *testing.T) {
	assert.True(t, RoleSuperadmin.IsStaff())
	assert.True(t, RoleAdmin.IsStaff())
	assert.False(t, RoleUser.IsStaff())

	assert.True(t, RoleSuperadmin.CanManageUsers())
	assert.False(t, RoleAdmin.CanManageUsers())

	assert.True(t, RoleAdmin.CanManageCatalog())
	assert.False(t, RoleUser.CanManageCatalog())
}
