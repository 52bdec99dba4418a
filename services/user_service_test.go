package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aryasaputra/food-order-app/models"
	"github.com/aryasaputra/food-order-app/utils"
)

func TestRegisterAndAuthenticate(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db)

	user, err := svc.Register("Budi", "budi@example.com", "rahasia123", "CRSD 1")
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, user.Role)
	assert.True(t, user.IsActive)

	_, err = svc.Register("Budi Lagi", "budi@example.com", "rahasia123", "CRSD 1")
	assert.Equal(t, utils.ErrAlreadyExists, appErrKind(t, err))

	authed, err := svc.Authenticate("budi@example.com", "rahasia123")
	require.NoError(t, err)
	assert.Equal(t, user.ID, authed.ID)

	_, err = svc.Authenticate("budi@example.com", "salah")
	assert.Equal(t, utils.ErrNotFound, appErrKind(t, err))
}

func TestAuthenticateDeactivatedUser(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db)

	user, err := svc.Register("Budi", "budi@example.com", "rahasia123", "")
	require.NoError(t, err)
	require.NoError(t, db.Model(user).Update("is_active", false).Error)

	_, err = svc.Authenticate("budi@example.com", "rahasia123")
	assert.Equal(t, utils.ErrForbidden, appErrKind(t, err))
}

func TestCannotDemoteLastSuperadmin(t *testing.T) {
	db := setupTestDB(t)
	root := seedUser(t, db, "root@example.com", models.RoleSuperadmin, "", nil)

	svc := NewUserService(db)

	admin := models.RoleAdmin
	_, err := svc.UpdateUser(root.ID, UserUpdate{Role: &admin})
	assert.Equal(t, utils.ErrInvalidState, appErrKind(t, err))

	inactive := false
	_, err = svc.UpdateUser(root.ID, UserUpdate{IsActive: &inactive})
	assert.Equal(t, utils.ErrInvalidState, appErrKind(t, err))

	err = svc.DeleteUser(root.ID)
	assert.Equal(t, utils.ErrInvalidState, appErrKind(t, err))
}

func TestDemoteSuperadminWithBackup(t *testing.T) {
	db := setupTestDB(t)
	root := seedUser(t, db, "root@example.com", models.RoleSuperadmin, "", nil)
	seedUser(t, db, "backup@example.com", models.RoleSuperadmin, "", nil)

	svc := NewUserService(db)

	admin := models.RoleAdmin
	user, err := svc.UpdateUser(root.ID, UserUpdate{Role: &admin})
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, user.Role)
}

func TestUpdateUserDataAccessNormalized(t *testing.T) {
	db := setupTestDB(t)
	seedUser(t, db, "root@example.com", models.RoleSuperadmin, "", nil)
	admin := seedUser(t, db, "admin@example.com", models.RoleAdmin, "CRSD 1", nil)

	svc := NewUserService(db)

	// Duplikat dan token tak dikenal dibuang saat disimpan
	set := models.AccessSet{models.AccessCRSD2, models.AccessCRSD1, models.AccessCRSD2, "bogus"}
	user, err := svc.UpdateUser(admin.ID, UserUpdate{DataAccess: &set})
	require.NoError(t, err)
	assert.Equal(t, models.AccessSet{models.AccessCRSD1, models.AccessCRSD2}, user.DataAccess)
}

func TestUpdateUserInvalidRole(t *testing.T) {
	db := setupTestDB(t)
	seedUser(t, db, "root@example.com", models.RoleSuperadmin, "", nil)
	target := seedUser(t, db, "budi@example.com", models.RoleUser, "", nil)

	svc := NewUserService(db)

	bogus := models.Role("chef")
	_, err := svc.UpdateUser(target.ID, UserUpdate{Role: &bogus})
	assert.Equal(t, utils.ErrValidationFailed, appErrKind(t, err))
}
