package services

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/aryasaputra/food-order-app/models"
	"github.com/aryasaputra/food-order-app/utils"
)

// UserService mengurus registrasi dan administrasi user. Invariannya:
// minimal satu superadmin aktif harus selalu ada; perubahan role,
// deaktivasi, dan penghapusan dijaga terhadap itu.
type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// Register membuat user baru dengan role user; role lain hanya lewat
// administrasi superadmin.
func (s *UserService) Register(name, email, password, divisi string) (*models.User, error) {
	var existing int64
	if err := s.db.Model(&models.User{}).Where("email = ?", email).Count(&existing).Error; err != nil {
		return nil, utils.WrapTransaction("failed to check email", err)
	}
	if existing > 0 {
		return nil, utils.NewAppError(utils.ErrAlreadyExists, "email already registered")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, utils.WrapTransaction("failed to hash password", err)
	}

	user := models.User{
		Name:     name,
		Email:    email,
		Password: string(hashed),
		Role:     models.RoleUser,
		Divisi:   divisi,
		IsActive: true,
	}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, utils.WrapTransaction("failed to create user", err)
	}
	return &user, nil
}

// Authenticate memverifikasi kredensial dan mengembalikan user aktif.
func (s *UserService) Authenticate(email, password string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, utils.NewAppError(utils.ErrNotFound, "invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, utils.NewAppError(utils.ErrNotFound, "invalid credentials")
	}
	if !user.IsActive {
		return nil, utils.NewAppError(utils.ErrForbidden, "account is deactivated")
	}
	return &user, nil
}

// ListUsers untuk administrasi superadmin.
func (s *UserService) ListUsers(page, perPage int) ([]models.User, int64, error) {
	offset, limit := utils.Paginate(page, perPage)

	var total int64
	if err := s.db.Model(&models.User{}).Count(&total).Error; err != nil {
		return nil, 0, utils.WrapTransaction("failed to count users", err)
	}

	var users []models.User
	if err := s.db.Order("id asc").Offset(offset).Limit(limit).Find(&users).Error; err != nil {
		return nil, 0, utils.WrapTransaction("failed to list users", err)
	}
	return users, total, nil
}

// UserUpdate adalah patch parsial administrasi user.
type UserUpdate struct {
	Role       *models.Role
	Divisi     *string
	DataAccess *models.AccessSet
	IsActive   *bool
}

// UpdateUser menerapkan patch; demosi atau deaktivasi superadmin terakhir
// yang aktif ditolak.
func (s *UserService) UpdateUser(userID uint, update UserUpdate) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NewAppError(utils.ErrNotFound, "user not found")
		}
		return nil, utils.WrapTransaction("failed to load user", err)
	}

	losesSuperadmin := false
	if update.Role != nil && user.Role.IsSuperadmin() && !update.Role.IsSuperadmin() {
		losesSuperadmin = true
	}
	if update.IsActive != nil && user.Role.IsSuperadmin() && user.IsActive && !*update.IsActive {
		losesSuperadmin = true
	}
	if losesSuperadmin {
		if err := s.guardLastSuperadmin(user.ID); err != nil {
			return nil, err
		}
	}

	updates := map[string]interface{}{}
	if update.Role != nil {
		if models.ParseRole(string(*update.Role)) != *update.Role {
			return nil, utils.NewValidationError("invalid role", map[string]string{
				"role": "must be user, admin, or superadmin",
			})
		}
		updates["role"] = *update.Role
	}
	if update.Divisi != nil {
		updates["divisi"] = *update.Divisi
	}
	if update.DataAccess != nil {
		updates["data_access"] = update.DataAccess.Normalize()
	}
	if update.IsActive != nil {
		updates["is_active"] = *update.IsActive
	}

	if len(updates) > 0 {
		if err := s.db.Model(&user).Updates(updates).Error; err != nil {
			return nil, utils.WrapTransaction("failed to update user", err)
		}
	}

	if err := s.db.First(&user, userID).Error; err != nil {
		return nil, utils.WrapTransaction("failed to reload user", err)
	}
	return &user, nil
}

// DeleteUser menghapus user; superadmin terakhir yang aktif tidak boleh
// dihapus.
func (s *UserService) DeleteUser(userID uint) error {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NewAppError(utils.ErrNotFound, "user not found")
		}
		return utils.WrapTransaction("failed to load user", err)
	}

	if user.Role.IsSuperadmin() && user.IsActive {
		if err := s.guardLastSuperadmin(user.ID); err != nil {
			return err
		}
	}

	if err := s.db.Delete(&user).Error; err != nil {
		return utils.WrapTransaction("failed to delete user", err)
	}
	return nil
}

func (s *UserService) guardLastSuperadmin(excludeID uint) error {
	var others int64
	if err := s.db.Model(&models.User{}).
		Where("role = ? AND is_active = ? AND id <> ?", models.RoleSuperadmin, true, excludeID).
		Count(&others).Error; err != nil {
		return utils.WrapTransaction("failed to count superadmins", err)
	}
	if others == 0 {
		return utils.NewAppError(utils.ErrInvalidState, "at least one active superadmin must remain")
	}
	return nil
}
