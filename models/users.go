package models

import "time"

// Role adalah tipe tertutup untuk peran user. Jangan bandingkan string
// role langsung di controller, gunakan method capability di bawah.
type Role string

const (
	RoleUser       Role = "user"
	RoleAdmin      Role = "admin"
	RoleSuperadmin Role = "superadmin"
)

// ParseRole mengubah string mentah (dari token/request) menjadi Role.
// Role yang tidak dikenal jatuh ke RoleUser supaya tidak pernah
// menaikkan hak akses secara diam-diam.
func ParseRole(s string) Role {
	switch Role(s) {
	case RoleAdmin:
		return RoleAdmin
	case RoleSuperadmin:
		return RoleSuperadmin
	default:
		return RoleUser
	}
}

func (r Role) IsSuperadmin() bool { return r == RoleSuperadmin }

// IsStaff true untuk admin dan superadmin.
func (r Role) IsStaff() bool { return r == RoleAdmin || r == RoleSuperadmin }

// CanManageUsers -> hanya superadmin yang boleh mengelola user lain.
func (r Role) CanManageUsers() bool { return r == RoleSuperadmin }

// CanManageCatalog -> admin & superadmin boleh mengelola area/restoran/menu.
func (r Role) CanManageCatalog() bool { return r.IsStaff() }

type User struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Name       string    `gorm:"type:varchar(255);not null" json:"name"`
	Email      string    `gorm:"type:varchar(255);unique;not null" json:"email"`
	Password   string    `gorm:"type:varchar(255);not null" json:"-"`
	Role       Role      `gorm:"type:varchar(20);not null;default:'user'" json:"role"`
	Divisi     string    `gorm:"type:varchar(50)" json:"divisi"`
	DataAccess AccessSet `gorm:"type:text" json:"data_access"`
	IsActive   bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
