// Package access mengevaluasi hak baca data antar divisi (CRSD).
// Evaluasi murni: (principal, scope resource) -> keputusan filter, tanpa
// efek samping. Semua jalur baca/tulis lintas-user lewat sini.
package access

import (
	"gorm.io/gorm"

	"github.com/aryasaputra/food-order-app/models"
)

// Mode keputusan evaluator.
type Mode int

const (
	// Unrestricted: boleh melihat seluruh baris.
	Unrestricted Mode = iota
	// FilteredByDivision: hanya baris milik user dengan divisi tertentu.
	FilteredByDivision
	// DenyAll: nol baris. Set kosong atau token tak dikenal jatuh ke sini,
	// tidak pernah diam-diam menjadi unrestricted.
	DenyAll
)

// Decision adalah hasil evaluasi untuk satu principal.
type Decision struct {
	Mode      Mode
	Divisions []string
}

// Evaluate menurunkan keputusan akses data dari role + data-access set.
func Evaluate(user *models.User) Decision {
	if user.Role.IsSuperadmin() {
		return Decision{Mode: Unrestricted}
	}

	var divisions []string
	for _, token := range user.DataAccess.Normalize() {
		if name, ok := token.DivisionName(); ok {
			divisions = append(divisions, name)
		}
	}

	switch {
	case len(divisions) >= allDivisionCount():
		return Decision{Mode: Unrestricted}
	case len(divisions) > 0:
		return Decision{Mode: FilteredByDivision, Divisions: divisions}
	default:
		return Decision{Mode: DenyAll}
	}
}

// HasMultipleAccess true jika set eksplisit memuat >= 2 token partisi yang
// dikenal; dipakai untuk membuka tampilan lintas divisi.
func HasMultipleAccess(user *models.User) bool {
	return len(user.DataAccess.Normalize()) >= 2
}

// OrderScope menerjemahkan keputusan menjadi scope gorm atas tabel orders,
// join melalui kolom divisi user pemilik order.
func OrderScope(user *models.User) func(*gorm.DB) *gorm.DB {
	return ownerScope(user, "orders.user_id")
}

// PaymentScope membatasi tabel payments melalui user pemilik pembayaran.
func PaymentScope(user *models.User) func(*gorm.DB) *gorm.DB {
	return ownerScope(user, "payments.user_id")
}

func ownerScope(user *models.User, ownerColumn string) func(*gorm.DB) *gorm.DB {
	decision := Evaluate(user)
	return func(db *gorm.DB) *gorm.DB {
		switch decision.Mode {
		case Unrestricted:
			return db
		case FilteredByDivision:
			return db.
				Joins("JOIN users AS owner ON owner.id = "+ownerColumn).
				Where("owner.divisi IN ?", decision.Divisions)
		default:
			// fail closed
			return db.Where("1 = 0")
		}
	}
}

func allDivisionCount() int {
	return 2 // crsd1 + crsd2
}
