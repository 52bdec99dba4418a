package models

import "time"

// Status pembayaran
const (
	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
)

// Metode pembayaran
const (
	PaymentMethodQRIS         = "qris"
	PaymentMethodBankTransfer = "bank_transfer"
)

// Payment berelasi 1:1 dengan Order; uniqueIndex di OrderID menutup race
// pembuatan ganda, cek aplikasi hanya untuk pesan error yang lebih jelas.
type Payment struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	OrderID       uint       `gorm:"not null;uniqueIndex" json:"order_id"`
	Order         Order      `gorm:"foreignKey:OrderID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"order,omitempty"`
	UserID        uint       `gorm:"not null;index" json:"user_id"`
	User          User       `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	Amount        int64      `gorm:"not null" json:"amount"`
	PaymentMethod string     `gorm:"type:varchar(30);not null" json:"payment_method"`
	Status        string     `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	TransactionID string     `gorm:"type:varchar(64)" json:"transaction_id"`
	ProofUrl      string     `gorm:"type:varchar(255)" json:"proof_url"`
	Notes         string     `gorm:"type:text" json:"notes"`
	PaidAt        *time.Time `json:"paid_at"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}
