package models

import "time"

// PaymentSettings adalah record konfigurasi tunggal (tepat satu baris).
// Baris default dibuat eksplisit lewat EnsurePaymentSettings saat migrasi,
// bukan sebagai efek samping pembacaan pertama.
type PaymentSettings struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	QRISEnabled       bool      `gorm:"not null;default:true" json:"qris_enabled"`
	QRISImageUrl      string    `gorm:"type:varchar(255)" json:"qris_image_url"`
	TransferEnabled   bool      `gorm:"not null;default:true" json:"transfer_enabled"`
	BankName          string    `gorm:"type:varchar(100)" json:"bank_name"`
	BankAccountNumber string    `gorm:"type:varchar(50)" json:"bank_account_number"`
	BankAccountHolder string    `gorm:"type:varchar(255)" json:"bank_account_holder"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// MethodEnabled memeriksa apakah sebuah metode pembayaran sedang aktif.
func (ps *PaymentSettings) MethodEnabled(method string) bool {
	switch method {
	case PaymentMethodQRIS:
		return ps.QRISEnabled
	case PaymentMethodBankTransfer:
		return ps.TransferEnabled
	default:
		return false
	}
}
