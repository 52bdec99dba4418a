package models

import "time"

// OrderItem menyalin harga/notes/qty dari CartItem asalnya, bukan dari
// harga menu saat ini. Setelah order keluar dari status pending, hanya
// IsChecked (penanda fulfillment) yang masih berubah.
type OrderItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	OrderID   uint      `gorm:"not null;index" json:"order_id"`
	Order     Order     `gorm:"foreignKey:OrderID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	MenuID    uint      `gorm:"not null" json:"menu_id"`
	Menu      Menu      `gorm:"foreignKey:MenuID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"menu"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	Price     int64     `gorm:"not null" json:"price"`
	Notes     string    `gorm:"type:text" json:"notes"`
	IsChecked bool      `gorm:"not null;default:false" json:"is_checked"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (oi *OrderItem) Subtotal() int64 {
	return oi.Price * int64(oi.Quantity)
}
