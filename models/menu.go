package models

import "time"

// Menu memakai harga dalam satuan Rupiah bulat (tanpa desimal).
type Menu struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	RestaurantID uint       `gorm:"not null;index" json:"restaurant_id"`
	Restaurant   Restaurant `gorm:"foreignKey:RestaurantID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Name         string     `gorm:"type:varchar(255);not null" json:"name"`
	Price        int64      `gorm:"not null" json:"price"`
	Description  string     `gorm:"type:text" json:"description"`
	ImageUrl     string     `gorm:"type:varchar(255)" json:"image_url"`
	IsAvailable  bool       `gorm:"not null;default:true" json:"is_available"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}
