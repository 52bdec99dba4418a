package models

import "time"

type Restaurant struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	AreaID      uint      `gorm:"not null;index" json:"area_id"`
	Area        Area      `gorm:"foreignKey:AreaID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"area"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	ImageUrl    string    `gorm:"type:varchar(255)" json:"image_url"`
	IsOpen      bool      `gorm:"not null;default:true" json:"is_open"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Menus []Menu `gorm:"foreignKey:RestaurantID" json:"menus,omitempty"`
}
