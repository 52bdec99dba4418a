package models

import "time"

// Status pembayaran order
const (
	OrderPaymentPending = "pending"
	OrderPaymentPaid    = "paid"
)

// Status fulfillment order
const (
	OrderFulfillmentPending    = "pending"
	OrderFulfillmentProcessing = "processing"
	OrderFulfillmentCompleted  = "completed"
)

// Order adalah snapshot immutable hasil checkout satu cart. TotalPrice
// dihitung sekali dari snapshot harga item dan tidak pernah dihitung ulang
// dari harga menu terkini.
type Order struct {
	ID                uint       `gorm:"primaryKey" json:"id"`
	Code              string     `gorm:"type:varchar(40);uniqueIndex;not null" json:"code"`
	UserID            uint       `gorm:"not null;index" json:"user_id"`
	User              User       `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"user,omitempty"`
	RestaurantID      uint       `gorm:"not null;index" json:"restaurant_id"`
	Restaurant        Restaurant `gorm:"foreignKey:RestaurantID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"restaurant,omitempty"`
	TotalPrice        int64      `gorm:"not null" json:"total_price"`
	PaymentStatus     string     `gorm:"type:varchar(20);not null;default:'pending'" json:"payment_status"`
	FulfillmentStatus string     `gorm:"type:varchar(20);not null;default:'pending'" json:"fulfillment_status"`
	Notes             string     `gorm:"type:text" json:"notes"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`

	Items   []OrderItem `gorm:"foreignKey:OrderID" json:"items"`
	Payment *Payment    `gorm:"foreignKey:OrderID" json:"payment,omitempty"`
}

// IsPending true selama order belum dibayar.
func (o *Order) IsPending() bool {
	return o.PaymentStatus == OrderPaymentPending
}
