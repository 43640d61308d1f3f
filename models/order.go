package models

import "time"

// CartItem is one pending selection in a user's cart. Unit price is
// snapshotted from the catalog when the line is added, so later price
// changes do not affect it. One line per (user, menu item).
type CartItem struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	UserID     uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_cart_user_item"`
	MenuItemID uint      `json:"menuitem_id" gorm:"not null;uniqueIndex:idx_cart_user_item"`
	MenuItem   *MenuItem `json:"menuitem,omitempty" gorm:"foreignKey:MenuItemID"`
	Quantity   int       `json:"quantity" gorm:"not null"`
	UnitPrice  float64   `json:"unitprice" gorm:"not null"`
	Price      float64   `json:"price" gorm:"not null"` // unitprice * quantity
	CreatedAt  time.Time `json:"created_at"`
}

// Order is the header of a checkout. Status is false until the assigned
// delivery crew member marks it delivered. DeliveryCrewID, when set, must
// reference a user in the delivery crew group.
type Order struct {
	ID             uint        `json:"id" gorm:"primaryKey"`
	UserID         uint        `json:"user_id" gorm:"not null"`
	User           *User       `json:"user,omitempty" gorm:"foreignKey:UserID"`
	DeliveryCrewID *uint       `json:"delivery_crew_id"`
	DeliveryCrew   *User       `json:"delivery_crew,omitempty" gorm:"foreignKey:DeliveryCrewID"`
	Status         bool        `json:"status" gorm:"index;not null;default:false"`
	Total          float64     `json:"total"`
	Date           time.Time   `json:"date" gorm:"index;not null"`
	Items          []OrderItem `json:"items,omitempty" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
}

// OrderItem is one catalog line of an order, copied from a cart line at
// checkout. Immutable after creation.
type OrderItem struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	OrderID    uint      `json:"order_id" gorm:"not null;uniqueIndex:idx_order_item"`
	MenuItemID uint      `json:"menuitem_id" gorm:"not null;uniqueIndex:idx_order_item"`
	MenuItem   *MenuItem `json:"menuitem,omitempty" gorm:"foreignKey:MenuItemID"`
	Quantity   int       `json:"quantity" gorm:"not null"`
	UnitPrice  float64   `json:"unitprice" gorm:"not null"`
	Price      float64   `json:"price" gorm:"not null"`
}
