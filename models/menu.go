package models

import "time"

type Category struct {
	ID    uint   `json:"id" gorm:"primaryKey"`
	Slug  string `json:"slug"`
	Title string `json:"title" gorm:"index;not null"`
}

// MenuItem is a catalog entry. Categories cannot be removed while an
// item still references them.
type MenuItem struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Title       string    `json:"title" gorm:"uniqueIndex;not null"`
	Price       float64   `json:"price" gorm:"index;not null"`
	Description string    `json:"description"`
	Featured    bool      `json:"featured" gorm:"index"`
	CategoryID  uint      `json:"category_id" gorm:"not null"`
	Category    *Category `json:"category,omitempty" gorm:"foreignKey:CategoryID;constraint:OnDelete:RESTRICT"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
