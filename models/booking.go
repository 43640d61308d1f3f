package models

import "time"

// Booking is a table reservation. Stand-alone record with no relation to
// the ordering side; created by the public booking form and never edited.
type Booking struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	Name            string    `json:"name" gorm:"not null"`
	GuestNumber     int       `json:"guest_number" gorm:"not null"`
	ReservationDate time.Time `json:"reservation_date" gorm:"not null"`
	ReservationSlot int       `json:"reservation_slot" gorm:"not null"`
	Comment         string    `json:"comment"`
	CreatedAt       time.Time `json:"created_at"`
}
