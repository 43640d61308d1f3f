package models

import "time"

// Group names used for authorization. Both rows are seeded at migration
// time; handlers treat a missing row as a server configuration fault.
const (
	GroupManager      = "Manager"
	GroupDeliveryCrew = "Delivery crew"
)

type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"uniqueIndex;not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"not null"`
	Groups       []Group   `json:"groups,omitempty" gorm:"many2many:user_groups;"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Group is a named role. A user may belong to any number of groups;
// a user in neither group is a plain customer.
type Group struct {
	ID    uint   `json:"id" gorm:"primaryKey"`
	Name  string `json:"name" gorm:"uniqueIndex;not null"`
	Users []User `json:"-" gorm:"many2many:user_groups;"`
}
