package models

import (
	"time"
)

// Role is a user's authorization level
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Valid reports whether the role is one of the known variants
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// User represents a registered user
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"size:100;not null" json:"name"`
	Email        string    `gorm:"uniqueIndex;size:100;not null" json:"email"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	Role         Role      `gorm:"size:10;not null;default:user" json:"role"`
	Avatar       string    `gorm:"size:255" json:"avatar"`
	Currency     string    `gorm:"size:10;not null;default:USD" json:"currency"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relations
	Categories   []Category    `gorm:"foreignKey:UserID" json:"categories,omitempty"`
	Transactions []Transaction `gorm:"foreignKey:UserID" json:"transactions,omitempty"`
}

// TableName specifies the table name for User model
func (User) TableName() string {
	return "users"
}
