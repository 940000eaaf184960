package models

import (
	"time"
)

// TransactionType classifies money movement as income or expense.
// Categories and transactions share the same closed set, and a
// transaction's type must always match its category's type.
type TransactionType string

const (
	TypeIncome  TransactionType = "income"
	TypeExpense TransactionType = "expense"
)

// Valid reports whether the type is one of the two known variants
func (t TransactionType) Valid() bool {
	return t == TypeIncome || t == TypeExpense
}

const (
	// DefaultCategoryColor is used when a category is created without a color
	DefaultCategoryColor = "#000000"
	// DefaultCategoryIcon is used when a category is created without an icon
	DefaultCategoryIcon = "default-icon"
)

// Category represents a transaction category. A category either belongs
// to a single user or is a shared default visible to everyone. Default
// categories have no owner and cannot be modified or deleted.
type Category struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	Name      string          `gorm:"size:100;not null" json:"name"`
	Type      TransactionType `gorm:"size:10;not null" json:"type"`
	Color     string          `gorm:"size:20;not null;default:#000000" json:"color"`
	Icon      string          `gorm:"size:50;not null;default:default-icon" json:"icon"`
	UserID    *uint           `gorm:"index" json:"user_id,omitempty"`
	IsDefault bool            `gorm:"not null;default:false" json:"is_default"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`

	// Relations
	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// TableName specifies the table name for Category model
func (Category) TableName() string {
	return "categories"
}
