package models

import (
	"time"
)

// Transaction represents a single income or expense record owned by a
// user. Amount is stored rounded to two decimal places.
type Transaction struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Amount      float64         `gorm:"type:numeric(14,2);not null" json:"amount"`
	Description string          `gorm:"size:255" json:"description"`
	Date        time.Time       `gorm:"index;not null" json:"date"`
	Type        TransactionType `gorm:"size:10;not null" json:"type"`
	CategoryID  uint            `gorm:"index;not null" json:"category_id"`
	UserID      uint            `gorm:"index;not null" json:"user_id"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`

	// Relations
	Category Category `gorm:"foreignKey:CategoryID" json:"category"`
	User     User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// TableName specifies the table name for Transaction model
func (Transaction) TableName() string {
	return "transactions"
}
