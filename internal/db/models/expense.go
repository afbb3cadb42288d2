package models

import "time"

// Expense represents money spent by the society (maintenance, security,
// utilities and so on).
type Expense struct {
	ID uint `gorm:"primaryKey" json:"ExpenseID"`
	// CategoryID references an expense-kind Category.
	CategoryID  uint      `gorm:"column:category_id;not null" json:"CategoryID" validate:"required"`
	Description string    `gorm:"size:255" json:"Description" validate:"max=255"`
	Amount      float64   `gorm:"not null" json:"Amount" validate:"required,gt=0"`
	ExpenseDate time.Time `gorm:"not null" json:"ExpenseDate" validate:"required"`
	CreatedAt   time.Time `json:"-"`
	UpdatedAt   time.Time `json:"-"`
}

// TableName specifies the database table name for the Expense model.
func (Expense) TableName() string {
	return "expenses"
}
