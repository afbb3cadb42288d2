package models

import "time"

// Receivable payment status values.
const (
	// ReceivablePending marks a receivable that has not been paid yet.
	ReceivablePending = "pending"
	// ReceivablePaid marks a settled receivable.
	ReceivablePaid = "paid"
	// ReceivableWaived marks a receivable cancelled by the management.
	ReceivableWaived = "waived"
)

// Receivable represents money owed to the society by a plot: a monthly
// maintenance fee, a utility bill share or a one-off charge.
type Receivable struct {
	ID uint `gorm:"primaryKey" json:"ReceivableID"`
	// PlotID is the plot this receivable is charged to.
	PlotID uint `gorm:"column:plot_id;not null;index" json:"PlotID" validate:"required"`
	// RatePlanID optionally references the rate plan the charge came from.
	RatePlanID  *uint     `gorm:"column:rate_plan_id" json:"RatePlanID"`
	Description string    `gorm:"size:255" json:"Description" validate:"max=255"`
	Amount      float64   `gorm:"not null" json:"Amount" validate:"required,gt=0"`
	DueDate     time.Time `gorm:"not null" json:"DueDate" validate:"required"`
	// Status is one of pending, paid or waived.
	Status    string     `gorm:"size:20;not null;default:'pending'" json:"Status" validate:"omitempty,oneof=pending paid waived"`
	PaidAt    *time.Time `json:"PaidAt"`
	CreatedAt time.Time  `json:"-"`
	UpdatedAt time.Time  `json:"-"`
}

// TableName specifies the database table name for the Receivable model.
func (Receivable) TableName() string {
	return "receivables"
}
