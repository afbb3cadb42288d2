package models

import "time"

// RatePlan represents a service-rate plan: the per-area or flat rates the
// society charges plots for a service (maintenance, water, security).
// Generating payment plans from a rate plan is a separate, guarded action;
// the plan itself is plain CRUD data.
type RatePlan struct {
	ID   uint   `gorm:"primaryKey" json:"RatePlanID"`
	Name string `gorm:"unique;size:100;not null" json:"RatePlanName" validate:"required,max=100"`
	// CategoryID restricts the plan to plots of one category; 0 applies to all.
	CategoryID uint `gorm:"column:category_id;default:0" json:"CategoryID"`
	// RatePerSqYard is the monthly charge per square yard of plot area.
	RatePerSqYard float64 `json:"RatePerSqYard" validate:"gte=0"`
	// FlatRate is a fixed monthly charge added on top of the area rate.
	FlatRate float64 `json:"FlatRate" validate:"gte=0"`
	// EffectiveFrom is the first month the plan applies to.
	EffectiveFrom time.Time `json:"EffectiveFrom"`
	Active        bool      `gorm:"default:true" json:"Active"`
	CreatedAt     time.Time `json:"-"`
	UpdatedAt     time.Time `json:"-"`
}

// TableName specifies the database table name for the RatePlan model.
func (RatePlan) TableName() string {
	return "rate_plans"
}
