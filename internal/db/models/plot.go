package models

import "time"

// Plot represents a single plot/house in the society.
type Plot struct {
	// ID is the unique identifier for the plot.
	ID uint `gorm:"primaryKey" json:"PlotID"`
	// Number is the unique plot number as printed on society records.
	Number string `gorm:"unique;size:50;not null" json:"PlotNumber" validate:"required,max=50"`
	// OwnerName is the registered owner of the plot.
	OwnerName string `gorm:"size:150" json:"OwnerName" validate:"max=150"`
	// CategoryID references the plot's category (residential, commercial, ...).
	CategoryID uint `gorm:"column:category_id" json:"CategoryID"`
	// FloorID references the floor/storey configuration of the plot.
	FloorID uint `gorm:"column:floor_id" json:"FloorID"`
	// AreaSqYards is the plot area in square yards; rate plans charge per area.
	AreaSqYards float64 `json:"AreaSqYards" validate:"gte=0"`
	// Occupied indicates whether the plot is currently occupied.
	Occupied bool `json:"Occupied"`
	// CreatedAt is managed by GORM.
	CreatedAt time.Time `json:"-"`
	// UpdatedAt is managed by GORM.
	UpdatedAt time.Time `json:"-"`
}

// TableName specifies the database table name for the Plot model.
func (Plot) TableName() string {
	return "plots"
}
