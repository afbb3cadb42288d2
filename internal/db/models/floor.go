package models

import "time"

// Floor represents a floor/storey configuration selectable on a plot
// (e.g., "Ground", "Ground + 1").
type Floor struct {
	ID        uint      `gorm:"primaryKey" json:"FloorID"`
	Name      string    `gorm:"unique;size:100;not null" json:"FloorName" validate:"required,max=100"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// TableName specifies the database table name for the Floor model.
func (Floor) TableName() string {
	return "floors"
}
