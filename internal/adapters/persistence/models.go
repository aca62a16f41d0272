package persistence

import (
	"time"

	"gorm.io/datatypes"
)

// SavedBuildModel represents the saved_builds table
type SavedBuildModel struct {
	ID        string         `gorm:"column:id;primaryKey"`
	ShipID    string         `gorm:"column:ship_id;not null;uniqueIndex:idx_saved_builds_ship_name"`
	Name      string         `gorm:"column:name;not null;uniqueIndex:idx_saved_builds_ship_name"`
	Code      string         `gorm:"column:code;not null"`
	Document  datatypes.JSON `gorm:"column:document"`
	CreatedAt time.Time      `gorm:"column:created_at;not null"`
	UpdatedAt time.Time      `gorm:"column:updated_at;not null"`
}

func (SavedBuildModel) TableName() string {
	return "saved_builds"
}
