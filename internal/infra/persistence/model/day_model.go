package model

import (
	"time"

	"github.com/google/uuid"
)

// DayRecordModel mirrors the 'day_records' table. The (user_id, date) pair
// is unique so concurrent creates surface as constraint violations.
type DayRecordModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_day_records_user_date"`
	Date      string    `gorm:"type:varchar(10);not null;uniqueIndex:idx_day_records_user_date"`
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (DayRecordModel) TableName() string {
	return "day_records"
}

// PillarCompletionModel mirrors the 'pillar_completions' table. One row per
// (day, pillar), seeded lazily on first touch.
type PillarCompletionModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	DayID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_pillar_completions_day_pillar"`
	Pillar    string    `gorm:"type:varchar(16);not null;uniqueIndex:idx_pillar_completions_day_pillar"`
	Completed bool      `gorm:"not null;default:false"`
	Source    string    `gorm:"type:varchar(16);not null;default:''"`
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (PillarCompletionModel) TableName() string {
	return "pillar_completions"
}
