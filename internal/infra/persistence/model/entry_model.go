package model

import (
	"time"

	"github.com/google/uuid"
)

// PillarEntryModel mirrors the 'pillar_entries' table. Entries are the
// append-only raw log the auto-completion rules read.
type PillarEntryModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index:idx_pillar_entries_user_date"`
	Date      string    `gorm:"type:varchar(10);not null;index:idx_pillar_entries_user_date"`
	Pillar    string    `gorm:"type:varchar(16);not null"`
	Note      string    `gorm:"type:text"`
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (PillarEntryModel) TableName() string {
	return "pillar_entries"
}
