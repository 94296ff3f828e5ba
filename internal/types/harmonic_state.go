package types

import (
	"time"

	"github.com/google/uuid"
)

// HarmonicState is admin-maintained reference data. It is never deleted
// while a question or a completed assessment still references it.
type HarmonicState struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name        string    `gorm:"uniqueIndex;not null;column:name" json:"name"`
	Color       string    `gorm:"not null;column:color" json:"color"`
	Description string    `gorm:"column:description" json:"description"`
	Guidance    string    `gorm:"column:guidance" json:"guidance"`
	CreatedAt   time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (HarmonicState) TableName() string {
	return "harmonic_state"
}
