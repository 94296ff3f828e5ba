package types

import (
	"time"

	"github.com/google/uuid"
)

type Question struct {
	ID           uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	StateID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"state_id"`
	State        *HarmonicState `gorm:"constraint:OnDelete:RESTRICT;foreignKey:StateID;references:ID" json:"state,omitempty"`
	Text         string         `gorm:"not null;column:text" json:"text"`
	DisplayOrder int            `gorm:"not null;default:0;column:display_order" json:"display_order"`
	CreatedAt    time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"not null;default:now()" json:"updated_at"`
}

func (Question) TableName() string {
	return "question"
}
