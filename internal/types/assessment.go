package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Assessment is finalized exactly once: completed, dominant_state_id and
// score_map are written together when the last answer is advanced past.
type Assessment struct {
	ID              uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID          uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	User            *User          `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	Completed       bool           `gorm:"not null;default:false;column:completed" json:"completed"`
	DominantStateID *uuid.UUID     `gorm:"type:uuid;column:dominant_state_id" json:"dominant_state_id,omitempty"`
	DominantState   *HarmonicState `gorm:"constraint:OnDelete:RESTRICT;foreignKey:DominantStateID;references:ID" json:"dominant_state,omitempty"`
	ScoreMap        datatypes.JSON `gorm:"column:score_map;type:jsonb" json:"score_map,omitempty"`
	QuestionOrder   datatypes.JSON `gorm:"column:question_order;type:jsonb" json:"question_order"`
	CurrentIndex    int            `gorm:"not null;default:0;column:current_index" json:"current_index"`
	CreatedAt       time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"not null;default:now()" json:"updated_at"`
}

func (Assessment) TableName() string {
	return "assessment"
}
