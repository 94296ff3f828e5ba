package types

import (
	"time"

	"github.com/google/uuid"
)

// Response holds one rating per (assessment, question); re-answering the
// same question upserts on the unique pair instead of duplicating.
type Response struct {
	ID           uuid.UUID   `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	AssessmentID uuid.UUID   `gorm:"type:uuid;not null;uniqueIndex:idx_response_assessment_question;index" json:"assessment_id"`
	Assessment   *Assessment `gorm:"constraint:OnDelete:CASCADE;foreignKey:AssessmentID;references:ID" json:"-"`
	QuestionID   uuid.UUID   `gorm:"type:uuid;not null;uniqueIndex:idx_response_assessment_question" json:"question_id"`
	Question     *Question   `gorm:"constraint:OnDelete:RESTRICT;foreignKey:QuestionID;references:ID" json:"question,omitempty"`
	Rating       int         `gorm:"not null;column:rating" json:"rating"`
	CreatedAt    time.Time   `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt    time.Time   `gorm:"not null;default:now()" json:"updated_at"`
}

func (Response) TableName() string {
	return "response"
}
