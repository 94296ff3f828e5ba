package types

import (
	"time"

	"github.com/google/uuid"
)

type InvitationStatus string

const (
	InvitationPending  InvitationStatus = "pending"
	InvitationSent     InvitationStatus = "sent"
	InvitationAccepted InvitationStatus = "accepted"
	InvitationExpired  InvitationStatus = "expired"
)

type Invitation struct {
	ID        uuid.UUID        `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	InviterID uuid.UUID        `gorm:"type:uuid;not null;index" json:"inviter_id"`
	Inviter   *User            `gorm:"constraint:OnDelete:CASCADE;foreignKey:InviterID;references:ID" json:"-"`
	InviteeID *uuid.UUID       `gorm:"type:uuid;index" json:"invitee_id,omitempty"`
	Invitee   *User            `gorm:"constraint:OnDelete:SET NULL;foreignKey:InviteeID;references:ID" json:"-"`
	Email     string           `gorm:"not null;column:email" json:"email"`
	Role      Role             `gorm:"not null;default:'respondent';column:role" json:"role"`
	Token     string           `gorm:"uniqueIndex;not null;column:token" json:"-"`
	Status    InvitationStatus `gorm:"not null;default:'pending';column:status" json:"status"`
	ExpiresAt time.Time        `gorm:"column:expires_at" json:"expires_at"`
	CreatedAt time.Time        `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time        `gorm:"not null;default:now()" json:"updated_at"`
}

func (Invitation) TableName() string {
	return "invitation"
}
