package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/edi-backend/internal/platform/logger"
	"github.com/yungbote/edi-backend/internal/types"
)

type InvitationRepo interface {
	Create(ctx context.Context, tx *gorm.DB, invitations []*types.Invitation) ([]*types.Invitation, error)
	GetByTokens(ctx context.Context, tx *gorm.DB, tokens []string) ([]*types.Invitation, error)
	GetByInviterIDs(ctx context.Context, tx *gorm.DB, inviterIDs []uuid.UUID) ([]*types.Invitation, error)
	SetStatus(ctx context.Context, tx *gorm.DB, invitationID uuid.UUID, status types.InvitationStatus) error
	Accept(ctx context.Context, tx *gorm.DB, invitationID, inviteeID uuid.UUID) error
}

type invitationRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewInvitationRepo(db *gorm.DB, baseLog *logger.Logger) InvitationRepo {
	repoLog := baseLog.With("repo", "InvitationRepo")
	return &invitationRepo{db: db, log: repoLog}
}

func (ir *invitationRepo) Create(ctx context.Context, tx *gorm.DB, invitations []*types.Invitation) ([]*types.Invitation, error) {
	transaction := tx
	if transaction == nil {
		transaction = ir.db
	}

	if len(invitations) == 0 {
		return []*types.Invitation{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&invitations).Error; err != nil {
		return nil, err
	}
	return invitations, nil
}

func (ir *invitationRepo) GetByTokens(ctx context.Context, tx *gorm.DB, tokens []string) ([]*types.Invitation, error) {
	transaction := tx
	if transaction == nil {
		transaction = ir.db
	}

	var results []*types.Invitation
	if len(tokens) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("token IN ?", tokens).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (ir *invitationRepo) GetByInviterIDs(ctx context.Context, tx *gorm.DB, inviterIDs []uuid.UUID) ([]*types.Invitation, error) {
	transaction := tx
	if transaction == nil {
		transaction = ir.db
	}

	var results []*types.Invitation
	if len(inviterIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("inviter_id IN ?", inviterIDs).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (ir *invitationRepo) SetStatus(ctx context.Context, tx *gorm.DB, invitationID uuid.UUID, status types.InvitationStatus) error {
	transaction := tx
	if transaction == nil {
		transaction = ir.db
	}
	return transaction.WithContext(ctx).
		Model(&types.Invitation{}).
		Where("id = ?", invitationID).
		Update("status", status).Error
}

func (ir *invitationRepo) Accept(ctx context.Context, tx *gorm.DB, invitationID, inviteeID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = ir.db
	}
	return transaction.WithContext(ctx).
		Model(&types.Invitation{}).
		Where("id = ? AND status IN ?", invitationID, []types.InvitationStatus{types.InvitationPending, types.InvitationSent}).
		Updates(map[string]any{
			"status":     types.InvitationAccepted,
			"invitee_id": inviteeID,
		}).Error
}
