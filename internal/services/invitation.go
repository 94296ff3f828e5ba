package services

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/edi-backend/internal/platform/apierr"
	"github.com/yungbote/edi-backend/internal/platform/envutil"
	"github.com/yungbote/edi-backend/internal/platform/logger"
	"github.com/yungbote/edi-backend/internal/platform/sendgrid"
	"github.com/yungbote/edi-backend/internal/repos"
	"github.com/yungbote/edi-backend/internal/types"
)

type InvitationService interface {
	Invite(ctx context.Context, inviterID uuid.UUID, email string, role types.Role) (*types.Invitation, error)
	Accept(ctx context.Context, inviteeID uuid.UUID, token string) (*types.Invitation, error)
	ListByInviter(ctx context.Context, inviterID uuid.UUID) ([]*types.Invitation, error)
}

type invitationService struct {
	db             *gorm.DB
	log            *logger.Logger
	invitationRepo repos.InvitationRepo
	userRepo       repos.UserRepo
	mail           sendgrid.Client
	appBaseURL     string
	ttl            time.Duration
}

func NewInvitationService(
	db *gorm.DB,
	log *logger.Logger,
	invitationRepo repos.InvitationRepo,
	userRepo repos.UserRepo,
	mail sendgrid.Client,
) InvitationService {
	serviceLog := log.With("service", "InvitationService")
	return &invitationService{
		db:             db,
		log:            serviceLog,
		invitationRepo: invitationRepo,
		userRepo:       userRepo,
		mail:           mail,
		appBaseURL:     strings.TrimRight(envutil.Str("APP_BASE_URL", "http://localhost:5173"), "/"),
		ttl:            time.Duration(envutil.Int("INVITATION_TTL_HOURS", 168)) * time.Hour,
	}
}

// Invite creates the row first and only then attempts delivery. A failed
// send leaves the row pending so the inviter can retry; the token stays
// valid either way.
func (is *invitationService) Invite(ctx context.Context, inviterID uuid.UUID, email string, role types.Role) (*types.Invitation, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, apierr.New(http.StatusBadRequest, "invalid_email", fmt.Errorf("invalid email"))
	}
	if role == "" {
		role = types.RoleRespondent
	}
	if !role.IsValid() || role == types.RoleAdmin {
		return nil, apierr.New(http.StatusBadRequest, "invalid_role", fmt.Errorf("invalid role %q for invitation", role))
	}

	inviters, err := is.userRepo.GetByIDs(ctx, nil, []uuid.UUID{inviterID})
	if err != nil {
		return nil, persistErr("invite", err)
	}
	if len(inviters) == 0 {
		return nil, ErrProfileNotFound
	}
	inviter := inviters[0]

	invitation := &types.Invitation{
		ID:        uuid.New(),
		InviterID: inviterID,
		Email:     email,
		Role:      role,
		Token:     uuid.New().String(),
		Status:    types.InvitationPending,
		ExpiresAt: time.Now().Add(is.ttl),
	}
	if _, err := is.invitationRepo.Create(ctx, nil, []*types.Invitation{invitation}); err != nil {
		return nil, persistErr("invite", err)
	}

	if is.mail == nil {
		is.log.Warn("No mail client configured, invitation left pending", "invitation_id", invitation.ID.String())
		return invitation, nil
	}

	link := fmt.Sprintf("%s/invitations/%s", is.appBaseURL, invitation.Token)
	_, sendErr := is.mail.Send(ctx, sendgrid.SendEmailRequest{
		To:      []sendgrid.EmailAddress{{Email: email}},
		Subject: fmt.Sprintf("%s %s invited you to take the Emotional Dynamics Indicator", inviter.FirstName, inviter.LastName),
		Text: fmt.Sprintf(
			"You have been invited to take an Emotional Dynamics Indicator assessment as a %s.\n\nOpen this link to get started: %s\n\nThe invitation expires on %s.",
			role, link, invitation.ExpiresAt.Format("January 2, 2006"),
		),
	})
	if sendErr != nil {
		is.log.Error("Invitation email failed", "invitation_id", invitation.ID.String(), "error", sendErr.Error())
		return invitation, fmt.Errorf("invitation created but email delivery failed: %w", sendErr)
	}

	if err := is.invitationRepo.SetStatus(ctx, nil, invitation.ID, types.InvitationSent); err != nil {
		return invitation, persistErr("invite", err)
	}
	invitation.Status = types.InvitationSent

	is.log.Info("Invitation sent", "invitation_id", invitation.ID.String(), "invitee", email, "role", string(role))
	return invitation, nil
}

// Accept marks the invitation used and applies its role to the accepting
// user, both inside one transaction.
func (is *invitationService) Accept(ctx context.Context, inviteeID uuid.UUID, token string) (*types.Invitation, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrInvitationNotFound
	}

	invitations, err := is.invitationRepo.GetByTokens(ctx, nil, []string{token})
	if err != nil {
		return nil, persistErr("accept invitation", err)
	}
	if len(invitations) == 0 {
		return nil, ErrInvitationNotFound
	}
	invitation := invitations[0]

	switch invitation.Status {
	case types.InvitationAccepted:
		return nil, ErrInvitationUsed
	case types.InvitationExpired:
		return nil, ErrInvitationExpired
	}
	if time.Now().After(invitation.ExpiresAt) {
		if err := is.invitationRepo.SetStatus(ctx, nil, invitation.ID, types.InvitationExpired); err != nil {
			return nil, persistErr("accept invitation", err)
		}
		return nil, ErrInvitationExpired
	}

	if err := is.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if aErr := is.invitationRepo.Accept(ctx, tx, invitation.ID, inviteeID); aErr != nil {
			return persistErr("accept invitation", aErr)
		}
		if rErr := is.userRepo.UpdateRole(ctx, tx, inviteeID, invitation.Role); rErr != nil {
			return persistErr("accept invitation", rErr)
		}
		return nil
	}); err != nil {
		return nil, err
	}

	invitation.Status = types.InvitationAccepted
	invitation.InviteeID = &inviteeID

	is.log.Info("Invitation accepted", "invitation_id", invitation.ID.String(), "role", string(invitation.Role))
	return invitation, nil
}

func (is *invitationService) ListByInviter(ctx context.Context, inviterID uuid.UUID) ([]*types.Invitation, error) {
	invitations, err := is.invitationRepo.GetByInviterIDs(ctx, nil, []uuid.UUID{inviterID})
	if err != nil {
		return nil, persistErr("list invitations", err)
	}
	return invitations, nil
}
