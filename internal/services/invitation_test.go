package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/edi-backend/internal/platform/logger"
	"github.com/yungbote/edi-backend/internal/platform/sendgrid"
	"github.com/yungbote/edi-backend/internal/types"
)

type fakeInvitationRepo struct {
	invitations map[uuid.UUID]*types.Invitation
}

func (f *fakeInvitationRepo) Create(ctx context.Context, tx *gorm.DB, invs []*types.Invitation) ([]*types.Invitation, error) {
	for _, inv := range invs {
		copied := *inv
		f.invitations[inv.ID] = &copied
	}
	return invs, nil
}

func (f *fakeInvitationRepo) GetByTokens(ctx context.Context, tx *gorm.DB, tokens []string) ([]*types.Invitation, error) {
	var out []*types.Invitation
	for _, inv := range f.invitations {
		for _, tok := range tokens {
			if inv.Token == tok {
				copied := *inv
				out = append(out, &copied)
			}
		}
	}
	return out, nil
}

func (f *fakeInvitationRepo) GetByInviterIDs(ctx context.Context, tx *gorm.DB, inviterIDs []uuid.UUID) ([]*types.Invitation, error) {
	var out []*types.Invitation
	for _, inv := range f.invitations {
		for _, id := range inviterIDs {
			if inv.InviterID == id {
				copied := *inv
				out = append(out, &copied)
			}
		}
	}
	return out, nil
}

func (f *fakeInvitationRepo) SetStatus(ctx context.Context, tx *gorm.DB, id uuid.UUID, status types.InvitationStatus) error {
	if inv, ok := f.invitations[id]; ok {
		inv.Status = status
	}
	return nil
}

func (f *fakeInvitationRepo) Accept(ctx context.Context, tx *gorm.DB, id, inviteeID uuid.UUID) error {
	inv, ok := f.invitations[id]
	if !ok {
		return nil
	}
	if inv.Status == types.InvitationPending || inv.Status == types.InvitationSent {
		inv.Status = types.InvitationAccepted
		inv.InviteeID = &inviteeID
	}
	return nil
}

type fakeMail struct {
	sent    []sendgrid.SendEmailRequest
	sendErr error
}

func (f *fakeMail) Send(ctx context.Context, req sendgrid.SendEmailRequest) (*sendgrid.SendEmailResult, error) {
	if f.sendErr != nil {
		return nil, f.sendErr
	}
	f.sent = append(f.sent, req)
	return &sendgrid.SendEmailResult{StatusCode: 202}, nil
}

type invitationFixture struct {
	svc      InvitationService
	repo     *fakeInvitationRepo
	mail     *fakeMail
	coachID  uuid.UUID
	userRepo *fakeUserRepo
}

func newInvitationFixture(t *testing.T) *invitationFixture {
	t.Helper()

	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}

	userRepo := &fakeUserRepo{users: map[uuid.UUID]*types.User{}}
	coachID := uuid.New()
	userRepo.users[coachID] = &types.User{
		ID:        coachID,
		Email:     "coach@example.com",
		FirstName: "Coach",
		LastName:  "Person",
		Role:      types.RoleCoach,
	}

	repo := &fakeInvitationRepo{invitations: map[uuid.UUID]*types.Invitation{}}
	mail := &fakeMail{}

	svc := NewInvitationService(nil, log, repo, userRepo, mail)
	return &invitationFixture{svc: svc, repo: repo, mail: mail, coachID: coachID, userRepo: userRepo}
}

func TestInviteSendsAndMarksSent(t *testing.T) {
	f := newInvitationFixture(t)

	inv, err := f.svc.Invite(context.Background(), f.coachID, "Someone@Example.com", types.RoleRespondent)
	if err != nil {
		t.Fatalf("Invite: %v", err)
	}
	if inv.Email != "someone@example.com" {
		t.Fatalf("email = %q, want lowercased", inv.Email)
	}
	if inv.Status != types.InvitationSent {
		t.Fatalf("status = %q, want sent", inv.Status)
	}
	if inv.Token == "" {
		t.Fatalf("token must be set")
	}
	if len(f.mail.sent) != 1 {
		t.Fatalf("expected 1 email, got %d", len(f.mail.sent))
	}
}

func TestInviteSendFailureLeavesRowPending(t *testing.T) {
	f := newInvitationFixture(t)
	f.mail.sendErr = fmt.Errorf("sendgrid http 503: unavailable")

	inv, err := f.svc.Invite(context.Background(), f.coachID, "someone@example.com", types.RoleRespondent)
	if err == nil {
		t.Fatalf("expected delivery error to surface")
	}
	if inv == nil {
		t.Fatalf("invitation row must still be returned for retry")
	}
	stored := f.repo.invitations[inv.ID]
	if stored == nil || stored.Status != types.InvitationPending {
		t.Fatalf("stored status = %+v, want pending", stored)
	}
}

func TestInviteRejectsAdminRole(t *testing.T) {
	f := newInvitationFixture(t)
	if _, err := f.svc.Invite(context.Background(), f.coachID, "someone@example.com", types.RoleAdmin); err == nil {
		t.Fatalf("expected admin invitations to be rejected")
	}
}

func TestAcceptRejectsExpiredToken(t *testing.T) {
	f := newInvitationFixture(t)

	inv := &types.Invitation{
		ID:        uuid.New(),
		InviterID: f.coachID,
		Email:     "late@example.com",
		Role:      types.RoleRespondent,
		Token:     uuid.New().String(),
		Status:    types.InvitationSent,
		ExpiresAt: time.Now().Add(-time.Hour),
	}
	f.repo.invitations[inv.ID] = inv

	_, err := f.svc.Accept(context.Background(), uuid.New(), inv.Token)
	if !errors.Is(err, ErrInvitationExpired) {
		t.Fatalf("err = %v, want ErrInvitationExpired", err)
	}
	if f.repo.invitations[inv.ID].Status != types.InvitationExpired {
		t.Fatalf("expired invitation should be marked expired")
	}
}

func TestAcceptRejectsUsedToken(t *testing.T) {
	f := newInvitationFixture(t)

	inv := &types.Invitation{
		ID:        uuid.New(),
		InviterID: f.coachID,
		Email:     "used@example.com",
		Role:      types.RoleRespondent,
		Token:     uuid.New().String(),
		Status:    types.InvitationAccepted,
		ExpiresAt: time.Now().Add(time.Hour),
	}
	f.repo.invitations[inv.ID] = inv

	if _, err := f.svc.Accept(context.Background(), uuid.New(), inv.Token); !errors.Is(err, ErrInvitationUsed) {
		t.Fatalf("err = %v, want ErrInvitationUsed", err)
	}
}

func TestAcceptUnknownToken(t *testing.T) {
	f := newInvitationFixture(t)
	if _, err := f.svc.Accept(context.Background(), uuid.New(), "nope"); !errors.Is(err, ErrInvitationNotFound) {
		t.Fatalf("err = %v, want ErrInvitationNotFound", err)
	}
}
