package services

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/edi-backend/internal/platform/logger"
	"github.com/yungbote/edi-backend/internal/repos"
	"github.com/yungbote/edi-backend/internal/types"
)

// RespondentDashboard is the signed-in user's own history.
type RespondentDashboard struct {
	Assessments []*types.Assessment `json:"assessments"`
	Completed   int                 `json:"completed"`
	InProgress  int                 `json:"in_progress"`
}

// CoachRespondent pairs an accepted invitee with their completed work.
type CoachRespondent struct {
	User        *types.User         `json:"user"`
	Assessments []*types.Assessment `json:"assessments"`
}

type CoachDashboard struct {
	Invitations []*types.Invitation `json:"invitations"`
	Respondents []CoachRespondent   `json:"respondents"`
}

// PartnerDashboard is anonymous by construction: dominant-state counts
// only, no user rows.
type PartnerDashboard struct {
	DominantStateCounts []StateCount `json:"dominant_state_counts"`
}

type StateCount struct {
	State *types.HarmonicState `json:"state"`
	Count int64                `json:"count"`
}

type AdminDashboard struct {
	UsersByRole   map[types.Role]int64 `json:"users_by_role"`
	StateCount    int                  `json:"state_count"`
	QuestionCount int                  `json:"question_count"`
}

type DashboardService interface {
	Respondent(ctx context.Context, userID uuid.UUID) (*RespondentDashboard, error)
	Coach(ctx context.Context, coachID uuid.UUID) (*CoachDashboard, error)
	Partner(ctx context.Context) (*PartnerDashboard, error)
	Admin(ctx context.Context) (*AdminDashboard, error)
}

type dashboardService struct {
	db             *gorm.DB
	log            *logger.Logger
	userRepo       repos.UserRepo
	stateRepo      repos.StateRepo
	questionRepo   repos.QuestionRepo
	assessmentRepo repos.AssessmentRepo
	invitationRepo repos.InvitationRepo
}

func NewDashboardService(
	db *gorm.DB,
	log *logger.Logger,
	userRepo repos.UserRepo,
	stateRepo repos.StateRepo,
	questionRepo repos.QuestionRepo,
	assessmentRepo repos.AssessmentRepo,
	invitationRepo repos.InvitationRepo,
) DashboardService {
	serviceLog := log.With("service", "DashboardService")
	return &dashboardService{
		db:             db,
		log:            serviceLog,
		userRepo:       userRepo,
		stateRepo:      stateRepo,
		questionRepo:   questionRepo,
		assessmentRepo: assessmentRepo,
		invitationRepo: invitationRepo,
	}
}

func (ds *dashboardService) Respondent(ctx context.Context, userID uuid.UUID) (*RespondentDashboard, error) {
	assessments, err := ds.assessmentRepo.GetByUserIDs(ctx, nil, []uuid.UUID{userID})
	if err != nil {
		return nil, persistErr("respondent dashboard", err)
	}

	out := &RespondentDashboard{Assessments: assessments}
	for _, a := range assessments {
		if a.Completed {
			out.Completed++
		} else {
			out.InProgress++
		}
	}
	return out, nil
}

func (ds *dashboardService) Coach(ctx context.Context, coachID uuid.UUID) (*CoachDashboard, error) {
	invitations, err := ds.invitationRepo.GetByInviterIDs(ctx, nil, []uuid.UUID{coachID})
	if err != nil {
		return nil, persistErr("coach dashboard", err)
	}

	var inviteeIDs []uuid.UUID
	for _, inv := range invitations {
		if inv.Status == types.InvitationAccepted && inv.InviteeID != nil {
			inviteeIDs = append(inviteeIDs, *inv.InviteeID)
		}
	}

	out := &CoachDashboard{Invitations: invitations}
	if len(inviteeIDs) == 0 {
		return out, nil
	}

	users, err := ds.userRepo.GetByIDs(ctx, nil, inviteeIDs)
	if err != nil {
		return nil, persistErr("coach dashboard", err)
	}
	assessments, err := ds.assessmentRepo.GetByUserIDs(ctx, nil, inviteeIDs)
	if err != nil {
		return nil, persistErr("coach dashboard", err)
	}

	byUser := make(map[uuid.UUID][]*types.Assessment, len(users))
	for _, a := range assessments {
		if a.Completed {
			byUser[a.UserID] = append(byUser[a.UserID], a)
		}
	}
	for _, u := range users {
		out.Respondents = append(out.Respondents, CoachRespondent{
			User:        u,
			Assessments: byUser[u.ID],
		})
	}
	return out, nil
}

func (ds *dashboardService) Partner(ctx context.Context) (*PartnerDashboard, error) {
	counts, err := ds.assessmentRepo.CountByDominantState(ctx, nil)
	if err != nil {
		return nil, persistErr("partner dashboard", err)
	}

	stateIDs := make([]uuid.UUID, 0, len(counts))
	for id := range counts {
		stateIDs = append(stateIDs, id)
	}
	states, err := ds.stateRepo.GetByIDs(ctx, nil, stateIDs)
	if err != nil {
		return nil, persistErr("partner dashboard", err)
	}

	out := &PartnerDashboard{}
	for _, st := range states {
		out.DominantStateCounts = append(out.DominantStateCounts, StateCount{
			State: st,
			Count: counts[st.ID],
		})
	}
	return out, nil
}

func (ds *dashboardService) Admin(ctx context.Context) (*AdminDashboard, error) {
	out := &AdminDashboard{UsersByRole: map[types.Role]int64{}}

	for _, role := range []types.Role{types.RoleRespondent, types.RoleCoach, types.RolePartner, types.RoleAdmin} {
		n, err := ds.userRepo.CountByRole(ctx, nil, role)
		if err != nil {
			return nil, persistErr("admin dashboard", err)
		}
		out.UsersByRole[role] = n
	}

	states, err := ds.stateRepo.GetAll(ctx, nil)
	if err != nil {
		return nil, persistErr("admin dashboard", err)
	}
	questions, err := ds.questionRepo.GetAll(ctx, nil)
	if err != nil {
		return nil, persistErr("admin dashboard", err)
	}
	out.StateCount = len(states)
	out.QuestionCount = len(questions)
	return out, nil
}
