package services

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	rediscache "github.com/yungbote/edi-backend/internal/clients/redis"
	"github.com/yungbote/edi-backend/internal/platform/apierr"
	"github.com/yungbote/edi-backend/internal/platform/logger"
	"github.com/yungbote/edi-backend/internal/repos"
	"github.com/yungbote/edi-backend/internal/types"
)

// CatalogService manages the harmonic-state and question catalogs the
// assessments are built from. Reads go through the Redis cache when one is
// configured; any write invalidates both keys.
type CatalogService interface {
	ListStates(ctx context.Context) ([]*types.HarmonicState, error)
	CreateState(ctx context.Context, state *types.HarmonicState) (*types.HarmonicState, error)
	UpdateState(ctx context.Context, stateID uuid.UUID, fields map[string]any) error
	DeleteState(ctx context.Context, stateID uuid.UUID) error

	ListQuestions(ctx context.Context) ([]*types.Question, error)
	CreateQuestion(ctx context.Context, question *types.Question) (*types.Question, error)
	UpdateQuestion(ctx context.Context, questionID uuid.UUID, fields map[string]any) error
	DeleteQuestion(ctx context.Context, questionID uuid.UUID) error
}

type catalogService struct {
	db           *gorm.DB
	log          *logger.Logger
	stateRepo    repos.StateRepo
	questionRepo repos.QuestionRepo
	cache        rediscache.CatalogCache
}

func NewCatalogService(
	db *gorm.DB,
	log *logger.Logger,
	stateRepo repos.StateRepo,
	questionRepo repos.QuestionRepo,
	cache rediscache.CatalogCache,
) CatalogService {
	serviceLog := log.With("service", "CatalogService")
	return &catalogService{
		db:           db,
		log:          serviceLog,
		stateRepo:    stateRepo,
		questionRepo: questionRepo,
		cache:        cache,
	}
}

func (cs *catalogService) ListStates(ctx context.Context) ([]*types.HarmonicState, error) {
	var cached []*types.HarmonicState
	if cs.cache != nil && cs.cache.GetStates(ctx, &cached) {
		return cached, nil
	}

	states, err := cs.stateRepo.GetAll(ctx, nil)
	if err != nil {
		return nil, persistErr("list states", err)
	}
	if cs.cache != nil {
		cs.cache.SetStates(ctx, states)
	}
	return states, nil
}

func (cs *catalogService) CreateState(ctx context.Context, state *types.HarmonicState) (*types.HarmonicState, error) {
	state.Name = strings.TrimSpace(state.Name)
	if state.Name == "" {
		return nil, apierr.New(http.StatusBadRequest, "invalid_state", fmt.Errorf("state name required"))
	}
	state.ID = uuid.New()

	if _, err := cs.stateRepo.Create(ctx, nil, []*types.HarmonicState{state}); err != nil {
		return nil, persistErr("create state", err)
	}
	cs.invalidate(ctx)
	cs.log.Info("Harmonic state created", "state_id", state.ID.String(), "name", state.Name)
	return state, nil
}

func (cs *catalogService) UpdateState(ctx context.Context, stateID uuid.UUID, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	if err := cs.stateRepo.Update(ctx, nil, stateID, fields); err != nil {
		return persistErr("update state", err)
	}
	cs.invalidate(ctx)
	return nil
}

// DeleteState refuses while questions or completed assessments still point at
// the state, so historic results never lose their label.
func (cs *catalogService) DeleteState(ctx context.Context, stateID uuid.UUID) error {
	refs, err := cs.stateRepo.ReferenceCount(ctx, nil, stateID)
	if err != nil {
		return persistErr("delete state", err)
	}
	if refs > 0 {
		return ErrStateInUse
	}
	if err := cs.stateRepo.Delete(ctx, nil, stateID); err != nil {
		return persistErr("delete state", err)
	}
	cs.invalidate(ctx)
	return nil
}

func (cs *catalogService) ListQuestions(ctx context.Context) ([]*types.Question, error) {
	var cached []*types.Question
	if cs.cache != nil && cs.cache.GetQuestions(ctx, &cached) {
		return cached, nil
	}

	questions, err := cs.questionRepo.GetAll(ctx, nil)
	if err != nil {
		return nil, persistErr("list questions", err)
	}
	if cs.cache != nil {
		cs.cache.SetQuestions(ctx, questions)
	}
	return questions, nil
}

func (cs *catalogService) CreateQuestion(ctx context.Context, question *types.Question) (*types.Question, error) {
	question.Text = strings.TrimSpace(question.Text)
	if question.Text == "" {
		return nil, apierr.New(http.StatusBadRequest, "invalid_question", fmt.Errorf("question text required"))
	}
	if question.StateID == uuid.Nil {
		return nil, apierr.New(http.StatusBadRequest, "invalid_question", fmt.Errorf("question must reference a harmonic state"))
	}

	states, err := cs.stateRepo.GetByIDs(ctx, nil, []uuid.UUID{question.StateID})
	if err != nil {
		return nil, persistErr("create question", err)
	}
	if len(states) == 0 {
		return nil, apierr.New(http.StatusBadRequest, "unknown_state", fmt.Errorf("unknown harmonic state %s", question.StateID))
	}

	question.ID = uuid.New()
	if _, err := cs.questionRepo.Create(ctx, nil, []*types.Question{question}); err != nil {
		return nil, persistErr("create question", err)
	}
	cs.invalidate(ctx)
	cs.log.Info("Question created", "question_id", question.ID.String(), "state_id", question.StateID.String())
	return question, nil
}

func (cs *catalogService) UpdateQuestion(ctx context.Context, questionID uuid.UUID, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	if err := cs.questionRepo.Update(ctx, nil, questionID, fields); err != nil {
		return persistErr("update question", err)
	}
	cs.invalidate(ctx)
	return nil
}

func (cs *catalogService) DeleteQuestion(ctx context.Context, questionID uuid.UUID) error {
	if err := cs.questionRepo.Delete(ctx, nil, questionID); err != nil {
		return persistErr("delete question", err)
	}
	cs.invalidate(ctx)
	return nil
}

func (cs *catalogService) invalidate(ctx context.Context) {
	if cs.cache != nil {
		cs.cache.Invalidate(ctx)
	}
}
