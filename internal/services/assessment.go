package services

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/edi-backend/internal/platform/logger"
	"github.com/yungbote/edi-backend/internal/repos"
	"github.com/yungbote/edi-backend/internal/scoring"
	"github.com/yungbote/edi-backend/internal/types"
)

// SessionView is what the wizard renders: the fixed randomized question
// order, the cursor, and prior answers keyed by question id for pre-fill.
type SessionView struct {
	AssessmentID  uuid.UUID         `json:"assessment_id"`
	Completed     bool              `json:"completed"`
	CurrentIndex  int               `json:"current_index"`
	QuestionCount int               `json:"question_count"`
	Questions     []*types.Question `json:"questions"`
	Answers       map[uuid.UUID]int `json:"answers"`
}

// StateResult is one state's slice of a completed assessment.
type StateResult struct {
	State      *types.HarmonicState `json:"state"`
	Score      int                  `json:"score"`
	Percentage float64              `json:"percentage"`
	Average    float64              `json:"average"`
	Dominant   bool                 `json:"dominant"`
}

type ResultsView struct {
	AssessmentID  uuid.UUID            `json:"assessment_id"`
	DominantState *types.HarmonicState `json:"dominant_state,omitempty"`
	States        []StateResult        `json:"states"`
	Total         int                  `json:"total"`
}

type AssessmentService interface {
	Start(ctx context.Context, userID uuid.UUID) (*SessionView, error)
	Load(ctx context.Context, userID, assessmentID uuid.UUID) (*SessionView, error)
	Answer(ctx context.Context, userID, assessmentID, questionID uuid.UUID, rating int) error
	Advance(ctx context.Context, userID, assessmentID uuid.UUID) (*SessionView, error)
	Retreat(ctx context.Context, userID, assessmentID uuid.UUID) (*SessionView, error)
	Results(ctx context.Context, userID, assessmentID uuid.UUID) (*ResultsView, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]*types.Assessment, error)
}

type assessmentService struct {
	db             *gorm.DB
	log            *logger.Logger
	userRepo       repos.UserRepo
	questionRepo   repos.QuestionRepo
	stateRepo      repos.StateRepo
	assessmentRepo repos.AssessmentRepo
	responseRepo   repos.ResponseRepo
}

func NewAssessmentService(
	db *gorm.DB,
	log *logger.Logger,
	userRepo repos.UserRepo,
	questionRepo repos.QuestionRepo,
	stateRepo repos.StateRepo,
	assessmentRepo repos.AssessmentRepo,
	responseRepo repos.ResponseRepo,
) AssessmentService {
	serviceLog := log.With("service", "AssessmentService")
	return &assessmentService{
		db:             db,
		log:            serviceLog,
		userRepo:       userRepo,
		questionRepo:   questionRepo,
		stateRepo:      stateRepo,
		assessmentRepo: assessmentRepo,
		responseRepo:   responseRepo,
	}
}

// Start requires an existing profile row, shuffles the catalog once, and
// pins the order on the assessment so reloads replay it verbatim.
func (s *assessmentService) Start(ctx context.Context, userID uuid.UUID) (*SessionView, error) {
	users, err := s.userRepo.GetByIDs(ctx, nil, []uuid.UUID{userID})
	if err != nil {
		return nil, persistErr("start", err)
	}
	if len(users) == 0 {
		return nil, ErrProfileNotFound
	}

	questions, err := s.questionRepo.GetAll(ctx, nil)
	if err != nil {
		return nil, persistErr("start", err)
	}
	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}

	order := make([]uuid.UUID, len(questions))
	for i, q := range questions {
		order[i] = q.ID
	}
	rand.Shuffle(len(order), func(i, j int) {
		order[i], order[j] = order[j], order[i]
	})

	orderJSON, err := json.Marshal(order)
	if err != nil {
		return nil, fmt.Errorf("marshal question order: %w", err)
	}

	assessment := &types.Assessment{
		ID:            uuid.New(),
		UserID:        userID,
		QuestionOrder: datatypes.JSON(orderJSON),
		CurrentIndex:  0,
	}
	if _, err := s.assessmentRepo.Create(ctx, nil, []*types.Assessment{assessment}); err != nil {
		return nil, persistErr("start", err)
	}

	s.log.Info("Assessment started", "assessment_id", assessment.ID.String(), "user_id", userID.String(), "questions", len(order))
	return s.buildView(ctx, assessment)
}

func (s *assessmentService) Load(ctx context.Context, userID, assessmentID uuid.UUID) (*SessionView, error) {
	assessment, err := s.getOwned(ctx, userID, assessmentID)
	if err != nil {
		return nil, err
	}
	return s.buildView(ctx, assessment)
}

// Answer upserts one durable rating before the wizard may advance. Rating
// range and session membership are checked here, not in the data layer.
func (s *assessmentService) Answer(ctx context.Context, userID, assessmentID, questionID uuid.UUID, rating int) error {
	if rating < 1 || rating > 7 {
		return ErrInvalidRating
	}

	assessment, err := s.getOwned(ctx, userID, assessmentID)
	if err != nil {
		return err
	}
	if assessment.Completed {
		return ErrAssessmentCompleted
	}

	order, err := decodeOrder(assessment.QuestionOrder)
	if err != nil {
		return err
	}
	inSession := false
	for _, id := range order {
		if id == questionID {
			inSession = true
			break
		}
	}
	if !inSession {
		return ErrQuestionNotInSession
	}

	response := &types.Response{
		ID:           uuid.New(),
		AssessmentID: assessmentID,
		QuestionID:   questionID,
		Rating:       rating,
	}
	if err := s.responseRepo.Upsert(ctx, nil, response); err != nil {
		return persistErr("answer", err)
	}
	return nil
}

// Advance moves the cursor forward, or, on the last question, runs the
// scoring engine exactly once and finalizes the assessment. The
// completed=false guard in the repo rejects a second finalization.
func (s *assessmentService) Advance(ctx context.Context, userID, assessmentID uuid.UUID) (*SessionView, error) {
	assessment, err := s.getOwned(ctx, userID, assessmentID)
	if err != nil {
		return nil, err
	}
	if assessment.Completed {
		return nil, ErrAssessmentCompleted
	}

	order, err := decodeOrder(assessment.QuestionOrder)
	if err != nil {
		return nil, err
	}
	if assessment.CurrentIndex < 0 || assessment.CurrentIndex >= len(order) {
		return nil, fmt.Errorf("cursor %d out of range for %d questions", assessment.CurrentIndex, len(order))
	}

	responses, err := s.responseRepo.GetByAssessmentIDs(ctx, nil, []uuid.UUID{assessmentID})
	if err != nil {
		return nil, persistErr("advance", err)
	}
	answered := make(map[uuid.UUID]bool, len(responses))
	for _, r := range responses {
		answered[r.QuestionID] = true
	}
	if !answered[order[assessment.CurrentIndex]] {
		return nil, ErrQuestionUnanswered
	}

	if assessment.CurrentIndex < len(order)-1 {
		assessment.CurrentIndex++
		if err := s.assessmentRepo.UpdateCursor(ctx, nil, assessmentID, assessment.CurrentIndex); err != nil {
			return nil, persistErr("advance", err)
		}
		return s.buildView(ctx, assessment)
	}

	if err := s.finalize(ctx, assessment, order, responses); err != nil {
		return nil, err
	}
	return s.buildView(ctx, assessment)
}

func (s *assessmentService) finalize(ctx context.Context, assessment *types.Assessment, order []uuid.UUID, responses []*types.Response) error {
	questions, err := s.questionRepo.GetByIDs(ctx, nil, order)
	if err != nil {
		return persistErr("finalize", err)
	}

	refs := make([]scoring.QuestionRef, 0, len(questions))
	for _, q := range questions {
		refs = append(refs, scoring.QuestionRef{ID: q.ID, StateID: q.StateID})
	}
	ratings := make([]scoring.Rating, 0, len(responses))
	for _, r := range responses {
		ratings = append(ratings, scoring.Rating{QuestionID: r.QuestionID, Rating: r.Rating})
	}

	result := scoring.Score(refs, ratings)

	scoreMap := make(map[string]int, len(result.Scores))
	for stateID, score := range result.Scores {
		scoreMap[stateID.String()] = score
	}
	scoreJSON, err := json.Marshal(scoreMap)
	if err != nil {
		return fmt.Errorf("marshal score map: %w", err)
	}

	ok, err := s.assessmentRepo.Finalize(ctx, nil, assessment.ID, result.Dominant, datatypes.JSON(scoreJSON))
	if err != nil {
		return persistErr("finalize", err)
	}
	if !ok {
		return ErrAssessmentCompleted
	}

	assessment.Completed = true
	assessment.DominantStateID = result.Dominant
	assessment.ScoreMap = datatypes.JSON(scoreJSON)

	s.log.Info("Assessment finalized",
		"assessment_id", assessment.ID.String(),
		"states_scored", len(result.Scores),
		"total", result.Total,
	)
	return nil
}

func (s *assessmentService) Retreat(ctx context.Context, userID, assessmentID uuid.UUID) (*SessionView, error) {
	assessment, err := s.getOwned(ctx, userID, assessmentID)
	if err != nil {
		return nil, err
	}
	if assessment.Completed {
		return nil, ErrAssessmentCompleted
	}

	if assessment.CurrentIndex > 0 {
		assessment.CurrentIndex--
		if err := s.assessmentRepo.UpdateCursor(ctx, nil, assessmentID, assessment.CurrentIndex); err != nil {
			return nil, persistErr("retreat", err)
		}
	}
	return s.buildView(ctx, assessment)
}

func (s *assessmentService) Results(ctx context.Context, userID, assessmentID uuid.UUID) (*ResultsView, error) {
	assessment, err := s.getOwned(ctx, userID, assessmentID)
	if err != nil {
		return nil, err
	}
	if !assessment.Completed {
		return nil, ErrAssessmentIncomplete
	}

	var scoreMap map[string]int
	if len(assessment.ScoreMap) > 0 {
		if err := json.Unmarshal(assessment.ScoreMap, &scoreMap); err != nil {
			return nil, fmt.Errorf("unmarshal score map: %w", err)
		}
	}

	order, err := decodeOrder(assessment.QuestionOrder)
	if err != nil {
		return nil, err
	}
	questions, err := s.questionRepo.GetByIDs(ctx, nil, order)
	if err != nil {
		return nil, persistErr("results", err)
	}
	responses, err := s.responseRepo.GetByAssessmentIDs(ctx, nil, []uuid.UUID{assessmentID})
	if err != nil {
		return nil, persistErr("results", err)
	}

	refs := make([]scoring.QuestionRef, 0, len(questions))
	for _, q := range questions {
		refs = append(refs, scoring.QuestionRef{ID: q.ID, StateID: q.StateID})
	}
	ratings := make([]scoring.Rating, 0, len(responses))
	for _, r := range responses {
		ratings = append(ratings, scoring.Rating{QuestionID: r.QuestionID, Rating: r.Rating})
	}
	result := scoring.Score(refs, ratings)
	percentages := scoring.Percentages(result)
	averages := scoring.Averages(refs, ratings)

	stateIDs := make([]uuid.UUID, 0, len(result.Scores))
	for stateID := range result.Scores {
		stateIDs = append(stateIDs, stateID)
	}
	states, err := s.stateRepo.GetByIDs(ctx, nil, stateIDs)
	if err != nil {
		return nil, persistErr("results", err)
	}
	stateByID := make(map[uuid.UUID]*types.HarmonicState, len(states))
	for _, st := range states {
		stateByID[st.ID] = st
	}

	view := &ResultsView{
		AssessmentID: assessmentID,
		Total:        result.Total,
	}
	if assessment.DominantStateID != nil {
		view.DominantState = stateByID[*assessment.DominantStateID]
	}
	for _, st := range states {
		view.States = append(view.States, StateResult{
			State:      st,
			Score:      result.Scores[st.ID],
			Percentage: percentages[st.ID],
			Average:    averages[st.ID],
			Dominant:   assessment.DominantStateID != nil && *assessment.DominantStateID == st.ID,
		})
	}
	return view, nil
}

func (s *assessmentService) ListForUser(ctx context.Context, userID uuid.UUID) ([]*types.Assessment, error) {
	assessments, err := s.assessmentRepo.GetByUserIDs(ctx, nil, []uuid.UUID{userID})
	if err != nil {
		return nil, persistErr("list", err)
	}
	return assessments, nil
}

func (s *assessmentService) getOwned(ctx context.Context, userID, assessmentID uuid.UUID) (*types.Assessment, error) {
	assessments, err := s.assessmentRepo.GetByIDs(ctx, nil, []uuid.UUID{assessmentID})
	if err != nil {
		return nil, persistErr("load", err)
	}
	if len(assessments) == 0 {
		return nil, ErrAssessmentNotFound
	}
	assessment := assessments[0]
	if assessment.UserID != userID {
		return nil, ErrNotOwner
	}
	return assessment, nil
}

func (s *assessmentService) buildView(ctx context.Context, assessment *types.Assessment) (*SessionView, error) {
	order, err := decodeOrder(assessment.QuestionOrder)
	if err != nil {
		return nil, err
	}

	questions, err := s.questionRepo.GetByIDs(ctx, nil, order)
	if err != nil {
		return nil, persistErr("load", err)
	}
	questionByID := make(map[uuid.UUID]*types.Question, len(questions))
	for _, q := range questions {
		questionByID[q.ID] = q
	}
	ordered := make([]*types.Question, 0, len(order))
	for _, id := range order {
		if q, ok := questionByID[id]; ok {
			ordered = append(ordered, q)
		}
	}

	responses, err := s.responseRepo.GetByAssessmentIDs(ctx, nil, []uuid.UUID{assessment.ID})
	if err != nil {
		return nil, persistErr("load", err)
	}
	answers := make(map[uuid.UUID]int, len(responses))
	for _, r := range responses {
		answers[r.QuestionID] = r.Rating
	}

	return &SessionView{
		AssessmentID:  assessment.ID,
		Completed:     assessment.Completed,
		CurrentIndex:  assessment.CurrentIndex,
		QuestionCount: len(ordered),
		Questions:     ordered,
		Answers:       answers,
	}, nil
}

func decodeOrder(raw datatypes.JSON) ([]uuid.UUID, error) {
	var order []uuid.UUID
	if len(raw) == 0 {
		return order, nil
	}
	if err := json.Unmarshal(raw, &order); err != nil {
		return nil, fmt.Errorf("unmarshal question order: %w", err)
	}
	return order, nil
}
