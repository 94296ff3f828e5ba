package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/edi-backend/internal/platform/logger"
	"github.com/yungbote/edi-backend/internal/types"
)

// In-memory repo fakes. Responses keep insertion order, Finalize honors the
// completed=false guard, same as the Postgres implementations.

type fakeUserRepo struct {
	users map[uuid.UUID]*types.User
}

func (f *fakeUserRepo) Create(ctx context.Context, tx *gorm.DB, users []*types.User) ([]*types.User, error) {
	for _, u := range users {
		f.users[u.ID] = u
	}
	return users, nil
}

func (f *fakeUserRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.User, error) {
	var out []*types.User
	for _, id := range ids {
		if u, ok := f.users[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeUserRepo) GetByEmails(ctx context.Context, tx *gorm.DB, emails []string) ([]*types.User, error) {
	var out []*types.User
	for _, u := range f.users {
		for _, e := range emails {
			if u.Email == e {
				out = append(out, u)
			}
		}
	}
	return out, nil
}

func (f *fakeUserRepo) EmailExists(ctx context.Context, tx *gorm.DB, email string) (bool, error) {
	for _, u := range f.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserRepo) UpdateRole(ctx context.Context, tx *gorm.DB, id uuid.UUID, role types.Role) error {
	if u, ok := f.users[id]; ok {
		u.Role = role
	}
	return nil
}

func (f *fakeUserRepo) CountByRole(ctx context.Context, tx *gorm.DB, role types.Role) (int64, error) {
	var n int64
	for _, u := range f.users {
		if u.Role == role {
			n++
		}
	}
	return n, nil
}

type fakeQuestionRepo struct {
	questions []*types.Question
}

func (f *fakeQuestionRepo) Create(ctx context.Context, tx *gorm.DB, qs []*types.Question) ([]*types.Question, error) {
	f.questions = append(f.questions, qs...)
	return qs, nil
}

func (f *fakeQuestionRepo) GetAll(ctx context.Context, tx *gorm.DB) ([]*types.Question, error) {
	return f.questions, nil
}

func (f *fakeQuestionRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Question, error) {
	var out []*types.Question
	for _, q := range f.questions {
		for _, id := range ids {
			if q.ID == id {
				out = append(out, q)
			}
		}
	}
	return out, nil
}

func (f *fakeQuestionRepo) Update(ctx context.Context, tx *gorm.DB, id uuid.UUID, fields map[string]any) error {
	return nil
}

func (f *fakeQuestionRepo) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	return nil
}

type fakeStateRepo struct {
	states    []*types.HarmonicState
	refCounts map[uuid.UUID]int64
}

func (f *fakeStateRepo) Create(ctx context.Context, tx *gorm.DB, ss []*types.HarmonicState) ([]*types.HarmonicState, error) {
	f.states = append(f.states, ss...)
	return ss, nil
}

func (f *fakeStateRepo) GetAll(ctx context.Context, tx *gorm.DB) ([]*types.HarmonicState, error) {
	return f.states, nil
}

func (f *fakeStateRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.HarmonicState, error) {
	var out []*types.HarmonicState
	for _, s := range f.states {
		for _, id := range ids {
			if s.ID == id {
				out = append(out, s)
			}
		}
	}
	return out, nil
}

func (f *fakeStateRepo) Update(ctx context.Context, tx *gorm.DB, id uuid.UUID, fields map[string]any) error {
	return nil
}

func (f *fakeStateRepo) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	kept := f.states[:0]
	for _, s := range f.states {
		if s.ID != id {
			kept = append(kept, s)
		}
	}
	f.states = kept
	return nil
}

func (f *fakeStateRepo) ReferenceCount(ctx context.Context, tx *gorm.DB, id uuid.UUID) (int64, error) {
	return f.refCounts[id], nil
}

type fakeAssessmentRepo struct {
	assessments map[uuid.UUID]*types.Assessment
}

func (f *fakeAssessmentRepo) Create(ctx context.Context, tx *gorm.DB, as []*types.Assessment) ([]*types.Assessment, error) {
	for _, a := range as {
		copied := *a
		f.assessments[a.ID] = &copied
	}
	return as, nil
}

func (f *fakeAssessmentRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Assessment, error) {
	var out []*types.Assessment
	for _, id := range ids {
		if a, ok := f.assessments[id]; ok {
			copied := *a
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeAssessmentRepo) GetByUserIDs(ctx context.Context, tx *gorm.DB, userIDs []uuid.UUID) ([]*types.Assessment, error) {
	var out []*types.Assessment
	for _, a := range f.assessments {
		for _, uid := range userIDs {
			if a.UserID == uid {
				copied := *a
				out = append(out, &copied)
			}
		}
	}
	return out, nil
}

func (f *fakeAssessmentRepo) UpdateCursor(ctx context.Context, tx *gorm.DB, id uuid.UUID, idx int) error {
	if a, ok := f.assessments[id]; ok && !a.Completed {
		a.CurrentIndex = idx
	}
	return nil
}

func (f *fakeAssessmentRepo) Finalize(ctx context.Context, tx *gorm.DB, id uuid.UUID, dominant *uuid.UUID, scoreMap datatypes.JSON) (bool, error) {
	a, ok := f.assessments[id]
	if !ok || a.Completed {
		return false, nil
	}
	a.Completed = true
	a.DominantStateID = dominant
	a.ScoreMap = scoreMap
	return true, nil
}

func (f *fakeAssessmentRepo) CountByDominantState(ctx context.Context, tx *gorm.DB) (map[uuid.UUID]int64, error) {
	out := map[uuid.UUID]int64{}
	for _, a := range f.assessments {
		if a.Completed && a.DominantStateID != nil {
			out[*a.DominantStateID]++
		}
	}
	return out, nil
}

type fakeResponseRepo struct {
	responses []*types.Response
}

func (f *fakeResponseRepo) Upsert(ctx context.Context, tx *gorm.DB, r *types.Response) error {
	for _, existing := range f.responses {
		if existing.AssessmentID == r.AssessmentID && existing.QuestionID == r.QuestionID {
			existing.Rating = r.Rating
			return nil
		}
	}
	copied := *r
	f.responses = append(f.responses, &copied)
	return nil
}

func (f *fakeResponseRepo) GetByAssessmentIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Response, error) {
	var out []*types.Response
	for _, r := range f.responses {
		for _, id := range ids {
			if r.AssessmentID == id {
				out = append(out, r)
			}
		}
	}
	return out, nil
}

func (f *fakeResponseRepo) CountByAssessmentID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (int64, error) {
	var n int64
	for _, r := range f.responses {
		if r.AssessmentID == id {
			n++
		}
	}
	return n, nil
}

type sessionFixture struct {
	svc       AssessmentService
	userID    uuid.UUID
	calm      *types.HarmonicState
	intense   *types.HarmonicState
	questions []*types.Question
}

func newSessionFixture(t *testing.T, questionsPerState int) *sessionFixture {
	t.Helper()

	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}

	userRepo := &fakeUserRepo{users: map[uuid.UUID]*types.User{}}
	questionRepo := &fakeQuestionRepo{}
	stateRepo := &fakeStateRepo{}
	assessmentRepo := &fakeAssessmentRepo{assessments: map[uuid.UUID]*types.Assessment{}}
	responseRepo := &fakeResponseRepo{}

	userID := uuid.New()
	userRepo.users[userID] = &types.User{ID: userID, Email: "wizard@example.com", Role: types.RoleRespondent}

	calm := &types.HarmonicState{ID: uuid.New(), Name: "Resonance", Color: "#4F9D69"}
	intense := &types.HarmonicState{ID: uuid.New(), Name: "Turbulence", Color: "#C0392B"}
	stateRepo.states = []*types.HarmonicState{calm, intense}

	var questions []*types.Question
	for i := 0; i < questionsPerState; i++ {
		questions = append(questions,
			&types.Question{ID: uuid.New(), StateID: calm.ID, Text: "calm question"},
			&types.Question{ID: uuid.New(), StateID: intense.ID, Text: "intense question"},
		)
	}
	questionRepo.questions = questions

	svc := NewAssessmentService(nil, log, userRepo, questionRepo, stateRepo, assessmentRepo, responseRepo)
	return &sessionFixture{
		svc:       svc,
		userID:    userID,
		calm:      calm,
		intense:   intense,
		questions: questions,
	}
}

func TestStartRequiresProfile(t *testing.T) {
	f := newSessionFixture(t, 2)
	_, err := f.svc.Start(context.Background(), uuid.New())
	if !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("err = %v, want ErrProfileNotFound", err)
	}
}

func TestStartPersistsShuffledOrder(t *testing.T) {
	f := newSessionFixture(t, 3)
	view, err := f.svc.Start(context.Background(), f.userID)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if view.CurrentIndex != 0 {
		t.Fatalf("CurrentIndex = %d, want 0", view.CurrentIndex)
	}
	if view.QuestionCount != len(f.questions) {
		t.Fatalf("QuestionCount = %d, want %d", view.QuestionCount, len(f.questions))
	}

	// The order is fixed at start; reloading must replay it verbatim.
	reloaded, err := f.svc.Load(context.Background(), f.userID, view.AssessmentID)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	for i, q := range view.Questions {
		if reloaded.Questions[i].ID != q.ID {
			t.Fatalf("question order changed on reload at index %d", i)
		}
	}
}

func TestAnswerValidatesRatingRange(t *testing.T) {
	f := newSessionFixture(t, 1)
	view, err := f.svc.Start(context.Background(), f.userID)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	qID := view.Questions[0].ID

	for _, bad := range []int{0, -1, 8, 100} {
		if err := f.svc.Answer(context.Background(), f.userID, view.AssessmentID, qID, bad); !errors.Is(err, ErrInvalidRating) {
			t.Fatalf("rating %d: err = %v, want ErrInvalidRating", bad, err)
		}
	}
	for _, good := range []int{1, 7} {
		if err := f.svc.Answer(context.Background(), f.userID, view.AssessmentID, qID, good); err != nil {
			t.Fatalf("rating %d: unexpected err %v", good, err)
		}
	}
}

func TestAnswerRejectsForeignQuestion(t *testing.T) {
	f := newSessionFixture(t, 1)
	view, err := f.svc.Start(context.Background(), f.userID)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	err = f.svc.Answer(context.Background(), f.userID, view.AssessmentID, uuid.New(), 4)
	if !errors.Is(err, ErrQuestionNotInSession) {
		t.Fatalf("err = %v, want ErrQuestionNotInSession", err)
	}
}

func TestAdvanceRequiresAnswer(t *testing.T) {
	f := newSessionFixture(t, 2)
	view, err := f.svc.Start(context.Background(), f.userID)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if _, err := f.svc.Advance(context.Background(), f.userID, view.AssessmentID); !errors.Is(err, ErrQuestionUnanswered) {
		t.Fatalf("err = %v, want ErrQuestionUnanswered", err)
	}
}

func TestRetreatStopsAtFirstQuestion(t *testing.T) {
	f := newSessionFixture(t, 2)
	view, err := f.svc.Start(context.Background(), f.userID)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	view, err = f.svc.Retreat(context.Background(), f.userID, view.AssessmentID)
	if err != nil {
		t.Fatalf("Retreat: %v", err)
	}
	if view.CurrentIndex != 0 {
		t.Fatalf("CurrentIndex = %d, want 0 (retreat at start is a no-op)", view.CurrentIndex)
	}
}

func TestOwnershipEnforced(t *testing.T) {
	f := newSessionFixture(t, 1)
	view, err := f.svc.Start(context.Background(), f.userID)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	stranger := uuid.New()
	if _, err := f.svc.Load(context.Background(), stranger, view.AssessmentID); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("err = %v, want ErrNotOwner", err)
	}
}

func TestFullSessionFinalizesOnce(t *testing.T) {
	f := newSessionFixture(t, 2)
	ctx := context.Background()

	view, err := f.svc.Start(ctx, f.userID)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}

	// Answer every question 7 for calm, 3 for intense, advancing through
	// the whole wizard.
	for i := 0; i < view.QuestionCount; i++ {
		current := view.Questions[view.CurrentIndex]
		rating := 3
		if current.StateID == f.calm.ID {
			rating = 7
		}
		if err := f.svc.Answer(ctx, f.userID, view.AssessmentID, current.ID, rating); err != nil {
			t.Fatalf("Answer %d: %v", i, err)
		}
		view, err = f.svc.Advance(ctx, f.userID, view.AssessmentID)
		if err != nil {
			t.Fatalf("Advance %d: %v", i, err)
		}
	}

	if !view.Completed {
		t.Fatalf("session should be completed after the last advance")
	}

	// Any mutation after completion is rejected.
	if _, err := f.svc.Advance(ctx, f.userID, view.AssessmentID); !errors.Is(err, ErrAssessmentCompleted) {
		t.Fatalf("Advance after completion: err = %v, want ErrAssessmentCompleted", err)
	}
	if err := f.svc.Answer(ctx, f.userID, view.AssessmentID, view.Questions[0].ID, 5); !errors.Is(err, ErrAssessmentCompleted) {
		t.Fatalf("Answer after completion: err = %v, want ErrAssessmentCompleted", err)
	}

	results, err := f.svc.Results(ctx, f.userID, view.AssessmentID)
	if err != nil {
		t.Fatalf("Results: %v", err)
	}
	if results.DominantState == nil || results.DominantState.ID != f.calm.ID {
		t.Fatalf("dominant = %+v, want calm state", results.DominantState)
	}
	if results.Total != 2*7+2*3 {
		t.Fatalf("total = %d, want %d", results.Total, 2*7+2*3)
	}
	for _, sr := range results.States {
		switch sr.State.ID {
		case f.calm.ID:
			if sr.Score != 14 || !sr.Dominant {
				t.Fatalf("calm result = %+v", sr)
			}
			if sr.Average != 7 {
				t.Fatalf("calm average = %v, want 7", sr.Average)
			}
		case f.intense.ID:
			if sr.Score != 6 || sr.Dominant {
				t.Fatalf("intense result = %+v", sr)
			}
		default:
			t.Fatalf("unexpected state in results: %v", sr.State.ID)
		}
	}
}

func TestResultsRequireCompletion(t *testing.T) {
	f := newSessionFixture(t, 1)
	view, err := f.svc.Start(context.Background(), f.userID)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if _, err := f.svc.Results(context.Background(), f.userID, view.AssessmentID); !errors.Is(err, ErrAssessmentIncomplete) {
		t.Fatalf("err = %v, want ErrAssessmentIncomplete", err)
	}
}

func TestReAnswerOverwritesBeforeFinalize(t *testing.T) {
	f := newSessionFixture(t, 1)
	ctx := context.Background()

	view, err := f.svc.Start(ctx, f.userID)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}

	first := view.Questions[0]
	if err := f.svc.Answer(ctx, f.userID, view.AssessmentID, first.ID, 2); err != nil {
		t.Fatalf("Answer: %v", err)
	}
	if err := f.svc.Answer(ctx, f.userID, view.AssessmentID, first.ID, 6); err != nil {
		t.Fatalf("re-Answer: %v", err)
	}

	reloaded, err := f.svc.Load(ctx, f.userID, view.AssessmentID)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := reloaded.Answers[first.ID]; got != 6 {
		t.Fatalf("answer = %d, want overwritten value 6", got)
	}
}
