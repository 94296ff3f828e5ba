package repos

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/yungbote/edi-backend/internal/repos/testutil"
	"github.com/yungbote/edi-backend/internal/types"
)

func TestResponseRepoUpsertOverwrites(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()

	userRepo := NewUserRepo(db, testutil.Logger(t))
	stateRepo := NewStateRepo(db, testutil.Logger(t))
	questionRepo := NewQuestionRepo(db, testutil.Logger(t))
	assessmentRepo := NewAssessmentRepo(db, testutil.Logger(t))
	repo := NewResponseRepo(db, testutil.Logger(t))

	users, err := userRepo.Create(ctx, tx, []*types.User{{
		ID:        uuid.New(),
		Email:     "responserepo@example.com",
		Password:  "pw",
		FirstName: "A",
		LastName:  "B",
		Role:      types.RoleRespondent,
	}})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}

	states, err := stateRepo.Create(ctx, tx, []*types.HarmonicState{{
		ID:    uuid.New(),
		Name:  "Resonance-upsert-test",
		Color: "#4F9D69",
	}})
	if err != nil {
		t.Fatalf("create state: %v", err)
	}

	questions, err := questionRepo.Create(ctx, tx, []*types.Question{{
		ID:      uuid.New(),
		StateID: states[0].ID,
		Text:    "I feel settled at the end of the day.",
	}})
	if err != nil {
		t.Fatalf("create question: %v", err)
	}

	assessments, err := assessmentRepo.Create(ctx, tx, []*types.Assessment{{
		ID:     uuid.New(),
		UserID: users[0].ID,
	}})
	if err != nil {
		t.Fatalf("create assessment: %v", err)
	}

	first := &types.Response{
		ID:           uuid.New(),
		AssessmentID: assessments[0].ID,
		QuestionID:   questions[0].ID,
		Rating:       3,
	}
	if err := repo.Upsert(ctx, tx, first); err != nil {
		t.Fatalf("Upsert (insert): %v", err)
	}

	second := &types.Response{
		ID:           uuid.New(),
		AssessmentID: assessments[0].ID,
		QuestionID:   questions[0].ID,
		Rating:       6,
	}
	if err := repo.Upsert(ctx, tx, second); err != nil {
		t.Fatalf("Upsert (overwrite): %v", err)
	}

	got, err := repo.GetByAssessmentIDs(ctx, tx, []uuid.UUID{assessments[0].ID})
	if err != nil {
		t.Fatalf("GetByAssessmentIDs: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected exactly 1 response after re-answer, got %d", len(got))
	}
	if got[0].Rating != 6 {
		t.Fatalf("rating = %d, want overwritten value 6", got[0].Rating)
	}

	count, err := repo.CountByAssessmentID(ctx, tx, assessments[0].ID)
	if err != nil {
		t.Fatalf("CountByAssessmentID: %v", err)
	}
	if count != 1 {
		t.Fatalf("count = %d, want 1", count)
	}
}
