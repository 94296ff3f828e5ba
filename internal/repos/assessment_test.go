package repos

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/yungbote/edi-backend/internal/repos/testutil"
	"github.com/yungbote/edi-backend/internal/types"
)

func TestAssessmentRepoFinalizeExactlyOnce(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()

	userRepo := NewUserRepo(db, testutil.Logger(t))
	stateRepo := NewStateRepo(db, testutil.Logger(t))
	repo := NewAssessmentRepo(db, testutil.Logger(t))

	users, err := userRepo.Create(ctx, tx, []*types.User{{
		ID:        uuid.New(),
		Email:     "assessmentrepo@example.com",
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
		Name:  "Resonance-finalize-test",
		Color: "#4F9D69",
	}})
	if err != nil {
		t.Fatalf("create state: %v", err)
	}

	created, err := repo.Create(ctx, tx, []*types.Assessment{{
		ID:     uuid.New(),
		UserID: users[0].ID,
	}})
	if err != nil {
		t.Fatalf("create assessment: %v", err)
	}
	if created[0].Completed {
		t.Fatalf("new assessment must start incomplete")
	}

	if err := repo.UpdateCursor(ctx, tx, created[0].ID, 3); err != nil {
		t.Fatalf("UpdateCursor: %v", err)
	}

	scoreMap, _ := json.Marshal(map[string]int{states[0].ID.String(): 14})
	dominant := states[0].ID

	ok, err := repo.Finalize(ctx, tx, created[0].ID, &dominant, datatypes.JSON(scoreMap))
	if err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	if !ok {
		t.Fatalf("first Finalize should affect the row")
	}

	// Second finalization must be rejected by the completed=false guard.
	other := uuid.New()
	ok, err = repo.Finalize(ctx, tx, created[0].ID, &other, datatypes.JSON(`{}`))
	if err != nil {
		t.Fatalf("Finalize (second): %v", err)
	}
	if ok {
		t.Fatalf("second Finalize must not affect an already-completed row")
	}

	got, err := repo.GetByIDs(ctx, tx, []uuid.UUID{created[0].ID})
	if err != nil {
		t.Fatalf("GetByIDs: %v", err)
	}
	if len(got) != 1 || !got[0].Completed {
		t.Fatalf("assessment should be completed: %+v", got)
	}
	if got[0].DominantStateID == nil || *got[0].DominantStateID != dominant {
		t.Fatalf("dominant state must be untouched by the second attempt")
	}
	if got[0].CurrentIndex != 3 {
		t.Fatalf("cursor = %d, want 3", got[0].CurrentIndex)
	}
}
