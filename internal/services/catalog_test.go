package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/yungbote/edi-backend/internal/platform/logger"
	"github.com/yungbote/edi-backend/internal/types"
)

func newCatalogFixture(t *testing.T) (CatalogService, *fakeStateRepo, *fakeQuestionRepo) {
	t.Helper()

	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	stateRepo := &fakeStateRepo{refCounts: map[uuid.UUID]int64{}}
	questionRepo := &fakeQuestionRepo{}

	// nil cache: every read goes to the repo, writes have nothing to
	// invalidate.
	svc := NewCatalogService(nil, log, stateRepo, questionRepo, nil)
	return svc, stateRepo, questionRepo
}

func TestCreateStateRequiresName(t *testing.T) {
	svc, _, _ := newCatalogFixture(t)
	if _, err := svc.CreateState(context.Background(), &types.HarmonicState{Name: "   "}); err == nil {
		t.Fatalf("expected blank name to be rejected")
	}
}

func TestDeleteStateRefusedWhileReferenced(t *testing.T) {
	svc, stateRepo, _ := newCatalogFixture(t)

	state, err := svc.CreateState(context.Background(), &types.HarmonicState{Name: "Resonance", Color: "#4F9D69"})
	if err != nil {
		t.Fatalf("CreateState: %v", err)
	}
	stateRepo.refCounts[state.ID] = 3

	if err := svc.DeleteState(context.Background(), state.ID); !errors.Is(err, ErrStateInUse) {
		t.Fatalf("err = %v, want ErrStateInUse", err)
	}

	stateRepo.refCounts[state.ID] = 0
	if err := svc.DeleteState(context.Background(), state.ID); err != nil {
		t.Fatalf("DeleteState after references cleared: %v", err)
	}
	states, _ := svc.ListStates(context.Background())
	if len(states) != 0 {
		t.Fatalf("state should be gone, got %d", len(states))
	}
}

func TestCreateQuestionValidatesStateReference(t *testing.T) {
	svc, _, _ := newCatalogFixture(t)

	_, err := svc.CreateQuestion(context.Background(), &types.Question{
		Text:    "I feel settled at the end of the day.",
		StateID: uuid.New(),
	})
	if err == nil {
		t.Fatalf("expected unknown state reference to be rejected")
	}
}

func TestCreateQuestionHappyPath(t *testing.T) {
	svc, _, questionRepo := newCatalogFixture(t)

	state, err := svc.CreateState(context.Background(), &types.HarmonicState{Name: "Resonance", Color: "#4F9D69"})
	if err != nil {
		t.Fatalf("CreateState: %v", err)
	}

	q, err := svc.CreateQuestion(context.Background(), &types.Question{
		Text:    "I feel settled at the end of the day.",
		StateID: state.ID,
	})
	if err != nil {
		t.Fatalf("CreateQuestion: %v", err)
	}
	if q.ID == uuid.Nil {
		t.Fatalf("question id must be assigned")
	}
	if len(questionRepo.questions) != 1 {
		t.Fatalf("expected 1 stored question, got %d", len(questionRepo.questions))
	}
}
