package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/edi-backend/internal/platform/logger"
	"github.com/yungbote/edi-backend/internal/types"
)

type AssessmentRepo interface {
	Create(ctx context.Context, tx *gorm.DB, assessments []*types.Assessment) ([]*types.Assessment, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, assessmentIDs []uuid.UUID) ([]*types.Assessment, error)
	GetByUserIDs(ctx context.Context, tx *gorm.DB, userIDs []uuid.UUID) ([]*types.Assessment, error)
	UpdateCursor(ctx context.Context, tx *gorm.DB, assessmentID uuid.UUID, currentIndex int) error
	// Finalize writes completed/dominant/score_map in one statement guarded
	// on completed=false. Returns false when the row was already completed.
	Finalize(ctx context.Context, tx *gorm.DB, assessmentID uuid.UUID, dominantStateID *uuid.UUID, scoreMap datatypes.JSON) (bool, error)
	CountByDominantState(ctx context.Context, tx *gorm.DB) (map[uuid.UUID]int64, error)
}

type assessmentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAssessmentRepo(db *gorm.DB, baseLog *logger.Logger) AssessmentRepo {
	repoLog := baseLog.With("repo", "AssessmentRepo")
	return &assessmentRepo{db: db, log: repoLog}
}

func (ar *assessmentRepo) Create(ctx context.Context, tx *gorm.DB, assessments []*types.Assessment) ([]*types.Assessment, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	if len(assessments) == 0 {
		return []*types.Assessment{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&assessments).Error; err != nil {
		return nil, err
	}
	return assessments, nil
}

func (ar *assessmentRepo) GetByIDs(ctx context.Context, tx *gorm.DB, assessmentIDs []uuid.UUID) ([]*types.Assessment, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	var results []*types.Assessment
	if len(assessmentIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", assessmentIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (ar *assessmentRepo) GetByUserIDs(ctx context.Context, tx *gorm.DB, userIDs []uuid.UUID) ([]*types.Assessment, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	var results []*types.Assessment
	if len(userIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("user_id IN ?", userIDs).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (ar *assessmentRepo) UpdateCursor(ctx context.Context, tx *gorm.DB, assessmentID uuid.UUID, currentIndex int) error {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	return transaction.WithContext(ctx).
		Model(&types.Assessment{}).
		Where("id = ? AND completed = ?", assessmentID, false).
		Update("current_index", currentIndex).Error
}

func (ar *assessmentRepo) Finalize(ctx context.Context, tx *gorm.DB, assessmentID uuid.UUID, dominantStateID *uuid.UUID, scoreMap datatypes.JSON) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	res := transaction.WithContext(ctx).
		Model(&types.Assessment{}).
		Where("id = ? AND completed = ?", assessmentID, false).
		Updates(map[string]any{
			"completed":         true,
			"dominant_state_id": dominantStateID,
			"score_map":         scoreMap,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (ar *assessmentRepo) CountByDominantState(ctx context.Context, tx *gorm.DB) (map[uuid.UUID]int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	type row struct {
		DominantStateID uuid.UUID
		Total           int64
	}
	var rows []row
	if err := transaction.WithContext(ctx).
		Model(&types.Assessment{}).
		Select("dominant_state_id, COUNT(*) AS total").
		Where("completed = ? AND dominant_state_id IS NOT NULL", true).
		Group("dominant_state_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	out := make(map[uuid.UUID]int64, len(rows))
	for _, r := range rows {
		out[r.DominantStateID] = r.Total
	}
	return out, nil
}
