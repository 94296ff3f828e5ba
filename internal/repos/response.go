package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yungbote/edi-backend/internal/platform/logger"
	"github.com/yungbote/edi-backend/internal/types"
)

type ResponseRepo interface {
	// Upsert writes the rating keyed by (assessment_id, question_id);
	// answering the same question again overwrites, never duplicates.
	Upsert(ctx context.Context, tx *gorm.DB, response *types.Response) error
	// GetByAssessmentIDs returns responses in insertion order
	// (created_at, id) — the scan order the scoring engine depends on.
	GetByAssessmentIDs(ctx context.Context, tx *gorm.DB, assessmentIDs []uuid.UUID) ([]*types.Response, error)
	CountByAssessmentID(ctx context.Context, tx *gorm.DB, assessmentID uuid.UUID) (int64, error)
}

type responseRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewResponseRepo(db *gorm.DB, baseLog *logger.Logger) ResponseRepo {
	repoLog := baseLog.With("repo", "ResponseRepo")
	return &responseRepo{db: db, log: repoLog}
}

func (rr *responseRepo) Upsert(ctx context.Context, tx *gorm.DB, response *types.Response) error {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	return transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "assessment_id"}, {Name: "question_id"}},
			DoUpdates: clause.Assignments(map[string]any{"rating": response.Rating, "updated_at": gorm.Expr("now()")}),
		}).
		Create(response).Error
}

func (rr *responseRepo) GetByAssessmentIDs(ctx context.Context, tx *gorm.DB, assessmentIDs []uuid.UUID) ([]*types.Response, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	var results []*types.Response
	if len(assessmentIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("assessment_id IN ?", assessmentIDs).
		Order("created_at ASC, id ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (rr *responseRepo) CountByAssessmentID(ctx context.Context, tx *gorm.DB, assessmentID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Response{}).
		Where("assessment_id = ?", assessmentID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
