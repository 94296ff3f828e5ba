package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/edi-backend/internal/platform/logger"
	"github.com/yungbote/edi-backend/internal/types"
)

type StateRepo interface {
	Create(ctx context.Context, tx *gorm.DB, states []*types.HarmonicState) ([]*types.HarmonicState, error)
	GetAll(ctx context.Context, tx *gorm.DB) ([]*types.HarmonicState, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, stateIDs []uuid.UUID) ([]*types.HarmonicState, error)
	Update(ctx context.Context, tx *gorm.DB, stateID uuid.UUID, fields map[string]any) error
	Delete(ctx context.Context, tx *gorm.DB, stateID uuid.UUID) error
	ReferenceCount(ctx context.Context, tx *gorm.DB, stateID uuid.UUID) (int64, error)
}

type stateRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewStateRepo(db *gorm.DB, baseLog *logger.Logger) StateRepo {
	repoLog := baseLog.With("repo", "StateRepo")
	return &stateRepo{db: db, log: repoLog}
}

func (sr *stateRepo) Create(ctx context.Context, tx *gorm.DB, states []*types.HarmonicState) ([]*types.HarmonicState, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	if len(states) == 0 {
		return []*types.HarmonicState{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&states).Error; err != nil {
		return nil, err
	}
	return states, nil
}

func (sr *stateRepo) GetAll(ctx context.Context, tx *gorm.DB) ([]*types.HarmonicState, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	var results []*types.HarmonicState
	if err := transaction.WithContext(ctx).
		Order("name ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (sr *stateRepo) GetByIDs(ctx context.Context, tx *gorm.DB, stateIDs []uuid.UUID) ([]*types.HarmonicState, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	var results []*types.HarmonicState
	if len(stateIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", stateIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (sr *stateRepo) Update(ctx context.Context, tx *gorm.DB, stateID uuid.UUID, fields map[string]any) error {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	return transaction.WithContext(ctx).
		Model(&types.HarmonicState{}).
		Where("id = ?", stateID).
		Updates(fields).Error
}

func (sr *stateRepo) Delete(ctx context.Context, tx *gorm.DB, stateID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	return transaction.WithContext(ctx).
		Where("id = ?", stateID).
		Delete(&types.HarmonicState{}).Error
}

// ReferenceCount counts questions and completed assessments still pointing
// at the state; deletion is refused while it is non-zero.
func (sr *stateRepo) ReferenceCount(ctx context.Context, tx *gorm.DB, stateID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	var questionCount int64
	if err := transaction.WithContext(ctx).
		Model(&types.Question{}).
		Where("state_id = ?", stateID).
		Count(&questionCount).Error; err != nil {
		return 0, err
	}

	var assessmentCount int64
	if err := transaction.WithContext(ctx).
		Model(&types.Assessment{}).
		Where("dominant_state_id = ?", stateID).
		Count(&assessmentCount).Error; err != nil {
		return 0, err
	}

	return questionCount + assessmentCount, nil
}
