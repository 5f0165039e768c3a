package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bmlt-tools/snapshot-server/internal/domain"
	"github.com/bmlt-tools/snapshot-server/internal/platform/logger"
)

type FormatRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*domain.Format) ([]*domain.Format, error)
	GetBySnapshot(ctx context.Context, tx *gorm.DB, snapshotID uuid.UUID) ([]*domain.Format, error)
	GetBySnapshotAndBmltIDs(ctx context.Context, tx *gorm.DB, snapshotID uuid.UUID, bmltIDs []int64) ([]*domain.Format, error)
}

type formatRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewFormatRepo(db *gorm.DB, baseLog *logger.Logger) FormatRepo {
	return &formatRepo{db: db, log: baseLog.With("repo", "FormatRepo")}
}

func (r *formatRepo) Create(ctx context.Context, tx *gorm.DB, rows []*domain.Format) ([]*domain.Format, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return []*domain.Format{}, nil
	}
	for _, row := range rows {
		if row.ID == uuid.Nil {
			row.ID = uuid.New()
		}
	}
	if err := t.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *formatRepo) GetBySnapshot(ctx context.Context, tx *gorm.DB, snapshotID uuid.UUID) ([]*domain.Format, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*domain.Format
	if snapshotID == uuid.Nil {
		return out, nil
	}
	if err := t.WithContext(ctx).
		Where("snapshot_id = ?", snapshotID).
		Order("bmlt_id ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *formatRepo) GetBySnapshotAndBmltIDs(ctx context.Context, tx *gorm.DB, snapshotID uuid.UUID, bmltIDs []int64) ([]*domain.Format, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*domain.Format
	if snapshotID == uuid.Nil || len(bmltIDs) == 0 {
		return out, nil
	}
	if err := t.WithContext(ctx).
		Where("snapshot_id = ? AND bmlt_id IN ?", snapshotID, bmltIDs).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
