package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bmlt-tools/snapshot-server/internal/domain"
	"github.com/bmlt-tools/snapshot-server/internal/platform/logger"
)

type MeetingRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*domain.Meeting) ([]*domain.Meeting, error)
	GetBySnapshot(ctx context.Context, tx *gorm.DB, snapshotID uuid.UUID) ([]*domain.Meeting, error)
	CountBySnapshot(ctx context.Context, tx *gorm.DB, snapshotID uuid.UUID) (int64, error)
}

type meetingRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMeetingRepo(db *gorm.DB, baseLog *logger.Logger) MeetingRepo {
	return &meetingRepo{db: db, log: baseLog.With("repo", "MeetingRepo")}
}

func (r *meetingRepo) Create(ctx context.Context, tx *gorm.DB, rows []*domain.Meeting) ([]*domain.Meeting, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return []*domain.Meeting{}, nil
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

func (r *meetingRepo) GetBySnapshot(ctx context.Context, tx *gorm.DB, snapshotID uuid.UUID) ([]*domain.Meeting, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*domain.Meeting
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

func (r *meetingRepo) CountBySnapshot(ctx context.Context, tx *gorm.DB, snapshotID uuid.UUID) (int64, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if snapshotID == uuid.Nil {
		return 0, nil
	}
	var n int64
	if err := t.WithContext(ctx).
		Model(&domain.Meeting{}).
		Where("snapshot_id = ?", snapshotID).
		Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}
