package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bmlt-tools/snapshot-server/internal/domain"
	"github.com/bmlt-tools/snapshot-server/internal/platform/logger"
)

type MeetingFormatRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*domain.MeetingFormat) ([]*domain.MeetingFormat, error)
	GetByMeetingIDs(ctx context.Context, tx *gorm.DB, meetingIDs []uuid.UUID) ([]*domain.MeetingFormat, error)
}

type meetingFormatRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMeetingFormatRepo(db *gorm.DB, baseLog *logger.Logger) MeetingFormatRepo {
	return &meetingFormatRepo{db: db, log: baseLog.With("repo", "MeetingFormatRepo")}
}

func (r *meetingFormatRepo) Create(ctx context.Context, tx *gorm.DB, rows []*domain.MeetingFormat) ([]*domain.MeetingFormat, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return []*domain.MeetingFormat{}, nil
	}
	if err := t.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *meetingFormatRepo) GetByMeetingIDs(ctx context.Context, tx *gorm.DB, meetingIDs []uuid.UUID) ([]*domain.MeetingFormat, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*domain.MeetingFormat
	if len(meetingIDs) == 0 {
		return out, nil
	}
	if err := t.WithContext(ctx).
		Where("meeting_id IN ?", meetingIDs).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
