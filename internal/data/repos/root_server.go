package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bmlt-tools/snapshot-server/internal/domain"
	"github.com/bmlt-tools/snapshot-server/internal/platform/logger"
)

type RootServerRepo interface {
	Create(ctx context.Context, tx *gorm.DB, row *domain.RootServer) (*domain.RootServer, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*domain.RootServer, error)
	List(ctx context.Context, tx *gorm.DB) ([]*domain.RootServer, error)
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) (bool, error)
}

type rootServerRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRootServerRepo(db *gorm.DB, baseLog *logger.Logger) RootServerRepo {
	return &rootServerRepo{db: db, log: baseLog.With("repo", "RootServerRepo")}
}

func (r *rootServerRepo) Create(ctx context.Context, tx *gorm.DB, row *domain.RootServer) (*domain.RootServer, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if row == nil {
		return nil, nil
	}
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	if err := t.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (r *rootServerRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*domain.RootServer, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if id == uuid.Nil {
		return nil, nil
	}
	var out domain.RootServer
	if err := t.WithContext(ctx).Where("id = ?", id).First(&out).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &out, nil
}

func (r *rootServerRepo) List(ctx context.Context, tx *gorm.DB) ([]*domain.RootServer, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*domain.RootServer
	if err := t.WithContext(ctx).Order("created_at ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes a root server and everything below it. Migrations run
// with foreign key constraint creation disabled, so the cascade over
// snapshots and their scoped entities happens here.
func (r *rootServerRepo) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) (bool, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if id == uuid.Nil {
		return false, nil
	}

	snapshotIDs := t.Model(&domain.Snapshot{}).Select("id").Where("root_server_id = ?", id)
	meetingIDs := t.Model(&domain.Meeting{}).Select("id").Where("snapshot_id IN (?)", snapshotIDs)

	q := t.WithContext(ctx)
	if err := q.Where("meeting_id IN (?)", meetingIDs).Delete(&domain.MeetingFormat{}).Error; err != nil {
		return false, err
	}
	if err := q.Where("snapshot_id IN (?)", snapshotIDs).Delete(&domain.Meeting{}).Error; err != nil {
		return false, err
	}
	if err := q.Where("snapshot_id IN (?)", snapshotIDs).Delete(&domain.Format{}).Error; err != nil {
		return false, err
	}
	if err := q.Where("snapshot_id IN (?)", snapshotIDs).Delete(&domain.ServiceBody{}).Error; err != nil {
		return false, err
	}
	if err := q.Where("root_server_id = ?", id).Delete(&domain.Snapshot{}).Error; err != nil {
		return false, err
	}
	if err := q.Where("root_server_id = ?", id).Delete(&domain.ServiceBodyNawsCode{}).Error; err != nil {
		return false, err
	}
	if err := q.Where("root_server_id = ?", id).Delete(&domain.FormatNawsCode{}).Error; err != nil {
		return false, err
	}
	if err := q.Where("root_server_id = ?", id).Delete(&domain.MeetingNawsCode{}).Error; err != nil {
		return false, err
	}

	res := q.Where("id = ?", id).Delete(&domain.RootServer{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected != 0, nil
}
