package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bmlt-tools/snapshot-server/internal/domain"
	"github.com/bmlt-tools/snapshot-server/internal/platform/logger"
)

type SnapshotRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rootServerID uuid.UUID) (*domain.Snapshot, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*domain.Snapshot, error)
	ListByRootServer(ctx context.Context, tx *gorm.DB, rootServerID uuid.UUID) ([]*domain.Snapshot, error)
}

type snapshotRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSnapshotRepo(db *gorm.DB, baseLog *logger.Logger) SnapshotRepo {
	return &snapshotRepo{db: db, log: baseLog.With("repo", "SnapshotRepo")}
}

func (r *snapshotRepo) Create(ctx context.Context, tx *gorm.DB, rootServerID uuid.UUID) (*domain.Snapshot, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	row := &domain.Snapshot{ID: uuid.New(), RootServerID: rootServerID}
	if err := t.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (r *snapshotRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*domain.Snapshot, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if id == uuid.Nil {
		return nil, nil
	}
	var out domain.Snapshot
	if err := t.WithContext(ctx).Where("id = ?", id).First(&out).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &out, nil
}

func (r *snapshotRepo) ListByRootServer(ctx context.Context, tx *gorm.DB, rootServerID uuid.UUID) ([]*domain.Snapshot, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*domain.Snapshot
	if rootServerID == uuid.Nil {
		return out, nil
	}
	if err := t.WithContext(ctx).
		Where("root_server_id = ?", rootServerID).
		Order("created_at ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
