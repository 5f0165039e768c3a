package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bmlt-tools/snapshot-server/internal/domain"
	"github.com/bmlt-tools/snapshot-server/internal/platform/logger"
)

type ServiceBodyRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*domain.ServiceBody) ([]*domain.ServiceBody, error)
	GetBySnapshot(ctx context.Context, tx *gorm.DB, snapshotID uuid.UUID) ([]*domain.ServiceBody, error)
	GetBySnapshotAndBmltID(ctx context.Context, tx *gorm.DB, snapshotID uuid.UUID, bmltID int64) (*domain.ServiceBody, error)
	UpdateParent(ctx context.Context, tx *gorm.DB, snapshotID uuid.UUID, bmltID int64, parentID uuid.UUID) error
}

type serviceBodyRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewServiceBodyRepo(db *gorm.DB, baseLog *logger.Logger) ServiceBodyRepo {
	return &serviceBodyRepo{db: db, log: baseLog.With("repo", "ServiceBodyRepo")}
}

func (r *serviceBodyRepo) Create(ctx context.Context, tx *gorm.DB, rows []*domain.ServiceBody) ([]*domain.ServiceBody, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return []*domain.ServiceBody{}, nil
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

func (r *serviceBodyRepo) GetBySnapshot(ctx context.Context, tx *gorm.DB, snapshotID uuid.UUID) ([]*domain.ServiceBody, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*domain.ServiceBody
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

func (r *serviceBodyRepo) GetBySnapshotAndBmltID(ctx context.Context, tx *gorm.DB, snapshotID uuid.UUID, bmltID int64) (*domain.ServiceBody, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if snapshotID == uuid.Nil {
		return nil, nil
	}
	var out domain.ServiceBody
	if err := t.WithContext(ctx).
		Where("snapshot_id = ? AND bmlt_id = ?", snapshotID, bmltID).
		First(&out).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &out, nil
}

func (r *serviceBodyRepo) UpdateParent(ctx context.Context, tx *gorm.DB, snapshotID uuid.UUID, bmltID int64, parentID uuid.UUID) error {
	t := tx
	if t == nil {
		t = r.db
	}
	if snapshotID == uuid.Nil || parentID == uuid.Nil {
		return nil
	}
	return t.WithContext(ctx).
		Model(&domain.ServiceBody{}).
		Where("snapshot_id = ? AND bmlt_id = ?", snapshotID, bmltID).
		Update("parent_id", parentID).Error
}
