package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bmlt-tools/snapshot-server/internal/domain"
	"github.com/bmlt-tools/snapshot-server/internal/platform/logger"
)

// NawsCodeRepo covers the three root-server-scoped code mapping tables.
// The ingestion core only reads; the create operations serve the admin
// surface and tests.
type NawsCodeRepo interface {
	CreateServiceBodyCode(ctx context.Context, tx *gorm.DB, row *domain.ServiceBodyNawsCode) (*domain.ServiceBodyNawsCode, error)
	CreateFormatCode(ctx context.Context, tx *gorm.DB, row *domain.FormatNawsCode) (*domain.FormatNawsCode, error)
	CreateMeetingCode(ctx context.Context, tx *gorm.DB, row *domain.MeetingNawsCode) (*domain.MeetingNawsCode, error)

	GetServiceBodyCodeByServer(ctx context.Context, tx *gorm.DB, rootServerID uuid.UUID, bmltID int64) (*domain.ServiceBodyNawsCode, error)
	GetFormatCodeByServer(ctx context.Context, tx *gorm.DB, rootServerID uuid.UUID, bmltID int64) (*domain.FormatNawsCode, error)
	GetMeetingCodeByServer(ctx context.Context, tx *gorm.DB, rootServerID uuid.UUID, bmltID int64) (*domain.MeetingNawsCode, error)
	GetMeetingCodesByServer(ctx context.Context, tx *gorm.DB, rootServerID uuid.UUID) ([]*domain.MeetingNawsCode, error)
}

type nawsCodeRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewNawsCodeRepo(db *gorm.DB, baseLog *logger.Logger) NawsCodeRepo {
	return &nawsCodeRepo{db: db, log: baseLog.With("repo", "NawsCodeRepo")}
}

func (r *nawsCodeRepo) CreateServiceBodyCode(ctx context.Context, tx *gorm.DB, row *domain.ServiceBodyNawsCode) (*domain.ServiceBodyNawsCode, error) {
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

func (r *nawsCodeRepo) CreateFormatCode(ctx context.Context, tx *gorm.DB, row *domain.FormatNawsCode) (*domain.FormatNawsCode, error) {
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

func (r *nawsCodeRepo) CreateMeetingCode(ctx context.Context, tx *gorm.DB, row *domain.MeetingNawsCode) (*domain.MeetingNawsCode, error) {
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

func (r *nawsCodeRepo) GetServiceBodyCodeByServer(ctx context.Context, tx *gorm.DB, rootServerID uuid.UUID, bmltID int64) (*domain.ServiceBodyNawsCode, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if rootServerID == uuid.Nil {
		return nil, nil
	}
	var out domain.ServiceBodyNawsCode
	if err := t.WithContext(ctx).
		Where("root_server_id = ? AND bmlt_id = ?", rootServerID, bmltID).
		First(&out).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &out, nil
}

func (r *nawsCodeRepo) GetFormatCodeByServer(ctx context.Context, tx *gorm.DB, rootServerID uuid.UUID, bmltID int64) (*domain.FormatNawsCode, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if rootServerID == uuid.Nil {
		return nil, nil
	}
	var out domain.FormatNawsCode
	if err := t.WithContext(ctx).
		Where("root_server_id = ? AND bmlt_id = ?", rootServerID, bmltID).
		First(&out).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &out, nil
}

func (r *nawsCodeRepo) GetMeetingCodeByServer(ctx context.Context, tx *gorm.DB, rootServerID uuid.UUID, bmltID int64) (*domain.MeetingNawsCode, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if rootServerID == uuid.Nil {
		return nil, nil
	}
	var out domain.MeetingNawsCode
	if err := t.WithContext(ctx).
		Where("root_server_id = ? AND bmlt_id = ?", rootServerID, bmltID).
		First(&out).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &out, nil
}

func (r *nawsCodeRepo) GetMeetingCodesByServer(ctx context.Context, tx *gorm.DB, rootServerID uuid.UUID) ([]*domain.MeetingNawsCode, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*domain.MeetingNawsCode
	if rootServerID == uuid.Nil {
		return out, nil
	}
	if err := t.WithContext(ctx).
		Where("root_server_id = ?", rootServerID).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
