package domain

import (
	"time"

	"github.com/google/uuid"
)

// Format is a taxonomy tag attachable to meetings, scoped to one snapshot.
type Format struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	SnapshotID uuid.UUID       `gorm:"type:uuid;column:snapshot_id;not null;index:idx_format_snapshot_bmlt,unique,priority:1" json:"snapshot_id"`
	Snapshot   *Snapshot       `gorm:"foreignKey:SnapshotID;references:ID;constraint:OnDelete:CASCADE" json:"snapshot,omitempty"`
	BmltID     int64           `gorm:"column:bmlt_id;not null;index:idx_format_snapshot_bmlt,unique,priority:2" json:"bmlt_id"`
	KeyString  string          `gorm:"column:key_string;not null" json:"key_string"`
	Name       *string         `gorm:"column:name" json:"name,omitempty"`
	WorldID    *string         `gorm:"column:world_id" json:"world_id,omitempty"`
	NawsCodeID *uuid.UUID      `gorm:"type:uuid;column:naws_code_id" json:"naws_code_id,omitempty"`
	NawsCode   *FormatNawsCode `gorm:"foreignKey:NawsCodeID;references:ID" json:"naws_code,omitempty"`
	CreatedAt  time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time       `gorm:"not null" json:"updated_at"`
}

func (Format) TableName() string { return "format" }
