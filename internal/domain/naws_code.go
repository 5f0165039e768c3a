package domain

import (
	"time"

	"github.com/google/uuid"
)

// NAWS code mappings are scoped to a root server, not a snapshot: they
// survive across snapshots and are looked up by (root server, bmlt id)
// when a snapshot entity is created. They are written by the admin
// surface only; the ingestion core just reads them.

type ServiceBodyNawsCode struct {
	ID           uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	RootServerID uuid.UUID   `gorm:"type:uuid;column:root_server_id;not null;index:idx_sb_naws_server_bmlt,unique,priority:1" json:"root_server_id"`
	RootServer   *RootServer `gorm:"foreignKey:RootServerID;references:ID;constraint:OnDelete:CASCADE" json:"root_server,omitempty"`
	BmltID       int64       `gorm:"column:bmlt_id;not null;index:idx_sb_naws_server_bmlt,unique,priority:2" json:"bmlt_id"`
	Code         string      `gorm:"column:code;not null" json:"code"`
	CreatedAt    time.Time   `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time   `gorm:"not null" json:"updated_at"`
}

func (ServiceBodyNawsCode) TableName() string { return "service_body_naws_code" }

type FormatNawsCode struct {
	ID           uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	RootServerID uuid.UUID   `gorm:"type:uuid;column:root_server_id;not null;index:idx_format_naws_server_bmlt,unique,priority:1" json:"root_server_id"`
	RootServer   *RootServer `gorm:"foreignKey:RootServerID;references:ID;constraint:OnDelete:CASCADE" json:"root_server,omitempty"`
	BmltID       int64       `gorm:"column:bmlt_id;not null;index:idx_format_naws_server_bmlt,unique,priority:2" json:"bmlt_id"`
	Code         string      `gorm:"column:code;not null" json:"code"`
	CreatedAt    time.Time   `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time   `gorm:"not null" json:"updated_at"`
}

func (FormatNawsCode) TableName() string { return "format_naws_code" }

type MeetingNawsCode struct {
	ID           uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	RootServerID uuid.UUID   `gorm:"type:uuid;column:root_server_id;not null;index:idx_meeting_naws_server_bmlt,unique,priority:1" json:"root_server_id"`
	RootServer   *RootServer `gorm:"foreignKey:RootServerID;references:ID;constraint:OnDelete:CASCADE" json:"root_server,omitempty"`
	BmltID       int64       `gorm:"column:bmlt_id;not null;index:idx_meeting_naws_server_bmlt,unique,priority:2" json:"bmlt_id"`
	Code         string      `gorm:"column:code;not null" json:"code"`
	CreatedAt    time.Time   `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time   `gorm:"not null" json:"updated_at"`
}

func (MeetingNawsCode) TableName() string { return "meeting_naws_code" }
