package domain

import (
	"time"

	"github.com/google/uuid"
)

// ServiceBody is one node of the directory's organizational hierarchy,
// scoped to a single snapshot. BmltID is the id assigned by the remote
// directory and is only unique within the snapshot.
type ServiceBody struct {
	ID         uuid.UUID            `gorm:"type:uuid;primaryKey" json:"id"`
	SnapshotID uuid.UUID            `gorm:"type:uuid;column:snapshot_id;not null;index:idx_service_body_snapshot_bmlt,unique,priority:1" json:"snapshot_id"`
	Snapshot   *Snapshot            `gorm:"foreignKey:SnapshotID;references:ID;constraint:OnDelete:CASCADE" json:"snapshot,omitempty"`
	BmltID     int64                `gorm:"column:bmlt_id;not null;index:idx_service_body_snapshot_bmlt,unique,priority:2" json:"bmlt_id"`
	ParentID   *uuid.UUID           `gorm:"type:uuid;column:parent_id" json:"parent_id,omitempty"`
	Parent     *ServiceBody         `gorm:"foreignKey:ParentID;references:ID" json:"parent,omitempty"`
	Name       string               `gorm:"column:name;not null" json:"name"`
	Type       string               `gorm:"column:type;not null" json:"type"`
	Description *string             `gorm:"column:description;type:text" json:"description,omitempty"`
	URL         *string             `gorm:"column:url" json:"url,omitempty"`
	Helpline    *string             `gorm:"column:helpline" json:"helpline,omitempty"`
	WorldID     *string             `gorm:"column:world_id" json:"world_id,omitempty"`
	NawsCodeID  *uuid.UUID          `gorm:"type:uuid;column:naws_code_id" json:"naws_code_id,omitempty"`
	NawsCode    *ServiceBodyNawsCode `gorm:"foreignKey:NawsCodeID;references:ID" json:"naws_code,omitempty"`
	CreatedAt   time.Time           `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time           `gorm:"not null" json:"updated_at"`
}

func (ServiceBody) TableName() string { return "service_body" }
