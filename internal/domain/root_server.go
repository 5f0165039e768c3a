package domain

import (
	"time"

	"github.com/google/uuid"
)

// RootServer is a remote directory endpoint this service snapshots.
// URL is always stored with a trailing slash.
type RootServer struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"column:name;not null" json:"name"`
	URL       string    `gorm:"column:url;not null" json:"url"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (RootServer) TableName() string { return "root_server" }

// Snapshot is one immutable capture of a root server's directory state.
type Snapshot struct {
	ID           uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	RootServerID uuid.UUID   `gorm:"type:uuid;column:root_server_id;not null;index" json:"root_server_id"`
	RootServer   *RootServer `gorm:"foreignKey:RootServerID;references:ID;constraint:OnDelete:CASCADE" json:"root_server,omitempty"`
	CreatedAt    time.Time   `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time   `gorm:"not null" json:"updated_at"`
}

func (Snapshot) TableName() string { return "snapshot" }
