package domain

import (
	"time"

	"github.com/google/uuid"
)

// Meeting is a leaf record describing one recurring gathering. It always
// references a ServiceBody in its own snapshot. StartTime keeps the wire
// format ("HH:MM:SS") so the captured value round-trips exactly.
type Meeting struct {
	ID            uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	SnapshotID    uuid.UUID        `gorm:"type:uuid;column:snapshot_id;not null;index" json:"snapshot_id"`
	Snapshot      *Snapshot        `gorm:"foreignKey:SnapshotID;references:ID;constraint:OnDelete:CASCADE" json:"snapshot,omitempty"`
	BmltID        int64            `gorm:"column:bmlt_id;not null" json:"bmlt_id"`
	Name          string           `gorm:"column:name;not null" json:"name"`
	Day           DayOfWeek        `gorm:"column:day;not null" json:"day"`
	ServiceBodyID uuid.UUID        `gorm:"type:uuid;column:service_body_id;not null" json:"service_body_id"`
	ServiceBody   *ServiceBody     `gorm:"foreignKey:ServiceBodyID;references:ID" json:"service_body,omitempty"`
	VenueType     VenueType        `gorm:"column:venue_type;not null" json:"venue_type"`
	StartTime     string           `gorm:"column:start_time;not null" json:"start_time"`
	Duration      time.Duration    `gorm:"column:duration;not null" json:"duration"`
	TimeZone      *string          `gorm:"column:time_zone" json:"time_zone,omitempty"`
	Latitude      *float64         `gorm:"column:latitude" json:"latitude,omitempty"`
	Longitude     *float64         `gorm:"column:longitude" json:"longitude,omitempty"`
	Published     bool             `gorm:"column:published;not null" json:"published"`
	WorldID       *string          `gorm:"column:world_id" json:"world_id,omitempty"`
	NawsCodeID    *uuid.UUID       `gorm:"type:uuid;column:naws_code_id" json:"naws_code_id,omitempty"`
	NawsCode      *MeetingNawsCode `gorm:"foreignKey:NawsCodeID;references:ID" json:"naws_code,omitempty"`

	LocationText                 *string `gorm:"column:location_text;type:text" json:"location_text,omitempty"`
	LocationInfo                 *string `gorm:"column:location_info;type:text" json:"location_info,omitempty"`
	LocationStreet               *string `gorm:"column:location_street;type:text" json:"location_street,omitempty"`
	LocationCitySubsection       *string `gorm:"column:location_city_subsection;type:text" json:"location_city_subsection,omitempty"`
	LocationNeighborhood         *string `gorm:"column:location_neighborhood;type:text" json:"location_neighborhood,omitempty"`
	LocationMunicipality         *string `gorm:"column:location_municipality;type:text" json:"location_municipality,omitempty"`
	LocationSubProvince          *string `gorm:"column:location_sub_province;type:text" json:"location_sub_province,omitempty"`
	LocationProvince             *string `gorm:"column:location_province;type:text" json:"location_province,omitempty"`
	LocationPostalCode1          *string `gorm:"column:location_postal_code_1;type:text" json:"location_postal_code_1,omitempty"`
	LocationNation               *string `gorm:"column:location_nation;type:text" json:"location_nation,omitempty"`
	TrainLines                   *string `gorm:"column:train_lines;type:text" json:"train_lines,omitempty"`
	BusLines                     *string `gorm:"column:bus_lines;type:text" json:"bus_lines,omitempty"`
	Comments                     *string `gorm:"column:comments;type:text" json:"comments,omitempty"`
	VirtualMeetingLink           *string `gorm:"column:virtual_meeting_link;type:text" json:"virtual_meeting_link,omitempty"`
	PhoneMeetingNumber           *string `gorm:"column:phone_meeting_number;type:text" json:"phone_meeting_number,omitempty"`
	VirtualMeetingAdditionalInfo *string `gorm:"column:virtual_meeting_additional_info;type:text" json:"virtual_meeting_additional_info,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Meeting) TableName() string { return "meeting" }

// MeetingFormat joins a meeting to one of its formats. Identity is the
// (meeting, format) pair; it has no lifecycle of its own.
type MeetingFormat struct {
	MeetingID uuid.UUID `gorm:"type:uuid;column:meeting_id;primaryKey" json:"meeting_id"`
	FormatID  uuid.UUID `gorm:"type:uuid;column:format_id;primaryKey" json:"format_id"`
	Meeting   *Meeting  `gorm:"foreignKey:MeetingID;references:ID;constraint:OnDelete:CASCADE" json:"meeting,omitempty"`
	Format    *Format   `gorm:"foreignKey:FormatID;references:ID;constraint:OnDelete:CASCADE" json:"format,omitempty"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (MeetingFormat) TableName() string { return "meeting_format" }
