package snapshot

import (
	"time"

	"github.com/bmlt-tools/snapshot-server/internal/bmlt"
	"github.com/bmlt-tools/snapshot-server/internal/domain"
)

// Parsed record types. Validation failures are per-record: the caller
// skips the record and keeps going, because upstream directories are
// known to contain malformed rows.

type serviceBodyRecord struct {
	BmltID       int64
	ParentBmltID int64
	Name         string
	Type         string
	Description  *string
	URL          *string
	Helpline     *string
	WorldID      *string
}

func parseServiceBody(rec bmlt.RawRecord) (*serviceBodyRecord, error) {
	id, err := requiredInt(rec, "id")
	if err != nil {
		return nil, err
	}
	parentID, err := requiredInt(rec, "parent_id")
	if err != nil {
		return nil, err
	}
	name, err := requiredText(rec, "name")
	if err != nil {
		return nil, err
	}
	typ, err := requiredText(rec, "type")
	if err != nil {
		return nil, err
	}
	return &serviceBodyRecord{
		BmltID:       id,
		ParentBmltID: parentID,
		Name:         name,
		Type:         typ,
		Description:  optionalText(rec, "description"),
		URL:          optionalText(rec, "url"),
		Helpline:     optionalText(rec, "helpline"),
		WorldID:      optionalText(rec, "world_id"),
	}, nil
}

type formatRecord struct {
	BmltID    int64
	KeyString string
	Name      *string
	WorldID   *string
}

func parseFormat(rec bmlt.RawRecord) (*formatRecord, error) {
	id, err := requiredInt(rec, "id")
	if err != nil {
		return nil, err
	}
	keyString, err := requiredText(rec, "key_string")
	if err != nil {
		return nil, err
	}
	return &formatRecord{
		BmltID:    id,
		KeyString: keyString,
		Name:      optionalText(rec, "name_string"),
		WorldID:   optionalText(rec, "world_id"),
	}, nil
}

type meetingRecord struct {
	BmltID            int64
	Name              string
	Day               domain.DayOfWeek
	ServiceBodyBmltID int64
	VenueType         domain.VenueType
	StartTime         string
	Duration          time.Duration
	TimeZone          *string
	FormatBmltIDs     []int64
	Latitude          *float64
	Longitude         *float64
	Published         bool
	WorldID           *string

	LocationText                 *string
	LocationInfo                 *string
	LocationStreet               *string
	LocationCitySubsection       *string
	LocationNeighborhood         *string
	LocationMunicipality         *string
	LocationSubProvince          *string
	LocationProvince             *string
	LocationPostalCode1          *string
	LocationNation               *string
	TrainLines                   *string
	BusLines                     *string
	Comments                     *string
	VirtualMeetingLink           *string
	PhoneMeetingNumber           *string
	VirtualMeetingAdditionalInfo *string
}

func parseMeeting(rec bmlt.RawRecord) (*meetingRecord, error) {
	id, err := requiredInt(rec, "id_bigint")
	if err != nil {
		return nil, err
	}
	name, err := requiredText(rec, "meeting_name")
	if err != nil {
		return nil, err
	}
	day, err := weekdayField(rec, "weekday_tinyint")
	if err != nil {
		return nil, err
	}
	serviceBodyID, err := requiredInt(rec, "service_body_bigint")
	if err != nil {
		return nil, err
	}
	venueType, err := venueTypeField(rec, "venue_type")
	if err != nil {
		return nil, err
	}
	startTime, err := wallClockField(rec, "start_time")
	if err != nil {
		return nil, err
	}
	duration, err := durationField(rec, "duration_time")
	if err != nil {
		return nil, err
	}
	formatIDs, err := idListField(rec, "format_shared_id_list")
	if err != nil {
		return nil, err
	}
	published, err := publishedField(rec, "published")
	if err != nil {
		return nil, err
	}

	return &meetingRecord{
		BmltID:            id,
		Name:              name,
		Day:               day,
		ServiceBodyBmltID: serviceBodyID,
		VenueType:         venueType,
		StartTime:         startTime,
		Duration:          duration,
		TimeZone:          optionalText(rec, "time_zone"),
		FormatBmltIDs:     formatIDs,
		Latitude:          coordinateField(rec, "latitude"),
		Longitude:         coordinateField(rec, "longitude"),
		Published:         published,
		WorldID:           optionalText(rec, "worldid_mixed"),

		LocationText:                 optionalText(rec, "location_text"),
		LocationInfo:                 optionalText(rec, "location_info"),
		LocationStreet:               optionalText(rec, "location_street"),
		LocationCitySubsection:       optionalText(rec, "location_city_subsection"),
		LocationNeighborhood:         optionalText(rec, "location_neighborhood"),
		LocationMunicipality:         optionalText(rec, "location_municipality"),
		LocationSubProvince:          optionalText(rec, "location_sub_province"),
		LocationProvince:             optionalText(rec, "location_province"),
		LocationPostalCode1:          optionalText(rec, "location_postal_code_1"),
		LocationNation:               optionalText(rec, "location_nation"),
		TrainLines:                   optionalText(rec, "train_lines"),
		BusLines:                     optionalText(rec, "bus_lines"),
		Comments:                     optionalText(rec, "comments"),
		VirtualMeetingLink:           optionalText(rec, "virtual_meeting_link"),
		PhoneMeetingNumber:           optionalText(rec, "phone_meeting_number"),
		VirtualMeetingAdditionalInfo: optionalText(rec, "virtual_meeting_additional_info"),
	}, nil
}
