package snapshot

import (
	"testing"
	"time"

	"github.com/bmlt-tools/snapshot-server/internal/bmlt"
	"github.com/bmlt-tools/snapshot-server/internal/domain"
)

func rawServiceBody() bmlt.RawRecord {
	return bmlt.RawRecord{
		"id":          "9",
		"parent_id":   "20",
		"name":        "Unity Springs Area",
		"type":        "AS",
		"description": "Unity Springs Area of Narcotics Anonymous",
		"url":         "https://unityspringsna.org",
		"helpline":    "",
		"world_id":    "AR63340",
	}
}

func rawMeeting() bmlt.RawRecord {
	return bmlt.RawRecord{
		"id_bigint":             "6102",
		"meeting_name":          "Living the Program",
		"weekday_tinyint":       "3",
		"service_body_bigint":   "9",
		"venue_type":            "1",
		"start_time":            "19:00:00",
		"duration_time":         "01:30:00",
		"format_shared_id_list": "7,8,17,29,83,340",
		"latitude":              "35.698768",
		"longitude":             "-89.98648",
		"published":             "1",
		"worldid_mixed":         "G00099260",
		"time_zone":             "",
		"location_text":         "First Baptist Church",
		"location_street":       "100 Main St",
		"location_municipality": "Millington",
		"location_province":     "TN",
		"location_postal_code_1": "38053",
	}
}

func TestParseServiceBody(t *testing.T) {
	sb, err := parseServiceBody(rawServiceBody())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sb.BmltID != 9 || sb.ParentBmltID != 20 {
		t.Fatalf("unexpected ids: %d, %d", sb.BmltID, sb.ParentBmltID)
	}
	if sb.Name != "Unity Springs Area" || sb.Type != "AS" {
		t.Fatalf("unexpected name/type: %q, %q", sb.Name, sb.Type)
	}
	if sb.Helpline != nil {
		t.Fatalf("empty helpline should be nil")
	}
	if sb.WorldID == nil || *sb.WorldID != "AR63340" {
		t.Fatalf("unexpected world id: %v", sb.WorldID)
	}
}

func TestParseServiceBodyRejects(t *testing.T) {
	cases := map[string]func(bmlt.RawRecord){
		"missing id":      func(r bmlt.RawRecord) { delete(r, "id") },
		"bad id":          func(r bmlt.RawRecord) { r["id"] = "nine" },
		"missing parent":  func(r bmlt.RawRecord) { delete(r, "parent_id") },
		"empty name":      func(r bmlt.RawRecord) { r["name"] = "" },
		"empty type":      func(r bmlt.RawRecord) { r["type"] = "" },
	}
	for name, mutate := range cases {
		rec := rawServiceBody()
		mutate(rec)
		if _, err := parseServiceBody(rec); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestParseFormat(t *testing.T) {
	f, err := parseFormat(bmlt.RawRecord{
		"id":          "17",
		"key_string":  "O",
		"name_string": "Open",
		"world_id":    "OPEN",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.BmltID != 17 || f.KeyString != "O" {
		t.Fatalf("unexpected format: %+v", f)
	}
	if f.Name == nil || *f.Name != "Open" {
		t.Fatalf("unexpected name: %v", f.Name)
	}

	if _, err := parseFormat(bmlt.RawRecord{"id": "17", "key_string": ""}); err == nil {
		t.Fatalf("empty key string should fail")
	}
	if _, err := parseFormat(bmlt.RawRecord{"key_string": "O"}); err == nil {
		t.Fatalf("missing id should fail")
	}
}

func TestParseMeeting(t *testing.T) {
	m, err := parseMeeting(rawMeeting())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.BmltID != 6102 || m.Name != "Living the Program" {
		t.Fatalf("unexpected meeting: %+v", m)
	}
	if m.Day != domain.Tuesday {
		t.Fatalf("unexpected day: %d", m.Day)
	}
	if m.ServiceBodyBmltID != 9 {
		t.Fatalf("unexpected service body id: %d", m.ServiceBodyBmltID)
	}
	if m.VenueType != domain.VenueTypeInPerson {
		t.Fatalf("unexpected venue type: %d", m.VenueType)
	}
	if m.StartTime != "19:00:00" || m.Duration != 90*time.Minute {
		t.Fatalf("unexpected time: %q, %v", m.StartTime, m.Duration)
	}
	if len(m.FormatBmltIDs) != 6 || m.FormatBmltIDs[0] != 7 || m.FormatBmltIDs[5] != 340 {
		t.Fatalf("unexpected format ids: %v", m.FormatBmltIDs)
	}
	if m.Latitude == nil || *m.Latitude != 35.698768 {
		t.Fatalf("unexpected latitude: %v", m.Latitude)
	}
	if !m.Published {
		t.Fatalf("expected published")
	}
	if m.TimeZone != nil {
		t.Fatalf("empty time zone should be nil")
	}
	if m.LocationText == nil || *m.LocationText != "First Baptist Church" {
		t.Fatalf("unexpected location text: %v", m.LocationText)
	}
}

func TestParseMeetingRejects(t *testing.T) {
	cases := map[string]func(bmlt.RawRecord){
		"missing id":        func(r bmlt.RawRecord) { delete(r, "id_bigint") },
		"empty name":        func(r bmlt.RawRecord) { r["meeting_name"] = "" },
		"weekday 0":         func(r bmlt.RawRecord) { r["weekday_tinyint"] = "0" },
		"weekday 8":         func(r bmlt.RawRecord) { r["weekday_tinyint"] = "8" },
		"bad service body":  func(r bmlt.RawRecord) { r["service_body_bigint"] = "" },
		"venue type 4":      func(r bmlt.RawRecord) { r["venue_type"] = "4" },
		"venue type text":   func(r bmlt.RawRecord) { r["venue_type"] = "virtual" },
		"bad format list":   func(r bmlt.RawRecord) { r["format_shared_id_list"] = "7,x" },
		"bad start time":    func(r bmlt.RawRecord) { r["start_time"] = "7pm" },
		"bad duration":      func(r bmlt.RawRecord) { r["duration_time"] = "90" },
		"bad published":     func(r bmlt.RawRecord) { r["published"] = "yes" },
		"missing published": func(r bmlt.RawRecord) { delete(r, "published") },
	}
	for name, mutate := range cases {
		rec := rawMeeting()
		mutate(rec)
		if _, err := parseMeeting(rec); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestParseMeetingLenientCoordinates(t *testing.T) {
	rec := rawMeeting()
	rec["latitude"] = ""
	rec["longitude"] = "west"
	m, err := parseMeeting(rec)
	if err != nil {
		t.Fatalf("coordinates must never reject: %v", err)
	}
	if m.Latitude != nil || m.Longitude != nil {
		t.Fatalf("unparsable coordinates should be absent: %v, %v", m.Latitude, m.Longitude)
	}
}

func TestParseMeetingEmptyFormatList(t *testing.T) {
	rec := rawMeeting()
	rec["format_shared_id_list"] = ""
	m, err := parseMeeting(rec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(m.FormatBmltIDs) != 0 {
		t.Fatalf("expected empty list, got %v", m.FormatBmltIDs)
	}
}
