package snapshot

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/bmlt-tools/snapshot-server/internal/bmlt"
	"github.com/bmlt-tools/snapshot-server/internal/domain"
)

// Field helpers for the raw records the directory API delivers. Every
// value arrives as a string; the directory's convention is that an empty
// string means the field is unset.

// optionalText maps both an absent key and an empty string to nil.
func optionalText(rec bmlt.RawRecord, key string) *string {
	v, ok := rec[key]
	if !ok || v == "" {
		return nil
	}
	return &v
}

func requiredText(rec bmlt.RawRecord, key string) (string, error) {
	v, ok := rec[key]
	if !ok || v == "" {
		return "", fmt.Errorf("field %s: required non-empty string", key)
	}
	return v, nil
}

func requiredInt(rec bmlt.RawRecord, key string) (int64, error) {
	v, ok := rec[key]
	if !ok {
		return 0, fmt.Errorf("field %s: missing", key)
	}
	n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("field %s: %q is not an integer", key, v)
	}
	return n, nil
}

func weekdayField(rec bmlt.RawRecord, key string) (domain.DayOfWeek, error) {
	n, err := requiredInt(rec, key)
	if err != nil {
		return 0, err
	}
	d := domain.DayOfWeek(n)
	if !d.Valid() {
		return 0, fmt.Errorf("field %s: %d outside 1..7", key, n)
	}
	return d, nil
}

// venueTypeField treats absent and empty as "none"; anything else must be
// an integer in 1..3.
func venueTypeField(rec bmlt.RawRecord, key string) (domain.VenueType, error) {
	v, ok := rec[key]
	if !ok || v == "" {
		return domain.VenueTypeNone, nil
	}
	n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("field %s: %q is not an integer", key, v)
	}
	vt := domain.VenueType(n)
	if vt < domain.VenueTypeInPerson || vt > domain.VenueTypeHybrid {
		return 0, fmt.Errorf("field %s: %d outside 1..3", key, n)
	}
	return vt, nil
}

// idListField parses a comma-separated list of ids. Absent and empty both
// mean an empty list; any unparsable segment rejects the record.
func idListField(rec bmlt.RawRecord, key string) ([]int64, error) {
	v, ok := rec[key]
	if !ok || v == "" {
		return []int64{}, nil
	}
	parts := strings.Split(v, ",")
	out := make([]int64, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.ParseInt(strings.TrimSpace(p), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("field %s: segment %q is not an integer", key, p)
		}
		out = append(out, n)
	}
	return out, nil
}

// coordinateField never rejects: unset coordinates arrive as empty (or
// otherwise unparsable) strings and normalize to absent.
func coordinateField(rec bmlt.RawRecord, key string) *float64 {
	v, ok := rec[key]
	if !ok {
		return nil
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return nil
	}
	return &f
}

// publishedField accepts exactly the two encodings the directory emits.
func publishedField(rec bmlt.RawRecord, key string) (bool, error) {
	switch rec[key] {
	case "1":
		return true, nil
	case "0":
		return false, nil
	}
	return false, fmt.Errorf("field %s: %q is not a published flag", key, rec[key])
}

// wallClockField parses "HH:MM:SS" and returns the canonical form.
func wallClockField(rec bmlt.RawRecord, key string) (string, error) {
	v, ok := rec[key]
	if !ok || v == "" {
		return "", fmt.Errorf("field %s: missing", key)
	}
	t, err := time.Parse("15:04:05", v)
	if err != nil {
		return "", fmt.Errorf("field %s: %q is not a time of day", key, v)
	}
	return t.Format("15:04:05"), nil
}

// durationField parses "HH:MM:SS" as a duration.
func durationField(rec bmlt.RawRecord, key string) (time.Duration, error) {
	v, ok := rec[key]
	if !ok || v == "" {
		return 0, fmt.Errorf("field %s: missing", key)
	}
	parts := strings.Split(v, ":")
	if len(parts) != 3 {
		return 0, fmt.Errorf("field %s: %q is not a duration", key, v)
	}
	h, err1 := strconv.Atoi(parts[0])
	m, err2 := strconv.Atoi(parts[1])
	s, err3 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil || err3 != nil || h < 0 || m < 0 || m > 59 || s < 0 || s > 59 {
		return 0, fmt.Errorf("field %s: %q is not a duration", key, v)
	}
	return time.Duration(h)*time.Hour + time.Duration(m)*time.Minute + time.Duration(s)*time.Second, nil
}
