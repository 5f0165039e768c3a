package snapshot

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bmlt-tools/snapshot-server/internal/bmlt"
	"github.com/bmlt-tools/snapshot-server/internal/data/repos"
	"github.com/bmlt-tools/snapshot-server/internal/domain"
	"github.com/bmlt-tools/snapshot-server/internal/pkg/apperr"
	"github.com/bmlt-tools/snapshot-server/internal/platform/logger"
)

// ErrUnknownServiceBody means a meeting declared a service body the
// snapshot does not contain. A meeting can never exist without its
// service body, so this aborts the whole run.
var ErrUnknownServiceBody = errors.New("meeting references a service body not present in the snapshot")

// Rejection is the non-fatal error channel: one skipped record and why.
// It is deliberately a separate type from the run error so callers can
// never confuse "some rows dropped" with "snapshot aborted".
type Rejection struct {
	Collection string `json:"collection"`
	RawID      string `json:"raw_id,omitempty"`
	Err        error  `json:"-"`
}

// RunReport summarizes one committed snapshot run.
type RunReport struct {
	SnapshotID    uuid.UUID   `json:"snapshot_id"`
	RootServerID  uuid.UUID   `json:"root_server_id"`
	ServiceBodies int         `json:"service_bodies"`
	Formats       int         `json:"formats"`
	Meetings      int         `json:"meetings"`
	Rejected      []Rejection `json:"rejected,omitempty"`
}

// Service runs snapshot ingestions. Run expects a caller-managed
// transaction; RunByID and RunAll manage one transaction per root server
// themselves and roll back everything the run wrote on any fatal error.
type Service interface {
	Run(ctx context.Context, tx *gorm.DB, rootServer *domain.RootServer) (*RunReport, error)
	RunByID(ctx context.Context, rootServerID uuid.UUID) (*RunReport, error)
	RunAll(ctx context.Context) ([]*RunReport, error)
}

type Deps struct {
	RootServers    repos.RootServerRepo
	Snapshots      repos.SnapshotRepo
	ServiceBodies  repos.ServiceBodyRepo
	Formats        repos.FormatRepo
	Meetings       repos.MeetingRepo
	MeetingFormats repos.MeetingFormatRepo
	NawsCodes      repos.NawsCodeRepo
	NewClient      bmlt.Factory
}

type service struct {
	db   *gorm.DB
	log  *logger.Logger
	deps Deps
}

func NewService(db *gorm.DB, baseLog *logger.Logger, deps Deps) Service {
	return &service{db: db, log: baseLog.With("service", "SnapshotService"), deps: deps}
}

func (s *service) Run(ctx context.Context, tx *gorm.DB, rootServer *domain.RootServer) (*RunReport, error) {
	if rootServer == nil {
		return nil, fmt.Errorf("run snapshot: %w: nil root server", apperr.ErrInvalidArgument)
	}
	log := s.log.With("root_server_id", rootServer.ID, "url", rootServer.URL)
	log.Info("creating snapshot")

	snap, err := s.deps.Snapshots.Create(ctx, tx, rootServer.ID)
	if err != nil {
		return nil, fmt.Errorf("create snapshot row: %w", err)
	}

	client := s.deps.NewClient(rootServer.URL)
	report := &RunReport{SnapshotID: snap.ID, RootServerID: rootServer.ID}

	log.Info("getting service bodies")
	rawServiceBodies, err := client.GetServiceBodies(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch service bodies: %w", err)
	}
	serviceBodies := make([]*serviceBodyRecord, 0, len(rawServiceBodies))
	for _, raw := range rawServiceBodies {
		rec, err := parseServiceBody(raw)
		if err != nil {
			s.reject(report, log, "service_body", raw["id"], err)
			continue
		}
		serviceBodies = append(serviceBodies, rec)
	}
	log.Info("saving service bodies", "count", len(serviceBodies))
	if err := s.saveServiceBodies(ctx, tx, snap, serviceBodies); err != nil {
		return nil, err
	}
	report.ServiceBodies = len(serviceBodies)

	log.Info("getting formats")
	rawFormats, err := client.GetFormats(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch formats: %w", err)
	}
	formats := make([]*formatRecord, 0, len(rawFormats))
	for _, raw := range rawFormats {
		rec, err := parseFormat(raw)
		if err != nil {
			s.reject(report, log, "format", raw["id"], err)
			continue
		}
		formats = append(formats, rec)
	}
	log.Info("saving formats", "count", len(formats))
	if err := s.saveFormats(ctx, tx, snap, formats); err != nil {
		return nil, err
	}
	report.Formats = len(formats)

	log.Info("getting meetings")
	rawMeetings, err := client.GetMeetings(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch meetings: %w", err)
	}
	meetings := make([]*meetingRecord, 0, len(rawMeetings))
	for _, raw := range rawMeetings {
		rec, err := parseMeeting(raw)
		if err != nil {
			s.reject(report, log, "meeting", raw["id_bigint"], err)
			continue
		}
		meetings = append(meetings, rec)
	}
	log.Info("saving meetings", "count", len(meetings))
	if err := s.saveMeetings(ctx, tx, snap, meetings); err != nil {
		return nil, err
	}
	report.Meetings = len(meetings)

	return report, nil
}

func (s *service) RunByID(ctx context.Context, rootServerID uuid.UUID) (*RunReport, error) {
	rootServer, err := s.deps.RootServers.GetByID(ctx, nil, rootServerID)
	if err != nil {
		return nil, err
	}
	if rootServer == nil {
		return nil, fmt.Errorf("root server %s: %w", rootServerID, apperr.ErrNotFound)
	}
	return s.runInTransaction(ctx, rootServer)
}

func (s *service) RunAll(ctx context.Context) ([]*RunReport, error) {
	rootServers, err := s.deps.RootServers.List(ctx, nil)
	if err != nil {
		return nil, err
	}
	reports := make([]*RunReport, 0, len(rootServers))
	for _, rootServer := range rootServers {
		report, err := s.runInTransaction(ctx, rootServer)
		if err != nil {
			return reports, fmt.Errorf("snapshot of %s: %w", rootServer.URL, err)
		}
		reports = append(reports, report)
	}
	return reports, nil
}

// runInTransaction gives one run an all-or-nothing boundary: commit on
// success, roll back every write on any fatal error.
func (s *service) runInTransaction(ctx context.Context, rootServer *domain.RootServer) (*RunReport, error) {
	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, fmt.Errorf("begin transaction: %w", tx.Error)
	}
	report, err := s.Run(ctx, tx, rootServer)
	if err != nil {
		if rbErr := tx.Rollback().Error; rbErr != nil {
			s.log.Error("rollback failed", "error", rbErr)
		}
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}
	return report, nil
}

func (s *service) reject(report *RunReport, log *logger.Logger, collection, rawID string, err error) {
	log.Warn("skipping invalid record", "collection", collection, "raw_id", rawID, "error", err)
	report.Rejected = append(report.Rejected, Rejection{Collection: collection, RawID: rawID, Err: err})
}

// saveServiceBodies inserts the batch in two passes so parent references
// resolve regardless of arrival order. Pass 1 inserts every row without a
// parent and builds the bmlt id index; pass 2 applies parent updates
// through that index. A parent bmlt id of zero means "no parent"; a
// parent the snapshot does not contain leaves the child a root.
func (s *service) saveServiceBodies(ctx context.Context, tx *gorm.DB, snap *domain.Snapshot, records []*serviceBodyRecord) error {
	rows := make([]*domain.ServiceBody, 0, len(records))
	for _, rec := range records {
		nawsCode, err := s.deps.NawsCodes.GetServiceBodyCodeByServer(ctx, tx, snap.RootServerID, rec.BmltID)
		if err != nil {
			return fmt.Errorf("lookup service body naws code: %w", err)
		}
		row := &domain.ServiceBody{
			ID:          uuid.New(),
			SnapshotID:  snap.ID,
			BmltID:      rec.BmltID,
			Name:        rec.Name,
			Type:        rec.Type,
			Description: rec.Description,
			URL:         rec.URL,
			Helpline:    rec.Helpline,
			WorldID:     rec.WorldID,
		}
		if nawsCode != nil {
			row.NawsCodeID = &nawsCode.ID
		}
		rows = append(rows, row)
	}
	if _, err := s.deps.ServiceBodies.Create(ctx, tx, rows); err != nil {
		return fmt.Errorf("insert service bodies: %w", err)
	}

	byBmltID := make(map[int64]*domain.ServiceBody, len(rows))
	for _, row := range rows {
		byBmltID[row.BmltID] = row
	}
	for _, rec := range records {
		if rec.ParentBmltID == 0 {
			continue
		}
		parent, ok := byBmltID[rec.ParentBmltID]
		if !ok {
			s.log.Warn("service body parent not in snapshot, keeping as root",
				"snapshot_id", snap.ID, "bmlt_id", rec.BmltID, "parent_bmlt_id", rec.ParentBmltID)
			continue
		}
		if err := s.deps.ServiceBodies.UpdateParent(ctx, tx, snap.ID, rec.BmltID, parent.ID); err != nil {
			return fmt.Errorf("set service body parent: %w", err)
		}
	}
	return nil
}

func (s *service) saveFormats(ctx context.Context, tx *gorm.DB, snap *domain.Snapshot, records []*formatRecord) error {
	rows := make([]*domain.Format, 0, len(records))
	for _, rec := range records {
		nawsCode, err := s.deps.NawsCodes.GetFormatCodeByServer(ctx, tx, snap.RootServerID, rec.BmltID)
		if err != nil {
			return fmt.Errorf("lookup format naws code: %w", err)
		}
		row := &domain.Format{
			ID:         uuid.New(),
			SnapshotID: snap.ID,
			BmltID:     rec.BmltID,
			KeyString:  rec.KeyString,
			Name:       rec.Name,
			WorldID:    rec.WorldID,
		}
		if nawsCode != nil {
			row.NawsCodeID = &nawsCode.ID
		}
		rows = append(rows, row)
	}
	if _, err := s.deps.Formats.Create(ctx, tx, rows); err != nil {
		return fmt.Errorf("insert formats: %w", err)
	}
	return nil
}

func (s *service) saveMeetings(ctx context.Context, tx *gorm.DB, snap *domain.Snapshot, records []*meetingRecord) error {
	cache := newRunCache(s.deps.ServiceBodies, s.deps.NawsCodes, snap)

	rows := make([]*domain.Meeting, 0, len(records))
	joins := make([]*domain.MeetingFormat, 0, len(records))
	for _, rec := range records {
		serviceBody, err := cache.ServiceBody(ctx, tx, rec.ServiceBodyBmltID)
		if err != nil {
			return fmt.Errorf("lookup service body: %w", err)
		}
		if serviceBody == nil {
			return fmt.Errorf("meeting %d declares service body %d: %w", rec.BmltID, rec.ServiceBodyBmltID, ErrUnknownServiceBody)
		}
		nawsCode, err := cache.MeetingNawsCode(ctx, tx, rec.BmltID)
		if err != nil {
			return fmt.Errorf("lookup meeting naws code: %w", err)
		}

		row := &domain.Meeting{
			ID:            uuid.New(),
			SnapshotID:    snap.ID,
			BmltID:        rec.BmltID,
			Name:          rec.Name,
			Day:           rec.Day,
			ServiceBodyID: serviceBody.ID,
			VenueType:     rec.VenueType,
			StartTime:     rec.StartTime,
			Duration:      rec.Duration,
			TimeZone:      rec.TimeZone,
			Latitude:      rec.Latitude,
			Longitude:     rec.Longitude,
			Published:     rec.Published,
			WorldID:       rec.WorldID,

			LocationText:                 rec.LocationText,
			LocationInfo:                 rec.LocationInfo,
			LocationStreet:               rec.LocationStreet,
			LocationCitySubsection:       rec.LocationCitySubsection,
			LocationNeighborhood:         rec.LocationNeighborhood,
			LocationMunicipality:         rec.LocationMunicipality,
			LocationSubProvince:          rec.LocationSubProvince,
			LocationProvince:             rec.LocationProvince,
			LocationPostalCode1:          rec.LocationPostalCode1,
			LocationNation:               rec.LocationNation,
			TrainLines:                   rec.TrainLines,
			BusLines:                     rec.BusLines,
			Comments:                     rec.Comments,
			VirtualMeetingLink:           rec.VirtualMeetingLink,
			PhoneMeetingNumber:           rec.PhoneMeetingNumber,
			VirtualMeetingAdditionalInfo: rec.VirtualMeetingAdditionalInfo,
		}
		if nawsCode != nil {
			row.NawsCodeID = &nawsCode.ID
		}

		rowJoins, err := s.buildFormatJoins(ctx, tx, snap.ID, row.ID, rec.FormatBmltIDs)
		if err != nil {
			return err
		}
		rows = append(rows, row)
		joins = append(joins, rowJoins...)
	}

	if _, err := s.deps.Meetings.Create(ctx, tx, rows); err != nil {
		return fmt.Errorf("insert meetings: %w", err)
	}
	if _, err := s.deps.MeetingFormats.Create(ctx, tx, joins); err != nil {
		return fmt.Errorf("insert meeting formats: %w", err)
	}
	return nil
}

// buildFormatJoins resolves a meeting's format list against the snapshot
// in one batched lookup and keeps the input order. Ids the snapshot does
// not contain are dropped silently; the directory may reference formats
// the snapshot does not know about.
func (s *service) buildFormatJoins(ctx context.Context, tx *gorm.DB, snapshotID, meetingID uuid.UUID, bmltIDs []int64) ([]*domain.MeetingFormat, error) {
	if len(bmltIDs) == 0 {
		return nil, nil
	}
	formats, err := s.deps.Formats.GetBySnapshotAndBmltIDs(ctx, tx, snapshotID, bmltIDs)
	if err != nil {
		return nil, fmt.Errorf("lookup formats: %w", err)
	}
	byBmltID := make(map[int64]*domain.Format, len(formats))
	for _, f := range formats {
		byBmltID[f.BmltID] = f
	}

	joins := make([]*domain.MeetingFormat, 0, len(formats))
	seen := make(map[int64]bool, len(bmltIDs))
	for _, id := range bmltIDs {
		if seen[id] {
			continue
		}
		seen[id] = true
		f, ok := byBmltID[id]
		if !ok {
			continue
		}
		joins = append(joins, &domain.MeetingFormat{MeetingID: meetingID, FormatID: f.ID})
	}
	return joins, nil
}
