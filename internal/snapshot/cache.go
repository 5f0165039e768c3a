package snapshot

import (
	"context"

	"gorm.io/gorm"

	"github.com/bmlt-tools/snapshot-server/internal/data/repos"
	"github.com/bmlt-tools/snapshot-server/internal/domain"
)

// runCache memoizes, for one snapshot run, the service bodies already
// written in this snapshot and the meeting NAWS codes of the root server,
// both keyed by bmlt id. Each map is loaded in full on first use and
// stays fixed until Clear. Service bodies are persisted before meeting
// processing ever touches the cache, so the standard flow has no stale
// reads; Clear exists for any caller that writes after a load.
type runCache struct {
	serviceBodyRepo repos.ServiceBodyRepo
	nawsCodeRepo    repos.NawsCodeRepo
	snap            *domain.Snapshot

	serviceBodies    map[int64]*domain.ServiceBody
	meetingNawsCodes map[int64]*domain.MeetingNawsCode
}

func newRunCache(serviceBodyRepo repos.ServiceBodyRepo, nawsCodeRepo repos.NawsCodeRepo, snap *domain.Snapshot) *runCache {
	return &runCache{
		serviceBodyRepo: serviceBodyRepo,
		nawsCodeRepo:    nawsCodeRepo,
		snap:            snap,
	}
}

func (c *runCache) ServiceBody(ctx context.Context, tx *gorm.DB, bmltID int64) (*domain.ServiceBody, error) {
	if err := c.ensureServiceBodies(ctx, tx); err != nil {
		return nil, err
	}
	return c.serviceBodies[bmltID], nil
}

func (c *runCache) MeetingNawsCode(ctx context.Context, tx *gorm.DB, bmltID int64) (*domain.MeetingNawsCode, error) {
	if err := c.ensureMeetingNawsCodes(ctx, tx); err != nil {
		return nil, err
	}
	return c.meetingNawsCodes[bmltID], nil
}

// Clear drops both maps so the next access reloads from storage.
func (c *runCache) Clear() {
	c.serviceBodies = nil
	c.meetingNawsCodes = nil
}

func (c *runCache) ensureServiceBodies(ctx context.Context, tx *gorm.DB) error {
	if c.serviceBodies != nil {
		return nil
	}
	rows, err := c.serviceBodyRepo.GetBySnapshot(ctx, tx, c.snap.ID)
	if err != nil {
		return err
	}
	m := make(map[int64]*domain.ServiceBody, len(rows))
	for _, row := range rows {
		m[row.BmltID] = row
	}
	c.serviceBodies = m
	return nil
}

func (c *runCache) ensureMeetingNawsCodes(ctx context.Context, tx *gorm.DB) error {
	if c.meetingNawsCodes != nil {
		return nil
	}
	rows, err := c.nawsCodeRepo.GetMeetingCodesByServer(ctx, tx, c.snap.RootServerID)
	if err != nil {
		return err
	}
	m := make(map[int64]*domain.MeetingNawsCode, len(rows))
	for _, row := range rows {
		m[row.BmltID] = row
	}
	c.meetingNawsCodes = m
	return nil
}
