package repos_test

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/bmlt-tools/snapshot-server/internal/data/repos"
	"github.com/bmlt-tools/snapshot-server/internal/data/repos/testutil"
)

func TestSnapshotCreateAndGet(t *testing.T) {
	ctx := context.Background()
	gdb := testutil.DB(t)
	tx := testutil.Tx(t, gdb)
	log := testutil.Logger(t)
	r := repos.NewSnapshotRepo(gdb, log)

	rs := mustRootServer(t, tx, repos.NewRootServerRepo(gdb, log), "Snap Region")
	created, err := r.Create(ctx, tx, rs.ID)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == uuid.Nil || created.RootServerID != rs.ID {
		t.Fatalf("unexpected row: %+v", created)
	}

	got, err := r.GetByID(ctx, tx, created.ID)
	if err != nil || got == nil || got.ID != created.ID {
		t.Fatalf("get: %+v, %v", got, err)
	}
	missing, err := r.GetByID(ctx, tx, uuid.New())
	if err != nil || missing != nil {
		t.Fatalf("missing id should be nil, nil: %v, %v", missing, err)
	}
}

func TestSnapshotListByRootServer(t *testing.T) {
	ctx := context.Background()
	gdb := testutil.DB(t)
	tx := testutil.Tx(t, gdb)
	log := testutil.Logger(t)
	r := repos.NewSnapshotRepo(gdb, log)

	rs := mustRootServer(t, tx, repos.NewRootServerRepo(gdb, log), "Snap Region")
	other := mustRootServer(t, tx, repos.NewRootServerRepo(gdb, log), "Other Region")

	first, err := r.Create(ctx, tx, rs.ID)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	second, err := r.Create(ctx, tx, rs.ID)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := r.Create(ctx, tx, other.ID); err != nil {
		t.Fatalf("create: %v", err)
	}

	rows, err := r.ListByRootServer(ctx, tx, rs.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 snapshots, got %d", len(rows))
	}
	ids := map[uuid.UUID]bool{rows[0].ID: true, rows[1].ID: true}
	if !ids[first.ID] || !ids[second.ID] {
		t.Fatalf("listing scoped to the wrong server: %+v", rows)
	}
}
