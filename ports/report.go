package ports

import (
	"context"

	"github.com/sridharshinicloud/carey-foster-bridge-new/domain/core"
	"github.com/sridharshinicloud/carey-foster-bridge-new/domain/session"
)

// ReportArchive persists report snapshots beyond the in-memory
// hand-off. Optional: the simulator is fully usable without one.
type ReportArchive interface {
	Save(ctx context.Context, snap session.Snapshot) error
	Get(ctx context.Context, id core.SnapshotID) (*session.Snapshot, error)
	List(ctx context.Context, limit int) ([]session.Snapshot, error)
}

// ReportExporter renders a snapshot into a downloadable document.
type ReportExporter interface {
	Export(snap session.Snapshot) ([]byte, error)
}
