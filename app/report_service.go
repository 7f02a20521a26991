package app

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/sridharshinicloud/carey-foster-bridge-new/domain/core"
	"github.com/sridharshinicloud/carey-foster-bridge-new/domain/measure"
	"github.com/sridharshinicloud/carey-foster-bridge-new/domain/session"
	"github.com/sridharshinicloud/carey-foster-bridge-new/internal"
	"github.com/sridharshinicloud/carey-foster-bridge-new/internal/errors"
	insession "github.com/sridharshinicloud/carey-foster-bridge-new/internal/session"
	"github.com/sridharshinicloud/carey-foster-bridge-new/ports"
)

// ReportService owns the report hand-off: snapshots go into the
// ephemeral store (and, when configured, the durable archive), and the
// report view re-derives every aggregate through the shared reducer.
type ReportService struct {
	store    *insession.SnapshotStore
	exporter ports.ReportExporter
	archive  ports.ReportArchive // nil when no database is configured
	logger   *internal.Logger
}

// NewReportService wires the stores; archive may be nil.
func NewReportService(store *insession.SnapshotStore, exporter ports.ReportExporter, archive ports.ReportArchive, logger *internal.Logger) *ReportService {
	return &ReportService{
		store:    store,
		exporter: exporter,
		archive:  archive,
		logger:   logger.WithPrefix("reports"),
	}
}

// CreateReport stores the snapshot and returns its key. Archiving runs
// alongside the in-memory put; an archive failure fails the call so the
// user knows the durable copy is missing.
func (s *ReportService) CreateReport(ctx context.Context, snap session.Snapshot) (core.SnapshotID, error) {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.store.Put(snap)
		return nil
	})
	if s.archive != nil {
		g.Go(func() error {
			return s.archive.Save(ctx, snap)
		})
	}
	if err := g.Wait(); err != nil {
		return "", errors.Wrap(err, "failed to archive report snapshot")
	}
	s.logger.Info("report snapshot %s created", snap.ID)
	return snap.ID, nil
}

// ReportSection is one mode's portion of the rendered report.
type ReportSection struct {
	Mode               core.ExperimentMode `json:"mode"`
	Readings           []measure.Reading   `json:"readings"`
	Result             measure.Result      `json:"result"`
	Spread             float64             `json:"spread"`
	LeastSquaresRho    *float64            `json:"leastSquaresRho,omitempty"`
	SpecificResistance *float64            `json:"specificResistance,omitempty"`
}

// ReportView is the full report page model. The report always shows
// deviations: handing in the report is the final reveal.
type ReportView struct {
	ID               core.SnapshotID `json:"id"`
	CreatedAt        core.Timestamp  `json:"createdAt"`
	TrueUnknownOhms  float64         `json:"trueUnknownOhms"`
	ResistivityPerCM float64         `json:"resistivityPerCM"`
	Unknown          ReportSection   `json:"unknown"`
	Resistivity      ReportSection   `json:"resistivity"`
}

// View loads a snapshot and derives the report from it.
func (s *ReportService) View(ctx context.Context, id core.SnapshotID) (ReportView, error) {
	snap, err := s.lookup(ctx, id)
	if err != nil {
		return ReportView{}, err
	}
	return buildReportView(snap), nil
}

// Export renders the snapshot as an xlsx workbook.
func (s *ReportService) Export(ctx context.Context, id core.SnapshotID) ([]byte, error) {
	snap, err := s.lookup(ctx, id)
	if err != nil {
		return nil, err
	}
	data, err := s.exporter.Export(snap)
	if err != nil {
		return nil, errors.Wrap(err, "failed to export report workbook")
	}
	return data, nil
}

// lookup checks the ephemeral store first, then the archive.
func (s *ReportService) lookup(ctx context.Context, id core.SnapshotID) (session.Snapshot, error) {
	snap, err := s.store.Get(id)
	if err == nil {
		return snap, nil
	}
	if s.archive != nil {
		archived, aerr := s.archive.Get(ctx, id)
		if aerr == nil {
			return *archived, nil
		}
	}
	return session.Snapshot{}, errors.NotFound("report snapshot")
}

func buildReportView(snap session.Snapshot) ReportView {
	xLog := snap.Logs[core.ModeFindUnknownResistance]
	xResult := measure.ReduceUnknown(xLog, snap.ResistivityPerCM).WithDeviation(snap.TrueUnknownOhms)
	unknown := ReportSection{
		Mode:     core.ModeFindUnknownResistance,
		Readings: xLog,
		Result:   xResult,
		Spread:   measure.EstimateSpread(xResult.Estimates),
	}
	if xResult.Determined && snap.WireRadiusCM != nil && snap.WireLengthCM != nil {
		sp := measure.SpecificResistance(xResult.Value, *snap.WireRadiusCM, *snap.WireLengthCM)
		unknown.SpecificResistance = &sp
	}

	rLog := snap.Logs[core.ModeFindResistivity]
	rResult := measure.ReduceResistivity(rLog).WithDeviation(snap.ResistivityPerCM)
	resistivity := ReportSection{
		Mode:     core.ModeFindResistivity,
		Readings: rLog,
		Result:   rResult,
		Spread:   measure.EstimateSpread(rResult.Estimates),
	}
	if lsq, ok := measure.ResistivityLeastSquares(rLog); ok {
		resistivity.LeastSquaresRho = &lsq
	}

	return ReportView{
		ID:               snap.ID,
		CreatedAt:        snap.CreatedAt,
		TrueUnknownOhms:  snap.TrueUnknownOhms,
		ResistivityPerCM: snap.ResistivityPerCM,
		Unknown:          unknown,
		Resistivity:      resistivity,
	}
}
