// Package excel renders a lab-report workbook from a session snapshot.
// All numbers come from the same measurement reducer the live panel
// uses, so the exported sheet never disagrees with the screen.
package excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/sridharshinicloud/carey-foster-bridge-new/domain/core"
	"github.com/sridharshinicloud/carey-foster-bridge-new/domain/measure"
	"github.com/sridharshinicloud/carey-foster-bridge-new/domain/session"
)

const (
	sheetUnknown     = "Unknown Resistance"
	sheetResistivity = "Resistivity"
)

// WorkbookExporter implements ports.ReportExporter with excelize.
type WorkbookExporter struct{}

// NewWorkbookExporter creates the exporter.
func NewWorkbookExporter() *WorkbookExporter {
	return &WorkbookExporter{}
}

// Export builds the two-sheet workbook and returns the xlsx bytes.
func (e *WorkbookExporter) Export(snap session.Snapshot) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetUnknown); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	if _, err := f.NewSheet(sheetResistivity); err != nil {
		return nil, fmt.Errorf("add sheet: %w", err)
	}

	xLog := snap.Logs[core.ModeFindUnknownResistance]
	xResult := measure.ReduceUnknown(xLog, snap.ResistivityPerCM).WithDeviation(snap.TrueUnknownOhms)
	if err := e.writeSheet(f, sheetUnknown, "X estimate (ohm)", xLog, xResult, snap.ResistivityPerCM); err != nil {
		return nil, err
	}
	if xResult.Determined && snap.WireRadiusCM != nil && snap.WireLengthCM != nil {
		s := measure.SpecificResistance(xResult.Value, *snap.WireRadiusCM, *snap.WireLengthCM)
		if err := e.writeSummaryRow(f, sheetUnknown, len(xLog)+7, "Specific resistance S (ohm m)", s); err != nil {
			return nil, err
		}
	}

	rLog := snap.Logs[core.ModeFindResistivity]
	rResult := measure.ReduceResistivity(rLog).WithDeviation(snap.ResistivityPerCM)
	if err := e.writeSheet(f, sheetResistivity, "rho estimate (ohm/cm)", rLog, rResult, 0); err != nil {
		return nil, err
	}
	if lsq, ok := measure.ResistivityLeastSquares(rLog); ok {
		if err := e.writeSummaryRow(f, sheetResistivity, len(rLog)+7, "Least-squares rho (ohm/cm)", lsq); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func (e *WorkbookExporter) writeSheet(f *excelize.File, sheet, estimateHeader string, readings []measure.Reading, result measure.Result, rhoPerCM float64) error {
	headers := []interface{}{"R (ohm)", "l1 normal (cm)", "l2 swapped (cm)", "l2 - l1 (cm)", estimateHeader}
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return fmt.Errorf("write headers: %w", err)
	}

	for i, r := range readings {
		row := []interface{}{r.KnownResistance, blankable(r.NormalLengthCM), blankable(r.SwappedLengthCM), nil, nil}
		if r.Complete() {
			diff := *r.SwappedLengthCM - *r.NormalLengthCM
			row[3] = diff
			switch sheet {
			case sheetResistivity:
				if diff != 0 {
					row[4] = r.KnownResistance / diff
				}
			default:
				row[4] = r.KnownResistance + rhoPerCM*diff
			}
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	base := len(readings) + 3
	if !result.Determined {
		return e.writeSummaryText(f, sheet, base, "Result", "undetermined: "+result.Reason)
	}
	if err := e.writeSummaryRow(f, sheet, base, "Mean estimate", result.Value); err != nil {
		return err
	}
	if err := e.writeSummaryRow(f, sheet, base+1, "Usable pairs", float64(result.PairCount)); err != nil {
		return err
	}
	if err := e.writeSummaryRow(f, sheet, base+2, "Estimate spread (std dev)", measure.EstimateSpread(result.Estimates)); err != nil {
		return err
	}
	if result.DeviationPct != nil {
		if err := e.writeSummaryRow(f, sheet, base+3, "Deviation from true (%)", *result.DeviationPct); err != nil {
			return err
		}
	}
	return nil
}

func (e *WorkbookExporter) writeSummaryRow(f *excelize.File, sheet string, rowNum int, label string, value float64) error {
	row := []interface{}{label, value}
	cell, _ := excelize.CoordinatesToCellName(1, rowNum)
	if err := f.SetSheetRow(sheet, cell, &row); err != nil {
		return fmt.Errorf("write summary row %d: %w", rowNum, err)
	}
	return nil
}

func (e *WorkbookExporter) writeSummaryText(f *excelize.File, sheet string, rowNum int, label, text string) error {
	row := []interface{}{label, text}
	cell, _ := excelize.CoordinatesToCellName(1, rowNum)
	if err := f.SetSheetRow(sheet, cell, &row); err != nil {
		return fmt.Errorf("write summary row %d: %w", rowNum, err)
	}
	return nil
}

func blankable(v *float64) interface{} {
	if v == nil {
		return nil
	}
	return *v
}
