package excel

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"powerplan/domain/design"
	apperrors "powerplan/internal/errors"
)

// SweepWriter exports allocation sweeps as .xlsx workbooks
type SweepWriter struct{}

// NewSweepWriter creates a sweep writer
func NewSweepWriter() *SweepWriter {
	return &SweepWriter{}
}

// ContentType reports the xlsx MIME type
func (w *SweepWriter) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// Filename suggests a download name keyed by the sweep ID
func (w *SweepWriter) Filename(sweep *design.SweepResult) string {
	return fmt.Sprintf("allocation-sweep-%s.xlsx", sweep.ID.String())
}

// valueHeader names the swept column for the sweep mode
func valueHeader(mode design.SweepMode) string {
	if mode == design.SweepMDE {
		return "MDE (percentage points)"
	}
	return "Required Total Sample Size"
}

// Export renders one sheet: header row, one row per grid point, and a trailing
// row marking the optimal split
func (w *SweepWriter) Export(sweep *design.SweepResult) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	// Ensure Sheet1 exists and is active.
	sheet := "Sheet1"
	if idx, err := f.GetSheetIndex(sheet); err != nil || idx == -1 {
		idx, err := f.NewSheet(sheet)
		if err != nil {
			return nil, apperrors.ExportError(err)
		}
		f.SetActiveSheet(idx)
	}

	headers := []string{"Treatment %", valueHeader(sweep.Mode), "Treatment Group", "Control Group"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, apperrors.ExportError(err)
		}
	}

	for r, p := range sweep.Points {
		rowIdx := r + 2
		values := []interface{}{p.TreatmentPercent, p.Value, p.Groups.Treatment, p.Groups.Control}
		for c, v := range values {
			cell, _ := excelize.CoordinatesToCellName(c+1, rowIdx)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, apperrors.ExportError(err)
			}
		}
	}

	noteRow := len(sweep.Points) + 3
	cell, _ := excelize.CoordinatesToCellName(1, noteRow)
	note := fmt.Sprintf("Optimal treatment percentage: %g%% (value %g)",
		sweep.Optimal.TreatmentPercent, sweep.Optimal.Value)
	if err := f.SetCellValue(sheet, cell, note); err != nil {
		return nil, apperrors.ExportError(err)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, apperrors.ExportError(err)
	}
	return buf.Bytes(), nil
}
