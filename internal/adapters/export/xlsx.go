package export

import (
	"errors"
	"facility-distance-service/internal/domain"
	"fmt"

	"github.com/xuri/excelize/v2"
)

const SheetName = "Distances"

var header = []any{"Facility", "Distance", "Duration"}

// WriteXLSX writes one row per facility of agg, in aggregate order, to path.
func WriteXLSX(path string, agg *domain.ResultAggregate) (err error) {
	if agg == nil {
		return errors.New("write xlsx: aggregate is nil")
	}

	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("write xlsx: close workbook: %w", cerr)
		}
	}()

	index, err := f.NewSheet(SheetName)
	if err != nil {
		return fmt.Errorf("write xlsx: new sheet: %w", err)
	}

	sw, err := f.NewStreamWriter(SheetName)
	if err != nil {
		return fmt.Errorf("write xlsx: stream writer: %w", err)
	}

	if err := sw.SetRow("A1", header); err != nil {
		return fmt.Errorf("write xlsx: header: %w", err)
	}

	for i, name := range agg.Names() {
		r, _ := agg.Get(name)
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("write xlsx: row %d: %w", i+2, err)
		}
		if err := sw.SetRow(cell, []any{name, r.Distance, r.Duration}); err != nil {
			return fmt.Errorf("write xlsx: row %d: %w", i+2, err)
		}
	}

	if err := sw.Flush(); err != nil {
		return fmt.Errorf("write xlsx: flush: %w", err)
	}

	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("write xlsx: drop default sheet: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("write xlsx: save %q: %w", path, err)
	}
	return nil
}
