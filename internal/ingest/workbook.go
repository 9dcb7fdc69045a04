package ingest

import (
	"bytes"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/Veraticus/billmerge/internal/billparse"
	"github.com/Veraticus/billmerge/internal/common"
)

// readGrid loads the first sheet of a workbook as a grid of typed cells.
// Numeric cells stay numeric so date serials reach the date decoder intact.
func readGrid(data []byte) ([][]billparse.Value, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			slog.Warn("Failed to close workbook", "error", cerr)
		}
	}()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, common.ErrNoSheets
	}
	sheet := sheets[0]

	raw, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}

	grid := make([][]billparse.Value, len(raw))
	for r, cells := range raw {
		row := make([]billparse.Value, len(cells))
		for c, content := range cells {
			row[c] = typedCell(f, sheet, c+1, r+1, content)
		}
		grid[r] = row
	}
	return grid, nil
}

func typedCell(f *excelize.File, sheet string, col, row int, content string) billparse.Value {
	if content == "" {
		return billparse.Empty
	}

	name, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return billparse.Text(content)
	}
	typ, err := f.GetCellType(sheet, name)
	if err != nil {
		return billparse.Text(content)
	}

	// Cells without a type attribute are numbers in the file format.
	if typ == excelize.CellTypeNumber || typ == excelize.CellTypeUnset {
		if n, perr := strconv.ParseFloat(content, 64); perr == nil {
			return billparse.Number(n)
		}
	}
	return billparse.Text(content)
}
