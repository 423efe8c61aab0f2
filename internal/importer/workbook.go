package importer

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ParseWorkbook reads the first sheet of an .xlsx file and runs each row
// through the same per-line validation as Parse, so spreadsheet imports obey
// identical rules. The returned error covers file and sheet level failures
// only; row problems stay inside the per-line results.
func ParseWorkbook(path string, firstRowHeader bool) ([]LineResult, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook %s has no sheets", path)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}

	var kept [][]string
	for _, row := range rows {
		if rowBlank(row) {
			continue
		}
		kept = append(kept, row)
	}
	if firstRowHeader && len(kept) > 0 {
		kept = kept[1:]
	}

	results := make([]LineResult, 0, len(kept))
	for _, row := range kept {
		raw := strings.Join(row, ",")
		results = append(results, parseFields(raw, splitColumns(raw)))
	}
	return results, nil
}

func rowBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
