package data

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"segscore/domain/dataset"
)

// ReadExcel decodes a dataset from the first sheet of an xlsx workbook.
// Rows follow the TSV layout: coder, item, comma-separated masses, with
// an optional header row.
func ReadExcel(path string) (*dataset.Dataset, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook %s has no sheets", path)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}

	ds := dataset.New()
	for i, row := range rows {
		if i == 0 && isHeaderRow(row) {
			continue
		}
		if len(row) < 3 {
			return nil, fmt.Errorf("sheet %s row %d: expected coder, item, masses", sheets[0], i+1)
		}
		masses, err := parseMasses(row[2])
		if err != nil {
			return nil, fmt.Errorf("sheet %s row %d: %w", sheets[0], i+1, err)
		}
		ds.Add(dataset.ItemID(row[1]), dataset.Coder(row[0]), masses)
	}
	return ds, nil
}
