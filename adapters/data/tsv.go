package data

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"segscore/domain/dataset"
)

// TSV datasets are one coding per row: coder, item, then the masses as a
// comma-separated list. A header row is recognized and skipped.

// ReadTSV decodes a tab-separated dataset.
func ReadTSV(r io.Reader) (*dataset.Dataset, error) {
	reader := csv.NewReader(r)
	reader.Comma = '\t'
	reader.FieldsPerRecord = -1

	ds := dataset.New()
	line := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read TSV: %w", err)
		}
		line++
		if line == 1 && isHeaderRow(record) {
			continue
		}
		if len(record) < 3 {
			return nil, fmt.Errorf("TSV line %d: expected coder, item, masses", line)
		}

		masses, err := parseMasses(record[2])
		if err != nil {
			return nil, fmt.Errorf("TSV line %d: %w", line, err)
		}
		ds.Add(dataset.ItemID(strings.TrimSpace(record[1])), dataset.Coder(strings.TrimSpace(record[0])), masses)
	}
	return ds, nil
}

// WriteTSV encodes a dataset as tab-separated rows with a header.
func WriteTSV(w io.Writer, ds *dataset.Dataset) error {
	writer := csv.NewWriter(w)
	writer.Comma = '\t'

	if err := writer.Write([]string{"coder", "item", "masses"}); err != nil {
		return fmt.Errorf("failed to write TSV header: %w", err)
	}
	for _, item := range ds.ItemIDs() {
		for _, coder := range ds.CodersFor(item) {
			row := []string{string(coder), string(item), formatMasses(ds.Items[item][coder])}
			if err := writer.Write(row); err != nil {
				return fmt.Errorf("failed to write TSV row: %w", err)
			}
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteResultsTSV writes an arbitrary header and rows, used for metric
// output tables.
func WriteResultsTSV(w io.Writer, header []string, rows [][]string) error {
	writer := csv.NewWriter(w)
	writer.Comma = '\t'

	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write results header: %w", err)
	}
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write results row: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}

func isHeaderRow(record []string) bool {
	return len(record) > 0 && strings.EqualFold(strings.TrimSpace(record[0]), "coder")
}

func parseMasses(field string) (dataset.Masses, error) {
	parts := strings.Split(field, ",")
	masses := make(dataset.Masses, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("invalid mass %q: %w", p, err)
		}
		masses = append(masses, n)
	}
	return masses, nil
}

func formatMasses(masses dataset.Masses) string {
	parts := make([]string, len(masses))
	for i, m := range masses {
		parts[i] = strconv.Itoa(m)
	}
	return strings.Join(parts, ",")
}
