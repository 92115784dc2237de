// Package data reads and writes segmentation datasets in the supported
// file formats and folds multiple files into one dataset.
package data

import (
	"fmt"
	"path/filepath"
	"strings"

	"segscore/domain/core"
)

// Format identifies a dataset file format.
type Format string

const (
	FormatJSON  Format = "json"
	FormatTSV   Format = "tsv"
	FormatExcel Format = "xlsx"
)

// ParseFormat resolves a user-supplied format name.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "json":
		return FormatJSON, nil
	case "tsv":
		return FormatTSV, nil
	case "xlsx", "excel":
		return FormatExcel, nil
	default:
		return "", fmt.Errorf("%q: %w", name, core.ErrUnknownFormat)
	}
}

// DetectFormat guesses the format of a file from its extension.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".tsv", ".txt":
		return FormatTSV, nil
	case ".xlsx":
		return FormatExcel, nil
	default:
		return "", fmt.Errorf("%q: %w", path, core.ErrUnknownFormat)
	}
}
