package data

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"segscore/domain/core"
	"segscore/domain/dataset"
)

// Load reads a dataset from a file or a directory. Directories are
// walked in name order and every recognized file is merged into one
// dataset; unrecognized extensions are skipped. An explicit format
// overrides extension detection for single files.
func Load(path string, format Format) (*dataset.Dataset, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if !info.IsDir() {
		return loadFile(path, format)
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", path, err)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	ds := dataset.New()
	loaded := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		full := filepath.Join(path, entry.Name())
		detected, err := DetectFormat(full)
		if err != nil {
			continue
		}
		part, err := loadFile(full, detected)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", full, err)
		}
		ds.Merge(part)
		loaded++
	}
	if loaded == 0 {
		return nil, fmt.Errorf("directory %s: %w", path, core.ErrEmptyDataset)
	}
	return ds, nil
}

func loadFile(path string, format Format) (*dataset.Dataset, error) {
	if format == "" {
		detected, err := DetectFormat(path)
		if err != nil {
			return nil, err
		}
		format = detected
	}

	switch format {
	case FormatExcel:
		return ReadExcel(path)
	case FormatJSON, FormatTSV:
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", path, err)
		}
		defer f.Close()
		if format == FormatJSON {
			return ReadJSON(f)
		}
		return ReadTSV(f)
	default:
		return nil, fmt.Errorf("%q: %w", format, core.ErrUnknownFormat)
	}
}

// Save writes a dataset to path in the given format. Excel output is not
// supported.
func Save(path string, ds *dataset.Dataset, format Format) error {
	if format == FormatExcel {
		return errors.New("xlsx output is not supported")
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	switch format {
	case FormatJSON:
		return WriteJSON(f, ds)
	case FormatTSV:
		return WriteTSV(f, ds)
	default:
		return fmt.Errorf("%q: %w", format, core.ErrUnknownFormat)
	}
}
