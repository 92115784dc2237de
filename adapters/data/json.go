package data

import (
	"encoding/json"
	"fmt"
	"io"

	"segscore/domain/dataset"
)

// jsonDocument is the on-disk JSON shape: a segmentation type plus a
// nested item -> coder -> masses map.
type jsonDocument struct {
	SegmentationType string                                           `json:"segmentation_type"`
	Items            map[dataset.ItemID]map[dataset.Coder]dataset.Masses `json:"items"`
}

// ReadJSON decodes one JSON dataset document.
func ReadJSON(r io.Reader) (*dataset.Dataset, error) {
	var doc jsonDocument
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode dataset JSON: %w", err)
	}

	ds := dataset.New()
	if doc.SegmentationType != "" {
		ds.SegmentationType = doc.SegmentationType
	}
	for item, codings := range doc.Items {
		for coder, masses := range codings {
			ds.Add(item, coder, masses)
		}
	}
	return ds, nil
}

// WriteJSON encodes a dataset as an indented JSON document.
func WriteJSON(w io.Writer, ds *dataset.Dataset) error {
	doc := jsonDocument{
		SegmentationType: ds.SegmentationType,
		Items:            ds.Items,
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "\t")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode dataset JSON: %w", err)
	}
	return nil
}
