// Package clean implements the cleaning pipeline: a fixed-order sequence of
// toggleable transformations over a Table.
package clean

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/jgrady/scrub/pkg/scrub"
)

// MissingPolicy selects how rows with missing cells are handled.
type MissingPolicy string

const (
	MissingNone MissingPolicy = "none"
	MissingDrop MissingPolicy = "drop"
	MissingFill MissingPolicy = "fill"
)

// Options is the full cleaning configuration. Steps run in a fixed order
// regardless of field order: deduplicate, missing-value handling, rename,
// find/replace, whitespace trim, type conversion.
type Options struct {
	RemoveDuplicates bool                         `json:"remove_duplicates" yaml:"remove_duplicates" toml:"remove_duplicates"`
	HandleMissing    MissingPolicy                `json:"handle_missing" yaml:"handle_missing" toml:"handle_missing"`
	FillValue        any                          `json:"fill_value" yaml:"fill_value" toml:"fill_value"`
	ColumnRenames    map[string]string            `json:"column_renames" yaml:"column_renames" toml:"column_renames"`
	FindReplace      map[string]map[string]string `json:"find_replace" yaml:"find_replace" toml:"find_replace"`
	TrimWhitespace   bool                         `json:"trim_whitespace" yaml:"trim_whitespace" toml:"trim_whitespace"`
	TypeConversions  map[string]string            `json:"type_conversions" yaml:"type_conversions" toml:"type_conversions"`
	MergeSourceIDs   []string                     `json:"merge_source_ids" yaml:"merge_source_ids" toml:"merge_source_ids"`
}

// Validate checks the options at the boundary, before any step runs.
func (o *Options) Validate() error {
	switch o.HandleMissing {
	case "", MissingNone, MissingDrop, MissingFill:
	default:
		return fmt.Errorf("invalid handle_missing policy %q", o.HandleMissing)
	}
	if o.HandleMissing == MissingFill {
		if o.FillValue == nil {
			return fmt.Errorf("handle_missing=fill requires fill_value")
		}
		switch o.FillValue.(type) {
		case bool, string, int, int64, float64:
		default:
			return fmt.Errorf("fill_value must be a scalar, got %T", o.FillValue)
		}
	}
	return nil
}

// Decode parses a JSON options document. Unknown fields are rejected rather
// than silently ignored.
func Decode(b []byte) (*Options, error) {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.DisallowUnknownFields()
	var o Options
	if err := dec.Decode(&o); err != nil {
		return nil, fmt.Errorf("decode cleaning options: %w", err)
	}
	if err := o.Validate(); err != nil {
		return nil, err
	}
	return &o, nil
}

// Build assembles the pipeline for the given options. Disabled steps are
// simply not added.
func Build(o *Options) (*scrub.Pipeline, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	p := scrub.NewPipeline()
	if o.RemoveDuplicates {
		p.Add(&Dedupe{})
	}
	switch o.HandleMissing {
	case MissingDrop:
		p.Add(&DropMissing{})
	case MissingFill:
		p.Add(&FillMissing{Value: o.FillValue})
	}
	if len(o.ColumnRenames) > 0 {
		p.Add(&Rename{Mapping: o.ColumnRenames})
	}
	if len(o.FindReplace) > 0 {
		p.Add(&Replace{Rules: o.FindReplace})
	}
	if o.TrimWhitespace {
		p.Add(&Trim{})
	}
	if len(o.TypeConversions) > 0 {
		p.Add(&Convert{Targets: o.TypeConversions})
	}
	return p, nil
}
