package schema

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

// ErrInvalidReport marks scan reports that parsed but describe an impossible profile.
var ErrInvalidReport = errors.New("invalid scan report")

// LoadScanReport reads a serialized scan report (yaml or json, picked by extension).
// Observed values keep their literal text: 01234 stays "01234" and an unquoted
// 2020-01-31 stays a string.
//
//	tables:
//	  - name: patients.csv
//	    row_count: 1000
//	    rows_checked: 1000
//	    fields:
//	      - name: sex
//	        type: VarChar
//	        max_length: 1
//	        value_counts:
//	          - {value: M, frequency: 7}
//	          - {value: F, frequency: 3}
func LoadScanReport(path string) (*Schema, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".json":
	default:
		return nil, errors.Newf("unsupported scan report format %q (expected .yaml, .yml or .json)", path)
	}

	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read scan report %s", path)
	}

	// JSON is a subset of YAML, so one decoder serves both.
	var s Schema
	if err := yaml.Unmarshal(buf, &s); err != nil {
		return nil, errors.Wrapf(err, "failed to decode scan report %s", path)
	}
	if err := s.Validate(); err != nil {
		return nil, errors.Wrapf(err, "scan report %s", path)
	}
	return &s, nil
}

// Validate checks the invariants the engine relies on.
func (s *Schema) Validate() error {
	if len(s.Tables) == 0 {
		return errors.Mark(errors.New("no tables"), ErrInvalidReport)
	}
	for i, t := range s.Tables {
		if t == nil || t.Name == "" {
			return errors.Mark(errors.Newf("table #%d has no name", i+1), ErrInvalidReport)
		}
		if t.RowCount < 0 || t.RowsCheckedCount < 0 {
			return errors.Mark(errors.Newf("table %s has a negative row count", t.Name), ErrInvalidReport)
		}
		for j, f := range t.Fields {
			if f == nil || f.Name == "" {
				return errors.Mark(errors.Newf("table %s: field #%d has no name", t.Name, j+1), ErrInvalidReport)
			}
			for _, vc := range f.ValueCounts {
				if vc.Frequency < 0 {
					return errors.Mark(errors.Newf("table %s: field %s has a negative frequency for %q", t.Name, f.Name, vc.Value), ErrInvalidReport)
				}
			}
		}
	}
	return nil
}
