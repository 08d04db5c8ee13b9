package schema

import "strings"

// Schema is the parsed scan report: the tables of the profiled source in report order.
type Schema struct {
	Tables []*Table `yaml:"tables"`
}

type Table struct {
	Name             string   `yaml:"name"`
	Fields           []*Field `yaml:"fields"`
	RowCount         int64    `yaml:"row_count"`
	RowsCheckedCount int64    `yaml:"rows_checked"`
}

type Field struct {
	Name        string      `yaml:"name"`
	Type        string      `yaml:"type"` // raw label from the scan report (VarChar, Integer, Date ...)
	MaxLength   int         `yaml:"max_length"`
	ValueCounts ValueCounts `yaml:"value_counts"`
}

// ValueCount is one distinct observed value and how often it was seen.
type ValueCount struct {
	Value     string `yaml:"value"`
	Frequency int    `yaml:"frequency"`
}

// ValueCounts keeps the scan report order, which matters for primary key cycling.
type ValueCounts []ValueCount

func (v ValueCounts) Len() int {
	return len(v)
}

func (v ValueCounts) IsEmpty() bool {
	return len(v) == 0
}

// Values returns the distinct values in order, ignoring frequencies.
func (v ValueCounts) Values() []string {
	values := make([]string, len(v))
	for i, vc := range v {
		values[i] = vc.Value
	}
	return values
}

// IsEmpty reports whether the scan saw no rows for the table.
func (t *Table) IsEmpty() bool {
	return t.RowCount == 0 || t.RowsCheckedCount == 0
}

func (t *Table) FieldNames() []string {
	names := make([]string, len(t.Fields))
	for i, f := range t.Fields {
		names[i] = f.Name
	}
	return names
}

// Kind classifies the field's type label.
func (f *Field) Kind() TypeKind {
	return Classify(f.Type)
}

// Filter returns the tables whose names match one of the requested names.
// Matching ignores case and a trailing ".csv" on either side.
func (s *Schema) Filter(names []string) []*Table {
	if len(names) == 0 {
		return s.Tables
	}
	req := make(map[string]bool)
	for _, n := range names {
		req[matchKey(n)] = true
	}
	var tables []*Table
	for _, t := range s.Tables {
		if req[matchKey(t.Name)] {
			tables = append(tables, t)
		}
	}
	return tables
}

func matchKey(name string) string {
	return strings.TrimSuffix(strings.ToLower(strings.TrimSpace(name)), ".csv")
}
