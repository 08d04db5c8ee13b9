package engine

import "synth-pump/internal/schema"

// Row is one synthesized record. Values line up with Fields, which follow the
// table's field order.
type Row struct {
	Fields []string
	Values []string
}

// Get returns the value generated for the named field.
func (r Row) Get(name string) (string, bool) {
	for i, f := range r.Fields {
		if f == name {
			return r.Values[i], true
		}
	}
	return "", false
}

// SynthOptions controls how rows are synthesized for every table of a run.
type SynthOptions struct {
	MaxRowsPerTable int
	FirstFieldAsKey bool
	UniformSampling bool
	Seed            int64

	// SourceFactory overrides how per-field random sources are created. Defaults to NewSource.
	SourceFactory func(seed int64) Source
}

func (o SynthOptions) source(table, field string) Source {
	seed := DeriveSeed(o.Seed, table, field)
	if o.SourceFactory != nil {
		return o.SourceFactory(seed)
	}
	return NewSource(seed)
}

// RowAssembler builds rows for one table, one generator per field.
type RowAssembler struct {
	fields     []string
	generators []*ValueGenerator
}

// NewRowAssembler creates the table's generators in field order. The first
// field is forced into key mode when FirstFieldAsKey is set.
func NewRowAssembler(table *schema.Table, opts SynthOptions) *RowAssembler {
	a := &RowAssembler{
		fields:     table.FieldNames(),
		generators: make([]*ValueGenerator, len(table.Fields)),
	}
	for i, f := range table.Fields {
		a.generators[i] = NewValueGenerator(f, GeneratorOptions{
			ForceKey: opts.FirstFieldAsKey && i == 0,
			Uniform:  opts.UniformSampling,
		}, opts.source(table.Name, f.Name))
	}
	return a
}

// Next generates one row, calling each field's generator once in field order.
func (a *RowAssembler) Next() Row {
	values := make([]string, len(a.generators))
	for i, g := range a.generators {
		values[i] = g.Generate()
	}
	return Row{Fields: a.fields, Values: values}
}

// Synthesizer drives row generation for whole tables.
type Synthesizer struct {
	opts SynthOptions
}

func NewSynthesizer(opts SynthOptions) *Synthesizer {
	return &Synthesizer{opts: opts}
}

// RowCount is the number of rows EachRow will produce for the table.
func (s *Synthesizer) RowCount(table *schema.Table) int {
	if table.IsEmpty() || s.opts.MaxRowsPerTable < 0 {
		return 0
	}
	return s.opts.MaxRowsPerTable
}

// EachRow streams the table's rows to fn and stops at the first error.
// Tables the scan saw as empty yield no rows and build no generators.
func (s *Synthesizer) EachRow(table *schema.Table, fn func(Row) error) error {
	n := s.RowCount(table)
	if n == 0 {
		return nil
	}
	a := NewRowAssembler(table, s.opts)
	for i := 0; i < n; i++ {
		if err := fn(a.Next()); err != nil {
			return err
		}
	}
	return nil
}

// GenerateRows collects every row of the table.
func (s *Synthesizer) GenerateRows(table *schema.Table) []Row {
	rows := make([]Row, 0, s.RowCount(table))
	s.EachRow(table, func(r Row) error {
		rows = append(rows, r)
		return nil
	})
	return rows
}
