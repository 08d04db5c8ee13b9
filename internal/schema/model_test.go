package schema_test

import (
	"testing"

	"synth-pump/internal/schema"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		label string
		want  schema.TypeKind
	}{
		{"VarChar", schema.TypeChar},
		{"varchar2", schema.TypeChar},
		{"character varying", schema.TypeChar},
		{"TEXT", schema.TypeChar},
		{"Integer", schema.TypeInteger},
		{"bigint", schema.TypeInteger},
		{"Date", schema.TypeDate},
		{"timestamp", schema.TypeDate},
		{"Real", schema.TypeReal},
		{"numeric", schema.TypeReal},
		{"Empty", schema.TypeEmpty},
		{"blob", schema.TypeUnknown},
		{"", schema.TypeUnknown},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, schema.Classify(tt.label), tt.label)
	}
}

func TestTableIsEmpty(t *testing.T) {
	assert.False(t, (&schema.Table{RowCount: 3, RowsCheckedCount: 3}).IsEmpty())
	assert.True(t, (&schema.Table{RowCount: 0, RowsCheckedCount: 3}).IsEmpty())
	assert.True(t, (&schema.Table{RowCount: 3, RowsCheckedCount: 0}).IsEmpty())
}

func TestValueCounts(t *testing.T) {
	vc := schema.ValueCounts{{Value: "b", Frequency: 1}, {Value: "a", Frequency: 9}}
	assert.Equal(t, []string{"b", "a"}, vc.Values())
	assert.Equal(t, 2, vc.Len())
	assert.False(t, vc.IsEmpty())
	assert.True(t, schema.ValueCounts(nil).IsEmpty())
}

func TestFieldNames(t *testing.T) {
	table := &schema.Table{Fields: []*schema.Field{{Name: "id"}, {Name: "sex"}}}
	assert.Equal(t, []string{"id", "sex"}, table.FieldNames())
}

func TestFilter(t *testing.T) {
	s := &schema.Schema{Tables: []*schema.Table{
		{Name: "person.csv"},
		{Name: "VISIT"},
		{Name: "drug"},
	}}

	assert.Len(t, s.Filter(nil), 3)

	var names []string
	for _, table := range s.Filter([]string{"visit", "Person"}) {
		names = append(names, table.Name)
	}
	assert.Equal(t, []string{"person.csv", "VISIT"}, names)

	assert.Empty(t, s.Filter([]string{"missing"}))
}
