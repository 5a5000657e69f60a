package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValue_String(t *testing.T) {
	tests := []struct {
		name string
		raw  any
		want string
	}{
		{"null", nil, ""},
		{"text", "hello", "hello"},
		{"integer", int64(42), "42"},
		{"float", 3.5, "3.5"},
		{"bytes copied to text", []byte("blob"), "blob"},
		{"bool", true, "true"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewValue(tt.raw).String())
		})
	}
}

func TestValue_IsNull(t *testing.T) {
	assert.True(t, NewValue(nil).IsNull())
	assert.False(t, NewValue("").IsNull(), "empty string is not NULL")
}

func TestValue_Float(t *testing.T) {
	tests := []struct {
		name   string
		raw    any
		want   float64
		wantOK bool
	}{
		{"integer", int64(7), 7, true},
		{"float", 2.25, 2.25, true},
		{"numeric text", "12.5", 12.5, true},
		{"non-numeric text", "north", 0, false},
		{"null", nil, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NewValue(tt.raw).Float()
			assert.Equal(t, tt.wantOK, ok)
			if ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestResult_ColumnIndex(t *testing.T) {
	res := &Result{Columns: []string{"region", "total"}}
	assert.Equal(t, 0, res.ColumnIndex("region"))
	assert.Equal(t, 1, res.ColumnIndex("total"))
	assert.Equal(t, -1, res.ColumnIndex("missing"))

	var nilRes *Result
	assert.Equal(t, -1, nilRes.ColumnIndex("region"))
	assert.True(t, nilRes.Empty())
}

func TestResult_Column(t *testing.T) {
	res := &Result{
		Columns: []string{"region", "total"},
		Rows: [][]Value{
			{NewValue("north"), NewValue(int64(200))},
			{NewValue("south"), NewValue(nil)},
		},
	}

	totals := res.Column("total")
	assert.Len(t, totals, 2)
	assert.Equal(t, "200", totals[0].String())
	assert.True(t, totals[1].IsNull())

	assert.Nil(t, res.Column("missing"))
}
