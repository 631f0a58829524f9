package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magpierre/dtb/datatable"
)

var columns = []string{"id", "title"}

func row(title interface{}) []datatable.Value {
	return []datatable.Value{
		datatable.NewValue(int64(1), datatable.TypeInt),
		datatable.NewValue(title, datatable.TypeString),
	}
}

func TestColumnFilter_Evaluate(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		title interface{}
		want  bool
	}{
		{"substring", "bea", "accusamus beatae ad", true},
		{"case insensitive", "BEATAE", "accusamus beatae ad", true},
		{"no match", "zzz", "accusamus beatae ad", false},
		{"empty text matches", "", "anything", true},
		{"null cell", "a", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := NewColumnFilter("title", tt.text).Evaluate(row(tt.title), columns)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
		})
	}
}

func TestColumnFilter_MissingColumn(t *testing.T) {
	_, err := NewColumnFilter("body", "x").Evaluate(row("x"), columns)
	assert.ErrorIs(t, err, datatable.ErrColumnNotFound)
}

func TestColumnFilter_Description(t *testing.T) {
	assert.Equal(t, `title contains "abc"`, NewColumnFilter("title", "abc").Description())
}
