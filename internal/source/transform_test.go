package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magpierre/dtb/datatable"
)

func TestJoinList(t *testing.T) {
	rec := datatable.NewRecord([]string{"tags"}, map[string]interface{}{
		"tags": []interface{}{"history", "american", float64(3)},
	})
	out, err := JoinList("tags", ", ")(rec)
	require.NoError(t, err)

	got, _ := out.Get("tags")
	assert.Equal(t, "history, american, 3", got)

	// the input record is left untouched
	orig, _ := rec.Get("tags")
	assert.IsType(t, []interface{}{}, orig)
}

func TestJoinList_NonArrayUntouched(t *testing.T) {
	rec := datatable.NewRecord([]string{"tags", "id"}, map[string]interface{}{"tags": "solo", "id": float64(1)})
	out, err := JoinList("tags", ", ")(rec)
	require.NoError(t, err)
	assert.Equal(t, rec, out)

	missing := datatable.NewRecord([]string{"id"}, map[string]interface{}{"id": float64(1)})
	out, err = JoinList("tags", ", ")(missing)
	require.NoError(t, err)
	assert.Equal(t, missing, out)
}

const upperTitleScript = `package transform

import "strings"

func Transform(rec map[string]interface{}) map[string]interface{} {
	if s, ok := rec["title"].(string); ok {
		rec["title"] = strings.ToUpper(s)
	}
	rec["source"] = "script"
	delete(rec, "drop")
	return rec
}
`

func TestNewScriptTransform(t *testing.T) {
	tf, err := NewScriptTransform(upperTitleScript)
	require.NoError(t, err)

	rec := datatable.NewRecord([]string{"id", "title", "drop"}, map[string]interface{}{
		"id": float64(1), "title": "hello", "drop": true,
	})
	out, err := tf(rec)
	require.NoError(t, err)

	assert.Equal(t, []string{"id", "title", "source"}, out.Fields)
	title, _ := out.Get("title")
	assert.Equal(t, "HELLO", title)

	orig, _ := rec.Get("title")
	assert.Equal(t, "hello", orig)
}

func TestNewScriptTransform_CompileError(t *testing.T) {
	_, err := NewScriptTransform("package transform\n\nfunc Transform(")
	assert.Error(t, err)
}

func TestNewScriptTransform_WrongSignature(t *testing.T) {
	_, err := NewScriptTransform("package transform\n\nfunc Transform(s string) string { return s }\n")
	assert.ErrorContains(t, err, "Transform has type")
}

func TestMergeFields(t *testing.T) {
	got := mergeFields([]string{"b", "a", "gone"}, map[string]interface{}{"a": 1, "b": 2, "z": 3, "c": 4})
	assert.Equal(t, []string{"b", "a", "c", "z"}, got)
}
