package arrow

import (
	"testing"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magpierre/dtb/adapters/slice"
	"github.com/magpierre/dtb/datatable"
)

func testSource(t *testing.T) datatable.DataSource {
	t.Helper()
	records := []datatable.Record{
		datatable.NewRecord([]string{"id", "title", "score", "ok"}, map[string]interface{}{
			"id": float64(1), "title": "one", "score": 1.5, "ok": true,
		}),
		datatable.NewRecord([]string{"id", "title", "score", "ok"}, map[string]interface{}{
			"id": float64(2), "title": nil, "score": 2.5, "ok": false,
		}),
		datatable.NewRecord([]string{"id", "title", "score", "ok"}, map[string]interface{}{
			"id": float64(3), "title": "three", "score": 3.5, "ok": true,
		}),
	}
	src, err := slice.NewFromRecords(records)
	require.NoError(t, err)
	return src
}

func TestArrowType(t *testing.T) {
	assert.Equal(t, arrow.PrimitiveTypes.Int64, ArrowType(datatable.TypeInt))
	assert.Equal(t, arrow.PrimitiveTypes.Float64, ArrowType(datatable.TypeFloat))
	assert.Equal(t, arrow.FixedWidthTypes.Boolean, ArrowType(datatable.TypeBool))
	assert.Equal(t, arrow.BinaryTypes.String, ArrowType(datatable.TypeList))
}

func TestBuildTable_RowSubsetInOrder(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	table, err := BuildTable(testSource(t), []int{2, 0}, mem)
	require.NoError(t, err)
	defer table.Release()

	assert.Equal(t, int64(2), table.NumRows())
	assert.Equal(t, int64(4), table.NumCols())
	assert.Equal(t, "id", table.Schema().Field(0).Name)

	ids := table.Column(0).Data().Chunk(0).(*array.Int64)
	assert.Equal(t, []int64{3, 1}, ids.Int64Values())

	titles := table.Column(1).Data().Chunk(0).(*array.String)
	assert.Equal(t, "three", titles.Value(0))
	assert.Equal(t, "one", titles.Value(1))

	ok := table.Column(3).Data().Chunk(0).(*array.Boolean)
	assert.True(t, ok.Value(0))
}

func TestBuildTable_Nulls(t *testing.T) {
	table, err := BuildTable(testSource(t), []int{1}, nil)
	require.NoError(t, err)
	defer table.Release()

	titles := table.Column(1).Data().Chunk(0)
	assert.True(t, titles.IsNull(0))
}

func TestBuildTable_NoSource(t *testing.T) {
	_, err := BuildTable(nil, nil, nil)
	assert.ErrorIs(t, err, datatable.ErrNoDataSource)
}

func TestBuildTable_BadRow(t *testing.T) {
	_, err := BuildTable(testSource(t), []int{7}, nil)
	assert.ErrorIs(t, err, datatable.ErrInvalidRow)
}

func TestBuildTable_MixedColumnsKeepValues(t *testing.T) {
	fields := []string{"n", "s"}
	src, err := slice.NewFromRecords([]datatable.Record{
		datatable.NewRecord(fields, map[string]interface{}{"n": float64(1), "s": float64(5)}),
		datatable.NewRecord(fields, map[string]interface{}{"n": 1.5, "s": "five"}),
	})
	require.NoError(t, err)

	table, err := BuildTable(src, []int{0, 1}, nil)
	require.NoError(t, err)
	defer table.Release()

	n, ok := table.Column(0).Data().Chunk(0).(*array.Float64)
	require.True(t, ok, "n should be a float column")
	assert.False(t, n.IsNull(1))
	assert.Equal(t, []float64{1, 1.5}, n.Float64Values())

	s, ok := table.Column(1).Data().Chunk(0).(*array.String)
	require.True(t, ok, "s should be a string column")
	assert.False(t, s.IsNull(0))
	assert.False(t, s.IsNull(1))
	assert.Equal(t, "5", s.Value(0))
	assert.Equal(t, "five", s.Value(1))
}
