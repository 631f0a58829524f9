// Copyright 2025 Magnus Pierre
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package arrow converts a datatable view into an Apache Arrow table.
package arrow

import (
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/magpierre/dtb/datatable"
)

// ArrowType maps a column type to the Arrow type used to store it.
// Lists and nested objects are stored as their display text.
func ArrowType(dt datatable.DataType) arrow.DataType {
	switch dt {
	case datatable.TypeInt:
		return arrow.PrimitiveTypes.Int64
	case datatable.TypeFloat:
		return arrow.PrimitiveTypes.Float64
	case datatable.TypeBool:
		return arrow.FixedWidthTypes.Boolean
	default:
		return arrow.BinaryTypes.String
	}
}

// BuildTable copies the given rows of src, in order, into a new Arrow
// table. The caller must Release the result. A nil allocator selects the
// Go allocator.
func BuildTable(src datatable.DataSource, rows []int, mem memory.Allocator) (arrow.Table, error) {
	if src == nil {
		return nil, datatable.ErrNoDataSource
	}
	if mem == nil {
		mem = memory.NewGoAllocator()
	}

	numCols := src.ColumnCount()
	fields := make([]arrow.Field, numCols)
	for c := 0; c < numCols; c++ {
		name, err := src.ColumnName(c)
		if err != nil {
			return nil, err
		}
		dt, err := src.ColumnType(c)
		if err != nil {
			return nil, err
		}
		fields[c] = arrow.Field{Name: name, Type: ArrowType(dt), Nullable: true}
	}
	schema := arrow.NewSchema(fields, nil)

	columns := make([]arrow.Column, numCols)
	for c, field := range fields {
		builder := array.NewBuilder(mem, field.Type)
		for _, r := range rows {
			v, err := src.Cell(r, c)
			if err != nil {
				builder.Release()
				return nil, fmt.Errorf("column %s: %w", field.Name, err)
			}
			appendValue(builder, v)
		}
		arr := builder.NewArray()
		builder.Release()

		chunked := arrow.NewChunked(field.Type, []arrow.Array{arr})
		arr.Release()
		col := arrow.NewColumn(field, chunked)
		chunked.Release()
		columns[c] = *col
	}

	table := array.NewTable(schema, columns, int64(len(rows)))
	for i := range columns {
		columns[i].Release()
	}
	return table, nil
}

// appendValue appends v to b, converting it to the builder's type.
// Values that cannot be converted are appended as null.
func appendValue(b array.Builder, v datatable.Value) {
	if v.IsNull {
		b.AppendNull()
		return
	}

	switch bld := b.(type) {
	case *array.Int64Builder:
		f, ok := v.Float()
		if !ok || f != float64(int64(f)) {
			bld.AppendNull()
			return
		}
		bld.Append(int64(f))
	case *array.Float64Builder:
		f, ok := v.Float()
		if !ok {
			bld.AppendNull()
			return
		}
		bld.Append(f)
	case *array.BooleanBuilder:
		bv, ok := v.Raw.(bool)
		if !ok {
			bld.AppendNull()
			return
		}
		bld.Append(bv)
	case *array.StringBuilder:
		bld.Append(v.Formatted)
	default:
		b.AppendNull()
	}
}
