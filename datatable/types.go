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

// Package datatable provides the tabular model behind the data table view:
// typed cell values, the DataSource contract, a sort/filter/paginate engine
// and the TableModel that ties them to a ViewState.
package datatable

import (
	"fmt"
	"strconv"
	"strings"
)

// DataType represents the type of data in a column.
type DataType int

const (
	// TypeString represents string data.
	TypeString DataType = iota
	// TypeInt represents whole numbers.
	TypeInt
	// TypeFloat represents fractional numbers.
	TypeFloat
	// TypeBool represents boolean data.
	TypeBool
	// TypeList represents a JSON array.
	TypeList
	// TypeStruct represents a nested JSON object.
	TypeStruct
)

// String returns the string representation of a DataType.
func (dt DataType) String() string {
	switch dt {
	case TypeString:
		return "String"
	case TypeInt:
		return "Int"
	case TypeFloat:
		return "Float"
	case TypeBool:
		return "Bool"
	case TypeList:
		return "List"
	case TypeStruct:
		return "Struct"
	default:
		return fmt.Sprintf("Unknown(%d)", dt)
	}
}

// IsNumeric reports whether values of this type compare as numbers.
func (dt DataType) IsNumeric() bool {
	return dt == TypeInt || dt == TypeFloat
}

// Value is a typed container for cell values.
type Value struct {
	// Raw holds the underlying value: string, int64, float64, bool,
	// []interface{} or map[string]interface{}.
	Raw interface{}

	Type   DataType
	IsNull bool

	// Formatted is the display form, computed once at construction.
	Formatted string
}

// NewValue creates a new Value from a raw value and type.
func NewValue(raw interface{}, dataType DataType) Value {
	if raw == nil {
		return NewNullValue(dataType)
	}
	return Value{
		Raw:       raw,
		Type:      dataType,
		Formatted: formatValue(raw),
	}
}

// NewNullValue creates a null value of the specified type.
func NewNullValue(dataType DataType) Value {
	return Value{Type: dataType, IsNull: true}
}

// Float returns the numeric form of the value and whether it has one.
func (v Value) Float() (float64, bool) {
	switch n := v.Raw.(type) {
	case int64:
		return float64(n), true
	case int:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

func formatValue(raw interface{}) string {
	switch v := raw.(type) {
	case string:
		return v
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	case []interface{}:
		parts := make([]string, len(v))
		for i, item := range v {
			parts[i] = fmt.Sprintf("%v", item)
		}
		return strings.Join(parts, ", ")
	default:
		return fmt.Sprintf("%v", raw)
	}
}

// TypeOf infers the DataType of a decoded JSON value.
// Whole float64 numbers are reported as TypeInt.
func TypeOf(raw interface{}) DataType {
	switch v := raw.(type) {
	case int, int64:
		return TypeInt
	case float64:
		if v == float64(int64(v)) {
			return TypeInt
		}
		return TypeFloat
	case bool:
		return TypeBool
	case []interface{}:
		return TypeList
	case map[string]interface{}:
		return TypeStruct
	default:
		return TypeString
	}
}

// Record is one fetched item: field names in document order plus their values.
type Record struct {
	Fields []string
	Values map[string]interface{}
}

// NewRecord builds a Record from an ordered field list and a value map.
func NewRecord(fields []string, values map[string]interface{}) Record {
	return Record{Fields: fields, Values: values}
}

// Get returns the value stored under name.
func (r Record) Get(name string) (interface{}, bool) {
	v, ok := r.Values[name]
	return v, ok
}

// SortDirection specifies the direction of sorting.
type SortDirection int

const (
	// SortNone indicates no sorting.
	SortNone SortDirection = iota
	// SortAscending indicates ascending sort order.
	SortAscending
	// SortDescending indicates descending sort order.
	SortDescending
)

// String returns the string representation of a SortDirection.
func (sd SortDirection) String() string {
	switch sd {
	case SortNone:
		return "None"
	case SortAscending:
		return "Ascending"
	case SortDescending:
		return "Descending"
	default:
		return fmt.Sprintf("Unknown(%d)", sd)
	}
}

// Next returns the direction that follows sd when a header is activated
// again: None -> Ascending -> Descending -> None.
func (sd SortDirection) Next() SortDirection {
	switch sd {
	case SortNone:
		return SortAscending
	case SortAscending:
		return SortDescending
	default:
		return SortNone
	}
}

// SortState represents the current sorting configuration.
type SortState struct {
	// Column is the index of the sorted column (-1 if unsorted).
	Column    int
	Direction SortDirection
}

// Unsorted is the SortState of a table with no active sort.
var Unsorted = SortState{Column: -1, Direction: SortNone}

// IsSorted returns true if this state represents an active sort.
func (s SortState) IsSorted() bool {
	return s.Column >= 0 && s.Direction != SortNone
}

// DirectionOf returns the direction applied to col.
func (s SortState) DirectionOf(col int) SortDirection {
	if s.IsSorted() && s.Column == col {
		return s.Direction
	}
	return SortNone
}
