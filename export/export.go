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

// Package export writes an Arrow table as CSV, JSON or Parquet.
package export

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/parquet"
	"github.com/apache/arrow-go/v18/parquet/compress"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"
	json "github.com/goccy/go-json"
)

// ErrNoRows is returned when there is nothing to export.
var ErrNoRows = errors.New("no data to export")

// Format represents the supported export formats.
type Format int

const (
	FormatCSV Format = iota
	FormatJSON
	FormatParquet
)

// Formats lists every format in menu order.
var Formats = []Format{FormatCSV, FormatJSON, FormatParquet}

// String returns the menu label of the format.
func (f Format) String() string {
	switch f {
	case FormatCSV:
		return "CSV"
	case FormatJSON:
		return "JSON"
	case FormatParquet:
		return "Parquet"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// Ext returns the file extension, including the dot.
func (f Format) Ext() string {
	switch f {
	case FormatJSON:
		return ".json"
	case FormatParquet:
		return ".parquet"
	default:
		return ".csv"
	}
}

// FormatFromPath picks the format matching the file extension of path.
func FormatFromPath(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	for _, f := range Formats {
		if f.Ext() == ext {
			return f, nil
		}
	}
	return 0, fmt.Errorf("unsupported export extension %q", ext)
}

// Write encodes table to w in the given format.
func Write(w io.Writer, table arrow.Table, format Format) error {
	if table == nil || table.NumRows() == 0 {
		return ErrNoRows
	}
	switch format {
	case FormatCSV:
		return ToCSV(w, table)
	case FormatJSON:
		return ToJSON(w, table)
	case FormatParquet:
		return ToParquet(w, table)
	default:
		return fmt.Errorf("unsupported export format %s", format)
	}
}

// ToParquet writes the table as Snappy-compressed Parquet.
func ToParquet(w io.Writer, table arrow.Table) error {
	props := parquet.NewWriterProperties(parquet.WithCompression(compress.Codecs.Snappy))
	arrowProps := pqarrow.NewArrowWriterProperties(pqarrow.WithStoreSchema())

	writer, err := pqarrow.NewFileWriter(table.Schema(), w, props, arrowProps)
	if err != nil {
		return fmt.Errorf("failed to create parquet writer: %w", err)
	}
	if err := writer.WriteTable(table, table.NumRows()); err != nil {
		writer.Close()
		return fmt.Errorf("failed to write table to parquet: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finish parquet file: %w", err)
	}
	return nil
}

// ToCSV writes a header line followed by one line per row.
func ToCSV(w io.Writer, table arrow.Table) error {
	writer := csv.NewWriter(w)

	schema := table.Schema()
	headers := make([]string, schema.NumFields())
	for i, field := range schema.Fields() {
		headers[i] = field.Name
	}
	if err := writer.Write(headers); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	tr := array.NewTableReader(table, table.NumRows())
	defer tr.Release()

	for tr.Next() {
		rec := tr.Record()
		for rowIdx := 0; rowIdx < int(rec.NumRows()); rowIdx++ {
			row := make([]string, rec.NumCols())
			for colIdx, col := range rec.Columns() {
				row[colIdx] = formatCell(col, rowIdx)
			}
			if err := writer.Write(row); err != nil {
				return fmt.Errorf("failed to write CSV row: %w", err)
			}
		}
	}
	if err := tr.Err(); err != nil {
		return fmt.Errorf("error reading table: %w", err)
	}

	writer.Flush()
	return writer.Error()
}

// ToJSON writes the rows as an indented array of objects. Object keys
// follow the schema's column order.
func ToJSON(w io.Writer, table arrow.Table) error {
	tr := array.NewTableReader(table, table.NumRows())
	defer tr.Release()

	schema := table.Schema()
	keys := make([][]byte, schema.NumFields())
	for i, field := range schema.Fields() {
		key, err := json.Marshal(field.Name)
		if err != nil {
			return fmt.Errorf("failed to encode column name %q: %w", field.Name, err)
		}
		keys[i] = key
	}

	var buf bytes.Buffer
	buf.WriteString("[")
	first := true
	for tr.Next() {
		rec := tr.Record()
		for rowIdx := 0; rowIdx < int(rec.NumRows()); rowIdx++ {
			if !first {
				buf.WriteString(",")
			}
			first = false
			buf.WriteString("\n  {")
			for colIdx, col := range rec.Columns() {
				value, err := json.Marshal(typedCell(col, rowIdx))
				if err != nil {
					return fmt.Errorf("failed to encode JSON: %w", err)
				}
				if colIdx > 0 {
					buf.WriteString(",")
				}
				buf.WriteString("\n    ")
				buf.Write(keys[colIdx])
				buf.WriteString(": ")
				buf.Write(value)
			}
			buf.WriteString("\n  }")
		}
	}
	if err := tr.Err(); err != nil {
		return fmt.Errorf("error reading table: %w", err)
	}
	buf.WriteString("\n]\n")

	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("failed to write JSON: %w", err)
	}
	return nil
}

func formatCell(col arrow.Array, pos int) string {
	if col.IsNull(pos) {
		return ""
	}
	switch c := col.(type) {
	case *array.String:
		return c.Value(pos)
	case *array.Int64:
		return strconv.FormatInt(c.Value(pos), 10)
	case *array.Float64:
		return strconv.FormatFloat(c.Value(pos), 'f', -1, 64)
	case *array.Boolean:
		return strconv.FormatBool(c.Value(pos))
	default:
		return col.ValueStr(pos)
	}
}

func typedCell(col arrow.Array, pos int) interface{} {
	if col.IsNull(pos) {
		return nil
	}
	switch c := col.(type) {
	case *array.String:
		return c.Value(pos)
	case *array.Int64:
		return c.Value(pos)
	case *array.Float64:
		return c.Value(pos)
	case *array.Boolean:
		return c.Value(pos)
	default:
		return col.ValueStr(pos)
	}
}
