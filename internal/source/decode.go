package source

import (
	"bytes"
	stdjson "encoding/json"
	"errors"
	"fmt"

	json "github.com/goccy/go-json"

	"github.com/magpierre/dtb/datatable"
)

// ErrShapeMismatch reports a document whose top-level shape does not match
// the configured envelope field.
var ErrShapeMismatch = errors.New("document shape does not match envelope field")

// ErrMalformedRecord reports an array element that is not a JSON object.
var ErrMalformedRecord = errors.New("record is not a JSON object")

// extractArray returns the raw array held by field, or the document itself
// when field is empty. A bare array under a non-empty field, or a missing
// field, reports ErrShapeMismatch.
func extractArray(doc []byte, field string) (stdjson.RawMessage, error) {
	trimmed := bytes.TrimSpace(doc)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty document")
	}

	if field == "" {
		if trimmed[0] != '[' {
			return nil, fmt.Errorf("%w: expected a bare array", ErrShapeMismatch)
		}
		return trimmed, nil
	}

	if trimmed[0] != '{' {
		return nil, fmt.Errorf("%w: expected an object with field %q", ErrShapeMismatch, field)
	}
	var envelope map[string]stdjson.RawMessage
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return nil, fmt.Errorf("failed to decode document: %w", err)
	}
	raw, ok := envelope[field]
	if !ok {
		return nil, fmt.Errorf("%w: field %q missing", ErrShapeMismatch, field)
	}
	return raw, nil
}

// decodeRecords decodes a JSON array of objects, keeping each object's
// key order.
func decodeRecords(raw []byte) ([]datatable.Record, error) {
	if t := bytes.TrimSpace(raw); len(t) == 0 || bytes.Equal(t, []byte("null")) {
		return []datatable.Record{}, nil
	}

	var items []stdjson.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("failed to decode records: %w", err)
	}

	records := make([]datatable.Record, 0, len(items))
	for i, item := range items {
		var values map[string]interface{}
		if err := json.Unmarshal(item, &values); err != nil || values == nil {
			return nil, fmt.Errorf("%w: index %d", ErrMalformedRecord, i)
		}
		fields, err := objectKeys(item)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		records = append(records, datatable.NewRecord(fields, values))
	}
	return records, nil
}

// objectKeys lists the keys of a JSON object in document order.
// Duplicate keys are reported once.
func objectKeys(raw []byte) ([]string, error) {
	dec := stdjson.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(stdjson.Delim); !ok || d != '{' {
		return nil, ErrMalformedRecord
	}

	var keys []string
	seen := make(map[string]bool)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, ErrMalformedRecord
		}
		var skip stdjson.RawMessage
		if err := dec.Decode(&skip); err != nil {
			return nil, err
		}
		if !seen[key] {
			seen[key] = true
			keys = append(keys, key)
		}
	}
	return keys, nil
}
