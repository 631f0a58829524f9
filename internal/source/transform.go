package source

import (
	"fmt"
	"sort"
	"strings"

	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"

	"github.com/magpierre/dtb/datatable"
)

// Transform rewrites a fetched record before it reaches the table.
type Transform func(rec datatable.Record) (datatable.Record, error)

// JoinList turns an array held by field into one string joined with sep.
// Records without the field, or where it is not an array, pass unchanged.
func JoinList(field, sep string) Transform {
	return func(rec datatable.Record) (datatable.Record, error) {
		raw, ok := rec.Get(field)
		if !ok {
			return rec, nil
		}
		items, ok := raw.([]interface{})
		if !ok {
			return rec, nil
		}
		parts := make([]string, len(items))
		for i, item := range items {
			parts[i] = fmt.Sprintf("%v", item)
		}

		values := copyValues(rec.Values)
		values[field] = strings.Join(parts, sep)
		return datatable.NewRecord(rec.Fields, values), nil
	}
}

// scriptPackage is the package name a transform script must declare.
const scriptPackage = "transform"

// NewScriptTransform compiles Go source with the yaegi interpreter. The
// source must declare package transform and a function
//
//	func Transform(map[string]interface{}) map[string]interface{}
//
// Keys the script removes disappear from the record; keys it adds are
// appended after the existing fields in name order.
func NewScriptTransform(src string) (Transform, error) {
	i := interp.New(interp.Options{})
	if err := i.Use(stdlib.Symbols); err != nil {
		return nil, fmt.Errorf("failed to load stdlib symbols: %w", err)
	}
	if _, err := i.Eval(src); err != nil {
		return nil, fmt.Errorf("failed to compile transform script: %w", err)
	}
	v, err := i.Eval(scriptPackage + ".Transform")
	if err != nil {
		return nil, fmt.Errorf("transform script has no %s.Transform: %w", scriptPackage, err)
	}
	fn, ok := v.Interface().(func(map[string]interface{}) map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("transform script: Transform has type %s", v.Type())
	}

	return func(rec datatable.Record) (out datatable.Record, err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("transform script panicked: %v", r)
			}
		}()
		values := fn(copyValues(rec.Values))
		if values == nil {
			values = map[string]interface{}{}
		}
		return datatable.NewRecord(mergeFields(rec.Fields, values), values), nil
	}, nil
}

func copyValues(src map[string]interface{}) map[string]interface{} {
	dst := make(map[string]interface{}, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

// mergeFields keeps the surviving fields in their order and appends new
// keys sorted by name.
func mergeFields(fields []string, values map[string]interface{}) []string {
	out := make([]string, 0, len(values))
	known := make(map[string]bool, len(fields))
	for _, f := range fields {
		known[f] = true
		if _, ok := values[f]; ok {
			out = append(out, f)
		}
	}
	var added []string
	for k := range values {
		if !known[k] {
			added = append(added, k)
		}
	}
	sort.Strings(added)
	return append(out, added...)
}
