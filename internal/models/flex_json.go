package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"
)

// newStatsFieldMap caches JSON tag -> struct field index mappings
var (
	newStatsFieldMap     map[string]int
	newStatsFieldMapOnce sync.Once
)

func getNewStatsFieldMap() map[string]int {
	newStatsFieldMapOnce.Do(func() {
		t := reflect.TypeOf(NewStats{})
		newStatsFieldMap = make(map[string]int, t.NumField())
		for i := 0; i < t.NumField(); i++ {
			tag := t.Field(i).Tag.Get("json")
			if tag == "" || tag == "-" {
				continue
			}
			name := strings.Split(tag, ",")[0]
			newStatsFieldMap[name] = i
		}
	})
	return newStatsFieldMap
}

// UnmarshalJSON accepts both native JSON types and string-encoded values.
// Game server plugins often send every counter as a quoted string and the
// steam id as a bare number; both are coerced to the field's Go type.
func (n *NewStats) UnmarshalJSON(data []byte) error {
	// Alias prevents infinite recursion
	type Alias NewStats
	a := (*Alias)(n)

	// Fast path: try standard unmarshal (works when all types match natively)
	if err := json.Unmarshal(data, a); err == nil {
		return nil
	}

	// Slow path: field-by-field with coercion
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("flex unmarshal: %w", err)
	}

	*n = NewStats{}
	fieldMap := getNewStatsFieldMap()
	v := reflect.ValueOf(a).Elem()

	for key, rawVal := range raw {
		idx, ok := fieldMap[key]
		if !ok {
			continue
		}

		fv := v.Field(idx)
		if !fv.CanSet() {
			continue
		}

		// Try direct unmarshal first
		ptr := reflect.New(fv.Type())
		if err := json.Unmarshal(rawVal, ptr.Interface()); err == nil {
			fv.Set(ptr.Elem())
			continue
		}

		if err := coerceRawToField(fv, rawVal); err != nil {
			return fmt.Errorf("flex unmarshal %s: %w", key, err)
		}
	}

	return nil
}

// coerceRawToField handles the two mismatches seen in the wild: a quoted
// number for a numeric field, and a bare number for a string field.
func coerceRawToField(fv reflect.Value, rawVal json.RawMessage) error {
	rawVal = bytes.TrimSpace(rawVal)
	var s string
	switch {
	case len(rawVal) > 1 && rawVal[0] == '"':
		if err := json.Unmarshal(rawVal, &s); err != nil {
			return err
		}
	case len(rawVal) > 0 && (rawVal[0] == '-' || (rawVal[0] >= '0' && rawVal[0] <= '9')):
		s = string(rawVal)
	default:
		return fmt.Errorf("unsupported value %s", string(rawVal))
	}

	if s == "" {
		return nil
	}

	target := fv
	if fv.Kind() == reflect.Ptr {
		target = reflect.New(fv.Type().Elem()).Elem()
	}
	if err := coerceStringToField(target, s); err != nil {
		return err
	}
	if fv.Kind() == reflect.Ptr {
		p := reflect.New(target.Type())
		p.Elem().Set(target)
		fv.Set(p)
	}
	return nil
}

// coerceStringToField converts a string value to the field's native type.
func coerceStringToField(fv reflect.Value, s string) error {
	switch fv.Kind() {
	case reflect.Float32, reflect.Float64:
		n, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return err
		}
		fv.SetFloat(n)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		// ParseFloat handles "28.0" → truncate to int
		n, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return err
		}
		fv.SetInt(int64(n))
	case reflect.String:
		fv.SetString(s)
	default:
		return fmt.Errorf("unsupported kind %s", fv.Kind())
	}
	return nil
}

// UnmarshalJSON reads an object of column -> number. Values may be numbers,
// numeric strings or null.
func (d *RankDelta) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("rank delta: %w", err)
	}

	out := make(RankDelta, len(raw))
	for key, rawVal := range raw {
		rawVal = bytes.TrimSpace(rawVal)
		if bytes.Equal(rawVal, []byte("null")) {
			out[key] = nil
			continue
		}

		var f float64
		if err := json.Unmarshal(rawVal, &f); err == nil {
			out[key] = &f
			continue
		}

		var s string
		if err := json.Unmarshal(rawVal, &s); err != nil {
			return fmt.Errorf("rank delta %s: unsupported value %s", key, string(rawVal))
		}
		s = strings.TrimSpace(s)
		if s == "" {
			out[key] = nil
			continue
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("rank delta %s: %w", key, err)
		}
		out[key] = &f
	}

	*d = out
	return nil
}
