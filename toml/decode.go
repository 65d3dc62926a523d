package toml

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strings"
)

// ErrUnknownKey is wrapped by UnmarshalStrict when the input holds keys no field maps to
var ErrUnknownKey = errors.New("unknown key")

// Unmarshal parses TOML data and stores the result in the value pointed to by v
// Keys without a matching field are ignored
func Unmarshal(data []byte, v any) error {
	doc, err := Parse(data)
	if err != nil {
		return err
	}
	return Decode(map[string]any(doc), v)
}

// UnmarshalStrict is Unmarshal that fails on keys without a matching struct field
func UnmarshalStrict(data []byte, v any) error {
	doc, err := Parse(data)
	if err != nil {
		return err
	}
	d := &decoder{strict: true}
	if err := d.decodeInto(map[string]any(doc), v); err != nil {
		return err
	}
	if len(d.unknown) > 0 {
		sort.Strings(d.unknown)
		return fmt.Errorf("%w: %s", ErrUnknownKey, strings.Join(d.unknown, ", "))
	}
	return nil
}

// Decode maps a parsed document onto a struct, slice or map using reflection
// Field names come from `toml` tags, falling back to the Go field name
func Decode(data any, v any) error {
	d := &decoder{}
	return d.decodeInto(data, v)
}

type decoder struct {
	strict  bool
	unknown []string
}

func (d *decoder) decodeInto(data any, v any) error {
	val := reflect.ValueOf(v)
	if val.Kind() != reflect.Ptr || val.IsNil() {
		return errors.New("toml: target must be a non-nil pointer")
	}
	return d.value(data, val.Elem(), "")
}

func join(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

func (d *decoder) value(data any, val reflect.Value, path string) error {
	if data == nil {
		return nil
	}

	switch val.Kind() {
	case reflect.Ptr:
		elem := reflect.New(val.Type().Elem())
		if err := d.value(data, elem.Elem(), path); err != nil {
			return err
		}
		val.Set(elem)

	case reflect.Struct:
		table, ok := data.(map[string]any)
		if !ok {
			return fmt.Errorf("%s: expected table, got %T", path, data)
		}
		return d.structFields(table, val, path)

	case reflect.Slice:
		items, err := asSlice(data)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		out := reflect.MakeSlice(val.Type(), len(items), len(items))
		for i, item := range items {
			if err := d.value(item, out.Index(i), fmt.Sprintf("%s[%d]", path, i)); err != nil {
				return err
			}
		}
		val.Set(out)

	case reflect.Map:
		if val.Type().Key().Kind() != reflect.String {
			return fmt.Errorf("%s: only map[string]T is supported", path)
		}
		table, ok := data.(map[string]any)
		if !ok {
			return fmt.Errorf("%s: expected table, got %T", path, data)
		}
		out := reflect.MakeMapWithSize(val.Type(), len(table))
		for k, item := range table {
			elem := reflect.New(val.Type().Elem()).Elem()
			if err := d.value(item, elem, join(path, k)); err != nil {
				return err
			}
			out.SetMapIndex(reflect.ValueOf(k).Convert(val.Type().Key()), elem)
		}
		val.Set(out)

	case reflect.Interface:
		val.Set(reflect.ValueOf(data))

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, ok := data.(int64)
		if !ok {
			return fmt.Errorf("%s: expected integer, got %T", path, data)
		}
		if val.OverflowInt(n) {
			return fmt.Errorf("%s: %d overflows %s", path, n, val.Type())
		}
		val.SetInt(n)

	case reflect.Float32, reflect.Float64:
		switch f := data.(type) {
		case float64:
			val.SetFloat(f)
		case int64:
			val.SetFloat(float64(f))
		default:
			return fmt.Errorf("%s: expected number, got %T", path, data)
		}
		if val.Kind() == reflect.Float32 && !math.IsInf(val.Float(), 0) && val.OverflowFloat(val.Float()) {
			return fmt.Errorf("%s: value overflows float32", path)
		}

	case reflect.String:
		s, ok := data.(string)
		if !ok {
			return fmt.Errorf("%s: expected string, got %T", path, data)
		}
		val.SetString(s)

	case reflect.Bool:
		b, ok := data.(bool)
		if !ok {
			return fmt.Errorf("%s: expected bool, got %T", path, data)
		}
		val.SetBool(b)

	default:
		return fmt.Errorf("%s: unsupported field type %s", path, val.Type())
	}
	return nil
}

func (d *decoder) structFields(table map[string]any, val reflect.Value, path string) error {
	typ := val.Type()
	seen := make(map[string]bool, len(table))

	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}
		key := field.Name
		if tag := field.Tag.Get("toml"); tag != "" {
			name, _, _ := strings.Cut(tag, ",")
			if name == "-" {
				continue
			}
			if name != "" {
				key = name
			}
		}

		item, ok := table[key]
		if !ok {
			continue
		}
		seen[key] = true
		if err := d.value(item, val.Field(i), join(path, key)); err != nil {
			return err
		}
	}

	if d.strict {
		for k := range table {
			if !seen[k] {
				d.unknown = append(d.unknown, join(path, k))
			}
		}
	}
	return nil
}

func asSlice(data any) ([]any, error) {
	switch s := data.(type) {
	case []any:
		return s, nil
	case []map[string]any:
		out := make([]any, len(s))
		for i, m := range s {
			out[i] = m
		}
		return out, nil
	}
	return nil, fmt.Errorf("expected array, got %T", data)
}
