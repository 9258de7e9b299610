package toml

import (
	"fmt"
	"math"
	"reflect"
	"strings"
)

// Unmarshal parses TOML data into the struct pointed to by v.
// Keys without a matching field are ignored.
func Unmarshal(data []byte, v any) error {
	m, err := NewParser(data).Parse()
	if err != nil {
		return err
	}
	return Decode(m, v)
}

// Decode copies a parsed table into the struct pointed to by v.
// Fields match by `toml:"name"` tag, falling back to the field name; `toml:"-"` skips a field.
func Decode(data map[string]any, v any) error {
	val := reflect.ValueOf(v)
	if val.Kind() != reflect.Pointer || val.IsNil() {
		return fmt.Errorf("toml: decode target must be a non-nil pointer, got %T", v)
	}
	return decodeValue(data, val.Elem(), "")
}

func decodeValue(data any, val reflect.Value, path string) error {
	switch val.Kind() {
	case reflect.Pointer:
		elem := reflect.New(val.Type().Elem())
		if err := decodeValue(data, elem.Elem(), path); err != nil {
			return err
		}
		val.Set(elem)

	case reflect.Struct:
		m, ok := data.(map[string]any)
		if !ok {
			return typeError(path, "table", data)
		}
		return decodeStruct(m, val, path)

	case reflect.Slice:
		arr, ok := data.([]any)
		if !ok {
			return typeError(path, "array", data)
		}
		out := reflect.MakeSlice(val.Type(), len(arr), len(arr))
		for i, item := range arr {
			if err := decodeValue(item, out.Index(i), fmt.Sprintf("%s[%d]", path, i)); err != nil {
				return err
			}
		}
		val.Set(out)

	case reflect.String:
		s, ok := data.(string)
		if !ok {
			return typeError(path, "string", data)
		}
		val.SetString(s)

	case reflect.Bool:
		b, ok := data.(bool)
		if !ok {
			return typeError(path, "boolean", data)
		}
		val.SetBool(b)

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, ok := data.(int64)
		if !ok {
			return typeError(path, "integer", data)
		}
		if val.OverflowInt(n) {
			return fmt.Errorf("toml: %s: %d overflows %s", path, n, val.Type())
		}
		val.SetInt(n)

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, ok := data.(int64)
		if !ok {
			return typeError(path, "integer", data)
		}
		if n < 0 || val.OverflowUint(uint64(n)) {
			return fmt.Errorf("toml: %s: %d out of range for %s", path, n, val.Type())
		}
		val.SetUint(uint64(n))

	case reflect.Float32, reflect.Float64:
		var f float64
		switch x := data.(type) {
		case float64:
			f = x
		case int64:
			f = float64(x)
		default:
			return typeError(path, "float", data)
		}
		if val.Kind() == reflect.Float32 && math.Abs(f) > math.MaxFloat32 {
			return fmt.Errorf("toml: %s: %g overflows float32", path, f)
		}
		val.SetFloat(f)

	case reflect.Interface:
		if data != nil {
			val.Set(reflect.ValueOf(data))
		}

	default:
		return fmt.Errorf("toml: %s: unsupported field type %s", path, val.Type())
	}
	return nil
}

func decodeStruct(m map[string]any, val reflect.Value, path string) error {
	typ := val.Type()
	for i := 0; i < typ.NumField(); i++ {
		sf := typ.Field(i)
		if !sf.IsExported() {
			continue
		}

		key := sf.Name
		if tag := sf.Tag.Get("toml"); tag != "" {
			name, _, _ := strings.Cut(tag, ",")
			if name == "-" {
				continue
			}
			if name != "" {
				key = name
			}
		}

		data, ok := m[key]
		if !ok {
			continue
		}
		if err := decodeValue(data, val.Field(i), join(path, key)); err != nil {
			return err
		}
	}
	return nil
}

func join(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

func typeError(path, want string, got any) error {
	if path == "" {
		path = "document"
	}
	return fmt.Errorf("toml: %s: expected %s, got %T", path, want, got)
}
