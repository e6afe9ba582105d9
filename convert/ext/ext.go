// Package ext provides optional converters for large objects, arrays,
// structured and reference values, JSON documents and UUIDs.
//
// Every converter auto-applies to its (source, target) pair once
// registered, and a field may still select one by ID. Each converter
// recovers from its own decode failures, logs them at error level and
// returns the zero value of its target.
package ext

import (
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"rowmapper/convert"
	"rowmapper/logging"
)

// Converter IDs.
const (
	BlobToBytesID        = "blob-to-bytes"
	ClobToStringID       = "clob-to-string"
	ArrayToAnySliceID    = "array-to-any-slice"
	ArrayToStringSliceID = "array-to-string-slice"
	StructToAnySliceID   = "struct-to-any-slice"
	RefToAnyID           = "ref-to-any"
	JSONToMapID          = "json-to-map"
	StringToUUIDID       = "string-to-uuid"
	BytesToUUIDID        = "bytes-to-uuid"
)

// Ref is a reference value that must be dereferenced to reach its target.
type Ref interface {
	Deref() (any, error)
}

// Attributes is implemented by structured values that expose their
// attributes in declaration order.
type Attributes interface {
	Attributes() ([]any, error)
}

// All returns every extension converter, logging failures to log.
func All(log logging.Logger) []convert.Converter {
	log = logging.OrDefault(log)

	return []convert.Converter{
		BlobToBytes(log),
		ClobToString(log),
		ArrayToAnySlice(log),
		ArrayToStringSlice(log),
		StructToAnySlice(log),
		RefToAny(log),
		JSONToMap(log),
		StringToUUID(log),
		BytesToUUID(log),
	}
}

// Register adds All(log) to r.
func Register(r *convert.Registry, log logging.Logger) error {
	for _, c := range All(log) {
		if err := r.Register(c); err != nil {
			return fmt.Errorf("register %s: %w", c.ID(), err)
		}
	}

	return nil
}

func guarded(log logging.Logger, id string, from, to convert.TypeTag, fallback func() any,
	fn func(raw any) (any, error),
) *convert.Func {
	return convert.NewFunc(id, from, to, true, func(raw any) any {
		out, err := fn(raw)
		if err != nil {
			log.Error("conversion failed", "converter", id, "err", err)

			return fallback()
		}

		return out
	})
}

// BlobToBytes reads a binary large object fully. Accepts []byte, string and io.Reader.
func BlobToBytes(log logging.Logger) *convert.Func {
	return guarded(log, BlobToBytesID, convert.Blob, convert.Bytes, func() any { return []byte(nil) },
		func(raw any) (any, error) {
			switch v := raw.(type) {
			case []byte:
				return v, nil
			case string:
				return []byte(v), nil
			case io.Reader:
				return io.ReadAll(v)
			default:
				return nil, fmt.Errorf("unsupported blob %T", raw)
			}
		})
}

// ClobToString reads a character large object fully. Accepts string, []byte and io.Reader.
func ClobToString(log logging.Logger) *convert.Func {
	return guarded(log, ClobToStringID, convert.Clob, convert.String, func() any { return "" },
		func(raw any) (any, error) {
			switch v := raw.(type) {
			case string:
				return v, nil
			case []byte:
				return string(v), nil
			case io.Reader:
				var sb strings.Builder
				if _, err := io.Copy(&sb, v); err != nil {
					return nil, err
				}

				return sb.String(), nil
			default:
				return nil, fmt.Errorf("unsupported clob %T", raw)
			}
		})
}

// ArrayToAnySlice flattens an array value into []any. JSON array text is decoded.
func ArrayToAnySlice(log logging.Logger) *convert.Func {
	return guarded(log, ArrayToAnySliceID, convert.Array, convert.AnySlice, func() any { return []any(nil) },
		func(raw any) (any, error) {
			return toAnySlice(raw)
		})
}

// ArrayToStringSlice converts an array value into []string, formatting
// non-string elements with fmt. NULL elements become "".
func ArrayToStringSlice(log logging.Logger) *convert.Func {
	return guarded(log, ArrayToStringSliceID, convert.Array, convert.StringSlice, func() any { return []string(nil) },
		func(raw any) (any, error) {
			if ss, ok := raw.([]string); ok {
				return ss, nil
			}

			items, err := toAnySlice(raw)
			if err != nil {
				return nil, err
			}

			out := make([]string, len(items))
			for i, item := range items {
				switch s := item.(type) {
				case nil:
				case string:
					out[i] = s
				default:
					out[i] = fmt.Sprint(s)
				}
			}

			return out, nil
		})
}

// StructToAnySlice returns the attributes of a structured value.
func StructToAnySlice(log logging.Logger) *convert.Func {
	return guarded(log, StructToAnySliceID, convert.Struct, convert.AnySlice, func() any { return []any(nil) },
		func(raw any) (any, error) {
			if a, ok := raw.(Attributes); ok {
				return a.Attributes()
			}

			rv := reflect.ValueOf(raw)
			if rv.Kind() != reflect.Struct {
				return nil, fmt.Errorf("unsupported struct %T", raw)
			}

			out := make([]any, 0, rv.NumField())
			for i := range rv.NumField() {
				if !rv.Type().Field(i).IsExported() {
					continue
				}

				out = append(out, rv.Field(i).Interface())
			}

			return out, nil
		})
}

// RefToAny dereferences a Ref.
func RefToAny(log logging.Logger) *convert.Func {
	return guarded(log, RefToAnyID, convert.Ref, convert.Any, func() any { return nil },
		func(raw any) (any, error) {
			r, ok := raw.(Ref)
			if !ok {
				return nil, fmt.Errorf("unsupported ref %T", raw)
			}

			return r.Deref()
		})
}

// JSONToMap decodes a JSON object. Drivers that already decode JSON pass maps through.
func JSONToMap(log logging.Logger) *convert.Func {
	return guarded(log, JSONToMapID, convert.JSON, convert.Map, func() any { return map[string]any(nil) },
		func(raw any) (any, error) {
			if m, ok := raw.(map[string]any); ok {
				return m, nil
			}

			data, err := textBytes(raw)
			if err != nil {
				return nil, err
			}

			m := map[string]any{}
			if err := json.Unmarshal(data, &m); err != nil {
				return nil, err
			}

			return m, nil
		})
}

// StringToUUID parses a textual UUID.
func StringToUUID(log logging.Logger) *convert.Func {
	return guarded(log, StringToUUIDID, convert.String, convert.UUID, func() any { return uuid.Nil },
		func(raw any) (any, error) {
			data, err := textBytes(raw)
			if err != nil {
				return nil, err
			}

			return uuid.ParseBytes(data)
		})
}

// BytesToUUID reads a 16-byte binary UUID.
func BytesToUUID(log logging.Logger) *convert.Func {
	return guarded(log, BytesToUUIDID, convert.Bytes, convert.UUID, func() any { return uuid.Nil },
		func(raw any) (any, error) {
			switch v := raw.(type) {
			case uuid.UUID:
				return v, nil
			case [16]byte:
				return uuid.UUID(v), nil
			case []byte:
				return uuid.FromBytes(v)
			default:
				return nil, fmt.Errorf("unsupported uuid %T", raw)
			}
		})
}

func toAnySlice(raw any) ([]any, error) {
	if v, ok := raw.([]any); ok {
		return v, nil
	}

	if data, err := textBytes(raw); err == nil {
		var out []any
		if err := json.Unmarshal(data, &out); err != nil {
			return nil, err
		}

		return out, nil
	}

	rv := reflect.ValueOf(raw)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, fmt.Errorf("unsupported array %T", raw)
	}

	out := make([]any, rv.Len())
	for i := range rv.Len() {
		out[i] = rv.Index(i).Interface()
	}

	return out, nil
}

// textBytes accepts string and any byte-slice type, json.RawMessage included.
func textBytes(raw any) ([]byte, error) {
	switch v := raw.(type) {
	case string:
		return []byte(v), nil
	case []byte:
		return v, nil
	}

	rv := reflect.ValueOf(raw)
	if rv.Kind() == reflect.Slice && rv.Type().Elem().Kind() == reflect.Uint8 {
		return rv.Bytes(), nil
	}

	return nil, fmt.Errorf("expected text, got %T", raw)
}
