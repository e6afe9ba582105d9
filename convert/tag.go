package convert

import (
	"reflect"
	"time"

	"github.com/goccy/go-json"
	"github.com/golang-sql/civil"
	"github.com/google/uuid"
)

//go:generate go tool stringer -type=TypeTag -linecomment -output=tag_string.go

// TypeTag is a stable identifier for the runtime kind of a column value or
// the declared kind of a field. Row-source adapters attach one to every
// fetched value; converters are keyed on (source, target) tag pairs.
// String returns the snake_case name given in the line comments.
type TypeTag int

const (
	Unknown TypeTag = iota // unknown
	Null                   // null
	Bool                   // bool
	Int                    // int
	Uint                   // uint
	Float                  // float
	Decimal                // decimal
	String                 // string
	Bytes                  // bytes
	// Timestamp is a driver-native instant (time.Time).
	Timestamp              // timestamp
	// Date is a driver-native calendar date, still carried as time.Time.
	Date                   // date
	// Time is a driver-native time of day, still carried as time.Time.
	Time                   // time
	LocalDateTime          // local_datetime
	LocalDate              // local_date
	LocalTime              // local_time
	Blob                   // blob
	Clob                   // clob
	Array                  // array
	Struct                 // struct
	Ref                    // ref
	JSON                   // json
	UUID                   // uuid
	AnySlice               // any_slice
	StringSlice            // string_slice
	Map                    // map
	// Any matches every field type; values assigned to Any fields are never converted by pair.
	Any                    // any
)

// ParseTag returns the tag whose String() is name.
func ParseTag(name string) (TypeTag, bool) {
	for t := Unknown; t <= Any; t++ {
		if t.String() == name {
			return t, true
		}
	}

	return Unknown, false
}

// Value is a fetched column value together with its runtime tag.
type Value struct {
	Tag  TypeTag
	Data any
}

// IsNull reports whether the value is SQL NULL.
func (v Value) IsNull() bool {
	return v.Tag == Null || v.Data == nil
}

// Of wraps data with the tag inferred by TagOf.
func Of(data any) Value {
	return Value{Tag: TagOf(data), Data: data}
}

// NullValue is the canonical NULL.
var NullValue = Value{Tag: Null}

// TagOf infers the tag of a runtime value. Values whose kind cannot be told
// from the Go type alone (a time.Time that is really a DATE) get the broad
// tag; adapters with column metadata should set the tag themselves.
func TagOf(v any) TypeTag {
	switch x := v.(type) {
	case nil:
		return Null
	case bool:
		return Bool
	case int, int8, int16, int32, int64:
		return Int
	case uint, uint8, uint16, uint32, uint64:
		return Uint
	case float32, float64:
		return Float
	case string:
		return String
	case []byte:
		return Bytes
	case time.Time:
		return Timestamp
	case civil.DateTime:
		return LocalDateTime
	case civil.Date:
		return LocalDate
	case civil.Time:
		return LocalTime
	case uuid.UUID:
		return UUID
	case json.RawMessage:
		return JSON
	case []string:
		return StringSlice
	case []any:
		return AnySlice
	case map[string]any:
		return Map
	default:
		return tagOfKind(reflect.ValueOf(x))
	}
}

func tagOfKind(rv reflect.Value) TypeTag {
	switch rv.Kind() {
	case reflect.Bool:
		return Bool
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Int
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return Uint
	case reflect.Float32, reflect.Float64:
		return Float
	case reflect.String:
		return String
	case reflect.Slice, reflect.Array:
		return Array
	case reflect.Map:
		return Map
	case reflect.Struct:
		return Struct
	default:
		return Unknown
	}
}

// TagFor returns the declared tag of a field of type V.
func TagFor[V any]() TypeTag {
	var zero V

	switch any(&zero).(type) {
	case *any:
		return Any
	case *bool:
		return Bool
	case *int, *int8, *int16, *int32, *int64:
		return Int
	case *uint, *uint8, *uint16, *uint32, *uint64:
		return Uint
	case *float32, *float64:
		return Float
	case *string:
		return String
	case *[]byte:
		return Bytes
	case *time.Time:
		return Timestamp
	case *civil.DateTime:
		return LocalDateTime
	case *civil.Date:
		return LocalDate
	case *civil.Time:
		return LocalTime
	case *uuid.UUID:
		return UUID
	case *json.RawMessage:
		return JSON
	case *[]string:
		return StringSlice
	case *[]any:
		return AnySlice
	case *map[string]any:
		return Map
	default:
		return tagOfKind(reflect.ValueOf(zero))
	}
}
