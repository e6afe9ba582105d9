package schema

import (
	"errors"
	"fmt"
	"math"
	"reflect"
)

var (
	// ErrIncompatible is returned when a value cannot be assigned to a field's type.
	ErrIncompatible = errors.New("schema: incompatible value")
	// ErrOverflow is returned when a numeric value does not fit the field's type.
	ErrOverflow = errors.New("schema: numeric overflow")
)

type signed interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64
}

type unsigned interface {
	~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

type float interface {
	~float32 | ~float64
}

// Assign stores v into *dst.
//
// NULL (nil) stores the zero value. A value already of type V is stored as
// is. Otherwise integer, float, bool, string and []byte targets accept
// compatible values of another width or representation: an int64 fits an
// int32 field if it is in range, a float64 with no fractional part fits an
// int, a string fills a []byte and vice versa, 0 and 1 fill a bool.
func Assign[V any](dst *V, v any) error {
	if v == nil {
		var zero V
		*dst = zero

		return nil
	}

	if x, ok := v.(V); ok {
		*dst = x

		return nil
	}

	switch d := any(dst).(type) {
	case *int:
		return setSigned(d, v, math.MinInt, math.MaxInt)
	case *int8:
		return setSigned(d, v, math.MinInt8, math.MaxInt8)
	case *int16:
		return setSigned(d, v, math.MinInt16, math.MaxInt16)
	case *int32:
		return setSigned(d, v, math.MinInt32, math.MaxInt32)
	case *int64:
		return setSigned(d, v, math.MinInt64, math.MaxInt64)
	case *uint:
		return setUnsigned(d, v, math.MaxUint)
	case *uint8:
		return setUnsigned(d, v, math.MaxUint8)
	case *uint16:
		return setUnsigned(d, v, math.MaxUint16)
	case *uint32:
		return setUnsigned(d, v, math.MaxUint32)
	case *uint64:
		return setUnsigned(d, v, math.MaxUint64)
	case *float32:
		return setFloat(d, v, math.MaxFloat32)
	case *float64:
		return setFloat(d, v, math.MaxFloat64)
	case *bool:
		n, ok := asInt64(v)
		if !ok || (n != 0 && n != 1) {
			return incompatible(v, *d)
		}

		*d = n == 1

		return nil
	case *string:
		switch x := v.(type) {
		case []byte:
			*d = string(x)

			return nil
		case fmt.Stringer:
			*d = x.String()

			return nil
		}

		return incompatible(v, *d)
	case *[]byte:
		switch x := v.(type) {
		case string:
			*d = []byte(x)

			return nil
		case []byte:
			*d = append([]byte(nil), x...)

			return nil
		}

		return incompatible(v, *d)
	}

	return assignUnderlying(dst, v)
}

// assignUnderlying fills named types over a basic kind, such as
// type Status string, through their underlying type.
func assignUnderlying[V any](dst *V, v any) error {
	rv := reflect.ValueOf(dst).Elem()

	switch rv.Kind() {
	case reflect.String:
		var s string
		if err := Assign(&s, v); err != nil {
			return incompatible(v, *dst)
		}

		rv.SetString(s)

		return nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		var n int64
		if err := Assign(&n, v); err != nil {
			return incompatible(v, *dst)
		}

		if rv.OverflowInt(n) {
			return fmt.Errorf("%w: %v does not fit %T", ErrOverflow, v, *dst)
		}

		rv.SetInt(n)

		return nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		var n uint64
		if err := Assign(&n, v); err != nil {
			return incompatible(v, *dst)
		}

		if rv.OverflowUint(n) {
			return fmt.Errorf("%w: %v does not fit %T", ErrOverflow, v, *dst)
		}

		rv.SetUint(n)

		return nil
	case reflect.Float32, reflect.Float64:
		var f float64
		if err := Assign(&f, v); err != nil {
			return incompatible(v, *dst)
		}

		if rv.OverflowFloat(f) {
			return fmt.Errorf("%w: %v does not fit %T", ErrOverflow, v, *dst)
		}

		rv.SetFloat(f)

		return nil
	case reflect.Bool:
		var b bool
		if err := Assign(&b, v); err != nil {
			return incompatible(v, *dst)
		}

		rv.SetBool(b)

		return nil
	}

	return incompatible(v, *dst)
}

func incompatible(v, target any) error {
	return fmt.Errorf("%w: cannot assign %T to %T", ErrIncompatible, v, target)
}

func setSigned[I signed](dst *I, v any, lo, hi int64) error {
	n, ok := asInt64(v)
	if !ok {
		if _, isUint := asUint64(v); isUint {
			return fmt.Errorf("%w: %v does not fit %T", ErrOverflow, v, *dst)
		}

		return incompatible(v, *dst)
	}

	if n < lo || n > hi {
		return fmt.Errorf("%w: %d does not fit %T", ErrOverflow, n, *dst)
	}

	*dst = I(n)

	return nil
}

func setUnsigned[U unsigned](dst *U, v any, hi uint64) error {
	n, ok := asUint64(v)
	if !ok {
		if i, isInt := asInt64(v); isInt && i < 0 {
			return fmt.Errorf("%w: %d does not fit %T", ErrOverflow, i, *dst)
		}

		return incompatible(v, *dst)
	}

	if n > hi {
		return fmt.Errorf("%w: %d does not fit %T", ErrOverflow, n, *dst)
	}

	*dst = U(n)

	return nil
}

func setFloat[F float](dst *F, v any, hi float64) error {
	f, ok := asFloat64(v)
	if !ok {
		return incompatible(v, *dst)
	}

	if math.Abs(f) > hi && !math.IsInf(f, 0) {
		return fmt.Errorf("%w: %g does not fit %T", ErrOverflow, f, *dst)
	}

	*dst = F(f)

	return nil
}

// asInt64 reports v as an int64 when it is an integer, or an integral float, in range.
func asInt64(v any) (int64, bool) {
	switch x := v.(type) {
	case int:
		return int64(x), true
	case int8:
		return int64(x), true
	case int16:
		return int64(x), true
	case int32:
		return int64(x), true
	case int64:
		return x, true
	case uint:
		return uintToInt64(uint64(x))
	case uint8:
		return int64(x), true
	case uint16:
		return int64(x), true
	case uint32:
		return int64(x), true
	case uint64:
		return uintToInt64(x)
	case float32:
		return floatToInt64(float64(x))
	case float64:
		return floatToInt64(x)
	}

	return 0, false
}

func asUint64(v any) (uint64, bool) {
	switch x := v.(type) {
	case uint:
		return uint64(x), true
	case uint8:
		return uint64(x), true
	case uint16:
		return uint64(x), true
	case uint32:
		return uint64(x), true
	case uint64:
		return x, true
	}

	n, ok := asInt64(v)
	if !ok || n < 0 {
		return 0, false
	}

	return uint64(n), true
}

func asFloat64(v any) (float64, bool) {
	switch x := v.(type) {
	case float32:
		return float64(x), true
	case float64:
		return x, true
	case uint:
		return float64(x), true
	case uint64:
		return float64(x), true
	}

	n, ok := asInt64(v)
	if !ok {
		return 0, false
	}

	return float64(n), true
}

func uintToInt64(u uint64) (int64, bool) {
	if u > math.MaxInt64 {
		return 0, false
	}

	return int64(u), true
}

func floatToInt64(f float64) (int64, bool) {
	if f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, false
	}

	return int64(f), true
}
