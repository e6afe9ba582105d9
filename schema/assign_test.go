package schema

import (
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type status int

type level int8

type label string

func TestAssignNullStoresZero(t *testing.T) {
	i := 5
	require.NoError(t, Assign(&i, nil))
	assert.Zero(t, i)

	s := "x"
	require.NoError(t, Assign(&s, nil))
	assert.Empty(t, s)

	f := 1.5
	require.NoError(t, Assign(&f, nil))
	assert.Zero(t, f)

	b := true
	require.NoError(t, Assign(&b, nil))
	assert.False(t, b)

	p := &s
	require.NoError(t, Assign(&p, nil))
	assert.Nil(t, p)
}

func TestAssignDirect(t *testing.T) {
	var st status
	require.NoError(t, Assign(&st, status(3)))
	assert.Equal(t, status(3), st)

	var a any
	require.NoError(t, Assign(&a, []int{1}))
	assert.Equal(t, []int{1}, a)
}

func TestAssignCoercion(t *testing.T) {
	var i32 int32
	require.NoError(t, Assign(&i32, int64(42)))
	assert.Equal(t, int32(42), i32)

	var i int
	require.NoError(t, Assign(&i, 3.0))
	assert.Equal(t, 3, i)

	var u16 uint16
	require.NoError(t, Assign(&u16, int64(65535)))
	assert.Equal(t, uint16(65535), u16)

	var f32 float32
	require.NoError(t, Assign(&f32, int64(2)))
	assert.InDelta(t, 2, f32, 0)

	var f64 float64
	require.NoError(t, Assign(&f64, uint64(math.MaxUint64)))
	assert.InDelta(t, float64(math.MaxUint64), f64, 1)

	var s string
	require.NoError(t, Assign(&s, []byte("bytes")))
	assert.Equal(t, "bytes", s)

	id := uuid.New()
	require.NoError(t, Assign(&s, id))
	assert.Equal(t, id.String(), s)

	var bs []byte
	require.NoError(t, Assign(&bs, "text"))
	assert.Equal(t, []byte("text"), bs)

	src := []byte("copy")
	require.NoError(t, Assign(&bs, src))
	src[0] = 'X'
	assert.Equal(t, []byte("copy"), bs)

	var b bool
	require.NoError(t, Assign(&b, int64(1)))
	assert.True(t, b)
}

func TestAssignFailures(t *testing.T) {
	tests := []struct {
		name   string
		assign func() error
		target error
	}{
		{"int8 overflow", func() error { var v int8; return Assign(&v, 300) }, ErrOverflow},
		{"negative into uint", func() error { var v uint; return Assign(&v, -1) }, ErrOverflow},
		{"huge uint into int64", func() error { var v int64; return Assign(&v, uint64(math.MaxUint64)) }, ErrOverflow},
		{"fractional float into int", func() error { var v int; return Assign(&v, 1.5) }, ErrIncompatible},
		{"string into int", func() error { var v int; return Assign(&v, "12") }, ErrIncompatible},
		{"int into string", func() error { var v string; return Assign(&v, 12) }, ErrIncompatible},
		{"int into bytes", func() error { var v []byte; return Assign(&v, 12) }, ErrIncompatible},
		{"two into bool", func() error { var v bool; return Assign(&v, 2) }, ErrIncompatible},
		{"string into float", func() error { var v float64; return Assign(&v, "x") }, ErrIncompatible},
		{"string into named int", func() error { var v status; return Assign(&v, "x") }, ErrIncompatible},
		{"named int overflow", func() error { var v level; return Assign(&v, 1000) }, ErrOverflow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.assign(), tt.target)
		})
	}
}

func TestAssignNamedBasicKinds(t *testing.T) {
	var st status
	require.NoError(t, Assign(&st, int64(7)))
	assert.Equal(t, status(7), st)

	var lb label
	require.NoError(t, Assign(&lb, []byte("PAID")))
	assert.Equal(t, label("PAID"), lb)

	var lv level
	require.NoError(t, Assign(&lv, 12.0))
	assert.Equal(t, level(12), lv)
}
