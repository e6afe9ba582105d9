package memrows

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rowmapper/convert"
	"rowmapper/source"
)

func TestRowsCursor(t *testing.T) {
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	rows := New([]string{"id", "name", "born"},
		[]any{1, "a", convert.Value{Tag: convert.Date, Data: now}},
		[]any{2, nil},
	)

	_, err := rows.Column("id")
	assert.ErrorIs(t, err, source.ErrNoCurrentRow)

	before, err := rows.BeforeFirst()
	require.NoError(t, err)
	assert.True(t, before)

	more, err := rows.Next()
	require.NoError(t, err)
	require.True(t, more)

	before, _ = rows.BeforeFirst()
	assert.False(t, before)

	v, err := rows.Column("id")
	require.NoError(t, err)
	assert.Equal(t, convert.Value{Tag: convert.Int, Data: 1}, v)

	v, err = rows.Column("born")
	require.NoError(t, err)
	assert.Equal(t, convert.Date, v.Tag)

	_, err = rows.Column("missing")
	assert.ErrorIs(t, err, source.ErrUnknownColumn)

	more, _ = rows.Next()
	require.True(t, more)

	v, err = rows.Column("name")
	require.NoError(t, err)
	assert.True(t, v.IsNull())

	_, err = rows.Column("born")
	assert.ErrorIs(t, err, source.ErrUnknownColumn, "short row")

	more, _ = rows.Next()
	assert.False(t, more)
	more, _ = rows.Next()
	assert.False(t, more)

	_, err = rows.Column("id")
	assert.ErrorIs(t, err, source.ErrNoCurrentRow)
}

func TestEmptyAndNil(t *testing.T) {
	before, err := New([]string{"id"}).BeforeFirst()
	require.NoError(t, err)
	assert.False(t, before)

	var r *Rows

	before, err = r.BeforeFirst()
	require.NoError(t, err)
	assert.False(t, before)

	more, err := r.Next()
	require.NoError(t, err)
	assert.False(t, more)
	assert.Nil(t, r.Columns())

	_, err = r.Column("id")
	assert.ErrorIs(t, err, source.ErrNoCurrentRow)
}

func TestPointerValueCell(t *testing.T) {
	var nilValue *convert.Value

	rows := New([]string{"a", "b"}, []any{&convert.Value{Tag: convert.Clob, Data: "text"}, nilValue})
	_, _ = rows.Next()

	v, err := rows.Column("a")
	require.NoError(t, err)
	assert.Equal(t, convert.Clob, v.Tag)

	v, err = rows.Column("b")
	require.NoError(t, err)
	assert.True(t, v.IsNull())
	assert.Equal(t, []string{"a", "b"}, rows.Columns())
}
