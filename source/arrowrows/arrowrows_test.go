package arrowrows

import (
	"testing"
	"time"

	"github.com/apache/arrow/go/v16/arrow"
	"github.com/apache/arrow/go/v16/arrow/array"
	"github.com/apache/arrow/go/v16/arrow/memory"
	"github.com/golang-sql/civil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rowmapper/convert"
	"rowmapper/logging"
	"rowmapper/mapper"
	"rowmapper/naming"
	"rowmapper/schema"
	"rowmapper/source"
)

type reading struct {
	SensorID int32
	Label    string
	Value    float64
	Day      civil.Date
	At       civil.DateTime
	Ok       bool
}

func readingSchema() *schema.Schema[reading] {
	s := schema.New[reading]("reading")
	schema.Field(s, "SensorID", func(r *reading) *int32 { return &r.SensorID }, schema.Column("sensor_id"))
	schema.Field(s, "Label", func(r *reading) *string { return &r.Label })
	schema.Field(s, "Value", func(r *reading) *float64 { return &r.Value })
	schema.Field(s, "Day", func(r *reading) *civil.Date { return &r.Day })
	schema.Field(s, "At", func(r *reading) *civil.DateTime { return &r.At })
	schema.Field(s, "Ok", func(r *reading) *bool { return &r.Ok })

	return s
}

var readingArrowSchema = arrow.NewSchema([]arrow.Field{
	{Name: "sensor_id", Type: arrow.PrimitiveTypes.Int32},
	{Name: "label", Type: arrow.BinaryTypes.String, Nullable: true},
	{Name: "value", Type: arrow.PrimitiveTypes.Float64},
	{Name: "day", Type: arrow.FixedWidthTypes.Date32},
	{Name: "at", Type: &arrow.TimestampType{Unit: arrow.Millisecond}},
	{Name: "ok", Type: arrow.FixedWidthTypes.Boolean},
}, nil)

func buildRecord(t *testing.T, ids []int32, labels []string, valid []bool) arrow.Record {
	t.Helper()

	b := array.NewRecordBuilder(memory.NewGoAllocator(), readingArrowSchema)
	defer b.Release()

	day := arrow.Date32FromTime(time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC))
	at, err := arrow.TimestampFromTime(time.Date(2024, 2, 29, 12, 0, 1, 0, time.UTC), arrow.Millisecond)
	require.NoError(t, err)

	for i, id := range ids {
		b.Field(0).(*array.Int32Builder).Append(id)
		b.Field(1).(*array.StringBuilder).AppendValues([]string{labels[i]}, []bool{valid[i]})
		b.Field(2).(*array.Float64Builder).Append(float64(id) / 2)
		b.Field(3).(*array.Date32Builder).Append(day)
		b.Field(4).(*array.TimestampBuilder).Append(at)
		b.Field(5).(*array.BooleanBuilder).Append(id%2 == 0)
	}

	rec := b.NewRecord()
	t.Cleanup(rec.Release)

	return rec
}

func TestMapAcrossRecords(t *testing.T) {
	first := buildRecord(t, []int32{1, 2}, []string{"a", ""}, []bool{true, false})
	empty := buildRecord(t, nil, nil, nil)
	second := buildRecord(t, []int32{3}, []string{"c"}, []bool{true})

	m := mapper.New(mapper.Config{Naming: naming.LowerUnderscore, Logger: logging.Nop()})

	out, err := mapper.Map(m, New(first, empty, second), readingSchema())
	require.NoError(t, err)
	require.Len(t, out, 3)

	assert.Equal(t, int32(1), out[0].SensorID)
	assert.Equal(t, "a", out[0].Label)
	assert.InDelta(t, 0.5, out[0].Value, 0)
	assert.Equal(t, civil.Date{Year: 2024, Month: time.February, Day: 29}, out[0].Day)
	assert.Equal(t, civil.DateTime{
		Date: civil.Date{Year: 2024, Month: time.February, Day: 29},
		Time: civil.Time{Hour: 12, Second: 1},
	}, out[0].At)
	assert.False(t, out[0].Ok)

	assert.Empty(t, out[1].Label, "null string")
	assert.True(t, out[1].Ok)
	assert.Equal(t, int32(3), out[2].SensorID)
}

func TestEmpty(t *testing.T) {
	r := New(buildRecord(t, nil, nil, nil))

	before, err := r.BeforeFirst()
	require.NoError(t, err)
	assert.False(t, before)

	more, err := r.Next()
	require.NoError(t, err)
	assert.False(t, more)

	_, err = r.Column("label")
	assert.ErrorIs(t, err, source.ErrNoCurrentRow)

	var nilRows *Rows
	before, err = nilRows.BeforeFirst()
	require.NoError(t, err)
	assert.False(t, before)
}

func TestCursor(t *testing.T) {
	r := New(buildRecord(t, []int32{5}, []string{"x"}, []bool{true}))

	_, err := r.Column("label")
	assert.ErrorIs(t, err, source.ErrNoCurrentRow)

	before, _ := r.BeforeFirst()
	require.True(t, before)

	more, _ := r.Next()
	require.True(t, more)

	before, _ = r.BeforeFirst()
	assert.False(t, before)

	v, err := r.Column("sensor_id")
	require.NoError(t, err)
	assert.Equal(t, convert.Value{Tag: convert.Int, Data: int32(5)}, v)

	v, err = r.Column("day")
	require.NoError(t, err)
	assert.Equal(t, convert.Date, v.Tag)

	_, err = r.Column("missing")
	assert.ErrorIs(t, err, source.ErrUnknownColumn)

	more, _ = r.Next()
	assert.False(t, more)
}
