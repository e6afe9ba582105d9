package mapper

import (
	"bytes"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/golang-sql/civil"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rowmapper/convert"
	"rowmapper/logging"
	"rowmapper/naming"
	"rowmapper/schema"
	"rowmapper/source/memrows"
)

type user struct {
	ID        int
	FirstName string
	LastName  string
	Email     string
}

var userSchema = func() *schema.Schema[user] {
	s := schema.New[user]("user")
	schema.Field(s, "id", func(u *user) *int { return &u.ID })
	schema.Field(s, "firstName", func(u *user) *string { return &u.FirstName })
	schema.Field(s, "lastName", func(u *user) *string { return &u.LastName })
	schema.Field(s, "email", func(u *user) *string { return &u.Email })

	return s
}()

type profile struct {
	Email     string
	BirthDate time.Time
	Secret    string
	Alias     string
	Created   civil.DateTime
}

func profileSchema(opts ...schema.Option) *schema.Schema[profile] {
	s := schema.New[profile]("profile")
	schema.Field(s, "email", func(p *profile) *string { return &p.Email })
	schema.Field(s, "birthDate", func(p *profile) *time.Time { return &p.BirthDate }, opts...)
	schema.Field(s, "secret", func(p *profile) *string { return &p.Secret }, schema.Ignore())
	schema.Field(s, "alias", func(p *profile) *string { return &p.Alias }, schema.Column("nick"))
	schema.Field(s, "created", func(p *profile) *civil.DateTime { return &p.Created })

	return s
}

func newTestMapper(strategy naming.Strategy, buf *bytes.Buffer) *Mapper {
	cfg := DefaultConfig()
	cfg.Naming = strategy
	cfg.Logger = logging.Nop()

	if buf != nil {
		cfg.Logger = logging.New(buf, "warn")
	}

	return New(cfg)
}

// spySource records column fetches and can fail on demand.
type spySource struct {
	*memrows.Rows
	fetched       []string
	beforeErr     error
	nextErr       error
	nextErrAfter  int
	nextCallCount int
}

func (s *spySource) BeforeFirst() (bool, error) {
	if s.beforeErr != nil {
		return false, s.beforeErr
	}

	return s.Rows.BeforeFirst()
}

func (s *spySource) Next() (bool, error) {
	s.nextCallCount++
	if s.nextErr != nil && s.nextCallCount > s.nextErrAfter {
		return false, s.nextErr
	}

	return s.Rows.Next()
}

func (s *spySource) Column(name string) (convert.Value, error) {
	s.fetched = append(s.fetched, name)

	return s.Rows.Column(name)
}

func TestMapLowerUnderscore(t *testing.T) {
	m := newTestMapper(naming.LowerUnderscore, nil)
	rows := memrows.New([]string{"id", "first_name", "last_name", "email"},
		[]any{int64(1), "a", "b", "c"},
		[]any{int64(2), "d", "e", "f"},
	)

	users, err := Map(m, rows, userSchema)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, &user{ID: 1, FirstName: "a", LastName: "b", Email: "c"}, users[0])
	assert.Equal(t, &user{ID: 2, FirstName: "d", LastName: "e", Email: "f"}, users[1])
}

func TestMapLowerDashesMissingColumn(t *testing.T) {
	var buf bytes.Buffer

	m := newTestMapper(naming.LowerDashes, &buf)
	rows := memrows.New([]string{"email", "nick"}, []any{"x@y.z", "zed"})

	out, err := Map(m, rows, profileSchema())
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "x@y.z", out[0].Email)
	assert.Equal(t, "zed", out[0].Alias)
	assert.True(t, out[0].BirthDate.IsZero())

	logged := buf.String()
	assert.Contains(t, logged, "column fetch failed")
	assert.Contains(t, logged, `"column":"birth-date"`)
}

func TestMapSuppressedWarnings(t *testing.T) {
	t.Run("field level", func(t *testing.T) {
		var buf bytes.Buffer

		m := newTestMapper(naming.LowerDashes, &buf)
		rows := memrows.New([]string{"email", "nick"}, []any{"a", "b"})

		out, err := Map(m, rows, profileSchema(schema.SuppressWarnings()))
		require.NoError(t, err)
		require.Len(t, out, 1)
		assert.Equal(t, "a", out[0].Email)

		logged := buf.String()
		assert.NotContains(t, logged, "birth-date")
		assert.Contains(t, logged, `"column":"created"`, "other fields still report their failures")
		assert.Equal(t, 1, strings.Count(logged, "column fetch failed"))
	})

	t.Run("class level", func(t *testing.T) {
		var buf bytes.Buffer

		m := newTestMapper(naming.LowerDashes, &buf)
		rows := memrows.New([]string{"email"}, []any{"a"})

		_, err := Map(m, rows, profileSchema().SuppressWarnings())
		require.NoError(t, err)
		assert.NotContains(t, buf.String(), "column fetch failed")
	})
}

func TestMapZeroFieldType(t *testing.T) {
	m := newTestMapper(naming.Identity, nil)
	src := &spySource{Rows: memrows.New([]string{"id", "name"},
		[]any{int64(1), "a"},
		[]any{int64(2), "b"},
		[]any{int64(3), "c"},
	)}

	out, err := Map(m, src, schema.New[struct{}]("empty"))
	require.NoError(t, err)
	assert.Len(t, out, 3)
	assert.Empty(t, src.fetched)
}

func TestMapIgnoredFieldNeverFetched(t *testing.T) {
	m := newTestMapper(naming.Identity, nil)
	src := &spySource{Rows: memrows.New([]string{"email", "secret", "nick"}, []any{"a", "s3cr3t", "n"})}

	out, err := Map(m, src, profileSchema())
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Empty(t, out[0].Secret)
	assert.Equal(t, "n", out[0].Alias)
	assert.NotContains(t, src.fetched, "secret")
	assert.Contains(t, src.fetched, "nick")
	assert.NotContains(t, src.fetched, "alias")
}

func TestMapBuiltinConverter(t *testing.T) {
	m := newTestMapper(naming.Identity, nil)
	ts := time.Date(2023, 7, 1, 8, 9, 10, 0, time.UTC)
	rows := memrows.New([]string{"created"}, []any{ts})

	out, err := Map(m, rows, profileSchema())
	require.NoError(t, err)
	assert.Equal(t, civil.DateTimeOf(ts), out[0].Created)
}

func TestMapExplicitConverterWins(t *testing.T) {
	m := newTestMapper(naming.Identity, nil)
	require.NoError(t, m.RegisterConverter(convert.NewFunc("shout", convert.String, convert.String, false,
		func(raw any) any { return strings.ToUpper(raw.(string)) })))
	require.NoError(t, m.RegisterConverter(convert.NewFunc("auto-mark", convert.String, convert.String, true,
		func(raw any) any { return raw.(string) + "!" })))

	s := schema.New[user]("user")
	schema.Field(s, "FirstName", func(u *user) *string { return &u.FirstName }, schema.Convert("shout"))
	schema.Field(s, "LastName", func(u *user) *string { return &u.LastName })
	schema.Field(s, "Email", func(u *user) *string { return &u.Email }, schema.Convert("not-registered"))

	rows := memrows.New([]string{"FirstName", "LastName", "Email"}, []any{"ada", "lovelace", "raw"})

	out, err := Map(m, rows, s)
	require.NoError(t, err)
	assert.Equal(t, "ADA", out[0].FirstName)
	assert.Equal(t, "lovelace!", out[0].LastName)
	assert.Equal(t, "raw", out[0].Email, "unregistered explicit converter passes the raw value through")
}

func TestMapAssignmentFailureIsFieldLevel(t *testing.T) {
	var buf bytes.Buffer

	m := newTestMapper(naming.Identity, &buf)
	rows := memrows.New([]string{"id", "firstName"}, []any{"not a number", "kept"})

	out, err := Map(m, rows, userSchema)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Zero(t, out[0].ID)
	assert.Equal(t, "kept", out[0].FirstName)
	assert.Contains(t, buf.String(), "field assignment failed")
}

func TestMapNullLeavesZero(t *testing.T) {
	m := newTestMapper(naming.Identity, nil)
	rows := memrows.New([]string{"id", "firstName"}, []any{nil, nil})

	out, err := Map(m, rows, userSchema)
	require.NoError(t, err)
	assert.Equal(t, &user{}, out[0])
}

func TestMapEmptyAndNilSource(t *testing.T) {
	m := newTestMapper(naming.Identity, nil)

	out, err := Map(m, memrows.New([]string{"id"}), userSchema)
	require.NoError(t, err)
	assert.NotNil(t, out)
	assert.Empty(t, out)

	out, err = Map[user](m, nil, userSchema)
	require.NoError(t, err)
	assert.NotNil(t, out)
	assert.Empty(t, out)
}

func TestMapFatalErrors(t *testing.T) {
	boom := errors.New("cursor closed")

	tests := []struct {
		name   string
		src    func() *spySource
		schema func() *schema.Schema[user]
		op     Op
	}{
		{
			name: "before first",
			src: func() *spySource {
				return &spySource{Rows: memrows.New([]string{"id"}, []any{1}), beforeErr: boom}
			},
			schema: func() *schema.Schema[user] { return userSchema },
			op:     OpBeforeFirst,
		},
		{
			name: "next after some rows",
			src: func() *spySource {
				return &spySource{Rows: memrows.New([]string{"id"}, []any{1}, []any{2}), nextErr: boom, nextErrAfter: 1}
			},
			schema: func() *schema.Schema[user] { return userSchema },
			op:     OpNext,
		},
		{
			name: "construct",
			src: func() *spySource {
				return &spySource{Rows: memrows.New([]string{"id"}, []any{1})}
			},
			schema: func() *schema.Schema[user] {
				s := schema.New[user]("user")
				schema.Field(s, "id", func(u *user) *int { return &u.ID })

				return s.Constructor(func() (*user, error) { return nil, boom })
			},
			op: OpConstruct,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestMapper(naming.Identity, nil)

			out, err := Map(m, tt.src(), tt.schema())
			require.Error(t, err)
			assert.Nil(t, out, "no partial result")
			assert.ErrorIs(t, err, ErrMappingFailed)
			assert.ErrorIs(t, err, boom)

			var me *MappingError
			require.ErrorAs(t, err, &me)
			assert.Equal(t, tt.op, me.Op)
			assert.Equal(t, "user", me.Type)
			assert.Contains(t, me.Error(), string(tt.op))
		})
	}
}

func TestMapOne(t *testing.T) {
	m := newTestMapper(naming.Identity, nil)

	u, err := MapOne(m, memrows.New([]string{"id"}, []any{7}, []any{8}), userSchema)
	require.NoError(t, err)
	assert.Equal(t, 7, u.ID)

	_, err = MapOne(m, memrows.New([]string{"id"}), userSchema)
	assert.ErrorIs(t, err, ErrNoRows)

	_, err = MapOne(m, &spySource{Rows: memrows.New(nil), beforeErr: errors.New("x")}, userSchema)
	assert.ErrorIs(t, err, ErrMappingFailed)
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	cfg := DefaultConfig()
	cfg.Logger = logging.Nop()
	cfg.Naming = naming.LowerDashes
	cfg.Metrics = NewMetrics(reg)
	m := New(cfg)

	_, err := Map(m, memrows.New([]string{"email"}, []any{"a"}, []any{"b"}), profileSchema())
	require.NoError(t, err)

	_, err = Map(m, &spySource{Rows: memrows.New(nil), beforeErr: errors.New("x")}, profileSchema())
	require.Error(t, err)

	assert.InDelta(t, 2, testutil.ToFloat64(cfg.Metrics.RowsMapped.WithLabelValues("profile")), 0)
	assert.InDelta(t, 2, testutil.ToFloat64(cfg.Metrics.FieldFailures.WithLabelValues("profile", "birth-date")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(cfg.Metrics.MapErrors.WithLabelValues("profile", "before-first")), 0)
}

func TestFieldMapIsCachedPerMapper(t *testing.T) {
	m := newTestMapper(naming.LowerUnderscore, nil)

	first := FieldMap(m, userSchema)
	assert.Same(t, first, FieldMap(m, userSchema))
	assert.Equal(t, []string{"id", "first_name", "last_name", "email"}, first.Columns())

	other := newTestMapper(naming.Identity, nil)
	assert.Equal(t, []string{"id", "firstName", "lastName", "email"}, FieldMap(other, userSchema).Columns())
}

func TestConcurrentMap(t *testing.T) {
	m := newTestMapper(naming.LowerUnderscore, nil)

	var wg sync.WaitGroup

	for i := range 8 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			rows := memrows.New([]string{"id", "email"}, []any{i, "e"})
			out, err := Map(m, rows, userSchema)
			assert.NoError(t, err)
			assert.Len(t, out, 1)
		}()
	}

	wg.Wait()
}

func TestConstructors(t *testing.T) {
	assert.Equal(t, naming.Identity, NewIdentity().NamingStrategy())
	assert.Equal(t, naming.LowerUnderscore, NewLowerUnderscore().NamingStrategy())
	assert.Equal(t, naming.LowerDashes, NewLowerDashes().NamingStrategy())

	m := New(Config{Logger: logging.Nop(), Extensions: true})
	assert.Equal(t, naming.Identity, m.NamingStrategy())
	_, ok := m.Registry().Lookup("clob-to-string")
	assert.True(t, ok)
}

func TestRegisterConverterRejectsInvalid(t *testing.T) {
	m := newTestMapper(naming.Identity, nil)
	assert.ErrorIs(t, m.RegisterConverter(nil), convert.ErrInvalidConverter)
}
