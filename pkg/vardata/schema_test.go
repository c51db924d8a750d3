package vardata

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePropertyKind(t *testing.T) {
	tests := []struct {
		token string
		want  PropertyKind
		ok    bool
	}{
		{"visibility", KindVisibility, true},
		{"Foreground", KindForeground, true},
		{" BACKGROUND ", KindBackground, true},
		{"text", KindText, true},
		{"colour", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			got, ok := ParsePropertyKind(tt.token)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseSchema(t *testing.T) {
	s, err := ParseSchema(
		[]string{"Title", "Badge", "Frame"},
		[]string{"text", "visibility", "foreground"},
		SchemaCurrent,
	)
	require.NoError(t, err)

	assert.Equal(t, 3, s.Width)
	assert.Equal(t, []Column{
		{Index: 0, Name: "Title", Kind: KindText},
		{Index: 1, Name: "Badge", Kind: KindVisibility},
		{Index: 2, Name: "Frame", Kind: KindForeground},
	}, s.Columns)
}

func TestParseSchema_Legacy(t *testing.T) {
	s, err := ParseSchema(
		[]string{"", "Title"},
		[]string{"anything", "text"},
		SchemaLegacy,
	)
	require.NoError(t, err)

	assert.Equal(t, 2, s.Width)
	require.Len(t, s.Columns, 1)
	assert.Equal(t, Column{Index: 1, Name: "Title", Kind: KindText}, s.Columns[0])
}

func TestParseSchema_Errors(t *testing.T) {
	tests := []struct {
		name    string
		names   []string
		kinds   []string
		version SchemaVersion
		wantCol int
	}{
		{"width mismatch", []string{"A", "B"}, []string{"text"}, SchemaCurrent, 0},
		{"empty header", nil, nil, SchemaCurrent, 0},
		{"legacy with only column 0", []string{"x"}, []string{"text"}, SchemaLegacy, 0},
		{"unknown kind", []string{"A", "B"}, []string{"text", "colour"}, SchemaCurrent, 2},
		{"empty name", []string{"A", " "}, []string{"text", "text"}, SchemaCurrent, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSchema(tt.names, tt.kinds, tt.version)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrSchema))

			var se *SchemaError
			require.ErrorAs(t, err, &se)
			assert.Equal(t, tt.wantCol, se.Col)
		})
	}
}

func TestParseSchemaVersion(t *testing.T) {
	v, err := ParseSchemaVersion("")
	require.NoError(t, err)
	assert.Equal(t, SchemaCurrent, v)

	v, err = ParseSchemaVersion("Legacy")
	require.NoError(t, err)
	assert.Equal(t, SchemaLegacy, v)

	_, err = ParseSchemaVersion("v2")
	assert.Error(t, err)
}
