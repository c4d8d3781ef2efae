package csvimport

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCSVParser(t *testing.T) {
	t.Run("UTF-8 BOM is stripped", func(t *testing.T) {
		parser, err := NewCSVParser(strings.NewReader("\xEF\xBB\xBFitem,email\nTent,a@example.com"))
		require.NoError(t, err)
		require.NoError(t, parser.ParseHeader())

		assert.Equal(t, []string{"item", "email"}, parser.Headers())
	})

	t.Run("empty file", func(t *testing.T) {
		_, err := NewCSVParser(strings.NewReader(""))
		assert.ErrorIs(t, err, ErrEmptyFile)

		_, err = NewCSVParser(strings.NewReader(" \n\n"))
		assert.ErrorIs(t, err, ErrEmptyFile)
	})

	t.Run("invalid encoding", func(t *testing.T) {
		_, err := NewCSVParser(strings.NewReader("item\n\xff\xfe"))
		assert.ErrorIs(t, err, ErrInvalidEncoding)
	})

	t.Run("multibyte rune split by the check window", func(t *testing.T) {
		content := "item\n" + strings.Repeat("a", encodingCheckSize-6) + "é,tail\n"
		parser, err := NewCSVParser(strings.NewReader(content))
		require.NoError(t, err)
		require.NoError(t, parser.ParseHeader())
	})

	t.Run("custom delimiter", func(t *testing.T) {
		parser, err := NewCSVParser(strings.NewReader("item;email\nTent;a@example.com"), WithDelimiter(';'))
		require.NoError(t, err)
		require.NoError(t, parser.ParseHeader())

		row, err := parser.ReadRow()
		require.NoError(t, err)
		assert.Equal(t, "Tent", row.Get("item"))
	})
}

func TestNormalizeHeader(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"due_date", "due_date"},
		{"Due Date", "due_date"},
		{"  FIRST-NAME ", "first_name"},
		{"phone__number", "phone_number"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeHeader(tt.in))
		})
	}
}

func TestParseHeader(t *testing.T) {
	t.Run("first duplicate wins", func(t *testing.T) {
		parser, err := NewCSVParser(strings.NewReader("item,Item\nTent,Stove"))
		require.NoError(t, err)
		require.NoError(t, parser.ParseHeader())

		row, err := parser.ReadRow()
		require.NoError(t, err)
		assert.Equal(t, "Tent", row.Get("item"))
	})

	t.Run("blank header", func(t *testing.T) {
		parser, err := NewCSVParser(strings.NewReader(" , \nTent,x"))
		require.NoError(t, err)
		assert.ErrorIs(t, parser.ParseHeader(), ErrMissingHeader)
	})

	t.Run("missing headers", func(t *testing.T) {
		parser, err := NewCSVParser(strings.NewReader("item,email\n"))
		require.NoError(t, err)
		require.NoError(t, parser.ParseHeader())

		assert.True(t, parser.HasHeader("email"))
		assert.Equal(t, []string{"due_date"}, parser.MissingHeaders([]string{"item", "due_date"}))
	})
}

func TestReadRow(t *testing.T) {
	parser, err := NewCSVParser(strings.NewReader("item,description\n  Tent  ,\"two, words\"\nStove\n,\n"))
	require.NoError(t, err)
	require.NoError(t, parser.ParseHeader())

	row, err := parser.ReadRow()
	require.NoError(t, err)
	assert.Equal(t, 2, row.LineNumber)
	assert.Equal(t, "Tent", row.Get("item"))
	assert.Equal(t, "two, words", row.Get("description"))

	row, err = parser.ReadRow()
	require.NoError(t, err)
	assert.Equal(t, "", row.Get("description"))
	assert.False(t, row.IsEmpty())

	row, err = parser.ReadRow()
	require.NoError(t, err)
	assert.True(t, row.IsEmpty())

	_, err = parser.ReadRow()
	assert.ErrorIs(t, err, io.EOF)
	assert.Equal(t, 3, parser.TotalRows())
	assert.Equal(t, 4, parser.CurrentRow())
}
