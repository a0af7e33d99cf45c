package sheets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRange(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Range
	}{
		{"tab only", "Sheet1", Range{Tab: "Sheet1", StartCol: 1, StartRow: 1}},
		{"open column range", "A2:G", Range{StartCol: 1, StartRow: 2, EndCol: 7}},
		{"closed range", "B3:D9", Range{StartCol: 2, StartRow: 3, EndCol: 4, EndRow: 9}},
		{"single cell", "A5", Range{StartCol: 1, StartRow: 5, EndCol: 1, EndRow: 5}},
		{"tab and cell", "Sheet1!A7", Range{Tab: "Sheet1", StartCol: 1, StartRow: 7, EndCol: 1, EndRow: 7}},
		{"quoted tab", "'Trade Log'!A2:M", Range{Tab: "Trade Log", StartCol: 1, StartRow: 2, EndCol: 13}},
		{"escaped quote", "'Farmer''s'!A1", Range{Tab: "Farmer's", StartCol: 1, StartRow: 1, EndCol: 1, EndRow: 1}},
		{"absolute refs", "$A$2:$C$4", Range{StartCol: 1, StartRow: 2, EndCol: 3, EndRow: 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRange(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseRange_Invalid(t *testing.T) {
	for _, input := range []string{"", "Sheet1!", "A2:0", "Sheet1!A2:B0"} {
		_, err := ParseRange(input)
		assert.Error(t, err, "input %q", input)
	}
}

func TestSliceRows(t *testing.T) {
	all := [][]string{
		{"id", "name", "qty"},
		{"P1", "Rice", "10", "extra"},
		{"P2"},
		{},
		{"P4", "Corn", "", ""},
		{"", ""},
	}

	t.Run("open range from row two", func(t *testing.T) {
		r, err := ParseRange("A2:C")
		require.NoError(t, err)

		got := sliceRows(all, r)
		assert.Equal(t, [][]string{
			{"P1", "Rice", "10"},
			{"P2"},
			{},
			{"P4", "Corn"},
		}, got)
	})

	t.Run("bounded rows", func(t *testing.T) {
		r, err := ParseRange("B1:B2")
		require.NoError(t, err)
		assert.Equal(t, [][]string{{"name"}, {"Rice"}}, sliceRows(all, r))
	})

	t.Run("past the end", func(t *testing.T) {
		r, err := ParseRange("A20:C")
		require.NoError(t, err)
		got := sliceRows(all, r)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})
}

func TestQuoteTab(t *testing.T) {
	assert.Equal(t, "Sheet1", quoteTab("Sheet1"))
	assert.Equal(t, "'Trade Log'", quoteTab("Trade Log"))
	assert.Equal(t, "'Farmer''s'", quoteTab("Farmer's"))
	assert.Equal(t, "", quoteTab(""))
}

func TestCellString(t *testing.T) {
	assert.Equal(t, "", cellString(nil))
	assert.Equal(t, "abc", cellString("abc"))
	assert.Equal(t, "42", cellString(42.0))
	assert.Equal(t, "true", cellString(true))
}
