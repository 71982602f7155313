package language

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseInteger(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		value   int64
		isLong  bool
		wantErr bool
	}{
		{name: "int", text: "42", value: 42},
		{name: "underscores", text: "1_000", value: 1000},
		{name: "hex", text: "0xFF", value: 255},
		{name: "binary", text: "0b101", value: 5},
		{name: "long suffix", text: "5L", value: 5, isLong: true},
		{name: "overflow widens", text: "2147483648", value: 2147483648, isLong: true},
		{name: "min int", text: "-2147483648", value: -2147483648},
		{name: "below min int", text: "-2147483649", value: -2147483649, isLong: true},
		{name: "out of range", text: "99999999999999999999", wantErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			value, isLong, err := parseInteger(tc.text)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.EqualValues(t, tc.value, value)
			assert.EqualValues(t, tc.isLong, isLong)
		})
	}
}

func TestUnquote(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected string
		err      error
	}{
		{name: "plain", text: `"abc"`, expected: "abc"},
		{name: "escapes", text: `"a\n\"b\"\$"`, expected: "a\n\"b\"$"},
		{name: "unicode", text: `"\u0041"`, expected: "A"},
		{name: "raw", text: `"""a\nb"""`, expected: `a\nb`},
		{name: "dollar alone", text: `"5$"`, expected: "5$"},
		{name: "template", text: `"hi $name"`, err: errStringTemplate},
		{name: "expression template", text: `"${x}"`, err: errStringTemplate},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			actual, err := unquote(tc.text)
			if tc.err != nil {
				assert.ErrorIs(t, err, tc.err)
				return
			}
			assert.NoError(t, err)
			assert.EqualValues(t, tc.expected, actual)
		})
	}
}
