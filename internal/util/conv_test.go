package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	level, err := ParseLevel(" 3 ")
	assert.NoError(t, err)
	assert.Equal(t, 3, level)

	_, err = ParseLevel("")
	var ve *ValidationError
	assert.ErrorAs(t, err, &ve)

	_, err = ParseLevel("abc")
	assert.ErrorAs(t, err, &ve)

	_, err = ParseLevel("1")
	assert.ErrorIs(t, err, ErrInvalidLevel)
}

func TestParseCount(t *testing.T) {
	tests := []struct {
		in   string
		def  int
		max  int
		want int
	}{
		{"", 10, 0, 10},
		{"abc", 10, 0, 10},
		{"-3", 10, 0, 10},
		{"0", 0, 0, 0},
		{" 7 ", 10, 0, 7},
		{"500", 10, 50, 50},
		{"abc", 0, 0, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseCount(tt.in, tt.def, tt.max), "input %q", tt.in)
	}
}
