package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsNumeric(t *testing.T) {
	assert.True(t, IsNumeric("5031"))
	assert.False(t, IsNumeric(""))
	assert.False(t, IsNumeric("50a1"))
}

func TestNormalizeAddr(t *testing.T) {
	tests := map[string]string{
		"5031":                   "127.0.0.1:5031",
		" 8080 ":                 "127.0.0.1:8080",
		"http://0.0.0.0:5031/":   "0.0.0.0:5031",
		"https://localhost:9000": "localhost:9000",
		"127.0.0.1:5031":         "127.0.0.1:5031",
	}
	for in, want := range tests {
		assert.Equal(t, want, NormalizeAddr(in), in)
	}
}
