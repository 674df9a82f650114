package sip

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConfigWord(t *testing.T) {
	tests := []struct {
		in      string
		want    ConfigWord
		wantErr bool
	}{
		{"0", 0, false},
		{"119", 0x77, false},
		{"0x7f", 0x7f, false},
		{" 0X100 ", 0x100, false},
		{"0b101", 0x05, false},
		{"", 0, true},
		{"0x1ffffffff", 0, true},
		{"-1", 0, true},
		{"csr", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseConfigWord(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConfigWordHelpers(t *testing.T) {
	w := ConfigWord(0x105)
	assert.Equal(t, "0x00000105", w.String())
	assert.True(t, w.Has(0x04))
	assert.False(t, w.Has(0x02))
	assert.False(t, w.Has(0))
	assert.Equal(t, ConfigWord(0x100), w.Unknown())
}

func TestConfigWordText(t *testing.T) {
	b, err := json.Marshal(struct {
		W ConfigWord `json:"w"`
	}{0x7f})
	require.NoError(t, err)
	assert.JSONEq(t, `{"w":"0x0000007f"}`, string(b))

	var w ConfigWord
	require.NoError(t, w.UnmarshalText([]byte("0x77")))
	assert.Equal(t, ConfigWord(0x77), w)
	assert.Error(t, w.UnmarshalText([]byte("nope")))
}
