package sip

import "strconv"

// Row is one result row. A nil column is unknown, which is not the same as 0.
type Row struct {
	ConfigFlag   string `json:"config_flag" yaml:"config_flag"`
	Enabled      *int   `json:"enabled,omitempty" yaml:"enabled,omitempty"`
	EnabledNVRAM *int   `json:"enabled_nvram,omitempty" yaml:"enabled_nvram,omitempty"`
}

// Columns of the sip_config table, in output order.
var Columns = []string{"config_flag", "enabled", "enabled_nvram"}

func Int(b bool) *int {
	v := 0
	if b {
		v = 1
	}
	return &v
}

// Map renders the row as column name to value, leaving out unknown columns.
func (r Row) Map() map[string]string {
	m := map[string]string{"config_flag": r.ConfigFlag}
	if r.Enabled != nil {
		m["enabled"] = strconv.Itoa(*r.Enabled)
	}
	if r.EnabledNVRAM != nil {
		m["enabled_nvram"] = strconv.Itoa(*r.EnabledNVRAM)
	}
	return m
}

// Equal compares column values, treating two unknowns as equal.
func (r Row) Equal(o Row) bool {
	return r.ConfigFlag == o.ConfigFlag && eqInt(r.Enabled, o.Enabled) && eqInt(r.EnabledNVRAM, o.EnabledNVRAM)
}

func eqInt(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
