// Package render writes sip_config results in the formats offered by the CLI
// and the HTTP API.
package render

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/sjzar/sipconfig/internal/errors"
	"github.com/sjzar/sipconfig/internal/sip"
)

type Format string

const (
	Table Format = "table"
	JSON  Format = "json"
	YAML  Format = "yaml"
	CSV   Format = "csv"
)

var Formats = []Format{Table, JSON, YAML, CSV}

// ParseFormat accepts a format name case-insensitively; "" means Table.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return Table, nil
	case Table, JSON, YAML, CSV:
		return f, nil
	}
	return "", errors.InvalidArg("format")
}

// ContentType is the MIME type served for f.
func (f Format) ContentType() string {
	switch f {
	case JSON:
		return "application/json; charset=utf-8"
	case YAML:
		return "application/yaml; charset=utf-8"
	case CSV:
		return "text/csv; charset=utf-8"
	}
	return "text/plain; charset=utf-8"
}

// Rows writes rows in format f. Unknown columns are left blank in table and
// CSV output and omitted from JSON and YAML.
func Rows(w io.Writer, f Format, rows []sip.Row) error {
	if rows == nil {
		rows = []sip.Row{}
	}
	switch f {
	case JSON:
		return writeJSON(w, rows)
	case YAML:
		return writeYAML(w, rows)
	case CSV:
		return writeCSV(w, sip.Columns, rowRecords(rows))
	default:
		return writeTable(w, tableHeader(sip.Columns), rowRecords(rows))
	}
}

// Report writes the header fields of rep followed by its rows.
func Report(w io.Writer, f Format, rep *sip.Report) error {
	switch f {
	case JSON:
		return writeJSON(w, rep)
	case YAML:
		return writeYAML(w, rep)
	case CSV:
		return Rows(w, f, rep.Rows)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "OS Version:\t%s\n", optional(rep.OSVersion))
	fmt.Fprintf(tw, "Live Config:\t%s\n", optional(rep.LiveConfig))
	nv := rep.NVRAMStatus.String()
	switch {
	case rep.NVRAMConfig != nil:
		nv += " (" + rep.NVRAMConfig.String() + ")"
	case rep.NVRAMError != "":
		nv += " (" + rep.NVRAMError + ")"
	}
	fmt.Fprintf(tw, "NVRAM:\t%s\n", nv)
	if rep.Reason != "" {
		fmt.Fprintf(tw, "Reason:\t%s\n", rep.Reason)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintln(w)
	return Rows(w, Table, rep.Rows)
}

// Flags writes the flag registry.
func Flags(w io.Writer, f Format, flags []sip.Flag) error {
	switch f {
	case JSON:
		return writeJSON(w, flags)
	case YAML:
		return writeYAML(w, flags)
	}
	cols := []string{"name", "bit", "mask", "constant", "description"}
	records := make([][]string, 0, len(flags))
	for _, fl := range flags {
		records = append(records, []string{fl.Name, fmt.Sprint(fl.Index()), fl.Bit.String(), fl.Constant, fl.Description})
	}
	if f == CSV {
		return writeCSV(w, cols, records)
	}
	return writeTable(w, tableHeader(cols), records)
}

// Decoded writes the per-flag breakdown of a single word.
func Decoded(w io.Writer, f Format, word sip.ConfigWord) error {
	states := sip.Decompose(word)
	switch f {
	case JSON, YAML:
		v := struct {
			Word    sip.ConfigWord  `json:"word" yaml:"word"`
			Unknown sip.ConfigWord  `json:"unknown_bits" yaml:"unknown_bits"`
			Flags   []sip.FlagState `json:"flags" yaml:"flags"`
		}{word, word.Unknown(), states}
		if f == JSON {
			return writeJSON(w, v)
		}
		return writeYAML(w, v)
	}
	cols := []string{"name", "mask", "set"}
	records := make([][]string, 0, len(states))
	for _, s := range states {
		records = append(records, []string{s.Name, s.Bit.String(), fmt.Sprint(s.Set)})
	}
	if f == CSV {
		return writeCSV(w, cols, records)
	}
	if err := writeTable(w, tableHeader(cols), records); err != nil {
		return err
	}
	if u := word.Unknown(); u != 0 {
		_, err := fmt.Fprintf(w, "\nunrecognized bits: %s\n", u)
		return err
	}
	return nil
}

func rowRecords(rows []sip.Row) [][]string {
	records := make([][]string, 0, len(rows))
	for _, r := range rows {
		m := r.Map()
		rec := make([]string, len(sip.Columns))
		for i, c := range sip.Columns {
			rec[i] = m[c]
		}
		records = append(records, rec)
	}
	return records
}

func tableHeader(cols []string) []string {
	h := make([]string, len(cols))
	for i, c := range cols {
		h[i] = strings.ToUpper(c)
	}
	return h
}

func writeTable(w io.Writer, header []string, records [][]string) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	for _, rec := range records {
		fmt.Fprintln(tw, strings.Join(rec, "\t"))
	}
	return tw.Flush()
}

func writeCSV(w io.Writer, header []string, records [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	if err := cw.WriteAll(records); err != nil {
		return err
	}
	return cw.Error()
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

func optional[T fmt.Stringer](v *T) string {
	if v == nil {
		return "unknown"
	}
	return (*v).String()
}
