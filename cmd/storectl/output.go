package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"
)

const (
	formatTable = "table"
	formatJSON  = "json"
	formatYAML  = "yaml"
)

type table struct {
	w *tabwriter.Writer
}

func (t *table) header(cols ...string) {
	fmt.Fprintln(t.w, strings.Join(cols, "\t"))
}

func (t *table) row(cols ...any) {
	parts := make([]string, len(cols))
	for i, c := range cols {
		switch v := c.(type) {
		case []string:
			parts[i] = strings.Join(v, ",")
		default:
			parts[i] = fmt.Sprint(v)
		}
	}
	fmt.Fprintln(t.w, strings.Join(parts, "\t"))
}

// render writes data as JSON or YAML, or hands a table to fill otherwise.
func (a *app) render(out io.Writer, data any, fill func(*table)) error {
	switch a.output {
	case formatJSON:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(data)
	case formatYAML:
		return renderYAML(out, data)
	}

	t := &table{w: tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)}
	fill(t)
	return t.w.Flush()
}

// renderYAML goes through JSON so field names and decimal formatting match
// the API's.
func renderYAML(out io.Writer, data any) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}

	var generic any
	if err := yaml.Unmarshal(raw, &generic); err != nil {
		return fmt.Errorf("convert to yaml: %w", err)
	}

	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(generic); err != nil {
		return fmt.Errorf("write yaml: %w", err)
	}
	return enc.Close()
}
