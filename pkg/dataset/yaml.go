package dataset

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/goccy/go-yaml"

	"github.com/agentstation/mirror/pkg/errors"
)

// ReadYAML reads a sequence of mappings. Column order follows the first
// appearance of each key.
func ReadYAML(r io.Reader, opts ...Option) (*Dataset, error) {
	o := applyOptions(opts)

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.WrapIO("read", o.name, err)
	}

	var docs []yaml.MapSlice
	if err := yaml.Unmarshal(data, &docs); err != nil {
		return nil, errors.WrapParse("yaml", o.name, err)
	}

	var (
		columns []string
		seen    = map[string]bool{}
		rows    = make([]map[string]any, 0, len(docs))
	)
	for _, doc := range docs {
		row := make(map[string]any, len(doc))
		for _, item := range doc {
			key := fmt.Sprint(item.Key)
			if !seen[key] {
				seen[key] = true
				columns = append(columns, key)
			}
			row[key] = flattenYAML(item.Value)
		}
		rows = append(rows, row)
	}

	d, err := FromMaps(columns, rows)
	if err != nil {
		return nil, err
	}
	d.name = o.name
	return d, nil
}

// flattenYAML keeps scalars and renders collections as compact JSON.
func flattenYAML(v any) any {
	switch v.(type) {
	case yaml.MapSlice, map[string]any, map[any]any, []any:
		b, err := json.Marshal(toJSONCompatible(v))
		if err != nil {
			return fmt.Sprint(v)
		}
		return string(b)
	default:
		return v
	}
}

func toJSONCompatible(v any) any {
	switch t := v.(type) {
	case yaml.MapSlice:
		m := make(map[string]any, len(t))
		for _, item := range t {
			m[fmt.Sprint(item.Key)] = toJSONCompatible(item.Value)
		}
		return m
	case map[any]any:
		m := make(map[string]any, len(t))
		for k, val := range t {
			m[fmt.Sprint(k)] = toJSONCompatible(val)
		}
		return m
	case map[string]any:
		m := make(map[string]any, len(t))
		for k, val := range t {
			m[k] = toJSONCompatible(val)
		}
		return m
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = toJSONCompatible(val)
		}
		return out
	default:
		return t
	}
}
