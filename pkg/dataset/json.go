package dataset

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/agentstation/mirror/pkg/errors"
)

// ReadJSON reads an array of flat objects. Columns appear in first-seen
// order across all objects and fields a record lacks are null. Nested
// arrays and objects are kept as their compact JSON text.
func ReadJSON(r io.Reader, opts ...Option) (*Dataset, error) {
	o := applyOptions(opts)

	dec := json.NewDecoder(r)
	dec.UseNumber()

	if err := expectDelim(dec, '['); err != nil {
		return nil, errors.WrapParse("json", o.name, err)
	}

	var (
		columns []string
		seen    = map[string]bool{}
		rows    []map[string]any
	)
	for dec.More() {
		row, keys, err := readObject(dec)
		if err != nil {
			return nil, errors.WrapParse("json", o.name, err)
		}
		for _, k := range keys {
			if !seen[k] {
				seen[k] = true
				columns = append(columns, k)
			}
		}
		rows = append(rows, row)
	}
	if err := expectDelim(dec, ']'); err != nil {
		return nil, errors.WrapParse("json", o.name, err)
	}

	d, err := FromMaps(columns, rows)
	if err != nil {
		return nil, err
	}
	d.name = o.name
	return d, nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("expected %q, got %v", want, tok)
	}
	return nil
}

func readObject(dec *json.Decoder) (map[string]any, []string, error) {
	if err := expectDelim(dec, '{'); err != nil {
		return nil, nil, err
	}
	row := map[string]any{}
	var keys []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, nil, fmt.Errorf("expected object key, got %v", tok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, nil, err
		}
		v, err := decodeScalar(raw)
		if err != nil {
			return nil, nil, fmt.Errorf("field %q: %w", key, err)
		}
		if _, dup := row[key]; !dup {
			keys = append(keys, key)
		}
		row[key] = v
	}
	if err := expectDelim(dec, '}'); err != nil {
		return nil, nil, err
	}
	return row, keys, nil
}

func decodeScalar(raw json.RawMessage) (any, error) {
	if len(raw) > 0 && (raw[0] == '{' || raw[0] == '[') {
		var nested any
		if err := json.Unmarshal(raw, &nested); err != nil {
			return nil, err
		}
		compact, err := json.Marshal(nested)
		if err != nil {
			return nil, err
		}
		return string(compact), nil
	}
	var v any
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}
