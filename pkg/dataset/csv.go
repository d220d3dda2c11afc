package dataset

import (
	"encoding/csv"
	stderrors "errors"
	"io"

	"github.com/agentstation/mirror/pkg/errors"
)

// ReadCSV reads a delimited table whose first row holds the column names.
func ReadCSV(r io.Reader, opts ...Option) (*Dataset, error) {
	o := applyOptions(opts)

	cr := csv.NewReader(r)
	cr.Comma = o.delimiter
	cr.ReuseRecord = false

	header, err := cr.Read()
	if err != nil {
		if stderrors.Is(err, io.EOF) {
			return nil, errors.NewParseError("csv", o.name, "missing header row", err)
		}
		return nil, csvError(o.name, err)
	}

	d, err := newDataset(header)
	if err != nil {
		return nil, err
	}
	d.name = o.name

	for {
		fields, err := cr.Read()
		if stderrors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, csvError(o.name, err)
		}
		rec := make(Record, len(fields))
		for j, f := range fields {
			if o.infer {
				rec[j] = infer(f)
			} else {
				rec[j] = f
			}
		}
		d.records = append(d.records, rec)
	}
	return d, nil
}

func csvError(name string, err error) error {
	pe := errors.NewParseError("csv", name, err.Error(), err)
	var perr *csv.ParseError
	if stderrors.As(err, &perr) {
		pe.Line = perr.Line
		pe.Column = perr.Column
		pe.Message = perr.Err.Error()
	}
	return pe
}
