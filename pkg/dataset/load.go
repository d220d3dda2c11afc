package dataset

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/agentstation/mirror/pkg/errors"
)

// SQLiteScheme prefixes sources read through the "sqlite" database/sql
// driver. The driver must be registered by the caller.
const SQLiteScheme = "sqlite://"

// Load reads a dataset from a file path or a sqlite:// source.
//
// Files are dispatched by extension: .csv, .tsv, .json, .yaml and .yml.
// A sqlite source has the form sqlite://<path>?query=<sql> or
// sqlite://<path>?table=<name>.
func Load(ctx context.Context, source string, opts ...Option) (*Dataset, error) {
	if strings.HasPrefix(source, SQLiteScheme) {
		return loadSQLite(ctx, source, opts)
	}

	f, err := os.Open(source)
	if err != nil {
		return nil, errors.WrapIO("open", source, err)
	}
	defer f.Close()

	opts = append([]Option{WithName(filepath.Base(source))}, opts...)
	switch strings.ToLower(filepath.Ext(source)) {
	case ".csv":
		return ReadCSV(f, opts...)
	case ".tsv":
		return ReadCSV(f, append(opts, WithDelimiter('\t'))...)
	case ".json":
		return ReadJSON(f, opts...)
	case ".yaml", ".yml":
		return ReadYAML(f, opts...)
	default:
		return nil, errors.NewValidationError("source", source,
			fmt.Sprintf("unsupported dataset format %q", filepath.Ext(source)))
	}
}

func loadSQLite(ctx context.Context, source string, opts []Option) (*Dataset, error) {
	o := applyOptions(opts)

	rest := strings.TrimPrefix(source, SQLiteScheme)
	path, rawQuery, _ := strings.Cut(rest, "?")
	if path == "" {
		return nil, errors.NewValidationError("source", source, "sqlite source has no database path")
	}
	params, err := url.ParseQuery(rawQuery)
	if err != nil {
		return nil, errors.NewValidationError("source", source, err.Error())
	}

	query := params.Get("query")
	if query == "" {
		query = o.query
	}
	if query == "" && params.Get("table") != "" {
		query = "SELECT * FROM " + strconv.Quote(params.Get("table"))
	}
	if query == "" {
		return nil, errors.NewValidationError("source", source, "sqlite source needs a query or table parameter")
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.WrapIO("open", path, err)
	}
	defer db.Close()

	d, err := Query(ctx, db, query)
	if err != nil {
		return nil, err
	}
	name := o.name
	if name == "" {
		name = filepath.Base(path)
	}
	return d.WithName(name), nil
}
