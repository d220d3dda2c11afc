package dataset_test

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/agentstation/mirror/pkg/dataset"
	"github.com/agentstation/mirror/pkg/errors"
)

func TestReadCSV(t *testing.T) {
	in := "id,name,score\n1,ann,0.5\n2,,7\n3,cid,x\n"

	d, err := dataset.ReadCSV(strings.NewReader(in), dataset.WithName("g.csv"))
	require.NoError(t, err)
	assert.Equal(t, "g.csv", d.Name())
	assert.Equal(t, []string{"id", "name", "score"}, d.Columns())
	assert.Equal(t, dataset.Record{int64(1), "ann", 0.5}, d.Record(0))
	assert.Equal(t, dataset.Record{int64(2), nil, int64(7)}, d.Record(1))
	assert.Equal(t, dataset.Record{int64(3), "cid", "x"}, d.Record(2))

	t.Run("without inference", func(t *testing.T) {
		d, err := dataset.ReadCSV(strings.NewReader(in), dataset.WithTypeInference(false))
		require.NoError(t, err)
		assert.Equal(t, dataset.Record{"2", "", "7"}, d.Record(1))
	})

	t.Run("delimiter", func(t *testing.T) {
		d, err := dataset.ReadCSV(strings.NewReader("id;name\n1;ann\n"), dataset.WithDelimiter(';'))
		require.NoError(t, err)
		assert.Equal(t, []string{"id", "name"}, d.Columns())
	})

	t.Run("empty input", func(t *testing.T) {
		_, err := dataset.ReadCSV(strings.NewReader(""))
		var pe *errors.ParseError
		assert.ErrorAs(t, err, &pe)
	})

	t.Run("ragged row", func(t *testing.T) {
		_, err := dataset.ReadCSV(strings.NewReader("id,name\n1\n"))
		var pe *errors.ParseError
		require.ErrorAs(t, err, &pe)
		assert.Equal(t, 2, pe.Line)
	})
}

func TestReadJSON(t *testing.T) {
	in := `[
		{"id": 1, "name": "ann"},
		{"id": 2, "name": null, "tags": ["a", "b"]},
		{"id": 3.5}
	]`
	d, err := dataset.ReadJSON(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "name", "tags"}, d.Columns())
	assert.Equal(t, dataset.Record{int64(1), "ann", nil}, d.Record(0))
	assert.Equal(t, dataset.Record{int64(2), nil, `["a","b"]`}, d.Record(1))
	assert.Equal(t, dataset.Record{3.5, nil, nil}, d.Record(2))

	_, err = dataset.ReadJSON(strings.NewReader(`{"id": 1}`))
	var pe *errors.ParseError
	assert.ErrorAs(t, err, &pe)
}

func TestReadYAML(t *testing.T) {
	in := `
- id: 1
  name: ann
  active: true
- id: 2
  name: bob
  meta:
    source: crm
`
	d, err := dataset.ReadYAML(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "name", "active", "meta"}, d.Columns())
	assert.Equal(t, dataset.Record{int64(1), "ann", true, nil}, d.Record(0))
	assert.Equal(t, `{"source":"crm"}`, d.At(1, 3))
}

func TestQuery(t *testing.T) {
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	defer db.Close()
	db.SetMaxOpenConns(1)

	ctx := context.Background()
	_, err = db.ExecContext(ctx, `CREATE TABLE people (id INTEGER, name TEXT, score REAL, blob BLOB)`)
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, `INSERT INTO people VALUES (1, 'ann', 0.5, X'6869'), (2, NULL, 2, NULL)`)
	require.NoError(t, err)

	d, err := dataset.Query(ctx, db, `SELECT id, name, score, blob FROM people ORDER BY id`)
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "name", "score", "blob"}, d.Columns())
	assert.Equal(t, dataset.Record{int64(1), "ann", 0.5, "hi"}, d.Record(0))
	assert.Equal(t, dataset.Record{int64(2), nil, 2.0, nil}, d.Record(1))

	_, err = dataset.Query(ctx, db, `SELECT * FROM missing`)
	var ioe *errors.IOError
	assert.ErrorAs(t, err, &ioe)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	write := func(name, content string) string {
		p := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
		return p
	}

	t.Run("csv", func(t *testing.T) {
		d, err := dataset.Load(ctx, write("g.csv", "id,name\n1,ann\n"))
		require.NoError(t, err)
		assert.Equal(t, "g.csv", d.Name())
		assert.Equal(t, 1, d.Len())
	})

	t.Run("tsv", func(t *testing.T) {
		d, err := dataset.Load(ctx, write("g.tsv", "id\tname\n1\tann\n"))
		require.NoError(t, err)
		assert.Equal(t, []string{"id", "name"}, d.Columns())
	})

	t.Run("json", func(t *testing.T) {
		d, err := dataset.Load(ctx, write("g.json", `[{"id":1}]`))
		require.NoError(t, err)
		assert.Equal(t, 1, d.Len())
	})

	t.Run("yml", func(t *testing.T) {
		d, err := dataset.Load(ctx, write("g.yml", "- id: 1\n"))
		require.NoError(t, err)
		assert.Equal(t, 1, d.Len())
	})

	t.Run("unsupported", func(t *testing.T) {
		_, err := dataset.Load(ctx, write("g.parquet", ""))
		assert.ErrorIs(t, err, errors.ErrInvalidInput)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := dataset.Load(ctx, filepath.Join(dir, "nope.csv"))
		var ioe *errors.IOError
		assert.ErrorAs(t, err, &ioe)
	})

	t.Run("sqlite", func(t *testing.T) {
		path := filepath.Join(dir, "g.db")
		db, err := sql.Open("sqlite", path)
		require.NoError(t, err)
		_, err = db.ExecContext(ctx, `CREATE TABLE t (id INTEGER, name TEXT)`)
		require.NoError(t, err)
		_, err = db.ExecContext(ctx, `INSERT INTO t VALUES (1, 'ann'), (2, 'bob')`)
		require.NoError(t, err)
		require.NoError(t, db.Close())

		d, err := dataset.Load(ctx, "sqlite://"+path+"?table=t")
		require.NoError(t, err)
		assert.Equal(t, 2, d.Len())
		assert.Equal(t, "g.db", d.Name())

		d, err = dataset.Load(ctx, "sqlite://"+path+"?query=SELECT+name+FROM+t+WHERE+id%3D2")
		require.NoError(t, err)
		assert.Equal(t, dataset.Record{"bob"}, d.Record(0))

		_, err = dataset.Load(ctx, "sqlite://"+path)
		assert.ErrorIs(t, err, errors.ErrInvalidInput)
	})
}
