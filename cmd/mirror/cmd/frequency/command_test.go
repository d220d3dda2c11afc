package frequency_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/mirror/cmd/application"
	"github.com/agentstation/mirror/cmd/mirror/cmd/frequency"
	"github.com/agentstation/mirror/internal/cmd/comparison"
)

func execute(t *testing.T, format, mirror string) string {
	t.Helper()
	dir := t.TempDir()
	groundPath := filepath.Join(dir, "ground.csv")
	mirrorPath := filepath.Join(dir, "mirror.csv")
	require.NoError(t, os.WriteFile(groundPath, []byte("id,name,city\n1,ann,rome\n2,bob,oslo\n3,cid,lima\n"), 0o600))
	require.NoError(t, os.WriteFile(mirrorPath, []byte(mirror), 0o600))

	app := &application.Mock{
		OutputFormatFunc: func() string { return format },
		ComparisonFunc: func() comparison.Settings {
			return comparison.Settings{Ground: groundPath, Mirror: mirrorPath, Keys: []string{"id"}}
		},
	}
	cmd := frequency.NewCommand(app)
	var buf, stderr bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&stderr)
	cmd.SetArgs(nil)
	require.NoError(t, cmd.Execute())
	return buf.String()
}

func TestErrorsJSON(t *testing.T) {
	out := execute(t, "json", "id,name,city\n1,ann,roma\n2,bobby,oslo\n3,cyd,lima\n")
	assert.Contains(t, out, `"signature": "name:exact-match"`)
	assert.Contains(t, out, `"count": 2`)
	assert.Contains(t, out, `"signature": "city:exact-match"`)
}

func TestErrorsTable(t *testing.T) {
	out := execute(t, "table", "id,name,city\n1,ann,roma\n2,bob,oslo\n3,cid,lima\n")
	assert.Contains(t, out, "city:exact-match")
	assert.Contains(t, out, "100")
}

func TestErrorsNone(t *testing.T) {
	out := execute(t, "table", "id,name,city\n1,ann,rome\n2,bob,oslo\n3,cid,lima\n")
	assert.Equal(t, "No diverging records.\n", out)
}
