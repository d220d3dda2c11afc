package output_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/mirror/internal/output"
)

func TestParseFormat(t *testing.T) {
	for _, s := range []string{"table", "JSON", "yaml", "wide", "text", "markdown", ""} {
		_, err := output.ParseFormat(s)
		assert.NoError(t, err, s)
	}
	_, err := output.ParseFormat("xml")
	assert.Error(t, err)
}

func TestDetectFormat(t *testing.T) {
	assert.Equal(t, output.FormatYAML, output.DetectFormat("YAML"))
}

func TestTableFormatter(t *testing.T) {
	var buf bytes.Buffer
	err := output.NewFormatter(output.FormatTable).Format(&buf, output.Data{
		Title:           "KEY MATCHING",
		Headers:         []string{"Status", "Records"},
		Rows:            [][]string{{"matched", "2"}, {"unmatched_mirror", "1"}},
		ColumnAlignment: []output.Align{output.AlignLeft, output.AlignRight},
	})
	require.NoError(t, err)

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "KEY MATCHING\n"))
	assert.Contains(t, out, "unmatched_mirror")
	assert.Contains(t, strings.ToUpper(out), "RECORDS")
}

func TestTableFormatterMultiple(t *testing.T) {
	var buf bytes.Buffer
	err := output.NewFormatter(output.FormatWide).Format(&buf, []output.Data{
		{Title: "first", Headers: []string{"a"}, Rows: [][]string{{"1"}}},
		{Title: "second", Headers: []string{"b"}, Rows: [][]string{{"2"}}},
	})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "first")
	assert.Contains(t, buf.String(), "second")
}

func TestTableFormatterWideOnly(t *testing.T) {
	data := output.Data{
		Headers:  []string{"Name", "Aliases"},
		Rows:     [][]string{{"similarity-ratio", "sequence-matcher"}},
		WideOnly: []int{1},
	}

	var narrow bytes.Buffer
	require.NoError(t, output.NewFormatter(output.FormatTable).Format(&narrow, data))
	assert.Contains(t, narrow.String(), "similarity-ratio")
	assert.NotContains(t, narrow.String(), "sequence-matcher")
	assert.NotContains(t, strings.ToUpper(narrow.String()), "ALIASES")

	var wide bytes.Buffer
	require.NoError(t, output.NewFormatter(output.FormatWide).Format(&wide, data))
	assert.Contains(t, wide.String(), "similarity-ratio")
	assert.Contains(t, wide.String(), "sequence-matcher")
}

func TestTableFormatterFallsBackToJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, output.NewFormatter(output.FormatTable).Format(&buf, map[string]int{"matched": 2}))
	assert.JSONEq(t, `{"matched": 2}`, buf.String())
}

func TestStructuredFormatters(t *testing.T) {
	payload := map[string]int{"matched": 2}

	var js bytes.Buffer
	require.NoError(t, output.NewFormatter(output.FormatJSON).Format(&js, payload))
	assert.JSONEq(t, `{"matched": 2}`, js.String())

	var ym bytes.Buffer
	require.NoError(t, output.NewFormatter(output.FormatYAML).Format(&ym, payload))
	assert.Equal(t, "matched: 2\n", ym.String())
}

func TestRender(t *testing.T) {
	table := output.Data{Headers: []string{"k"}, Rows: [][]string{{"table-value"}}}
	structured := map[string]string{"k": "structured-value"}

	var buf bytes.Buffer
	require.NoError(t, output.Render(&buf, output.FormatJSON, table, structured))
	assert.Contains(t, buf.String(), "structured-value")

	buf.Reset()
	require.NoError(t, output.Render(&buf, output.FormatTable, table, structured))
	assert.Contains(t, buf.String(), "table-value")
}
