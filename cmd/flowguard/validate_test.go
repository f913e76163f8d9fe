package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/flowguard"
	"github.com/aretw0/flowguard/internal/testutils"
	"github.com/aretw0/flowguard/pkg/adapters/file"
	"github.com/aretw0/flowguard/pkg/domain"
)

const goodFlow = `
nodes:
  - {id: start, type: start}
  - {id: hello, type: message, data: {text: "Olá"}}
edges:
  - {from: start, to: hello}
`

const badFlow = `{
  "nodes": [
    {"id": "start", "type": "start"},
    {"id": "hook", "type": "webhook", "data": {"url": "http://localhost/hook"}}
  ],
  "edges": [{"from": "start", "to": "hook"}]
}`

func seed(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	testutils.WriteFiles(t, dir, map[string]string{
		"good.yaml": goodFlow,
		"bad.json":  badFlow,
	})
	return dir
}

func TestRunValidate_TextAndExitStatus(t *testing.T) {
	dir := seed(t)
	var out bytes.Buffer

	err := runValidate(context.Background(), validateOptions{
		Paths:     []string{dir},
		Format:    "text",
		Out:       &out,
		Validator: flowguard.New(),
	})
	assert.ErrorIs(t, err, errInvalid)

	text := out.String()
	assert.Contains(t, text, "✘ bad (2 errors, 0 warnings)")
	assert.Contains(t, text, "✔ good (0 errors, 0 warnings)")
	assert.Contains(t, text, "webhook URL must use HTTPS")
	assert.Less(t, bytes.Index(out.Bytes(), []byte("bad")), bytes.Index(out.Bytes(), []byte("good")), "flows are sorted by ID")
}

func TestRunValidate_SingleValidFile(t *testing.T) {
	dir := seed(t)
	var out bytes.Buffer

	err := runValidate(context.Background(), validateOptions{
		Paths:     []string{filepath.Join(dir, "good.yaml")},
		Format:    "json",
		Out:       &out,
		Validator: flowguard.New(),
	})
	require.NoError(t, err)

	var entries []jsonEntry
	require.NoError(t, json.Unmarshal(out.Bytes(), &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "good", entries[0].FlowID)
	assert.True(t, entries[0].Result.IsValid)
	assert.Empty(t, entries[0].Markers.ErrorNodes)
}

func TestRunValidate_JSONMarkersAndReports(t *testing.T) {
	dir := seed(t)
	reportDir := filepath.Join(t.TempDir(), "reports")
	var out bytes.Buffer

	err := runValidate(context.Background(), validateOptions{
		Paths:     []string{dir},
		Format:    "json",
		ReportDir: reportDir,
		Out:       &out,
		Validator: flowguard.New(),
	})
	assert.ErrorIs(t, err, errInvalid)

	var entries []jsonEntry
	require.NoError(t, json.Unmarshal(out.Bytes(), &entries))
	require.Len(t, entries, 2)
	assert.Equal(t, []string{"hook"}, entries[0].Markers.ErrorNodes)

	report, err := file.NewReportStore(reportDir).LatestReport(context.Background(), "bad")
	require.NoError(t, err)
	assert.False(t, report.Result.IsValid)
	assert.NotEmpty(t, report.ID)
}

func TestRunValidate_Markdown(t *testing.T) {
	dir := seed(t)
	var out bytes.Buffer

	_ = runValidate(context.Background(), validateOptions{
		Paths:     []string{dir},
		Format:    "markdown",
		Out:       &out,
		Validator: flowguard.New(),
	})
	assert.Contains(t, out.String(), "# bad")
	assert.Contains(t, out.String(), "## Errors")
}

func TestRunValidate_Errors(t *testing.T) {
	var out bytes.Buffer
	opts := validateOptions{Out: &out, Validator: flowguard.New(), Format: "yaml"}

	opts.Paths = []string{seed(t)}
	assert.ErrorContains(t, runValidate(context.Background(), opts), "unknown format")

	opts.Paths = []string{filepath.Join(t.TempDir(), "missing.yaml")}
	assert.ErrorIs(t, runValidate(context.Background(), opts), os.ErrNotExist)

	opts.Paths = []string{t.TempDir()}
	opts.Source = "s3"
	assert.ErrorContains(t, runValidate(context.Background(), opts), "unknown source")
}

func TestPickFlow(t *testing.T) {
	a := &domain.Flow{ID: "a"}
	b := &domain.Flow{ID: "b"}

	got, err := pickFlow([]*domain.Flow{a}, "")
	require.NoError(t, err)
	assert.Same(t, a, got)

	_, err = pickFlow([]*domain.Flow{a, b}, "")
	assert.ErrorContains(t, err, "choose one with --flow")

	got, err = pickFlow([]*domain.Flow{a, b}, "b")
	require.NoError(t, err)
	assert.Same(t, b, got)

	_, err = pickFlow(nil, "")
	assert.ErrorIs(t, err, domain.ErrFlowNotFound)
	_, err = pickFlow([]*domain.Flow{a}, "z")
	assert.ErrorIs(t, err, domain.ErrFlowNotFound)
}

func TestCommands(t *testing.T) {
	dir := seed(t)

	run := func(args ...string) (string, error) {
		var out bytes.Buffer
		rootCmd.SetOut(&out)
		rootCmd.SetErr(&out)
		rootCmd.SetArgs(args)
		err := rootCmd.Execute()
		return out.String(), err
	}

	out, err := run("version")
	require.NoError(t, err)
	assert.Contains(t, out, "flowguard version")

	out, err = run("graph", filepath.Join(dir, "bad.json"), "--config", filepath.Join(dir, "none.yaml"))
	require.NoError(t, err)
	assert.Contains(t, out, "graph TD")
	assert.Contains(t, out, "class hook error;")

	_, err = run("validate", dir, "--format", "json", "--config", filepath.Join(dir, "none.yaml"))
	assert.ErrorIs(t, err, errInvalid)
}
