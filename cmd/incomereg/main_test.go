package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	d "github.com/invertedv/incomereg"
	ft "github.com/invertedv/incomereg/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the root command with args against sources written to a temp dir.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	dir := t.TempDir()
	eduPath, unempPath, e := ft.WriteSources(dir, ft.Counties(40))
	require.Nil(t, e)

	t.Setenv("INCOMEREG_EDUCATION_PATH", eduPath)
	t.Setenv("INCOMEREG_UNEMPLOYMENT_PATH", unempPath)
	t.Setenv("INCOMEREG_OUTPUT_DIR", filepath.Join(dir, "figures"))
	cfgFile := ""
	if len(args) > 0 && args[0] == "init" {
		cfgFile = filepath.Join(dir, "incomereg.yaml")
	}
	t.Setenv("INCOMEREG_CONFIG", cfgFile)

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	e = rootCmd.Execute()

	return buf.String(), e
}

func TestStep(t *testing.T) {
	out, e := execute(t, "step", "2")
	require.Nil(t, e)
	assert.Contains(t, out, "Step 2: Clean the Data")
	assert.Contains(t, out, "Total Observations: 40")

	_, e = execute(t, "step", "9")
	assert.ErrorIs(t, e, d.ErrUnknownStage)
}

func TestRunAll(t *testing.T) {
	out, e := execute(t, "run")
	require.Nil(t, e)
	for _, want := range []string{"Step 1: Import Data", "Step 4: Run Multiple Regression", "Step 8: View Interpretation"} {
		assert.Contains(t, out, want)
	}
}

func TestFigures(t *testing.T) {
	out, e := execute(t, "figures")
	require.Nil(t, e)

	dir := os.Getenv("INCOMEREG_OUTPUT_DIR")
	for _, name := range []string{"raw_1.html", "raw_4.png", "log_1.png", "log_4.html"} {
		_, e = os.Stat(filepath.Join(dir, name))
		assert.Nil(t, e, name)
	}

	assert.Contains(t, out, "wrote ")
}

func TestInit(t *testing.T) {
	out, e := execute(t, "init")
	require.Nil(t, e)
	assert.Contains(t, out, "config written to")

	_, e = os.Stat(os.Getenv("INCOMEREG_CONFIG"))
	assert.Nil(t, e)
}
