package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	lerrors "struct-layout/internal/errors"
	"struct-layout/internal/textfmt"
)

const universeV1 = `
composites:
  - {kind: struct, name: point, fields: [{name: x, type: int}, {name: y, type: int}]}
  - {kind: struct, name: unused, fields: [{name: z, type: int}]}
  - kind: struct
    name: shape
    fields:
      - {name: origin, type: struct point}
      - {name: next, type: "struct shape*"}
      - {name: other, type: "struct unused*"}
`

const universeV2 = `
composites:
  - {kind: struct, name: point, fields: [{name: x, type: long}, {name: y, type: long}]}
  - {kind: struct, name: unused, fields: [{name: z, type: int}]}
  - kind: struct
    name: shape
    fields:
      - {name: origin, type: struct point}
      - {name: next, type: "struct shape*"}
      - {name: other, type: "struct unused*"}
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer

	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(""))

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestExtract_ToFile(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "v1.yaml", universeV1)
	out := filepath.Join(dir, "layouts", "shape.layout")

	_, _, err := run(t, "extract", "--source", "universe", "--struct", "shape", "-o", out, input)
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)

	tbl, err := textfmt.Unmarshal(data)
	require.NoError(t, err)
	assert.Equal(t, []string{"point", "shape"}, tbl.Names())
}

func TestExtract_Stdout(t *testing.T) {
	input := writeFile(t, t.TempDir(), "v1.yaml", universeV1)

	stdout, _, err := run(t, "extract", "--source", "universe", "-s", "point", input)
	require.NoError(t, err)
	assert.Equal(t, "point = {\n\t\"x\": (0, Basic(32, \"int\")),\n\t\"y\": (32, Basic(32, \"int\")),\n}\n", stdout)
}

func TestExtract_Dump(t *testing.T) {
	input := writeFile(t, t.TempDir(), "v1.yaml", universeV1)

	_, stderr, err := run(t, "extract", "--source", "universe", "-s", "point", "--dump", input)
	require.NoError(t, err)
	assert.Contains(t, stderr, "layout.Table")
}

func TestExtract_NotFoundWritesNothing(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "v1.yaml", universeV1)
	out := writeFile(t, dir, "keep.layout", "previous\n")

	_, stderr, err := run(t, "extract", "--source", "universe", "-s", "shap", "-o", out, input)
	require.Error(t, err)
	assert.True(t, errors.Is(err, lerrors.ErrTypeNotFound))
	assert.Contains(t, stderr, `did you mean "shape"`)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "previous\n", string(data))
}

func TestExtract_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "v1.yaml", universeV1)
	out := filepath.Join(dir, "point.layout")
	cfg := writeFile(t, dir, "layout.yaml",
		"source: universe\nstruct: point\ninputs: ["+input+"]\noutput: "+out+"\nlog_level: debug\n")

	_, stderr, err := run(t, "--config", cfg, "extract")
	require.NoError(t, err)
	assert.FileExists(t, out)
	assert.Contains(t, stderr, "expanded composite")
	assert.Contains(t, stderr, "wrote layout")
}

func TestExtract_InvalidConfig(t *testing.T) {
	_, _, err := run(t, "extract", "--source", "pdb", "-s", "x", "in.pdb")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown source "pdb"`)

	_, _, err = run(t, "--log-level", "loud", "extract")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log level")
}

func TestCheck(t *testing.T) {
	dir := t.TempDir()
	v1 := writeFile(t, dir, "v1.yaml", universeV1)
	v2 := writeFile(t, dir, "v2.yaml", universeV2)
	baseline := filepath.Join(dir, "shape.layout")

	_, _, err := run(t, "extract", "--source", "universe", "-s", "shape", "-o", baseline, v1)
	require.NoError(t, err)

	stdout, _, err := run(t, "check", "--source", "universe", "-s", "shape", "-b", baseline, v1)
	require.NoError(t, err)
	assert.Contains(t, stdout, "2 of 2 composites unchanged")

	stdout, _, err = run(t, "check", "--source", "universe", "-s", "shape", "-b", baseline, v2)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "incompatible")
	assert.Contains(t, stdout, "error: point.y: [field-moved] offset changed from 32 to 64 bits")
	assert.Contains(t, stdout, "error: shape.origin: [field-type-changed]")
}

func TestCheck_BadBaseline(t *testing.T) {
	dir := t.TempDir()
	v1 := writeFile(t, dir, "v1.yaml", universeV1)
	baseline := writeFile(t, dir, "bad.layout", "point = { \"x\": (0, Int(32)) }\n")

	_, _, err := run(t, "check", "--source", "universe", "-s", "point", "-b", baseline, v1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, lerrors.ErrParse))

	_, _, err = run(t, "check", "--source", "universe", "-s", "point", v1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no baseline")
}

func TestShow(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "p.layout", "point = {\n\t\"x\": (0, Basic(32, \"int\")),\n\t\"y\": (32, Basic(32, \"int\")),\n}\n")

	stdout, _, err := run(t, "show", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, "point  (2 fields, 64 bits used)")
	assert.Contains(t, stdout, "FIELD")

	_, _, err = run(t, "show", writeFile(t, dir, "bad.layout", "point = {"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, lerrors.ErrParse))
}
