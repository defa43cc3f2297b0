package batch

import (
	"bytes"
	"context"
	"errors"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/vasalvit/svgplot/plot"
	"github.com/vasalvit/svgplot/svg"
)

const square = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100 100" width="100" height="100">
	<path d="M10 10 H90 V90 H10 Z"/>
</svg>`

func writeInput(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func testOptions(logs *bytes.Buffer) Options {
	return Options{
		Params:       plot.DefaultParams(),
		ErrorMode:    svg.WarnErrorMode,
		PreviewWidth: 100,
		Logger:       log.New(logs, "", 0),
	}
}

func TestOutputPaths(t *testing.T) {
	out := OutputPaths(filepath.Join("art", "cat.svg"), "")
	require.Equal(t, filepath.Join("art", "cat.stripped.svg"), out.Drawing)
	require.Equal(t, filepath.Join("art", "cat.gcode"), out.Program)
	require.Equal(t, filepath.Join("art", "cat.preview.png"), out.Preview)

	out = OutputPaths(filepath.Join("art", "cat.svg"), "out")
	require.Equal(t, filepath.Join("out", "cat.gcode"), out.Program)
}

func TestExpand(t *testing.T) {
	dir := t.TempDir()
	a := writeInput(t, dir, "a.svg", square)
	b := writeInput(t, dir, "b.svg", square)
	writeInput(t, dir, "notes.txt", "")

	files, err := Expand([]string{filepath.Join(dir, "*.svg"), a, "missing.svg"})
	require.NoError(t, err)
	require.Equal(t, []string{a, b, "missing.svg"}, files)

	_, err = Expand([]string{filepath.Join(dir, "*.png")})
	require.Error(t, err)

	_, err = Expand([]string{"[bad"})
	require.Error(t, err)
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.gcode")
	require.NoError(t, writeFile(path, []byte("old")))
	require.NoError(t, writeFile(path, []byte("new")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "new", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	require.Error(t, writeFile(filepath.Join(dir, "missing", "x.gcode"), nil))
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	good := writeInput(t, dir, "good.svg", square)
	bad := writeInput(t, dir, "bad.svg", `<svg><path d="M0 0 L1 1"/></svg>`)
	other := writeInput(t, dir, "other.svg", square)
	missing := filepath.Join(dir, "missing.svg")

	var logs bytes.Buffer
	opts := testOptions(&logs)
	opts.Preview = true
	err := Run(context.Background(), []string{good, bad, missing, other}, opts)
	require.Error(t, err)
	require.True(t, errors.Is(err, svg.ErrNoSize), "%v", err)
	require.True(t, errors.Is(err, os.ErrNotExist), "%v", err)

	for _, in := range []string{good, other} {
		out := OutputPaths(in, "")
		program, err := os.ReadFile(out.Program)
		require.NoError(t, err)
		require.True(t, strings.HasPrefix(string(program), "M3 S0\n"))
		require.True(t, strings.HasSuffix(string(program), "M3 S0\nG0 X0 Y0\n"))
		require.Contains(t, string(program), "G1 X90 Y10 F1000\n")

		drawing, err := os.ReadFile(out.Drawing)
		require.NoError(t, err)
		require.Contains(t, string(drawing), `stroke="red"`)

		_, err = os.Stat(out.Preview)
		require.NoError(t, err)
	}
	_, err = os.Stat(OutputPaths(bad, "").Program)
	require.True(t, os.IsNotExist(err))

	require.Contains(t, logs.String(), "2 of 4 file(s) converted")
}

func TestRunOutputDir(t *testing.T) {
	dir := t.TempDir()
	in := writeInput(t, dir, "good.svg", square)
	outDir := filepath.Join(dir, "out", "nested")

	var logs bytes.Buffer
	opts := testOptions(&logs)
	opts.OutputDir = outDir
	require.NoError(t, Run(context.Background(), []string{in}, opts))

	_, err := os.Stat(filepath.Join(outDir, "good.gcode"))
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(outDir, "good.preview.png"))
	require.True(t, os.IsNotExist(err))
}

func TestRunCancelled(t *testing.T) {
	dir := t.TempDir()
	in := writeInput(t, dir, "good.svg", square)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := Run(ctx, []string{in}, Options{Params: plot.DefaultParams()})
	require.True(t, errors.Is(err, context.Canceled))
	_, err = os.Stat(OutputPaths(in, "").Program)
	require.True(t, os.IsNotExist(err))
}

func TestWatch(t *testing.T) {
	dir := t.TempDir()
	in := writeInput(t, dir, "live.svg", square)
	out := OutputPaths(in, "")

	var logs bytes.Buffer
	opts := testOptions(&logs)
	opts.Logger = nil

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Watch(ctx, []string{in}, opts, 20*time.Millisecond) }()

	// give the watcher time to register before changing the file
	time.Sleep(200 * time.Millisecond)
	writeInput(t, dir, "live.svg", strings.Replace(square, "H90", "H80", 1))

	require.Eventually(t, func() bool {
		data, err := os.ReadFile(out.Program)
		return err == nil && strings.Contains(string(data), "G1 X80 Y10 F1000")
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	require.NoError(t, <-done)
}
