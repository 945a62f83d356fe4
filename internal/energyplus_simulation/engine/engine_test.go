package engine

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eplus-at/eplus-resources/internal/energyplus_simulation/domain"
	"github.com/eplus-at/eplus-resources/internal/platform/logger"
)

const sampleErr = `Program Version,EnergyPlus, Version 23.2.0
   ** Warning ** Weather file location will be used rather than entered Location object.
   **   ~~~   ** ..Location object=SALZBURG
   ** Warning ** GetSurfaceData: Very small surface area
   ************* EnergyPlus Completed Successfully-- 2 Warning; 0 Severe Errors; Elapsed Time=00hr 00min  3.21sec
`

func TestSummarize(t *testing.T) {
	s := Summarize(splitLines(sampleErr))
	assert.True(t, s.Completed)
	assert.Equal(t, 2, s.Warnings)
	assert.Equal(t, 0, s.SevereErrors)
	assert.False(t, s.Fatal)

	failed := []string{
		"   ** Severe  ** Node connection error",
		"   **  Fatal  ** Errors occurred on processing input file.",
		"   ************* EnergyPlus Terminated--Fatal Error Detected. 0 Warning; 1 Severe Errors; Elapsed Time=00hr 00min  0.10sec",
	}
	s = Summarize(failed)
	assert.False(t, s.Completed)
	assert.True(t, s.Fatal)
	assert.Equal(t, 1, s.SevereErrors)
}

func TestReadTail(t *testing.T) {
	path := filepath.Join(t.TempDir(), ErrFile)
	require.NoError(t, os.WriteFile(path, []byte("a\r\nb\r\nc\r\nd\r\n"), 0o644))

	tail, err := ReadTail(path, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "d"}, tail)

	tail, err = ReadTail(path, 15)
	require.NoError(t, err)
	assert.Len(t, tail, 4)
}

func TestArgs(t *testing.T) {
	req := Request{IDFPath: "model.idf", WeatherFile: "w.epw", OutputDir: "out"}

	r := NewRunner(Options{ReadVars: true}, logger.NewNop())
	assert.Equal(t, []string{"-w", "w.epw", "-d", "out", "-r", "model.idf"}, r.Args(req))

	r = NewRunner(Options{ExpandObjects: true}, logger.NewNop())
	assert.Equal(t, []string{"-x", "-w", "w.epw", "-d", "out", "model.idf"}, r.Args(req))
}

func TestLocate_NotFound(t *testing.T) {
	_, err := Locate("definitely-not-energyplus-xyz", filepath.Join(t.TempDir(), "missing"))
	assert.ErrorIs(t, err, domain.ErrEngineNotFound)
}

func TestLocate_Root(t *testing.T) {
	root := t.TempDir()
	exe := filepath.Join(root, executableName())
	require.NoError(t, os.WriteFile(exe, []byte("#!/bin/sh\n"), 0o755))

	got, err := Locate("", root)
	require.NoError(t, err)
	assert.Equal(t, exe, got)
}

// fakeEngine writes a shell script that mimics EnergyPlus output.
func fakeEngine(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake engine needs a POSIX shell")
	}
	path := filepath.Join(t.TempDir(), "energyplus")
	script := "#!/bin/sh\n" +
		"while [ $# -gt 1 ]; do case \"$1\" in -d) OUT=\"$2\"; shift 2;; *) shift;; esac; done\n" +
		body
	require.NoError(t, os.WriteFile(path, []byte(script), 0o755))
	return path
}

func TestRun_Success(t *testing.T) {
	bin := fakeEngine(t, `echo "   ** Warning ** one" > "$OUT/eplusout.err"
echo "   ************* EnergyPlus Completed Successfully-- 1 Warning; 0 Severe Errors; Elapsed Time=00hr 00min  1.00sec" >> "$OUT/eplusout.err"
touch "$OUT/eplusout.csv" "$OUT/eplustbl.htm"
exit 0
`)
	out := filepath.Join(t.TempDir(), "out")
	r := NewRunner(Options{Binary: bin}, logger.NewNop())

	res, err := r.Run(context.Background(), Request{IDFPath: "m.idf", WeatherFile: "w.epw", OutputDir: out})
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, 0, res.ExitCode)
	assert.True(t, res.Summary.Completed)
	assert.Equal(t, 1, res.Summary.Warnings)
	assert.True(t, res.OutputFiles[CSVFile])
	assert.True(t, res.OutputFiles[TableFile])
	assert.False(t, res.OutputFiles[ESOFile])
	assert.Len(t, res.ErrTail, 2)
}

func TestRun_Failure(t *testing.T) {
	bin := fakeEngine(t, `echo "   **  Fatal  ** broken" > "$OUT/eplusout.err"
echo "bad input" >&2
exit 3
`)
	out := filepath.Join(t.TempDir(), "out")
	r := NewRunner(Options{Binary: bin}, logger.NewNop())

	res, err := r.Run(context.Background(), Request{IDFPath: "m.idf", WeatherFile: "w.epw", OutputDir: out})
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, 3, res.ExitCode)
	assert.Contains(t, res.Stderr, "bad input")
	assert.True(t, res.Summary.Fatal)
	assert.False(t, res.OutputFiles[CSVFile])
}

func TestRun_Cancelled(t *testing.T) {
	bin := fakeEngine(t, "sleep 5\n")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := NewRunner(Options{Binary: bin}, logger.NewNop())
	_, err := r.Run(ctx, Request{IDFPath: "m.idf", WeatherFile: "w.epw", OutputDir: t.TempDir()})
	assert.ErrorIs(t, err, context.Canceled)
}
