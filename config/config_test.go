package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vasalvit/svgplot/plot"
	"github.com/vasalvit/svgplot/svg"
)

func env(vars map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := vars[k]
		return v, ok
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	require.Equal(t, plot.DefaultParams(), cfg.Params())
	require.Equal(t, svg.WarnErrorMode, cfg.Mode())
	require.Equal(t, 800, cfg.PreviewWidth)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "svgplot.yaml")
	require.NoError(t, os.WriteFile(path, []byte("pen_down_height: 40\nerror_mode: strict\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 40.0, cfg.PenDownHeight)
	require.Equal(t, 1000.0, cfg.MaxLineSpeed)
	require.Equal(t, svg.StrictErrorMode, cfg.Mode())
}

func TestLoadErrors(t *testing.T) {
	_, err := Load("/nonexistent/path/to/svgplot.yaml")
	require.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("pen_down_height: [1\n"), 0644))
	_, err = Load(path)
	require.Error(t, err)
}

func TestLoadOrDefault(t *testing.T) {
	cfg, err := LoadOrDefault("")
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)

	cfg, err = LoadOrDefault(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "svgplot.yaml")
	cfg := Default()
	cfg.OutputDir = "out"
	cfg.Preview = true
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, cfg, loaded)

	require.Error(t, InitConfig(path))
	fresh := filepath.Join(t.TempDir(), "fresh.yaml")
	require.NoError(t, InitConfig(fresh))
	loaded, err = Load(fresh)
	require.NoError(t, err)
	require.Equal(t, Default(), loaded)
}

func TestApplyEnv(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.ApplyEnv(env(map[string]string{
		EnvPenUpHeight:   "15",
		EnvPenDownHeight: "",
		EnvMaxLineSpeed:  "2500.5",
		EnvOutputDir:     "/tmp/plots",
	})))
	require.Equal(t, 15.0, cfg.PenUpHeight)
	require.Equal(t, 100.0, cfg.PenDownHeight)
	require.Equal(t, 2500.5, cfg.MaxLineSpeed)
	require.Equal(t, "/tmp/plots", cfg.OutputDir)

	err := cfg.ApplyEnv(env(map[string]string{EnvMaxLineSpeed: "fast"}))
	require.True(t, errors.Is(err, ErrInvalid))
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.MaxLineSpeed = 0
	require.True(t, errors.Is(cfg.Validate(), ErrInvalid))

	cfg = Default()
	cfg.ErrorMode = "loud"
	require.True(t, errors.Is(cfg.Validate(), ErrInvalid))

	cfg = Default()
	cfg.Preview = true
	cfg.PreviewWidth = -1
	require.True(t, errors.Is(cfg.Validate(), ErrInvalid))
}
