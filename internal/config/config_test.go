package config

import (
	"testing"
	"time"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/philipparndt/gospatial/pkg/quadtree"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "info", cfg.LogLevel)
	require.Equal(t, 20, cfg.MaxListLen)
	require.Equal(t, 8, cfg.MaxDepth)
	require.Equal(t, 300*time.Millisecond, cfg.WatchDebounce)
	require.Equal(t, "openscad", cfg.OpenSCADPath)
	require.Equal(t, quadtree.FixedDepth(20, 8), cfg.SplitPolicy())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("GOSPATIAL_LOG_LEVEL", "debug")
	t.Setenv("GOSPATIAL_MAX_LIST_LEN", "4")
	t.Setenv("GOSPATIAL_MAX_DEPTH", "3")
	t.Setenv("GOSPATIAL_VIEWPORT_WIDTH", "640")
	t.Setenv("GOSPATIAL_WATCH_DEBOUNCE", "1s")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "debug", cfg.LogLevel)
	require.Equal(t, 640.0, cfg.ViewportWidth)
	require.Equal(t, time.Second, cfg.WatchDebounce)
	require.Equal(t, quadtree.FixedDepth(4, 3), cfg.SplitPolicy())

	t.Setenv("GOSPATIAL_DYNAMIC_DEPTH", "true")
	cfg, err = Load()
	require.NoError(t, err)
	require.Equal(t, quadtree.DynamicDepth(), cfg.SplitPolicy())
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "unparsable depth", key: "GOSPATIAL_MAX_DEPTH", value: "deep"},
		{name: "zero list length", key: "GOSPATIAL_MAX_LIST_LEN", value: "0"},
		{name: "negative depth", key: "GOSPATIAL_MAX_DEPTH", value: "-1"},
		{name: "zero width", key: "GOSPATIAL_VIEWPORT_WIDTH", value: "0"},
		{name: "negative debounce", key: "GOSPATIAL_WATCH_DEBOUNCE", value: "-1s"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Setenv(test.key, test.value)
			_, err := Load()
			require.Error(t, err)
			require.True(t, errors.IsType(err, ErrTypeConfig))
		})
	}
}
