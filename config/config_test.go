package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newViper(t *testing.T) *viper.Viper {
	t.Helper()
	v := viper.New()
	SetDefaults(v)
	configureEnv(v)
	// Point at an empty directory so a developer's own config never leaks in.
	v.SetConfigName(".heartdash")
	v.SetConfigType("yaml")
	v.AddConfigPath(t.TempDir())
	return v
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(newViper(t))
	require.NoError(t, err)

	assert.Equal(t, "all", cfg.Date)
	assert.Equal(t, TextOut, cfg.Output)
	assert.Equal(t, DefaultAddr, cfg.Addr)
	assert.Empty(t, cfg.LogFile)
	assert.Equal(t, DefaultYMin, cfg.Chart.YMin)
	assert.Equal(t, DefaultYMax, cfg.Chart.YMax)
	assert.Equal(t, DefaultTheme, cfg.Chart.Theme)
	assert.Equal(t, time.Local, cfg.Location())
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "heartdash.yaml")
	content := "date: \"2024-01-02\"\noutput: CSV\ntimezone: UTC\nchart:\n  y-min: 30\n  y-max: 200\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	v := viper.New()
	SetDefaults(v)
	v.SetConfigFile(path)

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-02", cfg.Date)
	assert.Equal(t, CSVOut, cfg.Output)
	assert.Equal(t, 30.0, cfg.Chart.YMin)
	assert.Equal(t, 200.0, cfg.Chart.YMax)
	assert.Equal(t, "UTC", cfg.Location().String())
}

func TestLoadEnvironment(t *testing.T) {
	t.Setenv("HEARTDASH_ADDR", "0.0.0.0:9090")
	t.Setenv("HEARTDASH_LOG_LEVEL", "debug")

	v := newViper(t)

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:9090", cfg.Addr)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  any
	}{
		{"unknown output", "output", "xml"},
		{"unknown color", "color", "sometimes"},
		{"unknown log level", "log-level", "loud"},
		{"empty addr", "addr", ""},
		{"inverted y axis", "chart.y-min", 200.0},
		{"bad timezone", "timezone", "Mars/Olympus_Mons"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := newViper(t)
			v.Set(tt.key, tt.val)

			_, err := Load(v)
			assert.Error(t, err)
		})
	}
}

func TestServeLogFile(t *testing.T) {
	v := newViper(t)
	assert.Equal(t, DefaultLogFile, ServeLogFile(v))

	t.Setenv("HEARTDASH_LOG_FILE", "/tmp/heartdash.log")
	assert.Equal(t, "/tmp/heartdash.log", ServeLogFile(v))
	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/heartdash.log", cfg.LogFile)
}

func TestServeLogFileDisabledByConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "heartdash.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log-file: \"\"\n"), 0o644))

	v := viper.New()
	SetDefaults(v)
	ConfigureSources(v, path)
	require.NoError(t, v.ReadInConfig())

	assert.Empty(t, ServeLogFile(v))
}
