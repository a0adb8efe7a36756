package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func lookupMap(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func TestDefaults(t *testing.T) {
	cfg, err := FromLookup(lookupMap(nil))
	require.NoError(t, err)

	require.Equal(t, DefaultPort, cfg.Port)
	require.Equal(t, ":8080", cfg.Addr())
	require.Equal(t, 3*time.Second, cfg.CardInterval)
	require.Equal(t, 4*time.Second, cfg.DetailInterval)
	require.Equal(t, DefaultMountTTL, cfg.MountTTL)
	require.Equal(t, DefaultMaxCarousels, cfg.MaxCarousels)
	require.Equal(t, DefaultStaticDir, cfg.StaticDir)
	require.Empty(t, cfg.AdminToken)
}

func TestOverrides(t *testing.T) {
	cfg, err := FromLookup(lookupMap(map[string]string{
		"PORT":                  "9000",
		"GIN_MODE":              "release",
		"FOLIO_CONTENT":         "/etc/folio/site.toml",
		"FOLIO_CARD_INTERVAL":   "off",
		"FOLIO_DETAIL_INTERVAL": "2500ms",
		"FOLIO_MOUNT_TTL":       "30s",
		"FOLIO_MAX_CAROUSELS":   "0",
		"FOLIO_ADMIN_TOKEN":     " secret ",
	}))
	require.NoError(t, err)

	require.Equal(t, "9000", cfg.Port)
	require.Equal(t, "release", cfg.Mode)
	require.Equal(t, "/etc/folio/site.toml", cfg.ContentPath)
	require.Zero(t, cfg.CardInterval)
	require.Equal(t, 2500*time.Millisecond, cfg.DetailInterval)
	require.Equal(t, 30*time.Second, cfg.MountTTL)
	require.Zero(t, cfg.MaxCarousels)
	require.Equal(t, "secret", cfg.AdminToken)
}

func TestInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"bad interval", map[string]string{"FOLIO_CARD_INTERVAL": "soon"}},
		{"negative interval", map[string]string{"FOLIO_DETAIL_INTERVAL": "-1s"}},
		{"bad ttl", map[string]string{"FOLIO_MOUNT_TTL": "forever"}},
		{"bad carousel cap", map[string]string{"FOLIO_MAX_CAROUSELS": "lots"}},
		{"negative carousel cap", map[string]string{"FOLIO_MAX_CAROUSELS": "-5"}},
		{"zero ttl", map[string]string{"FOLIO_MOUNT_TTL": "0s"}},
		{"bad mode", map[string]string{"GIN_MODE": "turbo"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromLookup(lookupMap(tt.env))
			require.Error(t, err)
		})
	}
}

func TestLoadEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("FOLIO_TEST_ONLY_VAR=from-file\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("FOLIO_TEST_ONLY_VAR") })

	require.NoError(t, LoadEnvFile(path))
	require.Equal(t, "from-file", os.Getenv("FOLIO_TEST_ONLY_VAR"))

	require.Error(t, LoadEnvFile(filepath.Join(t.TempDir(), "missing.env")))
}
