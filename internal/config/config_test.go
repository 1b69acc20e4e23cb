package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library/internal/config"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefault_ShipsSampleCatalog(t *testing.T) {
	cfg, err := config.Default()
	require.NoError(t, err)

	assert.Equal(t, config.ModeRelease, cfg.Mode)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 15*time.Second, cfg.Server.WriteTimeout)

	require.Len(t, cfg.Seed, 5)
	assert.Equal(t, "978-0134685991", cfg.Seed[0].ISBN)
	assert.Equal(t, "Effective Java", cfg.Seed[0].Title)
	assert.Equal(t, 3, cfg.Seed[0].Copies)
	assert.Equal(t, "978-1617294945", cfg.Seed[4].ISBN)
	assert.Equal(t, 1, cfg.Seed[4].Copies)
	for _, s := range cfg.Seed {
		assert.Equal(t, "Programming", s.Category)
	}
	assert.NoError(t, cfg.Validate())
}

func TestLoad_EmptyPathUsesDefaults(t *testing.T) {
	t.Setenv("SERVER_ADDR", "")
	t.Setenv("LIBRARY_MODE", "")

	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Len(t, cfg.Seed, 5)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	t.Setenv("SERVER_ADDR", "")
	t.Setenv("LIBRARY_MODE", "")
	path := writeConfig(t, `
mode: dev
server:
  addr: ":9090"
seed:
  - isbn: "1"
    title: "Only Book"
    author: "Someone"
    category: "Misc"
    copies: 2
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, config.ModeDev, cfg.Mode)
	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout, "unset keys keep defaults")
	require.Len(t, cfg.Seed, 1)
	assert.Equal(t, "Only Book", cfg.Seed[0].Title)
}

func TestLoad_EnvironmentOverridesFile(t *testing.T) {
	t.Setenv("SERVER_ADDR", "127.0.0.1:7000")
	t.Setenv("LIBRARY_MODE", "dev")

	cfg, err := config.Load(writeConfig(t, "server:\n  addr: \":9090\"\n"))
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:7000", cfg.Server.Addr)
	assert.Equal(t, config.ModeDev, cfg.Mode)
}

func TestLoad_Errors(t *testing.T) {
	t.Setenv("SERVER_ADDR", "")
	t.Setenv("LIBRARY_MODE", "")

	testCases := []struct {
		name    string
		path    func(t *testing.T) string
		wantErr string
	}{
		{
			name:    "missing file",
			path:    func(t *testing.T) string { return filepath.Join(t.TempDir(), "nope.yaml") },
			wantErr: "read config",
		},
		{
			name:    "bad yaml",
			path:    func(t *testing.T) string { return writeConfig(t, "mode: [unclosed") },
			wantErr: "parse config",
		},
		{
			name:    "unknown mode",
			path:    func(t *testing.T) string { return writeConfig(t, "mode: staging\n") },
			wantErr: "mode must be",
		},
		{
			name: "seed without copies",
			path: func(t *testing.T) string {
				return writeConfig(t, "seed:\n  - isbn: \"1\"\n    title: T\n    copies: 0\n")
			},
			wantErr: "copies must be >= 1",
		},
		{
			name: "seed without isbn",
			path: func(t *testing.T) string {
				return writeConfig(t, "seed:\n  - title: T\n    copies: 1\n")
			},
			wantErr: "isbn is required",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := config.Load(tc.path(t))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}
