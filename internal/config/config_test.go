package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"halo_sync/internal/domain"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "halo.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_ExpandsEnv(t *testing.T) {
	t.Setenv("HALO_TOKEN", "from-env")

	path := writeConfig(t, `
sites:
  - name: blog
    url: https://blog.example.com
    token: ${HALO_TOKEN}
`)

	cfg, err := Load(path)

	require.NoError(t, err)
	require.Len(t, cfg.Sites, 1)
	assert.Equal(t, "from-env", cfg.Sites[0].Token)
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, "sites: []\n")

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, ".", cfg.Vault.Path)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.NotZero(t, cfg.Sync.Timeout)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))

	assert.Error(t, err)
}

func TestDefaultSite(t *testing.T) {
	tests := []struct {
		name     string
		sites    []Site
		expected string
		wantErr  bool
	}{
		{
			name:    "no sites",
			sites:   nil,
			wantErr: true,
		},
		{
			name:     "single site needs no flag",
			sites:    []Site{{Name: "only"}},
			expected: "only",
		},
		{
			name:     "marked default wins",
			sites:    []Site{{Name: "a"}, {Name: "b", Default: true}},
			expected: "b",
		},
		{
			name:    "several sites none default",
			sites:   []Site{{Name: "a"}, {Name: "b"}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Sites: tt.sites}

			site, err := cfg.DefaultSite()
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrSiteNotConfigured)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, site.Name)
		})
	}
}

func TestSiteByName(t *testing.T) {
	cfg := &Config{Sites: []Site{{Name: "blog", URL: "https://blog.example.com"}}}

	site, err := cfg.SiteByName("blog")
	require.NoError(t, err)
	assert.Equal(t, "https://blog.example.com", site.URL)

	_, err = cfg.SiteByName("other")
	assert.ErrorIs(t, err, domain.ErrSiteNotConfigured)
}
