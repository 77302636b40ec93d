package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"halo_sync/internal/domain"
)

type Config struct {
	Vault    VaultConfig `yaml:"vault"`
	Sites    []Site      `yaml:"sites"`
	Sync     SyncConfig  `yaml:"sync"`
	LogLevel string      `yaml:"log_level"`
}

// Site is one configured remote backend target. It is immutable during a
// sync operation; edits go through the config file.
type Site struct {
	Name     string `yaml:"name"`
	URL      string `yaml:"url"`
	Token    string `yaml:"token"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Default  bool   `yaml:"default"`
}

type VaultConfig struct {
	Path string `yaml:"path"`
}

type SyncConfig struct {
	PublishByDefault bool          `yaml:"publish_by_default"`
	Timeout          time.Duration `yaml:"timeout"`
}

func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.setDefaults()

	return &cfg, nil
}

func (c *Config) setDefaults() {
	if c.Vault.Path == "" {
		c.Vault.Path = "."
	}
	if c.Sync.Timeout == 0 {
		c.Sync.Timeout = 30 * time.Second
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

// DefaultSite returns the site marked as default, or the only site when a
// single one is configured.
func (c *Config) DefaultSite() (Site, error) {
	if len(c.Sites) == 0 {
		return Site{}, domain.ErrSiteNotConfigured
	}
	for _, site := range c.Sites {
		if site.Default {
			return site, nil
		}
	}
	if len(c.Sites) == 1 {
		return c.Sites[0], nil
	}
	return Site{}, fmt.Errorf("%w: several sites configured, none marked default", domain.ErrSiteNotConfigured)
}

// SiteByName looks a site up by its configured name.
func (c *Config) SiteByName(name string) (Site, error) {
	for _, site := range c.Sites {
		if site.Name == name {
			return site, nil
		}
	}
	return Site{}, fmt.Errorf("%w: unknown site %q", domain.ErrSiteNotConfigured, name)
}
