package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeTMDB()
	c.normalizeEndpoints()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeTMDB() {
	if value, ok := os.LookupEnv("TMDB_API_KEY"); ok {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			c.TMDB.APIKey = trimmed
		}
	}
	c.TMDB.APIKey = strings.TrimSpace(c.TMDB.APIKey)
	c.TMDB.BaseURL = strings.TrimRight(strings.TrimSpace(c.TMDB.BaseURL), "/")
	c.TMDB.Language = strings.ToLower(strings.TrimSpace(c.TMDB.Language))
	if c.TMDB.Language == "" {
		c.TMDB.Language = defaultTMDBLang
	}
	if c.TMDB.RateLimitThreshold <= 0 {
		c.TMDB.RateLimitThreshold = defaultRateLimitThreshold
	}
	if c.TMDB.RateLimitCooldownSeconds <= 0 {
		c.TMDB.RateLimitCooldownSeconds = defaultRateLimitCooldown
	}
}

func (c *Config) normalizeEndpoints() {
	c.Discovery.BaseURL = strings.TrimRight(strings.TrimSpace(c.Discovery.BaseURL), "/")
	c.PreRelease.BaseURL = strings.TrimRight(strings.TrimSpace(c.PreRelease.BaseURL), "/")
	c.Images.BaseURL = strings.TrimRight(strings.TrimSpace(c.Images.BaseURL), "/")
	if c.Images.PosterSize == "" {
		c.Images.PosterSize = defaultPosterSize
	}
	if c.Images.FanartSize == "" {
		c.Images.FanartSize = defaultFanartSize
	}
	if c.Images.HeadshotSize == "" {
		c.Images.HeadshotSize = defaultHeadshotSize
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
