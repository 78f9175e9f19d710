package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"marquee/internal/config"
	"marquee/internal/covers"
	"marquee/internal/discovery"
	"marquee/internal/library"
	"marquee/internal/logging"
	"marquee/internal/metadata"
	"marquee/internal/prerelease"
	"marquee/internal/tmdb"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// runtime bundles the wired collaborators a command needs for one
// invocation. The library store is opened lazily and closed by
// withRuntime after the command returns.
type runtime struct {
	cfg     *config.Config
	logger  *slog.Logger
	store   *library.Store
	service *metadata.Service
}

// withRuntime wires the provider client, local store, and resolver
// service from configuration, runs fn, and tears the store down.
func (c *commandContext) withRuntime(cmd *cobra.Command, fn func(context.Context, *runtime) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}

	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		return fmt.Errorf("initialize logging: %w", err)
	}

	store, err := library.Open(cfg.DatabasePath())
	if err != nil {
		return fmt.Errorf("open library: %w", err)
	}
	defer store.Close()

	client, err := tmdb.New(cfg.TMDB.APIKey, cfg.TMDB.BaseURL, cfg.TMDB.Language,
		tmdb.WithLogger(logger),
		tmdb.WithCooldown(tmdb.CooldownPolicy{
			Threshold: cfg.TMDB.RateLimitThreshold,
			Wait:      time.Duration(cfg.TMDB.RateLimitCooldownSeconds) * time.Second,
		}))
	if err != nil {
		return fmt.Errorf("initialize provider client: %w", err)
	}

	mapper := metadata.NewMapper(covers.NewResolver(cfg.Images), logger)

	var opts []metadata.ServiceOption
	if cfg.PreRelease.Enabled {
		checker, err := prerelease.New(cfg.PreRelease.BaseURL)
		if err != nil {
			return fmt.Errorf("initialize pre-release client: %w", err)
		}
		opts = append(opts, metadata.WithPreReleaseChecker(checker))
	}
	if cfg.Discovery.Enabled {
		discoverer, err := discovery.New(cfg.Discovery.BaseURL)
		if err != nil {
			return fmt.Errorf("initialize discovery client: %w", err)
		}
		opts = append(opts, metadata.WithDiscoverer(discoverer))
	}

	service := metadata.NewService(client, store, mapper, cfg.TMDB.Language, logger, opts...)

	return fn(cmd.Context(), &runtime{
		cfg:     cfg,
		logger:  logger,
		store:   store,
		service: service,
	})
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
