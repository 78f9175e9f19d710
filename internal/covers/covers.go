// Package covers resolves provider image paths into full cover URLs.
package covers

import (
	"strings"

	"marquee/internal/config"
	"marquee/internal/movie"
)

// Resolver builds image URLs from provider-relative paths using the
// configured image base and per-type sizes.
type Resolver struct {
	baseURL      string
	posterSize   string
	fanartSize   string
	headshotSize string
}

// NewResolver creates a Resolver from image configuration.
func NewResolver(cfg config.Images) *Resolver {
	return &Resolver{
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		posterSize:   cfg.PosterSize,
		fanartSize:   cfg.FanartSize,
		headshotSize: cfg.HeadshotSize,
	}
}

// Resolve turns a provider image path into a full cover reference.
// Blank paths yield nil.
func (r *Resolver) Resolve(path string, imageType movie.ImageType) *movie.Image {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	size := r.posterSize
	switch imageType {
	case movie.ImageFanart:
		size = r.fanartSize
	case movie.ImageHeadshot:
		size = r.headshotSize
	}

	return &movie.Image{
		Type: imageType,
		URL:  r.baseURL + "/" + size + path,
	}
}
