package covers

import (
	"testing"

	"marquee/internal/config"
	"marquee/internal/movie"
)

func testResolver() *Resolver {
	return NewResolver(config.Images{
		BaseURL:      "https://image.tmdb.org/t/p",
		PosterSize:   "w500",
		FanartSize:   "w1280",
		HeadshotSize: "original",
	})
}

func TestResolveBuildsURLPerType(t *testing.T) {
	r := testResolver()

	poster := r.Resolve("/poster.jpg", movie.ImagePoster)
	if poster == nil || poster.URL != "https://image.tmdb.org/t/p/w500/poster.jpg" {
		t.Fatalf("unexpected poster: %+v", poster)
	}
	if poster.Type != movie.ImagePoster {
		t.Fatalf("unexpected type: %v", poster.Type)
	}

	fanart := r.Resolve("/backdrop.jpg", movie.ImageFanart)
	if fanart == nil || fanart.URL != "https://image.tmdb.org/t/p/w1280/backdrop.jpg" {
		t.Fatalf("unexpected fanart: %+v", fanart)
	}

	headshot := r.Resolve("face.jpg", movie.ImageHeadshot)
	if headshot == nil || headshot.URL != "https://image.tmdb.org/t/p/original/face.jpg" {
		t.Fatalf("unexpected headshot: %+v", headshot)
	}
}

func TestResolveBlankPath(t *testing.T) {
	if img := testResolver().Resolve("  ", movie.ImagePoster); img != nil {
		t.Fatalf("expected nil for blank path, got %+v", img)
	}
}
