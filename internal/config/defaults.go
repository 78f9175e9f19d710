package config

const (
	defaultDataDir   = "~/.local/share/marquee"
	defaultLogDir    = "~/.local/share/marquee/logs"
	defaultTMDBBase  = "https://api.themoviedb.org/3"
	defaultTMDBLang  = "en"
	defaultLogFormat = "console"
	defaultLogLevel  = "info"

	defaultRateLimitThreshold = 5
	defaultRateLimitCooldown  = 5

	defaultDiscoveryBaseURL  = "https://api.marquee.video/v2"
	defaultPreReleaseBaseURL = "https://api.predb.net"

	defaultImageBaseURL = "https://image.tmdb.org/t/p"
	defaultPosterSize   = "w500"
	defaultFanartSize   = "w1280"
	defaultHeadshotSize = "original"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
		},
		TMDB: TMDB{
			BaseURL:                  defaultTMDBBase,
			Language:                 defaultTMDBLang,
			RateLimitThreshold:       defaultRateLimitThreshold,
			RateLimitCooldownSeconds: defaultRateLimitCooldown,
		},
		Discovery: Discovery{
			Enabled: true,
			BaseURL: defaultDiscoveryBaseURL,
		},
		PreRelease: PreRelease{
			Enabled: true,
			BaseURL: defaultPreReleaseBaseURL,
		},
		Images: Images{
			BaseURL:      defaultImageBaseURL,
			PosterSize:   defaultPosterSize,
			FanartSize:   defaultFanartSize,
			HeadshotSize: defaultHeadshotSize,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
