// Package config loads and validates marquee's TOML configuration.
//
// Configuration is resolved from an explicit --config path, then
// ~/.config/marquee/config.toml, then ./marquee.toml. The TMDB API key
// may also be supplied via the TMDB_API_KEY environment variable, which
// overrides the file value.
package config
