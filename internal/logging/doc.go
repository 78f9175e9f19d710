// Package logging constructs the slog loggers used across marquee.
//
// Two output formats are supported: a human-oriented console format with
// optional color when attached to a terminal, and line-delimited JSON for
// log aggregation. Loggers are plain *slog.Logger values; components tag
// themselves with NewComponentLogger.
package logging
