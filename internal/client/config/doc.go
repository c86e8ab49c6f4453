// Package config loads settings for the postboard CLI: defaults, then an
// optional JSON file (-c/-config), then POSTBOARD_* environment variables,
// then flags.
package config
