// Package config resolves the settings for a digest run from defaults,
// an optional YAML file, and environment variables (in that order).
package config
