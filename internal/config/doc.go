// Package config loads the application configuration from environment
// variables, command-line flags, an optional JSON file, and built-in
// defaults, merging the sources in that priority order.
package config
