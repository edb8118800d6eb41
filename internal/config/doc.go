// Package config loads and validates the application configuration.
//
// Values are gathered from three sources and merged in priority order
// (environment variables, then command-line flags, then an optional JSON
// file) using a small builder on top of mergo. Defaults are applied after
// the merge, and the final configuration is validated before use.
package config
