// Package config loads, validates, and normalizes slate's TOML configuration.
package config
