// Package config loads the host simulator settings from YAML.
package config
