// Package configs provides embedded configuration files for recipe-forge.
package configs

import "embed"

// ExampleConfigName is the example configuration written by "config init"
const ExampleConfigName = "config.yaml"

// EmbeddedConfigs exposes embedded configuration files for read-only access.
//
//go:embed *.yaml
var EmbeddedConfigs embed.FS

// ExampleConfig returns the example configuration file contents
func ExampleConfig() ([]byte, error) {
	return EmbeddedConfigs.ReadFile(ExampleConfigName)
}
