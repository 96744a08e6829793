// Package config loads and validates YAML configuration for the streammd CLI.
//
// A config is either a path or a name. Names are looked up as name.yaml and
// name.yml in the current directory, then under the user config directory
// (go-streammd/). Unknown keys are rejected.
package config
