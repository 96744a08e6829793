package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/alnah/go-streammd/internal/config"
	"github.com/alnah/go-streammd/internal/fileutil"
)

// Environment variable names.
const (
	envPrefix     = "STREAMMD_"
	envConfigPath = "STREAMMD_CONFIG"
	envStyle      = "STREAMMD_STYLE"
	envHighlight  = "STREAMMD_HIGHLIGHT"
	envAssetPath  = "STREAMMD_ASSET_PATH"
	envInputDir   = "STREAMMD_INPUT_DIR"
	envOutputDir  = "STREAMMD_OUTPUT_DIR"
	envAddr       = "STREAMMD_ADDR"
	envWorkers    = "STREAMMD_WORKERS"
	envLogLevel   = "STREAMMD_LOG_LEVEL"
	envStandalone = "STREAMMD_STANDALONE"
)

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string // STREAMMD_CONFIG: config file name or path
	Style      string // STREAMMD_STYLE: style name or CSS path
	Highlight  string // STREAMMD_HIGHLIGHT: chroma style
	AssetPath  string // STREAMMD_ASSET_PATH: custom asset directory
	InputDir   string // STREAMMD_INPUT_DIR: default input directory
	OutputDir  string // STREAMMD_OUTPUT_DIR: default output directory
	Addr       string // STREAMMD_ADDR: preview server address
	Workers    int    // STREAMMD_WORKERS: parallel workers
	Standalone bool   // STREAMMD_STANDALONE: wrap output in a document
}

// knownEnvVars lists valid STREAMMD_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	envConfigPath: true,
	envStyle:      true,
	envHighlight:  true,
	envAssetPath:  true,
	envInputDir:   true,
	envOutputDir:  true,
	envAddr:       true,
	envWorkers:    true,
	envLogLevel:   true,
	envStandalone: true,
}

// loadEnvConfig reads configuration from environment variables.
// Malformed numbers and booleans are ignored.
func loadEnvConfig(getenv func(string) string) *envConfig {
	cfg := &envConfig{
		ConfigPath: getenv(envConfigPath),
		Style:      getenv(envStyle),
		Highlight:  getenv(envHighlight),
		AssetPath:  getenv(envAssetPath),
		InputDir:   getenv(envInputDir),
		OutputDir:  getenv(envOutputDir),
		Addr:       getenv(envAddr),
	}

	if workers := getenv(envWorkers); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}
	if standalone := getenv(envStandalone); standalone != "" {
		if b, err := strconv.ParseBool(standalone); err == nil {
			cfg.Standalone = b
		}
	}

	return cfg
}

// warnUnknownEnvVars warns about unrecognized STREAMMD_* variables.
// Helps catch typos like STREAMMD_STYEL.
func warnUnknownEnvVars(env *Environment) {
	for _, kv := range env.Environ() {
		if !strings.HasPrefix(kv, envPrefix) {
			continue
		}
		name, _, _ := strings.Cut(kv, "=")
		if !knownEnvVars[name] {
			fmt.Fprintf(env.Stderr, "warning: unknown environment variable %s (typo?)\n", name)
		}
	}
}

// applyEnvConfig applies environment values over the config file.
// Precedence: CLI flags > env vars > config file > defaults
// (CLI flags are applied later via mergeFlags).
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Style != "" {
		cfg.Style.Name = env.Style
	}
	if env.Highlight != "" {
		cfg.Style.Highlight = env.Highlight
	}
	if env.AssetPath != "" {
		cfg.Assets.BasePath = env.AssetPath
	}
	if env.InputDir != "" {
		cfg.Input.DefaultDir = env.InputDir
	}
	if env.OutputDir != "" {
		cfg.Output.DefaultDir = env.OutputDir
	}
	if env.Addr != "" {
		cfg.Server.Addr = env.Addr
	}
	if env.Standalone {
		cfg.Output.Standalone = true
	}
}

// loadConfig resolves the config file (flag, then STREAMMD_CONFIG) and
// applies the environment. Callers merge their flags, then Validate.
func loadConfig(flagConfig string, env *envConfig) (*config.Config, error) {
	name := flagConfig
	if name == "" {
		name = env.ConfigPath
	}

	cfg := config.DefaultConfig()
	if name != "" {
		var err error
		cfg, err = config.LoadConfig(name)
		if err != nil {
			if errors.Is(err, config.ErrConfigNotFound) && !fileutil.IsFilePath(name) {
				err = &configNameError{name: name, err: err}
			}
			return nil, fmt.Errorf("loading config: %w", err)
		}
	}

	applyEnvConfig(env, cfg)
	return cfg, nil
}

// configNameError remembers which config name failed to resolve so the
// hint can point at the searched locations.
type configNameError struct {
	name string
	err  error
}

func (e *configNameError) Error() string { return e.err.Error() }
func (e *configNameError) Unwrap() error { return e.err }
