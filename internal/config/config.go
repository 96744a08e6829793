package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-streammd/internal/fileutil"
	"github.com/alnah/go-streammd/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// searchDirName is the directory under os.UserConfigDir searched for named configs.
const searchDirName = "go-streammd"

// Field limits and defaults.
const (
	MaxPathLength     = 4096 // PATH_MAX on Linux
	MaxStyleLength    = 64   // Matches asset name validation
	MaxAddrLength     = 261  // host (253) + ":" + port
	MaxDurationLength = 32   // "1m30s"
	MaxReadLimitBytes = 64 << 20
	DefaultReadLimit  = 1 << 20
	DefaultServerAddr = "127.0.0.1:8080"
	DefaultDebounce   = 100 * time.Millisecond
	MaxDebounce       = 10 * time.Second
	DefaultStyleName  = "default"
)

// Config holds all configuration for conversion, watching and serving.
type Config struct {
	Input  InputConfig  `yaml:"input"`
	Output OutputConfig `yaml:"output"`
	Style  StyleConfig  `yaml:"style"`
	Assets AssetsConfig `yaml:"assets"`
	Server ServerConfig `yaml:"server"`
	Watch  WatchConfig  `yaml:"watch"`
}

// InputConfig defines input source options.
type InputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default input directory (empty = must specify)
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default output directory (empty = same as source)
	Standalone bool   `yaml:"standalone"` // Wrap fragments in an HTML5 document
}

// StyleConfig selects the stylesheet and code highlighting theme.
type StyleConfig struct {
	Name      string `yaml:"name"`      // Embedded or custom style (empty = default)
	Highlight string `yaml:"highlight"` // Chroma style name (empty = no highlighting)
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Directory holding styles/*.css overrides
}

// ServerConfig defines the preview server.
type ServerConfig struct {
	Addr           string   `yaml:"addr"`
	ReadLimit      int64    `yaml:"readLimit"`      // Max request body and websocket message size in bytes
	AllowedOrigins []string `yaml:"allowedOrigins"` // Extra browser origins allowed on /stream
}

// WatchConfig defines file watching options.
type WatchConfig struct {
	Debounce string `yaml:"debounce"` // Go duration, e.g. "250ms"
}

// Validate checks field lengths and values. Called automatically by
// LoadConfig, but available for callers who build a Config by hand.
func (c *Config) Validate() error {
	if err := validateFieldLength("input.defaultDir", c.Input.DefaultDir, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("output.defaultDir", c.Output.DefaultDir, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("assets.basePath", c.Assets.BasePath, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("style.name", c.Style.Name, MaxStyleLength); err != nil {
		return err
	}
	if err := validateFieldLength("style.highlight", c.Style.Highlight, MaxStyleLength); err != nil {
		return err
	}

	// Server
	if err := validateFieldLength("server.addr", c.Server.Addr, MaxAddrLength); err != nil {
		return err
	}
	if c.Server.Addr != "" {
		if _, _, err := net.SplitHostPort(c.Server.Addr); err != nil {
			return fmt.Errorf("%w: server.addr %q: %v", ErrInvalidValue, c.Server.Addr, err)
		}
	}
	if c.Server.ReadLimit < 0 || c.Server.ReadLimit > MaxReadLimitBytes {
		return fmt.Errorf("%w: server.readLimit must be between 0 and %d, got %d",
			ErrInvalidValue, MaxReadLimitBytes, c.Server.ReadLimit)
	}

	for _, origin := range c.Server.AllowedOrigins {
		u, err := url.Parse(origin)
		if err != nil || u.Scheme == "" || u.Host == "" || u.Path != "" {
			return fmt.Errorf("%w: server.allowedOrigins %q must be scheme://host[:port]", ErrInvalidValue, origin)
		}
	}

	// Watch
	if err := validateFieldLength("watch.debounce", c.Watch.Debounce, MaxDurationLength); err != nil {
		return err
	}
	if _, err := c.Watch.DebounceDuration(); err != nil {
		return err
	}

	return nil
}

// DebounceDuration parses Debounce, returning DefaultDebounce when unset.
func (w WatchConfig) DebounceDuration() (time.Duration, error) {
	if w.Debounce == "" {
		return DefaultDebounce, nil
	}
	d, err := time.ParseDuration(w.Debounce)
	if err != nil {
		return 0, fmt.Errorf("%w: watch.debounce %q: %v", ErrInvalidValue, w.Debounce, err)
	}
	if d < 0 || d > MaxDebounce {
		return 0, fmt.Errorf("%w: watch.debounce must be between 0 and %s, got %s",
			ErrInvalidValue, MaxDebounce, d)
	}
	return d, nil
}

// ReadLimitOrDefault returns ReadLimit, or DefaultReadLimit when unset.
func (s ServerConfig) ReadLimitOrDefault() int64 {
	if s.ReadLimit == 0 {
		return DefaultReadLimit
	}
	return s.ReadLimit
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Style:  StyleConfig{Name: DefaultStyleName},
		Server: ServerConfig{Addr: DefaultServerAddr, ReadLimit: DefaultReadLimit},
		Watch:  WatchConfig{Debounce: DefaultDebounce.String()},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		var err error
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	f, err := os.Open(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	defer f.Close()

	cfg := DefaultConfig()
	if err := yamlutil.DecodeStrict(f, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SearchPaths lists, in lookup order, the files LoadConfig tries for a
// config name: name.yaml and name.yml in the current directory, then in
// the user config directory under go-streammd/.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)
	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, searchDirName, name+ext))
		}
	}
	return paths
}

// resolveConfigPath returns the first existing SearchPaths entry.
func resolveConfigPath(name string) (string, error) {
	triedPaths := SearchPaths(name)
	for _, p := range triedPaths {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}
