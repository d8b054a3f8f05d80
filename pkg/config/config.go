package config

import (
	"context"

	"github.com/compozy/carpark/pkg/config/definition"
)

// Malformed store line policies.
const (
	MalformedSkip  = "skip"
	MalformedAbort = "abort"
)

// Config represents the complete configuration for carpark.
type Config struct {
	Storage StorageConfig `koanf:"storage" validate:"required" json:"storage" yaml:"storage"`
	Runtime RuntimeConfig `koanf:"runtime" validate:"required" json:"runtime" yaml:"runtime"`
}

// StorageConfig locates the flat-file stores and controls how they are read and written.
type StorageConfig struct {
	UsersFile       string `koanf:"users_file"       validate:"required,store_path"  env:"CARPARK_USERS_FILE"       json:"users_file"       yaml:"users_file"`
	SlotsFile       string `koanf:"slots_file"       validate:"required,store_path"  env:"CARPARK_SLOTS_FILE"       json:"slots_file"       yaml:"slots_file"`
	AtomicWrite     bool   `koanf:"atomic_write"                                     env:"CARPARK_ATOMIC_WRITE"     json:"atomic_write"     yaml:"atomic_write"`
	MalformedPolicy string `koanf:"malformed_policy" validate:"oneof=skip abort"     env:"CARPARK_MALFORMED_POLICY" json:"malformed_policy" yaml:"malformed_policy"`
}

// RuntimeConfig contains process-level behavior.
type RuntimeConfig struct {
	LogLevel string `koanf:"log_level" validate:"oneof=debug info warn error disabled" env:"CARPARK_LOG_LEVEL" json:"log_level" yaml:"log_level"`
	LogJSON  bool   `koanf:"log_json"                                                  env:"CARPARK_LOG_JSON"  json:"log_json"  yaml:"log_json"`
}

// Service defines the configuration loading service.
type Service interface {
	// Load loads configuration from the specified sources with precedence order.
	Load(ctx context.Context, sources ...Source) (*Config, error)
	// Validate checks if the configuration meets all validation requirements.
	Validate(config *Config) error
	// GetSource returns the source type that provided a configuration key.
	GetSource(key string) SourceType
}

// Source defines the interface for configuration sources.
type Source interface {
	// Load reads configuration from the source.
	Load() (map[string]any, error)
	// Type returns the source type identifier.
	Type() SourceType
}

// SourceType identifies the type of configuration source.
type SourceType string

const (
	SourceCLI     SourceType = "cli"
	SourceYAML    SourceType = "yaml"
	SourceEnv     SourceType = "env"
	SourceDefault SourceType = "default"
)

// Metadata contains metadata about configuration sources.
type Metadata struct {
	Sources map[string]SourceType `json:"sources"`
}

// Default returns a Config with default values.
func Default() *Config {
	registry := definition.CreateRegistry()
	return &Config{
		Storage: StorageConfig{
			UsersFile:       getString(registry, "storage.users_file"),
			SlotsFile:       getString(registry, "storage.slots_file"),
			AtomicWrite:     getBool(registry, "storage.atomic_write"),
			MalformedPolicy: getString(registry, "storage.malformed_policy"),
		},
		Runtime: RuntimeConfig{
			LogLevel: getString(registry, "runtime.log_level"),
			LogJSON:  getBool(registry, "runtime.log_json"),
		},
	}
}

func getString(registry *definition.Registry, path string) string {
	if val := registry.GetDefault(path); val != nil {
		if s, ok := val.(string); ok {
			return s
		}
	}
	return ""
}

func getBool(registry *definition.Registry, path string) bool {
	if val := registry.GetDefault(path); val != nil {
		if b, ok := val.(bool); ok {
			return b
		}
	}
	return false
}
