package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/compozy/carpark/pkg/config/definition"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockSource struct {
	data       map[string]any
	sourceType SourceType
	err        error
}

func (m *mockSource) Load() (map[string]any, error) {
	return m.data, m.err
}

func (m *mockSource) Type() SourceType {
	return m.sourceType
}

func TestLoader_Load(t *testing.T) {
	t.Run("Should load default configuration when no sources provided", func(t *testing.T) {
		loader := NewService()

		cfg, err := loader.Load(t.Context())

		require.NoError(t, err)
		assert.Equal(t, "users.txt", cfg.Storage.UsersFile)
		assert.Equal(t, "slots.txt", cfg.Storage.SlotsFile)
		assert.False(t, cfg.Storage.AtomicWrite)
		assert.Equal(t, MalformedSkip, cfg.Storage.MalformedPolicy)
		assert.Equal(t, "warn", cfg.Runtime.LogLevel)
		assert.Equal(t, SourceDefault, loader.GetSource("storage.users_file"))
	})

	t.Run("Should apply sources in precedence order", func(t *testing.T) {
		loader := NewService()
		yamlSource := &mockSource{
			data: map[string]any{
				"storage": map[string]any{
					"users_file": "yaml-users.txt",
					"slots_file": "yaml-slots.txt",
				},
			},
			sourceType: SourceYAML,
		}
		cliSource := &mockSource{
			data: map[string]any{
				"storage": map[string]any{"users_file": "cli-users.txt"},
			},
			sourceType: SourceCLI,
		}

		cfg, err := loader.Load(t.Context(), cliSource, yamlSource)

		require.NoError(t, err)
		assert.Equal(t, "cli-users.txt", cfg.Storage.UsersFile)
		assert.Equal(t, "yaml-slots.txt", cfg.Storage.SlotsFile)
		assert.Equal(t, SourceCLI, loader.GetSource("storage.users_file"))
		assert.Equal(t, SourceYAML, loader.GetSource("storage.slots_file"))
	})

	t.Run("Should let environment override YAML but not CLI", func(t *testing.T) {
		t.Setenv("CARPARK_USERS_FILE", "env-users.txt")
		t.Setenv("CARPARK_ATOMIC_WRITE", "true")
		t.Setenv("CARPARK_LOG_LEVEL", "debug")
		loader := NewService()
		yamlSource := &mockSource{
			data:       map[string]any{"runtime": map[string]any{"log_level": "error"}},
			sourceType: SourceYAML,
		}
		cliSource := &mockSource{
			data:       map[string]any{"storage": map[string]any{"users_file": "cli-users.txt"}},
			sourceType: SourceCLI,
		}

		cfg, err := loader.Load(t.Context(), yamlSource, cliSource)

		require.NoError(t, err)
		assert.Equal(t, "cli-users.txt", cfg.Storage.UsersFile)
		assert.True(t, cfg.Storage.AtomicWrite)
		assert.Equal(t, "debug", cfg.Runtime.LogLevel)
		assert.Equal(t, SourceEnv, loader.GetSource("storage.atomic_write"))
	})

	t.Run("Should reject an unknown malformed policy", func(t *testing.T) {
		loader := NewService()
		source := &mockSource{
			data:       map[string]any{"storage": map[string]any{"malformed_policy": "repair"}},
			sourceType: SourceYAML,
		}

		_, err := loader.Load(t.Context(), source)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "validation failed")
	})

	t.Run("Should reject identical store paths", func(t *testing.T) {
		loader := NewService()
		source := &mockSource{
			data: map[string]any{
				"storage": map[string]any{"users_file": "data.txt", "slots_file": "data.txt"},
			},
			sourceType: SourceYAML,
		}

		_, err := loader.Load(t.Context(), source)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "must be different files")
	})

	t.Run("Should reject store paths that clean to the same file", func(t *testing.T) {
		loader := NewService()
		source := &mockSource{
			data: map[string]any{
				"storage": map[string]any{"users_file": "./data/users.txt", "slots_file": "data//users.txt"},
			},
			sourceType: SourceCLI,
		}

		_, err := loader.Load(t.Context(), source)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "must be different files")
	})

	t.Run("Should reject a directory-shaped store path", func(t *testing.T) {
		loader := NewService()
		source := &mockSource{
			data:       map[string]any{"storage": map[string]any{"users_file": "data/"}},
			sourceType: SourceCLI,
		}

		_, err := loader.Load(t.Context(), source)

		require.Error(t, err)
	})

	t.Run("Should surface source load errors", func(t *testing.T) {
		loader := NewService()
		source := &mockSource{sourceType: SourceYAML, err: errors.New("boom")}

		_, err := loader.Load(t.Context(), source)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "boom")
	})
}

func TestYAMLProvider(t *testing.T) {
	t.Run("Should return empty map for a missing file", func(t *testing.T) {
		data, err := NewYAMLProvider(filepath.Join(t.TempDir(), "missing.yaml")).Load()

		require.NoError(t, err)
		assert.Empty(t, data)
	})

	t.Run("Should parse nested values and drop nulls", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "carpark.yaml")
		content := "storage:\n  users_file: people.txt\n  slots_file: ~\nruntime:\n  log_json: true\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

		data, err := NewYAMLProvider(path).Load()

		require.NoError(t, err)
		storage := data["storage"].(map[string]any)
		assert.Equal(t, "people.txt", storage["users_file"])
		assert.NotContains(t, storage, "slots_file")
		assert.Equal(t, true, data["runtime"].(map[string]any)["log_json"])
	})

	t.Run("Should fail on invalid YAML", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "carpark.yaml")
		require.NoError(t, os.WriteFile(path, []byte("storage: [unclosed"), 0o600))

		_, err := NewYAMLProvider(path).Load()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse YAML file")
	})
}

func TestCLIProvider(t *testing.T) {
	t.Run("Should map flag names onto config paths", func(t *testing.T) {
		data, err := NewCLIProvider(map[string]any{
			"slots-file":   "lot.txt",
			"atomic-write": true,
			"unknown-flag": "ignored",
		}).Load()

		require.NoError(t, err)
		storage := data["storage"].(map[string]any)
		assert.Equal(t, "lot.txt", storage["slots_file"])
		assert.Equal(t, true, storage["atomic_write"])
		assert.Len(t, data, 1)
	})

	t.Run("Should return empty map for nil flags", func(t *testing.T) {
		data, err := NewCLIProvider(nil).Load()

		require.NoError(t, err)
		assert.Empty(t, data)
	})
}

func TestEnvMappings(t *testing.T) {
	t.Run("Should derive env vars from struct tags", func(t *testing.T) {
		assert.Equal(t, "CARPARK_USERS_FILE", EnvVarFor("storage.users_file"))
		assert.Equal(t, "CARPARK_LOG_JSON", EnvVarFor("runtime.log_json"))
		assert.Empty(t, EnvVarFor("storage.unknown"))
	})

	t.Run("Should agree with the definition registry", func(t *testing.T) {
		fields := definition.CreateRegistry().SortedFields()
		paths := EnvToConfigPaths()

		assert.Len(t, paths, len(fields))
		for _, field := range fields {
			assert.Equal(t, field.Path, paths[field.EnvVar], field.EnvVar)
		}
	})

	t.Run("Should transform unmapped keys to dotted paths", func(t *testing.T) {
		assert.Equal(t, "storage.users_file", transformEnvKey("STORAGE_USERS_FILE"))
		assert.Equal(t, "runtime", transformEnvKey("RUNTIME"))
		assert.Empty(t, transformEnvKey("__"))
	})
}

func TestFromContext(t *testing.T) {
	t.Run("Should return attached configuration", func(t *testing.T) {
		cfg := Default()
		cfg.Storage.UsersFile = "attached.txt"

		got := FromContext(ContextWithConfig(t.Context(), cfg))

		assert.Same(t, cfg, got)
	})

	t.Run("Should fall back to defaults", func(t *testing.T) {
		assert.Equal(t, Default(), FromContext(t.Context()))
	})
}
