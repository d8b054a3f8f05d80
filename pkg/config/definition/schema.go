package definition

import (
	"reflect"
)

var (
	stringType = reflect.TypeOf("")
	boolType   = reflect.TypeOf(false)
)

// CreateRegistry creates and populates the configuration registry.
// Defaults, CLI flag names and env vars for every setting live here.
func CreateRegistry() *Registry {
	registry := NewRegistry()
	registerStorageFields(registry)
	registerRuntimeFields(registry)
	return registry
}

func registerStorageFields(registry *Registry) {
	registry.Register(&FieldDef{
		Path:    "storage.users_file",
		Default: "users.txt",
		CLIFlag: "users-file",
		EnvVar:  "CARPARK_USERS_FILE",
		Type:    stringType,
		Help:    "Path to the users store",
	})
	registry.Register(&FieldDef{
		Path:    "storage.slots_file",
		Default: "slots.txt",
		CLIFlag: "slots-file",
		EnvVar:  "CARPARK_SLOTS_FILE",
		Type:    stringType,
		Help:    "Path to the parking slots store",
	})
	registry.Register(&FieldDef{
		Path:    "storage.atomic_write",
		Default: false,
		CLIFlag: "atomic-write",
		EnvVar:  "CARPARK_ATOMIC_WRITE",
		Type:    boolType,
		Help:    "Write stores to a temp file and rename it into place",
	})
	registry.Register(&FieldDef{
		Path:    "storage.malformed_policy",
		Default: "skip",
		CLIFlag: "malformed-policy",
		EnvVar:  "CARPARK_MALFORMED_POLICY",
		Type:    stringType,
		Help:    "What to do with malformed store lines (skip, abort)",
	})
}

func registerRuntimeFields(registry *Registry) {
	registry.Register(&FieldDef{
		Path:    "runtime.log_level",
		Default: "warn",
		CLIFlag: "log-level",
		EnvVar:  "CARPARK_LOG_LEVEL",
		Type:    stringType,
		Help:    "Log level (debug, info, warn, error, disabled)",
	})
	registry.Register(&FieldDef{
		Path:    "runtime.log_json",
		Default: false,
		CLIFlag: "log-json",
		EnvVar:  "CARPARK_LOG_JSON",
		Type:    boolType,
		Help:    "Emit logs as JSON",
	})
}
