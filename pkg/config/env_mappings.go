package config

import "reflect"

// EnvMapping ties one CARPARK_* variable to the config path it sets.
type EnvMapping struct {
	EnvVar     string
	ConfigPath string
}

// GenerateEnvMappings reads the env tags of each settings section of Config.
// Config is two levels deep: a section tag and a leaf tag make one path.
func GenerateEnvMappings() []EnvMapping {
	var mappings []EnvMapping
	root := reflect.TypeOf(Config{})
	for i := range root.NumField() {
		section := root.Field(i)
		prefix := section.Tag.Get("koanf")
		for j := range section.Type.NumField() {
			leaf := section.Type.Field(j)
			if env := leaf.Tag.Get("env"); env != "" {
				mappings = append(mappings, EnvMapping{
					EnvVar:     env,
					ConfigPath: prefix + "." + leaf.Tag.Get("koanf"),
				})
			}
		}
	}
	return mappings
}

// EnvToConfigPaths maps each CARPARK_* variable to its config path.
func EnvToConfigPaths() map[string]string {
	paths := make(map[string]string)
	for _, m := range GenerateEnvMappings() {
		paths[m.EnvVar] = m.ConfigPath
	}
	return paths
}

// EnvVarFor returns the variable that sets configPath, or "" when none does.
func EnvVarFor(configPath string) string {
	for _, m := range GenerateEnvMappings() {
		if m.ConfigPath == configPath {
			return m.EnvVar
		}
	}
	return ""
}
