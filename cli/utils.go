package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/compozy/carpark/pkg/config/definition"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// extractCLIFlags collects the registry-backed flags the user explicitly changed.
func extractCLIFlags(cmd *cobra.Command, flags map[string]any) {
	for _, field := range definition.CreateRegistry().SortedFields() {
		if field.CLIFlag == "" {
			continue
		}
		flag := cmd.Flag(field.CLIFlag)
		if flag == nil || !flag.Changed {
			continue
		}
		if field.Type == reflect.TypeOf(false) {
			flags[field.CLIFlag] = flag.Value.String() == "true"
			continue
		}
		flags[field.CLIFlag] = flag.Value.String()
	}
}

// registerConfigFlags adds one persistent flag per registry field.
func registerConfigFlags(cmd *cobra.Command) {
	for _, field := range definition.CreateRegistry().SortedFields() {
		if field.CLIFlag != "" {
			addRegistryFlag(cmd.PersistentFlags(), &field)
		}
	}
}

func addRegistryFlag(flags *pflag.FlagSet, field *definition.FieldDef) {
	switch def := field.Default.(type) {
	case bool:
		flags.BoolP(field.CLIFlag, field.Shorthand, def, field.Help)
	case string:
		flags.StringP(field.CLIFlag, field.Shorthand, def, field.Help)
	default:
		flags.StringP(field.CLIFlag, field.Shorthand, fmt.Sprintf("%v", def), field.Help)
	}
}

func stringFlag(cmd *cobra.Command, name string) (string, error) {
	flag := cmd.Flag(name)
	if flag == nil {
		return "", fmt.Errorf("flag %s is not defined", name)
	}
	return flag.Value.String(), nil
}

// loadEnvFile loads environment variables from a file with security validation
func loadEnvFile(cmd *cobra.Command) (string, error) {
	envFile, err := stringFlag(cmd, "env-file")
	if err != nil {
		return "", fmt.Errorf("failed to get env-file flag: %w", err)
	}
	if envFile == "" {
		return "", nil
	}
	pwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current working directory: %w", err)
	}
	if !filepath.IsAbs(envFile) {
		envFile = filepath.Join(pwd, envFile)
	}
	absPath, err := filepath.Abs(filepath.Clean(envFile))
	if err != nil {
		return "", fmt.Errorf("failed to resolve env file path: %w", err)
	}
	if !isPathWithinDirectory(absPath, pwd) {
		return "", fmt.Errorf("env file path '%s' is outside the working directory", envFile)
	}
	fileInfo, err := os.Stat(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return absPath, nil
		}
		return "", fmt.Errorf("failed to stat env file: %w", err)
	}
	if !fileInfo.Mode().IsRegular() {
		return "", fmt.Errorf("env file path '%s' is not a regular file", envFile)
	}
	if err := godotenv.Load(absPath); err != nil {
		return "", fmt.Errorf("failed to load env file %s: %w", absPath, err)
	}
	return absPath, nil
}

// isPathWithinDirectory checks if a given path is within the specified directory
func isPathWithinDirectory(path, dir string) bool {
	absPath, err := filepath.Abs(filepath.Clean(path))
	if err != nil {
		return false
	}
	absDir, err := filepath.Abs(filepath.Clean(dir))
	if err != nil {
		return false
	}
	if !strings.HasSuffix(absDir, string(filepath.Separator)) {
		absDir += string(filepath.Separator)
	}
	return strings.HasPrefix(absPath, absDir) || absPath == strings.TrimSuffix(absDir, string(filepath.Separator))
}
