package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"reflect"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/compozy/carpark/pkg/config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// ConfigCmd returns the config command
func ConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration inspection",
	}

	cmd.AddCommand(
		configShowCmd(),
	)

	return cmd
}

// configShowCmd shows the effective configuration with source information
func configShowCmd() *cobra.Command {
	var (
		format      string
		showSources bool
	)

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show current configuration values and their sources",
		Long: `Display the effective configuration with optional source information.
Each value comes from a CLI flag, the YAML file, the environment, or the built-in default.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigShow(cmd, format, showSources)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "table", "Output format (json, yaml, table)")
	cmd.Flags().BoolVarP(&showSources, "sources", "s", false, "Show configuration sources")
	return cmd
}

// runConfigShow executes the config show command
func runConfigShow(cmd *cobra.Command, format string, showSources bool) error {
	configFile, err := stringFlag(cmd, "config")
	if err != nil {
		return fmt.Errorf("failed to get config flag: %w", err)
	}
	cfg, sources, err := loadConfigWithSources(cmd.Context(), cmd, configFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	return formatConfigOutput(cmd.OutOrStdout(), cfg, sources, format, showSources)
}

// formatConfigOutput formats and outputs configuration based on requested format
func formatConfigOutput(
	w io.Writer,
	cfg *config.Config,
	sources map[string]config.SourceType,
	format string,
	showSources bool,
) error {
	switch strings.ToLower(format) {
	case "json":
		return outputJSON(w, cfg, sources, showSources)
	case "yaml":
		return outputYAML(w, cfg, sources, showSources)
	case "table":
		return outputTable(w, cfg, sources, showSources)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

// loadConfigWithSources loads configuration and tracks sources
func loadConfigWithSources(
	ctx context.Context,
	cmd *cobra.Command,
	configFile string,
) (*config.Config, map[string]config.SourceType, error) {
	service := config.NewService()

	var sources []config.Source
	if configFile != "" {
		sources = append(sources, config.NewYAMLProvider(configFile))
	}
	cliFlags := make(map[string]any)
	extractCLIFlags(cmd, cliFlags)
	if len(cliFlags) > 0 {
		sources = append(sources, config.NewCLIProvider(cliFlags))
	}

	cfg, err := service.Load(ctx, sources...)
	if err != nil {
		return nil, nil, err
	}

	sourceMap := make(map[string]config.SourceType)
	collectSources(service, "", reflect.ValueOf(cfg).Elem(), sourceMap)
	return cfg, sourceMap, nil
}

// collectSources walks the config struct by koanf tag and records every
// non-default source.
func collectSources(
	service config.Service,
	prefix string,
	val reflect.Value,
	sourceMap map[string]config.SourceType,
) {
	typ := val.Type()
	for i := 0; i < val.NumField(); i++ {
		field := typ.Field(i)
		tag := field.Tag.Get("koanf")
		if !field.IsExported() || tag == "" || tag == "-" {
			continue
		}
		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}
		if val.Field(i).Kind() == reflect.Struct {
			collectSources(service, key, val.Field(i), sourceMap)
			continue
		}
		if source := service.GetSource(key); source != config.SourceDefault {
			sourceMap[key] = source
		}
	}
}

// outputJSON outputs configuration as JSON
func outputJSON(w io.Writer, cfg *config.Config, sources map[string]config.SourceType, showSources bool) error {
	output := make(map[string]any)
	output["config"] = cfg
	if showSources && len(sources) > 0 {
		output["sources"] = sources
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

// outputYAML outputs configuration as YAML
func outputYAML(w io.Writer, cfg *config.Config, sources map[string]config.SourceType, showSources bool) error {
	output := make(map[string]any)
	output["config"] = cfg
	if showSources && len(sources) > 0 {
		output["sources"] = sources
	}

	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(output); err != nil {
		return err
	}
	return encoder.Close()
}

// outputTable outputs configuration as a table
func outputTable(w io.Writer, cfg *config.Config, sources map[string]config.SourceType, showSources bool) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	flatMap := flattenConfig(cfg)
	keys := make([]string, 0, len(flatMap))
	for k := range flatMap {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	if showSources {
		fmt.Fprintln(tw, "KEY\tVALUE\tSOURCE")
		fmt.Fprintln(tw, "---\t-----\t------")
	} else {
		fmt.Fprintln(tw, "KEY\tVALUE")
		fmt.Fprintln(tw, "---\t-----")
	}
	for _, key := range keys {
		value := flatMap[key]
		if showSources {
			source := sources[key]
			if source == "" {
				source = config.SourceDefault
			}
			fmt.Fprintf(tw, "%s\t%v\t%s\n", key, value, source)
		} else {
			fmt.Fprintf(tw, "%s\t%v\n", key, value)
		}
	}
	return tw.Flush()
}

// flattenConfig converts nested config to flat key-value map
func flattenConfig(cfg *config.Config) map[string]string {
	result := make(map[string]string)
	flattenStorageConfig(cfg, result)
	flattenRuntimeConfig(cfg, result)
	return result
}

func flattenStorageConfig(cfg *config.Config, result map[string]string) {
	result["storage.users_file"] = cfg.Storage.UsersFile
	result["storage.slots_file"] = cfg.Storage.SlotsFile
	result["storage.atomic_write"] = fmt.Sprintf("%v", cfg.Storage.AtomicWrite)
	result["storage.malformed_policy"] = cfg.Storage.MalformedPolicy
}

func flattenRuntimeConfig(cfg *config.Config, result map[string]string) {
	result["runtime.log_level"] = cfg.Runtime.LogLevel
	result["runtime.log_json"] = fmt.Sprintf("%v", cfg.Runtime.LogJSON)
}
