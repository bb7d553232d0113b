package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/humanmade/platform-core/src/config"
)

var dumpFormat string

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Work with the merged configuration",
}

var configDumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Print the merged configuration",
	Long: `Print the fully merged configuration: module defaults, the manifest's
extra.altis overrides, and the overlay for the current environment type.`,
	RunE: runConfigDump,
}

func init() {
	configDumpCmd.Flags().StringVar(&dumpFormat, "format", "json", "output format: json or yaml")

	configCmd.AddCommand(configDumpCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigDump(cmd *cobra.Command, args []string) error {
	cfg := mergedConfig()

	switch dumpFormat {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(cfg); err != nil {
			return fmt.Errorf("encoding config: %w", err)
		}
	case "yaml":
		enc := yaml.NewEncoder(os.Stdout)
		defer enc.Close()
		if err := enc.Encode(cfg); err != nil {
			return fmt.Errorf("encoding config: %w", err)
		}
	default:
		return fmt.Errorf("unknown format %q (want json or yaml)", dumpFormat)
	}

	return nil
}

// mergedConfig resolves the configuration the host would see. With
// --manifest set, it computes a fresh merge against that manifest;
// otherwise it goes through the cached accessor.
func mergedConfig() config.Map {
	if manifestPath != "" {
		return config.Final.Apply(config.Compute(config.Options{Manifest: manifestPath}))
	}

	cfg, err := config.Get()
	if err != nil {
		// Only re-entrancy can fail here, which a CLI run cannot trigger.
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
		return config.Map{}
	}
	return cfg
}
