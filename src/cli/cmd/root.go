package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Built-in modules register themselves on import.
	_ "github.com/humanmade/platform-core/src/consent"
)

var (
	manifestPath string
	verbose      bool
)

var rootCmd = &cobra.Command{
	Use:   "platform",
	Short: "Platform configuration and module inspection",
	Long: "Inspect the platform's merged configuration, module states, and\n" +
		"environment identity as the host application will see them.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&manifestPath, "manifest", "", "manifest file (default: composer.json in the working directory)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// Execute runs the root command.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}
	return nil
}
