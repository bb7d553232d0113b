package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/humanmade/platform-core/src/environment"
)

var environmentCmd = &cobra.Command{
	Use:   "environment",
	Short: "Print the environment identity",
	RunE:  runEnvironment,
}

func init() {
	rootCmd.AddCommand(environmentCmd)
}

func runEnvironment(cmd *cobra.Command, args []string) error {
	id := environment.Current()

	root, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting working directory: %w", err)
	}

	fmt.Printf("name:         %s\n", id.Name)
	fmt.Printf("type:         %s\n", id.Type)
	fmt.Printf("architecture: %s\n", id.Architecture)
	fmt.Printf("region:       %s\n", id.Region)

	if rev := environment.Revision(root); rev != "" {
		fmt.Printf("revision:     %s\n", rev)
	} else if verbose {
		fmt.Fprintln(os.Stderr, "revision: unknown (not a git repository?)")
	}

	return nil
}
