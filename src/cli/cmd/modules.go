package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/humanmade/platform-core/src/module"
)

var modulesCmd = &cobra.Command{
	Use:   "modules",
	Short: "Work with platform modules",
}

var modulesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered modules and their enabled state",
	RunE:  runModulesList,
}

func init() {
	modulesCmd.AddCommand(modulesListCmd)
	rootCmd.AddCommand(modulesCmd)
}

func runModulesList(cmd *cobra.Command, args []string) error {
	cfg := mergedConfig()

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SLUG\tTITLE\tENABLED")
	for _, m := range module.All() {
		settings := module.Settings(cfg, m.Slug)
		enabled, _ := settings["enabled"].(bool)
		fmt.Fprintf(w, "%s\t%s\t%t\n", m.Slug, m.Title, enabled)
	}
	return w.Flush()
}
