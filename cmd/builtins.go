package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/josephlewis42/minish/core"
	"github.com/spf13/cobra"
)

// builtinsCmd lists the shell builtins
var builtinsCmd = &cobra.Command{
	Use:   "builtins",
	Short: "Show the builtin commands of the shell.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 8, 2, ' ', 0)
		for _, name := range core.BuiltinNames() {
			builtin, _ := core.LookupBuiltin(name)
			fmt.Fprintf(w, "%s\t%s\n", builtin.Usage(), builtin.Short())
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(builtinsCmd)
}
