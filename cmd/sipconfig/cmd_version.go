package sipconfig

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sjzar/sipconfig/pkg/version"
)

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.Flags().BoolVarP(&versionM, "module", "m", false, "module version information")
}

var versionM bool
var versionCmd = &cobra.Command{
	Use:   "version [-m]",
	Short: "Show the version of sipconfig",
	Run: func(cmd *cobra.Command, args []string) {
		if versionM {
			fmt.Fprintln(cmd.OutOrStdout(), version.GetMore(true))
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s", version.Name, version.GetMore(false))
		}
	},
}
