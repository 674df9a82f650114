package sipconfig

import (
	"github.com/spf13/cobra"

	"github.com/sjzar/sipconfig/internal/render"
	"github.com/sjzar/sipconfig/internal/sip"
)

func init() {
	rootCmd.AddCommand(flagsCmd)
	flagsCmd.Flags().StringVarP(&flagsFormat, "format", "f", string(render.Table), "output format: table, json, yaml or csv")
}

var flagsFormat string

var flagsCmd = &cobra.Command{
	Use:   "flags",
	Short: "List the known SIP flags",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := render.ParseFormat(flagsFormat)
		if err != nil {
			return err
		}
		return render.Flags(cmd.OutOrStdout(), f, sip.Flags())
	},
}
