package sipconfig

import (
	"github.com/spf13/cobra"

	"github.com/sjzar/sipconfig/internal/render"
	"github.com/sjzar/sipconfig/internal/sipconfig"
)

func init() {
	rootCmd.AddCommand(queryCmd)
	for _, c := range []*cobra.Command{rootCmd, queryCmd} {
		c.Flags().StringVarP(&queryFormat, "format", "f", string(render.Table), "output format: table, json, yaml or csv")
		c.Flags().BoolVarP(&queryVerbose, "verbose", "v", false, "also print the os version, live word and nvram outcome")
	}
}

var (
	queryFormat  string
	queryVerbose bool
)

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Print the sip_config rows",
	Args:  cobra.NoArgs,
	RunE:  runQuery,
}

func runQuery(cmd *cobra.Command, args []string) error {
	f, err := render.ParseFormat(queryFormat)
	if err != nil {
		return err
	}
	m := sipconfig.New()
	return m.CommandQuery(cmd.Context(), configDir, cmdConf(cmd), cmd.OutOrStdout(), f, queryVerbose)
}
