package sipconfig

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/sjzar/sipconfig/internal/sipconfig"
	"github.com/sjzar/sipconfig/internal/sipconfig/conf"
	"github.com/sjzar/sipconfig/pkg/util"
)

func init() {
	rootCmd.AddCommand(serverCmd)
	serverCmd.Flags().StringVarP(&serverAddr, "addr", "a", conf.DefaultHTTPAddr, "server address, or just a port for loopback")
}

var serverAddr string

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the HTTP API and MCP server",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cc := cmdConf(cmd)
		if cmd.Flags().Changed("addr") {
			cc["http_addr"] = util.NormalizeAddr(serverAddr)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return sipconfig.New().CommandHTTPServer(ctx, configDir, cc)
	},
}
