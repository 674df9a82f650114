package sipconfig

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/sjzar/sipconfig/internal/sipconfig"
)

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().DurationVarP(&watchInterval, "interval", "i", 0, "poll interval (default from config, 30s)")
}

var watchInterval time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Poll the SIP configuration and report changes to webhooks",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cc := cmdConf(cmd)
		if cmd.Flags().Changed("interval") {
			cc["watch.interval"] = watchInterval.String()
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return sipconfig.New().CommandWatch(ctx, configDir, cc)
	},
}
