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
	rootCmd.AddCommand(extensionCmd)
	extensionCmd.Flags().StringVar(&extSocket, "socket", "", "path to the osquery extensions socket")
	extensionCmd.Flags().DurationVar(&extTimeout, "timeout", 3*time.Second, "seconds to wait for autoloaded extensions")
	extensionCmd.Flags().DurationVar(&extInterval, "interval", 3*time.Second, "seconds delay between connectivity checks")
	// osquery passes these to autoloaded extensions
	extensionCmd.Flags().Bool("verbose", false, "")
	_ = extensionCmd.Flags().MarkHidden("verbose")
}

var (
	extSocket   string
	extTimeout  time.Duration
	extInterval time.Duration
)

var extensionCmd = &cobra.Command{
	Use:   "extension --socket <path>",
	Short: "Serve the sip_config table as an osquery extension",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cc := cmdConf(cmd)
		if cmd.Flags().Changed("socket") {
			cc["extension.socket"] = extSocket
		}
		if cmd.Flags().Changed("timeout") {
			cc["extension.timeout"] = extTimeout.String()
		}
		if cmd.Flags().Changed("interval") {
			cc["extension.interval"] = extInterval.String()
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return sipconfig.New().CommandExtension(ctx, configDir, cc)
	},
}
