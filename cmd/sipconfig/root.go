package sipconfig

import (
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func init() {
	// windows only
	cobra.MousetrapHelpText = ""

	pf := rootCmd.PersistentFlags()
	pf.BoolVar(&Debug, "debug", false, "debug")
	pf.BoolVar(&LogJSON, "log-json", false, "write logs as JSON lines")
	pf.StringVar(&configDir, "config-dir", "", "config directory (default ~/.sipconfig)")
	pf.StringVar(&liveSource, "live-source", "", "live config source: kernel, fixed or none")
	pf.StringVar(&liveConfig, "live-config", "", "live config word for --live-source fixed, e.g. 0x77")
	pf.StringVar(&nvramSource, "nvram-source", "", "nvram source: iokit, nvram-tool, file or none")
	pf.StringVar(&nvramFile, "nvram-file", "", "plist exported with nvram -x -p, for --nvram-source file")
	pf.StringVar(&minOSVersion, "min-os-version", "", "lowest macOS version to report on")
	rootCmd.PersistentPreRun = initLog
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Err(err).Msg("command execution failed")
		os.Exit(1)
	}
}

var (
	configDir    string
	liveSource   string
	liveConfig   string
	nvramSource  string
	nvramFile    string
	minOSVersion string
)

var rootCmd = &cobra.Command{
	Use:   "sipconfig",
	Short: "Report the System Integrity Protection configuration",
	Long: `sipconfig reports which System Integrity Protection restrictions the running
kernel enforces and which ones are stored in NVRAM for the next boot.`,
	Example: `sipconfig
sipconfig query --format json
sipconfig decode 0x77`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	RunE: runQuery,
}

// cmdConf collects the global flags the user actually set, keyed by config
// file name, so they override the config file.
func cmdConf(cmd *cobra.Command) map[string]any {
	conf := map[string]any{}
	set := func(flag, key string, value any) {
		if cmd.Flags().Changed(flag) {
			conf[key] = value
		}
	}
	set("live-source", "live.source", liveSource)
	set("live-config", "live.fixed_config", liveConfig)
	set("nvram-source", "nvram.source", nvramSource)
	set("nvram-file", "nvram.file", nvramFile)
	set("min-os-version", "min_os_version", minOSVersion)
	if Debug {
		conf["log_level"] = "debug"
	}
	return conf
}
