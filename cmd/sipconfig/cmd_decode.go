package sipconfig

import (
	"net/http"

	"github.com/spf13/cobra"

	"github.com/sjzar/sipconfig/internal/errors"
	"github.com/sjzar/sipconfig/internal/render"
	"github.com/sjzar/sipconfig/internal/sip"
	"github.com/sjzar/sipconfig/internal/sip/nvram"
)

func init() {
	rootCmd.AddCommand(decodeCmd)
	decodeCmd.Flags().StringVarP(&decodeFormat, "format", "f", string(render.Table), "output format: table, json, yaml or csv")
	decodeCmd.Flags().BoolVarP(&decodeRaw, "raw", "r", false, "treat the argument as an nvram byte string even if it looks like a number")
}

var (
	decodeFormat string
	decodeRaw    bool
)

var decodeCmd = &cobra.Command{
	Use:   "decode <word|nvram-value>",
	Short: "Break a csr-active-config value into flags",
	Example: `sipconfig decode 0x77
sipconfig decode 'w%00%00%00'
sipconfig decode --raw '%7f%00%00%00'`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := render.ParseFormat(decodeFormat)
		if err != nil {
			return err
		}
		w, err := decodeArg(args[0], decodeRaw)
		if err != nil {
			return err
		}
		return render.Decoded(cmd.OutOrStdout(), f, w)
	},
}

// decodeArg reads a hex or decimal word, falling back to the byte string
// printed by nvram(8).
func decodeArg(s string, raw bool) (sip.ConfigWord, error) {
	if !raw {
		if w, err := sip.ParseConfigWord(s); err == nil {
			return w, nil
		}
	}
	b, err := nvram.ParseToolValue(s)
	if err != nil {
		return 0, errors.Wrap(err, errors.ErrTypeInvalidArg, "invalid csr-active-config value", http.StatusBadRequest)
	}
	return nvram.DecodeConfigWord(b), nil
}
