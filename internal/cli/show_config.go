// internal/cli/show_config.go
package benchchart

import (
	"fmt"
	"io"

	"github.com/mwiater/benchchart/internal/appconfig"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// configCmd groups configuration helpers.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration helpers",
}

// showConfigCmd implements 'config show'.
var showConfigCmd = &cobra.Command{
	Use:   "show",
	Short: "Show config settings",
	Long: `Show config settings ensuring that the JSON config is loaded properly and overridden by flags accordingly.
The config file itself is also checked on its own, without flag overrides.`,
	Run: func(cmd *cobra.Command, args []string) {
		runShowConfig(cmd.OutOrStdout(), viper.ConfigFileUsed(), GetConfig())
	},
}

func init() {
	configCmd.AddCommand(showConfigCmd)
	rootCmd.AddCommand(configCmd)
}

func runShowConfig(out io.Writer, file string, cfg *appconfig.Config) {
	appconfig.ShowConfig(out, file, cfg)
	if file == "" {
		return
	}

	fmt.Fprintln(out)
	if _, err := appconfig.Load(file); err != nil {
		fmt.Fprintf(out, "Config file check: %s\n", warnLabel(err.Error()))
		return
	}
	fmt.Fprintf(out, "Config file check: %s\n", okLabel("ok"))
}
