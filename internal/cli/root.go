// internal/cli/root.go
package benchchart

import (
	"fmt"
	"os"
	"strconv"

	"github.com/mwiater/benchchart/internal/appconfig"
	"github.com/mwiater/benchchart/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile       string
	currentConfig *appconfig.Config
	appVersion    = "dev"
	appCommit     = "none"
	appDate       = "unknown"
)

// boolFlags and stringFlags map viper keys onto their persistent flag names.
var boolFlags = map[string]string{
	"debug":  "debug",
	"export": "export",
}

var stringFlags = map[string]string{
	"data":           "data",
	"outputDir":      "out",
	"format":         "format",
	"htmlReport":     "html",
	"highlight":      "highlight",
	"rustSyncBench":  "rust-sync-bench",
	"rustAsyncBench": "rust-async-bench",
	"logFile":        "logFile",
}

// rootCmd renders the comparison charts when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "benchchart",
	Short: "benchchart — compare logging library benchmarks as bar charts",
	Long: `benchchart reads a data file holding the raw output of the Rust libtest
benches and the C++ spdlog sync/async benches, parses every package and draws
four comparison charts. With --export the charts are written as SVG or PNG
files, otherwise they are shown in the terminal.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := ensureConfigLoaded(); err != nil {
			return err
		}

		for key, name := range boolFlags {
			if !cmd.Flags().Changed(name) {
				_ = cmd.Flags().Set(name, strconv.FormatBool(viper.GetBool(key)))
			}
		}
		for key, name := range stringFlags {
			if !cmd.Flags().Changed(name) {
				_ = cmd.Flags().Set(name, viper.GetString(key))
			}
		}

		var cfg appconfig.Config
		if err := viper.Unmarshal(&cfg); err != nil {
			return fmt.Errorf("unmarshal config: %w", err)
		}
		cfg.ConfigPath = viper.ConfigFileUsed()
		if err := cfg.Validate(); err != nil {
			return err
		}
		currentConfig = &cfg

		if err := logging.Init(currentConfig.LogFilePath(), currentConfig.Debug); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRender(cmd.OutOrStdout(), GetConfig())
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", appVersion, appCommit, appDate)

	if err := execute(); err != nil {
		os.Exit(1)
	}
}

// execute runs the command tree and flushes the logger whatever the outcome.
func execute() error {
	err := rootCmd.Execute()
	_ = logging.Close()
	return err
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", appconfig.DefaultConfigPath, "config file (e.g., config/benchchart.json)")

	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	rootCmd.PersistentFlags().Bool("export", false, "write the charts to files instead of showing them")
	rootCmd.PersistentFlags().String("data", "", "benchmark data file (.toml, .yaml or .json)")
	rootCmd.PersistentFlags().StringP("out", "o", "", "directory for exported charts (defaults to the data file's directory)")
	rootCmd.PersistentFlags().String("format", "", "export format: svg or png")
	rootCmd.PersistentFlags().String("html", "", "also write an HTML report embedding every chart to this path")
	rootCmd.PersistentFlags().String("highlight", "", "package to highlight in every chart (default spdlog-rs)")
	rootCmd.PersistentFlags().String("rust-sync-bench", "", "Rust bench plotted in the sync chart (default file)")
	rootCmd.PersistentFlags().String("rust-async-bench", "", "Rust bench plotted in the async chart (default file_async)")
	rootCmd.PersistentFlags().String("logFile", "", "path to the log file")

	for key, name := range boolFlags {
		_ = viper.BindPFlag(key, rootCmd.PersistentFlags().Lookup(name))
	}
	for key, name := range stringFlags {
		_ = viper.BindPFlag(key, rootCmd.PersistentFlags().Lookup(name))
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}
}

// ensureConfigLoaded reads the config. A missing file leaves flags and defaults in charge.
func ensureConfigLoaded() error {
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil
		}
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to load config: %w", err)
	}
	return nil
}

// GetConfig returns the loaded application configuration for other packages.
func GetConfig() *appconfig.Config {
	if currentConfig == nil {
		return &appconfig.Config{}
	}
	return currentConfig
}

// SetVersionInfo allows the main package to inject build-time variables.
func SetVersionInfo(version, commit, date string) {
	appVersion = version
	appCommit = commit
	appDate = date
}
