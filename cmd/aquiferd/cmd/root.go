package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const envPrefix = "AQUIFER"

// NewRootCmd creates a new root command for aquiferd. It is called once in the
// main function.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "aquiferd",
		Short: "Aquifer AMM daemon",
		Long: `Aquifer runs a constant-product automated market maker: liquidity pools,
share-based liquidity provision, and fee-taking swaps, served over HTTP.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return initConfig(cmd)
		},
	}

	rootCmd.PersistentFlags().String("config", "", "path to config file")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug|info|warn|error)")

	rootCmd.AddCommand(
		startCmd(),
		quoteCmd(),
	)
	return rootCmd
}

// initConfig wires flags, environment and an optional config file into viper.
// Precedence: flags, then AQUIFER_* env vars, then the file.
func initConfig(cmd *cobra.Command) error {
	v := viper.GetViper()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	if cfgFile := v.GetString("config"); cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return err
		}
	}
	return nil
}
