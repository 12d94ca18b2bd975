package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/r3b0rn/pfspwt/internal/obslog"
)

var (
	cfgFile  string
	logLevel string
	logJSON  bool
)

var rootCmd = &cobra.Command{
	Use:     "pfspwt",
	Short:   "Ant-colony solver for the flow-shop weighted-tardiness problem",
	Version: "dev",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := loadConfig(); err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		obslog.SetupStd(obslog.Options{Level: logLevel, JSON: logJSON})
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./pfspwt.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "logrus level: trace|debug|info|warn|error")
	rootCmd.PersistentFlags().BoolVar(&logJSON, "log-json", false, "emit logs as JSON instead of text")

	rootCmd.AddCommand(solveCmd())
}

// loadConfig lets any flag on any subcommand also be set via pfspwt.yaml or
// PFSPWT_-prefixed environment variables; flags set on the command line
// still win because a bound flag's default is only used when neither the
// command line, the environment, nor the config file supplies a value.
func loadConfig() error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("pfspwt")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
	}
	viper.SetEnvPrefix("PFSPWT")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return err
		}
	}
	return nil
}
