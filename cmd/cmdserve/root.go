package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// cfgFile allows specifying a custom config file
	cfgFile string
	// verbose enables debug-level event output
	verbose bool

	rootCmd = &cobra.Command{
		Use:   "cmdserve",
		Short: "A loopback TCP command server",
		Long: `cmdserve runs a single-request-per-connection command service bound
to 127.0.0.1. A client sends one line ("command [argument]"), receives
one line of response and the connection is closed.

Examples:
  cmdserve serve                 Run the server on the configured port
  cmdserve send power 100        Send a command to a running server
  cmdserve commands              List the recognized commands`,
	}
)

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/cmdserve/cmdserve.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug output")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(sendCmd)
	rootCmd.AddCommand(commandsCmd)
}

// initConfig reads the config file and CMDSERVE_* environment
// variables, falling back to built-in defaults.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "cmdserve"))
		}
		viper.AddConfigPath(".")
		viper.SetConfigName("cmdserve")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("CMDSERVE")
	viper.AutomaticEnv()

	viper.SetDefault("port", 31415)
	viper.SetDefault("max_connections", 15)
	viper.SetDefault("read_timeout", 30*time.Second)
	viper.SetDefault("write_timeout", 10*time.Second)
	viper.SetDefault("accept_interval", 100*time.Millisecond)
	viper.SetDefault("send_timeout", 5*time.Second)
	viper.SetDefault("log_level", "info")

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			fmt.Fprintf(os.Stderr, "warning: could not read config: %v\n", err)
		}
	}
}
