package main

import (
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/conneroisu/tdom"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "tdom",
	Short: "Render, validate and preview markup with the tdom engine",
	Long: `tdom works with static markup documents through the same parser and
serializer the template engine uses at runtime.

Quick Start:
  tdom render page.html           Reparse and reserialize a document
  tdom render --minify page.html  Minified output
  tdom render --format yaml       Dump the document tree as YAML
  tdom check page.html            Report structural issues
  tdom serve ./site               Preview a directory with live reload`,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Accept snake_case spellings of flag names.
	rootCmd.PersistentFlags().SetNormalizeFunc(func(f *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .tdom.yml, can also use TDOM_CONFIG_FILE env var)")
	rootCmd.PersistentFlags().StringP("log-level", "l", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "text", "log format (text, json)")
	viper.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("log-format", rootCmd.PersistentFlags().Lookup("log-format"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else if envConfigFile := os.Getenv("TDOM_CONFIG_FILE"); envConfigFile != "" {
		viper.SetConfigFile(envConfigFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".tdom")
	}

	viper.SetEnvPrefix("TDOM")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// A missing or malformed config file falls back to defaults.
	viper.ReadInConfig()
}

// newLogger builds the process logger from the resolved configuration.
func newLogger() *tdom.Logger {
	return tdom.NewLogger(viper.GetString("log-level"), viper.GetString("log-format"), os.Stderr)
}

// readInput reads the named file, or stdin when the name is empty or
// "-".
func readInput(name string) ([]byte, error) {
	if name == "" || name == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(name)
}
