package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:           "rowmap-gen",
	Short:         "rowmap-gen generates row mapping schemas for Go structs",
	Long:          `Generates schema builders for rowmapper from rowmap struct tags, //rowmap: directives and an optional overrides file.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is ./.rowmap-gen.yaml)")
	flags.String("naming", "identity", "naming strategy used for collision checks: identity, lower_underscore, lower_dashes")
	flags.String("overrides", "", "YAML overrides file")
	flags.String("log-level", "warn", "log level: debug, info, warn, error")
	flags.StringSlice("converters", nil, "IDs of application converters registered at runtime")

	for _, name := range []string{"naming", "overrides", "log-level", "converters"} {
		_ = viper.BindPFlag(name, flags.Lookup(name))
	}
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".rowmap-gen")
	}

	viper.SetEnvPrefix("ROWMAP")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}
