package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const envPrefix = "ARBOR"

type rootCmdConfig struct {
	verbose    bool
	configFile string
	viper      *viper.Viper
	logger     *logrus.Logger
}

func main() {
	if err := cliParser().Execute(); err != nil {
		os.Exit(1)
	}
}

func cliParser() *cobra.Command {
	config := &rootCmdConfig{viper: viper.New(), logger: newLogger(false)}
	rootCmd := &cobra.Command{
		Use:   "arbor",
		Short: "arbor is a tool to grow decision trees",
		Long:  `A tool to grow decision trees from your data, prune them, test them, and use them to classify samples`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return config.load(cmd)
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&(config.verbose), "verbose", "v", false, "log debug information on STDERR")
	rootCmd.PersistentFlags().StringVar(&(config.configFile), "config", "", "path to a YAML file with values for any flag, keyed by flag name")
	rootCmd.AddCommand(
		versionCmd(),
		growCmd(config),
		testCmd(config),
		predictCmd(config),
		treeCmd(config),
		infoGainCmd(config),
		splitCmd(config),
		storeCmd(config),
		serveCmd(config),
	)
	return rootCmd
}

/*
load sets every flag of the command that was not given on the command line
from the ARBOR_<FLAG> environment variable (dashes as underscores) or, if
missing, from the config file, and then sets up the logger.
*/
func (rcc *rootCmdConfig) load(cmd *cobra.Command) error {
	v := rcc.viper
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if rcc.configFile == "" {
		rcc.configFile = v.GetString("config")
	}
	if rcc.configFile != "" {
		v.SetConfigFile(rcc.configFile)
		err := v.ReadInConfig()
		if err != nil {
			return fmt.Errorf("reading config file %s: %v", rcc.configFile, err)
		}
	}
	var err error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if err != nil || f.Changed || f.Name == "config" || !v.IsSet(f.Name) {
			return
		}
		err = f.Value.Set(v.GetString(f.Name))
		if err != nil {
			err = fmt.Errorf("setting %s from environment or config file: %v", f.Name, err)
		}
	})
	if err != nil {
		return err
	}
	rcc.logger = newLogger(rcc.verbose)
	return nil
}
