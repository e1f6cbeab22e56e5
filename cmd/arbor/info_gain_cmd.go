package main

import (
	"fmt"
	"os"

	"github.com/pbanos/arbor"
	"github.com/spf13/cobra"
)

type infoGainCmdConfig struct {
	*rootCmdConfig
	dataInput     string
	table         string
	metadataInput string
}

func infoGainCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &infoGainCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "info-gain",
		Short: "Show the information gain of each attribute",
		Long:  `Show the information gain on the label of splitting a set of data on each of its attributes`,
		Run: func(cmd *cobra.Command, args []string) {
			err := config.Validate()
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			md, err := config.readMetadata(config.metadataInput)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(2)
			}
			d, err := config.readDataset(cmd.Context(), config.dataInput, config.table, md)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(3)
			}
			gains, err := arbor.RootInformationGain(d)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(4)
			}
			for _, g := range gains {
				fmt.Printf("%s %.5f\n", g.Feature.Name(), g.InformationGain)
			}
		},
	}
	cmd.Flags().StringVarP(&(config.dataInput), "input", "i", "", inputFlagUsage)
	cmd.Flags().StringVar(&(config.table), "table", defaultTable, "name of the table holding the data on SQL inputs")
	cmd.Flags().StringVarP(&(config.metadataInput), "metadata", "m", "", "path to a YML file with metadata describing the attributes and the label of the data (required)")
	return cmd
}

func (icc *infoGainCmdConfig) Validate() error {
	if icc.metadataInput == "" {
		return fmt.Errorf("required metadata flag was not set")
	}
	return nil
}
