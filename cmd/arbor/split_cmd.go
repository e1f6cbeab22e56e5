package main

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/pbanos/arbor/dataset/csv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type splitCmdConfig struct {
	*rootCmdConfig
	setInput         string
	table            string
	metadataInput    string
	setOutput        string
	splitOutput      string
	splitProbability int
	seed             int64
}

func splitCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &splitCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "split",
		Short: "Split a set into two sets",
		Long:  `Split a set into an output set and a split set, for instance to obtain training, tuning and test sets`,
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
			d, err := config.readDataset(cmd.Context(), config.setInput, config.table, md)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(3)
			}
			seed := config.seed
			if seed == 0 {
				seed = time.Now().UnixNano()
			}
			output, split := d.Split(config.splitProbability, rand.New(rand.NewSource(seed)))

			outputFile := os.Stdout
			if config.setOutput != "" {
				outputFile, err = os.Create(config.setOutput)
				if err != nil {
					fmt.Fprintln(os.Stderr, err)
					os.Exit(4)
				}
				defer outputFile.Close()
			}
			err = csv.WriteDataset(outputFile, output)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(5)
			}
			splitOutputFile, err := os.Create(config.splitOutput)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(6)
			}
			defer splitOutputFile.Close()
			err = csv.WriteDataset(splitOutputFile, split)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(7)
			}
			config.logger.WithFields(logrus.Fields{
				"samples": d.Count(),
				"output":  output.Count(),
				"split":   split.Count(),
			}).Info("Done")
		},
	}
	cmd.Flags().StringVarP(&(config.setInput), "input", "i", "", inputFlagUsage)
	cmd.Flags().StringVar(&(config.table), "table", defaultTable, "name of the table holding the data on SQL inputs")
	cmd.Flags().StringVarP(&(config.metadataInput), "metadata", "m", "", "path to a YML file with metadata describing the attributes and the label of the data (required)")
	cmd.Flags().StringVarP(&(config.setOutput), "output", "o", "", "path to a CSV file to dump the output set (defaults to STDOUT)")
	cmd.Flags().IntVarP(&(config.splitProbability), "split-probability", "p", 20, "probability as percent integer that a sample of the set will be assigned to the split set")
	cmd.Flags().StringVarP(&(config.splitOutput), "split-output", "s", "", "path to a CSV file to dump the split set (required)")
	cmd.Flags().Int64Var(&(config.seed), "seed", 0, "seed for the random assignment of samples (defaults to the current time)")
	return cmd
}

func (scc *splitCmdConfig) Validate() error {
	if scc.metadataInput == "" {
		return fmt.Errorf("required metadata flag was not set")
	}
	if scc.splitOutput == "" {
		return fmt.Errorf("required split-output flag was not set")
	}
	if scc.splitProbability <= 0 || scc.splitProbability > 100 {
		return fmt.Errorf("split-probability flag was set to an invalid value: it must be set to an integer between 1 and 100")
	}
	return nil
}
