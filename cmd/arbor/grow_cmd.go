package main

import (
	"fmt"
	"os"

	"github.com/pbanos/arbor"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type growCmdConfig struct {
	*rootCmdConfig
	dataInput     string
	tuneInput     string
	table         string
	metadataInput string
	output        string
}

func growCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &growCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "grow",
		Short: "Grow a tree from a set of data",
		Long:  `Grow a decision tree from a training set of data to predict its label, and optionally prune it against a tuning set`,
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
			training, err := config.readDataset(cmd.Context(), config.dataInput, config.table, md)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(3)
			}
			opts := &arbor.Options{Logger: config.logger}
			config.logger.WithFields(logrus.Fields{
				"samples":    training.Count(),
				"attributes": len(training.Attributes()),
				"label":      training.Label().Name(),
			}).Info("Growing tree...")
			t, err := arbor.Train(training, opts)
			if err != nil {
				fmt.Fprintf(os.Stderr, "growing the tree: %v\n", err)
				os.Exit(4)
			}
			nodes, leaves := t.Size()
			config.logger.WithFields(logrus.Fields{"nodes": nodes, "leaves": leaves}).Info("Done")
			if config.tuneInput != "" {
				tuning, err := config.readDataset(cmd.Context(), config.tuneInput, config.table, md)
				if err != nil {
					fmt.Fprintln(os.Stderr, err)
					os.Exit(5)
				}
				config.logger.WithField("samples", tuning.Count()).Info("Pruning tree...")
				err = arbor.Prune(t, tuning, opts)
				if err != nil {
					fmt.Fprintf(os.Stderr, "pruning the tree: %v\n", err)
					os.Exit(6)
				}
				nodes, leaves = t.Size()
				config.logger.WithFields(logrus.Fields{"nodes": nodes, "leaves": leaves}).Info("Done")
			}
			config.logger.Debugf("\n%v", t)
			err = outputTree(config.output, t)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(7)
			}
		},
	}
	cmd.Flags().StringVarP(&(config.dataInput), "input", "i", "", inputFlagUsage)
	cmd.Flags().StringVar(&(config.tuneInput), "tune", "", "path to a CSV or SQLite3 file, or a PostgreSQL DB connection URL with data to prune the tree against (no pruning if not set)")
	cmd.Flags().StringVar(&(config.table), "table", defaultTable, "name of the table holding the data on SQL inputs")
	cmd.Flags().StringVarP(&(config.metadataInput), "metadata", "m", "", "path to a YML file with metadata describing the attributes and the label of the data (required)")
	cmd.Flags().StringVarP(&(config.output), "output", "o", "", "path to a file to which the generated tree will be written in JSON format (defaults to STDOUT)")
	return cmd
}

func (gcc *growCmdConfig) Validate() error {
	if gcc.metadataInput == "" {
		return fmt.Errorf("required metadata flag was not set")
	}
	if gcc.tuneInput != "" && gcc.tuneInput == gcc.dataInput {
		return fmt.Errorf("input and tune flags must point to different data")
	}
	return nil
}
