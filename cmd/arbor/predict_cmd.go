package main

import (
	"fmt"
	"io"
	"os"

	"github.com/pbanos/arbor/dataset/inputsample"
	"github.com/pbanos/arbor/feature"
	"github.com/spf13/cobra"
)

type predictCmdConfig struct {
	*rootCmdConfig
	treeInput string
}

type writerValueRequester struct {
	w io.Writer
}

func predictCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &predictCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Predict a label for a sample answering questions",
		Long:  `Use the loaded tree to predict the label for a sample answering a reduced set of questions about its attributes`,
		Run: func(cmd *cobra.Command, args []string) {
			err := config.Validate()
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			t, err := loadTree(config.treeInput)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(2)
			}
			sample := inputsample.New(os.Stdin, t.Attributes(), &writerValueRequester{os.Stdout})
			label, err := t.Classify(sample)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(3)
			}
			fmt.Printf("Predicted label is %s\n", label)
		},
	}
	cmd.Flags().StringVarP(&(config.treeInput), "tree", "t", "", "path to a file from which the tree to use will be read and parsed as JSON (required)")
	return cmd
}

func (pcc *predictCmdConfig) Validate() error {
	if pcc.treeInput == "" {
		return fmt.Errorf("required tree flag was not set")
	}
	return nil
}

func (wvr *writerValueRequester) RequestValueFor(f *feature.Feature) error {
	_, err := fmt.Fprintf(wvr.w, "Please provide the sample's %s:\n(valid values are %v)\n", f.Name(), f.AvailableValues())
	return err
}

func (wvr *writerValueRequester) RejectValueFor(f *feature.Feature, value string) error {
	_, err := fmt.Fprintf(wvr.w, "%q is not a valid value for the sample's %s. Please provide one of %v.\n", value, f.Name(), f.AvailableValues())
	return err
}
