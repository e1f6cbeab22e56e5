package main

import (
	"fmt"
	"os"

	"github.com/pbanos/arbor/tree/redisstore"
	"github.com/spf13/cobra"
	"gopkg.in/redis.v5"
)

type storeCmdConfig struct {
	*rootCmdConfig
	redisAddr string
	redisDB   int
	prefix    string
	name      string
	treeInput string
	output    string
}

func storeCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &storeCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "store",
		Short: "Keep trees on a Redis store",
		Long:  `Save, load, list and delete named trees on a Redis database`,
	}
	cmd.PersistentFlags().StringVar(&(config.redisAddr), "redis-addr", "localhost:6379", "address of the Redis server")
	cmd.PersistentFlags().IntVar(&(config.redisDB), "redis-db", 0, "number of the Redis database")
	cmd.PersistentFlags().StringVar(&(config.prefix), "prefix", "arbor", "prefix for the keys of the trees")
	cmd.AddCommand(
		storeSaveCmd(config),
		storeLoadCmd(config),
		storeListCmd(config),
		storeDeleteCmd(config),
	)
	return cmd
}

func (scc *storeCmdConfig) store() *redisstore.Store {
	rc := redis.NewClient(&redis.Options{Addr: scc.redisAddr, DB: scc.redisDB})
	return redisstore.New(rc, scc.prefix)
}

func storeSaveCmd(config *storeCmdConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "save",
		Short: "Save a tree on the store",
		Long:  `Save a tree read from a JSON file on the store under the given name, or under a new random name if none is given`,
		Run: func(cmd *cobra.Command, args []string) {
			if config.treeInput == "" {
				fmt.Fprintln(os.Stderr, "required tree flag was not set")
				os.Exit(1)
			}
			t, err := loadTree(config.treeInput)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(2)
			}
			s := config.store()
			name := config.name
			if name == "" {
				name, err = s.Create(cmd.Context(), t)
			} else {
				err = s.Save(cmd.Context(), name, t)
			}
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(3)
			}
			config.logger.WithField("name", name).Info("Tree saved")
			fmt.Println(name)
		},
	}
	cmd.Flags().StringVarP(&(config.treeInput), "tree", "t", "", "path to a file from which the tree to save will be read and parsed as JSON (required)")
	cmd.Flags().StringVarP(&(config.name), "name", "n", "", "name to save the tree under (defaults to a random name)")
	return cmd
}

func storeLoadCmd(config *storeCmdConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "load",
		Short: "Load a tree from the store",
		Long:  `Load the tree saved under the given name and write it in JSON format`,
		Run: func(cmd *cobra.Command, args []string) {
			if config.name == "" {
				fmt.Fprintln(os.Stderr, "required name flag was not set")
				os.Exit(1)
			}
			t, err := config.store().Load(cmd.Context(), config.name)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(2)
			}
			err = outputTree(config.output, t)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(3)
			}
		},
	}
	cmd.Flags().StringVarP(&(config.name), "name", "n", "", "name of the tree to load (required)")
	cmd.Flags().StringVarP(&(config.output), "output", "o", "", "path to a file to which the tree will be written in JSON format (defaults to STDOUT)")
	return cmd
}

func storeListCmd(config *storeCmdConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the trees on the store",
		Long:  `List the names of the trees saved on the store`,
		Run: func(cmd *cobra.Command, args []string) {
			names, err := config.store().List(cmd.Context())
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			for _, n := range names {
				fmt.Println(n)
			}
		},
	}
}

func storeDeleteCmd(config *storeCmdConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a tree from the store",
		Long:  `Delete the tree saved under the given name`,
		Run: func(cmd *cobra.Command, args []string) {
			if config.name == "" {
				fmt.Fprintln(os.Stderr, "required name flag was not set")
				os.Exit(1)
			}
			err := config.store().Delete(cmd.Context(), config.name)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(2)
			}
		},
	}
	cmd.Flags().StringVarP(&(config.name), "name", "n", "", "name of the tree to delete (required)")
	return cmd
}
