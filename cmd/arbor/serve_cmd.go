package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pbanos/arbor/server"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

type serveCmdConfig struct {
	*rootCmdConfig
	treeInput string
	addr      string
}

func serveCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &serveCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a tree over HTTP",
		Long:  `Serve a tree over HTTP to classify samples, along with its metrics`,
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
			registry := prometheus.NewRegistry()
			h, err := server.New(t, config.logger, registry)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(3)
			}
			srv := &http.Server{Addr: config.addr, Handler: h}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			done := make(chan struct{})
			go func() {
				defer close(done)
				<-ctx.Done()
				config.logger.Info("Stopping server...")
				sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()
				if err := srv.Shutdown(sctx); err != nil {
					config.logger.WithError(err).Error("Failed to shutdown server")
				}
			}()
			config.logger.WithField("addr", config.addr).Info("Serving tree...")
			err = srv.ListenAndServe()
			if err != nil && err != http.ErrServerClosed {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(4)
			}
			<-done
			config.logger.Info("Done")
		},
	}
	cmd.Flags().StringVarP(&(config.treeInput), "tree", "t", "", "path to a file from which the tree to serve will be read and parsed as JSON (required)")
	cmd.Flags().StringVar(&(config.addr), "addr", ":8080", "address to listen on")
	return cmd
}

func (scc *serveCmdConfig) Validate() error {
	if scc.treeInput == "" {
		return fmt.Errorf("required tree flag was not set")
	}
	return nil
}
