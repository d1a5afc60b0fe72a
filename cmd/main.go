package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"lrucache/internal/cache"
	"lrucache/internal/config"
	"lrucache/internal/server"
	"lrucache/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

type serveOptions struct {
	configFile string
	addr       string
	logLevel   string
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "lrucache",
		Short:         "Indexed LRU cache with an HTTP admin API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(newServeCommand())
	return cmd
}

func newServeCommand() *cobra.Command {
	var opts serveOptions

	cmd := &cobra.Command{
		Use:   "serve [OPTIONS]",
		Short: "Serve a cache over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, conf)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.configFile, "config", "c", "", "YAML configuration file")
	flags.StringVar(&opts.addr, "addr", config.DefaultAddr, "Listen address")
	flags.StringVar(&opts.logLevel, "log-level", logger.InfoLevel, "Log level (debug, info, warn, error)")
	return cmd
}

// loadConfig reads the config file if given; flags set on the command line win
func loadConfig(cmd *cobra.Command, opts serveOptions) (*config.Config, error) {
	conf := config.Default()
	if opts.configFile != "" {
		var err error
		if conf, err = config.FromFile(opts.configFile); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("addr") {
		conf.Server.Addr = opts.addr
	}
	if cmd.Flags().Changed("log-level") {
		conf.Log.Level = opts.logLevel
	}
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	return conf, nil
}

// newStore builds a single locked cache, or a sharded one when shards > 1
func newStore(conf *config.Config) (cache.Store[string], error) {
	release := cache.WithRelease(func(value string) {
		logger.Debug("Cache value released", "bytes", len(value))
	})
	if conf.Cache.Shards > 1 {
		sharded, err := cache.NewSharded(conf.Cache.Capacity, conf.Cache.Shards, release)
		if err != nil {
			return nil, err
		}
		return sharded, nil
	}
	synced, err := cache.NewSynced(conf.Cache.Capacity, release)
	if err != nil {
		return nil, err
	}
	return synced, nil
}

func runServe(ctx context.Context, conf *config.Config) error {
	if err := logger.InitLogger(conf.Log.Level, conf.Log.File); err != nil {
		return err
	}
	defer logger.Sync()

	store, err := newStore(conf)
	if err != nil {
		return err
	}

	gin.SetMode(gin.ReleaseMode)
	srv := &http.Server{
		Addr:    conf.Server.Addr,
		Handler: server.New(store).Handler(),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Cache server listening", "addr", conf.Server.Addr, "capacity", conf.Cache.Capacity, "shards", conf.Cache.Shards)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve %s: %w", conf.Server.Addr, err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down cache server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	logger.Info("Released cached entries", "removed", store.InvalidateAll())
	return nil
}

func main() {
	cmd := newRootCommand()
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}
}
