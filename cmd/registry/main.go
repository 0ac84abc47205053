// Copyright (c) 2026, WSO2 LLC. (https://www.wso2.com).
//
// WSO2 LLC. licenses this file to you under the Apache License,
// Version 2.0 (the "License"); you may not use this file except
// in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing,
// software distributed under the License is distributed on an
// "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
// KIND, either express or implied.  See the License for the
// specific language governing permissions and limitations
// under the License.

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	_ "go.uber.org/automaxprocs"
	"gorm.io/gorm"

	"github.com/aglang/module-registry/api"
	"github.com/aglang/module-registry/config"
	"github.com/aglang/module-registry/db"
	dbmigrations "github.com/aglang/module-registry/db_migrations"
	"github.com/aglang/module-registry/middleware/logger"
	"github.com/aglang/module-registry/wiring"
)

// options carries the configuration source and log sink into subcommands
type options struct {
	loadConfig func() (*config.Config, error)
	logOut     io.Writer
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := &options{loadConfig: config.GetConfig, logOut: os.Stdout}
	if err := newRootCmd(opts).ExecuteContext(ctx); err != nil {
		slog.Error("Registry server stopped", "error", err)
		stop()
		os.Exit(1)
	}
}

func newRootCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "registry",
		Short: "Argentum module registry server",
		Long: `registry serves the module registry API. Without a sub-command it
  applies pending migrations and starts the HTTP server.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), opts)
		},
		DisableAutoGenTag: true,
	}
	cmd.AddCommand(newMigrateCmd(opts))
	return cmd
}

// bootstrap loads configuration, installs the root logger and opens the database
func bootstrap(opts *options) (*config.Config, *slog.Logger, *gorm.DB, error) {
	cfg, err := opts.loadConfig()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.New(cfg.Log, opts.logOut)
	if err != nil {
		return nil, nil, nil, err
	}
	slog.SetDefault(log)

	gdb, err := db.Open(cfg.Database, log)
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, log, gdb, nil
}

func closeDB(gdb *gorm.DB, log *slog.Logger) {
	if err := db.Close(gdb); err != nil {
		log.Warn("Failed to close database", "error", err)
	}
}

func serve(ctx context.Context, opts *options) error {
	cfg, log, gdb, err := bootstrap(opts)
	if err != nil {
		return err
	}
	defer closeDB(gdb, log)

	if err := dbmigrations.Migrate(gdb, log); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	params, err := wiring.InitializeAppParams(cfg, gdb, log)
	if err != nil {
		return fmt.Errorf("failed to wire application: %w", err)
	}

	server := &http.Server{
		Addr:              cfg.Server.Address(),
		Handler:           api.MakeHTTPHandler(params, cfg.Server.APIBasePath, log),
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		ErrorLog:          slog.NewLogLogger(log.Handler(), slog.LevelError),
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("Registry server listening", "address", server.Addr, "apiBasePath", cfg.Server.APIBasePath)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down registry server", "timeout", cfg.Server.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}
