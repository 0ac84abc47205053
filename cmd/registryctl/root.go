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
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aglang/module-registry/clients/registrysvc"
	"github.com/aglang/module-registry/config"
	"github.com/aglang/module-registry/middleware/logger"
)

const (
	flagServer   = "server"
	flagToken    = "token"
	flagOutput   = "output"
	flagLogLevel = "log-level"

	envServer = "REGISTRY_URL"
	envToken  = "REGISTRY_TOKEN"

	defaultServer = "http://localhost:8080/repo/v1"
)

// options carries global flag values and the client factory into subcommands
type options struct {
	server   string
	token    string
	output   string
	logLevel string

	log       *slog.Logger
	newClient func(cfg registrysvc.Config) (registrysvc.RegistryClient, error)
	loadAuth  func() (config.AuthConfig, error)
}

func defaultOptions() *options {
	return &options{
		newClient: registrysvc.NewRegistryClient,
		loadAuth: func() (config.AuthConfig, error) {
			cfg, err := config.GetConfig()
			if err != nil {
				return config.AuthConfig{}, err
			}
			return cfg.Auth, nil
		},
	}
}

func (o *options) client() (registrysvc.RegistryClient, error) {
	return o.newClient(registrysvc.Config{
		BaseURL: o.server,
		Token:   o.token,
		Logger:  o.log,
	})
}

func newRootCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "registryctl [sub-command]",
		Short: "Command line client for the Argentum module registry",
		Long: `registryctl publishes and resolves Argentum modules and administers
  the publisher allow-list of a module registry server.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if _, err := outputFormatOf(opts.output); err != nil {
				return err
			}
			log, err := logger.New(config.LogConfig{Level: opts.logLevel, Format: "text"}, cmd.ErrOrStderr())
			if err != nil {
				return fmt.Errorf("could not create logger: %w", err)
			}
			opts.log = log
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		DisableAutoGenTag: true,
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.server, flagServer, envOr(envServer, defaultServer), "registry API base URL (env "+envServer+")")
	flags.StringVar(&opts.token, flagToken, os.Getenv(envToken), "bearer token (env "+envToken+")")
	flags.StringVarP(&opts.output, flagOutput, "o", string(outputTable), "output format: table, json or yaml")
	flags.StringVar(&opts.logLevel, flagLogLevel, "warn", "log level: debug, info, warn or error")

	cmd.AddCommand(
		newPublishCmd(opts),
		newResolveCmd(opts),
		newModulesCmd(opts),
		newPublishersCmd(opts),
		newTokenCmd(opts),
	)
	return cmd
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func out(cmd *cobra.Command) io.Writer {
	return cmd.OutOrStdout()
}
