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
	"time"

	"github.com/spf13/cobra"

	"github.com/aglang/module-registry/middleware/auth"
	"github.com/aglang/module-registry/models"
)

const (
	flagSubject = "subject"
	flagAdmin   = "admin"
	flagTTL     = "ttl"
)

func newTokenCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Bearer token utilities",
	}
	cmd.AddCommand(newTokenIssueCmd(opts))
	return cmd
}

func newTokenIssueCmd(opts *options) *cobra.Command {
	var (
		subject int64
		admin   bool
		ttl     time.Duration
	)
	cmd := &cobra.Command{
		Use:   "issue --subject N",
		Short: "Sign a bearer token with JWT_SIGNING_KEY",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			authCfg, err := opts.loadAuth()
			if err != nil {
				return fmt.Errorf("could not load signing configuration: %w", err)
			}
			token, err := auth.NewTokenIssuer(authCfg).Issue(models.Principal{ID: subject, IsAdmin: admin}, ttl)
			if err != nil {
				return fmt.Errorf("issuing token failed: %w", err)
			}
			_, err = fmt.Fprintln(out(cmd), token)
			return err
		},
	}
	cmd.Flags().Int64Var(&subject, flagSubject, 0, "principal id placed in the sub claim")
	cmd.Flags().BoolVar(&admin, flagAdmin, false, "grant the administrator role")
	cmd.Flags().DurationVar(&ttl, flagTTL, 24*time.Hour, "token lifetime")
	_ = cmd.MarkFlagRequired(flagSubject)
	return cmd
}
