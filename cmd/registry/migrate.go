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

	"github.com/spf13/cobra"

	dbmigrations "github.com/aglang/module-registry/db_migrations"
)

func newMigrateCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the registry database schema",
	}
	cmd.AddCommand(newMigrateUpCmd(opts), newMigrateDownCmd(opts))
	return cmd
}

func newMigrateUpCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, log, gdb, err := bootstrap(opts)
			if err != nil {
				return err
			}
			defer closeDB(gdb, log)
			return dbmigrations.Migrate(gdb, log)
		},
	}
}

func newMigrateDownCmd(opts *options) *cobra.Command {
	var steps int
	cmd := &cobra.Command{
		Use:   "down",
		Short: "Revert applied migrations, newest first",
		Long: `down reverts the most recently applied migrations. Reverting the first
  migration drops the publishers and modules tables with all their rows.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if steps < 1 {
				return fmt.Errorf("--steps must be at least 1, got %d", steps)
			}
			_, log, gdb, err := bootstrap(opts)
			if err != nil {
				return err
			}
			defer closeDB(gdb, log)
			for i := 0; i < steps; i++ {
				if err := dbmigrations.RollbackLast(gdb, log); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&steps, "steps", 1, "number of migrations to revert")
	return cmd
}
