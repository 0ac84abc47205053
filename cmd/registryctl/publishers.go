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
	"strconv"

	"github.com/spf13/cobra"

	"github.com/aglang/module-registry/spec"
)

const (
	flagID    = "id"
	flagEmail = "email"
)

func newPublishersCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "publishers",
		Short: "Administer the publisher allow-list (administrators only)",
	}
	cmd.AddCommand(
		newPublishersListCmd(opts),
		newPublishersAddCmd(opts),
		newPublishersRemoveCmd(opts),
	)
	return cmd
}

func newPublishersListCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List allow-listed publishers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := opts.client()
			if err != nil {
				return err
			}
			list, err := client.ListPublishers(cmd.Context())
			if err != nil {
				return fmt.Errorf("listing publishers failed: %w", err)
			}
			return render(out(cmd), opts.output, list, publisherTable(list.Publishers))
		},
	}
}

func newPublishersAddCmd(opts *options) *cobra.Command {
	var req spec.AddPublisherRequest
	cmd := &cobra.Command{
		Use:   "add --id N --name NAME --email EMAIL",
		Short: "Allow a principal to publish modules",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := opts.client()
			if err != nil {
				return err
			}
			added, err := client.AddPublisher(cmd.Context(), req)
			if err != nil {
				return fmt.Errorf("adding publisher %d failed: %w", req.ID, err)
			}
			return render(out(cmd), opts.output, added, publisherTable([]spec.PublisherResponse{*added}))
		},
	}
	cmd.Flags().Int64Var(&req.ID, flagID, 0, "principal id assigned by the identity provider")
	cmd.Flags().StringVar(&req.Name, flagName, "", "display name")
	cmd.Flags().StringVar(&req.Email, flagEmail, "", "contact email")
	_ = cmd.MarkFlagRequired(flagID)
	_ = cmd.MarkFlagRequired(flagName)
	_ = cmd.MarkFlagRequired(flagEmail)
	return cmd
}

func newPublishersRemoveCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "remove ID",
		Short: "Remove a publisher from the allow-list; their modules are kept",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("publisher id %q is not an integer", args[0])
			}
			client, err := opts.client()
			if err != nil {
				return err
			}
			if err := client.RemovePublisher(cmd.Context(), id); err != nil {
				return fmt.Errorf("removing publisher %d failed: %w", id, err)
			}
			_, err = fmt.Fprintf(out(cmd), "publisher %d removed\n", id)
			return err
		},
	}
}
