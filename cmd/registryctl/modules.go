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

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/aglang/module-registry/spec"
)

const (
	flagName        = "name"
	flagDescription = "description"
	flagVersion     = "version"
	flagURL         = "url"
	flagMine        = "mine"
)

func newPublishCmd(opts *options) *cobra.Command {
	var (
		name, description, url string
		version                int64
	)
	cmd := &cobra.Command{
		Use:   "publish --name NAME --version N --url URL",
		Short: "Publish a module or overwrite the record you own",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := opts.client()
			if err != nil {
				return err
			}
			req := spec.PublishRequest{Name: name, Version: &version, URL: url}
			if cmd.Flags().Changed(flagDescription) {
				req.Description = &description
			}
			resp, err := client.Publish(cmd.Context(), req)
			if err != nil {
				return fmt.Errorf("publish %q failed: %w", name, err)
			}
			return render(out(cmd), opts.output, resp, func(t table.Writer) {
				t.AppendHeader(table.Row{"Name", "Version", "Action"})
				t.AppendRow(table.Row{name, version, resp.Action})
			})
		},
	}
	cmd.Flags().StringVar(&name, flagName, "", "module name (letters and digits)")
	cmd.Flags().StringVar(&description, flagDescription, "", "module description")
	cmd.Flags().Int64Var(&version, flagVersion, 0, "module version")
	cmd.Flags().StringVar(&url, flagURL, "", "absolute http(s) URL of the module artifact")
	_ = cmd.MarkFlagRequired(flagName)
	_ = cmd.MarkFlagRequired(flagVersion)
	_ = cmd.MarkFlagRequired(flagURL)
	return cmd
}

type resolveOutput struct {
	Name     string `json:"name"`
	Version  int64  `json:"version"`
	Location string `json:"location"`
}

func newResolveCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve NAME MIN_VERSION",
		Short: "Show where a module resolves to if it is at least MIN_VERSION",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			minVersion, err := strconv.ParseInt(args[1], 10, 64)
			if err != nil {
				return fmt.Errorf("version %q is not an integer", args[1])
			}
			client, err := opts.client()
			if err != nil {
				return err
			}
			res, err := client.Resolve(cmd.Context(), args[0], minVersion)
			if err != nil {
				return fmt.Errorf("resolve %s/%d failed: %w", args[0], minVersion, err)
			}
			o := resolveOutput{Name: args[0], Version: res.Version, Location: res.Location}
			return render(out(cmd), opts.output, o, func(t table.Writer) {
				t.AppendHeader(table.Row{"Name", "Version", "Location"})
				t.AppendRow(table.Row{o.Name, o.Version, o.Location})
			})
		},
	}
}

func newModulesCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "modules",
		Short: "List and manage module records",
	}
	cmd.AddCommand(
		newModulesListCmd(opts),
		newModulesUpdateCmd(opts),
		newModulesDeleteCmd(opts),
	)
	return cmd
}

func newModulesListCmd(opts *options) *cobra.Command {
	var mine bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the catalog, or only the records you can manage with --mine",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := opts.client()
			if err != nil {
				return err
			}
			var list *spec.ModuleListResponse
			if mine {
				list, err = client.ListManagedModules(cmd.Context())
			} else {
				list, err = client.ListModules(cmd.Context())
			}
			if err != nil {
				return fmt.Errorf("listing modules failed: %w", err)
			}
			return render(out(cmd), opts.output, list, moduleTable(list.Modules))
		},
	}
	cmd.Flags().BoolVar(&mine, flagMine, false, "only records owned by the caller (all records for administrators)")
	return cmd
}

func newModulesUpdateCmd(opts *options) *cobra.Command {
	var (
		description, url string
		version          int64
	)
	cmd := &cobra.Command{
		Use:   "update NAME --version N --url URL",
		Short: "Overwrite an existing module record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := opts.client()
			if err != nil {
				return err
			}
			req := spec.UpdateModuleRequest{Version: &version, URL: url}
			if cmd.Flags().Changed(flagDescription) {
				req.Description = &description
			}
			if err := client.UpdateModule(cmd.Context(), args[0], req); err != nil {
				return fmt.Errorf("update %q failed: %w", args[0], err)
			}
			_, err = fmt.Fprintf(out(cmd), "module %s updated to version %d\n", args[0], version)
			return err
		},
	}
	cmd.Flags().StringVar(&description, flagDescription, "", "module description")
	cmd.Flags().Int64Var(&version, flagVersion, 0, "module version")
	cmd.Flags().StringVar(&url, flagURL, "", "absolute http(s) URL of the module artifact")
	_ = cmd.MarkFlagRequired(flagVersion)
	_ = cmd.MarkFlagRequired(flagURL)
	return cmd
}

func newModulesDeleteCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "delete NAME",
		Short: "Delete a module record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := opts.client()
			if err != nil {
				return err
			}
			if err := client.DeleteModule(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("delete %q failed: %w", args[0], err)
			}
			_, err = fmt.Fprintf(out(cmd), "module %s deleted\n", args[0])
			return err
		},
	}
}
