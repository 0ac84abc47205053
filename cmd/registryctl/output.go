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
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"sigs.k8s.io/yaml"

	"github.com/aglang/module-registry/spec"
)

type outputFormat string

const (
	outputTable outputFormat = "table"
	outputJSON  outputFormat = "json"
	outputYAML  outputFormat = "yaml"
)

func outputFormatOf(s string) (outputFormat, error) {
	switch f := outputFormat(s); f {
	case outputTable, outputJSON, outputYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format: %q", s)
	}
}

// render writes data as JSON or YAML, or as the table built by toTable
func render(w io.Writer, format string, data interface{}, toTable func(table.Writer)) error {
	f, err := outputFormatOf(format)
	if err != nil {
		return err
	}
	switch f {
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(data)
	case outputYAML:
		raw, err := yaml.Marshal(data)
		if err != nil {
			return fmt.Errorf("encoding output as yaml failed: %w", err)
		}
		_, err = w.Write(raw)
		return err
	default:
		t := table.NewWriter()
		t.SetOutputMirror(w)
		toTable(t)
		style := table.StyleLight
		style.Options.DrawBorder = false
		t.SetStyle(style)
		t.Render()
		return nil
	}
}

func moduleTable(modules []spec.ModuleResponse) func(table.Writer) {
	return func(t table.Writer) {
		t.AppendHeader(table.Row{"Name", "Version", "Description", "URL", "Author"})
		for _, m := range modules {
			t.AppendRow(table.Row{m.Name, m.Version, m.Description, m.URL, author(m)})
		}
		t.SetColumnConfigs([]table.ColumnConfig{
			{Number: 3, WidthMax: 48},
		})
	}
}

func publisherTable(publishers []spec.PublisherResponse) func(table.Writer) {
	return func(t table.Writer) {
		t.AppendHeader(table.Row{"ID", "Name", "Email", "Added"})
		for _, p := range publishers {
			t.AppendRow(table.Row{strconv.FormatInt(p.ID, 10), p.Name, p.Email, p.CreatedAt.Format("2006-01-02")})
		}
	}
}

func author(m spec.ModuleResponse) string {
	switch {
	case m.PublisherName == "" && m.PublisherEmail == "":
		return ""
	case m.PublisherEmail == "":
		return m.PublisherName
	default:
		return m.PublisherName + " (" + m.PublisherEmail + ")"
	}
}
