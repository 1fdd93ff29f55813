// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package base

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/eventknowledge/eventknowledge/api"
	"github.com/eventknowledge/eventknowledge/version"
	"github.com/mitchellh/cli"
	"github.com/mitchellh/go-wordwrap"
)

// MaxAttributesLength returns the longest key length among the given maps.
func MaxAttributesLength(nonAttributesMap, attributesMap map[string]any, keySubstMap map[string]string) int {
	maxLength := 0
	for k := range nonAttributesMap {
		if len(k) > maxLength {
			maxLength = len(k)
		}
	}
	for k := range attributesMap {
		if keySubstMap != nil {
			if sub, ok := keySubstMap[k]; ok {
				k = sub
			}
		}
		if len(k) > maxLength {
			maxLength = len(k)
		}
	}
	return maxLength
}

var asciiSpace = [256]uint8{'\t': 1, '\n': 1, '\v': 1, '\f': 1, '\r': 1, ' ': 1}

func trimSpaceRight(in string) string {
	// Now look for the first ASCII non-space byte from the end
	stop := len(in)
	for ; stop > 0; stop-- {
		c := in[stop-1]
		if c >= utf8.RuneSelf {
			return strings.TrimFunc(in[:stop], unicode.IsSpace)
		}
		if asciiSpace[c] == 0 {
			return in[0:stop]
		}
	}
	return ""
}

func WrapForHelpText(lines []string) string {
	var ret []string
	for _, line := range lines {
		line = trimSpaceRight(line)
		trimmed := strings.TrimSpace(line)
		diff := uint(len(line) - len(trimmed))
		wrapped := wordwrap.WrapString(trimmed, TermWidth-diff)
		splitWrapped := strings.Split(wrapped, "\n")
		for i := range splitWrapped {
			splitWrapped[i] = fmt.Sprintf("%s%s", strings.Repeat(" ", int(diff)), strings.TrimSpace(splitWrapped[i]))
		}
		ret = append(ret, strings.Join(splitWrapped, "\n"))
	}

	return strings.Join(ret, "\n")
}

func WrapSlice(prefixSpaces int, input []string) string {
	var ret []string
	for _, v := range input {
		ret = append(ret, fmt.Sprintf("%s%s",
			strings.Repeat(" ", prefixSpaces),
			v,
		))
	}

	return strings.Join(ret, "\n")
}

func WrapMap(prefixSpaces, maxLengthOverride int, input map[string]any) string {
	maxKeyLength := maxLengthOverride
	if maxKeyLength == 0 {
		for k := range input {
			if len(k) > maxKeyLength {
				maxKeyLength = len(k)
			}
		}
	}

	var sortedKeys []string
	for k := range input {
		sortedKeys = append(sortedKeys, k)
	}
	sort.Strings(sortedKeys)

	var ret []string
	for _, k := range sortedKeys {
		v := input[k]
		spaces := max(maxKeyLength-len(k), 0)

		if sv, ok := v.([]string); ok {
			nv := make([]string, 0, len(sv))
			for _, si := range sv {
				nv = append(nv, fmt.Sprintf("%q", si))
			}
			v = nv
		}

		ret = append(ret, fmt.Sprintf("%s%s%s%v",
			strings.Repeat(" ", prefixSpaces),
			fmt.Sprintf("%s: ", k),
			strings.Repeat(" ", spaces),
			v,
		))
	}

	return strings.Join(ret, "\n")
}

// PrintApiError prints the given API error, optionally with context
// information, to the UI in the appropriate format.
func (c *Command) PrintApiError(in *api.Error, contextStr string) {
	switch Format(c.UI) {
	case "json":
		var b []byte
		if version.SupportsFeature(version.Binary, version.IncludeStatusInCli) {
			output := struct {
				Context    string     `json:"context,omitempty"`
				StatusCode int        `json:"status_code"`
				Status     int        `json:"status"`
				ApiError   *api.Error `json:"api_error"`
			}{
				Context:    contextStr,
				StatusCode: in.Status,
				Status:     in.Status,
				ApiError:   in,
			}
			b, _ = JsonFormatter{}.Format(output)
		} else {
			output := struct {
				Context    string     `json:"context,omitempty"`
				StatusCode int        `json:"status_code"`
				ApiError   *api.Error `json:"api_error"`
			}{
				Context:    contextStr,
				StatusCode: in.Status,
				ApiError:   in,
			}
			b, _ = JsonFormatter{}.Format(output)
		}
		c.UI.Error(string(b))

	default:
		nonAttributeMap := map[string]any{
			"Status":  in.Status,
			"Code":    in.Code,
			"Message": in.Message,
		}
		if in.RequestId != "" {
			nonAttributeMap["Request ID"] = in.RequestId
		}

		maxLength := MaxAttributesLength(nonAttributeMap, nil, nil)

		var output []string
		if contextStr != "" {
			output = append(output, contextStr)
		}
		output = append(output,
			"",
			"Error information:",
			WrapMap(2, maxLength+2, nonAttributeMap),
		)

		c.UI.Error(WrapForHelpText(output))
	}
}

// PrintCliError prints the given CLI error to the UI in the appropriate format
func (c *Command) PrintCliError(err error) {
	switch Format(c.UI) {
	case "json":
		output := struct {
			Error string `json:"error"`
		}{
			Error: err.Error(),
		}
		b, _ := JsonFormatter{}.Format(output)
		c.UI.Error(string(b))
	default:
		c.UI.Error(err.Error())
	}
}

// PrintError prints err as an API error when it carries one and as a CLI
// error otherwise. It returns the matching exit code.
func (c *Command) PrintError(err error, contextStr string) int {
	if apiErr := api.AsServerError(err); apiErr != nil {
		c.PrintApiError(apiErr, contextStr)
		return CommandApiError
	}
	if contextStr != "" {
		err = fmt.Errorf("%s: %w", contextStr, err)
	}
	c.PrintCliError(err)
	return CommandCliError
}

// PrintJsonItem prints the given value to the UI in JSON format
func (c *Command) PrintJsonItem(item any, opt ...Option) bool {
	if item == nil {
		c.PrintCliError(errors.New("Error formatting as JSON: no item given to item formatter"))
		return false
	}
	raw, err := json.Marshal(item)
	if err != nil {
		c.PrintCliError(fmt.Errorf("Error formatting as JSON: %w", err))
		return false
	}
	return c.PrintJson(raw, opt...)
}

// PrintJson prints the given raw JSON in our common format
func (c *Command) PrintJson(input json.RawMessage, opt ...Option) bool {
	opts := GetOpts(opt...)
	output := struct {
		StatusCode int             `json:"status_code,omitempty"`
		Item       json.RawMessage `json:"item,omitempty"`
	}{
		StatusCode: opts.withStatusCode,
		Item:       input,
	}
	b, err := JsonFormatter{}.Format(output)
	if err != nil {
		c.PrintCliError(fmt.Errorf("Error formatting as JSON: %w", err))
		return false
	}
	c.UI.Output(string(b))
	return true
}

// PrintJsonItems prints a list result to the UI in JSON format. The
// continuation token is included when non-empty.
func (c *Command) PrintJsonItems(items any, continuationToken string, opt ...Option) bool {
	opts := GetOpts(opt...)
	raw, err := json.Marshal(items)
	if err != nil {
		c.PrintCliError(fmt.Errorf("Error formatting as JSON: %w", err))
		return false
	}
	output := struct {
		StatusCode        int             `json:"status_code,omitempty"`
		Items             json.RawMessage `json:"items"`
		ContinuationToken string          `json:"continuation_token,omitempty"`
	}{
		StatusCode: opts.withStatusCode,
		Items:      raw,
	}
	if version.SupportsFeature(version.Binary, version.SegmentJsonOutput) {
		output.ContinuationToken = continuationToken
	}
	b, err := JsonFormatter{}.Format(output)
	if err != nil {
		c.PrintCliError(fmt.Errorf("Error formatting as JSON: %w", err))
		return false
	}
	c.UI.Output(string(b))
	return true
}

// An output formatter for json output of an object
type JsonFormatter struct{}

func (j JsonFormatter) Format(data any) ([]byte, error) {
	return json.Marshal(data)
}

// Format returns the output format for ui, falling back to
// EVENTKNOWLEDGE_CLI_FORMAT and then "table".
func Format(ui cli.Ui) string {
	switch t := ui.(type) {
	case *EventKnowledgeUI:
		if t.Format != "" {
			return t.Format
		}
	}

	format := os.Getenv(EnvEventKnowledgeCLIFormat)
	if format == "" {
		format = "table"
	}

	return format
}
