// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/eventknowledge/eventknowledge/api/events"
	"github.com/eventknowledge/eventknowledge/internal/cmd/base"
	"github.com/eventknowledge/eventknowledge/internal/tests/fakeservice"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupEnv(t *testing.T) {
	tests := []struct {
		name       string
		env        string
		in         []string
		out        []string
		wantFormat string
		wantCurl   bool
	}{
		{
			name: "zero length",
		},
		{
			name:       "format with equals",
			in:         []string{"hot-events", "list", "-format=JSON"},
			out:        []string{"hot-events", "list", "-format=JSON"},
			wantFormat: "json",
		},
		{
			name:       "format as next arg",
			in:         []string{"version", "-format", "table"},
			out:        []string{"version", "-format", "table"},
			wantFormat: "table",
		},
		{
			name:       "format from env",
			env:        "json",
			in:         []string{"version"},
			out:        []string{"version"},
			wantFormat: "json",
		},
		{
			name:       "flag overrides env",
			env:        "json",
			in:         []string{"version", "-format=table"},
			out:        []string{"version", "-format=table"},
			wantFormat: "table",
		},
		{
			name:     "curl",
			in:       []string{"hot-events", "list", "-output-curl-string"},
			out:      []string{"hot-events", "list", "-output-curl-string"},
			wantCurl: true,
		},
		{
			name: "args after terminator are ignored",
			in:   []string{"version", "--", "-format=json"},
			out:  []string{"version", "--", "-format=json"},
		},
		{
			name: "version shortcut",
			in:   []string{"-v"},
			out:  []string{"version"},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(base.EnvEventKnowledgeCLIFormat, tc.env)
			out, format, curl := setupEnv(tc.in)
			assert.EqualValues(t, tc.out, out)
			assert.Equal(t, tc.wantFormat, format)
			assert.Equal(t, tc.wantCurl, curl)
		})
	}
}

func clearCliEnv(t *testing.T) {
	t.Helper()
	for _, env := range []string{
		base.EnvEventKnowledgeCLIFormat,
		base.EnvEventKnowledgeConfig,
		base.EnvEventKnowledgeLogLevel,
		base.EnvEventKnowledgeLogFormat,
		base.EnvKeyName,
		"COMP_LINE",
	} {
		t.Setenv(env, "")
	}
	t.Setenv(base.EnvEventKnowledgeCLINoColor, "true")
}

func run(args ...string) (int, string, string) {
	var stdout, stderr bytes.Buffer
	code := RunCustom(args, &RunOptions{Stdout: &stdout, Stderr: &stderr, Stdin: &bytes.Buffer{}})
	return code, stdout.String(), stderr.String()
}

func TestRun_HotEventsJson(t *testing.T) {
	assert, require := assert.New(t), require.New(t)
	clearCliEnv(t)
	ts := fakeservice.NewTestService(t)
	next := ts.Link("/hotevents?page=2")
	ts.AddPage("/hotevents?date=2024-03-01", []*events.Event{{EventId: "E1"}}, next)

	code, stdout, stderr := run("hot-events", "list",
		"-addr", ts.Addr(),
		"-subscription-key", fakeservice.DefaultTestSubscriptionKey,
		"-key-name", base.NoKeyName,
		"-date", "2024-03-01",
		"-format", "json",
	)
	require.Equal(base.CommandSuccess, code, stderr)

	var got struct {
		Items             []*events.Event `json:"items"`
		ContinuationToken string          `json:"continuation_token"`
	}
	require.NoError(json.Unmarshal([]byte(stdout), &got))
	require.Len(got.Items, 1)
	assert.Equal("E1", got.Items[0].EventId)
	assert.Equal(next, got.ContinuationToken)
}

func TestRun_OutputCurlString(t *testing.T) {
	assert := assert.New(t)
	clearCliEnv(t)
	ts := fakeservice.NewTestService(t)

	code, stdout, _ := run("hot-events", "list",
		"-addr", ts.Addr(),
		"-subscription-key", "secret",
		"-key-name", base.NoKeyName,
		"-date", "2024-03-01",
		"-output-curl-string",
	)
	assert.Equal(0, code)
	assert.Contains(stdout, "curl ")
	assert.Contains(stdout, ts.Addr()+"/eventknowledge/v1.0/hotevents?date=2024-03-01")
	assert.Contains(stdout, "$(eventknowledge config get-key)")
	assert.NotContains(stdout, "secret")
	assert.Zero(ts.Calls())
}

func TestRun_InvalidFormat(t *testing.T) {
	clearCliEnv(t)
	code, _, stderr := run("version", "-format", "yaml")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "Invalid output format: yaml")
}

func TestRun_Help(t *testing.T) {
	assert := assert.New(t)
	clearCliEnv(t)
	code, _, stderr := run("-help")
	assert.Equal(0, code)
	assert.Contains(stderr, "Usage: eventknowledge <command> [args]")
	assert.Contains(stderr, "Local/Client Commands:")
	assert.Contains(stderr, "Query Commands:")
	assert.Contains(stderr, "hot-events")
	assert.NotContains(stderr, "hot-events list")
}

func TestRun_UnknownCommand(t *testing.T) {
	clearCliEnv(t)
	code, _, _ := run("no-such-command")
	assert.Equal(t, 127, code)
}
