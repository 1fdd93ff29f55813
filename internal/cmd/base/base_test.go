// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package base

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/eventknowledge/eventknowledge/api"
	"github.com/mitchellh/cli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"
)

// clearEnv unsets every variable the CLI reads so that tests see only what
// they set themselves.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, env := range []string{
		api.EnvEventKnowledgeAddr,
		api.EnvEventKnowledgeSubscriptionKey,
		api.EnvEventKnowledgeCACert,
		api.EnvEventKnowledgeCAPath,
		api.EnvEventKnowledgeClientCert,
		api.EnvEventKnowledgeClientKey,
		api.EnvEventKnowledgeClientTimeout,
		api.EnvEventKnowledgeTLSInsecure,
		api.EnvEventKnowledgeTLSServerName,
		api.EnvEventKnowledgeMaxRetries,
		api.EnvEventKnowledgeRateLimit,
		EnvEventKnowledgeCLIFormat,
		EnvEventKnowledgeConfig,
		EnvEventKnowledgeLogLevel,
		EnvEventKnowledgeLogFormat,
		EnvKeyName,
	} {
		t.Setenv(env, "")
	}
}

func newTestCommand(t *testing.T, args ...string) *Command {
	t.Helper()
	c := NewCommand(&EventKnowledgeUI{Ui: cli.NewMockUi()})
	c.LogOutput = &bytes.Buffer{}
	f := c.FlagSet(FlagSetHTTP | FlagSetClient | FlagSetOutputFormat)
	require.NoError(t, f.Parse(args))
	return c
}

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.hcl")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}

func TestCommand_ClientDefaults(t *testing.T) {
	assert, require := assert.New(t), require.New(t)
	clearEnv(t)
	keyring.MockInit()

	c := newTestCommand(t)
	client, err := c.Client()
	require.NoError(err)
	assert.Equal(api.DefaultAddr, client.Addr())
	assert.Empty(client.SubscriptionKey())

	again, err := c.Client()
	require.NoError(err)
	assert.Same(client, again)
}

func TestCommand_ClientKeyring(t *testing.T) {
	assert, require := assert.New(t), require.New(t)
	clearEnv(t)
	keyring.MockInit()
	require.NoError(keyring.Set(KeyringServiceName, DefaultKeyName, "stored-default"))
	require.NoError(keyring.Set(KeyringServiceName, "work", "stored-work"))

	client, err := newTestCommand(t).Client()
	require.NoError(err)
	assert.Equal("stored-default", client.SubscriptionKey())

	client, err = newTestCommand(t, "-key-name", "work").Client()
	require.NoError(err)
	assert.Equal("stored-work", client.SubscriptionKey())

	client, err = newTestCommand(t, "-key-name", NoKeyName).Client()
	require.NoError(err)
	assert.Empty(client.SubscriptionKey())

	client, err = newTestCommand(t, "-subscription-key", "from-flag").Client()
	require.NoError(err)
	assert.Equal("from-flag", client.SubscriptionKey())
}

func TestCommand_ClientPrecedence(t *testing.T) {
	assert, require := assert.New(t), require.New(t)
	clearEnv(t)
	keyring.MockInit()

	path := writeConfig(t, `
address          = "https://file.example.com"
subscription_key = "file-key"
max_retries      = 2
`)

	client, err := newTestCommand(t, "-config", path).Client()
	require.NoError(err)
	assert.Equal("https://file.example.com", client.Addr())
	assert.Equal("file-key", client.SubscriptionKey())

	t.Setenv(api.EnvEventKnowledgeAddr, "https://env.example.com")
	t.Setenv(api.EnvEventKnowledgeSubscriptionKey, "env-key")
	client, err = newTestCommand(t, "-config", path).Client()
	require.NoError(err)
	assert.Equal("https://env.example.com", client.Addr())
	assert.Equal("env-key", client.SubscriptionKey())

	client, err = newTestCommand(t,
		"-config", path,
		"-addr", "https://flag.example.com/eventknowledge/v1.0/",
		"-subscription-key", "flag-key",
	).Client()
	require.NoError(err)
	assert.Equal("https://flag.example.com", client.Addr())
	assert.Equal("flag-key", client.SubscriptionKey())
}

func TestCommand_ClientConfigFromEnv(t *testing.T) {
	assert, require := assert.New(t), require.New(t)
	clearEnv(t)
	keyring.MockInit()

	t.Setenv(EnvEventKnowledgeConfig, writeConfig(t, `address = "https://file.example.com"`))
	client, err := newTestCommand(t).Client()
	require.NoError(err)
	assert.Equal("https://file.example.com", client.Addr())
}

func TestCommand_ClientErrors(t *testing.T) {
	clearEnv(t)
	keyring.MockInit()

	tests := []struct {
		name            string
		args            []string
		wantErrContains string
	}{
		{
			name:            "missing-config",
			args:            []string{"-config", filepath.Join(t.TempDir(), "nope.hcl")},
			wantErrContains: "error loading configuration file",
		},
		{
			name:            "bad-addr",
			args:            []string{"-addr", "not-a-url"},
			wantErrContains: "error setting address on client",
		},
		{
			name:            "bad-log-level",
			args:            []string{"-log-level", "loud"},
			wantErrContains: "unknown log level",
		},
		{
			name:            "bad-key-reference",
			args:            []string{"-subscription-key", "file://" + filepath.Join(t.TempDir(), "missing")},
			wantErrContains: "error reading -subscription-key",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newTestCommand(t, tt.args...).Client()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErrContains)
		})
	}
}

func TestCommand_ConfigSetsFormat(t *testing.T) {
	clearEnv(t)
	keyring.MockInit()

	c := newTestCommand(t, "-config", writeConfig(t, `format = "JSON"`))
	_, err := c.Config()
	require.NoError(t, err)
	assert.Equal(t, "json", Format(c.UI))
}

func TestCommand_Logger(t *testing.T) {
	assert, require := assert.New(t), require.New(t)
	clearEnv(t)

	c := newTestCommand(t, "-log-level", "debug", "-log-format", "json")
	buf := &bytes.Buffer{}
	c.LogOutput = buf
	logger, err := c.Logger()
	require.NoError(err)
	assert.True(logger.IsDebug())
	logger.Debug("hello", "k", "v")
	assert.Contains(buf.String(), `"@message":"hello"`)
}
