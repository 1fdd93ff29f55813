// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package config

import (
	"strings"
	"testing"

	"github.com/eventknowledge/eventknowledge/api"
	"github.com/eventknowledge/eventknowledge/internal/cmd/base"
	"github.com/mitchellh/cli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"
)

func setupKeyTest(t *testing.T) {
	t.Helper()
	keyring.MockInit()
	t.Setenv(api.EnvEventKnowledgeSubscriptionKey, "")
	t.Setenv(api.EnvEventKnowledgeAddr, "")
	t.Setenv(base.EnvKeyName, "")
	t.Setenv(base.EnvEventKnowledgeCLIFormat, "")
}

func newKeyCommand(fn string) (*KeyCommand, *cli.MockUi) {
	ui := cli.NewMockUi()
	return &KeyCommand{
		Command: base.NewCommand(&base.EventKnowledgeUI{Ui: ui}),
		Func:    fn,
	}, ui
}

func TestKeyCommand_Lifecycle(t *testing.T) {
	assert, require := assert.New(t), require.New(t)
	setupKeyTest(t)

	cmd, ui := newKeyCommand("set-key")
	require.Equal(base.CommandSuccess, cmd.Run([]string{"secret-one"}), ui.ErrorWriter.String())
	assert.Contains(ui.OutputWriter.String(), `"default"`)

	stored, err := keyring.Get(base.KeyringServiceName, base.DefaultKeyName)
	require.NoError(err)
	assert.Equal("secret-one", stored)

	cmd, ui = newKeyCommand("get-key")
	require.Equal(base.CommandSuccess, cmd.Run(nil), ui.ErrorWriter.String())
	assert.Equal("secret-one\n", ui.OutputWriter.String())

	cmd, ui = newKeyCommand("delete-key")
	require.Equal(base.CommandSuccess, cmd.Run(nil), ui.ErrorWriter.String())

	_, err = keyring.Get(base.KeyringServiceName, base.DefaultKeyName)
	assert.ErrorIs(err, keyring.ErrNotFound)

	cmd, ui = newKeyCommand("get-key")
	assert.Equal(base.CommandCliError, cmd.Run(nil))
	assert.Contains(ui.ErrorWriter.String(), "No subscription key found")

	cmd, ui = newKeyCommand("delete-key")
	assert.Equal(base.CommandCliError, cmd.Run(nil))
	assert.Contains(ui.ErrorWriter.String(), `No subscription key stored as "default"`)
}

func TestKeyCommand_SetFromPrompt(t *testing.T) {
	assert, require := assert.New(t), require.New(t)
	setupKeyTest(t)

	cmd, ui := newKeyCommand("set-key")
	ui.InputReader = strings.NewReader("prompted-key\n")
	require.Equal(base.CommandSuccess, cmd.Run([]string{"-key-name", "work"}), ui.ErrorWriter.String())

	stored, err := keyring.Get(base.KeyringServiceName, "work")
	require.NoError(err)
	assert.Equal("prompted-key", stored)
}

func TestKeyCommand_SetFromStdinDash(t *testing.T) {
	setupKeyTest(t)

	cmd, ui := newKeyCommand("set-key")
	ui.InputReader = strings.NewReader("dash-key\n")
	require.Equal(t, base.CommandSuccess, cmd.Run([]string{"-"}), ui.ErrorWriter.String())

	stored, err := keyring.Get(base.KeyringServiceName, base.DefaultKeyName)
	require.NoError(t, err)
	assert.Equal(t, "dash-key", stored)
}

func TestKeyCommand_SetFromEnvReference(t *testing.T) {
	assert, require := assert.New(t), require.New(t)
	setupKeyTest(t)
	t.Setenv("EVENTKNOWLEDGE_TEST_KEY", " from-env ")

	cmd, ui := newKeyCommand("set-key")
	require.Equal(base.CommandSuccess, cmd.Run([]string{"env://EVENTKNOWLEDGE_TEST_KEY"}), ui.ErrorWriter.String())

	stored, err := keyring.Get(base.KeyringServiceName, base.DefaultKeyName)
	require.NoError(err)
	assert.Equal("from-env", stored)
}

func TestKeyCommand_GetPrefersEnv(t *testing.T) {
	setupKeyTest(t)
	require.NoError(t, keyring.Set(base.KeyringServiceName, base.DefaultKeyName, "stored"))
	t.Setenv(api.EnvEventKnowledgeSubscriptionKey, "from-env")

	cmd, ui := newKeyCommand("get-key")
	require.Equal(t, base.CommandSuccess, cmd.Run(nil), ui.ErrorWriter.String())
	assert.Equal(t, "from-env\n", ui.OutputWriter.String())
}

func TestKeyCommand_Errors(t *testing.T) {
	tests := []struct {
		name            string
		fn              string
		args            []string
		wantErrContains string
	}{
		{
			name:            "set-empty",
			fn:              "set-key",
			args:            []string{"   "},
			wantErrContains: "must not be empty",
		},
		{
			name:            "set-too-many",
			fn:              "set-key",
			args:            []string{"a", "b"},
			wantErrContains: "Too many arguments",
		},
		{
			name:            "set-none",
			fn:              "set-key",
			args:            []string{"-key-name", "none", "a"},
			wantErrContains: "disables the credential store",
		},
		{
			name:            "delete-none",
			fn:              "delete-key",
			args:            []string{"-key-name", "none"},
			wantErrContains: "disables the credential store",
		},
		{
			name:            "bad-flag",
			fn:              "get-key",
			args:            []string{"-nope"},
			wantErrContains: "flag provided but not defined",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupKeyTest(t)
			cmd, ui := newKeyCommand(tt.fn)
			assert.Equal(t, base.CommandCliError, cmd.Run(tt.args))
			assert.Contains(t, ui.ErrorWriter.String(), tt.wantErrContains)
		})
	}
}
