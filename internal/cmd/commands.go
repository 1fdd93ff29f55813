// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"github.com/eventknowledge/eventknowledge/internal/cmd/base"
	"github.com/eventknowledge/eventknowledge/internal/cmd/commands/config"
	"github.com/eventknowledge/eventknowledge/internal/cmd/commands/eventscmd"
	"github.com/eventknowledge/eventknowledge/internal/cmd/commands/version"
	"github.com/mitchellh/cli"
)

// Commands is the mapping of all the available commands.
var Commands map[string]cli.CommandFactory

func initCommands(ui cli.Ui) {
	Commands = map[string]cli.CommandFactory{
		"config": func() (cli.Command, error) {
			return &config.Command{
				Command: base.NewCommand(ui),
			}, nil
		},
		"config set-key": func() (cli.Command, error) {
			return &config.KeyCommand{
				Command: base.NewCommand(ui),
				Func:    "set-key",
			}, nil
		},
		"config get-key": func() (cli.Command, error) {
			return &config.KeyCommand{
				Command: base.NewCommand(ui),
				Func:    "get-key",
			}, nil
		},
		"config delete-key": func() (cli.Command, error) {
			return &config.KeyCommand{
				Command: base.NewCommand(ui),
				Func:    "delete-key",
			}, nil
		},

		"hot-events": func() (cli.Command, error) {
			return &eventscmd.HotEventsCommand{
				Command: base.NewCommand(ui),
			}, nil
		},
		"hot-events list": func() (cli.Command, error) {
			return &eventscmd.HotEventsCommand{
				Command: base.NewCommand(ui),
				Func:    "list",
			}, nil
		},

		"related-events": func() (cli.Command, error) {
			return &eventscmd.RelatedEventsCommand{
				Command: base.NewCommand(ui),
			}, nil
		},
		"related-events list": func() (cli.Command, error) {
			return &eventscmd.RelatedEventsCommand{
				Command: base.NewCommand(ui),
				Func:    "list",
			}, nil
		},

		"event-documents": func() (cli.Command, error) {
			return &eventscmd.EventDocumentsCommand{
				Command: base.NewCommand(ui),
			}, nil
		},
		"event-documents list": func() (cli.Command, error) {
			return &eventscmd.EventDocumentsCommand{
				Command: base.NewCommand(ui),
				Func:    "list",
			}, nil
		},

		"version": func() (cli.Command, error) {
			return &version.Command{
				Command: base.NewCommand(ui),
			}, nil
		},
	}
}
