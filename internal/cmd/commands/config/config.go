// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package config

import (
	"github.com/eventknowledge/eventknowledge/internal/cmd/base"
	"github.com/mitchellh/cli"
)

var _ cli.Command = (*Command)(nil)

type Command struct {
	*base.Command
}

func (c *Command) Synopsis() string {
	return "Manage the locally stored subscription key"
}

func (c *Command) Help() string {
	return base.WrapForHelpText([]string{
		"Usage: eventknowledge config <subcommand> [options] [args]",
		"",
		"  This command groups subcommands for managing the subscription key kept in the system credential store. Here are a few examples of config commands:",
		"",
		"    Store a subscription key:",
		"",
		"      $ eventknowledge config set-key",
		"",
		"    Print the stored subscription key:",
		"",
		"      $ eventknowledge config get-key",
		"",
		"  Please see the individual subcommand help for detailed usage information.",
	})
}

func (c *Command) Run(args []string) int {
	return cli.RunResultHelp
}
