// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/eventknowledge/eventknowledge/api"
	"github.com/eventknowledge/eventknowledge/internal/cmd/base"
	"github.com/mitchellh/cli"
	"github.com/posener/complete"
	"github.com/zalando/go-keyring"
)

var (
	_ cli.Command             = (*KeyCommand)(nil)
	_ cli.CommandAutocomplete = (*KeyCommand)(nil)
)

// KeyCommand stores, prints, or removes the subscription key held in the
// system credential store. Func is one of "set-key", "get-key", or
// "delete-key".
type KeyCommand struct {
	*base.Command

	Func string
}

func (c *KeyCommand) Synopsis() string {
	switch c.Func {
	case "set-key":
		return "Store a subscription key in the system credential store"
	case "get-key":
		return "Print the subscription key the CLI would use"
	case "delete-key":
		return "Remove a subscription key from the system credential store"
	}
	return ""
}

func (c *KeyCommand) Help() string {
	var args []string
	switch c.Func {
	case "set-key":
		args = append(args,
			"Usage: eventknowledge config set-key [options] [key | -]",
			"",
			`  Store a subscription key in the system credential store. If the key is not given as an argument, or is given as "-", it is read from the terminal without echo. Example:`,
			"",
			`    $ eventknowledge config set-key`,
			"",
			"  A value of the form file://<path> or env://<name> is read from that file or environment variable before storing.",
			"",
		)
	case "get-key":
		args = append(args,
			"Usage: eventknowledge config get-key [options]",
			"",
			"  Print the subscription key used by the CLI. Example:",
			"",
			`    $ curl -H "Ocp-Apim-Subscription-Key: $(eventknowledge config get-key)" "https://api.labs.cognitive.microsoft.com/eventknowledge/v1.0/hotevents?date=2020-01-01"`,
			"",
			"  If the " + api.EnvEventKnowledgeSubscriptionKey + " environment variable is set it overrides the value loaded from the system store, the same as for every other command.",
			"",
		)
	case "delete-key":
		args = append(args,
			"Usage: eventknowledge config delete-key [options]",
			"",
			"  Remove a subscription key from the system credential store. Example:",
			"",
			`    $ eventknowledge config delete-key -key-name work`,
			"",
		)
	}

	return base.WrapForHelpText(args) + c.Flags().Help()
}

func (c *KeyCommand) Flags() *base.FlagSets {
	set := c.FlagSet(base.FlagSetNone)

	f := set.NewFlagSet("Command Options")

	f.StringVar(&base.StringVar{
		Name:   base.FlagNameKeyName,
		Target: &c.FlagKeyName,
		EnvVar: base.EnvKeyName,
		Usage:  `Name of the entry in the system credential store. Different names allow keeping several subscription keys side by side. The default is "default".`,
	})

	return set
}

func (c *KeyCommand) AutocompleteArgs() complete.Predictor {
	return complete.PredictNothing
}

func (c *KeyCommand) AutocompleteFlags() complete.Flags {
	return c.Flags().Completions()
}

func (c *KeyCommand) Run(args []string) int {
	f := c.Flags()
	if err := f.Parse(args); err != nil {
		c.PrintCliError(err)
		return base.CommandCliError
	}

	keyName := c.KeyName()
	if c.Func != "get-key" && keyName == base.NoKeyName {
		c.PrintCliError(fmt.Errorf("-%s %q disables the credential store and cannot be used with %s", base.FlagNameKeyName, base.NoKeyName, c.Func))
		return base.CommandCliError
	}

	switch c.Func {
	case "set-key":
		return c.setKey(keyName, f.Args())
	case "get-key":
		return c.getKey()
	case "delete-key":
		return c.deleteKey(keyName)
	}

	c.PrintCliError(fmt.Errorf("unknown key operation %q", c.Func))
	return base.CommandCliError
}

func (c *KeyCommand) setKey(keyName string, args []string) int {
	var raw string
	switch {
	case len(args) == 0, len(args) == 1 && args[0] == "-":
		var err error
		raw, err = c.UI.AskSecret("Subscription key (will be hidden):")
		if err != nil {
			c.PrintCliError(fmt.Errorf("Error reading subscription key: %w", err))
			return base.CommandCliError
		}
	case len(args) == 1:
		raw = args[0]
	default:
		c.PrintCliError(errors.New("Too many arguments; expected at most one key"))
		return base.CommandCliError
	}

	key, err := api.ParseSubscriptionKey(raw)
	if err != nil {
		c.PrintCliError(fmt.Errorf("Error reading subscription key: %w", err))
		return base.CommandCliError
	}
	if strings.TrimSpace(key) == "" {
		c.PrintCliError(errors.New("Subscription key must not be empty"))
		return base.CommandCliError
	}

	if err := keyring.Set(base.KeyringServiceName, keyName, key); err != nil {
		c.PrintCliError(fmt.Errorf("Error saving subscription key to the system credential store: %w", err))
		return base.CommandCliError
	}

	if base.Format(c.UI) == "json" {
		c.PrintJsonItem(map[string]string{"key_name": keyName})
		return base.CommandSuccess
	}
	c.UI.Output(fmt.Sprintf("Subscription key stored as %q.", keyName))
	return base.CommandSuccess
}

func (c *KeyCommand) getKey() int {
	client, err := c.Client()
	if err != nil {
		c.PrintCliError(err)
		return base.CommandCliError
	}

	key := client.SubscriptionKey()
	if key == "" {
		c.PrintCliError(errors.New("No subscription key found"))
		return base.CommandCliError
	}

	c.UI.Output(key)
	return base.CommandSuccess
}

func (c *KeyCommand) deleteKey(keyName string) int {
	err := keyring.Delete(base.KeyringServiceName, keyName)
	switch {
	case errors.Is(err, keyring.ErrNotFound):
		c.PrintCliError(fmt.Errorf("No subscription key stored as %q", keyName))
		return base.CommandCliError
	case err != nil:
		c.PrintCliError(fmt.Errorf("Error removing subscription key from the system credential store: %w", err))
		return base.CommandCliError
	}

	if base.Format(c.UI) == "json" {
		c.PrintJsonItem(map[string]string{"key_name": keyName})
		return base.CommandSuccess
	}
	c.UI.Output(fmt.Sprintf("Subscription key %q removed.", keyName))
	return base.CommandSuccess
}
