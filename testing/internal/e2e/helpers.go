// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

// Package e2e holds helpers for tests that run against the live service.
package e2e

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"testing"
)

// Option is a func that sets optional attributes for a call. This does not need
// to be used directly, but instead option arguments are built from the
// functions in this package.
type Option func(*options)

type options struct {
	withArgs []string
	withEnv  []string
}

func getOpts(opt ...Option) options {
	opts := options{}
	for _, o := range opt {
		if o != nil {
			o(&opts)
		}
	}

	return opts
}

// CommandResult encapsulates the output from running an external command
type CommandResult struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
	Err      error
}

// EnvToCheckSkip gates every e2e test. It holds the subscription key used
// against the live service.
const EnvToCheckSkip = "E2E_EVENTKNOWLEDGE_SUBSCRIPTION_KEY"

// RunCommand executes external commands on the system. Returns the results
// of running the provided command.
//
//	RunCommand(ctx, "eventknowledge", WithArgs("hot-events", "list", "-date", "2020-01-01"))
//
// CommandResult is always valid even if there is an error.
func RunCommand(ctx context.Context, command string, opt ...Option) *CommandResult {
	var outbuf, errbuf bytes.Buffer

	opts := getOpts(opt...)

	c := exec.CommandContext(ctx, command, opts.withArgs...)
	c.Env = append(os.Environ(), opts.withEnv...)
	c.Stdout = &outbuf
	c.Stderr = &errbuf
	err := c.Run()

	var ee *exec.ExitError
	var exitCode int
	if errors.As(err, &ee) {
		exitCode = ee.ExitCode()
	}

	return &CommandResult{
		Stdout:   outbuf.Bytes(),
		Stderr:   errbuf.Bytes(),
		ExitCode: exitCode,
		Err:      err,
	}
}

// WithArgs is an option to RunCommand that allows the user to specify arguments
// for the provided command
func WithArgs(args ...string) Option {
	return func(o *options) {
		o.withArgs = args
	}
}

// WithEnv is an option to RunCommand that adds KEY=value pairs to the
// command's environment.
func WithEnv(env ...string) Option {
	return func(o *options) {
		o.withEnv = append(o.withEnv, env...)
	}
}

// MaybeSkipTest is a check used at the start of the test to determine if the test should run
func MaybeSkipTest(t testing.TB) {
	if _, ok := os.LookupEnv(EnvToCheckSkip); !ok {
		t.Skip(fmt.Sprintf(
			"Skipping test because environment variable '%s' is not set. This is needed for e2e tests.",
			EnvToCheckSkip,
		))
	}
}

// CliError parses the Stderr from running an eventknowledge command with
// -format json.
type CliError struct {
	Status int `json:"status_code"`
}
