// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package main

import (
	"os"

	"github.com/eventknowledge/eventknowledge/internal/cmd"
)

func main() {
	os.Exit(cmd.Run(os.Args[1:]))
}
