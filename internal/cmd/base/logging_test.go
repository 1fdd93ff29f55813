// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package base

import (
	"testing"

	"github.com/eventknowledge/eventknowledge/internal/cmd/base/logging"
	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessLogLevelAndFormat(t *testing.T) {
	tests := []struct {
		name                      string
		flagLevel, flagFormat     string
		configLevel, configFormat string
		wantLevel                 hclog.Level
		wantFormat                logging.LogFormat
		wantErrContains           string
	}{
		{
			name:       "defaults",
			wantLevel:  hclog.Warn,
			wantFormat: logging.UnspecifiedFormat,
		},
		{
			name:         "config-only",
			configLevel:  "DEBUG",
			configFormat: "json",
			wantLevel:    hclog.Debug,
			wantFormat:   logging.JSONFormat,
		},
		{
			name:         "flag-wins",
			flagLevel:    "trace",
			flagFormat:   "standard",
			configLevel:  "error",
			configFormat: "json",
			wantLevel:    hclog.Trace,
			wantFormat:   logging.StandardFormat,
		},
		{
			name:       "aliases",
			flagLevel:  "warning",
			wantLevel:  hclog.Warn,
			wantFormat: logging.UnspecifiedFormat,
		},
		{
			name:            "bad-level",
			flagLevel:       "loud",
			wantErrContains: "unknown log level: loud",
		},
		{
			name:            "bad-format",
			configFormat:    "xml",
			wantErrContains: "unknown log format",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert, require := assert.New(t), require.New(t)
			level, format, err := ProcessLogLevelAndFormat(tt.flagLevel, tt.flagFormat, tt.configLevel, tt.configFormat)
			if tt.wantErrContains != "" {
				require.Error(err)
				assert.Contains(err.Error(), tt.wantErrContains)
				return
			}
			require.NoError(err)
			assert.Equal(tt.wantLevel, level)
			assert.Equal(tt.wantFormat, format)
		})
	}
}
