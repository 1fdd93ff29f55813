// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/eventknowledge/eventknowledge/api"
	"github.com/hashicorp/go-multierror"
	"github.com/hashicorp/go-secure-stdlib/parseutil"
	"github.com/hashicorp/hcl"
)

// Config is the CLI configuration file. Every value is optional; flags and
// environment variables take precedence over it.
type Config struct {
	Address         string `hcl:"address"`
	SubscriptionKey string `hcl:"subscription_key"`
	KeyName         string `hcl:"key_name"`

	MaxRetriesRaw any  `hcl:"max_retries"`
	MaxRetries    *int `hcl:"-"`

	TimeoutRaw any           `hcl:"timeout"`
	Timeout    time.Duration `hcl:"-"`

	RateLimit string `hcl:"rate_limit"`

	TLS *TLS `hcl:"tls"`

	LogLevel  string `hcl:"log_level"`
	LogFormat string `hcl:"log_format"`
	Format    string `hcl:"format"`
}

type TLS struct {
	CACert     string `hcl:"ca_cert"`
	CAPath     string `hcl:"ca_path"`
	ClientCert string `hcl:"client_cert"`
	ClientKey  string `hcl:"client_key"`
	ServerName string `hcl:"server_name"`
	Insecure   bool   `hcl:"insecure"`
}

func New() *Config {
	return &Config{}
}

// LoadFile loads the configuration from the given file.
func LoadFile(path string) (*Config, error) {
	d, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return Parse(string(d))
}

func Parse(d string) (*Config, error) {
	obj, err := hcl.Parse(d)
	if err != nil {
		return nil, err
	}

	result := New()
	if err := hcl.DecodeObject(result, obj); err != nil {
		return nil, err
	}

	if result.MaxRetriesRaw != nil {
		retries, err := parseutil.ParseInt(result.MaxRetriesRaw)
		if err != nil {
			return nil, fmt.Errorf("error parsing max_retries: %w", err)
		}
		r := int(retries)
		result.MaxRetries = &r
		result.MaxRetriesRaw = nil
	}

	if result.TimeoutRaw != nil {
		if result.Timeout, err = parseutil.ParseDurationSecond(result.TimeoutRaw); err != nil {
			return nil, fmt.Errorf("error parsing timeout: %w", err)
		}
		result.TimeoutRaw = nil
	}

	if result.SubscriptionKey != "" {
		if result.SubscriptionKey, err = api.ParseSubscriptionKey(result.SubscriptionKey); err != nil {
			return nil, fmt.Errorf("error reading subscription_key: %w", err)
		}
	}

	if err := result.Validate(); err != nil {
		return nil, err
	}

	return result, nil
}

// Validate checks every value and reports all problems at once.
func (c *Config) Validate() error {
	var result *multierror.Error

	if c.Address != "" {
		u, err := url.Parse(c.Address)
		switch {
		case err != nil:
			result = multierror.Append(result, fmt.Errorf("address: %w", err))
		case u.Scheme == "" || u.Host == "":
			result = multierror.Append(result, fmt.Errorf("address: %q must be a complete URL including scheme and host", c.Address))
		}
	}

	if c.MaxRetries != nil && *c.MaxRetries < 0 {
		result = multierror.Append(result, fmt.Errorf("max_retries: must not be negative, got %d", *c.MaxRetries))
	}

	if c.Timeout < 0 {
		result = multierror.Append(result, fmt.Errorf("timeout: must not be negative, got %s", c.Timeout))
	}

	if c.RateLimit != "" {
		if _, _, err := api.ParseRateLimit(c.RateLimit); err != nil {
			result = multierror.Append(result, fmt.Errorf("rate_limit: %q is not of the form rate[:burst]", c.RateLimit))
		}
	}

	if c.TLS != nil && (c.TLS.ClientCert == "") != (c.TLS.ClientKey == "") {
		result = multierror.Append(result, errors.New("tls: client_cert and client_key must be set together"))
	}

	switch strings.ToLower(c.LogLevel) {
	case "", "trace", "debug", "info", "notice", "warn", "warning", "err", "error":
	default:
		result = multierror.Append(result, fmt.Errorf("log_level: unknown level %q", c.LogLevel))
	}

	switch strings.ToLower(c.LogFormat) {
	case "", "standard", "json":
	default:
		result = multierror.Append(result, fmt.Errorf("log_format: unknown format %q", c.LogFormat))
	}

	switch strings.ToLower(c.Format) {
	case "", "table", "json":
	default:
		result = multierror.Append(result, fmt.Errorf("format: unknown format %q", c.Format))
	}

	return result.ErrorOrNil()
}

// Sanitized returns the configuration as a map with the subscription key
// redacted, suitable for logging.
func (c *Config) Sanitized() map[string]any {
	result := map[string]any{
		"address":    c.Address,
		"key_name":   c.KeyName,
		"rate_limit": c.RateLimit,
		"log_level":  c.LogLevel,
		"log_format": c.LogFormat,
		"format":     c.Format,
	}
	if c.SubscriptionKey != "" {
		result["subscription_key"] = "redacted"
	}
	if c.MaxRetries != nil {
		result["max_retries"] = *c.MaxRetries
	}
	if c.Timeout != 0 {
		result["timeout"] = c.Timeout.String()
	}
	if c.TLS != nil {
		result["tls"] = map[string]any{
			"ca_cert":     c.TLS.CACert,
			"ca_path":     c.TLS.CAPath,
			"client_cert": c.TLS.ClientCert,
			"client_key":  c.TLS.ClientKey,
			"server_name": c.TLS.ServerName,
			"insecure":    c.TLS.Insecure,
		}
	}
	return result
}
