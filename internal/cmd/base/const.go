// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package base

const (
	// FlagNameAddr is the flag used in the base command to read in the
	// address of the event knowledge service.
	FlagNameAddr = "addr"
	// FlagNameCACert is the flag used in the base command to read in the CA
	// cert.
	FlagNameCACert = "ca-cert"
	// FlagNameCAPath is the flag used in the base command to read in the CA
	// cert path.
	FlagNameCAPath = "ca-path"
	// FlagNameClientKey is the flag used in the base command to read in the
	// client key
	FlagNameClientKey = "client-key"
	// FlagNameClientCert is the flag used in the base command to read in the
	// client cert
	FlagNameClientCert = "client-cert"
	// FlagNameTLSInsecure is the flag used in the base command to read in
	// the option to ignore TLS certificate verification.
	FlagNameTLSInsecure = "tls-insecure"
	// FlagTLSServerName is the flag used in the base command to read in
	// the TLS server name.
	FlagTLSServerName = "tls-server-name"
	// FlagNameSubscriptionKey is the flag used to pass the subscription key
	// directly, or as a file:// or env:// reference.
	FlagNameSubscriptionKey = "subscription-key"
	// FlagNameKeyName is the flag naming the keyring entry holding the key.
	FlagNameKeyName = "key-name"
	// FlagNameConfig is the flag naming the CLI configuration file.
	FlagNameConfig = "config"
)

const (
	EnvEventKnowledgeCLINoColor = `EVENTKNOWLEDGE_CLI_NO_COLOR`
	EnvEventKnowledgeCLIFormat  = `EVENTKNOWLEDGE_CLI_FORMAT`
	EnvEventKnowledgeConfig     = `EVENTKNOWLEDGE_CONFIG`
	EnvEventKnowledgeLogLevel   = `EVENTKNOWLEDGE_LOG_LEVEL`
	EnvEventKnowledgeLogFormat  = `EVENTKNOWLEDGE_LOG_FORMAT`
	EnvKeyName                  = `EVENTKNOWLEDGE_KEY_NAME`
)

const (
	// KeyringServiceName is the service under which subscription keys are
	// stored in the system credential store.
	KeyringServiceName = "EventKnowledge Subscription Key"
	// DefaultKeyName is the keyring entry used when no key name is given.
	DefaultKeyName = "default"
	// NoKeyName disables reading from the system credential store.
	NoKeyName = "none"
)

const (
	CommandSuccess = iota
	CommandCliError
	CommandApiError
)
