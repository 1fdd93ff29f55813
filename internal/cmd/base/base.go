// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package base

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"regexp"
	"strings"
	"sync"
	"syscall"

	"github.com/eventknowledge/eventknowledge/api"
	"github.com/eventknowledge/eventknowledge/internal/cmd/base/logging"
	"github.com/eventknowledge/eventknowledge/internal/cmd/config"
	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"
	"github.com/posener/complete"
	"github.com/zalando/go-keyring"
	"golang.org/x/time/rate"
)

const (
	// maxLineLength is the maximum width of any line.
	maxLineLength int = 78

	// NotSetValue is a flag value for a not-set value
	NotSetValue = "(not set)"
)

// reRemoveWhitespace is a regular expression for stripping whitespace from
// a string.
var reRemoveWhitespace = regexp.MustCompile(`[\s]+`)

type Command struct {
	Context    context.Context
	UI         cli.Ui
	ShutdownCh chan struct{}

	// LogOutput receives CLI logging. Defaults to os.Stderr.
	LogOutput io.Writer

	flags     *FlagSets
	flagsOnce sync.Once

	flagAddr string

	flagTLSCACert     string
	flagTLSCAPath     string
	flagTLSClientCert string
	flagTLSClientKey  string
	flagTLSServerName string
	flagTLSInsecure   bool

	flagSubscriptionKey  string
	FlagKeyName          string
	flagOutputCurlString bool
	flagConfig           string
	flagLogLevel         string
	flagLogFormat        string

	flagFormat string

	client *api.Client
	config *config.Config
	logger hclog.Logger
}

// NewCommand returns a new instance of a base.Command type
func NewCommand(ui cli.Ui) *Command {
	ctx, cancel := context.WithCancel(context.Background())
	ret := &Command{
		UI:         ui,
		ShutdownCh: MakeShutdownCh(),
		Context:    ctx,
	}

	go func() {
		<-ret.ShutdownCh
		cancel()
	}()

	return ret
}

// MakeShutdownCh returns a channel that can be used for shutdown
// notifications for commands. This channel will send a message for every
// SIGINT or SIGTERM received.
func MakeShutdownCh() chan struct{} {
	resultCh := make(chan struct{})

	shutdownCh := make(chan os.Signal, 4)
	signal.Notify(shutdownCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-shutdownCh
		close(resultCh)
	}()
	return resultCh
}

// Config returns the CLI configuration file named by -config or
// EVENTKNOWLEDGE_CONFIG. Without either an empty configuration is returned.
func (c *Command) Config() (*config.Config, error) {
	if c.config != nil {
		return c.config, nil
	}

	path := c.flagConfig
	if !flagIsSet(path) {
		c.config = config.New()
		return c.config, nil
	}

	cfg, err := config.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error loading configuration file %q: %w", path, err)
	}
	c.config = cfg

	if ui, ok := c.UI.(*EventKnowledgeUI); ok && ui.Format == "" && cfg.Format != "" {
		ui.Format = strings.ToLower(cfg.Format)
	}
	return c.config, nil
}

// Logger returns the CLI logger, built from -log-level and -log-format with
// the configuration file as fallback.
func (c *Command) Logger() (hclog.Logger, error) {
	if c.logger != nil {
		return c.logger, nil
	}

	cfg, err := c.Config()
	if err != nil {
		return nil, err
	}

	level, format, err := ProcessLogLevelAndFormat(c.flagLogLevel, c.flagLogFormat, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, err
	}

	output := c.LogOutput
	if output == nil {
		output = os.Stderr
	}
	c.logger = hclog.New(&hclog.LoggerOptions{
		Name:       "eventknowledge",
		Level:      level,
		Output:     output,
		JSONFormat: format == logging.JSONFormat,
	})
	return c.logger, nil
}

// Client returns the HTTP API client. The client is cached on the command to
// save performance on future calls.
//
// Values are taken from flags first, then the environment, then the
// configuration file. A missing subscription key is looked up in the system
// credential store.
func (c *Command) Client() (*api.Client, error) {
	if c.client != nil {
		return c.client, nil
	}

	cfg, err := c.Config()
	if err != nil {
		return nil, err
	}
	logger, err := c.Logger()
	if err != nil {
		return nil, err
	}
	logger.Debug("loaded configuration", "config", cfg.Sanitized())

	apiConfig, err := api.DefaultConfig()
	if err != nil {
		return nil, err
	}
	if err := applyConfigFile(apiConfig, cfg); err != nil {
		return nil, err
	}

	if c.flagOutputCurlString {
		apiConfig.OutputCurlString = c.flagOutputCurlString
	}
	apiConfig.Logger = logger

	c.client, err = api.NewClient(apiConfig)
	if err != nil {
		return nil, err
	}

	if flagIsSet(c.flagAddr) {
		if err := c.client.SetAddr(c.flagAddr); err != nil {
			return nil, fmt.Errorf("error setting address on client: %w", err)
		}
	}

	// If we need custom TLS configuration, then set it
	var modifiedTLS bool
	tlsConfig := apiConfig.TLSConfig
	if tlsConfig == nil {
		tlsConfig = &api.TLSConfig{}
	}
	if flagIsSet(c.flagTLSCACert) {
		tlsConfig.CACert = c.flagTLSCACert
		modifiedTLS = true
	}
	if flagIsSet(c.flagTLSCAPath) {
		tlsConfig.CAPath = c.flagTLSCAPath
		modifiedTLS = true
	}
	if flagIsSet(c.flagTLSClientCert) {
		tlsConfig.ClientCert = c.flagTLSClientCert
		modifiedTLS = true
	}
	if flagIsSet(c.flagTLSClientKey) {
		tlsConfig.ClientKey = c.flagTLSClientKey
		modifiedTLS = true
	}
	if flagIsSet(c.flagTLSServerName) {
		tlsConfig.ServerName = c.flagTLSServerName
		modifiedTLS = true
	}
	if c.flagTLSInsecure {
		tlsConfig.Insecure = c.flagTLSInsecure
		modifiedTLS = true
	}
	if modifiedTLS {
		// Setup TLS config
		if err := c.client.SetTLSConfig(tlsConfig); err != nil {
			return nil, fmt.Errorf("failed to setup TLS config: %w", err)
		}
	}

	if c.flagSubscriptionKey != "" {
		key, err := api.ParseSubscriptionKey(c.flagSubscriptionKey)
		if err != nil {
			return nil, fmt.Errorf("error reading -%s: %w", FlagNameSubscriptionKey, err)
		}
		c.client.SetSubscriptionKey(key)
	}

	if c.client.SubscriptionKey() == "" {
		keyName := c.KeyName()
		if keyName != NoKeyName {
			key, err := keyring.Get(KeyringServiceName, keyName)
			switch {
			case errors.Is(err, keyring.ErrNotFound):
				logger.Debug("no saved subscription key found, continuing without", "key_name", keyName)
			case err != nil:
				c.UI.Error(fmt.Sprintf("Error reading subscription key from system credential store: %s", err))
			default:
				c.client.SetSubscriptionKey(key)
			}
		}
	}

	return c.client, nil
}

func flagIsSet(v string) bool {
	return v != "" && v != NotSetValue
}

// KeyName returns the name of the keyring entry for the subscription key.
func (c *Command) KeyName() string {
	if c.FlagKeyName != "" {
		return c.FlagKeyName
	}
	if c.config != nil && c.config.KeyName != "" {
		return c.config.KeyName
	}
	return DefaultKeyName
}

// applyConfigFile copies values from the configuration file into apiConfig
// unless the matching environment variable already provided one.
func applyConfigFile(apiConfig *api.Config, cfg *config.Config) error {
	unset := func(env string) bool {
		return os.Getenv(env) == ""
	}
	if cfg.Address != "" && unset(api.EnvEventKnowledgeAddr) {
		apiConfig.Addr = cfg.Address
	}
	if cfg.SubscriptionKey != "" && unset(api.EnvEventKnowledgeSubscriptionKey) {
		apiConfig.SubscriptionKey = cfg.SubscriptionKey
	}
	if cfg.MaxRetries != nil && unset(api.EnvEventKnowledgeMaxRetries) {
		apiConfig.MaxRetries = *cfg.MaxRetries
	}
	if cfg.Timeout != 0 && unset(api.EnvEventKnowledgeClientTimeout) {
		apiConfig.Timeout = cfg.Timeout
	}
	if cfg.RateLimit != "" && unset(api.EnvEventKnowledgeRateLimit) {
		r, b, err := api.ParseRateLimit(cfg.RateLimit)
		if err != nil {
			return err
		}
		apiConfig.Limiter = rate.NewLimiter(rate.Limit(r), b)
	}
	if cfg.TLS != nil {
		if apiConfig.TLSConfig == nil {
			apiConfig.TLSConfig = &api.TLSConfig{}
		}
		tls := apiConfig.TLSConfig
		if cfg.TLS.CACert != "" && unset(api.EnvEventKnowledgeCACert) {
			tls.CACert = cfg.TLS.CACert
		}
		if cfg.TLS.CAPath != "" && unset(api.EnvEventKnowledgeCAPath) {
			tls.CAPath = cfg.TLS.CAPath
		}
		if cfg.TLS.ClientCert != "" && unset(api.EnvEventKnowledgeClientCert) {
			tls.ClientCert = cfg.TLS.ClientCert
		}
		if cfg.TLS.ClientKey != "" && unset(api.EnvEventKnowledgeClientKey) {
			tls.ClientKey = cfg.TLS.ClientKey
		}
		if cfg.TLS.ServerName != "" && unset(api.EnvEventKnowledgeTLSServerName) {
			tls.ServerName = cfg.TLS.ServerName
		}
		if cfg.TLS.Insecure && unset(api.EnvEventKnowledgeTLSInsecure) {
			tls.Insecure = true
		}
		if err := apiConfig.ConfigureTLS(); err != nil {
			return fmt.Errorf("failed to setup TLS config from configuration file: %w", err)
		}
	}
	return nil
}

type FlagSetBit uint

const (
	FlagSetNone FlagSetBit = 1 << iota
	FlagSetHTTP
	FlagSetClient
	FlagSetOutputFormat
)

// FlagSet creates the flags for this command. The result is cached on the
// command to save performance on future calls.
func (c *Command) FlagSet(bit FlagSetBit) *FlagSets {
	c.flagsOnce.Do(func() {
		set := NewFlagSets(c.UI)

		if bit&FlagSetHTTP != 0 {
			f := set.NewFlagSet("Connection Options")

			f.StringVar(&StringVar{
				Name:       FlagNameAddr,
				Target:     &c.flagAddr,
				Default:    NotSetValue,
				EnvVar:     api.EnvEventKnowledgeAddr,
				Completion: complete.PredictAnything,
				Usage:      "Address of the event knowledge service, as a complete URL (e.g. https://api.labs.cognitive.microsoft.com).",
			})

			f.StringVar(&StringVar{
				Name:       FlagNameCACert,
				Target:     &c.flagTLSCACert,
				Default:    NotSetValue,
				EnvVar:     api.EnvEventKnowledgeCACert,
				Completion: complete.PredictFiles("*"),
				Usage: "Path on the local disk to a single PEM-encoded CA " +
					"certificate to verify the service's SSL certificate. This " +
					"takes precedence over -ca-path.",
			})

			f.StringVar(&StringVar{
				Name:       FlagNameCAPath,
				Target:     &c.flagTLSCAPath,
				Default:    NotSetValue,
				EnvVar:     api.EnvEventKnowledgeCAPath,
				Completion: complete.PredictDirs("*"),
				Usage: "Path on the local disk to a directory of PEM-encoded CA " +
					"certificates to verify the service's SSL certificate.",
			})

			f.StringVar(&StringVar{
				Name:       FlagNameClientCert,
				Target:     &c.flagTLSClientCert,
				Default:    NotSetValue,
				EnvVar:     api.EnvEventKnowledgeClientCert,
				Completion: complete.PredictFiles("*"),
				Usage: "Path on the local disk to a single PEM-encoded CA " +
					"certificate to use for TLS authentication to the service. If " +
					"this flag is specified, -client-key is also required.",
			})

			f.StringVar(&StringVar{
				Name:       FlagNameClientKey,
				Target:     &c.flagTLSClientKey,
				Default:    NotSetValue,
				EnvVar:     api.EnvEventKnowledgeClientKey,
				Completion: complete.PredictFiles("*"),
				Usage: "Path on the local disk to a single PEM-encoded private key " +
					"matching the client certificate from -client-cert.",
			})

			f.StringVar(&StringVar{
				Name:       FlagTLSServerName,
				Target:     &c.flagTLSServerName,
				Default:    NotSetValue,
				EnvVar:     api.EnvEventKnowledgeTLSServerName,
				Completion: complete.PredictAnything,
				Usage:      "Name to use as the SNI host when connecting to the service via TLS.",
			})

			f.BoolVar(&BoolVar{
				Name:   FlagNameTLSInsecure,
				Target: &c.flagTLSInsecure,
				EnvVar: api.EnvEventKnowledgeTLSInsecure,
				Usage: "Disable verification of TLS certificates. Using this option " +
					"is highly discouraged as it decreases the security of data " +
					"transmissions to and from the service.",
			})
		}

		if bit&FlagSetClient != 0 {
			f := set.NewFlagSet("Client Options")

			f.StringVar(&StringVar{
				Name:       FlagNameSubscriptionKey,
				Target:     &c.flagSubscriptionKey,
				Completion: complete.PredictAnything,
				Usage: "Subscription key to send with each request. A value of the " +
					"form file://<path> or env://<name> is read from that file or " +
					"environment variable. Overrides " + api.EnvEventKnowledgeSubscriptionKey + " and any stored key.",
			})

			f.StringVar(&StringVar{
				Name:   FlagNameKeyName,
				Target: &c.FlagKeyName,
				EnvVar: EnvKeyName,
				Usage: `Name of the entry in the system credential store holding the subscription key, as saved by "config set-key". ` +
					`Set to "none" to disable reading from the store.`,
			})

			f.BoolVar(&BoolVar{
				Name:   "output-curl-string",
				Target: &c.flagOutputCurlString,
				Usage: "Instead of executing the request, print an equivalent cURL " +
					"command string and exit.",
			})

			f.StringVar(&StringVar{
				Name:       FlagNameConfig,
				Target:     &c.flagConfig,
				EnvVar:     EnvEventKnowledgeConfig,
				Completion: complete.PredictFiles("*.hcl"),
				Usage:      "Path to an HCL configuration file. Flags and environment variables take precedence over its values.",
			})

			f.StringVar(&StringVar{
				Name:       "log-level",
				Target:     &c.flagLogLevel,
				EnvVar:     EnvEventKnowledgeLogLevel,
				Completion: complete.PredictSet("trace", "debug", "info", "warn", "error"),
				Usage:      `Log verbosity level, written to stderr. Supported values (in order of more detail to less) are "trace", "debug", "info", "warn", and "error". The default is warn.`,
			})

			f.StringVar(&StringVar{
				Name:       "log-format",
				Target:     &c.flagLogFormat,
				EnvVar:     EnvEventKnowledgeLogFormat,
				Completion: complete.PredictSet("standard", "json"),
				Usage:      `Log format. Supported values are "standard" and "json".`,
			})
		}

		if bit&FlagSetOutputFormat != 0 {
			f := set.NewFlagSet("Output Options")

			f.StringVar(&StringVar{
				Name:       "format",
				Target:     &c.flagFormat,
				Default:    "table",
				EnvVar:     EnvEventKnowledgeCLIFormat,
				Completion: complete.PredictSet("table", "json"),
				Usage: "Print the output in the given format. Valid formats " +
					"are \"table\" or \"json\".",
			})
		}

		c.flags = set
	})

	return c.flags
}

// FlagSets is a group of flag sets.
type FlagSets struct {
	flagSets    []*FlagSet
	mainSet     *flag.FlagSet
	hiddens     map[string]struct{}
	completions complete.Flags
}

// NewFlagSets creates a new flag sets.
func NewFlagSets(ui cli.Ui) *FlagSets {
	mainSet := flag.NewFlagSet("", flag.ContinueOnError)

	// Errors and usage are controlled by the CLI.
	mainSet.Usage = func() {}
	mainSet.SetOutput(io.Discard)

	return &FlagSets{
		flagSets:    make([]*FlagSet, 0, 6),
		mainSet:     mainSet,
		hiddens:     make(map[string]struct{}),
		completions: complete.Flags{},
	}
}

// NewFlagSet creates a new flag set from the given flag sets.
func (f *FlagSets) NewFlagSet(name string) *FlagSet {
	flagSet := NewFlagSet(name)
	flagSet.mainSet = f.mainSet
	flagSet.completions = f.completions
	f.flagSets = append(f.flagSets, flagSet)
	return flagSet
}

// Completions returns the completions for this flag set.
func (f *FlagSets) Completions() complete.Flags {
	return f.completions
}

// Parse parses the given flags, returning any errors.
func (f *FlagSets) Parse(args []string) error {
	return f.mainSet.Parse(args)
}

// Parsed reports whether the command-line flags have been parsed.
func (f *FlagSets) Parsed() bool {
	return f.mainSet.Parsed()
}

// Args returns the remaining args after parsing.
func (f *FlagSets) Args() []string {
	return f.mainSet.Args()
}

// Visit visits the flags in lexicographical order, calling fn for each. It
// visits only those flags that have been set.
func (f *FlagSets) Visit(fn func(*flag.Flag)) {
	f.mainSet.Visit(fn)
}

// IsSet reports whether the named flag was given on the command line.
func (f *FlagSets) IsSet(name string) bool {
	var found bool
	f.mainSet.Visit(func(fl *flag.Flag) {
		if fl.Name == name {
			found = true
		}
	})
	return found
}

// Help builds custom help for this command, grouping by flag set.
func (fs *FlagSets) Help() string {
	var out bytes.Buffer

	for _, set := range fs.flagSets {
		printFlagTitle(&out, set.name+":")
		set.VisitAll(func(f *flag.Flag) {
			// Skip any hidden flags
			if v, ok := f.Value.(FlagVisibility); ok && v.Hidden() {
				return
			}
			printFlagDetail(&out, f)
		})
	}

	return strings.TrimRight(out.String(), "\n")
}

// FlagSet is a grouped wrapper around a real flag set and a grouped flag set.
type FlagSet struct {
	name        string
	flagSet     *flag.FlagSet
	mainSet     *flag.FlagSet
	completions complete.Flags
}

// NewFlagSet creates a new flag set.
func NewFlagSet(name string) *FlagSet {
	return &FlagSet{
		name:    name,
		flagSet: flag.NewFlagSet(name, flag.ContinueOnError),
	}
}

// Name returns the name of this flag set.
func (f *FlagSet) Name() string {
	return f.name
}

func (f *FlagSet) Visit(fn func(*flag.Flag)) {
	f.flagSet.Visit(fn)
}

func (f *FlagSet) VisitAll(fn func(*flag.Flag)) {
	f.flagSet.VisitAll(fn)
}

// printFlagTitle prints a consistently-formatted title to the given writer.
func printFlagTitle(w io.Writer, s string) {
	fmt.Fprintf(w, "%s\n\n", s)
}

// printFlagDetail prints a single flag to the given writer.
func printFlagDetail(w io.Writer, f *flag.Flag) {
	// Check if the flag is hidden - do not print any flag detail or help output
	// if it is hidden.
	if h, ok := f.Value.(FlagVisibility); ok && h.Hidden() {
		return
	}

	// Check for a detailed example
	example := ""
	if t, ok := f.Value.(FlagExample); ok {
		example = t.Example()
	}

	if example != "" {
		fmt.Fprintf(w, "  -%s=<%s>\n", f.Name, example)
	} else {
		fmt.Fprintf(w, "  -%s\n", f.Name)
	}

	usage := reRemoveWhitespace.ReplaceAllString(f.Usage, " ")
	indented := WrapAtLengthWithPadding(usage, 6)
	fmt.Fprintf(w, "%s\n\n", indented)
}
