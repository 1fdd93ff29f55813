// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package api

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/hashicorp/errwrap"
	cleanhttp "github.com/hashicorp/go-cleanhttp"
	"github.com/hashicorp/go-hclog"
	retryablehttp "github.com/hashicorp/go-retryablehttp"
	rootcerts "github.com/hashicorp/go-rootcerts"
	"github.com/hashicorp/go-secure-stdlib/parseutil"
	"golang.org/x/time/rate"
)

const (
	EnvEventKnowledgeAddr            = "EVENTKNOWLEDGE_ADDR"
	EnvEventKnowledgeSubscriptionKey = "EVENTKNOWLEDGE_SUBSCRIPTION_KEY"
	EnvEventKnowledgeCACert          = "EVENTKNOWLEDGE_CACERT"
	EnvEventKnowledgeCAPath          = "EVENTKNOWLEDGE_CAPATH"
	EnvEventKnowledgeClientCert      = "EVENTKNOWLEDGE_CLIENT_CERT"
	EnvEventKnowledgeClientKey       = "EVENTKNOWLEDGE_CLIENT_KEY"
	EnvEventKnowledgeClientTimeout   = "EVENTKNOWLEDGE_CLIENT_TIMEOUT"
	EnvEventKnowledgeTLSInsecure     = "EVENTKNOWLEDGE_TLS_INSECURE"
	EnvEventKnowledgeTLSServerName   = "EVENTKNOWLEDGE_TLS_SERVER_NAME"
	EnvEventKnowledgeMaxRetries      = "EVENTKNOWLEDGE_MAX_RETRIES"
	EnvEventKnowledgeRateLimit       = "EVENTKNOWLEDGE_RATE_LIMIT"
)

const (
	// DefaultAddr is the public service root used when no address is
	// configured.
	DefaultAddr = "https://api.labs.cognitive.microsoft.com"

	// ApiPath is the path under the service address at which the event
	// knowledge API is rooted.
	ApiPath = "/eventknowledge/v1.0"

	// SubscriptionKeyHeader is the header carrying the subscription key on
	// every request.
	SubscriptionKeyHeader = "Ocp-Apim-Subscription-Key"
)

// Config is used to configure the creation of the client
type Config struct {
	// Addr is the address of the service. This should be a complete URL such
	// as "https://api.labs.cognitive.microsoft.com". A trailing API path
	// ("/eventknowledge/v1.0") is accepted and stripped. If you need a custom
	// SSL cert or want to enable insecure mode, you need to specify a custom
	// HttpClient.
	Addr string

	// SubscriptionKey is sent in the Ocp-Apim-Subscription-Key header of
	// every request.
	SubscriptionKey string

	// HttpClient is the HTTP client to use. Sane defaults are set for the
	// http.Client and its associated http.Transport created in DefaultConfig.
	// If you must modify the defaults, it is suggested that you start with
	// that client and modify as needed rather than start with an empty client
	// (or http.DefaultClient).
	HttpClient *http.Client

	// TLSConfig contains TLS configuration information. After modifying these
	// values, ConfigureTLS should be called.
	TLSConfig *TLSConfig

	// Headers contains extra headers that will be added to any request
	Headers http.Header

	// MaxRetries controls the maximum number of times to retry when a 5xx
	// error occurs. Set to 0 to disable retrying. Defaults to 0; paginated
	// calls surface the first failure to the caller unless retries are
	// explicitly enabled.
	MaxRetries int

	// Timeout is for setting custom timeout parameter in the HttpClient
	Timeout time.Duration

	// The Backoff function to use; a default is used if not provided
	Backoff retryablehttp.Backoff

	// The CheckRetry function to use; a default is used if not provided
	CheckRetry retryablehttp.CheckRetry

	// Limiter is the rate limiter used by the client.
	// If this pointer is nil, then there will be no limit set.
	// In contrast, if this pointer is set, even to an empty struct,
	// then that limiter will be used. Note that an empty Limiter
	// is equivalent blocking all events.
	Limiter *rate.Limiter

	// OutputCurlString causes the actual request to return an error of type
	// *OutputStringError. Type asserting the error message will allow
	// fetching a cURL-compatible string for the operation.
	//
	// Note: It is not thread-safe to set this and make concurrent requests
	// with the same client. Cloning a client will not clone this value.
	OutputCurlString bool

	// Logger receives request and retry logging. Defaults to a null logger.
	Logger hclog.Logger
}

// TLSConfig contains the parameters needed to configure TLS on the HTTP client
// used to communicate with the service.
type TLSConfig struct {
	// CACert is the path to a PEM-encoded CA cert file to use to verify the
	// server SSL certificate.
	CACert string

	// CAPath is the path to a directory of PEM-encoded CA cert files to verify
	// the server SSL certificate.
	CAPath string

	// ClientCert is the path to the certificate for TLS communication
	ClientCert string

	// ClientKey is the path to the private key for TLS communication
	ClientKey string

	// ServerName, if set, is used to set the SNI host when connecting via
	// TLS.
	ServerName string

	// Insecure enables or disables SSL verification
	Insecure bool
}

// DefaultConfig returns a default configuration for the client. It is
// safe to modify the return value of this function.
//
// The default Addr is https://api.labs.cognitive.microsoft.com, but this can
// be overridden by setting the `EVENTKNOWLEDGE_ADDR` environment variable.
func DefaultConfig() (*Config, error) {
	config := &Config{
		Addr:       DefaultAddr,
		HttpClient: cleanhttp.DefaultPooledClient(),
		Timeout:    time.Second * 60,
		TLSConfig:  &TLSConfig{},
		Logger:     hclog.NewNullLogger(),
	}

	transport := config.HttpClient.Transport.(*http.Transport)
	transport.TLSHandshakeTimeout = 10 * time.Second
	transport.TLSClientConfig = &tls.Config{
		MinVersion: tls.VersionTLS12,
	}

	// We read the environment now; after DefaultClient returns we can override
	// values from command line flags, which should take precedence.
	if err := config.ReadEnvironment(); err != nil {
		return config, fmt.Errorf("failed to read environment: %w", err)
	}

	config.Backoff = retryablehttp.LinearJitterBackoff
	config.Headers = make(http.Header)

	return config, nil
}

// ConfigureTLS takes a set of TLS configurations and applies those to the the
// HTTP client.
func (c *Config) ConfigureTLS() error {
	if c.HttpClient == nil {
		def, err := DefaultConfig()
		if err != nil {
			return err
		}
		c.HttpClient = def.HttpClient
	}
	if c.TLSConfig == nil {
		return nil
	}
	transport, ok := c.HttpClient.Transport.(*http.Transport)
	if !ok {
		return errors.New("http client transport is not an *http.Transport; cannot configure TLS")
	}
	if transport.TLSClientConfig == nil {
		transport.TLSClientConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	clientTLSConfig := transport.TLSClientConfig

	var clientCert tls.Certificate
	foundClientCert := false

	switch {
	case c.TLSConfig.ClientCert != "" && c.TLSConfig.ClientKey != "":
		var err error
		clientCert, err = tls.LoadX509KeyPair(c.TLSConfig.ClientCert, c.TLSConfig.ClientKey)
		if err != nil {
			return err
		}
		foundClientCert = true
	case c.TLSConfig.ClientCert != "" || c.TLSConfig.ClientKey != "":
		return fmt.Errorf("both client cert and client key must be provided")
	}

	if c.TLSConfig.CACert != "" || c.TLSConfig.CAPath != "" {
		rootConfig := &rootcerts.Config{
			CAFile: c.TLSConfig.CACert,
			CAPath: c.TLSConfig.CAPath,
		}
		if err := rootcerts.ConfigureTLS(clientTLSConfig, rootConfig); err != nil {
			return err
		}
	}

	if c.TLSConfig.Insecure {
		clientTLSConfig.InsecureSkipVerify = true
	}

	if foundClientCert {
		// We use this function to ignore the server's preferential list of
		// CAs, otherwise any CA used for the cert auth backend must be in the
		// server's CA pool
		clientTLSConfig.GetClientCertificate = func(*tls.CertificateRequestInfo) (*tls.Certificate, error) {
			return &clientCert, nil
		}
	}

	if c.TLSConfig.ServerName != "" {
		clientTLSConfig.ServerName = c.TLSConfig.ServerName
	}

	return nil
}

// setAddr parses a given string and strips any trailing slash and API path,
// so both "https://host" and "https://host/eventknowledge/v1.0" are accepted.
func (c *Config) setAddr(addr string) error {
	u, err := url.Parse(strings.TrimSpace(addr))
	if err != nil {
		return fmt.Errorf("error parsing address: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("address %q must be a complete URL including scheme and host", addr)
	}
	u.Path = strings.TrimSuffix(u.Path, "/")
	u.Path = strings.TrimSuffix(u.Path, ApiPath)
	u.Path = strings.TrimSuffix(u.Path, "/")
	u.RawPath = ""
	u.RawQuery = ""
	u.Fragment = ""
	c.Addr = u.String()
	return nil
}

// ReadEnvironment reads configuration information from the environment. If
// there is an error, no configuration value is updated.
func (c *Config) ReadEnvironment() error {
	var envCACert string
	var envCAPath string
	var envClientCert string
	var envClientKey string
	var envInsecure bool
	var envServerName string

	// Parse the environment variables
	if v := os.Getenv(EnvEventKnowledgeAddr); v != "" {
		c.Addr = v
	}

	if v := os.Getenv(EnvEventKnowledgeSubscriptionKey); v != "" {
		key, err := ParseSubscriptionKey(v)
		if err != nil {
			return fmt.Errorf("could not read %s: %w", EnvEventKnowledgeSubscriptionKey, err)
		}
		c.SubscriptionKey = key
	}

	if v := os.Getenv(EnvEventKnowledgeMaxRetries); v != "" {
		maxRetries, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return err
		}
		c.MaxRetries = int(maxRetries)
	}

	if t := os.Getenv(EnvEventKnowledgeClientTimeout); t != "" {
		clientTimeout, err := parseutil.ParseDurationSecond(t)
		if err != nil {
			return fmt.Errorf("could not parse %q", EnvEventKnowledgeClientTimeout)
		}
		c.Timeout = clientTimeout
	}

	if v := os.Getenv(EnvEventKnowledgeRateLimit); v != "" {
		rateLimit, burstLimit, err := ParseRateLimit(v)
		if err != nil {
			return err
		}
		c.Limiter = rate.NewLimiter(rate.Limit(rateLimit), burstLimit)
	}

	// TLS Config
	{
		var foundTLSConfig bool
		if v := os.Getenv(EnvEventKnowledgeCACert); v != "" {
			foundTLSConfig = true
			envCACert = v
		}
		if v := os.Getenv(EnvEventKnowledgeCAPath); v != "" {
			foundTLSConfig = true
			envCAPath = v
		}
		if v := os.Getenv(EnvEventKnowledgeClientCert); v != "" {
			foundTLSConfig = true
			envClientCert = v
		}
		if v := os.Getenv(EnvEventKnowledgeClientKey); v != "" {
			foundTLSConfig = true
			envClientKey = v
		}
		if v := os.Getenv(EnvEventKnowledgeTLSInsecure); v != "" {
			foundTLSConfig = true
			var err error
			envInsecure, err = strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("could not parse %s", EnvEventKnowledgeTLSInsecure)
			}
		}
		if v := os.Getenv(EnvEventKnowledgeTLSServerName); v != "" {
			foundTLSConfig = true
			envServerName = v
		}
		// Set the values on the config
		// Configure the HTTP clients TLS configuration.
		if foundTLSConfig {
			c.TLSConfig = &TLSConfig{
				CACert:     envCACert,
				CAPath:     envCAPath,
				ClientCert: envClientCert,
				ClientKey:  envClientKey,
				ServerName: envServerName,
				Insecure:   envInsecure,
			}
			return c.ConfigureTLS()
		}
	}

	return nil
}

// ParseSubscriptionKey resolves a subscription key given either literally or
// as a file:// or env:// reference.
func ParseSubscriptionKey(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if !strings.HasPrefix(raw, "file://") && !strings.HasPrefix(raw, "env://") {
		return raw, nil
	}
	key, err := parseutil.ParsePath(raw)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(key), nil
}

// ParseRateLimit parses a "rate:burst" or "rate" string as used by
// EVENTKNOWLEDGE_RATE_LIMIT.
func ParseRateLimit(val string) (rate float64, burst int, err error) {
	_, err = fmt.Sscanf(val, "%f:%d", &rate, &burst)
	if err != nil {
		rate, err = strconv.ParseFloat(val, 64)
		if err != nil {
			err = fmt.Errorf("%v was provided but incorrectly formatted", EnvEventKnowledgeRateLimit)
		}
		burst = int(rate)
	}

	return rate, burst, err
}

// Client is the client to the event knowledge API. Create a client with
// NewClient.
type Client struct {
	modifyLock sync.RWMutex
	config     *Config
}

// NewClient returns a new client for the given configuration.
//
// If the configuration is nil, the client will use configuration from
// DefaultConfig(), which is the recommended starting configuration.
//
// If the environment variable `EVENTKNOWLEDGE_SUBSCRIPTION_KEY` is present,
// the key will be automatically added to the client. Otherwise, you must
// manually call `SetSubscriptionKey()`.
func NewClient(c *Config) (*Client, error) {
	def, err := DefaultConfig()
	if err != nil {
		return nil, err
	}

	if c == nil {
		c = def
	}

	if c.HttpClient == nil {
		c.HttpClient = def.HttpClient
	}
	if c.HttpClient.Transport == nil {
		c.HttpClient.Transport = def.HttpClient.Transport
	}
	if c.HttpClient.CheckRedirect == nil {
		// Ensure redirects are not automatically followed
		c.HttpClient.CheckRedirect = func(req *http.Request, via []*http.Request) error {
			// Returning this value causes the Go net library to not close the
			// response body and to nil out the error. Otherwise retry clients may
			// try three times on every redirect because it sees an error from this
			// function (to prevent redirects) passing through to it.
			return http.ErrUseLastResponse
		}
	}
	if c.Logger == nil {
		c.Logger = hclog.NewNullLogger()
	}
	if c.Headers == nil {
		c.Headers = make(http.Header)
	}
	if c.Addr == "" {
		c.Addr = DefaultAddr
	}

	if err := c.setAddr(c.Addr); err != nil {
		return nil, err
	}

	return &Client{
		config: c,
	}, nil
}

// SetAddr sets the address of the service in the client. The format of
// address should be "<Scheme>://<Host>:<Port>". Setting this on a client will
// override the value of the EVENTKNOWLEDGE_ADDR environment variable.
func (c *Client) SetAddr(addr string) error {
	c.modifyLock.Lock()
	defer c.modifyLock.Unlock()

	return c.config.setAddr(addr)
}

// Addr returns the current (parsed) address
func (c *Client) Addr() string {
	c.modifyLock.RLock()
	defer c.modifyLock.RUnlock()

	return c.config.Addr
}

// ApiRoot returns the address joined with the API path, e.g.
// "https://api.labs.cognitive.microsoft.com/eventknowledge/v1.0".
func (c *Client) ApiRoot() string {
	return c.Addr() + ApiPath
}

// SetSubscriptionKey sets the subscription key directly. No validation against
// the service is performed.
func (c *Client) SetSubscriptionKey(key string) {
	c.modifyLock.Lock()
	defer c.modifyLock.Unlock()

	c.config.SubscriptionKey = key
}

// SubscriptionKey gets the configured subscription key.
func (c *Client) SubscriptionKey() string {
	c.modifyLock.RLock()
	defer c.modifyLock.RUnlock()

	return c.config.SubscriptionKey
}

// SetLimiter will set the rate limiter for this client.  This method is
// thread-safe.  rateLimit and burst are specified according to
// https://godoc.org/golang.org/x/time/rate#NewLimiter
func (c *Client) SetLimiter(rateLimit float64, burst int) {
	c.modifyLock.Lock()
	defer c.modifyLock.Unlock()

	c.config.Limiter = rate.NewLimiter(rate.Limit(rateLimit), burst)
}

// SetMaxRetries sets the number of retries that will be used in the case of
// certain errors
func (c *Client) SetMaxRetries(retries int) {
	c.modifyLock.Lock()
	defer c.modifyLock.Unlock()

	c.config.MaxRetries = retries
}

// SetCheckRetry sets the CheckRetry function to be used for future requests.
func (c *Client) SetCheckRetry(checkRetry retryablehttp.CheckRetry) {
	c.modifyLock.Lock()
	defer c.modifyLock.Unlock()

	c.config.CheckRetry = checkRetry
}

// SetClientTimeout sets the client request timeout
func (c *Client) SetClientTimeout(timeout time.Duration) {
	c.modifyLock.Lock()
	defer c.modifyLock.Unlock()

	c.config.Timeout = timeout
}

func (c *Client) SetOutputCurlString(curl bool) {
	c.modifyLock.Lock()
	defer c.modifyLock.Unlock()

	c.config.OutputCurlString = curl
}

// SetHeaders clears all previous headers and uses only the given
// ones going forward.
func (c *Client) SetHeaders(headers http.Header) {
	c.modifyLock.Lock()
	defer c.modifyLock.Unlock()

	c.config.Headers = headers
}

// SetBackoff sets the backoff function to be used for future requests.
func (c *Client) SetBackoff(backoff retryablehttp.Backoff) {
	c.modifyLock.Lock()
	defer c.modifyLock.Unlock()

	c.config.Backoff = backoff
}

// SetLogger sets the logger used for request and retry logging.
func (c *Client) SetLogger(logger hclog.Logger) {
	c.modifyLock.Lock()
	defer c.modifyLock.Unlock()

	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	c.config.Logger = logger
}

// Logger returns the logger configured on the client.
func (c *Client) Logger() hclog.Logger {
	c.modifyLock.RLock()
	defer c.modifyLock.RUnlock()

	return c.config.Logger
}

// SetTLSConfig sets the TLS parameters to use and calls ConfigureTLS
func (c *Client) SetTLSConfig(conf *TLSConfig) error {
	c.modifyLock.Lock()
	defer c.modifyLock.Unlock()

	c.config.TLSConfig = conf
	return c.config.ConfigureTLS()
}

// Clone creates a new client with the same configuration. Note that the same
// underlying http.Client is used; modifying the client from more than one
// goroutine at once may not be safe, so modify the client as needed and then
// clone.
func (c *Client) Clone() *Client {
	c.modifyLock.RLock()
	defer c.modifyLock.RUnlock()

	config := c.config

	newConfig := &Config{
		Addr:            config.Addr,
		SubscriptionKey: config.SubscriptionKey,
		HttpClient:      config.HttpClient,
		Headers:         copyHeaders(config.Headers),
		MaxRetries:      config.MaxRetries,
		Timeout:         config.Timeout,
		Backoff:         config.Backoff,
		CheckRetry:      config.CheckRetry,
		Limiter:         config.Limiter,
		Logger:          config.Logger,
	}
	if config.TLSConfig != nil {
		newConfig.TLSConfig = new(TLSConfig)
		*newConfig.TLSConfig = *config.TLSConfig
	}

	return &Client{config: newConfig}
}

func copyHeaders(in http.Header) http.Header {
	ret := make(http.Header)
	for k, v := range in {
		for _, val := range v {
			ret[k] = append(ret[k], val)
		}
	}

	return ret
}

// getBufferForJSON returns a buffer compatible with retryablehttp request
// bodies after marshaling JSON
func getBufferForJSON(val any) (*bytes.Buffer, error) {
	b, err := json.Marshal(val)
	if err != nil {
		return nil, err
	}

	return bytes.NewBuffer(b), nil
}

// resolve turns a request path into an absolute URL. Absolute URLs (such as
// continuation tokens issued by the service) are returned untouched. Relative
// paths that already begin with the API path are resolved against the service
// address; all others against the API root.
func resolve(addr, requestPath string) (*url.URL, error) {
	if ref, err := url.Parse(requestPath); err == nil && ref.IsAbs() {
		return ref, nil
	}
	base := strings.TrimSuffix(addr, "/")
	rel := "/" + strings.TrimPrefix(requestPath, "/")
	if !strings.HasPrefix(rel, ApiPath+"/") && !strings.HasPrefix(rel, ApiPath+"?") && rel != ApiPath {
		rel = ApiPath + rel
	}
	u, err := url.Parse(base + rel)
	if err != nil {
		return nil, fmt.Errorf("error parsing request path %q: %w", requestPath, err)
	}
	return u, nil
}

// NewRequest creates a new raw request object to query the service configured
// for this client. requestPath is either a path (optionally with a query
// string) relative to the API root, or an absolute URL, which is used
// verbatim. This is an advanced method and generally doesn't need to be called
// externally.
func (c *Client) NewRequest(ctx context.Context, method, requestPath string, body any, opt ...Option) (*retryablehttp.Request, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}

	c.modifyLock.RLock()
	addr := c.config.Addr
	key := c.config.SubscriptionKey
	headers := copyHeaders(c.config.Headers)
	c.modifyLock.RUnlock()

	opts := getOpts(opt...)

	// Sanity check the key before potentially erroring from the API
	idx := strings.IndexFunc(key, func(c rune) bool {
		return !unicode.IsPrint(c)
	})
	if idx != -1 {
		return nil, fmt.Errorf("configured subscription key contains non-printable characters and cannot be used")
	}

	u, err := resolve(addr, requestPath)
	if err != nil {
		return nil, err
	}

	var rawBody any
	if body != nil {
		rawBody, err = getBufferForJSON(body)
		if err != nil {
			return nil, fmt.Errorf("error encoding request body: %w", err)
		}
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, method, u.String(), rawBody)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}
	// Keep the URL exactly as resolved; String/Parse round trips can
	// normalize escapes the server relies on.
	req.URL = u
	req.Host = u.Host

	for k, v := range opts.withHeaders {
		for _, val := range v {
			headers.Add(k, val)
		}
	}
	req.Header = headers
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if key != "" {
		req.Header.Set(SubscriptionKeyHeader, key)
	}
	if opts.withSkipCurlOutput {
		req.Header.Set(skipCurlOutputHeader, "true")
	}

	return req, nil
}

// Do takes a properly configured request and applies client configuration to
// it, returning the response.
func (c *Client) Do(r *retryablehttp.Request) (*Response, error) {
	c.modifyLock.RLock()
	limiter := c.config.Limiter
	maxRetries := c.config.MaxRetries
	checkRetry := c.config.CheckRetry
	backoff := c.config.Backoff
	httpClient := c.config.HttpClient
	timeout := c.config.Timeout
	outputCurlString := c.config.OutputCurlString
	logger := c.config.Logger
	c.modifyLock.RUnlock()

	ctx := r.Context()

	if limiter != nil {
		if err := limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("error waiting on rate limiter: %w", err)
		}
	}

	if outputCurlString {
		if r.Header.Get(skipCurlOutputHeader) == "" {
			LastOutputStringError = &OutputStringError{Request: r}
			return nil, LastOutputStringError
		}
	}
	r.Header.Del(skipCurlOutputHeader)

	if timeout != 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		// The body is buffered into the Response before returning, so the
		// context can be released here.
		defer cancel()
	}
	r = r.WithContext(ctx)

	if backoff == nil {
		backoff = retryablehttp.LinearJitterBackoff
	}

	if checkRetry == nil {
		checkRetry = retryablehttp.DefaultRetryPolicy
	}

	client := &retryablehttp.Client{
		HTTPClient:   httpClient,
		Logger:       logger,
		RetryWaitMin: 1000 * time.Millisecond,
		RetryWaitMax: 1500 * time.Millisecond,
		RetryMax:     maxRetries,
		Backoff:      backoff,
		CheckRetry:   checkRetry,
		ErrorHandler: retryablehttp.PassthroughErrorHandler,
	}

	result, err := client.Do(r)
	if err != nil {
		if strings.Contains(err.Error(), "tls: oversized") {
			err = errwrap.Wrapf(
				"{{err}}\n\n"+
					"This error usually means that the server is running with TLS disabled\n"+
					"but the client is configured to use TLS. Please either enable TLS\n"+
					"on the server or run the client with -addr set to an address\n"+
					"that uses the http protocol:\n\n"+
					"    eventknowledge <command> -addr http://<address>\n\n"+
					"You can also set the EVENTKNOWLEDGE_ADDR environment variable:\n\n\n"+
					"    EVENTKNOWLEDGE_ADDR=http://<address> eventknowledge <command>\n\n"+
					"where <address> is replaced by the actual address to the server.",
				err)
		}
		return nil, err
	}

	resp := &Response{resp: result}
	if err := resp.buffer(); err != nil {
		return nil, err
	}
	return resp, nil
}
