package core

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// Credentials holds API authentication credentials for an exchange.
// Values are never validated client-side; a bad key surfaces as an
// authentication fault from the exchange.
type Credentials struct {
	// AccessKey is the public API key identifier.
	AccessKey string `json:"access_key" yaml:"access_key"`
	// SecretKey is the private key used for signing requests.
	SecretKey string `json:"secret_key" yaml:"secret_key"`
}

// String masks both keys so credentials can be logged safely.
func (c Credentials) String() string {
	return fmt.Sprintf("Credentials{AccessKey:%s, SecretKey:%s}", MaskKey(c.AccessKey), MaskKey(c.SecretKey))
}

// IsZero reports whether no key material is present.
func (c Credentials) IsZero() bool {
	return c.AccessKey == "" && c.SecretKey == ""
}

// MaskKey keeps the first and last four characters of long keys.
func MaskKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "****" + key[len(key)-4:]
}

// Config contains the process-wide settings of the trading front end.
type Config struct {
	// Exchange is the default exchange used when none is given on the command line.
	Exchange string `json:"exchange" yaml:"exchange" validate:"omitempty,oneof=binance gateio upbit"`

	// Timeout bounds each HTTP request. Zero leaves deadlines to the context.
	Timeout time.Duration `json:"timeout" yaml:"timeout" validate:"min=0"`

	// BaseURLs overrides the REST endpoint per exchange name.
	BaseURLs map[string]string `json:"base_urls" yaml:"base_urls" validate:"omitempty,dive,keys,oneof=binance gateio upbit,endkeys,url"`

	// EnvFile is loaded into the environment before credentials are read.
	EnvFile string `json:"env_file" yaml:"env_file"`

	LogLevel string `json:"log_level" yaml:"log_level" validate:"omitempty,oneof=debug info warn error"`

	// Output selects the rendering of results.
	Output string `json:"output" yaml:"output" validate:"omitempty,oneof=json table"`
}

// DefaultConfig returns a Config initialized with defaults: no request
// timeout, info logging and JSON output.
func DefaultConfig() *Config {
	return &Config{
		Timeout:  0,
		BaseURLs: map[string]string{},
		EnvFile:  ".env",
		LogLevel: "info",
		Output:   "json",
	}
}

var validate = validator.New()

// Validate checks the config against its struct tags.
func (c *Config) Validate() error {
	return validate.Struct(c)
}

// WithTimeout sets the request timeout and returns the config for chaining.
func (c *Config) WithTimeout(timeout time.Duration) *Config {
	c.Timeout = timeout
	return c
}

// WithBaseURL overrides the endpoint of one exchange and returns the config for chaining.
func (c *Config) WithBaseURL(exchange, url string) *Config {
	if c.BaseURLs == nil {
		c.BaseURLs = map[string]string{}
	}
	c.BaseURLs[exchange] = url
	return c
}
