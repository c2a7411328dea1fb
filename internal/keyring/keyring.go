// Package keyring holds the API credentials of every configured exchange.
// It is populated once at startup and read-only afterwards.
package keyring

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"cryptotrade/pkg/core"
)

// KeyRing maps an exchange name to its credentials.
type KeyRing struct {
	keys   map[string]core.Credentials
	logger zerolog.Logger
}

// NewKeyRing copies keys into a new KeyRing.
func NewKeyRing(keys map[string]core.Credentials) *KeyRing {
	k := &KeyRing{
		keys:   make(map[string]core.Credentials, len(keys)),
		logger: zerolog.Nop(),
	}
	for name, creds := range keys {
		k.keys[strings.ToLower(name)] = creds
	}
	return k
}

// LookupFunc resolves an environment variable.
type LookupFunc func(key string) (string, bool)

// FromEnv reads <NAME>_ACCESS_KEY and <NAME>_SECRET_KEY for each exchange.
// Exchanges with neither variable set are left out.
func FromEnv(lookup LookupFunc, exchanges ...string) *KeyRing {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	keys := make(map[string]core.Credentials, len(exchanges))
	for _, name := range exchanges {
		prefix := strings.ToUpper(name)
		access, _ := lookup(prefix + "_ACCESS_KEY")
		secret, _ := lookup(prefix + "_SECRET_KEY")
		creds := core.Credentials{AccessKey: access, SecretKey: secret}
		if creds.IsZero() {
			continue
		}
		keys[name] = creds
	}
	return NewKeyRing(keys)
}

// LoadEnvFile loads path into the process environment without overriding
// variables that are already set. A missing file is not an error.
func LoadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}

// SetLogger sets the logger used when credentials are missing.
func (k *KeyRing) SetLogger(logger zerolog.Logger) {
	k.logger = logger
}

// Get returns the credentials of exchange. Missing credentials yield an
// empty value so public endpoints keep working; signed calls then fail
// with an authentication fault from the exchange.
func (k *KeyRing) Get(exchange string) core.Credentials {
	creds, ok := k.keys[strings.ToLower(exchange)]
	if !ok {
		k.logger.Warn().Str("exchange", exchange).Msg("no credentials configured")
	}
	return creds
}

// Has reports whether credentials exist for exchange.
func (k *KeyRing) Has(exchange string) bool {
	_, ok := k.keys[strings.ToLower(exchange)]
	return ok
}

// Names returns the exchanges with credentials, sorted.
func (k *KeyRing) Names() []string {
	names := make([]string, 0, len(k.keys))
	for name := range k.keys {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (k *KeyRing) String() string {
	parts := make([]string, 0, len(k.keys))
	for _, name := range k.Names() {
		parts = append(parts, fmt.Sprintf("%s:%s", name, k.keys[name]))
	}
	return "KeyRing{" + strings.Join(parts, ", ") + "}"
}
