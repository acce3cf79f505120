package mockbank

import (
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
)

const envconfigPrefix = "MOCKBANK"

// We use an exported interface to govern access to our config because the
// underlying struct has fields we don't want to expose.
type Config interface {
	Port() int
	AccessTokenTTL() time.Duration
	RefreshTokenTTL() time.Duration
	SeedUsername() string
	SeedPassword() string
	SeedEmail() string
	TLSEnabled() bool
	TLSCertPath() string
	TLSKeyPath() string
}

type config struct {
	PortAttr            int           `envconfig:"PORT"`
	AccessTokenTTLAttr  time.Duration `envconfig:"ACCESS_TOKEN_TTL"`
	RefreshTokenTTLAttr time.Duration `envconfig:"REFRESH_TOKEN_TTL"`
	SeedUsernameAttr    string        `envconfig:"SEED_USERNAME"`
	SeedPasswordAttr    string        `envconfig:"SEED_PASSWORD"`
	SeedEmailAttr       string        `envconfig:"SEED_EMAIL"`
	TLSEnabledAttr      bool          `envconfig:"TLS_ENABLED"`
	TLSCertPathAttr     string        `envconfig:"TLS_CERT_PATH"`
	TLSKeyPathAttr      string        `envconfig:"TLS_KEY_PATH"`
}

// NewConfigWithDefaults returns a Config object with default values already
// applied. Callers are then free to set custom values for the remaining
// fields and/or override default values.
func NewConfigWithDefaults() Config {
	return &config{
		PortAttr:            8080,
		AccessTokenTTLAttr:  15 * time.Minute,
		RefreshTokenTTLAttr: 24 * time.Hour,
		SeedUsernameAttr:    "demo",
		SeedPasswordAttr:    "demo12345",
		SeedEmailAttr:       "demo@lumabank.dev",
	}
}

// GetConfigFromEnvironment returns configuration derived from environment
// variables.
func GetConfigFromEnvironment() (Config, error) {
	c := NewConfigWithDefaults().(*config)
	if err := envconfig.Process(envconfigPrefix, c); err != nil {
		return c, err
	}
	if c.TLSEnabledAttr {
		if c.TLSCertPathAttr == "" {
			return c, errors.New(
				"with TLS enabled, a value is required for the " +
					"TLS_CERT_PATH environment variable",
			)
		}
		if c.TLSKeyPathAttr == "" {
			return c, errors.New(
				"with TLS enabled, a value is required for the " +
					"TLS_KEY_PATH environment variable",
			)
		}
	}
	return c, nil
}

func (c *config) Port() int {
	return c.PortAttr
}

func (c *config) AccessTokenTTL() time.Duration {
	return c.AccessTokenTTLAttr
}

func (c *config) RefreshTokenTTL() time.Duration {
	return c.RefreshTokenTTLAttr
}

func (c *config) SeedUsername() string {
	return c.SeedUsernameAttr
}

func (c *config) SeedPassword() string {
	return c.SeedPasswordAttr
}

func (c *config) SeedEmail() string {
	return c.SeedEmailAttr
}

func (c *config) TLSEnabled() bool {
	return c.TLSEnabledAttr
}

func (c *config) TLSCertPath() string {
	return c.TLSCertPathAttr
}

func (c *config) TLSKeyPath() string {
	return c.TLSKeyPathAttr
}
