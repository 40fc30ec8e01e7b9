package config

import "time"

const (
	DefaultHost       = "127.0.0.1:8089"
	DefaultTimer      = "*/30 * * * *"
	DefaultScheme     = "https"
	DefaultMaxResults = 100
	DefaultEnvFile    = ".env"
)

// Invocation is everything one run of s2s was asked to do.
type Invocation struct {
	Name     string
	RulePath string
	Host     string
	Timer    string
	Pipeline string
	Delete   bool

	// Execute dispatches the converted query once after the saved search is stored.
	Execute    bool
	MaxResults int

	// App and Owner select a servicesNS namespace; empty means /services.
	App   string
	Owner string

	Scheme    string
	VerifyTLS bool
	Timeout   time.Duration
}

// Defaults returns an Invocation with every optional field at its default.
func Defaults() Invocation {
	return Invocation{
		Host:       DefaultHost,
		Timer:      DefaultTimer,
		Execute:    true,
		MaxResults: DefaultMaxResults,
		Scheme:     DefaultScheme,
	}
}

// Env holds the variables read from the process environment (and .env).
type Env struct {
	User     string `envconfig:"SPLUNK_USER"`
	Pass     string `envconfig:"SPLUNK_PASS"`
	SigmaBin string `envconfig:"SIGMA_BIN" default:"sigma"`
}

type Credentials struct {
	Username string
	Password string
}

// String never includes the password.
func (c Credentials) String() string {
	if c.Password == "" {
		return c.Username
	}
	return c.Username + ":****"
}
