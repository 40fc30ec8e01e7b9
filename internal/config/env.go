package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// LoadEnv loads envFile (if present) into the process environment without
// overriding variables that are already set, then reads Env from it.
func LoadEnv(envFile string) (Env, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Env{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}
	var env Env
	if err := envconfig.Process("", &env); err != nil {
		return Env{}, fmt.Errorf("environment: %w", err)
	}
	return env, nil
}

// Prompter asks the user for whatever the environment did not provide.
type Prompter interface {
	Username() (string, error)
	// Password must not echo input.
	Password() (string, error)
}

// ResolveCredentials takes each field from env first and prompts only for
// the ones that are missing. A nil prompter turns a missing field into an error.
func ResolveCredentials(env Env, p Prompter) (Credentials, error) {
	creds := Credentials{Username: env.User, Password: env.Pass}
	if creds.Username == "" {
		if p == nil {
			return Credentials{}, fmt.Errorf("%w: SPLUNK_USER is not set", ErrUsage)
		}
		u, err := p.Username()
		if err != nil {
			return Credentials{}, fmt.Errorf("read username: %w", err)
		}
		creds.Username = u
	}
	if creds.Password == "" {
		if p == nil {
			return Credentials{}, fmt.Errorf("%w: SPLUNK_PASS is not set", ErrUsage)
		}
		pw, err := p.Password()
		if err != nil {
			return Credentials{}, fmt.Errorf("read password: %w", err)
		}
		creds.Password = pw
	}
	return creds, nil
}
