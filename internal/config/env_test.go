package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

type fakePrompter struct {
	user, pass string
	calls      int
}

func (f *fakePrompter) Username() (string, error) { f.calls++; return f.user, nil }
func (f *fakePrompter) Password() (string, error) { f.calls++; return f.pass, nil }

func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		k := k
		prev, ok := os.LookupEnv(k)
		_ = os.Unsetenv(k)
		t.Cleanup(func() {
			if ok {
				_ = os.Setenv(k, prev)
			} else {
				_ = os.Unsetenv(k)
			}
		})
	}
}

func TestResolveCredentials_EnvDoesNotPrompt(t *testing.T) {
	p := &fakePrompter{user: "prompted", pass: "prompted"}
	creds, err := ResolveCredentials(Env{User: "admin", Pass: "changeme"}, p)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if p.calls != 0 {
		t.Fatalf("prompter called %d times, want 0", p.calls)
	}
	if creds.Username != "admin" || creds.Password != "changeme" {
		t.Fatalf("unexpected creds: %+v", creds)
	}
}

func TestResolveCredentials_PromptsOnlyForMissing(t *testing.T) {
	p := &fakePrompter{user: "ignored", pass: "secret"}
	creds, err := ResolveCredentials(Env{User: "admin"}, p)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if p.calls != 1 {
		t.Fatalf("prompter called %d times, want 1", p.calls)
	}
	if creds.Username != "admin" || creds.Password != "secret" {
		t.Fatalf("unexpected creds: %+v", creds)
	}
}

func TestResolveCredentials_NoPrompter(t *testing.T) {
	_, err := ResolveCredentials(Env{User: "admin"}, nil)
	if !errors.Is(err, ErrUsage) {
		t.Fatalf("want usage error, got %v", err)
	}
}

func TestCredentials_StringHidesPassword(t *testing.T) {
	s := Credentials{Username: "admin", Password: "changeme"}.String()
	if s != "admin:****" {
		t.Fatalf("String() = %q", s)
	}
}

func TestLoadEnv_FromFile(t *testing.T) {
	unsetEnv(t, "SPLUNK_USER", "SPLUNK_PASS", "SIGMA_BIN")
	p := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(p, []byte("SPLUNK_USER=admin\nSPLUNK_PASS=changeme\n"), 0o600); err != nil {
		t.Fatalf("write env: %v", err)
	}
	env, err := LoadEnv(p)
	if err != nil {
		t.Fatalf("LoadEnv: %v", err)
	}
	if env.User != "admin" || env.Pass != "changeme" {
		t.Fatalf("unexpected env: %+v", env)
	}
	if env.SigmaBin != "sigma" {
		t.Fatalf("SigmaBin default = %q, want sigma", env.SigmaBin)
	}
}

func TestLoadEnv_ProcessEnvWins(t *testing.T) {
	unsetEnv(t, "SPLUNK_PASS", "SIGMA_BIN")
	t.Setenv("SPLUNK_USER", "from-process")
	p := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(p, []byte("SPLUNK_USER=from-file\n"), 0o600); err != nil {
		t.Fatalf("write env: %v", err)
	}
	env, err := LoadEnv(p)
	if err != nil {
		t.Fatalf("LoadEnv: %v", err)
	}
	if env.User != "from-process" {
		t.Fatalf("User = %q, want from-process", env.User)
	}
}

func TestLoadEnv_MissingFileIsFine(t *testing.T) {
	unsetEnv(t, "SPLUNK_USER", "SPLUNK_PASS", "SIGMA_BIN")
	env, err := LoadEnv(filepath.Join(t.TempDir(), "nope.env"))
	if err != nil {
		t.Fatalf("LoadEnv: %v", err)
	}
	if env.User != "" || env.Pass != "" {
		t.Fatalf("unexpected env: %+v", env)
	}
}
