package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeRule(t *testing.T) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "rule.yml")
	if err := os.WriteFile(p, []byte("title: t\n"), 0o644); err != nil {
		t.Fatalf("write rule: %v", err)
	}
	return p
}

func TestValidate_CreateDefaultsOK(t *testing.T) {
	inv := Defaults()
	inv.Name = "Test Search"
	inv.RulePath = writeRule(t)
	if err := inv.Validate(); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
}

func TestValidate_MissingName(t *testing.T) {
	inv := Defaults()
	inv.RulePath = writeRule(t)
	err := inv.Validate()
	if !errors.Is(err, ErrUsage) {
		t.Fatalf("want usage error, got %v", err)
	}
	if !strings.Contains(err.Error(), "--name") {
		t.Fatalf("error should mention --name: %v", err)
	}
}

func TestValidate_MissingRuleInCreateMode(t *testing.T) {
	inv := Defaults()
	inv.Name = "x"
	err := inv.Validate()
	if !errors.Is(err, ErrUsage) || !strings.Contains(err.Error(), "--rule") {
		t.Fatalf("want usage error about --rule, got %v", err)
	}
}

func TestValidate_RuleFileDoesNotExist(t *testing.T) {
	inv := Defaults()
	inv.Name = "x"
	inv.RulePath = filepath.Join(t.TempDir(), "missing.yml")
	err := inv.Validate()
	if !errors.Is(err, ErrInput) {
		t.Fatalf("want input error, got %v", err)
	}
}

func TestValidate_RulePathIsDir(t *testing.T) {
	inv := Defaults()
	inv.Name = "x"
	inv.RulePath = t.TempDir()
	if err := inv.Validate(); !errors.Is(err, ErrInput) {
		t.Fatalf("want input error, got %v", err)
	}
}

func TestValidate_DeleteIgnoresRuleAndTimer(t *testing.T) {
	inv := Defaults()
	inv.Name = "Test Search"
	inv.Delete = true
	inv.Timer = "not a cron"
	inv.RulePath = "/does/not/exist.yml"
	if err := inv.Validate(); err != nil {
		t.Fatalf("delete mode should only need a name, got %v", err)
	}
}

func TestValidate_CollectsAllProblems(t *testing.T) {
	inv := Defaults()
	inv.Host = "nohost"
	inv.Timer = "* *"
	err := inv.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	for _, want := range []string{"--name", "host", "--rule", "5 fields"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q should mention %q", err, want)
		}
	}
}

func TestValidateCron(t *testing.T) {
	tests := []struct {
		timer string
		ok    bool
	}{
		{"*/30 * * * *", true},
		{"0 6 * * 1-5", true},
		{"15,45 * * * *", true},
		{"  */5   * * * *  ", true},
		{"@hourly", false},
		{"* * * *", false},
		{"* * * * * *", false},
		{"61 * * * *", false},
		{"abc * * * *", false},
	}
	for _, tt := range tests {
		t.Run(tt.timer, func(t *testing.T) {
			err := ValidateCron(tt.timer)
			if (err == nil) != tt.ok {
				t.Fatalf("ValidateCron(%q) err = %v, want ok=%v", tt.timer, err, tt.ok)
			}
			if err != nil && !errors.Is(err, ErrUsage) {
				t.Fatalf("want usage error, got %v", err)
			}
		})
	}
}

func TestValidateHost(t *testing.T) {
	tests := []struct {
		host string
		ok   bool
	}{
		{"127.0.0.1:8089", true},
		{"splunk.example.com:443", true},
		{"[::1]:8089", true},
		{"127.0.0.1", false},
		{":8089", false},
		{"127.0.0.1:0", false},
		{"127.0.0.1:65536", false},
		{"127.0.0.1:http", false},
	}
	for _, tt := range tests {
		t.Run(tt.host, func(t *testing.T) {
			if err := ValidateHost(tt.host); (err == nil) != tt.ok {
				t.Fatalf("ValidateHost(%q) err = %v, want ok=%v", tt.host, err, tt.ok)
			}
		})
	}
}

func TestValidateScheme(t *testing.T) {
	for _, s := range []string{"http", "https"} {
		if err := ValidateScheme(s); err != nil {
			t.Errorf("ValidateScheme(%q) = %v", s, err)
		}
	}
	for _, s := range []string{"", "ftp", "HTTPS"} {
		if err := ValidateScheme(s); !errors.Is(err, ErrUsage) {
			t.Errorf("ValidateScheme(%q) = %v, want usage error", s, err)
		}
	}
}
