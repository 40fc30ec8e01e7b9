package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInit_MirrorsLinesToFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("HOME", dir)

	var out, errb bytes.Buffer
	Stdout, Stderr = &out, &errb
	defer func() { Stdout, Stderr = os.Stdout, os.Stderr }()

	Init()
	Info("hello info")
	Error("boom")
	Debug("hidden detail")
	Close()

	if !strings.Contains(out.String(), "hello info") {
		t.Fatalf("stdout missing info line: %q", out.String())
	}
	if strings.Contains(out.String(), "hidden detail") {
		t.Fatalf("debug printed without verbose: %q", out.String())
	}
	if !strings.Contains(errb.String(), "boom") {
		t.Fatalf("stderr missing error line: %q", errb.String())
	}

	b, err := os.ReadFile(filepath.Join(dir, "s2s", "logs", "s2s.log"))
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	for _, want := range []string{"hello info", "boom", "hidden detail"} {
		if !strings.Contains(string(b), want) {
			t.Errorf("log file missing %q:\n%s", want, b)
		}
	}
}

func TestDebug_Verbose(t *testing.T) {
	var out bytes.Buffer
	Stdout = &out
	defer func() { Stdout = os.Stdout }()

	SetVerbose(true)
	defer SetVerbose(false)
	Debug("step 1")
	if !strings.Contains(out.String(), "step 1") {
		t.Fatalf("verbose debug not printed: %q", out.String())
	}
}
