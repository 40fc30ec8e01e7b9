package sigma

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os/exec"
	"strings"

	"github.com/gopak/sigma2splunk/internal/executil"
	"github.com/gopak/sigma2splunk/internal/logging"
)

const (
	DefaultBinary = "sigma"
	Target        = "splunk"
	Format        = "default"
)

var (
	// ErrConversion is wrapped by every failure of the external converter.
	ErrConversion   = errors.New("sigma conversion failed")
	ErrNotInstalled = fmt.Errorf("%w: sigma CLI not found in PATH (pip install sigma-cli && sigma plugin install splunk)", ErrConversion)
	ErrEmptyQuery   = fmt.Errorf("%w: converter produced no query", ErrConversion)
)

// ConversionError carries what sigma printed when it exited non-zero.
type ConversionError struct {
	Code   int
	Stderr string
}

func (e *ConversionError) Error() string {
	msg := strings.TrimSpace(e.Stderr)
	if msg == "" {
		return fmt.Sprintf("%s: exit status %d", ErrConversion, e.Code)
	}
	return fmt.Sprintf("%s: %s", ErrConversion, msg)
}

func (e *ConversionError) Unwrap() error { return ErrConversion }

// Converter shells out to sigma-cli.
type Converter struct {
	binary string
	run    func(ctx context.Context, name string, args ...string) (executil.Result, error)
}

func NewConverter(binary string) *Converter {
	if binary == "" {
		binary = DefaultBinary
	}
	return &Converter{binary: binary, run: executil.Run}
}

// Args builds the sigma convert argv. An empty pipeline means no processing
// pipeline at all, which sigma-cli requires to be explicit.
func Args(rulePath, pipeline string) []string {
	args := []string{"convert", "-t", Target, "-f", Format}
	if pipeline != "" {
		args = append(args, "-p", pipeline)
	} else {
		args = append(args, "--without-pipeline")
	}
	return append(args, rulePath)
}

// Convert returns the Splunk query for the rule at rulePath.
func (c *Converter) Convert(ctx context.Context, rulePath, pipeline string) (string, error) {
	args := Args(rulePath, pipeline)
	logging.Debug(fmt.Sprintf("exec: %s %s", c.binary, strings.Join(args, " ")))
	res, err := c.run(ctx, c.binary, args...)
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist) {
			return "", ErrNotInstalled
		}
		return "", fmt.Errorf("%w: %w", ErrConversion, err)
	}
	if res.Code != 0 {
		return "", &ConversionError{Code: res.Code, Stderr: res.Stderr}
	}
	q := strings.TrimSpace(res.Stdout)
	if q == "" {
		return "", ErrEmptyQuery
	}
	logging.Debug("generated Splunk query: " + q)
	return q, nil
}
