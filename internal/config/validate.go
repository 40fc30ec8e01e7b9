package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/robfig/cron/v3"
)

var (
	// ErrUsage marks bad or missing arguments.
	ErrUsage = errors.New("usage error")
	// ErrInput marks a rule file that cannot be used.
	ErrInput = errors.New("input error")
)

var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// Validate checks the invocation before anything touches the network.
// In delete mode the rule, timer and pipeline are ignored.
func (inv Invocation) Validate() error {
	var merr *multierror.Error
	if strings.TrimSpace(inv.Name) == "" {
		merr = multierror.Append(merr, fmt.Errorf("%w: --name is required", ErrUsage))
	}
	if err := ValidateHost(inv.Host); err != nil {
		merr = multierror.Append(merr, err)
	}
	if err := ValidateScheme(inv.Scheme); err != nil {
		merr = multierror.Append(merr, err)
	}
	if !inv.Delete {
		if inv.RulePath == "" {
			merr = multierror.Append(merr, fmt.Errorf("%w: --rule is required unless --delete is set", ErrUsage))
		} else if err := CheckRuleFile(inv.RulePath); err != nil {
			merr = multierror.Append(merr, err)
		}
		if err := ValidateCron(inv.Timer); err != nil {
			merr = multierror.Append(merr, err)
		}
		if inv.MaxResults < 0 {
			merr = multierror.Append(merr, fmt.Errorf("%w: --max-results must not be negative", ErrUsage))
		}
	}
	if merr != nil {
		merr.ErrorFormat = listFormat
	}
	return merr.ErrorOrNil()
}

// ValidateCron accepts exactly five fields: minute hour day-of-month month day-of-week.
func ValidateCron(timer string) error {
	fields := strings.Fields(timer)
	if len(fields) != 5 {
		return fmt.Errorf("%w: cron timer must have exactly 5 fields (e.g. '*/30 * * * *'), got %q", ErrUsage, timer)
	}
	if _, err := cronParser.Parse(strings.Join(fields, " ")); err != nil {
		return fmt.Errorf("%w: invalid cron timer %q: %v", ErrUsage, timer, err)
	}
	return nil
}

// ValidateScheme accepts the two schemes splunkd serves its API on.
func ValidateScheme(scheme string) error {
	if scheme != "http" && scheme != "https" {
		return fmt.Errorf("%w: scheme must be http or https, got %q", ErrUsage, scheme)
	}
	return nil
}

// ValidateHost accepts host:port with a port in 1..65535.
func ValidateHost(hostport string) error {
	host, port, err := net.SplitHostPort(hostport)
	if err != nil {
		return fmt.Errorf("%w: host must be in the format host:port (e.g. '%s'): %v", ErrUsage, DefaultHost, err)
	}
	if host == "" {
		return fmt.Errorf("%w: host is empty in %q", ErrUsage, hostport)
	}
	n, err := strconv.Atoi(port)
	if err != nil {
		return fmt.Errorf("%w: port %q is not a valid integer", ErrUsage, port)
	}
	if n < 1 || n > 65535 {
		return fmt.Errorf("%w: port %d is out of range (1-65535)", ErrUsage, n)
	}
	return nil
}

// CheckRuleFile reports an input error unless path is an existing regular file.
func CheckRuleFile(path string) error {
	fi, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: rule file %s does not exist", ErrInput, path)
		}
		return fmt.Errorf("%w: %v", ErrInput, err)
	}
	if fi.IsDir() {
		return fmt.Errorf("%w: rule path %s is a directory", ErrInput, path)
	}
	return nil
}

func listFormat(es []error) string {
	if len(es) == 1 {
		return es[0].Error()
	}
	msgs := make([]string, 0, len(es))
	for _, e := range es {
		msgs = append(msgs, e.Error())
	}
	return strings.Join(msgs, "; ")
}
