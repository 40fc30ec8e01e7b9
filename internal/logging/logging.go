package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	charmlog "github.com/charmbracelet/log"
	"github.com/jedib0t/go-pretty/v6/text"
)

var logfile *os.File
var verbose bool
var filelog = charmlog.New(io.Discard)

// Stdout and Stderr are where user-facing lines go.
var (
	Stdout io.Writer = os.Stdout
	Stderr io.Writer = os.Stderr
)

// Init opens the log file under the user config dir. Failing to open it is
// not an error: lines are still printed, just not mirrored.
func Init() {
	Close()
	dir, _ := os.UserConfigDir()
	p := filepath.Join(dir, "s2s", "logs")
	_ = os.MkdirAll(p, 0o755)
	f, err := os.OpenFile(filepath.Join(p, "s2s.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return
	}
	logfile = f
	filelog = charmlog.NewWithOptions(f, charmlog.Options{
		Level:           charmlog.DebugLevel,
		Formatter:       charmlog.TextFormatter,
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
	})
}

func Close() {
	if logfile != nil {
		_ = logfile.Close()
		logfile = nil
	}
	filelog = charmlog.New(io.Discard)
}

func Info(msg string) {
	_, _ = fmt.Fprintln(Stdout, msg)
	filelog.Info(msg)
}

func Success(msg string) {
	_, _ = fmt.Fprintln(Stdout, text.FgGreen.Sprint(msg))
	filelog.Info(msg)
}

func Warn(msg string) {
	_, _ = fmt.Fprintln(Stderr, text.FgYellow.Sprint(msg))
	filelog.Warn(msg)
}

func Error(msg string) {
	_, _ = fmt.Fprintln(Stderr, text.FgRed.Sprint(msg))
	filelog.Error(msg)
}

func Gray(msg string) {
	_, _ = fmt.Fprintln(Stdout, text.FgHiBlack.Sprint(msg))
	filelog.Info(msg)
}

// SetVerbose toggles verbose output to stdout.
func SetVerbose(v bool) { verbose = v }

// Debug prints only when verbose mode is enabled. The log file always gets it.
func Debug(msg string) {
	filelog.Debug(msg)
	if !verbose {
		return
	}
	_, _ = fmt.Fprintln(Stdout, text.FgHiBlack.Sprint(msg))
}
