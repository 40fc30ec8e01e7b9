package main

import (
	"context"
	"errors"
	"os"
	"os/signal"

	"github.com/gopak/sigma2splunk/cmd"
	"github.com/gopak/sigma2splunk/internal/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := cmd.Execute(ctx)
	stop()
	if err != nil {
		if errors.Is(err, context.Canceled) {
			logging.Warn("interrupted by user")
		} else {
			logging.Error(err.Error())
		}
		logging.Close()
		os.Exit(1)
	}
	logging.Close()
}
