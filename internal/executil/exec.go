package executil

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
)

type Result struct {
	Stdout string
	Stderr string
	Code   int
}

// Run executes name with args, without a shell, and captures both streams.
// err is only set when the process could not be started or was killed by
// ctx; a non-zero exit is reported through Result.Code.
func Run(ctx context.Context, name string, args ...string) (Result, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var out, errb bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errb
	err := cmd.Run()
	res := Result{Stdout: out.String(), Stderr: errb.String()}
	if err == nil {
		return res, nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		res.Code = -1
		return res, ctxErr
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		res.Code = exitErr.ExitCode()
		return res, nil
	}
	res.Code = -1
	return res, err
}
