package command

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"strings"

	applogger "github.com/tss-calculator/go-lib/pkg/application/logger"
)

type Command struct {
	WorkDir    string
	Executable string
	Args       []string
	Env        []string
}

type Runner interface {
	Execute(ctx context.Context, command Command) (string, error)
}

func NewCommandRunner(logger applogger.Logger, silent bool) Runner {
	return &runner{
		logger: logger,
		silent: silent,
	}
}

type runner struct {
	logger applogger.Logger
	silent bool
}

func (r runner) Execute(ctx context.Context, command Command) (string, error) {
	if command.Executable == "" {
		return "", errors.New("command executable can not be empty")
	}
	// nolint:gosec
	cmd := exec.CommandContext(ctx, command.Executable, command.Args...)
	cmd.Dir = command.WorkDir
	if len(command.Env) > 0 {
		cmd.Env = append(os.Environ(), command.Env...)
	}
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	if !r.silent {
		cmd.Stderr = os.Stderr
	}
	r.logger.Debug(cmd.String())
	err := cmd.Run()
	return strings.TrimSpace(stdout.String()), err
}
