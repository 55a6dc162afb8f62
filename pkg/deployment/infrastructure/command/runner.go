package command

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	applogger "github.com/tss-calculator/deployhook/pkg/deployment/application/logger"
)

type Command struct {
	WorkDir    string
	Executable string
	Args       []string
}

// String renders the command the way it is written to the transcript.
func (command Command) String() string {
	words := make([]string, 0, len(command.Args)+1)
	words = append(words, quote(command.Executable))
	for _, arg := range command.Args {
		words = append(words, quote(arg))
	}
	text := strings.Join(words, " ")
	if command.WorkDir != "" {
		return "cd " + quote(command.WorkDir) + " && " + text
	}
	return text
}

// Runner executes a command and returns what it printed on stdout.
type Runner interface {
	Execute(ctx context.Context, command Command) (string, error)
}

func NewCommandRunner(logger applogger.Logger) Runner {
	return &runner{
		logger: logger,
	}
}

type runner struct {
	logger applogger.Logger
}

// Execute treats a non-zero exit status as a regular outcome: callers judge
// the result by the output. Only failing to run the process is an error.
func (r runner) Execute(ctx context.Context, command Command) (string, error) {
	if command.Executable == "" {
		return "", errors.New("command executable can not be empty")
	}
	r.logger.Info("command: " + command.String())
	// nolint:gosec
	cmd := exec.CommandContext(ctx, command.Executable, command.Args...)
	cmd.Dir = command.WorkDir
	result, err := cmd.Output()
	if ctxErr := ctx.Err(); ctxErr != nil {
		return "", ctxErr
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		r.logger.Debug(fmt.Sprintf("exit status %d: %v", exitErr.ExitCode(), strings.TrimSpace(string(exitErr.Stderr))))
		err = nil
	}
	if err != nil {
		return "", errors.Wrapf(err, "failed to run %v", command.Executable)
	}
	logOutput(r.logger, string(result))
	return string(result), nil
}

func logOutput(logger applogger.Logger, output string) {
	if output = strings.TrimSpace(output); output != "" {
		logger.Debug(output)
	}
}

func quote(word string) string {
	if word == "" || strings.ContainsAny(word, " \t\n\"'\\$`") {
		return strconv.Quote(word)
	}
	return word
}
