package command

import (
	"context"

	"github.com/pkg/errors"

	applogger "github.com/tss-calculator/deployhook/pkg/deployment/application/logger"
)

var ErrUnexpectedCommand = errors.New("unexpected command")

// Expectation is a command text and the output to return for it.
type Expectation struct {
	Command string
	Return  string
}

// ReplayRunner answers commands from a queue of expectations instead of running them.
// The first unconsumed expectation with the same text wins, so the same command
// may be expected several times with different outputs.
type ReplayRunner struct {
	logger       applogger.Logger
	expectations []Expectation
}

func NewReplayRunner(logger applogger.Logger, expectations ...Expectation) *ReplayRunner {
	return &ReplayRunner{
		logger:       logger,
		expectations: append([]Expectation(nil), expectations...),
	}
}

func (r *ReplayRunner) Expect(command, output string) *ReplayRunner {
	r.expectations = append(r.expectations, Expectation{Command: command, Return: output})
	return r
}

func (r *ReplayRunner) Execute(_ context.Context, command Command) (string, error) {
	text := command.String()
	r.logger.Info("command: " + text)
	for i, expectation := range r.expectations {
		if expectation.Command != text {
			continue
		}
		r.expectations = append(r.expectations[:i], r.expectations[i+1:]...)
		logOutput(r.logger, expectation.Return)
		return expectation.Return, nil
	}
	return "", errors.Wrapf(ErrUnexpectedCommand, "set up an expectation for %q to continue", text)
}

// Remaining returns the expectations that were never consumed.
func (r *ReplayRunner) Remaining() []Expectation {
	return append([]Expectation(nil), r.expectations...)
}
