package command

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tss-calculator/deployhook/pkg/deployment/infrastructure/transcript"
)

func TestReplayRunnerReturnsExpectedOutput(t *testing.T) {
	logger, hook := test.NewNullLogger()
	runner := NewReplayRunner(transcript.NewLogger(logger)).
		Expect("git remote", "origin\nbeta\n").
		Expect("git ls-files -m", "")

	output, err := runner.Execute(context.Background(), Command{Executable: "git", Args: []string{"ls-files", "-m"}})
	require.NoError(t, err)
	assert.Empty(t, output)

	output, err = runner.Execute(context.Background(), Command{Executable: "git", Args: []string{"remote"}})
	require.NoError(t, err)
	assert.Equal(t, "origin\nbeta\n", output)

	assert.Empty(t, runner.Remaining())
	require.Len(t, hook.AllEntries(), 2)
	assert.Equal(t, "command: git ls-files -m", hook.AllEntries()[0].Message)
	assert.Equal(t, "command: git remote", hook.AllEntries()[1].Message)
}

func TestReplayRunnerConsumesDuplicatesInOrder(t *testing.T) {
	logger, _ := test.NewNullLogger()
	runner := NewReplayRunner(transcript.NewLogger(logger),
		Expectation{Command: "find deploy.sh -maxdepth 0 -type f", Return: "deploy.sh"},
		Expectation{Command: "find deploy.sh -maxdepth 0 -type f", Return: ""},
	)
	find := Command{Executable: "find", Args: []string{"deploy.sh", "-maxdepth", "0", "-type", "f"}}

	first, err := runner.Execute(context.Background(), find)
	require.NoError(t, err)
	second, err := runner.Execute(context.Background(), find)
	require.NoError(t, err)

	assert.Equal(t, "deploy.sh", first)
	assert.Empty(t, second)

	_, err = runner.Execute(context.Background(), find)
	assert.ErrorIs(t, err, ErrUnexpectedCommand)
}

func TestReplayRunnerRejectsUnexpectedCommand(t *testing.T) {
	logger, hook := test.NewNullLogger()
	runner := NewReplayRunner(transcript.NewLogger(logger)).Expect("git fetch origin", "")

	_, err := runner.Execute(context.Background(), Command{Executable: "git", Args: []string{"fetch", "beta"}})
	require.ErrorIs(t, err, ErrUnexpectedCommand)
	assert.Contains(t, err.Error(), "git fetch beta")
	assert.Equal(t, []Expectation{{Command: "git fetch origin"}}, runner.Remaining())
	assert.Equal(t, "command: git fetch beta", hook.LastEntry().Message)
}

func TestReplayRunnerDoesNotShareCallerSlice(t *testing.T) {
	logger, _ := test.NewNullLogger()
	expectations := []Expectation{{Command: "git tag", Return: "3.0.0"}, {Command: "git remote", Return: "beta"}}
	runner := NewReplayRunner(transcript.NewLogger(logger), expectations...)

	_, err := runner.Execute(context.Background(), Command{Executable: "git", Args: []string{"tag"}})
	require.NoError(t, err)
	assert.Equal(t, "git tag", expectations[0].Command)
	assert.Len(t, runner.Remaining(), 1)
}
