package main

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/tss-calculator/deployhook/pkg/deployment/application/model"
	"github.com/tss-calculator/deployhook/pkg/deployment/application/service"
	"github.com/tss-calculator/deployhook/pkg/deployment/infrastructure/command"
	"github.com/tss-calculator/deployhook/pkg/deployment/infrastructure/config/deployconfig"
	"github.com/tss-calculator/deployhook/pkg/deployment/infrastructure/strategy"
)

func TestExitCode(t *testing.T) {
	testCases := map[string]struct {
		err      error
		expected int
	}{
		"missing fixture":  {err: errors.Wrap(command.ErrUnexpectedCommand, "git tag"), expected: exitMissingFixture},
		"missing remote":   {err: errors.Wrap(service.ErrRemoteNotFound, "remote beta"), expected: exitRemoteNotFound},
		"aborted":          {err: errors.Wrap(&service.AbortError{Phase: "TagStrategy.Tag()"}, "deploy"), expected: exitAborted},
		"arguments":        {err: errInvalidArguments, expected: exitInvalidInput},
		"config":           {err: errors.Wrap(deployconfig.ErrInvalidConfig, "target"), expected: exitInvalidInput},
		"version":          {err: errors.Wrap(model.ErrInvalidVersion, "release"), expected: exitInvalidInput},
		"branch":           {err: errors.Wrap(strategy.ErrUnsupportedBranch, "master"), expected: exitInvalidInput},
		"unknown strategy": {err: strategy.ErrUnknownStrategy, expected: exitInvalidInput},
		"remote label":     {err: errors.Wrap(strategy.ErrUnsupportedRemote, "beta_eu"), expected: exitInvalidInput},
		"other":            {err: errors.New("exec: git: not found"), expected: exitFailure},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.expected, exitCode(tc.err))
		})
	}
}

func TestDeployRequiresThreeArguments(t *testing.T) {
	err := deploy(context.Background(), []string{"1a2b", "3c4d"})
	assert.ErrorIs(t, err, errInvalidArguments)
	assert.Equal(t, exitInvalidInput, exitCode(err))
}
