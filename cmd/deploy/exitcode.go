package main

import (
	"github.com/pkg/errors"

	"github.com/tss-calculator/deployhook/pkg/deployment/application/model"
	"github.com/tss-calculator/deployhook/pkg/deployment/application/service"
	"github.com/tss-calculator/deployhook/pkg/deployment/infrastructure/command"
	"github.com/tss-calculator/deployhook/pkg/deployment/infrastructure/config/deployconfig"
	"github.com/tss-calculator/deployhook/pkg/deployment/infrastructure/strategy"
)

const (
	exitFailure        = 1
	exitInvalidInput   = 2
	exitRemoteNotFound = 3
	exitAborted        = 4
	exitMissingFixture = 5
)

var invalidInput = []error{
	errInvalidArguments,
	deployconfig.ErrInvalidConfig,
	model.ErrInvalidVersion,
	strategy.ErrUnsupportedBranch,
	strategy.ErrUnsupportedRef,
	strategy.ErrUnsupportedRemote,
	strategy.ErrUnknownStrategy,
}

func exitCode(err error) int {
	switch {
	case errors.Is(err, command.ErrUnexpectedCommand):
		return exitMissingFixture
	case errors.Is(err, service.ErrRemoteNotFound):
		return exitRemoteNotFound
	case errors.Is(err, service.ErrDeploymentAborted):
		return exitAborted
	}
	for _, target := range invalidInput {
		if errors.Is(err, target) {
			return exitInvalidInput
		}
	}
	return exitFailure
}
