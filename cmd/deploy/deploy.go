package main

import (
	stdcontext "context"
	"os"

	"github.com/pkg/errors"

	"github.com/tss-calculator/deployhook/pkg/deployment/application/model"
	"github.com/tss-calculator/deployhook/pkg/deployment/infrastructure/command"
	"github.com/tss-calculator/deployhook/pkg/deployment/infrastructure/config/deployconfig"
	"github.com/tss-calculator/deployhook/pkg/deployment/infrastructure/config/fixtureconfig"
	"github.com/tss-calculator/deployhook/pkg/deployment/infrastructure/dependency"
)

var errInvalidArguments = errors.New("invalid arguments")

func setup(ctx stdcontext.Context, configFile, envFile, expectationsFile string) (stdcontext.Context, error) {
	config, err := deployconfig.Load(configFile, envFile)
	if err != nil {
		return nil, err
	}
	var expectations []command.Expectation
	if config.Testing && expectationsFile != "" {
		expectations, err = fixtureconfig.Load(expectationsFile)
		if err != nil {
			return nil, err
		}
	}
	container := dependency.NewDependencyContainer(config, os.Stdout, expectations)
	return dependency.ContainerToContext(ctx, container), nil
}

// deploy expects the arguments of a git post-receive line: <oldrev> <newrev> <ref>.
func deploy(ctx stdcontext.Context, args []string) error {
	if len(args) != 3 {
		return errors.Wrapf(errInvalidArguments, "expected <oldrev> <newrev> <ref>, got %d arguments", len(args))
	}
	dependencyContainer, err := dependency.ContainerFromContext(ctx)
	if err != nil {
		return err
	}
	push := model.NewPushContext(args[0], args[1], args[2])
	return dependencyContainer.Deployer().Deploy(ctx, push)
}
