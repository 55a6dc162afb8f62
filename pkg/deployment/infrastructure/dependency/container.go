package dependency

import (
	"context"
	"errors"
	"io"

	"github.com/tss-calculator/deployhook/pkg/deployment/application/model"
	"github.com/tss-calculator/deployhook/pkg/deployment/application/service"
	"github.com/tss-calculator/deployhook/pkg/deployment/infrastructure/command"
	"github.com/tss-calculator/deployhook/pkg/deployment/infrastructure/provider"
	"github.com/tss-calculator/deployhook/pkg/deployment/infrastructure/strategy"
	"github.com/tss-calculator/deployhook/pkg/deployment/infrastructure/transcript"
)

type containerKey struct{}

type Container interface {
	Deployer() service.Deployer
}

// NewDependencyContainer wires the deployment for config. In testing mode commands
// are answered from expectations instead of being run.
func NewDependencyContainer(
	config model.Config,
	out io.Writer,
	expectations []command.Expectation,
) Container {
	logger := transcript.New(out, config.Verbose)
	runner := command.NewCommandRunner(logger)
	if config.Testing {
		runner = command.NewReplayRunner(logger, expectations...)
	}
	workArea := provider.NewWorkAreaProvider(config, runner)
	strategyResolver := strategy.NewStrategyResolver(config, workArea, logger)
	deployService := service.NewDeployService(config, logger, workArea, strategyResolver)

	return &container{
		deployer: deployService,
	}
}

type container struct {
	deployer service.Deployer
}

func (c *container) Deployer() service.Deployer {
	return c.deployer
}

func ContainerFromContext(ctx context.Context) (Container, error) {
	v := ctx.Value(containerKey{})
	if c, ok := v.(Container); ok {
		return c, nil
	}
	return nil, errors.New("dependency container not found")
}

func ContainerToContext(ctx context.Context, c Container) context.Context {
	return context.WithValue(ctx, containerKey{}, c)
}
