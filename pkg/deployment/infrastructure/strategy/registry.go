package strategy

import (
	"fmt"

	"github.com/pkg/errors"

	applogger "github.com/tss-calculator/deployhook/pkg/deployment/application/logger"
	"github.com/tss-calculator/deployhook/pkg/deployment/application/model"
	"github.com/tss-calculator/deployhook/pkg/deployment/application/service"
)

// Strategy selectors accepted in the configuration.
const (
	StopOnLocalChanges   = "stop"
	ResetLocalChanges    = "reset"
	CommitLocalChanges   = "commit"
	AutoIncrementingTags = "auto-incrementing"
	DefaultDeployment    = "default"
)

var ErrUnknownStrategy = errors.New("unknown strategy")

type factory[T any] func(config model.Config, workArea service.WorkArea, logger applogger.Logger) T

var localChangesStrategies = map[string]factory[service.LocalChangesStrategy]{
	StopOnLocalChanges: func(_ model.Config, workArea service.WorkArea, logger applogger.Logger) service.LocalChangesStrategy {
		return NewStopLocalChangesStrategy(workArea, logger)
	},
	ResetLocalChanges: func(_ model.Config, workArea service.WorkArea, logger applogger.Logger) service.LocalChangesStrategy {
		return NewResetLocalChangesStrategy(workArea, logger)
	},
	CommitLocalChanges: NewCommitLocalChangesStrategy,
}

var tagStrategies = map[string]factory[service.TagStrategy]{
	AutoIncrementingTags: NewAutoIncrementingTagStrategy,
}

var deploymentStrategies = map[string]factory[service.DeploymentStrategy]{
	DefaultDeployment: NewDefaultDeploymentStrategy,
}

// NewStrategyResolver builds the strategies selected by the configuration.
func NewStrategyResolver(
	config model.Config,
	workArea service.WorkArea,
	logger applogger.Logger,
) service.StrategyResolver {
	return &strategyResolver{
		config:   config,
		workArea: workArea,
		logger:   logger,
	}
}

type strategyResolver struct {
	config   model.Config
	workArea service.WorkArea
	logger   applogger.Logger
}

func (r strategyResolver) DeploymentStrategy() (service.DeploymentStrategy, error) {
	return resolve(r, deploymentStrategies, "deployment", r.config.DeploymentStrategy)
}

func (r strategyResolver) LocalChangesStrategy() (service.LocalChangesStrategy, error) {
	return resolve(r, localChangesStrategies, "locally modified file", r.config.LocalChangesStrategy)
}

func (r strategyResolver) TagStrategy() (service.TagStrategy, error) {
	return resolve(r, tagStrategies, "tag", r.config.TagStrategy)
}

func resolve[T any](r strategyResolver, registry map[string]factory[T], kind, name string) (T, error) {
	newStrategy, ok := registry[name]
	if !ok {
		var zero T
		return zero, errors.Wrapf(ErrUnknownStrategy, "%v strategy %q", kind, name)
	}
	r.logger.Info(fmt.Sprintf("Following %v strategy: %v", kind, name))
	return newStrategy(r.config, r.workArea, r.logger), nil
}
