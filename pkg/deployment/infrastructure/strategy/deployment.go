package strategy

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/pkg/errors"

	applogger "github.com/tss-calculator/deployhook/pkg/deployment/application/logger"
	"github.com/tss-calculator/deployhook/pkg/deployment/application/model"
	"github.com/tss-calculator/deployhook/pkg/deployment/application/service"
	"github.com/tss-calculator/deployhook/pkg/deployment/infrastructure/command"
)

func NewDefaultDeploymentStrategy(
	config model.Config,
	workArea service.WorkArea,
	logger applogger.Logger,
) service.DeploymentStrategy {
	return &defaultDeploymentStrategy{
		config:   config,
		workArea: workArea,
		logger:   logger,
	}
}

// defaultDeploymentStrategy checks the pushed ref out in the work area and runs
// the configured pre/post deployment scripts. Script results never stop a deployment,
// even when the script could not be started.
type defaultDeploymentStrategy struct {
	config   model.Config
	workArea service.WorkArea
	logger   applogger.Logger
}

func (strategy defaultDeploymentStrategy) PreDeployment(ctx context.Context, _ model.PushContext) (bool, error) {
	strategy.logger.Info("Running pre-deployment script in work area.")
	err := strategy.runScript(ctx, strategy.config.PreDeploymentScript)
	if err != nil {
		return false, err
	}
	return true, nil
}

func (strategy defaultDeploymentStrategy) Deploy(ctx context.Context, push model.PushContext, _ model.Version) (bool, error) {
	remote := strategy.config.RemoteName
	err := strategy.workArea.Fetch(ctx, remote)
	if err != nil {
		return false, err
	}
	if !push.IsBranch() {
		strategy.logger.Info(fmt.Sprintf("Checking out %v", push.BaseRef))
		err = strategy.workArea.Checkout(ctx, push.BaseRef)
		if err != nil {
			return false, err
		}
		return true, nil
	}

	upstream := remote + "/" + push.BaseRef
	strategy.logger.Info(fmt.Sprintf("Checking out %v", upstream))
	err = strategy.workArea.Checkout(ctx, upstream)
	if err != nil {
		return false, err
	}
	strategy.logger.Info("Deleting local copy of your branch just to avoid any potential merge conflicts.")
	err = strategy.workArea.DeleteBranch(ctx, push.BaseRef)
	if err != nil {
		return false, err
	}
	err = strategy.workArea.CheckoutNewBranch(ctx, push.BaseRef, upstream)
	if err != nil {
		return false, err
	}
	strategy.logger.Info("Pushing your branch to origin just in case you forgot to do that first.")
	err = strategy.workArea.Push(ctx, model.OriginRemote, push.BaseRef)
	if err != nil {
		return false, err
	}
	return true, nil
}

func (strategy defaultDeploymentStrategy) PostDeployment(ctx context.Context, _ model.PushContext, _ model.Version) (bool, error) {
	strategy.logger.Info("Running post-deployment script in work area.")
	err := strategy.runScript(ctx, strategy.config.PostDeploymentScript)
	if err != nil {
		return false, err
	}
	return true, nil
}

// runScript runs script from the target directory when it exists there.
func (strategy defaultDeploymentStrategy) runScript(ctx context.Context, script string) error {
	if script == "" {
		strategy.logger.Info("No script configured.")
		return nil
	}
	scriptPath := filepath.Join(strategy.config.TargetDir, script)
	exists, err := strategy.workArea.FileExists(ctx, scriptPath)
	if err != nil {
		return err
	}
	if !exists {
		strategy.logger.Info(fmt.Sprintf("Script %v not found. Nothing to run.", scriptPath))
		return nil
	}
	strategy.logger.Info(fmt.Sprintf("Running deployment script %v.", scriptPath))
	err = strategy.workArea.RunScript(ctx, strategy.config.TargetDir, scriptPath)
	if err == nil {
		return nil
	}
	if errors.Is(err, command.ErrUnexpectedCommand) || ctx.Err() != nil {
		return err
	}
	strategy.logger.Warning(fmt.Sprintf("Deployment script %v could not be run: %v", scriptPath, err))
	return nil
}
