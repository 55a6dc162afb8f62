package service

import (
	"context"
	"fmt"

	"github.com/pkg/errors"

	applogger "github.com/tss-calculator/deployhook/pkg/deployment/application/logger"
	"github.com/tss-calculator/deployhook/pkg/deployment/application/model"
)

var (
	ErrRemoteNotFound    = errors.New("deployment remote is not set up in the work area")
	ErrDeploymentAborted = errors.New("deployment aborted")
)

// AbortError names the strategy call that vetoed the deployment.
type AbortError struct {
	Phase string
}

func (e *AbortError) Error() string {
	return fmt.Sprintf("%v told me to abort", e.Phase)
}

func (e *AbortError) Unwrap() error {
	return ErrDeploymentAborted
}

type Deployer interface {
	Deploy(ctx context.Context, push model.PushContext) error
}

func NewDeployService(
	config model.Config,
	logger applogger.Logger,
	workArea WorkArea,
	strategies StrategyResolver,
) Deployer {
	return &deployService{
		config:     config,
		logger:     logger,
		workArea:   workArea,
		strategies: strategies,
	}
}

type deployService struct {
	config model.Config

	logger     applogger.Logger
	workArea   WorkArea
	strategies StrategyResolver
}

// Deploy runs the deployment phases in order and stops at the first veto or error.
// Nothing done by an earlier phase is undone.
func (service deployService) Deploy(ctx context.Context, push model.PushContext) error {
	if service.config.Testing {
		service.logger.Warning("You are in test mode. No deployment will actually take place.")
	}
	service.logger.Info(fmt.Sprintf("INPUT oldrev: %v, newrev: %v, ref: %v", push.OldRevision, push.NewRevision, push.Ref))

	if push.IsDeletion() {
		service.logger.Info("Deleting a ref does not trigger deployment.")
		return nil
	}

	err := service.checkRemote(ctx)
	if err != nil {
		return err
	}

	deployment, err := service.strategies.DeploymentStrategy()
	if err != nil {
		return err
	}
	service.logger.Info("Running pre-deployment tasks.")
	proceed, err := deployment.PreDeployment(ctx, push)
	if err = service.vetoed("DeploymentStrategy.PreDeployment()", proceed, err); err != nil {
		return err
	}

	service.logger.Info("Preparing to deal with locally modified files if there are any.")
	localChanges, err := service.strategies.LocalChangesStrategy()
	if err != nil {
		return err
	}
	changes, proceed, err := localChanges.PreDeploy(ctx, push)
	if err = service.vetoed("LocalChangesStrategy.PreDeploy()", proceed, err); err != nil {
		return err
	}

	service.logger.Info("Bringing the work area up to date with origin.")
	err = service.fetchOrigin(ctx)
	if err != nil {
		return err
	}

	service.logger.Info("Preparing tag strategy.")
	tags, err := service.strategies.TagStrategy()
	if err != nil {
		return err
	}
	version, err := tags.ResolveVersion(ctx, push)
	if err != nil {
		return errors.Wrap(err, "failed to resolve version")
	}

	service.logger.Info(fmt.Sprintf("Deploying the %v you pushed (%v) to work area %v.", push.RefType(), push.BaseRef, service.config.TargetDir))
	proceed, err = deployment.Deploy(ctx, push, version)
	if err = service.vetoed("DeploymentStrategy.Deploy()", proceed, err); err != nil {
		return err
	}

	service.logger.Info("Dealing with locally modified files before tagging.")
	proceed, err = localChanges.PreTag(ctx, push, changes)
	if err = service.vetoed("LocalChangesStrategy.PreTag()", proceed, err); err != nil {
		return err
	}

	service.logger.Info(fmt.Sprintf("Tagging the deployed %v.", push.RefType()))
	proceed, err = tags.Tag(ctx, push, version)
	if err = service.vetoed("TagStrategy.Tag()", proceed, err); err != nil {
		return err
	}

	service.logger.Info("Running post-deployment tasks.")
	proceed, err = deployment.PostDeployment(ctx, push, version)
	if err = service.vetoed("DeploymentStrategy.PostDeployment()", proceed, err); err != nil {
		return err
	}

	service.logger.Info("DEPLOYMENT SUCCESSFUL!!")
	return nil
}

func (service deployService) checkRemote(ctx context.Context) error {
	remote := service.config.RemoteName
	service.logger.Info(fmt.Sprintf("Checking to make sure the %v remote exists in the target work area.", remote))
	exists, err := service.workArea.RemoteExists(ctx, remote)
	if err != nil {
		return err
	}
	if !exists {
		service.logger.Info(fmt.Sprintf("The %v remote is not set up in the target work area.", remote))
		service.logger.Info("CANNOT COMPLETE DEPLOYMENT")
		return errors.Wrapf(ErrRemoteNotFound, "remote %v", remote)
	}
	service.logger.Info("It exists. So we're ok.")
	return nil
}

func (service deployService) fetchOrigin(ctx context.Context) error {
	err := service.workArea.Fetch(ctx, model.OriginRemote)
	if err != nil {
		return err
	}
	return service.workArea.FetchTags(ctx, model.OriginRemote)
}

func (service deployService) vetoed(phase string, proceed bool, err error) error {
	if err != nil {
		return errors.Wrapf(err, "%v failed", phase)
	}
	if !proceed {
		service.logger.Info(fmt.Sprintf("%v told me to abort. Aborting deployment.", phase))
		return &AbortError{Phase: phase}
	}
	return nil
}
