package strategy

import (
	"context"
	"fmt"

	applogger "github.com/tss-calculator/deployhook/pkg/deployment/application/logger"
	"github.com/tss-calculator/deployhook/pkg/deployment/application/model"
	"github.com/tss-calculator/deployhook/pkg/deployment/application/service"
)

// NewStopLocalChangesStrategy refuses to deploy over locally modified files.
func NewStopLocalChangesStrategy(workArea service.WorkArea, logger applogger.Logger) service.LocalChangesStrategy {
	return &stopLocalChangesStrategy{workArea: workArea, logger: logger}
}

type stopLocalChangesStrategy struct {
	workArea service.WorkArea
	logger   applogger.Logger
}

func (strategy stopLocalChangesStrategy) PreDeploy(ctx context.Context, _ model.PushContext) (service.LocalChanges, bool, error) {
	files, err := strategy.workArea.ModifiedFiles(ctx)
	if err != nil {
		return service.LocalChanges{}, false, err
	}
	if len(files) > 0 {
		strategy.logger.Info("Found locally modified files in target work area. Cannot continue with deployment.")
		return service.LocalChanges{}, false, nil
	}
	return service.LocalChanges{}, true, nil
}

func (strategy stopLocalChangesStrategy) PreTag(context.Context, model.PushContext, service.LocalChanges) (bool, error) {
	return true, nil
}

// NewResetLocalChangesStrategy throws locally modified files away before deploying.
func NewResetLocalChangesStrategy(workArea service.WorkArea, logger applogger.Logger) service.LocalChangesStrategy {
	return &resetLocalChangesStrategy{workArea: workArea, logger: logger}
}

type resetLocalChangesStrategy struct {
	workArea service.WorkArea
	logger   applogger.Logger
}

func (strategy resetLocalChangesStrategy) PreDeploy(ctx context.Context, _ model.PushContext) (service.LocalChanges, bool, error) {
	files, err := strategy.workArea.ModifiedFiles(ctx)
	if err != nil {
		return service.LocalChanges{}, false, err
	}
	if len(files) > 0 {
		strategy.logger.Info("Found locally modified files. Running git reset --hard")
		err = strategy.workArea.ResetHard(ctx)
		if err != nil {
			return service.LocalChanges{}, false, err
		}
	}
	return service.LocalChanges{}, true, nil
}

func (strategy resetLocalChangesStrategy) PreTag(context.Context, model.PushContext, service.LocalChanges) (bool, error) {
	return true, nil
}

// NewCommitLocalChangesStrategy stashes locally modified files before deploying a
// branch and commits them on top of the deployed branch before it is tagged.
func NewCommitLocalChangesStrategy(
	config model.Config,
	workArea service.WorkArea,
	logger applogger.Logger,
) service.LocalChangesStrategy {
	return &commitLocalChangesStrategy{config: config, workArea: workArea, logger: logger}
}

type commitLocalChangesStrategy struct {
	config   model.Config
	workArea service.WorkArea
	logger   applogger.Logger
}

func (strategy commitLocalChangesStrategy) PreDeploy(ctx context.Context, push model.PushContext) (service.LocalChanges, bool, error) {
	files, err := strategy.workArea.ModifiedFiles(ctx)
	if err != nil {
		return service.LocalChanges{}, false, err
	}
	if len(files) == 0 {
		return service.LocalChanges{}, true, nil
	}
	if !push.IsBranch() {
		strategy.logger.Info("Found locally modified files in work area. But I'm unsure which branch to commit them to because you're pushing a tag.")
		return service.LocalChanges{}, false, nil
	}
	strategy.logger.Info(fmt.Sprintf("Stashing %d locally modified files.", len(files)))
	err = strategy.workArea.StageAll(ctx)
	if err != nil {
		return service.LocalChanges{}, false, err
	}
	err = strategy.workArea.Stash(ctx)
	if err != nil {
		return service.LocalChanges{}, false, err
	}
	return service.LocalChanges{Stashed: true}, true, nil
}

func (strategy commitLocalChangesStrategy) PreTag(ctx context.Context, push model.PushContext, changes service.LocalChanges) (bool, error) {
	if !changes.Stashed {
		return true, nil
	}
	if !push.IsBranch() {
		strategy.logger.Info("You should never see this message because pushing a tag to a work area with locally modified files should halt the deployment from PreDeploy().")
		return false, nil
	}
	strategy.logger.Info("Committing stashed locally modified files to the deployed branch.")
	err := strategy.workArea.StashPop(ctx)
	if err != nil {
		return false, err
	}
	err = strategy.workArea.StageAll(ctx)
	if err != nil {
		return false, err
	}
	err = strategy.workArea.Commit(ctx, fmt.Sprintf("Committing locally modified files from %v.", strategy.config.Level))
	if err != nil {
		return false, err
	}
	return true, nil
}
