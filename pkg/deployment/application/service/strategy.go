package service

import (
	"context"

	"github.com/tss-calculator/deployhook/pkg/deployment/application/model"
)

// WorkArea runs version control operations against the deployment target checkout.
type WorkArea interface {
	RemoteExists(ctx context.Context, remote string) (bool, error)
	Fetch(ctx context.Context, remote string) error
	FetchTags(ctx context.Context, remote string) error
	ModifiedFiles(ctx context.Context) ([]string, error)
	ResetHard(ctx context.Context) error
	StageAll(ctx context.Context) error
	Stash(ctx context.Context) error
	StashPop(ctx context.Context) error
	Commit(ctx context.Context, message string) error
	Tags(ctx context.Context) ([]string, error)
	CreateTag(ctx context.Context, name, message string) error
	Push(ctx context.Context, remote, ref string) error
	DeleteBranch(ctx context.Context, branch string) error
	Checkout(ctx context.Context, ref string) error
	CheckoutNewBranch(ctx context.Context, branch, upstream string) error
	FileExists(ctx context.Context, path string) (bool, error)
	RunScript(ctx context.Context, dir, path string) error
}

// Every strategy call reports whether the deployment may continue.
// A false result vetoes the deployment, an error is fatal.

type TagStrategy interface {
	ResolveVersion(ctx context.Context, push model.PushContext) (model.Version, error)
	Tag(ctx context.Context, push model.PushContext, version model.Version) (bool, error)
}

// LocalChanges is what PreDeploy did with locally modified files, handed back to PreTag.
type LocalChanges struct {
	Stashed bool
}

type LocalChangesStrategy interface {
	PreDeploy(ctx context.Context, push model.PushContext) (LocalChanges, bool, error)
	PreTag(ctx context.Context, push model.PushContext, changes LocalChanges) (bool, error)
}

type DeploymentStrategy interface {
	PreDeployment(ctx context.Context, push model.PushContext) (bool, error)
	Deploy(ctx context.Context, push model.PushContext, version model.Version) (bool, error)
	PostDeployment(ctx context.Context, push model.PushContext, version model.Version) (bool, error)
}

// StrategyResolver builds the configured strategies. Each one is resolved when
// the deployment reaches the phase that first needs it.
type StrategyResolver interface {
	DeploymentStrategy() (DeploymentStrategy, error)
	LocalChangesStrategy() (LocalChangesStrategy, error)
	TagStrategy() (TagStrategy, error)
}
