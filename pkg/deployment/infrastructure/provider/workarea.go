package provider

import (
	"context"
	"strings"

	"github.com/pkg/errors"

	"github.com/tss-calculator/deployhook/pkg/deployment/application/model"
	"github.com/tss-calculator/deployhook/pkg/deployment/application/service"
	"github.com/tss-calculator/deployhook/pkg/deployment/infrastructure/command"
)

func NewWorkAreaProvider(
	config model.Config,
	runner command.Runner,
) service.WorkArea {
	return &workAreaProvider{
		gitArgs:         config.GitArgs(),
		scriptElevation: config.ScriptElevation,
		runner:          runner,
	}
}

type workAreaProvider struct {
	gitArgs         []string
	scriptElevation string
	runner          command.Runner
}

func (provider workAreaProvider) RemoteExists(ctx context.Context, remote string) (bool, error) {
	output, err := provider.git(ctx, "remote")
	if err != nil {
		return false, errors.Wrap(err, "failed to list remotes")
	}
	for _, name := range lines(output) {
		if name == remote {
			return true, nil
		}
	}
	return false, nil
}

func (provider workAreaProvider) Fetch(ctx context.Context, remote string) error {
	_, err := provider.git(ctx, "fetch", remote)
	return errors.Wrapf(err, "failed to fetch remote %v", remote)
}

func (provider workAreaProvider) FetchTags(ctx context.Context, remote string) error {
	_, err := provider.git(ctx, "fetch", remote, "--tags")
	return errors.Wrapf(err, "failed to fetch tags from remote %v", remote)
}

func (provider workAreaProvider) ModifiedFiles(ctx context.Context) ([]string, error) {
	output, err := provider.git(ctx, "ls-files", "-m")
	if err != nil {
		return nil, errors.Wrap(err, "failed to list modified files")
	}
	return lines(output), nil
}

func (provider workAreaProvider) ResetHard(ctx context.Context) error {
	_, err := provider.git(ctx, "reset", "--hard")
	return errors.Wrap(err, "failed to reset work area")
}

func (provider workAreaProvider) StageAll(ctx context.Context) error {
	_, err := provider.git(ctx, "add", ".")
	return errors.Wrap(err, "failed to stage work area")
}

func (provider workAreaProvider) Stash(ctx context.Context) error {
	_, err := provider.git(ctx, "stash")
	return errors.Wrap(err, "failed to stash work area")
}

func (provider workAreaProvider) StashPop(ctx context.Context) error {
	_, err := provider.git(ctx, "stash", "pop")
	return errors.Wrap(err, "failed to pop stash")
}

func (provider workAreaProvider) Commit(ctx context.Context, message string) error {
	_, err := provider.git(ctx, "commit", "-m", message)
	return errors.Wrap(err, "failed to commit")
}

func (provider workAreaProvider) Tags(ctx context.Context) ([]string, error) {
	output, err := provider.git(ctx, "tag")
	if err != nil {
		return nil, errors.Wrap(err, "failed to list tags")
	}
	return lines(output), nil
}

func (provider workAreaProvider) CreateTag(ctx context.Context, name, message string) error {
	_, err := provider.git(ctx, "tag", "-a", name, "-m", message)
	return errors.Wrapf(err, "failed to create tag %v", name)
}

func (provider workAreaProvider) Push(ctx context.Context, remote, ref string) error {
	_, err := provider.git(ctx, "push", remote, ref)
	return errors.Wrapf(err, "failed to push %v to %v", ref, remote)
}

func (provider workAreaProvider) DeleteBranch(ctx context.Context, branch string) error {
	_, err := provider.git(ctx, "branch", "-D", branch)
	return errors.Wrapf(err, "failed to delete branch %v", branch)
}

func (provider workAreaProvider) Checkout(ctx context.Context, ref string) error {
	_, err := provider.git(ctx, "checkout", ref)
	return errors.Wrapf(err, "failed to checkout %v", ref)
}

func (provider workAreaProvider) CheckoutNewBranch(ctx context.Context, branch, upstream string) error {
	_, err := provider.git(ctx, "checkout", "-b", branch, "--track", upstream)
	return errors.Wrapf(err, "failed to create branch %v from %v", branch, upstream)
}

// FileExists asks find rather than stat so the check shows up in the transcript
// and can be replayed.
func (provider workAreaProvider) FileExists(ctx context.Context, path string) (bool, error) {
	output, err := provider.runner.Execute(ctx, command.Command{
		Executable: "find",
		Args:       []string{path, "-maxdepth", "0", "-type", "f"},
	})
	if err != nil {
		return false, errors.Wrapf(err, "failed to check %v", path)
	}
	return strings.TrimSpace(output) != "", nil
}

func (provider workAreaProvider) RunScript(ctx context.Context, dir, path string) error {
	script := command.Command{
		WorkDir:    dir,
		Executable: path,
	}
	if provider.scriptElevation != "" {
		script.Executable = provider.scriptElevation
		script.Args = []string{path}
	}
	_, err := provider.runner.Execute(ctx, script)
	return errors.Wrapf(err, "failed to run script %v", path)
}

func (provider workAreaProvider) git(ctx context.Context, args ...string) (string, error) {
	gitArgs := make([]string, 0, len(provider.gitArgs)+len(args))
	gitArgs = append(gitArgs, provider.gitArgs...)
	return provider.runner.Execute(ctx, command.Command{
		Executable: "git",
		Args:       append(gitArgs, args...),
	})
}

func lines(output string) []string {
	var result []string
	for _, line := range strings.Split(output, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			result = append(result, line)
		}
	}
	return result
}
