package strategy

import (
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/pkg/errors"

	applogger "github.com/tss-calculator/deployhook/pkg/deployment/application/logger"
	"github.com/tss-calculator/deployhook/pkg/deployment/application/model"
	"github.com/tss-calculator/deployhook/pkg/deployment/application/service"
)

var (
	ErrUnsupportedBranch = errors.New("branch name does not match the <major>.<minor> format")
	ErrUnsupportedRef    = errors.New("only branches and tags can be deployed")
	ErrUnsupportedRemote = errors.New("remote name can not be used as a pre-release label")
)

var releaseBranch = regexp.MustCompile(`^([0-9]+)\.([0-9]+)$`)

func NewAutoIncrementingTagStrategy(
	config model.Config,
	workArea service.WorkArea,
	logger applogger.Logger,
) service.TagStrategy {
	return &autoIncrementingTagStrategy{
		config:   config,
		workArea: workArea,
		logger:   logger,
	}
}

// autoIncrementingTagStrategy tags every deployed <major>.<minor> branch with the
// next patch, or with the next pre-release of the remote on non-production remotes.
// Pushed tags are deployed as they are.
type autoIncrementingTagStrategy struct {
	config   model.Config
	workArea service.WorkArea
	logger   applogger.Logger
}

func (strategy autoIncrementingTagStrategy) ResolveVersion(ctx context.Context, push model.PushContext) (model.Version, error) {
	if push.IsTag() {
		strategy.logger.Info("You have pushed a tag. Only branches can be auto-tagged. Pushing a tag will simply deploy that tag to the work area.")
		strategy.logger.Info("No new tag will be created.")
		version, err := model.ParseVersion(push.BaseRef)
		if err != nil {
			strategy.logger.Info(fmt.Sprintf("Could not parse version number: %v", err))
			return model.Version{}, err
		}
		return version, nil
	}
	if !push.IsBranch() {
		return model.Version{}, errors.Wrapf(ErrUnsupportedRef, "ref %v", push.Ref)
	}

	matches := releaseBranch.FindStringSubmatch(push.BaseRef)
	if matches == nil {
		strategy.logger.Warning("Branch name does not match expected auto-tag format.")
		strategy.logger.Info("CANNOT CONTINUE AUTO-DEPLOYMENT!")
		return model.Version{}, errors.Wrapf(ErrUnsupportedBranch, "branch %v", push.BaseRef)
	}
	major, err := strconv.ParseUint(matches[1], 10, 64)
	if err != nil {
		return model.Version{}, errors.Wrapf(ErrUnsupportedBranch, "branch %v: %v", push.BaseRef, err)
	}
	minor, err := strconv.ParseUint(matches[2], 10, 64)
	if err != nil {
		return model.Version{}, errors.Wrapf(ErrUnsupportedBranch, "branch %v: %v", push.BaseRef, err)
	}

	latest, err := strategy.latestVersion(ctx, major, minor)
	if err != nil {
		return model.Version{}, err
	}
	version := latest.Next()
	strategy.logger.Info(fmt.Sprintf("Next tag to be used: %v", version))
	return version, nil
}

func (strategy autoIncrementingTagStrategy) Tag(ctx context.Context, push model.PushContext, version model.Version) (bool, error) {
	if push.IsTag() {
		strategy.logger.Info("No new tag will be created because you are pushing a tag.")
		return true, nil
	}
	strategy.logger.Info(fmt.Sprintf("Tagging work area with tag: %v", version))
	err := strategy.workArea.CreateTag(ctx, version.String(), fmt.Sprintf("%v deployed to %v", version, strategy.config.Level))
	if err != nil {
		return false, err
	}
	err = strategy.workArea.Push(ctx, model.OriginRemote, version.String())
	if err != nil {
		return false, err
	}
	return true, nil
}

// latestVersion returns the highest existing tag of the release line, or the
// seed <major>.<minor>.0[-<remote>.0] when the line has no tags yet.
func (strategy autoIncrementingTagStrategy) latestVersion(ctx context.Context, major, minor uint64) (model.Version, error) {
	seed, err := strategy.seedVersion(major, minor)
	if err != nil {
		return model.Version{}, err
	}
	tags, err := strategy.workArea.Tags(ctx)
	if err != nil {
		return model.Version{}, err
	}
	pattern := strategy.tagPattern(major, minor)

	var latest *model.Version
	for _, tag := range tags {
		if !pattern.MatchString(tag) {
			continue
		}
		version, err := model.ParseVersion(tag)
		if err != nil {
			strategy.logger.Debug(fmt.Sprintf("skipping tag %v: %v", tag, err))
			continue
		}
		if latest == nil || version.Compare(*latest) > 0 {
			latest = &version
		}
	}
	if latest != nil {
		strategy.logger.Info(fmt.Sprintf("Previous latest tag was %v", latest))
		return *latest, nil
	}

	strategy.logger.Info(fmt.Sprintf("Previous tag not found. Creating new tag %v", seed))
	return seed, nil
}

// seedVersion fails when the remote name would render a tag that can not be
// parsed back, since such tags are never found again and would be recreated.
func (strategy autoIncrementingTagStrategy) seedVersion(major, minor uint64) (model.Version, error) {
	seed := model.Version{Major: major, Minor: minor}
	if strategy.config.IsProduction() {
		return seed, nil
	}
	seed.PreRelease = strategy.config.RemoteName
	seed.HasPreReleaseNumber = true
	parsed, err := model.ParseVersion(seed.String())
	if err != nil || parsed != seed {
		strategy.logger.Info(fmt.Sprintf("Remote name %v can not be used in a tag.", strategy.config.RemoteName))
		return model.Version{}, errors.Wrapf(ErrUnsupportedRemote, "remote %v", strategy.config.RemoteName)
	}
	return seed, nil
}

// tagPattern matches <major>.<minor>.<patch> on production and
// <major>.<minor>.<patch>-<remote>.<n> on every other remote.
func (strategy autoIncrementingTagStrategy) tagPattern(major, minor uint64) *regexp.Regexp {
	preRelease := ""
	if !strategy.config.IsProduction() {
		preRelease = `-` + regexp.QuoteMeta(strategy.config.RemoteName) + `\.[0-9]+`
	}
	return regexp.MustCompile(fmt.Sprintf(`^%d\.%d\.[0-9]+%v$`, major, minor, preRelease))
}
