package strategy

import (
	"strings"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"

	applogger "github.com/tss-calculator/deployhook/pkg/deployment/application/logger"
	"github.com/tss-calculator/deployhook/pkg/deployment/application/model"
	"github.com/tss-calculator/deployhook/pkg/deployment/application/service"
	"github.com/tss-calculator/deployhook/pkg/deployment/infrastructure/command"
	"github.com/tss-calculator/deployhook/pkg/deployment/infrastructure/provider"
	"github.com/tss-calculator/deployhook/pkg/deployment/infrastructure/transcript"
)

const git = "git --git-dir /var/www/test.fh.org/.git --work-tree /var/www/test.fh.org/. "

type harness struct {
	runner   *command.ReplayRunner
	workArea service.WorkArea
	logger   applogger.Logger
	hook     *test.Hook
}

func newHarness(t *testing.T, config model.Config) harness {
	t.Helper()
	logrusLogger, hook := test.NewNullLogger()
	logger := transcript.NewLogger(logrusLogger)
	runner := command.NewReplayRunner(logger)
	return harness{
		runner:   runner,
		workArea: provider.NewWorkAreaProvider(config, runner),
		logger:   logger,
		hook:     hook,
	}
}

// messages returns the transcript without the command echo lines.
func (h harness) messages() []string {
	var result []string
	for _, entry := range h.hook.AllEntries() {
		if strings.HasPrefix(entry.Message, "command: ") {
			continue
		}
		result = append(result, entry.Message)
	}
	return result
}

func testConfig(remote string) model.Config {
	return model.Config{
		Level:                remote,
		TargetDir:            "/var/www/test.fh.org",
		RemoteName:           remote,
		GitDir:               "/var/www/test.fh.org",
		GitWorkTree:          "/var/www/test.fh.org",
		LocalChangesStrategy: StopOnLocalChanges,
		TagStrategy:          AutoIncrementingTags,
		DeploymentStrategy:   DefaultDeployment,
		PreDeploymentScript:  "pre-deploy.sh",
		PostDeploymentScript: "deploy.sh",
		ScriptElevation:      "sudo",
	}
}
