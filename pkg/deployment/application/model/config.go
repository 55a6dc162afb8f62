package model

const (
	OriginRemote     = "origin"
	ProductionRemote = "production"
)

type Config struct {
	Level      string
	TargetDir  string
	RemoteName string

	GitDir      string
	GitWorkTree string
	GitFlags    []string

	LocalChangesStrategy string
	TagStrategy          string
	DeploymentStrategy   string

	PreDeploymentScript  string
	PostDeploymentScript string
	// ScriptElevation prefixes deployment scripts, sudo by default. Empty runs them directly.
	ScriptElevation string

	Testing bool
	Verbose bool
}

// GitArgs returns the flags that point every git invocation at the work area.
func (config Config) GitArgs() []string {
	args := []string{
		"--git-dir", config.GitDir + "/.git",
		"--work-tree", config.GitWorkTree + "/.",
	}
	return append(args, config.GitFlags...)
}

func (config Config) IsProduction() bool {
	return config.RemoteName == ProductionRemote
}
