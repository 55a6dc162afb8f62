package deployconfig

import (
	"regexp"

	"github.com/go-playground/validator/v10"
	"github.com/google/shlex"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/tss-calculator/deployhook/pkg/deployment/application/model"
)

var ErrInvalidConfig = errors.New("invalid deployment config")

// Non-production remote names become the pre-release label of deployment tags.
var remoteName = regexp.MustCompile(`^[0-9A-Za-z-]+(\.[0-9A-Za-z-]+)*$`)

type Config struct {
	Level                       string `mapstructure:"level"`
	Target                      string `mapstructure:"target" validate:"required"`
	DeploymentRemoteName        string `mapstructure:"deployment_remote_name" validate:"required,remote_name"`
	GitDir                      string `mapstructure:"git_dir"`
	GitWorkTree                 string `mapstructure:"git_work_tree"`
	GitFlags                    string `mapstructure:"git_flags"`
	LocallyModifiedFileStrategy string `mapstructure:"locally_modified_file_strategy" validate:"oneof=stop reset commit"`
	TagStrategy                 string `mapstructure:"tag_strategy" validate:"oneof=auto-incrementing"`
	DeploymentStrategy          string `mapstructure:"deployment_strategy" validate:"oneof=default"`
	PreDeploymentScript         string `mapstructure:"pre_deployment_script"`
	PostDeploymentScript        string `mapstructure:"post_deployment_script"`
	ScriptElevation             string `mapstructure:"script_elevation"`
	Testing                     bool   `mapstructure:"testing"`
	Verbose                     bool   `mapstructure:"verbose"`
}

// Environment variables for every key. They win over the config file.
var envBindings = map[string]string{
	"level":                          "DEPLOYMENT_LEVEL",
	"target":                         "DEPLOYMENT_TARGET_DIR",
	"deployment_remote_name":         "DEPLOYMENT_REMOTE_NAME",
	"git_dir":                        "DEPLOYMENT_GIT_DIR",
	"git_work_tree":                  "DEPLOYMENT_GIT_WORK_TREE",
	"git_flags":                      "DEPLOYMENT_GIT_FLAGS",
	"locally_modified_file_strategy": "LOCALLY_MODIFIED_FILE_STRATEGY",
	"tag_strategy":                   "TAG_STRATEGY",
	"deployment_strategy":            "DEPLOYMENT_STRATEGY",
	"pre_deployment_script":          "PRE_DEPLOYMENT_SCRIPT",
	"post_deployment_script":         "POST_DEPLOYMENT_SCRIPT",
	"script_elevation":               "DEPLOYMENT_SCRIPT_ELEVATION",
	"testing":                        "DEPLOYMENT_TESTING",
	"verbose":                        "DEPLOYMENT_VERBOSE",
}

// Load reads the deployment configuration from the environment, optionally
// seeded from a dotenv file and backed by a config file. Both paths may be empty.
func Load(configFile, envFile string) (model.Config, error) {
	if envFile != "" {
		err := godotenv.Load(envFile)
		if err != nil {
			return model.Config{}, errors.Wrapf(err, "failed to load env file: %v", envFile)
		}
	}

	v := viper.New()
	v.SetDefault("locally_modified_file_strategy", "stop")
	v.SetDefault("tag_strategy", "auto-incrementing")
	v.SetDefault("deployment_strategy", "default")
	v.SetDefault("script_elevation", "sudo")
	for key, env := range envBindings {
		err := v.BindEnv(key, env)
		if err != nil {
			return model.Config{}, errors.Wrapf(err, "failed to bind %v", env)
		}
	}
	if configFile != "" {
		v.SetConfigFile(configFile)
		err := v.ReadInConfig()
		if err != nil {
			return model.Config{}, errors.Wrapf(err, "failed to read config file: %v", configFile)
		}
	}

	var infraConfig Config
	err := v.Unmarshal(&infraConfig)
	if err != nil {
		return model.Config{}, errors.Wrap(err, "failed to unmarshal config")
	}
	err = newValidator().Struct(infraConfig)
	if err != nil {
		return model.Config{}, errors.Wrapf(ErrInvalidConfig, "%v", err)
	}
	gitFlags, err := shlex.Split(infraConfig.GitFlags)
	if err != nil {
		return model.Config{}, errors.Wrapf(ErrInvalidConfig, "git_flags: %v", err)
	}
	return mapInfraConfigToAppConfig(infraConfig, gitFlags), nil
}

func newValidator() *validator.Validate {
	validate := validator.New()
	_ = validate.RegisterValidation("remote_name", func(fl validator.FieldLevel) bool {
		return remoteName.MatchString(fl.Field().String())
	})
	return validate
}

func mapInfraConfigToAppConfig(config Config, gitFlags []string) model.Config {
	level := config.Level
	if level == "" {
		level = config.DeploymentRemoteName
	}
	gitDir := config.GitDir
	if gitDir == "" {
		gitDir = config.Target
	}
	gitWorkTree := config.GitWorkTree
	if gitWorkTree == "" {
		gitWorkTree = gitDir
	}
	return model.Config{
		Level:                level,
		TargetDir:            config.Target,
		RemoteName:           config.DeploymentRemoteName,
		GitDir:               gitDir,
		GitWorkTree:          gitWorkTree,
		GitFlags:             gitFlags,
		LocalChangesStrategy: config.LocallyModifiedFileStrategy,
		TagStrategy:          config.TagStrategy,
		DeploymentStrategy:   config.DeploymentStrategy,
		PreDeploymentScript:  config.PreDeploymentScript,
		PostDeploymentScript: config.PostDeploymentScript,
		ScriptElevation:      config.ScriptElevation,
		Testing:              config.Testing,
		Verbose:              config.Verbose,
	}
}
