package fixtureconfig

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/tss-calculator/deployhook/pkg/deployment/infrastructure/command"
)

type Expectation struct {
	Command string `yaml:"command"`
	Return  string `yaml:"return"`
}

type Config struct {
	Expectations []Expectation `yaml:"expectations"`
}

// Load reads the command expectations replayed in testing mode.
func Load(path string) ([]command.Expectation, error) {
	configBody, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read fixture file: %v", path)
	}
	var infraConfig Config
	err = yaml.Unmarshal(configBody, &infraConfig)
	if err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal fixtures")
	}
	return mapInfraConfigToExpectations(infraConfig), nil
}

func mapInfraConfigToExpectations(config Config) []command.Expectation {
	expectations := make([]command.Expectation, 0, len(config.Expectations))
	for _, expectation := range config.Expectations {
		if expectation.Command == "" {
			continue
		}
		expectations = append(expectations, command.Expectation{
			Command: expectation.Command,
			Return:  expectation.Return,
		})
	}
	return expectations
}
