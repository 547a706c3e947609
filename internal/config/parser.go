package config

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	dserrors "github.com/alexisbeaulieu97/dsfile/pkg/errors"
)

var yamlLineRegex = regexp.MustCompile(`line (\d+)`)

// LoadProfile reads a connection profile file from disk and returns the
// resulting model. The profile is not validated on its own; validation runs
// on the merged parameter set.
func LoadProfile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, dserrors.NewParseError(path, 0, err)
	}

	var profile Profile
	if err := yaml.Unmarshal(data, &profile); err != nil {
		return nil, dserrors.NewParseError(path, extractLine(err), err)
	}

	return &profile, nil
}

func extractLine(err error) int {
	if err == nil {
		return 0
	}

	matches := yamlLineRegex.FindStringSubmatch(err.Error())
	if len(matches) != 2 {
		return 0
	}

	var line int
	_, scanErr := fmt.Sscanf(matches[1], "%d", &line)
	if scanErr != nil {
		return 0
	}

	return line
}
