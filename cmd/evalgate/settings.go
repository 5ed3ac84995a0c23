package main

import (
	"fmt"

	"github.com/evalgate/evalgate/internal/projectconfig"
)

// loadProjectConfig resolves .evalgate.yaml from the working directory.
// Kept as a var so command tests can pin the config without chdir games.
var loadProjectConfig = func() (*projectconfig.ProjectConfig, error) {
	return projectconfig.Load(".")
}

// resolveSetting returns the flag value when set, falling back to the
// project config value.
func resolveSetting(flagVal, cfgVal, flagName, cfgKey string) (string, error) {
	if flagVal != "" {
		return flagVal, nil
	}
	if cfgVal != "" {
		return cfgVal, nil
	}
	return "", fmt.Errorf("--%s is required (or set %s in %s)", flagName, cfgKey, projectconfig.ConfigFileName)
}
