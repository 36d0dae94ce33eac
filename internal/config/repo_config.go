package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/sevigo/gitdocify/internal/core"
)

// RepoConfigFile is read from the root of the scanned repository.
const RepoConfigFile = ".gitdocify.yml"

var (
	ErrConfigNotFound = errors.New("config file not found")
	ErrConfigParsing  = errors.New("config parsing failed")
)

// LoadRepoConfig loads and parses the .gitdocify.yml file from a repository path.
// A missing file yields the defaults together with ErrConfigNotFound.
func LoadRepoConfig(repoPath string) (*core.RepoConfig, error) {
	configPath := filepath.Join(repoPath, RepoConfigFile)
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return core.DefaultRepoConfig(), ErrConfigNotFound
		}
		return nil, fmt.Errorf("failed to read %s: %w", RepoConfigFile, err)
	}

	config := core.DefaultRepoConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfigParsing, err)
	}
	return config, nil
}

// ApplyRepoConfig merges per-repository settings into the scan settings.
// Repository exclusions are added to, not substituted for, the configured ones.
func (c AnalysisConfig) ApplyRepoConfig(rc *core.RepoConfig) AnalysisConfig {
	if rc == nil {
		return c
	}
	out := c
	out.Exclude = append(append([]string{}, c.Exclude...), rc.Exclude...)
	if rc.IncludeTests != nil {
		out.IncludeTests = *rc.IncludeTests
	}
	return out
}
