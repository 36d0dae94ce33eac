package core

// RepoConfig represents the structure of the .gitdocify.yml file.
type RepoConfig struct {
	// Extra gitignore-style exclusion patterns.
	// Example: ["docs/generated/**", "*.pb.go"]
	Exclude []string `yaml:"exclude"`

	// Overrides the include-tests setting when present.
	IncludeTests *bool `yaml:"include_tests"`

	// Custom instructions appended to every generation prompt.
	CustomInstructions []string `yaml:"custom_instructions"`

	// Restricts generation to the named sections. Empty means all sections.
	Sections []string `yaml:"sections"`
}

// DefaultRepoConfig returns a config with default values.
func DefaultRepoConfig() *RepoConfig {
	return &RepoConfig{
		Exclude:            []string{},
		CustomInstructions: []string{},
		Sections:           []string{},
	}
}
