package prescan

import (
	"errors"
	"fmt"
	"io/fs"
	"regexp"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/tidwall/gjson"
	"golang.org/x/mod/modfile"

	"github.com/sevigo/gitdocify/internal/core"
)

// ManifestParser turns a manifest file into an ordered list of dependencies.
type ManifestParser func(name string, data []byte) ([]string, error)

// ManifestSource describes where an ecosystem declares its dependencies. The
// first candidate that exists and parses wins.
type ManifestSource struct {
	Ecosystem  core.Ecosystem
	Candidates []string
	Parse      ManifestParser
}

// DefaultManifestSources are checked in this order by ReadDependencies.
var DefaultManifestSources = []ManifestSource{
	{
		Ecosystem:  core.EcosystemPython,
		Candidates: []string{"requirements.txt", "pyproject.toml", "setup.py", "Pipfile"},
		Parse:      parsePythonManifest,
	},
	{
		Ecosystem:  core.EcosystemJavaScript,
		Candidates: []string{"package.json"},
		Parse:      parsePackageJSON,
	},
	{
		Ecosystem:  core.EcosystemGo,
		Candidates: []string{"go.mod"},
		Parse:      parseGoMod,
	},
	{
		Ecosystem:  core.EcosystemRust,
		Candidates: []string{"Cargo.toml"},
		Parse:      parseCargoToml,
	},
}

// ReadDependencies reads the first matching manifest of every source. Missing
// ecosystems are simply absent from the result.
func ReadDependencies(fsys fs.FS, sources []ManifestSource, report core.Reporter) core.DependencyManifest {
	deps := make(core.DependencyManifest)
	for _, src := range sources {
		list, _, ok := firstCandidate(fsys, src.Candidates, src.Parse, report)
		if !ok {
			continue
		}
		deps[src.Ecosystem] = list
	}
	return deps
}

func parsePythonManifest(name string, data []byte) ([]string, error) {
	switch name {
	case "requirements.txt":
		return parseRequirements(data), nil
	case "pyproject.toml":
		return parsePyProject(data)
	case "setup.py":
		return parseSetupPy(data), nil
	case "Pipfile":
		return parsePipfile(data)
	}
	return nil, fmt.Errorf("no python parser for %s", name)
}

func parseRequirements(data []byte) []string {
	deps := []string{}
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		deps = append(deps, line)
	}
	return deps
}

type pyProject struct {
	Project struct {
		Dependencies []string `toml:"dependencies"`
	} `toml:"project"`
	Tool struct {
		Poetry struct {
			Dependencies    map[string]any `toml:"dependencies"`
			DevDependencies map[string]any `toml:"dev-dependencies"`
			Group           map[string]struct {
				Dependencies map[string]any `toml:"dependencies"`
			} `toml:"group"`
		} `toml:"poetry"`
	} `toml:"tool"`
}

func parsePyProject(data []byte) ([]string, error) {
	var doc pyProject
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse pyproject.toml: %w", err)
	}
	deps := append([]string{}, doc.Project.Dependencies...)
	poetry := doc.Tool.Poetry
	deps = append(deps, sortedKeys(poetry.Dependencies, "python")...)
	deps = append(deps, sortedKeys(poetry.DevDependencies)...)
	groups := make([]string, 0, len(poetry.Group))
	for g := range poetry.Group {
		groups = append(groups, g)
	}
	sort.Strings(groups)
	for _, g := range groups {
		deps = append(deps, sortedKeys(poetry.Group[g].Dependencies)...)
	}
	return deps, nil
}

var (
	setupRequiresRe = regexp.MustCompile(`(?s)install_requires\s*=\s*\[(.*?)\]`)
	quotedRe        = regexp.MustCompile(`['"]([^'"]+)['"]`)
)

func parseSetupPy(data []byte) []string {
	deps := []string{}
	m := setupRequiresRe.FindSubmatch(data)
	if m == nil {
		return deps
	}
	for _, q := range quotedRe.FindAllSubmatch(m[1], -1) {
		deps = append(deps, string(q[1]))
	}
	return deps
}

type pipfile struct {
	Packages    map[string]any `toml:"packages"`
	DevPackages map[string]any `toml:"dev-packages"`
}

func parsePipfile(data []byte) ([]string, error) {
	var doc pipfile
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse Pipfile: %w", err)
	}
	return append(sortedKeys(doc.Packages), sortedKeys(doc.DevPackages)...), nil
}

var errInvalidJSON = errors.New("invalid JSON")

func parsePackageJSON(_ string, data []byte) ([]string, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("failed to parse package.json: %w", errInvalidJSON)
	}
	deps := []string{}
	for _, field := range []string{"dependencies", "devDependencies"} {
		gjson.GetBytes(data, field).ForEach(func(key, _ gjson.Result) bool {
			deps = append(deps, key.String())
			return true
		})
	}
	return deps, nil
}

func parseGoMod(name string, data []byte) ([]string, error) {
	f, err := modfile.ParseLax(name, data, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to parse go.mod: %w", err)
	}
	deps := []string{}
	for _, r := range f.Require {
		if r.Indirect {
			continue
		}
		deps = append(deps, r.Mod.Path)
	}
	return deps, nil
}

type cargoManifest struct {
	Dependencies    map[string]any `toml:"dependencies"`
	DevDependencies map[string]any `toml:"dev-dependencies"`
}

func parseCargoToml(_ string, data []byte) ([]string, error) {
	var doc cargoManifest
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse Cargo.toml: %w", err)
	}
	return append(sortedKeys(doc.Dependencies), sortedKeys(doc.DevDependencies)...), nil
}

func sortedKeys(m map[string]any, skip ...string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		if contains(skip, k) {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
