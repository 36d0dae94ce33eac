// Package core defines the data structures shared between the codebase scanner
// and the document generator. Values in this package are produced once by the
// scanner and treated as read-only afterwards.
package core

// Language is a language tag derived from a file extension.
type Language string

// LanguageUnknown is returned for extensions that are not in the language table.
const LanguageUnknown Language = "unknown"

// FileType is the coarse classification assigned to each analyzed file.
type FileType string

const (
	FileTypeSource        FileType = "source"
	FileTypeTest          FileType = "test"
	FileTypeDocumentation FileType = "documentation"
	FileTypeConfiguration FileType = "configuration"
	FileTypeUnknown       FileType = "unknown"
)

// Ecosystem names a dependency-management family such as "python" or "javascript".
type Ecosystem string

const (
	EcosystemPython     Ecosystem = "python"
	EcosystemJavaScript Ecosystem = "javascript"
	EcosystemGo         Ecosystem = "go"
	EcosystemRust       Ecosystem = "rust"
)

// FileRecord holds the structural facts extracted from a single eligible file.
type FileRecord struct {
	Path      string   `json:"path"`
	Name      string   `json:"name"`
	Extension string   `json:"extension"`
	Language  Language `json:"language"`
	Size      int      `json:"size"`
	Lines     int      `json:"lines"`
	Content   string   `json:"content,omitempty"`
	Type      FileType `json:"type"`
	Imports   []string `json:"imports"`
	Classes   []string `json:"classes"`
	Functions []string `json:"functions"`
}

// VCSInfo describes the git checkout the scanned root belongs to.
type VCSInfo struct {
	HeadSHA   string `json:"head_sha,omitempty"`
	Branch    string `json:"branch,omitempty"`
	RemoteURL string `json:"remote_url,omitempty"`
}

// ProjectInfo summarizes the eligible files of a project.
type ProjectInfo struct {
	Name       string           `json:"name"`
	Path       string           `json:"path"`
	TotalFiles int              `json:"total_files"`
	TotalLines int              `json:"total_lines"`
	Languages  map[Language]int `json:"languages"`
	VCS        *VCSInfo         `json:"vcs,omitempty"`
}

// DependencyManifest maps an ecosystem to the dependencies declared for it.
type DependencyManifest map[Ecosystem][]string

// ConfigFileEntry is a root-level configuration file with a bounded content preview.
type ConfigFileEntry struct {
	Name    string `json:"name"`
	Path    string `json:"path"`
	Content string `json:"content"`
}

// CodebaseAnalysis is the aggregate produced by a single scan.
type CodebaseAnalysis struct {
	ProjectInfo  ProjectInfo        `json:"project_info"`
	Structure    DirectoryTree      `json:"structure"`
	Files        []FileRecord       `json:"files"`
	Dependencies DependencyManifest `json:"dependencies"`
	Readme       *string            `json:"readme"`
	ConfigFiles  []ConfigFileEntry  `json:"config_files"`
	Diagnostics  []Diagnostic       `json:"diagnostics,omitempty"`
}

// Skipped returns how many files or directories were left out of the analysis
// because of a recoverable failure or a size limit.
func (a *CodebaseAnalysis) Skipped() int {
	n := 0
	for _, d := range a.Diagnostics {
		if d.Kind.skipsInput() {
			n++
		}
	}
	return n
}

// FilesOfType returns the records classified as t, in analysis order.
func (a *CodebaseAnalysis) FilesOfType(t FileType) []FileRecord {
	var out []FileRecord
	for _, f := range a.Files {
		if f.Type == t {
			out = append(out, f)
		}
	}
	return out
}

// WithoutContent returns a shallow copy of the analysis whose file records
// carry no raw content. It is used when the aggregate is printed or embedded
// in prompts.
func (a *CodebaseAnalysis) WithoutContent() *CodebaseAnalysis {
	cp := *a
	cp.Files = make([]FileRecord, len(a.Files))
	for i, f := range a.Files {
		f.Content = ""
		cp.Files[i] = f
	}
	return &cp
}
