package core

// Severity grades a diagnostic.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
)

// DiagnosticKind identifies what went wrong (or what was skipped) during a scan.
type DiagnosticKind string

const (
	KindLargeFile     DiagnosticKind = "large_file"
	KindReadFailed    DiagnosticKind = "read_failed"
	KindDecodeFailed  DiagnosticKind = "decode_failed"
	KindParseFailed   DiagnosticKind = "parse_failed"
	KindDirUnreadable DiagnosticKind = "dir_unreadable"
	KindVCSFailed     DiagnosticKind = "vcs_failed"
)

func (k DiagnosticKind) skipsInput() bool {
	switch k {
	case KindLargeFile, KindReadFailed, KindDecodeFailed, KindParseFailed, KindDirUnreadable:
		return true
	}
	return false
}

// Diagnostic records a recovered failure. The scan continues after every
// diagnostic; only the affected file or directory is left out.
type Diagnostic struct {
	Severity Severity       `json:"severity"`
	Kind     DiagnosticKind `json:"kind"`
	Path     string         `json:"path"`
	Message  string         `json:"message"`
}

// Reporter receives diagnostics as they happen. A nil Reporter is valid.
type Reporter func(Diagnostic)

// Report calls r when it is not nil.
func (r Reporter) Report(d Diagnostic) {
	if r != nil {
		r(d)
	}
}
