// Static validation for Run values. Checks are performed over a decoded Run
// and returned as a list of issues (errors and warnings) that callers can
// surface in the CLI or in tests; the config itself is never mutated.
package config

import (
	"fmt"
	"strings"
)

// IssueSeverity represents the severity of a configuration issue.
type IssueSeverity string

const (
	// SeverityError indicates an issue that should block execution.
	SeverityError IssueSeverity = "error"
	// SeverityWarning indicates an issue worth surfacing that does not block
	// execution.
	SeverityWarning IssueSeverity = "warning"
)

// Issue describes a single validation finding. Path is a dotted path into
// the config (e.g. "source.kaggle.dataset").
type Issue struct {
	Severity IssueSeverity
	Path     string
	Message  string
}

// Error implements the error interface so an Issue can be treated as a
// single error where needed.
func (i Issue) Error() string {
	return fmt.Sprintf("%s at %s: %s", i.Severity, i.Path, i.Message)
}

// ValidateRun performs static validation of a Run and returns all findings.
// Callers decide whether warnings are fatal.
func ValidateRun(r Run) []Issue {
	var issues []Issue

	if strings.TrimSpace(r.Job) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "job",
			Message:  "job must not be empty; it labels metrics and log lines",
		})
	}

	issues = append(issues, validateSource(r.Source)...)

	if strings.TrimSpace(r.Storage.DB.Path) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "storage.db.path",
			Message:  "database path must not be empty",
		})
	}
	if strings.TrimSpace(r.Report.Path) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "report.path",
			Message:  "report SQL path must not be empty",
		})
	}

	if r.HTTP.TimeoutSeconds < 0 {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "http.timeout_seconds",
			Message:  "timeout must not be negative",
		})
	}
	if r.HTTP.MaxRetries < 0 {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "http.max_retries",
			Message:  "max_retries must not be negative",
		})
	}

	return issues
}

func validateSource(s Source) []Issue {
	var issues []Issue

	kind := strings.TrimSpace(s.Kind)
	if kind == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "source.kind",
			Message:  "source.kind must not be empty",
		})
		return issues
	}

	switch kind {
	case "kaggle":
		if strings.TrimSpace(s.Kaggle.Dataset) == "" {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     "source.kaggle.dataset",
				Message:  "kaggle source requires a dataset reference (owner/name)",
			})
		}
		if strings.TrimSpace(s.Kaggle.File) == "" {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     "source.kaggle.file",
				Message:  "kaggle source requires the expected CSV file name",
			})
		}
	case "file":
		if strings.TrimSpace(s.File.Path) == "" {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     "source.file.path",
				Message:  "file source requires a non-empty path",
			})
		}
	default:
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Path:     "source.kind",
			Message:  fmt.Sprintf("unknown source kind %q; ensure a matching implementation exists", kind),
		})
	}

	return issues
}
