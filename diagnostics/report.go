package diagnostics

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Severity classifies a Report's importance (spec.md §6).
type Severity int

const (
	Hint Severity = iota
	Info
	Warning
	Error
)

func (s Severity) String() string {
	switch s {
	case Hint:
		return "hint"
	case Info:
		return "info"
	case Warning:
		return "warning"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

// Report is a single severity-tagged diagnostic (spec.md §6).
type Report struct {
	FileID        FileID
	Severity      Severity
	Code          string
	Message       string
	PrimarySpan   Span
	SecondarySpans []Span
	Notes         []string
}

// Reporter accumulates Reports across every pipeline stage. A single
// Reporter is threaded through the lexer, parser, analyzer, and type
// checker so the driver can render everything in one pass.
type Reporter struct {
	registry *Registry
	reports  []Report
	log      *zap.SugaredLogger
}

// NewReporter creates a Reporter bound to the given file registry. log may
// be nil, in which case a no-op logger is used.
func NewReporter(registry *Registry, log *zap.SugaredLogger) *Reporter {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Reporter{registry: registry, log: log}
}

// Add records a report and emits a debug trace line independent of the
// user-facing rendering path.
func (r *Reporter) Add(rep Report) {
	r.reports = append(r.reports, rep)
	r.log.Debugw("diagnostic",
		"severity", rep.Severity.String(),
		"code", rep.Code,
		"message", rep.Message,
		"pos", rep.PrimarySpan.Start.String(),
	)
}

// Errorf is a convenience for the common case of a single-position error
// report with a formatted message.
func (r *Reporter) Errorf(fileID FileID, code string, pos Position, format string, args ...any) {
	r.Add(Report{
		FileID:      fileID,
		Severity:    Error,
		Code:        code,
		Message:     fmt.Sprintf(format, args...),
		PrimarySpan: Span{Start: pos, End: pos},
	})
}

// Reports returns all accumulated reports in insertion order.
func (r *Reporter) Reports() []Report {
	return r.reports
}

// HasErrors reports whether any accumulated Report is Error severity.
func (r *Reporter) HasErrors() bool {
	for _, rep := range r.reports {
		if rep.Severity == Error {
			return true
		}
	}
	return false
}

// Render formats rep the way the teacher's compiler errors are formatted:
// a header line, the offending source line, and a caret pointing at the
// column. color enables ANSI highlighting for terminal output.
func (r *Reporter) Render(rep Report, color bool) string {
	var sb strings.Builder

	file := r.registry.File(rep.FileID)
	name := "<unknown>"
	if file != nil {
		name = file.Name
	}

	fmt.Fprintf(&sb, "%s[%s]: %s\n", rep.Severity.String(), rep.Code, rep.Message)
	fmt.Fprintf(&sb, "  --> %s:%d:%d\n", name, rep.PrimarySpan.Start.Line, rep.PrimarySpan.Start.Column)

	if file != nil {
		line := file.Line(rep.PrimarySpan.Start.Line)
		if line != "" {
			lineNum := fmt.Sprintf("%4d | ", rep.PrimarySpan.Start.Line)
			sb.WriteString(lineNum)
			sb.WriteString(line)
			sb.WriteString("\n")
			sb.WriteString(strings.Repeat(" ", len(lineNum)+rep.PrimarySpan.Start.Column-1))
			if color {
				sb.WriteString("\033[1;31m")
			}
			sb.WriteString("^")
			if color {
				sb.WriteString("\033[0m")
			}
			sb.WriteString("\n")
		}
	}

	for _, note := range rep.Notes {
		fmt.Fprintf(&sb, "  note: %s\n", note)
	}

	return sb.String()
}

// RenderAll renders every accumulated report, in order.
func (r *Reporter) RenderAll(color bool) string {
	var sb strings.Builder
	for _, rep := range r.reports {
		sb.WriteString(r.Render(rep, color))
	}
	return sb.String()
}
