// File: api/schemas/runlog.go
// Description: The ordered per-run diagnostic log returned alongside every
// conversion result. It is a plain value owned by a single run, never shared
// mutable state, so concurrent conversions need no locking.

package schemas

import "time"

// LogLevel classifies run log entries.
type LogLevel string

const (
	LevelInfo    LogLevel = "info"
	LevelSuccess LogLevel = "success"
	LevelWarning LogLevel = "warning"
	LevelError   LogLevel = "error"
	LevelElement LogLevel = "element"
)

// ElementStatus summarizes the health of a single converted element.
type ElementStatus string

const (
	StatusOK      ElementStatus = "ok"
	StatusWarning ElementStatus = "warning" // tiny element or possible text loss
	StatusError   ElementStatus = "error"   // out of bounds after scaling
)

// ElementDiagnostic carries per-node before/after geometry for element-level
// log entries.
type ElementDiagnostic struct {
	ID     string        `json:"id"`
	Tag    string        `json:"tag"`
	Before Box           `json:"before"`
	After  Box           `json:"after"`
	Status ElementStatus `json:"status"`
	Notes  string        `json:"notes,omitempty"`
}

// LogEvent is one ordered entry of the run log.
type LogEvent struct {
	Level     LogLevel           `json:"level"`
	Message   string             `json:"message"`
	Timestamp time.Time          `json:"timestamp"`
	Element   *ElementDiagnostic `json:"element,omitempty"`
}

// RunLog accumulates the structured events of one conversion run.
type RunLog struct {
	RunID  string     `json:"run_id"`
	Events []LogEvent `json:"events"`
}

// NewRunLog creates an empty log for the given run.
func NewRunLog(runID string) *RunLog {
	return &RunLog{RunID: runID}
}

func (l *RunLog) append(level LogLevel, msg string, diag *ElementDiagnostic) {
	if l == nil {
		return
	}
	l.Events = append(l.Events, LogEvent{
		Level:     level,
		Message:   msg,
		Timestamp: time.Now(),
		Element:   diag,
	})
}

// Info records an informational entry.
func (l *RunLog) Info(msg string) { l.append(LevelInfo, msg, nil) }

// Success records a success entry.
func (l *RunLog) Success(msg string) { l.append(LevelSuccess, msg, nil) }

// Warning records a warning entry.
func (l *RunLog) Warning(msg string) { l.append(LevelWarning, msg, nil) }

// Error records an error entry.
func (l *RunLog) Error(msg string) { l.append(LevelError, msg, nil) }

// Element records a per-element diagnostic entry.
func (l *RunLog) Element(msg string, diag ElementDiagnostic) {
	l.append(LevelElement, msg, &diag)
}

// Count returns the number of entries at the given level.
func (l *RunLog) Count(level LogLevel) int {
	n := 0
	for _, e := range l.Events {
		if e.Level == level {
			n++
		}
	}
	return n
}
