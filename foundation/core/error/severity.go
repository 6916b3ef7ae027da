// File: severity.go
// Title: Error Severity Levels
// Description: Severity levels used to pick the log level of an error.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-19

package error

// Severity represents the severity level of an error
type Severity int

const (
	// SeverityLow indicates a minor error that doesn't affect core functionality
	SeverityLow Severity = iota

	// SeverityMedium indicates an error that affects functionality but has workarounds
	SeverityMedium

	// SeverityHigh indicates a serious error that significantly impacts functionality
	SeverityHigh

	// SeverityCritical indicates a critical error that makes the system unusable
	SeverityCritical
)

// String returns the string representation of the severity level
func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "low"
	case SeverityMedium:
		return "medium"
	case SeverityHigh:
		return "high"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// ShouldAlert returns true if this severity level should trigger alerts
func (s Severity) ShouldAlert() bool {
	return s >= SeverityHigh
}

// GetSeverityFromCode determines appropriate severity level based on error code
func GetSeverityFromCode(code Code) Severity {
	switch code {
	case CodeRenderFault, CodeJournalError:
		return SeverityHigh
	case CodeServiceUnavailable, CodeConnectionFailed, CodeReportFailed, CodeTimeout:
		return SeverityMedium
	case CodeInvalidInput, CodeNotFound:
		return SeverityLow
	case CodeConfigError, CodeMissingConfig, CodeInvalidConfig:
		return SeverityHigh
	default:
		return SeverityMedium
	}
}
