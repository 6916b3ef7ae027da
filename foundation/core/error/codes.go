// File: codes.go
// Title: Error Code Definitions
// Description: Standardized error codes for boundary. Codes classify errors
//              for logging and for the fault journal.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-19

package error

// Code represents a structured error code for categorizing errors
type Code string

const (
	// Generic codes
	CodeUnknown      Code = "UNKNOWN"
	CodeInternal     Code = "INTERNAL"
	CodeNotFound     Code = "NOT_FOUND"
	CodeInvalidInput Code = "INVALID_INPUT"
	CodeTimeout      Code = "TIMEOUT"

	// Render boundary
	CodeRenderFault  Code = "RENDER_FAULT"
	CodeReportFailed Code = "REPORT_FAILED"

	// Storage
	CodeJournalError Code = "JOURNAL_ERROR"

	// Service and network
	CodeServiceUnavailable Code = "SERVICE_UNAVAILABLE"
	CodeConnectionFailed   Code = "CONNECTION_FAILED"

	// Configuration
	CodeConfigError   Code = "CONFIG_ERROR"
	CodeMissingConfig Code = "MISSING_CONFIG"
	CodeInvalidConfig Code = "INVALID_CONFIG"
)

// String returns the string representation of the error code
func (c Code) String() string {
	return string(c)
}

// IsRetryable reports whether an operation failing with this code may
// succeed when repeated unchanged.
func (c Code) IsRetryable() bool {
	switch c {
	case CodeTimeout, CodeServiceUnavailable, CodeConnectionFailed, CodeReportFailed:
		return true
	default:
		return false
	}
}
