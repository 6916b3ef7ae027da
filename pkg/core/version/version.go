// ============================================================================
// boundary - Fehlergrenzen fuer mDW-Oberflaechen
// ============================================================================
//
// Package:     version
// Description: Central version management
// Author:      Mike Stoffels
// Created:     2025-12-06
// License:     MIT
// ============================================================================

package version

// Version constants
const (
	// Application version
	Platform = "1.0.0"

	// Version of the fault report payload sent to the sink
	ReportSchema = "1.0.0"
)

// Build metadata, set via -ldflags
var (
	GitCommit = "development"
	BuildDate = "unknown"
)

// ComponentVersion returns the version for a given component name
func ComponentVersion(name string) string {
	switch name {
	case "report", "report-schema":
		return ReportSchema
	default:
		return Platform
	}
}
