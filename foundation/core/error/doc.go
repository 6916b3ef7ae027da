// Package error provides the structured error type used across boundary.
//
// Package: error
// Title: Structured Errors
// Description: Errors carry a code, a severity, free-form details and the
//              stack of the site that created them. They stay compatible with
//              errors.Is / errors.As through Unwrap.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-19
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with contextual errors
// - 2026-10-19 v0.2.0: Reduced to the codes used by the render boundary
//
// Usage:
//
//	import bderror "github.com/msto63/boundary/foundation/core/error"
//
//	err := bderror.Wrap(cause, "open fault journal").
//		WithCode(bderror.CodeJournalError).
//		WithDetail("path", path)
package error
