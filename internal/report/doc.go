// Package report provides the reporting collaborators of a guard.Guard.
//
// Log writes each fault to the structured logger, Bayes ships faults in
// batches to the external gRPC fault sink and Journal keeps them in a local
// SQLite database for the faults command. Multi fans out to several
// reporters and Throttle suppresses repeats of the same fault.
package report
