// Package ports defines the interfaces (driven and driving ports)
// for the pomo application following hexagonal architecture principles.
// These interfaces define the contracts between the session core and
// external infrastructure.
package ports

import (
	"context"
)

// GitInfo holds git repository context information.
type GitInfo struct {
	Branch     string
	Commit     string
	IsClean    bool
	Repository string
}

// GitDetector defines the interface for git context detection.
// This is a driven port (implemented by adapters).
type GitDetector interface {
	// Detect scans the given directory for git context.
	Detect(ctx context.Context, workingDir string) (*GitInfo, error)

	// IsAvailable checks if git detection can run.
	IsAvailable() bool
}
