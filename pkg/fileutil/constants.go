// Package fileutil provides file-related utility functions and constants.
package fileutil

// Standard file permission constants
const (
	// ReadWriteUserPermission represents read/write permissions for the file owner only (0600 in octal)
	ReadWriteUserPermission = 0o600
	// ReadWriteExecuteUserReadExecuteOthers is the mode for created directories (0755 in octal)
	ReadWriteExecuteUserReadExecuteOthers = 0o755
)
