package shared

import "fmt"

var (
	// Configuration errors
	ErrMissingCredentials = fmt.Errorf("missing credentials")
	ErrInvalidCredentials = fmt.Errorf("invalid credentials")

	// Authentication errors
	ErrAuthFailed       = fmt.Errorf("authentication failed")
	ErrNotAuthenticated = fmt.Errorf("not authenticated")
	ErrTimeout          = fmt.Errorf("operation timed out")

	// API and storage errors
	ErrAPIRequest      = fmt.Errorf("API request failed")
	ErrSnapshotMissing = fmt.Errorf("snapshot object not found")
	ErrInvalidSnapshot = fmt.Errorf("invalid snapshot body")
)
