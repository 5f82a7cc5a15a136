package shared

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/goccy/go-json"
)

// CredentialsFile is the default location of the Spotify API credentials, relative to the working directory.
const CredentialsFile = "credentials.json"

//go:embed credentials.example.json
var exampleCredentials []byte

// Credentials holds the Spotify API client identifiers loaded from [CredentialsFile].
//
// Held in memory for the lifetime of the run; never written back or logged.
type Credentials struct {
	SpotifyClientID     string `json:"spotify_client_id"`
	SpotifyClientSecret string `json:"spotify_client_secret"`
}

// LoadCredentials reads and parses the credentials file at the specified path.
//
// Both fields are required; a missing file, malformed JSON, or an empty field
// is an error and the caller is expected to abort the run.
func LoadCredentials(path string) (*Credentials, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read %s: %v", ErrMissingCredentials, path, err)
	}

	var creds Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return nil, fmt.Errorf("%w: failed to parse %s: %v", ErrInvalidCredentials, path, err)
	}

	if creds.SpotifyClientID == "" {
		return nil, fmt.Errorf("%w: spotify_client_id is required", ErrInvalidCredentials)
	}
	if creds.SpotifyClientSecret == "" {
		return nil, fmt.Errorf("%w: spotify_client_secret is required", ErrInvalidCredentials)
	}

	return &creds, nil
}

// CreateCredentialsFile creates a credentials file at the specified path using the embedded template.
func CreateCredentialsFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("credentials file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleCredentials, 0600); err != nil {
		return fmt.Errorf("failed to write credentials file: %w", err)
	}

	return nil
}
