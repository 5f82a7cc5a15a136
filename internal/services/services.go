// package services defines interface LibraryService for reading a user's music library over HTTP
package services

import (
	"context"
	"iter"

	"golang.org/x/oauth2"
)

// LibraryService defines the interface for a music streaming provider exposing the user's saved-track library.
type LibraryService interface {
	// Authenticate installs the given OAuth token and prepares the authenticated HTTP client.
	Authenticate(ctx context.Context, token *oauth2.Token) error

	// AuthURL returns the authorization URL the user must visit to grant access.
	AuthURL(state string) string

	// OAuthConfig returns the underlying OAuth2 configuration for the callback exchange.
	OAuthConfig() *oauth2.Config

	// SavedTracks returns the user's saved-track library as a lazy paginated
	// sequence in the API's default order. The sequence is finite and not
	// restartable; iteration stops at the first error, which is yielded as
	// the final element.
	SavedTracks(ctx context.Context) iter.Seq2[SavedTrack, error]

	// Name returns the name of the service (e.g., "Spotify")
	Name() string
}
