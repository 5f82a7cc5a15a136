// Spotify API implementation of [LibraryService]
//
// Spotify API response types based on https://developer.spotify.com/documentation/web-api/reference/
package services

import (
	"context"
	"fmt"
	"iter"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"github.com/markaronin/likedsync/internal/shared"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
)

const (
	spotifyAuthURL  = "https://accounts.spotify.com/authorize"
	spotifyTokenURL = "https://accounts.spotify.com/api/token"
	spotifyBaseURL  = "https://api.spotify.com/v1"

	// RedirectURI is the redirect target registered with the Spotify application.
	RedirectURI = "http://localhost:8888/callback"

	// savedTracksPageSize is the maximum page size the /me/tracks endpoint allows.
	savedTracksPageSize = 50
)

// SpotifyArtist represents a Spotify artist.
type SpotifyArtist struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URI  string `json:"uri"`
}

// SpotifyAlbum represents a Spotify album.
type SpotifyAlbum struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Artists     []SpotifyArtist `json:"artists"`
	ReleaseDate string          `json:"release_date"`
	URI         string          `json:"uri"`
}

// SpotifyTrack represents a Spotify track.
type SpotifyTrack struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Artists    []SpotifyArtist `json:"artists"`
	Album      SpotifyAlbum    `json:"album"`
	DurationMS int             `json:"duration_ms"`
	URI        string          `json:"uri"`
}

// SavedTrack represents a track saved in the user's library.
//
// AddedAt is decoded from the API's RFC 3339 timestamp; a malformed value is
// a decode error at fetch time.
type SavedTrack struct {
	AddedAt time.Time    `json:"added_at"`
	Track   SpotifyTrack `json:"track"`
}

// SpotifyPaginatedTracks represents a paginated response of saved tracks.
type SpotifyPaginatedTracks struct {
	Items    []SavedTrack `json:"items"`
	Total    int          `json:"total"`
	Limit    int          `json:"limit"`
	Offset   int          `json:"offset"`
	Next     *string      `json:"next"`
	Previous *string      `json:"previous"`
}

// SpotifyService implements the [LibraryService] interface for Spotify API interactions.
//
// Uses [oauth2] for authentication; page fetches pass through a [rate.Limiter].
type SpotifyService struct {
	config     *oauth2.Config
	token      *oauth2.Token
	httpClient *http.Client
	limiter    *rate.Limiter
	baseURL    string
}

// NewSpotifyService creates a new Spotify service with the given API credentials.
//
// The requested scope is user-library-read only.
func NewSpotifyService(creds *shared.Credentials) (*SpotifyService, error) {
	if creds == nil || creds.SpotifyClientID == "" {
		return nil, fmt.Errorf("%w: missing spotify_client_id", shared.ErrMissingCredentials)
	}
	if creds.SpotifyClientSecret == "" {
		return nil, fmt.Errorf("%w: missing spotify_client_secret", shared.ErrMissingCredentials)
	}

	config := &oauth2.Config{
		ClientID:     creds.SpotifyClientID,
		ClientSecret: creds.SpotifyClientSecret,
		RedirectURL:  RedirectURI,
		Scopes:       []string{"user-library-read"},
		Endpoint: oauth2.Endpoint{
			AuthURL:  spotifyAuthURL,
			TokenURL: spotifyTokenURL,
		},
	}

	return &SpotifyService{
		config:     config,
		httpClient: http.DefaultClient,
		limiter:    rate.NewLimiter(rate.Every(200*time.Millisecond), 1),
		baseURL:    spotifyBaseURL,
	}, nil
}

// Authenticate installs the OAuth token obtained from the authorization flow.
func (s *SpotifyService) Authenticate(ctx context.Context, token *oauth2.Token) error {
	if token == nil || token.AccessToken == "" {
		return fmt.Errorf("%w: no access token", shared.ErrAuthFailed)
	}
	s.token = token
	s.httpClient = s.config.Client(ctx, token)
	return nil
}

func (s *SpotifyService) Name() string {
	return "Spotify"
}

// AuthURL returns the OAuth2 authorization URL for user login.
func (s *SpotifyService) AuthURL(state string) string {
	return s.config.AuthCodeURL(state)
}

// OAuthConfig returns the OAuth2 configuration for the callback exchange.
func (s *SpotifyService) OAuthConfig() *oauth2.Config {
	return s.config
}

// doRequest performs a GET request to the Spotify API.
//
// The bearer token is injected by the [oauth2] transport installed in
// Authenticate; no header is set here.
func (s *SpotifyService) doRequest(ctx context.Context, endpoint string, result interface{}) error {
	if s.token == nil {
		return fmt.Errorf("%w: call Authenticate first", shared.ErrNotAuthenticated)
	}

	apiURL := s.baseURL + endpoint

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: spotify API status %d", shared.ErrAPIRequest, resp.StatusCode)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// savedTracksPage retrieves one page of the user's saved tracks.
func (s *SpotifyService) savedTracksPage(ctx context.Context, limit, offset int) (*SpotifyPaginatedTracks, error) {
	if limit <= 0 || limit > savedTracksPageSize {
		limit = savedTracksPageSize
	}

	endpoint := fmt.Sprintf("/me/tracks?limit=%d&offset=%d", limit, offset)

	var page SpotifyPaginatedTracks
	if err := s.doRequest(ctx, endpoint, &page); err != nil {
		return nil, err
	}

	return &page, nil
}

// SavedTracks returns the saved-track library as a lazy paginated sequence.
//
// Pages are fetched on demand as the caller advances; each fetch waits on the
// service's rate limiter first. A transport or decode error ends the sequence
// with that error as the final element.
func (s *SpotifyService) SavedTracks(ctx context.Context) iter.Seq2[SavedTrack, error] {
	return func(yield func(SavedTrack, error) bool) {
		offset := 0
		for {
			if err := s.limiter.Wait(ctx); err != nil {
				yield(SavedTrack{}, err)
				return
			}

			page, err := s.savedTracksPage(ctx, savedTracksPageSize, offset)
			if err != nil {
				yield(SavedTrack{}, err)
				return
			}

			for _, item := range page.Items {
				if !yield(item, nil) {
					return
				}
			}

			if page.Next == nil {
				return
			}
			offset += savedTracksPageSize
		}
	}
}
