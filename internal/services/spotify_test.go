package services

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/markaronin/likedsync/internal/shared"
	"golang.org/x/oauth2"
)

func testCredentials() *shared.Credentials {
	return &shared.Credentials{
		SpotifyClientID:     "test_client_id",
		SpotifyClientSecret: "test_client_secret",
	}
}

func TestSpotifyService(t *testing.T) {
	t.Run("NewSpotifyService", func(t *testing.T) {
		t.Run("With Valid Credentials", func(t *testing.T) {
			srv, err := NewSpotifyService(testCredentials())
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			if srv.Name() != "Spotify" {
				t.Errorf("expected service name 'Spotify', got %s", srv.Name())
			}

			if srv.config.RedirectURL != RedirectURI {
				t.Errorf("expected redirect URI %s, got %s", RedirectURI, srv.config.RedirectURL)
			}

			if len(srv.config.Scopes) != 1 || srv.config.Scopes[0] != "user-library-read" {
				t.Errorf("expected scope user-library-read only, got %v", srv.config.Scopes)
			}
		})

		t.Run("Missing Client ID", func(t *testing.T) {
			_, err := NewSpotifyService(&shared.Credentials{SpotifyClientSecret: "s"})
			if err == nil {
				t.Error("expected error for missing client id")
			}
		})

		t.Run("Missing Client Secret", func(t *testing.T) {
			_, err := NewSpotifyService(&shared.Credentials{SpotifyClientID: "i"})
			if err == nil {
				t.Error("expected error for missing client secret")
			}
		})

		t.Run("Nil Credentials", func(t *testing.T) {
			if _, err := NewSpotifyService(nil); err == nil {
				t.Error("expected error for nil credentials")
			}
		})
	})

	t.Run("AuthURL", func(t *testing.T) {
		srv, err := NewSpotifyService(testCredentials())
		if err != nil {
			t.Fatalf("failed to create service: %v", err)
		}

		authURL := srv.AuthURL("test_state")
		if !strings.Contains(authURL, "accounts.spotify.com") {
			t.Error("auth URL should contain Spotify domain")
		}
		if !strings.Contains(authURL, "test_client_id") {
			t.Error("auth URL should contain client_id")
		}
		if !strings.Contains(authURL, "test_state") {
			t.Error("auth URL should contain state")
		}
		if !strings.Contains(authURL, "user-library-read") {
			t.Error("auth URL should request the library scope")
		}
	})

	t.Run("Authenticate", func(t *testing.T) {
		srv, err := NewSpotifyService(testCredentials())
		if err != nil {
			t.Fatalf("failed to create service: %v", err)
		}

		t.Run("With Token", func(t *testing.T) {
			token := &oauth2.Token{AccessToken: "test_access_token"}
			if err := srv.Authenticate(context.Background(), token); err != nil {
				t.Errorf("expected no error, got %v", err)
			}
			if srv.token == nil || srv.token.AccessToken != "test_access_token" {
				t.Error("expected token to be installed")
			}
		})

		t.Run("Nil Token", func(t *testing.T) {
			if err := srv.Authenticate(context.Background(), nil); err == nil {
				t.Error("expected error for nil token")
			}
		})
	})

	t.Run("SavedTracks", func(t *testing.T) {
		t.Run("Not Authenticated", func(t *testing.T) {
			srv, err := NewSpotifyService(testCredentials())
			if err != nil {
				t.Fatalf("failed to create service: %v", err)
			}

			var seqErr error
			for _, err := range srv.SavedTracks(context.Background()) {
				seqErr = err
			}
			if seqErr == nil {
				t.Error("expected error when not authenticated")
			}
		})

		t.Run("Drains All Pages", func(t *testing.T) {
			var requests []string
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				requests = append(requests, r.URL.RawQuery)

				offset := r.URL.Query().Get("offset")
				w.Header().Set("Content-Type", "application/json")
				switch offset {
				case "0":
					next := "https://api.spotify.com/v1/me/tracks?offset=50&limit=50"
					fmt.Fprintf(w, `{"items":[
						{"added_at":"2024-03-01T12:00:00Z","track":{"name":"First","artists":[{"name":"A"}],"album":{"name":"One"}}},
						{"added_at":"2024-03-02T12:00:00Z","track":{"name":"Second","artists":[{"name":"B"}],"album":{"name":"Two"}}}
					],"total":3,"limit":50,"offset":0,"next":"%s","previous":null}`, next)
				case "50":
					fmt.Fprint(w, `{"items":[
						{"added_at":"2024-03-03T12:00:00Z","track":{"name":"Third","artists":[{"name":"C"}],"album":{"name":"Three"}}}
					],"total":3,"limit":50,"offset":50,"next":null,"previous":null}`)
				default:
					http.Error(w, "unexpected offset", http.StatusBadRequest)
				}
			}))
			defer ts.Close()

			srv := authenticatedService(t, ts.URL)

			var names []string
			for track, err := range srv.SavedTracks(context.Background()) {
				if err != nil {
					t.Fatalf("unexpected sequence error: %v", err)
				}
				names = append(names, track.Track.Name)
			}

			if len(names) != 3 {
				t.Fatalf("expected 3 tracks, got %d", len(names))
			}
			if names[0] != "First" || names[1] != "Second" || names[2] != "Third" {
				t.Errorf("unexpected track order: %v", names)
			}
			if len(requests) != 2 {
				t.Errorf("expected 2 page requests, got %d", len(requests))
			}
		})

		t.Run("Lazy Page Fetch", func(t *testing.T) {
			var pages int
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				pages++
				w.Header().Set("Content-Type", "application/json")
				next := "https://api.spotify.com/v1/me/tracks?offset=50&limit=50"
				fmt.Fprintf(w, `{"items":[{"added_at":"2024-03-01T12:00:00Z","track":{"name":"Only","artists":[],"album":{"name":""}}}],"total":100,"limit":50,"offset":0,"next":"%s","previous":null}`, next)
			}))
			defer ts.Close()

			srv := authenticatedService(t, ts.URL)

			for _, err := range srv.SavedTracks(context.Background()) {
				if err != nil {
					t.Fatalf("unexpected sequence error: %v", err)
				}
				break // stop after the first item
			}

			if pages != 1 {
				t.Errorf("breaking early should fetch one page, got %d", pages)
			}
		})

		t.Run("Bearer Token From OAuth Client", func(t *testing.T) {
			var gotAuth string
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotAuth = r.Header.Get("Authorization")
				w.Header().Set("Content-Type", "application/json")
				fmt.Fprint(w, `{"items":[],"total":0,"limit":50,"offset":0,"next":null,"previous":null}`)
			}))
			defer ts.Close()

			srv, err := NewSpotifyService(testCredentials())
			if err != nil {
				t.Fatalf("failed to create service: %v", err)
			}
			if err := srv.Authenticate(context.Background(), &oauth2.Token{AccessToken: "test_access_token"}); err != nil {
				t.Fatalf("failed to authenticate: %v", err)
			}
			srv.baseURL = ts.URL

			for _, err := range srv.SavedTracks(context.Background()) {
				if err != nil {
					t.Fatalf("unexpected sequence error: %v", err)
				}
			}

			if gotAuth != "Bearer test_access_token" {
				t.Errorf("expected bearer token from the oauth2 transport, got %q", gotAuth)
			}
		})

		t.Run("Transport Error Ends Sequence", func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "rate limited", http.StatusTooManyRequests)
			}))
			defer ts.Close()

			srv := authenticatedService(t, ts.URL)

			var count int
			var seqErr error
			for _, err := range srv.SavedTracks(context.Background()) {
				if err != nil {
					seqErr = err
					continue
				}
				count++
			}

			if seqErr == nil {
				t.Error("expected transport error to surface")
			}
			if count != 0 {
				t.Errorf("expected no tracks before the error, got %d", count)
			}
		})

		t.Run("Malformed Timestamp Is Decode Error", func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				fmt.Fprint(w, `{"items":[{"added_at":"not a timestamp","track":{"name":"Bad","artists":[],"album":{"name":""}}}],"total":1,"limit":50,"offset":0,"next":null,"previous":null}`)
			}))
			defer ts.Close()

			srv := authenticatedService(t, ts.URL)

			var seqErr error
			for _, err := range srv.SavedTracks(context.Background()) {
				if err != nil {
					seqErr = err
				}
			}
			if seqErr == nil {
				t.Error("expected decode error for malformed added_at")
			}
		})
	})
}

func authenticatedService(t *testing.T, baseURL string) *SpotifyService {
	t.Helper()

	srv, err := NewSpotifyService(testCredentials())
	if err != nil {
		t.Fatalf("failed to create service: %v", err)
	}

	srv.token = &oauth2.Token{AccessToken: "test_access_token"}
	srv.httpClient = http.DefaultClient
	srv.baseURL = baseURL

	return srv
}
