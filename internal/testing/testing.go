// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"iter"
	"net/http"
	"sync"

	"github.com/markaronin/likedsync/internal/services"
	"golang.org/x/oauth2"
)

// MockLibraryService is a test double for [services.LibraryService].
//
// Tracks are yielded in the order given; Err, when set, ends the sequence
// after the configured tracks. Calls records the order of method invocations.
type MockLibraryService struct {
	Tracks []services.SavedTrack
	Err    error

	mu    sync.Mutex
	Calls []string
}

func (m *MockLibraryService) record(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, name)
}

func (m *MockLibraryService) Authenticate(ctx context.Context, token *oauth2.Token) error {
	m.record("Authenticate")
	return nil
}

func (m *MockLibraryService) AuthURL(state string) string {
	m.record("AuthURL")
	return "https://example.com/authorize?state=" + state
}

func (m *MockLibraryService) OAuthConfig() *oauth2.Config {
	return &oauth2.Config{}
}

func (m *MockLibraryService) SavedTracks(ctx context.Context) iter.Seq2[services.SavedTrack, error] {
	m.record("SavedTracks")
	return func(yield func(services.SavedTrack, error) bool) {
		for _, track := range m.Tracks {
			if !yield(track, nil) {
				return
			}
		}
		if m.Err != nil {
			yield(services.SavedTrack{}, m.Err)
		}
	}
}

func (m *MockLibraryService) Name() string { return "mock" }

// FakeStore is an in-memory test double for [storage.Store].
type FakeStore struct {
	Body        string
	DownloadErr error
	UploadErr   error

	mu       sync.Mutex
	Calls    []string
	Uploaded []string
}

func (f *FakeStore) record(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls = append(f.Calls, name)
}

func (f *FakeStore) Download(ctx context.Context) (string, error) {
	f.record("Download")
	if f.DownloadErr != nil {
		return "", f.DownloadErr
	}
	return f.Body, nil
}

func (f *FakeStore) Upload(ctx context.Context, text string) error {
	f.record("Upload")
	if f.UploadErr != nil {
		return f.UploadErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Uploaded = append(f.Uploaded, text)
	f.Body = text
	return nil
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}
