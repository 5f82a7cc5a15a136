// Package services defines the [LibraryService] interface for music streaming providers and implements it for Spotify.
//
// # Service Interface
//
// [LibraryService] abstracts the one provider operation this program needs:
// reading the authenticated user's saved-track library as a lazy paginated
// sequence.
//
// # Spotify Implementation
//
// [SpotifyService] uses OAuth2 authorization-code flow with the
// user-library-read scope only. The token obtained from the interactive flow
// lives in memory for the duration of the run; there is no token store, so
// every run requires a fresh grant.
//
// [SpotifyService.SavedTracks] fetches /v1/me/tracks page by page in the
// API's default order, waiting on a rate limiter before each page request.
// The sequence is finite and not restartable: any transport or decode error
// is yielded as the final element and the caller is expected to abort.
//
// # Error Handling
//
// Services use typed errors from the shared package:
//   - [shared.ErrNotAuthenticated] : Authenticate() not called
//   - [shared.ErrAuthFailed] : the authorization flow failed or was denied
//   - [shared.ErrAPIRequest] : HTTP request failed or returned a non-2xx status
package services
