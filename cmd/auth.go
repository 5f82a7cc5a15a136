package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/markaronin/likedsync/internal/server"
	"github.com/markaronin/likedsync/internal/services"
	"github.com/markaronin/likedsync/internal/shared"
	"github.com/urfave/cli/v3"
	"golang.org/x/oauth2"
)

// Auth performs the OAuth2 authorization flow and reports success.
//
// Starts a local HTTP server, opens the browser for user authorization, and
// exchanges the auth code for a token. The token is held in memory only;
// each run of the program requires a fresh grant.
func (r *Runner) Auth(ctx context.Context, cmd *cli.Command) error {
	creds, err := shared.LoadCredentials(cmd.String("credentials"))
	if err != nil {
		return err
	}

	svc, err := r.newService(creds)
	if err != nil {
		return err
	}

	token, err := r.authorize(ctx, svc)
	if err != nil {
		return err
	}
	if err := svc.Authenticate(ctx, token); err != nil {
		return err
	}

	r.writePlainln("✓ Authorization successful")
	r.writePlain("Scope granted: user-library-read\n")

	return nil
}

// doOAuth executes the OAuth2 authorization flow with a local HTTP server
func (r *Runner) doOAuth(ctx context.Context, svc services.LibraryService) (*oauth2.Token, error) {
	state := shared.GenerateState()

	authURL := svc.AuthURL(state)
	oauthHandler := server.NewOAuthHandler(svc.OAuthConfig(), state)
	router := server.NewBasicRouter()
	router.Handler(oauthHandler)

	httpServer := &http.Server{
		Addr:    server.CallbackAddr,
		Handler: router,
	}

	serverErrors := make(chan error, 1)
	go func() {
		r.logger.Infof("starting OAuth callback server at %v", server.CallbackAddr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrors <- err
		}
	}()

	time.Sleep(100 * time.Millisecond)

	r.writePlain("→ Opening browser for Spotify authorization...\n")
	if err := shared.OpenBrowser(authURL); err != nil {
		r.logger.Warnf("failed to open browser automatically %v", err)
		r.writePlainln("⚠ Could not open browser automatically.")
		r.writePlain("Please open this URL in your browser:\n%s\n\n", authURL)
	}

	r.writePlain("→ Waiting for authorization (2 minute timeout)...\n")

	timeout := time.NewTimer(2 * time.Minute)
	defer timeout.Stop()

	var result server.OAuthResult

	select {
	case result = <-oauthHandler.Result():
		// Got result from callback
	case err := <-serverErrors:
		return nil, fmt.Errorf("server error: %w", err)
	case <-timeout.C:
		return nil, fmt.Errorf("%w: authorization timed out after 2 minutes", shared.ErrTimeout)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		r.logger.Warn("error shutting down server", "error", err)
	}

	// Handler errors already carry the shared.ErrAuthFailed sentinel.
	if result.Error() != nil {
		return nil, fmt.Errorf("authorization failed: %w", result.Error())
	}

	if result.Token == nil {
		return nil, fmt.Errorf("%w: no token received", shared.ErrAuthFailed)
	}

	return result.Token, nil
}
