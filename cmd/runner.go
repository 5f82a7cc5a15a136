package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/markaronin/likedsync/internal/services"
	"github.com/markaronin/likedsync/internal/shared"
	"github.com/markaronin/likedsync/internal/storage"
	"github.com/urfave/cli/v3"
	"golang.org/x/oauth2"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	logger     *log.Logger
	output     io.Writer
	newService func(*shared.Credentials) (services.LibraryService, error)
	newStore   func(context.Context) (storage.Store, error)
	authorize  func(context.Context, services.LibraryService) (*oauth2.Token, error)
}

// RunnerOpts contains configuration options for creating a Runner.
//
// NewService, NewStore, and Authorize exist so tests can inject fakes; zero
// values wire the real Spotify client, S3 store, and interactive OAuth flow.
type RunnerOpts struct {
	Logger     *log.Logger
	Output     io.Writer
	NewService func(*shared.Credentials) (services.LibraryService, error)
	NewStore   func(context.Context) (storage.Store, error)
	Authorize  func(context.Context, services.LibraryService) (*oauth2.Token, error)
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.NewService == nil {
		opts.NewService = func(creds *shared.Credentials) (services.LibraryService, error) {
			return services.NewSpotifyService(creds)
		}
	}
	if opts.NewStore == nil {
		opts.NewStore = func(ctx context.Context) (storage.Store, error) {
			return storage.NewSnapshotStore(ctx)
		}
	}

	runner := &Runner{
		logger:     opts.Logger,
		output:     opts.Output,
		newService: opts.NewService,
		newStore:   opts.NewStore,
		authorize:  opts.Authorize,
	}
	if runner.authorize == nil {
		runner.authorize = runner.doOAuth
	}

	return runner
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		syncCommand, authCommand, initCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
