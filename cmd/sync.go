package main

import (
	"context"
	"fmt"

	"github.com/markaronin/likedsync/internal/diff"
	"github.com/markaronin/likedsync/internal/library"
	"github.com/markaronin/likedsync/internal/services"
	"github.com/markaronin/likedsync/internal/shared"
	"github.com/markaronin/likedsync/internal/storage"
	"github.com/urfave/cli/v3"
)

// Sync runs the full pipeline: load credentials, download the old snapshot,
// authorize, fetch the liked-songs library, serialize, print the diff, and
// upload the new snapshot.
//
// Every failure aborts the run; there is no retry or partial-result handling.
// The upload happens unconditionally after the diff, even when it is empty.
func (r *Runner) Sync(ctx context.Context, cmd *cli.Command) error {
	creds, err := shared.LoadCredentials(cmd.String("credentials"))
	if err != nil {
		return err
	}

	store, err := r.newStore(ctx)
	if err != nil {
		return err
	}

	oldSnapshot, err := store.Download(ctx)
	if err != nil {
		return err
	}
	r.logger.Debugf("downloaded snapshot from %s (%d bytes)", storage.Location(), len(oldSnapshot))

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

	tracks, err := r.fetchLibrary(ctx, svc)
	if err != nil {
		return err
	}
	r.logger.Infof("fetched %d liked songs from %s", len(tracks), svc.Name())

	newSnapshot, err := library.Render(tracks)
	if err != nil {
		return err
	}

	patch, err := diff.Unified(oldSnapshot, newSnapshot)
	if err != nil {
		return err
	}
	if err := diff.Render(r.output, patch); err != nil {
		return err
	}

	if err := store.Upload(ctx, newSnapshot); err != nil {
		return err
	}
	r.logger.Infof("uploaded snapshot with %d tracks to %s", len(tracks), storage.Location())

	return nil
}

// fetchLibrary drains the lazy saved-tracks sequence into an owned slice,
// normalizing each entry as it arrives.
func (r *Runner) fetchLibrary(ctx context.Context, svc services.LibraryService) ([]library.Track, error) {
	var tracks []library.Track
	for saved, err := range svc.SavedTracks(ctx) {
		if err != nil {
			return nil, fmt.Errorf("failed to fetch liked songs: %w", err)
		}
		tracks = append(tracks, library.FromSavedTrack(saved))
		if len(tracks)%500 == 0 {
			r.logger.Debugf("fetched %d liked songs so far", len(tracks))
		}
	}
	return tracks, nil
}
