package main

import (
	"context"

	"github.com/markaronin/likedsync/internal/shared"
	"github.com/urfave/cli/v3"
)

// Init writes a credentials.json template, refusing to overwrite an existing file.
func (r *Runner) Init(ctx context.Context, cmd *cli.Command) error {
	path := cmd.String("credentials")

	if err := shared.CreateCredentialsFile(path); err != nil {
		return err
	}

	r.writePlain("✓ Created %s\n", path)
	r.writePlain("Fill in spotify_client_id and spotify_client_secret from your Spotify developer dashboard.\n")

	return nil
}
