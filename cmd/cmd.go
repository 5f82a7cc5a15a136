// submodule cmd contains command definitions
package main

import (
	"github.com/markaronin/likedsync/internal/shared"
	"github.com/urfave/cli/v3"
)

func credentialsFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "credentials",
		Aliases: []string{"c"},
		Usage:   "Path to credentials file",
		Value:   shared.CredentialsFile,
	}
}

// syncCommand runs the full snapshot pipeline
func syncCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "sync",
		Usage:  "Fetch liked songs, diff against the stored snapshot, and upload the new snapshot",
		Flags:  []cli.Flag{credentialsFlag()},
		Action: r.Sync,
	}
}

// authCommand exercises the interactive authorization flow on its own
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "auth",
		Usage:  "Authenticate with Spotify using OAuth2",
		Flags:  []cli.Flag{credentialsFlag()},
		Action: r.Auth,
	}
}

// initCommand writes a credentials file template
func initCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "init",
		Usage:  "Create a credentials.json template in the working directory",
		Flags:  []cli.Flag{credentialsFlag()},
		Action: r.Init,
	}
}
