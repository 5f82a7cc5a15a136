package library

import (
	"slices"
	"testing"
	"time"

	"github.com/markaronin/likedsync/internal/services"
)

func savedTrack(name string, added time.Time, album string, artists ...string) services.SavedTrack {
	st := services.SavedTrack{
		AddedAt: added,
		Track: services.SpotifyTrack{
			Name:  name,
			Album: services.SpotifyAlbum{Name: album},
		},
	}
	for _, a := range artists {
		st.Track.Artists = append(st.Track.Artists, services.SpotifyArtist{Name: a})
	}
	return st
}

func TestFromSavedTrack(t *testing.T) {
	added := time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)

	t.Run("Maps Fields", func(t *testing.T) {
		track := FromSavedTrack(savedTrack("Song", added, "Album", "Artist"))

		if track.SongName != "Song" {
			t.Errorf("expected song name Song, got %s", track.SongName)
		}
		if track.AddedAt != added.Unix() {
			t.Errorf("expected added_at %d, got %d", added.Unix(), track.AddedAt)
		}
		if track.AlbumName != "Album" {
			t.Errorf("expected album name Album, got %s", track.AlbumName)
		}
		if !slices.Equal(track.ArtistNames, []string{"Artist"}) {
			t.Errorf("expected single artist, got %v", track.ArtistNames)
		}
	})

	t.Run("Sorts Artist Names", func(t *testing.T) {
		track := FromSavedTrack(savedTrack("Song", added, "Album", "Zeta", "Alpha", "Mid"))

		want := []string{"Alpha", "Mid", "Zeta"}
		if !slices.Equal(track.ArtistNames, want) {
			t.Errorf("expected artists %v, got %v", want, track.ArtistNames)
		}
	})

	t.Run("Artist Order Insensitive", func(t *testing.T) {
		a := FromSavedTrack(savedTrack("Song", added, "Album", "B", "A", "C"))
		b := FromSavedTrack(savedTrack("Song", added, "Album", "C", "B", "A"))

		if !slices.Equal(a.ArtistNames, b.ArtistNames) {
			t.Errorf("artist order should not matter: %v vs %v", a.ArtistNames, b.ArtistNames)
		}
	})

	t.Run("No Artists", func(t *testing.T) {
		track := FromSavedTrack(savedTrack("Song", added, "Album"))

		if len(track.ArtistNames) != 0 {
			t.Errorf("expected no artists, got %v", track.ArtistNames)
		}
	})
}
