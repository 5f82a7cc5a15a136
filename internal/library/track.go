// package library holds the persisted track representation and the snapshot text format
package library

import (
	"slices"

	"github.com/markaronin/likedsync/internal/services"
)

// Track is the minimal persisted representation of a liked song.
//
// ArtistNames is always sorted lexicographically ascending so the serialized
// form does not depend on the order the API returned artists in.
type Track struct {
	SongName    string   `json:"song_name"`
	AddedAt     int64    `json:"added_at"`
	ArtistNames []string `json:"artist_names"`
	AlbumName   string   `json:"album_name"`
}

// FromSavedTrack maps a raw library entry to its persisted form.
//
// The added-at timestamp is converted to Unix seconds. Payload shape is
// validated at decode time in the fetcher; there is no error path here.
func FromSavedTrack(saved services.SavedTrack) Track {
	names := make([]string, 0, len(saved.Track.Artists))
	for _, artist := range saved.Track.Artists {
		names = append(names, artist.Name)
	}
	slices.Sort(names)

	return Track{
		SongName:    saved.Track.Name,
		AddedAt:     saved.AddedAt.Unix(),
		ArtistNames: names,
		AlbumName:   saved.Track.Album.Name,
	}
}
