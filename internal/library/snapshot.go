package library

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/goccy/go-json"
)

// Render serializes tracks as newline-delimited JSON, one compact object per
// line with a trailing newline after the last record.
//
// Records are sorted by added_at ascending, tie-broken by song_name ascending,
// so identical input multisets always produce byte-identical output.
func Render(tracks []Track) (string, error) {
	sorted := slices.Clone(tracks)
	slices.SortFunc(sorted, func(a, b Track) int {
		if c := cmp.Compare(a.AddedAt, b.AddedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.SongName, b.SongName)
	})

	lines := make([]string, 0, len(sorted))
	for _, track := range sorted {
		data, err := json.Marshal(track)
		if err != nil {
			return "", fmt.Errorf("failed to serialize track %q: %w", track.SongName, err)
		}
		lines = append(lines, string(data))
	}

	return strings.Join(lines, "\n") + "\n", nil
}

// Parse decodes snapshot text back into tracks, one record per line.
//
// The final empty segment after the trailing newline is ignored.
func Parse(text string) ([]Track, error) {
	var tracks []Track
	for i, line := range strings.Split(text, "\n") {
		if line == "" {
			continue
		}
		var track Track
		if err := json.Unmarshal([]byte(line), &track); err != nil {
			return nil, fmt.Errorf("failed to parse snapshot line %d: %w", i+1, err)
		}
		tracks = append(tracks, track)
	}
	return tracks, nil
}
