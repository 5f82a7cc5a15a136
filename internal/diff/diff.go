// package diff renders a colorized unified diff between two snapshot texts
package diff

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/pmezard/go-difflib/difflib"
)

// Palette is a simple stylesheet of named [lipgloss.Style] fields for diff lines.
type Palette struct {
	add  lipgloss.Style
	del  lipgloss.Style
	hunk lipgloss.Style
	meta lipgloss.Style
}

// NewPalette creates a [Palette] from foreground colors for added lines,
// deleted lines, hunk headers, and file headers.
func NewPalette(a, d, h, m string) *Palette {
	return &Palette{
		add:  NewStyle(a),
		del:  NewStyle(d),
		hunk: NewStyle(h),
		meta: NewBold(m),
	}
}

func NewStyle(fg string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(fg))
}

func NewBold(fg string) lipgloss.Style {
	return NewStyle(fg).Bold(true)
}

var styles = NewPalette("#04B575", "#FF0000", "#00B5B5", "#626262")

// Unified computes a classic line-based unified diff between old and new
// snapshot text with three lines of context.
//
// Returns an empty string when the texts are identical.
func Unified(oldText, newText string) (string, error) {
	ud := difflib.UnifiedDiff{
		A:        difflib.SplitLines(oldText),
		B:        difflib.SplitLines(newText),
		FromFile: "liked-songs (old)",
		ToFile:   "liked-songs (new)",
		Context:  3,
	}

	patch, err := difflib.GetUnifiedDiffString(ud)
	if err != nil {
		return "", fmt.Errorf("failed to compute diff: %w", err)
	}

	return patch, nil
}

// Render writes the patch to w with insertions, deletions, and hunk headers
// visually distinguished.
//
// Pure console output; callers never branch on the rendered diff.
func Render(w io.Writer, patch string) error {
	if patch == "" {
		return nil
	}

	for _, line := range strings.SplitAfter(patch, "\n") {
		if line == "" {
			continue
		}

		text := strings.TrimSuffix(line, "\n")
		switch {
		case strings.HasPrefix(text, "---"), strings.HasPrefix(text, "+++"):
			text = styles.meta.Render(text)
		case strings.HasPrefix(text, "@@"):
			text = styles.hunk.Render(text)
		case strings.HasPrefix(text, "+"):
			text = styles.add.Render(text)
		case strings.HasPrefix(text, "-"):
			text = styles.del.Render(text)
		}

		if _, err := fmt.Fprintln(w, text); err != nil {
			return fmt.Errorf("failed to write diff output: %w", err)
		}
	}

	return nil
}
