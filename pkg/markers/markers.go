// Package markers rewrites marker-delimited regions of a text document.
//
// A region for marker "blog" looks like:
//
//	<!-- blog starts -->
//	...generated content...
//	<!-- blog ends -->
//
// Delimiters are matched as literal strings. A region runs from a start
// delimiter to the nearest end delimiter that follows it, and every such
// region in the document is rewritten. The delimiters themselves are kept,
// so replacing the same fragment twice yields the same document.
package markers

import (
	"strings"

	"github.com/agentstation/readmesync/pkg/errors"
)

// Start returns the opening delimiter for marker.
func Start(marker string) string {
	return "<!-- " + marker + " starts -->"
}

// End returns the closing delimiter for marker.
func End(marker string) string {
	return "<!-- " + marker + " ends -->"
}

// Replace rewrites every region delimited by marker with fragment and returns
// the new document. When inline is false the fragment is wrapped in newlines
// so it sits on its own lines between the delimiters; when true it is
// inserted exactly as given.
//
// Replace returns an error matching errors.ErrMarkerNotFound when the document
// has no complete region for marker, and errors.ErrInvalidInput when the marker
// is empty or the fragment contains one of the marker's own delimiters.
func Replace(document, marker, fragment string, inline bool) (string, error) {
	start, end, err := delimiters(marker, fragment)
	if err != nil {
		return "", err
	}

	body := fragment
	if !inline {
		body = "\n" + fragment + "\n"
	}

	var (
		b     strings.Builder
		pos   int
		found int
	)
	b.Grow(len(document) + len(body))

	for _, s := range spans(document, start, end) {
		b.WriteString(document[pos:s.from])
		b.WriteString(start)
		b.WriteString(body)
		b.WriteString(end)
		pos = s.to
		found++
	}

	if found == 0 {
		return "", errors.NewMarkerNotFoundError(marker)
	}

	b.WriteString(document[pos:])
	return b.String(), nil
}

// Count reports how many complete regions for marker the document contains.
func Count(document, marker string) int {
	if marker == "" {
		return 0
	}
	return len(spans(document, Start(marker), End(marker)))
}

// Contents returns the bodies of every region for marker, without delimiters.
func Contents(document, marker string) []string {
	if marker == "" {
		return nil
	}
	start := Start(marker)
	var out []string
	for _, s := range spans(document, start, End(marker)) {
		out = append(out, document[s.from+len(start):s.bodyEnd])
	}
	return out
}

// span is one region: document[from:to] covers both delimiters and
// document[from+len(start):bodyEnd] is the body.
type span struct {
	from    int
	bodyEnd int
	to      int
}

// spans scans left to right for start delimiters and pairs each with the
// nearest following end delimiter. A start with no end after it closes the scan.
func spans(document, start, end string) []span {
	var out []span
	pos := 0
	for pos < len(document) {
		i := strings.Index(document[pos:], start)
		if i < 0 {
			break
		}
		from := pos + i
		bodyStart := from + len(start)

		j := strings.Index(document[bodyStart:], end)
		if j < 0 {
			break
		}
		bodyEnd := bodyStart + j

		out = append(out, span{from: from, bodyEnd: bodyEnd, to: bodyEnd + len(end)})
		pos = bodyEnd + len(end)
	}
	return out
}

func delimiters(marker, fragment string) (string, string, error) {
	if marker == "" {
		return "", "", errors.NewValidationError("marker", marker, "cannot be empty")
	}
	start, end := Start(marker), End(marker)
	if strings.Contains(fragment, start) || strings.Contains(fragment, end) {
		return "", "", errors.NewValidationError("fragment", marker, "contains the delimiters of marker "+marker)
	}
	return start, end, nil
}
