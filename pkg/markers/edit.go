package markers

import "fmt"

// Edit is one requested region replacement.
type Edit struct {
	Marker   string
	Fragment string
	Inline   bool
}

// Apply runs edits against document in order. It is all-or-nothing: the
// first failing edit aborts with an error and no partially edited document is
// returned.
func Apply(document string, edits ...Edit) (string, error) {
	out := document
	for _, e := range edits {
		next, err := Replace(out, e.Marker, e.Fragment, e.Inline)
		if err != nil {
			return "", fmt.Errorf("replace %q: %w", e.Marker, err)
		}
		out = next
	}
	return out, nil
}
