package tail

import "strings"

// splitLines splits a snapshot into lines, dropping a trailing newline so
// that a buffer ending in "\n" does not produce a phantom empty line.
func splitLines(snapshot string) []string {
	snapshot = strings.TrimSuffix(snapshot, "\n")
	if snapshot == "" {
		return nil
	}
	return strings.Split(snapshot, "\n")
}

// delta returns the lines of snapshot that follow the last occurrence of
// the anchor line.
//
// The scan runs from the end of the snapshot backward so that only the new
// tail is visited when little has changed. Anchoring on line content (not
// a count or byte offset) tolerates a buffer that grows, wraps, or is
// occasionally cleared, as long as the previously seen tail line still
// appears verbatim.
//
// When the anchor is absent or not found (buffer cleared or wrapped past
// it), the entire snapshot is new. If the buffer regenerated text identical
// to lines already delivered, those lines are delivered again; this is a
// known limitation of content anchoring.
func delta(snapshot, anchor string, haveAnchor bool) []string {
	lines := splitLines(snapshot)
	if haveAnchor {
		for i := len(lines) - 1; i >= 0; i-- {
			if lines[i] == anchor {
				return lines[i+1:]
			}
		}
	}
	return lines
}
