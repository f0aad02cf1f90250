package sequence

import (
	"fmt"
	"regexp"
)

var frameVerbPattern = regexp.MustCompile(`%0?\d*d`)

// FormatFrame substitutes the frame number into a %d-style sequence path
// pattern. A pattern without exactly one frame verb is a formatting failure;
// that usually means the published file was not an image sequence.
func FormatFrame(pattern string, frame int) (string, error) {
	verbs := frameVerbPattern.FindAllString(pattern, -1)
	if len(verbs) != 1 {
		return "", fmt.Errorf("pattern %q: expected one frame placeholder, found %d", pattern, len(verbs))
	}
	return fmt.Sprintf(pattern, frame), nil
}

// HasFramePlaceholder reports whether the pattern carries a usable frame verb.
func HasFramePlaceholder(pattern string) bool {
	return len(frameVerbPattern.FindAllString(pattern, -1)) == 1
}
