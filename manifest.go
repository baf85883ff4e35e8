package datpedia

import (
	"bufio"
	"io"
	"strings"
)

// ParseManifest reads a slug list: one slug per line, trailing newline.
// Blank lines and surrounding whitespace are ignored.
func ParseManifest(r io.Reader) ([]string, error) {
	var slugs []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		slug := strings.TrimSpace(scanner.Text())
		if slug == "" {
			continue
		}
		slugs = append(slugs, slug)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return slugs, nil
}

// FormatManifest formats slugs as a manifest, one per line, each line
// terminated by a newline.
func FormatManifest(slugs []string) string {
	var b strings.Builder
	for _, slug := range slugs {
		b.WriteString(slug)
		b.WriteByte('\n')
	}
	return b.String()
}
