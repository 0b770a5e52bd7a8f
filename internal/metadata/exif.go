package metadata

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/tiff"
)

type tagCollector struct {
	tags map[string]string
}

func (c *tagCollector) Walk(name exif.FieldName, tag *tiff.Tag) error {
	c.tags[string(name)] = strings.Trim(tag.String(), `"`)
	return nil
}

// Extract reads EXIF tags from an image file. Files without decodable
// EXIF data return an error.
func Extract(path string) (map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	x, err := exif.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("no EXIF data found: %w", err)
	}

	c := &tagCollector{tags: make(map[string]string)}
	if err := x.Walk(c); err != nil {
		return nil, err
	}

	return c.tags, nil
}

// Summary renders tags as sorted "name: value" lines for a text reply.
func Summary(tags map[string]string) string {
	if len(tags) == 0 {
		return "no EXIF data found"
	}

	names := make([]string, 0, len(tags))
	for name := range tags {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	for i, name := range names {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%s: %s", name, tags[name])
	}
	return b.String()
}
