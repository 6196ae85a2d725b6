// Package dedupe removes content duplicated across canonical fields.
// Free-text extraction frequently repeats the same sentence across
// adjacent semantic slots; the earliest field in canonical declaration
// order is authoritative and later duplicates are cleared.
package dedupe

import (
	"regexp"
	"strings"

	"github.com/jonathan/job-profiler/internal/registry"
)

var nonAlnumRe = regexp.MustCompile(`[^\p{L}\p{N}]+`)

// Apply walks the registry fields in declaration order with one global
// seen-set. List items whose normalized form was already seen are
// dropped; scalar repeats reset to the field's zero value.
func Apply(p registry.Profile) {
	seen := make(map[string]bool)
	for _, f := range registry.Fields {
		switch f.Kind {
		case registry.KindString:
			value, _ := p.Get(f.Path).(string)
			key := normalize(value)
			if key == "" {
				continue
			}
			if seen[key] {
				p.Set(f.Path, f.Zero())
			} else {
				seen[key] = true
			}
		case registry.KindStringList:
			items, _ := p.Get(f.Path).([]string)
			kept := make([]string, 0, len(items))
			for _, item := range items {
				key := normalize(item)
				if key == "" {
					kept = append(kept, item)
					continue
				}
				if seen[key] {
					continue
				}
				seen[key] = true
				kept = append(kept, item)
			}
			p.Set(f.Path, kept)
		}
	}
}

// normalize produces the comparison key: lowercase, non-alphanumeric runs
// collapsed to single spaces, trimmed.
func normalize(s string) string {
	return strings.TrimSpace(nonAlnumRe.ReplaceAllString(strings.ToLower(s), " "))
}
