// Package olx writes converted problems as Open edX OLX problem components.
package olx

import (
	"fmt"
	"regexp"
	"strings"
	"sync"
)

const maxURLNameLen = 50

var (
	unsafeChars = regexp.MustCompile(`[^a-z0-9_-]`)
	underscores = regexp.MustCompile(`_+`)
)

// NameGenerator produces unique, URL-safe url_names from display names.
// Names are lowercased, non [a-z0-9_-] runs become single underscores, and
// collisions get a numeric suffix. Safe for concurrent use.
type NameGenerator struct {
	mu   sync.Mutex
	used map[string]struct{}
}

func NewNameGenerator() *NameGenerator {
	return &NameGenerator{used: map[string]struct{}{}}
}

// Generate returns a url_name for displayName, unique among all names this
// generator has handed out. Empty or all-symbol inputs fall back to
// "problem".
func (g *NameGenerator) Generate(displayName string) string {
	name := strings.ToLower(strings.TrimSpace(displayName))
	name = unsafeChars.ReplaceAllString(name, "_")
	name = underscores.ReplaceAllString(name, "_")
	name = strings.Trim(name, "_")
	if name == "" {
		name = "problem"
	}
	if len(name) > maxURLNameLen {
		name = strings.TrimRight(name[:maxURLNameLen], "_")
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	base := name
	for counter := 1; ; counter++ {
		if _, taken := g.used[name]; !taken {
			break
		}
		suffix := fmt.Sprintf("_%d", counter)
		keep := maxURLNameLen - len(suffix)
		if keep > len(base) {
			keep = len(base)
		}
		name = base[:keep] + suffix
	}
	g.used[name] = struct{}{}
	return name
}

// Reset forgets all handed-out names.
func (g *NameGenerator) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.used = map[string]struct{}{}
}
