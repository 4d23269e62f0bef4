// Package notes renders a human-readable summary of everything the
// conversion could not carry over, so course staff know what to rebuild by
// hand after import.
package notes

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/kalebabebe/mitx-canvas-tools/internal/convert"
)

type entry struct {
	quiz     string
	position int
	title    string
	reason   string
}

// Builder accumulates unsupported and manually-graded items across quizzes.
type Builder struct {
	bySourceType map[string][]entry
	manual       []entry
}

func NewBuilder() *Builder {
	return &Builder{bySourceType: map[string][]entry{}}
}

// AddQuiz records the outcomes of one quiz under its title.
func (b *Builder) AddQuiz(quizTitle string, outcomes []convert.Outcome) {
	for _, o := range outcomes {
		e := entry{quiz: quizTitle, position: o.Position + 1, title: o.Title}
		switch o.Kind {
		case convert.OutcomeUnsupported:
			e.reason = o.Unsupported.Reason
			key := o.SourceType
			if key == "" {
				key = "(no type declared)"
			}
			b.bySourceType[key] = append(b.bySourceType[key], e)
		case convert.OutcomeManual:
			b.manual = append(b.manual, e)
		}
	}
}

// Empty reports whether there is nothing to note.
func (b *Builder) Empty() bool {
	return len(b.bySourceType) == 0 && len(b.manual) == 0
}

// Render produces the markdown document.
func (b *Builder) Render() string {
	var sb strings.Builder
	sb.WriteString("# Import Notes\n\n")

	if len(b.bySourceType) > 0 {
		sb.WriteString("## Questions that need rebuilding\n\n")
		sb.WriteString("These questions were not converted. They are listed by Canvas question type.\n\n")
		types := make([]string, 0, len(b.bySourceType))
		for t := range b.bySourceType {
			types = append(types, t)
		}
		sort.Strings(types)
		for _, t := range types {
			entries := b.bySourceType[t]
			fmt.Fprintf(&sb, "### %s (%d)\n\n", t, len(entries))
			for _, e := range entries {
				fmt.Fprintf(&sb, "- %s, question %d: %s (%s)\n", e.quiz, e.position, displayTitle(e.title), e.reason)
			}
			sb.WriteString("\n")
		}
	}

	if len(b.manual) > 0 {
		sb.WriteString("## Questions that require manual grading\n\n")
		sb.WriteString("These were converted as open response problems and must be graded by staff.\n\n")
		for _, e := range b.manual {
			fmt.Fprintf(&sb, "- %s, question %d: %s\n", e.quiz, e.position, displayTitle(e.title))
		}
		sb.WriteString("\n")
	}

	if b.Empty() {
		sb.WriteString("All questions converted cleanly. Nothing to do here.\n")
	}
	return sb.String()
}

// WriteFile writes the rendered notes to path.
func (b *Builder) WriteFile(path string) error {
	if err := os.WriteFile(path, []byte(b.Render()), 0o644); err != nil {
		return fmt.Errorf("write import notes: %w", err)
	}
	return nil
}

func displayTitle(title string) string {
	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}
