package convert

import (
	"fmt"
	"strings"

	"github.com/kalebabebe/mitx-canvas-tools/internal/capa"
	"github.com/kalebabebe/mitx-canvas-tools/internal/qti"
)

// convertOptionSelect maps matching, fill-in-multiple-blanks and
// multiple-dropdowns items: every blank/stem becomes an independent dropdown
// with its own option list. Any slot without a designated correct option
// fails the whole item, with the slot named.
func convertOptionSelect(rec qti.Record) Outcome {
	if len(rec.Slots) == 0 {
		return unsupported(rec, "no answer slots present")
	}
	frags := []string{capa.Prompt(rec.PromptHTML)}
	for i, slot := range rec.Slots {
		if len(slot.Options) == 0 {
			return unsupported(rec, fmt.Sprintf("no options for slot %s", slotName(slot, i)))
		}
		if !slotHasCorrect(slot) {
			return unsupported(rec, fmt.Sprintf("no correct option for slot %s", slotName(slot, i)))
		}
		opts := make([]capa.Option, 0, len(slot.Options))
		for _, o := range slot.Options {
			opts = append(opts, capa.Option{Text: o.Text, Correct: o.Correct})
		}
		frag, err := capa.OptionSelect(slot.Name, opts)
		if err != nil {
			return unsupported(rec, "markup render failed")
		}
		frags = append(frags, frag)
	}
	return converted(OptionSelect, capa.Body(frags...), rec)
}

// convertOptionSelectDisabled stands in when the capability flag is off:
// the three option-select types report as unsupported instead of guessing.
func convertOptionSelectDisabled(rec qti.Record) Outcome {
	return unsupported(rec, "option-select conversion disabled")
}

func slotHasCorrect(s qti.Slot) bool {
	for _, o := range s.Options {
		if o.Correct {
			return true
		}
	}
	return false
}

func slotName(s qti.Slot, idx int) string {
	if name := strings.TrimSpace(stripTags(s.Name)); name != "" {
		return fmt.Sprintf("%q", name)
	}
	if s.Ident != "" {
		return fmt.Sprintf("%q", s.Ident)
	}
	return fmt.Sprintf("#%d", idx+1)
}

// stripTags flattens a short HTML fragment to text for reason strings.
func stripTags(s string) string {
	var b strings.Builder
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return b.String()
}
