package convert

import (
	"github.com/kalebabebe/mitx-canvas-tools/internal/capa"
	"github.com/kalebabebe/mitx-canvas-tools/internal/qti"
)

// convertStringMatch maps short-answer / fill-in-the-blank items. The first
// accepted answer is the primary, the rest become additional answers.
// Matching is case-insensitive as a fixed policy: Canvas does not reliably
// carry this setting for the fib profile, so it is decided here, not read.
func convertStringMatch(rec qti.Record) Outcome {
	set := NewAnswerSet()
	for _, a := range rec.Answers {
		set.Add(a)
	}
	if set.Len() == 0 {
		return unsupported(rec, "no acceptable answer listed")
	}
	frag, err := capa.StringMatch(set.Primary(), set.Additional())
	if err != nil {
		return unsupported(rec, "markup render failed")
	}
	return converted(StringMatch, capa.Body(capa.Prompt(rec.PromptHTML), frag), rec)
}
