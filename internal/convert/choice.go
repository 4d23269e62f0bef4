package convert

import (
	"github.com/kalebabebe/mitx-canvas-tools/internal/capa"
	"github.com/kalebabebe/mitx-canvas-tools/internal/qti"
)

func convertChoiceSingle(rec qti.Record) Outcome {
	opts, correct := choiceOptions(rec.Choices)
	if len(opts) == 0 {
		return unsupported(rec, "no choices present")
	}
	if correct == 0 {
		return unsupported(rec, "no correct choice marked")
	}
	frag, err := capa.MultipleChoice(opts)
	if err != nil {
		return unsupported(rec, "markup render failed")
	}
	return converted(ChoiceSingle, capa.Body(capa.Prompt(rec.PromptHTML), frag), rec)
}

func convertChoiceMultiple(rec qti.Record) Outcome {
	opts, correct := choiceOptions(rec.Choices)
	if len(opts) == 0 {
		return unsupported(rec, "no choices present")
	}
	if correct == 0 {
		return unsupported(rec, "no correct choice marked")
	}
	frag, err := capa.Checkbox(opts)
	if err != nil {
		return unsupported(rec, "markup render failed")
	}
	return converted(ChoiceMultiple, capa.Body(capa.Prompt(rec.PromptHTML), frag), rec)
}

// choiceOptions maps source choices verbatim, counting correct marks.
func choiceOptions(in []qti.Choice) ([]capa.Option, int) {
	opts := make([]capa.Option, 0, len(in))
	correct := 0
	for _, c := range in {
		if c.Correct {
			correct++
		}
		opts = append(opts, capa.Option{Text: c.Text, Correct: c.Correct})
	}
	return opts, correct
}
