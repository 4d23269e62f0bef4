package convert

import (
	"math"

	"github.com/kalebabebe/mitx-canvas-tools/internal/capa"
	"github.com/kalebabebe/mitx-canvas-tools/internal/qti"
)

// convertNumerical maps numerical (and static calculated) items. A direct
// answer is used as-is; a Canvas answer range becomes a symmetric tolerance.
func convertNumerical(rec qti.Record) Outcome {
	answer, tolerance, hasTolerance, reason := resolveNumeric(rec)
	if reason != "" {
		return unsupported(rec, reason)
	}
	frag, err := capa.Numerical(answer, tolerance, hasTolerance)
	if err != nil {
		return unsupported(rec, "markup render failed")
	}
	return converted(Numerical, capa.Body(capa.Prompt(rec.PromptHTML), frag), rec)
}

// resolveNumeric derives {answer, tolerance} from the record's numeric
// fields. With a direct answer and a range, the tolerance is the larger
// distance from the answer to either bound (the answer need not sit at the
// midpoint). With only a range, answer is the midpoint and tolerance half
// the width. An inverted range is a derivation failure, reported like any
// other semantic gap.
func resolveNumeric(rec qti.Record) (answer, tolerance float64, hasTolerance bool, reason string) {
	hasRange := rec.RangeLow.Valid && rec.RangeHigh.Valid
	if hasRange && rec.RangeHigh.Value < rec.RangeLow.Value {
		return 0, 0, false, "inverted numeric range"
	}
	switch {
	case rec.NumericAnswer.Valid && hasRange:
		answer = rec.NumericAnswer.Value
		tolerance = math.Max(
			math.Abs(rec.RangeHigh.Value-answer),
			math.Abs(answer-rec.RangeLow.Value),
		)
		return answer, tolerance, tolerance > 0, ""
	case rec.NumericAnswer.Valid:
		return rec.NumericAnswer.Value, 0, false, ""
	case hasRange:
		answer = (rec.RangeLow.Value + rec.RangeHigh.Value) / 2
		tolerance = (rec.RangeHigh.Value - rec.RangeLow.Value) / 2
		return answer, tolerance, tolerance > 0, ""
	default:
		return 0, 0, false, "no numeric answer derivable"
	}
}
