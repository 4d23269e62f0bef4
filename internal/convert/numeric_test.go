package convert

import (
	"strings"
	"testing"

	"github.com/kalebabebe/mitx-canvas-tools/internal/qti"
)

func numRec(answer, low, high qti.Float) qti.Record {
	return qti.Record{
		SourceType:    "numerical_question",
		PromptHTML:    "<p>n?</p>",
		NumericAnswer: answer,
		RangeLow:      low,
		RangeHigh:     high,
		Points:        1,
	}
}

func TestResolveNumeric(t *testing.T) {
	none := qti.Float{}
	tests := []struct {
		name          string
		rec           qti.Record
		wantAnswer    float64
		wantTolerance float64
		wantHasTol    bool
		wantReason    string
	}{
		{
			name:       "exact answer only",
			rec:        numRec(qti.SomeFloat(42), none, none),
			wantAnswer: 42,
		},
		{
			// answer off-center in the range: tolerance covers the far bound
			name:          "answer with asymmetric range",
			rec:           numRec(qti.SomeFloat(12), qti.SomeFloat(7), qti.SomeFloat(17)),
			wantAnswer:    12,
			wantTolerance: 5,
			wantHasTol:    true,
		},
		{
			name:          "answer near low bound",
			rec:           numRec(qti.SomeFloat(8), qti.SomeFloat(7), qti.SomeFloat(17)),
			wantAnswer:    8,
			wantTolerance: 9,
			wantHasTol:    true,
		},
		{
			name:          "range only uses midpoint",
			rec:           numRec(none, qti.SomeFloat(0), qti.SomeFloat(10)),
			wantAnswer:    5,
			wantTolerance: 5,
			wantHasTol:    true,
		},
		{
			name:       "degenerate range",
			rec:        numRec(none, qti.SomeFloat(3), qti.SomeFloat(3)),
			wantAnswer: 3,
		},
		{
			name:       "inverted range",
			rec:        numRec(none, qti.SomeFloat(10), qti.SomeFloat(0)),
			wantReason: "inverted numeric range",
		},
		{
			name:       "inverted range with answer",
			rec:        numRec(qti.SomeFloat(5), qti.SomeFloat(10), qti.SomeFloat(0)),
			wantReason: "inverted numeric range",
		},
		{
			name:       "nothing derivable",
			rec:        numRec(none, none, none),
			wantReason: "no numeric answer derivable",
		},
		{
			name:       "only one bound",
			rec:        numRec(none, qti.SomeFloat(1), none),
			wantReason: "no numeric answer derivable",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			answer, tolerance, hasTol, reason := resolveNumeric(tt.rec)
			if reason != tt.wantReason {
				t.Fatalf("reason = %q, want %q", reason, tt.wantReason)
			}
			if tt.wantReason != "" {
				return
			}
			if answer != tt.wantAnswer {
				t.Errorf("answer = %v, want %v", answer, tt.wantAnswer)
			}
			if tolerance != tt.wantTolerance {
				t.Errorf("tolerance = %v, want %v", tolerance, tt.wantTolerance)
			}
			if hasTol != tt.wantHasTol {
				t.Errorf("hasTolerance = %v, want %v", hasTol, tt.wantHasTol)
			}
		})
	}
}

func TestConvertNumericalBody(t *testing.T) {
	out := convertNumerical(numRec(qti.SomeFloat(12), qti.SomeFloat(7), qti.SomeFloat(17)))
	if out.Kind != OutcomeConverted {
		t.Fatalf("Kind = %v", out.Kind)
	}
	body := out.Problem.Body
	for _, want := range []string{`answer="12"`, `type="tolerance"`, `default="5"`, "formulaequationinput"} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q:\n%s", want, body)
		}
	}
}
