package convert_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/kalebabebe/mitx-canvas-tools/internal/convert"
	"github.com/kalebabebe/mitx-canvas-tools/internal/qti"
)

func choiceItem(ident string, correct int) qti.Item {
	rec := qti.Record{
		Ident:      ident,
		Title:      "Choice " + ident,
		SourceType: "multiple_choice_question",
		PromptHTML: "<p>Pick one.</p>",
		Points:     1,
	}
	for i := 0; i < 3; i++ {
		rec.Choices = append(rec.Choices, qti.Choice{
			ID:      fmt.Sprintf("%s_%d", ident, i),
			Text:    fmt.Sprintf("option %d", i),
			Correct: i == correct,
		})
	}
	return qti.Item{Record: rec}
}

func typedItem(sourceType string) qti.Item {
	return qti.Item{Record: qti.Record{
		SourceType: sourceType,
		PromptHTML: "<p>Prompt.</p>",
		Points:     1,
	}}
}

func TestRunEmptyQuiz(t *testing.T) {
	eng := convert.New(convert.Options{})
	if _, err := eng.Run(context.Background(), nil); !errors.Is(err, convert.ErrNoQuestions) {
		t.Fatalf("err = %v, want ErrNoQuestions", err)
	}
}

func TestRunCountConservation(t *testing.T) {
	essay := typedItem("essay_question")
	upload := typedItem("file_upload_question")
	unknown := typedItem("cc.essay.v99")
	untyped := typedItem("")
	broken := qti.Item{
		Record:     qti.Record{SourceType: "multiple_choice_question"},
		FailReason: "empty question body",
	}
	noCorrect := choiceItem("q_none", -1)

	items := []qti.Item{
		choiceItem("q1", 0), essay, upload, unknown, untyped, broken, noCorrect,
	}
	res, err := convert.New(convert.Options{Workers: 3}).Run(context.Background(), items)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if got := res.Report.Total(); got != len(items) {
		t.Fatalf("report total = %d, want %d (every record must be counted exactly once)", got, len(items))
	}
	wantCounts := map[convert.OutcomeKind]int{
		convert.OutcomeConverted:   1,
		convert.OutcomeManual:      1,
		convert.OutcomePlaceholder: 1,
		convert.OutcomeUnsupported: 4,
	}
	for kind, want := range wantCounts {
		if got := res.Report.Counts[kind]; got != want {
			t.Errorf("Counts[%s] = %d, want %d", kind, got, want)
		}
	}
}

func TestRunPreservesInputOrder(t *testing.T) {
	var items []qti.Item
	for i := 0; i < 40; i++ {
		items = append(items, choiceItem(fmt.Sprintf("q%02d", i), i%3))
	}
	res, err := convert.New(convert.Options{Workers: 8}).Run(context.Background(), items)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	for i, o := range res.Outcomes {
		if o.Position != i {
			t.Fatalf("outcome %d has Position %d", i, o.Position)
		}
		if want := "Choice " + items[i].Record.Ident; o.Title != want {
			t.Fatalf("outcome %d Title = %q, want %q", i, o.Title, want)
		}
	}
}

func TestRunUnsupportedReasons(t *testing.T) {
	items := []qti.Item{
		typedItem("cc.essay.v99"),
		typedItem(""),
		choiceItem("none", -1),
		{Record: qti.Record{SourceType: "question_bank"}, FailReason: "missing question bank"},
	}
	res, err := convert.New(convert.Options{}).Run(context.Background(), items)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	wantReasons := []string{
		`unknown type "cc.essay.v99"`,
		"no question type declared",
		"no correct choice marked",
		"missing question bank",
	}
	for i, want := range wantReasons {
		o := res.Outcomes[i]
		if o.Kind != convert.OutcomeUnsupported {
			t.Fatalf("outcome %d Kind = %v", i, o.Kind)
		}
		if o.Unsupported.Reason != want {
			t.Errorf("outcome %d reason = %q, want %q", i, o.Unsupported.Reason, want)
		}
	}
	if res.Report.Skipped["(no type declared)"] != 1 {
		t.Errorf("Skipped = %v, missing the untyped bucket", res.Report.Skipped)
	}
}

// Converting the same record twice must produce byte-identical bodies;
// nothing in the pipeline may depend on run order or timing.
func TestRunDeterministic(t *testing.T) {
	items := []qti.Item{
		choiceItem("q1", 1),
		typedItem("essay_question"),
		{Record: qti.Record{
			SourceType: "short_answer_question",
			PromptHTML: "<p>Name a primary color.</p>",
			Answers:    []string{"red", "blue", "yellow"},
			Points:     1,
		}},
	}
	eng := convert.New(convert.Options{Workers: 4})
	first, err := eng.Run(context.Background(), items)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	second, err := eng.Run(context.Background(), items)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	for i := range first.Outcomes {
		a, b := first.Outcomes[i].Problem, second.Outcomes[i].Problem
		if a.Body != b.Body {
			t.Errorf("outcome %d body differs between runs", i)
		}
	}
}

func TestRunStringMatchAnswers(t *testing.T) {
	items := []qti.Item{{Record: qti.Record{
		SourceType: "short_answer_question",
		PromptHTML: "<p>Primary color?</p>",
		Answers:    []string{"red", "Blue", "RED", "yellow"},
		Points:     1,
	}}}
	res, err := convert.New(convert.Options{}).Run(context.Background(), items)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	o := res.Outcomes[0]
	if o.Kind != convert.OutcomeConverted {
		t.Fatalf("Kind = %v (%+v)", o.Kind, o.Unsupported)
	}
	body := o.Problem.Body
	for _, want := range []string{`answer="red"`, `type="ci"`, `additional_answer answer="Blue"`, `additional_answer answer="yellow"`} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q:\n%s", want, body)
		}
	}
	if strings.Contains(body, `answer="RED"`) {
		t.Errorf("fold-equal duplicate survived:\n%s", body)
	}
}

func TestRunOptionSelectFlag(t *testing.T) {
	item := qti.Item{Record: qti.Record{
		SourceType: "matching_question",
		PromptHTML: "<p>Match each term.</p>",
		Slots: []qti.Slot{{
			Ident: "response_a",
			Name:  "Term A",
			Options: []qti.Choice{
				{ID: "1", Text: "Def 1", Correct: true},
				{ID: "2", Text: "Def 2"},
			},
		}},
		Points: 1,
	}}

	on, err := convert.New(convert.Options{OptionSelect: true}).Run(context.Background(), []qti.Item{item})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if o := on.Outcomes[0]; o.Kind != convert.OutcomeConverted || !strings.Contains(o.Problem.Body, "optionresponse") {
		t.Fatalf("enabled: %+v", o)
	}

	off, err := convert.New(convert.Options{OptionSelect: false}).Run(context.Background(), []qti.Item{item})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	o := off.Outcomes[0]
	if o.Kind != convert.OutcomeUnsupported || o.Unsupported.Reason != "option-select conversion disabled" {
		t.Fatalf("disabled: %+v", o)
	}
}

func TestRunManualGradingIsNotAFailure(t *testing.T) {
	res, err := convert.New(convert.Options{}).Run(context.Background(), []qti.Item{typedItem("essay_question")})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	o := res.Outcomes[0]
	if o.Kind != convert.OutcomeManual {
		t.Fatalf("Kind = %v", o.Kind)
	}
	if o.Problem == nil || o.Unsupported != nil {
		t.Fatalf("manual outcome must carry a problem body: %+v", o)
	}
	if len(res.Report.Skipped) != 0 {
		t.Errorf("Skipped = %v, essays are not skips", res.Report.Skipped)
	}
}
