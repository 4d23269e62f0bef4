package notes_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kalebabebe/mitx-canvas-tools/internal/convert"
	"github.com/kalebabebe/mitx-canvas-tools/internal/notes"
)

func TestRenderGroupsBySourceType(t *testing.T) {
	b := notes.NewBuilder()
	b.AddQuiz("Week 1 Quiz", []convert.Outcome{
		{Kind: convert.OutcomeConverted, Position: 0, Title: "Fine"},
		{Kind: convert.OutcomeUnsupported, Position: 1, SourceType: "matching_question", Title: "Match terms",
			Unsupported: &convert.Unsupported{Reason: "no correct option for slot \"Term A\""}},
		{Kind: convert.OutcomeManual, Position: 2, Title: "Essay one"},
	})
	b.AddQuiz("Week 2 Quiz", []convert.Outcome{
		{Kind: convert.OutcomeUnsupported, Position: 0, SourceType: "matching_question", Title: "",
			Unsupported: &convert.Unsupported{Reason: "no answer slots present"}},
		{Kind: convert.OutcomeUnsupported, Position: 1, SourceType: "", Title: "Mystery",
			Unsupported: &convert.Unsupported{Reason: "no question type declared"}},
	})

	got := b.Render()
	for _, want := range []string{
		"### matching_question (2)",
		"### (no type declared) (1)",
		"- Week 1 Quiz, question 2: Match terms",
		"- Week 2 Quiz, question 1: (untitled)",
		"## Questions that require manual grading",
		"- Week 1 Quiz, question 3: Essay one",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q in:\n%s", want, got)
		}
	}
	if strings.Contains(got, "Fine") {
		t.Error("converted items do not belong in the notes")
	}
}

func TestRenderEmpty(t *testing.T) {
	b := notes.NewBuilder()
	b.AddQuiz("Clean Quiz", []convert.Outcome{
		{Kind: convert.OutcomeConverted, Title: "ok"},
	})
	if !b.Empty() {
		t.Fatal("Empty() = false")
	}
	if got := b.Render(); !strings.Contains(got, "converted cleanly") {
		t.Errorf("empty notes = %q", got)
	}
}

func TestWriteFile(t *testing.T) {
	b := notes.NewBuilder()
	b.AddQuiz("Quiz", []convert.Outcome{
		{Kind: convert.OutcomeUnsupported, SourceType: "file_upload_question", Title: "Upload",
			Unsupported: &convert.Unsupported{Reason: "x"}},
	})
	path := filepath.Join(t.TempDir(), "import_notes.md")
	if err := b.WriteFile(path); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.HasPrefix(string(data), "# Import Notes") {
		t.Errorf("unexpected header: %q", string(data[:40]))
	}
}
