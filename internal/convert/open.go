package convert

import (
	"github.com/kalebabebe/mitx-canvas-tools/internal/capa"
	"github.com/kalebabebe/mitx-canvas-tools/internal/qti"
)

const (
	essayNote = "This essay question was imported from Canvas and requires manual grading. " +
		"Configure an open response assessment or a staff-graded component for it."
	fileUploadNote = "This question collected a file upload in Canvas. File submissions are " +
		"not auto-graded here; collect them through a staff-graded assignment."
	textOnlyNote = "Informational text imported from Canvas; no response is collected."
)

// convertOpenResponse always succeeds: essays have no automated equivalent,
// so the body is the prompt plus a manual-grading note. This is a distinct
// outcome from unsupported and is never counted as a failure.
func convertOpenResponse(rec qti.Record) Outcome {
	body := capa.Body(capa.Prompt(rec.PromptHTML), capa.Paragraph(essayNote))
	return manualGraded(body, rec)
}

// convertFileUpload emits a fixed instructional placeholder: documented,
// not graded.
func convertFileUpload(rec qti.Record) Outcome {
	body := capa.Body(capa.Prompt(rec.PromptHTML), capa.Paragraph(fileUploadNote))
	return placeholder(OpenResponse, body, rec)
}

// convertTextOnly passes the text through as a non-graded block.
func convertTextOnly(rec qti.Record) Outcome {
	body := capa.Prompt(rec.PromptHTML)
	if body == "" {
		body = capa.Paragraph(textOnlyNote)
	}
	return placeholder(OpenResponse, body, rec)
}
