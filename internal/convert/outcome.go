package convert

import "github.com/kalebabebe/mitx-canvas-tools/internal/qti"

// OutcomeKind buckets every processed record. The four values are a stable
// report contract: callers key statistics off them.
type OutcomeKind string

const (
	// OutcomeConverted: a fully auto-gradable problem was produced.
	OutcomeConverted OutcomeKind = "converted"
	// OutcomeManual: a problem was produced but needs manual grading
	// configuration downstream (essays). Not a failure.
	OutcomeManual OutcomeKind = "manual_grading"
	// OutcomePlaceholder: documented, not graded (file-upload, text-only).
	OutcomePlaceholder OutcomeKind = "placeholder"
	// OutcomeUnsupported: the item could not be mapped; always carries a
	// reason and the original prompt for the import notes.
	OutcomeUnsupported OutcomeKind = "unsupported"
)

// Problem is the converted representation of one supported question. Body is
// self-contained response markup: the generator wraps it in a container and
// assigns an identifier but never alters the grading logic.
type Problem struct {
	ResponseKind ResponseKind
	Body         string
	Weight       float64
}

// Unsupported marks one item that could not be converted.
type Unsupported struct {
	SourceType string
	Reason     string
	PromptHTML string
}

// Outcome is the result of converting one record. Exactly one of Problem or
// Unsupported is set, by Kind.
type Outcome struct {
	Kind        OutcomeKind
	Position    int // index in the loaded sequence
	SourceType  string
	Title       string
	Problem     *Problem
	Unsupported *Unsupported
}

func converted(kind ResponseKind, body string, rec qti.Record) Outcome {
	return Outcome{
		Kind:       OutcomeConverted,
		SourceType: rec.SourceType,
		Title:      rec.Title,
		Problem:    &Problem{ResponseKind: kind, Body: body, Weight: rec.Points},
	}
}

func manualGraded(body string, rec qti.Record) Outcome {
	o := converted(OpenResponse, body, rec)
	o.Kind = OutcomeManual
	return o
}

func placeholder(kind ResponseKind, body string, rec qti.Record) Outcome {
	o := converted(kind, body, rec)
	o.Kind = OutcomePlaceholder
	return o
}

func unsupported(rec qti.Record, reason string) Outcome {
	return Outcome{
		Kind:       OutcomeUnsupported,
		SourceType: rec.SourceType,
		Title:      rec.Title,
		Unsupported: &Unsupported{
			SourceType: rec.SourceType,
			Reason:     reason,
			PromptHTML: rec.PromptHTML,
		},
	}
}
