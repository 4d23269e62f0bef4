package qti

// Float is an optional float64. Canvas omits numeric fields freely, so every
// numeric read carries an explicit presence flag instead of a zero sentinel.
type Float struct {
	Value float64
	Valid bool
}

// SomeFloat returns a present Float.
func SomeFloat(v float64) Float { return Float{Value: v, Valid: true} }

// Choice is one selectable answer option as declared in the source XML.
type Choice struct {
	ID      string
	Text    string // HTML fragment, verbatim
	Correct bool
}

// Slot is one blank/drop-down of a matching, fill-in-multiple-blanks or
// multiple-dropdowns question: an independent option list with its own
// correct designation.
type Slot struct {
	Ident   string // respident in the source
	Name    string // display label (left-hand stem for matching)
	Options []Choice
}

// Record is one Canvas-format question as extracted from source XML
// (inline or question-bank sourced; indistinguishable once loaded).
type Record struct {
	Ident      string
	Title      string
	SourceType string // declared Canvas type identifier, e.g. "cc.multiple_choice.v0p1"
	PromptHTML string // question body markup, verbatim

	Choices []Choice // choice-based families
	Answers []string // literal acceptable answers (short-answer families)
	Slots   []Slot   // option-select families

	NumericAnswer Float
	RangeLow      Float
	RangeHigh     Float

	Points float64
}

// Item is one loaded entry of a quiz: either a usable record, or a record
// whose loading failed in a way that must surface in the report (missing
// bank file, malformed item XML). Failed items are never dropped.
type Item struct {
	Record     Record
	FailReason string // empty for good records
}

// Failed reports whether the item could not be loaded.
func (i Item) Failed() bool { return i.FailReason != "" }
