package convert

// ResponseKind identifies the grading structure of a converted problem.
type ResponseKind string

const (
	ChoiceSingle   ResponseKind = "choice_single"
	ChoiceMultiple ResponseKind = "choice_multiple"
	StringMatch    ResponseKind = "string_match"
	Numerical      ResponseKind = "numerical"
	OpenResponse   ResponseKind = "open_response"
	OptionSelect   ResponseKind = "option_select"
)

// Family is the converter a declared Canvas type routes to.
type Family int

const (
	FamilyUnknown Family = iota
	FamilyChoiceSingle
	FamilyChoiceMultiple
	FamilyStringMatch
	FamilyNumerical
	FamilyCalculated
	FamilyOpenResponse
	FamilyOptionSelect
	FamilyFileUpload
	FamilyTextOnly
)

// Canvas declares question types under two vocabularies: the Common
// Cartridge profile strings (cc.*) and its native question_type values.
// Classification is exact-match only. A future versioned variant of a known
// family (say cc.essay.v99) must degrade to unknown, reported, rather than
// being guessed from a prefix.
var families = map[string]Family{
	"cc.multiple_choice.v0p1":          FamilyChoiceSingle,
	"multiple_choice_question":         FamilyChoiceSingle,
	"cc.true_false.v0p1":               FamilyChoiceSingle,
	"true_false_question":              FamilyChoiceSingle,
	"cc.multiple_response.v0p1":        FamilyChoiceMultiple,
	"multiple_answers_question":        FamilyChoiceMultiple,
	"cc.fib.v0p1":                      FamilyStringMatch,
	"short_answer_question":            FamilyStringMatch,
	"numerical_question":               FamilyNumerical,
	"calculated_question":              FamilyCalculated,
	"cc.essay.v0p1":                    FamilyOpenResponse,
	"essay_question":                   FamilyOpenResponse,
	"matching_question":                FamilyOptionSelect,
	"fill_in_multiple_blanks_question": FamilyOptionSelect,
	"multiple_dropdowns_question":      FamilyOptionSelect,
	"file_upload_question":             FamilyFileUpload,
	"text_only_question":               FamilyTextOnly,
}

// Classify maps a declared source type to its converter family.
func Classify(sourceType string) Family {
	if f, ok := families[sourceType]; ok {
		return f
	}
	return FamilyUnknown
}
