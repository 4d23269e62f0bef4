package qti

import (
	"strconv"
	"strings"
)

// parseItem turns one <item> element into a loaded record. Malformed pieces
// degrade the record (the converters decide what is fatal per type); parseItem
// itself only fails an item that has no usable question body at all.
func parseItem(ix itemXML) Item {
	meta := make(map[string]string, len(ix.Metadata))
	for _, f := range ix.Metadata {
		meta[strings.TrimSpace(f.Label)] = strings.TrimSpace(f.Entry)
	}

	rec := Record{
		Ident:      ix.Ident,
		Title:      ix.Title,
		SourceType: declaredType(meta),
		PromptHTML: ix.Presentation.Material.Mattext.Body,
		Points:     1,
	}
	if p, ok := meta["points_possible"]; ok {
		if v, err := strconv.ParseFloat(p, 64); err == nil && v > 0 {
			rec.Points = v
		}
	}

	fullCredit := fullCreditIDs(ix.Resprocessing)
	slotCredit := slotCreditIDs(ix.Resprocessing)

	// Choice-based families render as one response_lid; option-select
	// families render one response_lid per blank/stem. Populate both views
	// and let the converter for the classified type pick the one it needs.
	if n := len(ix.Presentation.ResponseLIDs); n > 0 {
		first := ix.Presentation.ResponseLIDs[0]
		rec.Choices = parseChoices(first, fullCredit, slotCredit[first.Ident])
		for _, lid := range ix.Presentation.ResponseLIDs {
			rec.Slots = append(rec.Slots, Slot{
				Ident:   lid.Ident,
				Name:    lid.Material.Mattext.Body,
				Options: parseChoices(lid, fullCredit, slotCredit[lid.Ident]),
			})
		}
	}

	// Text-entry families: the accepted literals live in the response key.
	if len(ix.Presentation.ResponseStrs) > 0 {
		rec.Answers = literalAnswers(ix.Resprocessing)
	}
	parseNumeric(ix.Resprocessing, &rec)

	if rec.PromptHTML == "" && len(rec.Choices) == 0 && len(rec.Answers) == 0 {
		return Item{Record: rec, FailReason: "empty question body"}
	}
	return Item{Record: rec}
}

func declaredType(meta map[string]string) string {
	if t := meta["question_type"]; t != "" {
		return t
	}
	return meta["cc_profile"]
}

func parseChoices(lid responseLIDXML, fullCredit map[string]bool, slotIDs []string) []Choice {
	slot := make(map[string]bool, len(slotIDs))
	for _, id := range slotIDs {
		slot[id] = true
	}
	out := make([]Choice, 0, len(lid.Labels))
	for _, lab := range lid.Labels {
		text := lab.Material.Mattext.Body
		if strings.TrimSpace(text) == "" {
			continue
		}
		out = append(out, Choice{
			ID:      lab.Ident,
			Text:    text,
			Correct: fullCredit[lab.Ident] || slot[lab.Ident],
		})
	}
	return out
}

// fullCreditIDs extracts the choice identifiers selected by the full-credit
// respcondition (SCORE set to 100). Inside an <and> only the direct varequal
// children count: <not>-wrapped entries are the distractors.
func fullCreditIDs(rp resprocessingXML) map[string]bool {
	out := map[string]bool{}
	for _, rc := range rp.Respconditions {
		if !awardsFullCredit(rc.Setvars) {
			continue
		}
		cv := rc.Conditionvar
		for _, ve := range cv.Varequals {
			out[strings.TrimSpace(ve.Value)] = true
		}
		if cv.And != nil {
			for _, ve := range cv.And.Varequals {
				out[strings.TrimSpace(ve.Value)] = true
			}
		}
		if cv.Or != nil {
			for _, ve := range cv.Or.Varequals {
				out[strings.TrimSpace(ve.Value)] = true
			}
		}
	}
	return out
}

// slotCreditIDs maps each response_lid ident to the option ids any scoring
// respcondition accepts for it. Matching and dropdown items award partial
// credit per slot (setvar action="Add"), never a single 100 condition.
func slotCreditIDs(rp resprocessingXML) map[string][]string {
	out := map[string][]string{}
	for _, rc := range rp.Respconditions {
		if !awardsAnyCredit(rc.Setvars) {
			continue
		}
		for _, ve := range rc.Conditionvar.Varequals {
			if ve.Respident == "" {
				continue
			}
			out[ve.Respident] = append(out[ve.Respident], strings.TrimSpace(ve.Value))
		}
	}
	return out
}

// literalAnswers collects accepted answer strings for text-entry items in
// declared order, from every scoring condition.
func literalAnswers(rp resprocessingXML) []string {
	var out []string
	for _, rc := range rp.Respconditions {
		if !awardsAnyCredit(rc.Setvars) {
			continue
		}
		cv := rc.Conditionvar
		groups := cv.Varequals
		if cv.Or != nil {
			groups = append(groups, cv.Or.Varequals...)
		}
		for _, ve := range groups {
			if v := strings.TrimSpace(ve.Value); v != "" {
				out = append(out, v)
			}
		}
	}
	return out
}

// parseNumeric fills the numeric answer and range from the full-credit
// condition of a numerical or calculated item: <varequal> carries the exact
// value, an <and> of <vargte>/<varlte> carries the accepted range.
func parseNumeric(rp resprocessingXML, rec *Record) {
	for _, rc := range rp.Respconditions {
		if !awardsFullCredit(rc.Setvars) {
			continue
		}
		cv := rc.Conditionvar
		scanNumericGroup(groupXML{
			Varequals: cv.Varequals,
			Vargte:    cv.Vargte,
			Varlte:    cv.Varlte,
		}, rec)
		if cv.Or != nil {
			scanNumericGroup(*cv.Or, rec)
		}
		if cv.And != nil {
			scanNumericGroup(*cv.And, rec)
		}
	}
}

func scanNumericGroup(g groupXML, rec *Record) {
	for _, ve := range g.Varequals {
		if rec.NumericAnswer.Valid {
			break
		}
		if v, err := strconv.ParseFloat(strings.TrimSpace(ve.Value), 64); err == nil {
			rec.NumericAnswer = SomeFloat(v)
		}
	}
	if g.Vargte != nil && !rec.RangeLow.Valid {
		if v, err := strconv.ParseFloat(strings.TrimSpace(g.Vargte.Value), 64); err == nil {
			rec.RangeLow = SomeFloat(v)
		}
	}
	if g.Varlte != nil && !rec.RangeHigh.Valid {
		if v, err := strconv.ParseFloat(strings.TrimSpace(g.Varlte.Value), 64); err == nil {
			rec.RangeHigh = SomeFloat(v)
		}
	}
	for _, inner := range g.Ands {
		scanNumericGroup(inner, rec)
	}
}

func awardsFullCredit(svs []setvarXML) bool {
	for _, sv := range svs {
		if sv.Varname != "" && sv.Varname != "SCORE" {
			continue
		}
		v := strings.TrimSpace(sv.Value)
		if v == "100" || v == "100.0" || v == "100.00" {
			return true
		}
	}
	return false
}

func awardsAnyCredit(svs []setvarXML) bool {
	for _, sv := range svs {
		if sv.Varname != "" && sv.Varname != "SCORE" {
			continue
		}
		if v, err := strconv.ParseFloat(strings.TrimSpace(sv.Value), 64); err == nil && v > 0 {
			return true
		}
	}
	return false
}
