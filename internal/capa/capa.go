// Package capa builds Open edX CAPA response markup. Each builder renders
// one response element as a standalone fragment; the engine assembles
// fragments into a problem body and the generator wraps the body in its
// <problem> container.
package capa

import (
	"encoding/xml"
	"strconv"
	"strings"
)

// Option is one choice of a choice-style response.
type Option struct {
	Text    string // HTML fragment, emitted verbatim
	Correct bool
}

type multipleChoiceResponse struct {
	XMLName     xml.Name    `xml:"multiplechoiceresponse"`
	ChoiceGroup choiceGroup `xml:"choicegroup"`
}

type choiceResponse struct {
	XMLName       xml.Name    `xml:"choiceresponse"`
	CheckboxGroup promptGroup `xml:"checkboxgroup"`
}

type choiceGroup struct {
	Type    string      `xml:"type,attr"`
	Choices []choiceXML `xml:"choice"`
}

type promptGroup struct {
	Choices []choiceXML `xml:"choice"`
}

type choiceXML struct {
	Correct bool   `xml:"correct,attr"`
	Body    string `xml:",innerxml"`
}

type stringResponse struct {
	XMLName    xml.Name           `xml:"stringresponse"`
	Answer     string             `xml:"answer,attr"`
	Type       string             `xml:"type,attr"`
	Additional []additionalAnswer `xml:"additional_answer"`
	Textline   textline           `xml:"textline"`
}

type additionalAnswer struct {
	Answer string `xml:"answer,attr"`
}

type textline struct {
	Size string `xml:"size,attr"`
}

type numericalResponse struct {
	XMLName xml.Name       `xml:"numericalresponse"`
	Answer  string         `xml:"answer,attr"`
	Param   *responseParam `xml:"responseparam,omitempty"`
	Input   formulaInput   `xml:"formulaequationinput"`
}

type responseParam struct {
	Type    string `xml:"type,attr"`
	Default string `xml:"default,attr"`
}

type formulaInput struct{}

type optionResponse struct {
	XMLName xml.Name    `xml:"optionresponse"`
	Label   *labelXML   `xml:"label,omitempty"`
	Input   optionInput `xml:"optioninput"`
}

type labelXML struct {
	Body string `xml:",innerxml"`
}

type optionInput struct {
	Options []optionXML `xml:"option"`
}

type optionXML struct {
	Correct string `xml:"correct,attr"` // "True"/"False", CAPA convention
	Body    string `xml:",innerxml"`
}

// MultipleChoice renders a single-answer choice response. Choice order is
// kept verbatim; it affects display only.
func MultipleChoice(opts []Option) (string, error) {
	v := multipleChoiceResponse{ChoiceGroup: choiceGroup{Type: "MultipleChoice", Choices: choices(opts)}}
	return render(v)
}

// Checkbox renders a select-all-that-apply response.
func Checkbox(opts []Option) (string, error) {
	v := choiceResponse{CheckboxGroup: promptGroup{Choices: choices(opts)}}
	return render(v)
}

// StringMatch renders a text response accepting the primary answer plus any
// additional accepted answers. Type "ci" fixes case-insensitive matching.
func StringMatch(primary string, additional []string) (string, error) {
	v := stringResponse{
		Answer:   primary,
		Type:     "ci",
		Textline: textline{Size: "20"},
	}
	for _, a := range additional {
		v.Additional = append(v.Additional, additionalAnswer{Answer: a})
	}
	return render(v)
}

// Numerical renders a numeric response; a present tolerance becomes the
// responseparam margin.
func Numerical(answer float64, tolerance float64, hasTolerance bool) (string, error) {
	v := numericalResponse{Answer: formatNumber(answer)}
	if hasTolerance {
		v.Param = &responseParam{Type: "tolerance", Default: formatNumber(tolerance)}
	}
	return render(v)
}

// OptionSelect renders one blank/stem as an independent dropdown.
func OptionSelect(label string, opts []Option) (string, error) {
	v := optionResponse{Input: optionInput{Options: make([]optionXML, 0, len(opts))}}
	if strings.TrimSpace(label) != "" {
		v.Label = &labelXML{Body: label}
	}
	for _, o := range opts {
		correct := "False"
		if o.Correct {
			correct = "True"
		}
		v.Input.Options = append(v.Input.Options, optionXML{Correct: correct, Body: o.Text})
	}
	return render(v)
}

// Paragraph renders a plain-text note as an escaped <p>.
func Paragraph(text string) string {
	var b strings.Builder
	b.WriteString("<p>")
	xml.EscapeText(&b, []byte(text))
	b.WriteString("</p>")
	return b.String()
}

// Prompt carries the question body into the problem verbatim. Fragments that
// are already markup pass through untouched; bare text gets a paragraph.
func Prompt(html string) string {
	trimmed := strings.TrimSpace(html)
	if trimmed == "" {
		return ""
	}
	if strings.HasPrefix(trimmed, "<") {
		return trimmed
	}
	return Paragraph(trimmed)
}

// Body joins rendered fragments into one problem body.
func Body(parts ...string) string {
	kept := parts[:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, "\n")
}

func choices(opts []Option) []choiceXML {
	out := make([]choiceXML, 0, len(opts))
	for _, o := range opts {
		out = append(out, choiceXML{Correct: o.Correct, Body: o.Text})
	}
	return out
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func render(v interface{}) (string, error) {
	b, err := xml.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}
	return string(b), nil
}
