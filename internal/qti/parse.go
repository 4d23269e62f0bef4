package qti

import (
	"encoding/xml"
	"fmt"
	"strings"
)

// Canvas exports QTI 1.2 ("questestinterop") documents. A quiz file holds one
// assessment whose root section mixes inline <item> elements with nested
// <section> elements that pull from an external question bank via
// <sourcebank_ref>. Bank files hold an <objectbank> of items. Struct tags
// use local names only so both namespaced and namespace-less exports decode.

type questestinterop struct {
	XMLName    xml.Name       `xml:"questestinterop"`
	Assessment *assessmentXML `xml:"assessment"`
	ObjectBank *objectBankXML `xml:"objectbank"`
	Items      []itemXML      `xml:"item"`
}

type assessmentXML struct {
	Ident    string       `xml:"ident,attr"`
	Title    string       `xml:"title,attr"`
	Sections []sectionXML `xml:"section"`
}

type objectBankXML struct {
	Ident string    `xml:"ident,attr"`
	Items []itemXML `xml:"item"`
}

// entryKind discriminates the ordered children of a section.
type entryKind int

const (
	entryItem entryKind = iota
	entryBankRef
)

type sectionEntry struct {
	kind entryKind
	item itemXML
	bank string // sourcebank identifier for entryBankRef
}

// sectionXML preserves the document order of its mixed children, which is
// what makes bank items splice in at the position of their reference.
type sectionXML struct {
	Ident   string
	Entries []sectionEntry
}

func (s *sectionXML) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for _, a := range start.Attr {
		if a.Name.Local == "ident" {
			s.Ident = a.Value
		}
	}
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "item":
				var it itemXML
				if err := d.DecodeElement(&it, &t); err != nil {
					return err
				}
				s.Entries = append(s.Entries, sectionEntry{kind: entryItem, item: it})
			case "section":
				var inner sectionXML
				if err := d.DecodeElement(&inner, &t); err != nil {
					return err
				}
				// Canvas wraps a bank pull in a nested section carrying only
				// the selection; hoist its entries to keep one flat sequence.
				s.Entries = append(s.Entries, inner.Entries...)
			case "selection_ordering":
				var sel selectionOrderingXML
				if err := d.DecodeElement(&sel, &t); err != nil {
					return err
				}
				if ref := strings.TrimSpace(sel.Selection.SourceBankRef); ref != "" {
					s.Entries = append(s.Entries, sectionEntry{kind: entryBankRef, bank: ref})
				}
			default:
				if err := d.Skip(); err != nil {
					return err
				}
			}
		case xml.EndElement:
			return nil
		}
	}
}

type selectionOrderingXML struct {
	Selection struct {
		SourceBankRef string `xml:"sourcebank_ref"`
	} `xml:"selection"`
}

type itemXML struct {
	Ident         string            `xml:"ident,attr"`
	Title         string            `xml:"title,attr"`
	Metadata      []metadataField   `xml:"itemmetadata>qtimetadata>qtimetadatafield"`
	Presentation  presentationXML   `xml:"presentation"`
	Resprocessing resprocessingXML  `xml:"resprocessing"`
}

type metadataField struct {
	Label string `xml:"fieldlabel"`
	Entry string `xml:"fieldentry"`
}

type presentationXML struct {
	Material     materialXML       `xml:"material"`
	ResponseLIDs []responseLIDXML  `xml:"response_lid"`
	ResponseStrs []responseStrXML  `xml:"response_str"`
}

type materialXML struct {
	Mattext mattextXML `xml:"mattext"`
}

type mattextXML struct {
	Texttype string `xml:"texttype,attr"`
	Body     string `xml:",chardata"`
}

type responseLIDXML struct {
	Ident       string             `xml:"ident,attr"`
	Cardinality string             `xml:"rcardinality,attr"`
	Material    materialXML        `xml:"material"`
	Labels      []responseLabelXML `xml:"render_choice>response_label"`
}

type responseLabelXML struct {
	Ident    string      `xml:"ident,attr"`
	Material materialXML `xml:"material"`
}

type responseStrXML struct {
	Ident string `xml:"ident,attr"`
}

type resprocessingXML struct {
	Respconditions []respconditionXML `xml:"respcondition"`
}

type respconditionXML struct {
	Conditionvar conditionvarXML `xml:"conditionvar"`
	Setvars      []setvarXML     `xml:"setvar"`
}

type setvarXML struct {
	Varname string `xml:"varname,attr"`
	Action  string `xml:"action,attr"`
	Value   string `xml:",chardata"`
}

type conditionvarXML struct {
	And       *groupXML     `xml:"and"`
	Or        *groupXML     `xml:"or"`
	Varequals []varequalXML `xml:"varequal"`
	Vargte    *boundXML     `xml:"vargte"`
	Varlte    *boundXML     `xml:"varlte"`
}

// groupXML covers both <and> and <or>. <not> children wrap the incorrect
// alternatives of a multiple-response key and are deliberately not descended.
type groupXML struct {
	Varequals []varequalXML `xml:"varequal"`
	Ands      []groupXML    `xml:"and"`
	Vargte    *boundXML     `xml:"vargte"`
	Varlte    *boundXML     `xml:"varlte"`
}

type varequalXML struct {
	Respident string `xml:"respident,attr"`
	Case      string `xml:"case,attr"`
	Value     string `xml:",chardata"`
}

type boundXML struct {
	Respident string `xml:"respident,attr"`
	Value     string `xml:",chardata"`
}

// Assessment is one parsed quiz document: its ordered entries are inline
// question records and references to external question banks.
type Assessment struct {
	Ident   string
	Title   string
	Entries []Entry
}

// Entry is one ordered element of a quiz: exactly one of Item or BankRef set.
type Entry struct {
	Item    *Item
	BankRef string
}

// ParseAssessment parses one Canvas assessment_qti.xml document.
func ParseAssessment(data []byte) (*Assessment, error) {
	var doc questestinterop
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse assessment: %w", err)
	}
	if doc.Assessment == nil {
		return nil, fmt.Errorf("parse assessment: no assessment element")
	}
	a := &Assessment{Ident: doc.Assessment.Ident, Title: doc.Assessment.Title}
	for _, sec := range doc.Assessment.Sections {
		for _, e := range sec.Entries {
			switch e.kind {
			case entryItem:
				it := parseItem(e.item)
				a.Entries = append(a.Entries, Entry{Item: &it})
			case entryBankRef:
				a.Entries = append(a.Entries, Entry{BankRef: e.bank})
			}
		}
	}
	return a, nil
}

// ParseBank parses a question-bank file (<objectbank>, or a bare item list)
// into loaded items in declared order.
func ParseBank(data []byte) ([]Item, error) {
	var doc questestinterop
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse bank: %w", err)
	}
	var raw []itemXML
	switch {
	case doc.ObjectBank != nil:
		raw = doc.ObjectBank.Items
	case doc.Assessment != nil:
		for _, sec := range doc.Assessment.Sections {
			for _, e := range sec.Entries {
				if e.kind == entryItem {
					raw = append(raw, e.item)
				}
			}
		}
	default:
		raw = doc.Items
	}
	items := make([]Item, 0, len(raw))
	for _, ix := range raw {
		items = append(items, parseItem(ix))
	}
	return items, nil
}
