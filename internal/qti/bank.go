package qti

import "go.uber.org/zap"

// BankSource resolves a file inside the cartridge by relative path.
// *imscc.Archive satisfies it.
type BankSource interface {
	ReadFile(name string) ([]byte, error)
}

// Loader flattens one assessment into its ordered question sequence,
// resolving bank references in place. All file access happens here, before
// classification, so everything downstream stays pure and synchronous.
type Loader struct {
	src BankSource
	log *zap.Logger
}

func NewLoader(src BankSource, log *zap.Logger) *Loader {
	if log == nil {
		log = zap.NewNop()
	}
	return &Loader{src: src, log: log}
}

// Load produces the ordered item sequence for a quiz. Bank-referenced items
// are spliced at the position of their reference; a missing or unreadable
// bank collapses to a single failed item there, keeping its place in the
// order and the count.
func (l *Loader) Load(a *Assessment) []Item {
	var items []Item
	for _, e := range a.Entries {
		switch {
		case e.Item != nil:
			items = append(items, *e.Item)
		case e.BankRef != "":
			items = append(items, l.loadBank(e.BankRef)...)
		}
	}
	return items
}

// Canvas stores shared banks under non_cc_assessments; older exports drop
// the extra .qti suffix.
func bankPaths(ref string) []string {
	return []string{
		"non_cc_assessments/" + ref + ".xml.qti",
		"non_cc_assessments/" + ref + ".xml",
		ref + ".xml.qti",
	}
}

func (l *Loader) loadBank(ref string) []Item {
	var data []byte
	var err error
	for _, p := range bankPaths(ref) {
		data, err = l.src.ReadFile(p)
		if err == nil {
			break
		}
	}
	if err != nil || data == nil {
		l.log.Warn("question bank missing", zap.String("bank", ref))
		return []Item{bankFailure(ref, "missing question bank")}
	}
	items, err := ParseBank(data)
	if err != nil {
		l.log.Warn("question bank unreadable", zap.String("bank", ref), zap.Error(err))
		return []Item{bankFailure(ref, "malformed question bank")}
	}
	l.log.Debug("question bank loaded", zap.String("bank", ref), zap.Int("items", len(items)))
	return items
}

func bankFailure(ref, reason string) Item {
	return Item{
		Record: Record{
			Ident:      ref,
			SourceType: "question_bank",
			PromptHTML: "question bank reference: " + ref,
		},
		FailReason: reason,
	}
}
