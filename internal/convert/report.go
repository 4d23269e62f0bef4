package convert

import "sync"

// ItemResult is the per-question trace line of a report: enough to point a
// human back at the exact original question for any skip.
type ItemResult struct {
	Position   int         `json:"position"`
	SourceType string      `json:"source_type"`
	Title      string      `json:"title,omitempty"`
	Outcome    OutcomeKind `json:"outcome"`
	Reason     string      `json:"reason,omitempty"`
}

// Report is the immutable accumulated statistics of one run. The sum of
// Counts always equals the number of records recorded; nothing is lost.
type Report struct {
	Counts  map[OutcomeKind]int `json:"counts"`
	Skipped map[string]int      `json:"skipped"` // sourceType -> unsupported count
	Items   []ItemResult        `json:"items,omitempty"`
}

// Total is the number of records this report covers.
func (r Report) Total() int {
	n := 0
	for _, c := range r.Counts {
		n += c
	}
	return n
}

// Merge folds another report into a new combined one (course-level totals
// over per-quiz reports). Item positions keep their per-quiz meaning.
func (r Report) Merge(o Report) Report {
	out := Report{
		Counts:  make(map[OutcomeKind]int, len(r.Counts)+len(o.Counts)),
		Skipped: make(map[string]int, len(r.Skipped)+len(o.Skipped)),
	}
	for k, v := range r.Counts {
		out.Counts[k] += v
	}
	for k, v := range o.Counts {
		out.Counts[k] += v
	}
	for k, v := range r.Skipped {
		out.Skipped[k] += v
	}
	for k, v := range o.Skipped {
		out.Skipped[k] += v
	}
	out.Items = append(append([]ItemResult{}, r.Items...), o.Items...)
	return out
}

// Builder accumulates outcomes. Record is safe for concurrent use: it is the
// single serialization point of the parallel conversion stage.
type Builder struct {
	mu      sync.Mutex
	counts  map[OutcomeKind]int
	skipped map[string]int
	items   []ItemResult
}

func NewBuilder() *Builder {
	return &Builder{
		counts:  map[OutcomeKind]int{},
		skipped: map[string]int{},
	}
}

// Record registers exactly one processed record's outcome.
func (b *Builder) Record(o Outcome) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.counts[o.Kind]++
	res := ItemResult{
		Position:   o.Position,
		SourceType: o.SourceType,
		Title:      o.Title,
		Outcome:    o.Kind,
	}
	if o.Kind == OutcomeUnsupported && o.Unsupported != nil {
		res.Reason = o.Unsupported.Reason
		key := o.SourceType
		if key == "" {
			key = "(no type declared)"
		}
		b.skipped[key]++
	}
	b.items = append(b.items, res)
}

// Finalize returns an immutable snapshot. The builder may keep recording
// afterwards; the snapshot does not alias its state.
func (b *Builder) Finalize() Report {
	b.mu.Lock()
	defer b.mu.Unlock()
	r := Report{
		Counts:  make(map[OutcomeKind]int, len(b.counts)),
		Skipped: make(map[string]int, len(b.skipped)),
		Items:   append([]ItemResult{}, b.items...),
	}
	for k, v := range b.counts {
		r.Counts[k] = v
	}
	for k, v := range b.skipped {
		r.Skipped[k] = v
	}
	return r
}
