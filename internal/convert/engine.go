package convert

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kalebabebe/mitx-canvas-tools/internal/qti"
)

// ErrNoQuestions is returned for a quiz that yielded zero question records.
// It is the only run-level failure: everything item-level is reported, not
// raised.
var ErrNoQuestions = errors.New("no question records loaded")

type converterFunc func(qti.Record) Outcome

// Options configures an Engine.
type Options struct {
	// Workers bounds the parallel conversion pool; <=0 means 4.
	Workers int
	// OptionSelect enables the matching/dropdown/multi-blank converters.
	// Off, those types report as unsupported rather than being guessed.
	OptionSelect bool
	Logger       *zap.Logger
}

// Engine converts loaded question records. Converters are pure: no item's
// conversion observes another item's output, which is what makes the
// parallel map safe.
type Engine struct {
	workers    int
	converters map[Family]converterFunc
	log        *zap.Logger
}

func New(opts Options) *Engine {
	workers := opts.Workers
	if workers <= 0 {
		workers = 4
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	optionSelect := convertOptionSelect
	if !opts.OptionSelect {
		optionSelect = convertOptionSelectDisabled
	}
	return &Engine{
		workers: workers,
		log:     log,
		converters: map[Family]converterFunc{
			FamilyChoiceSingle:   convertChoiceSingle,
			FamilyChoiceMultiple: convertChoiceMultiple,
			FamilyStringMatch:    convertStringMatch,
			FamilyNumerical:      convertNumerical,
			FamilyCalculated:     convertNumerical,
			FamilyOpenResponse:   convertOpenResponse,
			FamilyOptionSelect:   optionSelect,
			FamilyFileUpload:     convertFileUpload,
			FamilyTextOnly:       convertTextOnly,
		},
	}
}

// Result is one quiz run: outcomes in input order plus the finished report.
type Result struct {
	Outcomes []Outcome
	Report   Report
}

// Run converts every loaded item and accumulates the report. Outcome order
// matches item order regardless of worker interleaving. Each item is
// recorded exactly once; the report's total equals len(items).
func (e *Engine) Run(ctx context.Context, items []qti.Item) (*Result, error) {
	if len(items) == 0 {
		return nil, ErrNoQuestions
	}

	outcomes := make([]Outcome, len(items))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for i := range items {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			outcomes[i] = e.convertItem(items[i], i)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	builder := NewBuilder()
	for _, o := range outcomes {
		builder.Record(o)
	}
	report := builder.Finalize()
	e.log.Debug("quiz converted",
		zap.Int("items", len(items)),
		zap.Int("unsupported", report.Counts[OutcomeUnsupported]),
	)
	return &Result{Outcomes: outcomes, Report: report}, nil
}

func (e *Engine) convertItem(item qti.Item, pos int) Outcome {
	var out Outcome
	switch {
	case item.Failed():
		out = unsupported(item.Record, item.FailReason)
	default:
		rec := item.Record
		fam := Classify(rec.SourceType)
		if conv, ok := e.converters[fam]; ok && fam != FamilyUnknown {
			out = conv(rec)
		} else if rec.SourceType == "" {
			out = unsupported(rec, "no question type declared")
		} else {
			out = unsupported(rec, fmt.Sprintf("unknown type %q", rec.SourceType))
		}
	}
	out.Position = pos
	if out.Kind == OutcomeUnsupported {
		e.log.Debug("item not converted",
			zap.Int("position", pos),
			zap.String("source_type", out.SourceType),
			zap.String("reason", out.Unsupported.Reason),
		)
	}
	return out
}
