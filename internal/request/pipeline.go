package request

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/kinograb/kinograb/internal/catalog"
	"github.com/kinograb/kinograb/internal/frame"
	"github.com/kinograb/kinograb/internal/resolver"
	"github.com/kinograb/kinograb/internal/subtitle"
	"github.com/kinograb/kinograb/internal/timecode"
)

// DefaultMaxSpecs caps the brackets accepted per request.
const DefaultMaxSpecs = 8

// Session is one opened media source the pipeline extracts from.
type Session interface {
	Extract(ctx context.Context, offset timecode.Offset) (*frame.Grab, error)
	Close() error
}

// Extractor opens extraction sessions against media locations.
type Extractor interface {
	Open(location string) (Session, error)
}

// CueLoader loads the subtitle track sitting next to a media file.
type CueLoader func(mediaPath, lang string) ([]subtitle.Cue, error)

// Request is one user submission: a catalog query plus the frame specs
// to pull from the matched item.
type Request struct {
	Query    string
	Specs    []Spec
	Language string
	Kind     catalog.Kind
}

// FrameResult pairs a successful extraction with the spec that asked
// for it. Results keep request order.
type FrameResult struct {
	Spec Spec
	Grab *frame.Grab
}

// SpecFailure records one spec that could not be served.
type SpecFailure struct {
	Spec Spec
	Err  error
}

// Result is a completed run: the resolved item, every frame that came
// out, and every spec that failed. RequestID ties log lines together.
type Result struct {
	Item      catalog.Media
	Frames    []FrameResult
	Failures  []SpecFailure
	RequestID string
}

// Pipeline wires resolution, subtitle lookup, and frame extraction into
// one synchronous run per request.
type Pipeline struct {
	view      resolver.View
	extractor Extractor
	cues      CueLoader
	maxSpecs  int
	logger    *slog.Logger
}

// NewPipeline builds a Pipeline. A zero maxSpecs falls back to
// DefaultMaxSpecs; a nil loader falls back to subtitle.Load.
func NewPipeline(view resolver.View, extractor Extractor, cues CueLoader, maxSpecs int, logger *slog.Logger) *Pipeline {
	if cues == nil {
		cues = subtitle.Load
	}
	if maxSpecs <= 0 {
		maxSpecs = DefaultMaxSpecs
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		view:      view,
		extractor: extractor,
		cues:      cues,
		maxSpecs:  maxSpecs,
		logger:    logger,
	}
}

// Run executes one request end to end. The item resolves exactly once
// and cues load at most once; each spec then extracts independently,
// with failures collected rather than aborting the batch. A run with
// zero successful frames fails as a whole, wrapping the first failure.
func (p *Pipeline) Run(ctx context.Context, req Request) (*Result, error) {
	id := uuid.NewString()
	logger := p.logger.With("request_id", id, "query", req.Query)

	if len(req.Specs) == 0 || len(req.Specs) > p.maxSpecs {
		return nil, fmt.Errorf("%w: got %d specs, want 1..%d",
			ErrSpecCount, len(req.Specs), p.maxSpecs)
	}

	item, err := p.resolve(req)
	if err != nil {
		return nil, err
	}
	logger.Info("resolved item", "item", item.DisplayTitle(), "kind", item.Kind())

	hasQuotes := false
	for _, spec := range req.Specs {
		if spec.IsQuote() {
			hasQuotes = true
			break
		}
	}
	if hasQuotes && !item.Subtitled() {
		return nil, fmt.Errorf("%w: %s", ErrQuoteUnsupported, item.Kind())
	}

	var cues []subtitle.Cue
	if hasQuotes {
		cues, err = p.cues(item.Location(), req.Language)
		if err != nil {
			return nil, err
		}
	}

	session, err := p.extractor.Open(item.Location())
	if err != nil {
		return nil, err
	}
	defer session.Close()

	result := &Result{Item: item, RequestID: id}
	for _, spec := range req.Specs {
		grab, err := p.extractOne(ctx, session, cues, spec)
		if err != nil {
			logger.Warn("spec failed", "spec", spec.String(), "error", err)
			result.Failures = append(result.Failures, SpecFailure{Spec: spec, Err: err})
			continue
		}
		result.Frames = append(result.Frames, FrameResult{Spec: spec, Grab: grab})
	}

	if len(result.Frames) == 0 {
		return nil, fmt.Errorf("no frames extracted for %q: %w",
			req.Query, result.Failures[0].Err)
	}
	logger.Info("request complete",
		"frames", len(result.Frames), "failures", len(result.Failures))
	return result, nil
}

func (p *Pipeline) resolve(req Request) (catalog.Media, error) {
	if req.Kind == catalog.KindSong {
		return resolver.ResolveSong(req.Query, p.view)
	}
	return resolver.Resolve(req.Query, p.view)
}

func (p *Pipeline) extractOne(ctx context.Context, session Session, cues []subtitle.Cue, spec Spec) (*frame.Grab, error) {
	offset := spec.Offset
	if spec.IsQuote() {
		cue, err := subtitle.LookupQuote(cues, spec.Quote)
		if err != nil {
			return nil, err
		}
		offset = cue.Start
	}
	return session.Extract(ctx, offset.AddMillis(spec.Nudge))
}
