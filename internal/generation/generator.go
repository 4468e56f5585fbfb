// Package generation drives one copy request from raw fields to finished content,
// choosing between model output and deterministic fallback copy.
package generation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/semaphore"

	"github.com/jonathan/cardcopy/internal/copywriting"
	"github.com/jonathan/cardcopy/internal/llm"
	"github.com/jonathan/cardcopy/internal/prompts"
	"github.com/jonathan/cardcopy/internal/sanitize"
	"github.com/jonathan/cardcopy/internal/types"
	"github.com/jonathan/cardcopy/internal/validation"
)

// QualityThreshold is the lowest input score that is sent to the model
const QualityThreshold = 30

const (
	defaultTimeout       = 30 * time.Second
	defaultMaxConcurrent = 8
)

// State is a step in the life of a generation request.
type State string

// Generation states, in the order a request can visit them
const (
	StateReceived         State = "RECEIVED"
	StateSanitized        State = "SANITIZED"
	StateLowQualityInput  State = "LOW_QUALITY_INPUT"
	StateModelCalled      State = "MODEL_CALLED"
	StateModelSucceeded   State = "MODEL_SUCCEEDED"
	StateModelFailed      State = "MODEL_FAILED"
	StateValidationFailed State = "VALIDATION_FAILED"
	StateValidated        State = "VALIDATED"
	StateDone             State = "DONE"
)

// Options configures a Generator.
type Options struct {
	Tier   llm.ModelTier
	Params llm.GenerationParams
	// Timeout bounds a single model call, including the wait for a concurrency slot
	Timeout time.Duration
	// MaxConcurrent bounds in-flight model calls across all requests
	MaxConcurrent int64
	// ModelName is reported when no client is configured
	ModelName string
}

// Generator produces card copy. It is safe for concurrent use.
type Generator struct {
	client llm.Client
	opts   Options
	sem    *semaphore.Weighted
}

// Result is the outcome of one Generate call.
type Result struct {
	Content types.GeneratedContent
	// Outcome is the state that decided where the content came from:
	// VALIDATED, LOW_QUALITY_INPUT, MODEL_FAILED or VALIDATION_FAILED
	Outcome State
	States  []State
	Score   int
	// Err explains why fallback content was used; nil for model content
	Err error
}

// Fallback reports whether the content was produced without the model.
func (r Result) Fallback() bool {
	return r.Outcome != StateValidated
}

// New creates a Generator. A nil client is allowed; every request is then served
// from fallback content.
func New(client llm.Client, opts Options) *Generator {
	if opts.Tier == "" {
		opts.Tier = llm.TierStandard
	}
	if opts.Params == (llm.GenerationParams{}) {
		opts.Params = llm.DefaultParams()
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.MaxConcurrent <= 0 {
		opts.MaxConcurrent = defaultMaxConcurrent
	}

	return &Generator{
		client: client,
		opts:   opts,
		sem:    semaphore.NewWeighted(opts.MaxConcurrent),
	}
}

// Model returns the name of the model requests are sent to.
func (g *Generator) Model() string {
	if g.client != nil {
		if name := g.client.GetModel(g.opts.Tier); name != "" {
			return name
		}
	}
	return g.opts.ModelName
}

// HasClient reports whether a model client is configured.
func (g *Generator) HasClient() bool {
	return g.client != nil
}

// run records the state trail of a single request.
type run struct {
	logger *zerolog.Logger
	states []State
}

func (r *run) enter(state State) {
	r.states = append(r.states, state)
	r.logger.Debug().Str("state", string(state)).Msg("generation state")
}

// Generate turns raw fields into card copy. It never fails: every path that does
// not yield validated model output falls back to deterministic content.
func (g *Generator) Generate(ctx context.Context, fields types.FieldSet, style types.Style) Result {
	style = types.ParseStyle(string(style))
	r := &run{logger: zerolog.Ctx(ctx)}
	r.enter(StateReceived)

	cleaned, score := sanitize.Assess(fields)
	r.enter(StateSanitized)
	r.logger.Debug().
		Int("fields", fields.Len()).
		Int("retained", cleaned.Len()).
		Int("score", score).
		Msg("input assessed")

	if score < QualityThreshold {
		r.enter(StateLowQualityInput)
		err := &InputRejectedError{
			Score:   score,
			Message: fmt.Sprintf("quality score below %d", QualityThreshold),
		}
		return g.fallback(r, cleaned, style, score, StateLowQualityInput, err)
	}

	r.enter(StateModelCalled)
	sections, err := g.callModel(ctx, cleaned, style)
	if err != nil {
		r.enter(StateModelFailed)
		return g.fallback(r, cleaned, style, score, StateModelFailed, err)
	}
	r.enter(StateModelSucceeded)

	if strings.TrimSpace(sections.BodyText) == "" {
		r.enter(StateValidationFailed)
		err := &OutputRejectedError{Message: "model returned no body text"}
		return g.fallback(r, cleaned, style, score, StateValidationFailed, err)
	}
	if report := validation.Check(sections.BodyText, cleaned.Values()); !report.OK() {
		r.enter(StateValidationFailed)
		err := &OutputRejectedError{
			Message: fmt.Sprintf("body failed %d quality checks", len(report.Issues)),
			Issues:  report.Issues,
		}
		return g.fallback(r, cleaned, style, score, StateValidationFailed, err)
	}
	r.enter(StateValidated)

	content := types.GeneratedContent{
		Headline:     sections.Headline,
		BodyText:     sections.BodyText,
		CallToAction: sections.CallToAction,
		GeneratedAt:  time.Now().UTC(),
	}
	if content.Headline == "" || content.CallToAction == "" {
		filler := copywriting.Fallback(cleaned, style)
		if content.Headline == "" {
			content.Headline = filler.Headline
		}
		if content.CallToAction == "" {
			content.CallToAction = filler.CallToAction
		}
	}

	r.enter(StateDone)
	return Result{
		Content: content.Clamp(),
		Outcome: StateValidated,
		States:  r.states,
		Score:   score,
	}
}

func (g *Generator) fallback(r *run, cleaned types.FieldSet, style types.Style, score int, outcome State, reason error) Result {
	r.logger.Warn().
		Err(reason).
		Str("outcome", string(outcome)).
		Int("score", score).
		Str("style", style.String()).
		Msg("serving fallback content")

	content := copywriting.Fallback(cleaned, style)
	r.enter(StateDone)
	return Result{
		Content: content,
		Outcome: outcome,
		States:  r.states,
		Score:   score,
		Err:     reason,
	}
}

type modelReply struct {
	sections copywriting.Sections
	err      error
}

// callModel performs the single model call for a request, bounded by the
// generator's timeout and concurrency limit. Panics in the client or parser
// are returned as errors.
func (g *Generator) callModel(ctx context.Context, cleaned types.FieldSet, style types.Style) (copywriting.Sections, error) {
	if g.client == nil {
		return copywriting.Sections{}, &ModelUnavailableError{Message: "no model client configured"}
	}

	ctx, cancel := context.WithTimeout(ctx, g.opts.Timeout)
	defer cancel()

	if err := g.sem.Acquire(ctx, 1); err != nil {
		return copywriting.Sections{}, &ModelUnavailableError{Message: "no model slot available", Cause: err}
	}

	prompt := prompts.Build(cleaned, style)
	replies := make(chan modelReply, 1)
	go func() {
		defer g.sem.Release(1)
		defer func() {
			if p := recover(); p != nil {
				replies <- modelReply{err: &ModelUnavailableError{Message: fmt.Sprintf("model call panicked: %v", p)}}
			}
		}()

		raw, err := g.client.GenerateContent(ctx, prompt, g.opts.Tier, g.opts.Params)
		if err != nil {
			replies <- modelReply{err: &ModelUnavailableError{Message: "model call failed", Cause: err}}
			return
		}
		replies <- modelReply{sections: copywriting.Parse(raw)}
	}()

	select {
	case reply := <-replies:
		return reply.sections, reply.err
	case <-ctx.Done():
		return copywriting.Sections{}, &ModelUnavailableError{Message: "model call timed out", Cause: ctx.Err()}
	}
}
