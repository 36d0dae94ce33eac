package llm

//go:generate mockgen -destination=../../mocks/mock_text_generator.go -package=mocks github.com/sevigo/gitdocify/internal/llm TextGenerator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/sevigo/goframe/llms"
	"golang.org/x/sync/errgroup"

	"github.com/sevigo/gitdocify/internal/core"
)

var (
	// ErrNoFiles is returned when the analysis found nothing to document.
	ErrNoFiles = errors.New("no files found to analyze")
	// ErrUnknownSection is returned for section names that do not exist.
	ErrUnknownSection = errors.New("unknown document section")
)

// TextGenerator turns a prompt into text.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type modelGenerator struct {
	model llms.Model
}

// NewModelGenerator adapts a goframe model to TextGenerator.
func NewModelGenerator(model llms.Model) TextGenerator {
	return &modelGenerator{model: model}
}

func (m *modelGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, m.model, prompt)
}

// GeneratorOptions tunes document generation.
type GeneratorOptions struct {
	Provider ModelProvider
	// MaxPromptTokens bounds the JSON payloads embedded in each prompt.
	MaxPromptTokens int
	// Concurrency is the number of sections generated at the same time.
	Concurrency int
	// Timeout applies to each model call. Zero means no timeout.
	Timeout time.Duration
	// Sections restricts generation to the named sections. Empty means all.
	Sections           []string
	CustomInstructions []string
}

// EventKind describes a progress event.
type EventKind int

const (
	SectionStarted EventKind = iota
	SectionDone
	SectionFailed
	SectionSkipped
)

func (k EventKind) String() string {
	switch k {
	case SectionStarted:
		return "started"
	case SectionDone:
		return "done"
	case SectionFailed:
		return "failed"
	case SectionSkipped:
		return "skipped"
	}
	return "unknown"
}

// Event reports progress on a single section.
type Event struct {
	Kind    EventKind
	Section PromptKey
	Index   int
	Total   int
	Err     error
}

// SectionResult is the outcome of one section.
type SectionResult struct {
	Key            PromptKey
	Content        string
	Skipped        bool
	Err            error
	PromptTokens   int
	ResponseTokens int
}

// Document is the generated Markdown with per-section details.
type Document struct {
	Markdown string
	Sections []SectionResult
}

// TotalTokens is the estimated number of tokens sent and received.
func (d *Document) TotalTokens() int {
	n := 0
	for _, s := range d.Sections {
		n += s.PromptTokens + s.ResponseTokens
	}
	return n
}

// Failed returns the sections whose generation failed.
func (d *Document) Failed() []SectionResult {
	var out []SectionResult
	for _, s := range d.Sections {
		if s.Err != nil {
			out = append(out, s)
		}
	}
	return out
}

// DocGenerator renders analysis results into a Markdown document.
type DocGenerator struct {
	gen       TextGenerator
	prompts   *PromptManager
	tokenizer *Tokenizer
	opts      GeneratorOptions
	sections  []Section
	logger    *slog.Logger
}

// NewDocGenerator checks the requested sections and prepares a generator.
func NewDocGenerator(gen TextGenerator, prompts *PromptManager, tokenizer *Tokenizer, opts GeneratorOptions, logger *slog.Logger) (*DocGenerator, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if tokenizer == nil {
		tokenizer = NewTokenizer(nil)
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = 1
	}
	if opts.Provider == "" {
		opts.Provider = DefaultProvider
	}

	sections, err := selectSections(opts.Sections)
	if err != nil {
		return nil, err
	}
	for _, s := range sections {
		if !prompts.Has(s.Key) {
			return nil, fmt.Errorf("no prompt template for section %q", s.Key)
		}
	}

	return &DocGenerator{
		gen:       gen,
		prompts:   prompts,
		tokenizer: tokenizer,
		opts:      opts,
		sections:  sections,
		logger:    logger,
	}, nil
}

func selectSections(names []string) ([]Section, error) {
	if len(names) == 0 {
		return Sections, nil
	}
	want := make(map[PromptKey]bool, len(names))
	for _, n := range names {
		key := PromptKey(strings.TrimSpace(strings.ToLower(n)))
		found := false
		for _, s := range Sections {
			if s.Key == key {
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("%w: %q", ErrUnknownSection, n)
		}
		want[key] = true
	}
	var out []Section
	for _, s := range Sections {
		if want[s.Key] {
			out = append(out, s)
		}
	}
	return out, nil
}

// Generate produces the document. Sections run concurrently and are
// assembled in their fixed order. A failing section is replaced by an error
// note and does not stop the others; only a cancelled context aborts.
// onEvent may be nil and is never called concurrently.
func (g *DocGenerator) Generate(ctx context.Context, analysis *core.CodebaseAnalysis, onEvent func(Event)) (*Document, error) {
	if analysis == nil || len(analysis.Files) == 0 {
		return nil, ErrNoFiles
	}

	var mu sync.Mutex
	emit := func(e Event) {
		if onEvent == nil {
			return
		}
		mu.Lock()
		defer mu.Unlock()
		onEvent(e)
	}

	total := len(g.sections)
	results := make([]SectionResult, total)
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(g.opts.Concurrency)

	for i, s := range g.sections {
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			res, err := g.generateSection(egCtx, s, analysis, i, total, emit)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	parts := make([]string, 0, total)
	for _, r := range results {
		if r.Content != "" {
			parts = append(parts, r.Content)
		}
	}
	return &Document{
		Markdown: strings.Join(parts, "\n\n"),
		Sections: results,
	}, nil
}

func (g *DocGenerator) generateSection(ctx context.Context, s Section, analysis *core.CodebaseAnalysis, index, total int, emit func(Event)) (SectionResult, error) {
	res := SectionResult{Key: s.Key}
	event := Event{Section: s.Key, Index: index, Total: total}

	budget := 0
	if g.opts.MaxPromptTokens > 0 {
		budget = g.opts.MaxPromptTokens / max(s.payloads, 1)
	}
	data, ok := s.build(analysis, &encoder{ctx: ctx, tokenizer: g.tokenizer, budget: budget})
	if !ok {
		g.logger.Debug("skipping section without input", "section", s.Key)
		res.Skipped = true
		event.Kind = SectionSkipped
		emit(event)
		return res, nil
	}
	data.CustomInstructions = g.opts.CustomInstructions

	event.Kind = SectionStarted
	emit(event)

	prompt, err := g.prompts.Render(s.Key, g.opts.Provider, data)
	if err == nil {
		res.PromptTokens = g.tokenizer.CountTokens(ctx, "", prompt)
		g.logger.Info("generating section", "section", s.Key, "prompt_tokens", res.PromptTokens)
		res.Content, err = g.call(ctx, prompt)
	}
	if err != nil {
		// A cancelled run is not a section failure.
		if ctxErr := ctx.Err(); ctxErr != nil {
			return res, ctxErr
		}
		g.logger.Error("section generation failed", "section", s.Key, "error", err)
		res.Err = err
		res.Content = fmt.Sprintf("## %s\n\nError generating this section: %v", s.Description, err)
		event.Kind = SectionFailed
		event.Err = err
		emit(event)
		return res, nil
	}

	res.ResponseTokens = g.tokenizer.CountTokens(ctx, "", res.Content)
	g.logger.Info("generated section", "section", s.Key, "response_tokens", res.ResponseTokens)
	event.Kind = SectionDone
	emit(event)
	return res, nil
}

func (g *DocGenerator) call(ctx context.Context, prompt string) (string, error) {
	if g.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.opts.Timeout)
		defer cancel()
	}
	out, err := g.gen.Generate(ctx, prompt)
	if err != nil {
		return "", err
	}
	return stripMarkdownFence(out), nil
}
