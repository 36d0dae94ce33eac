package main

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sevigo/gitdocify/internal/llm"
)

// Forwards a generator event into the program.
type sectionEventMsg llm.Event

// Sent once the generator returns.
type generateDoneMsg struct {
	doc *llm.Document
	err error
}

type progressModel struct {
	styles   styles
	spinner  spinner.Model
	progress progress.Model
	cancel   context.CancelFunc

	total    int
	finished int
	running  []llm.PromptKey
	lines    []string

	result generateDoneMsg
	done   bool
}

func newProgressModel(theme ThemeName, cancel context.CancelFunc) *progressModel {
	st := GetTheme(theme)
	sp := spinner.New()
	sp.Spinner = spinner.Points
	sp.Style = st.spinner

	return &progressModel{
		styles:   st,
		spinner:  sp,
		progress: progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
		cancel:   cancel,
	}
}

func (m *progressModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			// The generator returns promptly once cancelled; generateDoneMsg quits.
			m.cancel()
			m.lines = append(m.lines, m.styles.error.Render("⚠ cancelling..."))
		}
		return m, nil

	case sectionEventMsg:
		return m, m.handleEvent(llm.Event(msg))

	case generateDoneMsg:
		m.result = msg
		m.done = true
		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case progress.FrameMsg:
		pm, cmd := m.progress.Update(msg)
		if p, ok := pm.(progress.Model); ok {
			m.progress = p
		}
		return m, cmd

	case tea.WindowSizeMsg:
		m.progress.Width = min(max(msg.Width-8, 10), 60)
	}
	return m, nil
}

func (m *progressModel) handleEvent(e llm.Event) tea.Cmd {
	m.total = e.Total
	switch e.Kind {
	case llm.SectionStarted:
		m.running = append(m.running, e.Section)
		return nil
	case llm.SectionDone:
		m.lines = append(m.lines, m.styles.success.Render("✓ ")+string(e.Section))
	case llm.SectionFailed:
		m.lines = append(m.lines, m.styles.error.Render("✗ ")+fmt.Sprintf("%s: %v", e.Section, e.Err))
	case llm.SectionSkipped:
		m.lines = append(m.lines, m.styles.inactive.Render(fmt.Sprintf("○ %s (nothing to document)", e.Section)))
	}
	m.running = slices.DeleteFunc(m.running, func(k llm.PromptKey) bool { return k == e.Section })
	m.finished++
	if m.total == 0 {
		return nil
	}
	return m.progress.SetPercent(float64(m.finished) / float64(m.total))
}

func (m *progressModel) View() string {
	var b strings.Builder
	for _, line := range m.lines {
		b.WriteString("  " + line + "\n")
	}
	if m.done {
		return b.String()
	}

	status := "waiting for the model"
	if len(m.running) > 0 {
		names := make([]string, len(m.running))
		for i, k := range m.running {
			names[i] = string(k)
		}
		status = "writing " + strings.Join(names, ", ")
	}
	fmt.Fprintf(&b, "\n  %s %s\n", m.spinner.View(), m.styles.running.Render(status))
	fmt.Fprintf(&b, "  %s %d/%d\n", m.progress.View(), m.finished, m.total)
	return b.String()
}

// generateFunc runs the generation and reports progress through onEvent.
type generateFunc func(ctx context.Context, onEvent func(llm.Event)) (*llm.Document, error)

// runWithProgress runs generate behind a bubbletea progress view written to out.
func runWithProgress(ctx context.Context, out io.Writer, theme ThemeName, generate generateFunc) (*llm.Document, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	model := newProgressModel(theme, cancel)
	p := tea.NewProgram(model, tea.WithOutput(out))

	go func() {
		doc, err := generate(ctx, func(e llm.Event) { p.Send(sectionEventMsg(e)) })
		p.Send(generateDoneMsg{doc: doc, err: err})
	}()

	if _, err := p.Run(); err != nil {
		return nil, fmt.Errorf("progress view failed: %w", err)
	}
	if !model.done {
		return nil, context.Canceled
	}
	return model.result.doc, model.result.err
}

// runPlain runs generate and logs each event through the step timer.
func runPlain(ctx context.Context, timer *stepTimer, generate generateFunc) (*llm.Document, error) {
	return generate(ctx, func(e llm.Event) {
		switch e.Kind {
		case llm.SectionStarted:
			timer.info("%s: started", e.Section)
		case llm.SectionFailed:
			timer.info("%s: failed: %v", e.Section, e.Err)
		default:
			timer.info("%s: %s (%d/%d)", e.Section, e.Kind, e.Index+1, e.Total)
		}
	})
}
