package interactive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/nao1215/interactive/internal/debug"
)

// Common errors
var (
	// ErrEOF is returned when the key source is exhausted
	ErrEOF = errors.New("EOF")
	// ErrExit is returned after a double Escape when the exit func returns
	ErrExit = errors.New("exit requested")
)

// Handler processes one submitted line. It receives the line as a string and
// as editable units, plus the candidate list, and returns text to print
// verbatim. An empty string prints nothing.
type Handler func(line string, units []rune, candidates []string) string

// Config holds the configuration for a prompt.
type Config struct {
	Prefix        string         // Prompt written at the start of every input cycle (e.g., "> ")
	Banner        string         // Printed once before the first prompt
	Candidates    []string       // Completion candidates; empty disables completion
	HistoryConfig *HistoryConfig // History configuration (nil for default)
	KeyMap        *KeyMap        // Key bindings for the terminal key source (nil for default)
	ExitFunc      func(code int) // Called on double Escape (nil for os.Exit)
	Surface       Surface        // Screen to draw on (nil for the terminal)
	KeySource     KeySource      // Where keys come from (nil for the terminal)
}

// Option represents a configuration option for prompt
type Option func(*Config)

// WithPrefix replaces the prompt string given to New.
func WithPrefix(prefix string) Option {
	return func(c *Config) {
		c.Prefix = prefix
	}
}

// WithCandidates sets the completion candidates used by Tab.
func WithCandidates(candidates []string) Option {
	return func(c *Config) {
		c.Candidates = candidates
	}
}

// WithBanner sets a message printed once before the first prompt.
func WithBanner(banner string) Option {
	return func(c *Config) {
		c.Banner = banner
	}
}

// WithHistory configures history settings with the provided configuration.
//
// Example:
//
//	interactive.New("> ", interactive.WithHistory(&interactive.HistoryConfig{
//		Enabled:    true,
//		MaxEntries: 100,
//		File:       "~/.myapp_history",
//	}))
func WithHistory(historyConfig *HistoryConfig) Option {
	return func(c *Config) {
		c.HistoryConfig = historyConfig
	}
}

// WithMemoryHistory is a convenience function for memory-only history setup.
func WithMemoryHistory(maxEntries int) Option {
	return func(c *Config) {
		if maxEntries <= 0 {
			maxEntries = defaultMaxEntries
		}
		c.HistoryConfig = &HistoryConfig{
			Enabled:    true,
			MaxEntries: maxEntries,
		}
	}
}

// WithFileHistory is a convenience function for history with file persistence.
//
// Example:
//
//	interactive.New("> ", interactive.WithFileHistory("~/.myapp_history", 100))
func WithFileHistory(file string, maxEntries int) Option {
	return func(c *Config) {
		if maxEntries <= 0 {
			maxEntries = defaultMaxEntries
		}
		c.HistoryConfig = &HistoryConfig{
			Enabled:     true,
			MaxEntries:  maxEntries,
			File:        file,
			MaxFileSize: defaultMaxFileSize,
			MaxBackups:  defaultMaxBackups,
		}
	}
}

// WithKeyMap sets the key bindings
func WithKeyMap(keyMap *KeyMap) Option {
	return func(c *Config) {
		c.KeyMap = keyMap
	}
}

// WithExitFunc replaces os.Exit as the action taken on a double Escape.
func WithExitFunc(exit func(code int)) Option {
	return func(c *Config) {
		c.ExitFunc = exit
	}
}

// WithSurface draws on s instead of the terminal.
func WithSurface(s Surface) Option {
	return func(c *Config) {
		c.Surface = s
	}
}

// WithKeySource reads keys from src instead of the terminal.
func WithKeySource(src KeySource) Option {
	return func(c *Config) {
		c.KeySource = src
	}
}

// Prompt is an interactive line-editing session.
type Prompt struct {
	config      Config
	terminal    terminalInterface // nil when both surface and keys were supplied
	surface     Surface
	keys        KeySource
	history     *History
	cycler      *completionCycler
	editor      *lineEditor
	exit        func(code int)
	bannerShown bool
}

// New creates a new prompt with the specified prefix and optional configuration.
//
// Unless both WithSurface and WithKeySource are given, the prompt opens the
// controlling terminal and fails with ErrNotTerminal when stdout is not one.
//
// Example:
//
//	p, err := interactive.New("> ",
//		interactive.WithCandidates([]string{"status", "start", "stop"}),
//		interactive.WithMemoryHistory(100),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer p.Close()
//
//	err = p.Run(func(line string, _ []rune, _ []string) string {
//		return "you typed " + line + "\n"
//	})
func New(prefix string, options ...Option) (*Prompt, error) {
	config := Config{
		Prefix: prefix,
	}
	for _, option := range options {
		option(&config)
	}
	return newFromConfig(config)
}

func newFromConfig(config Config) (*Prompt, error) {
	if config.HistoryConfig == nil {
		config.HistoryConfig = DefaultHistoryConfig()
	}
	if config.KeyMap == nil {
		config.KeyMap = NewDefaultKeyMap()
	}
	if config.ExitFunc == nil {
		config.ExitFunc = os.Exit
	}

	p := &Prompt{
		config:  config,
		surface: config.Surface,
		keys:    config.KeySource,
		exit:    config.ExitFunc,
	}

	if p.surface == nil || p.keys == nil {
		terminal, err := newRealTerminal()
		if err != nil {
			return nil, fmt.Errorf("failed to create terminal: %w", err)
		}
		p.attachTerminal(terminal, terminal.output)
	}

	p.history = NewHistory(config.HistoryConfig)
	if err := p.history.Load(); err != nil {
		if p.terminal != nil {
			_ = p.terminal.Close()
		}
		return nil, fmt.Errorf("failed to load history: %w", err)
	}

	p.cycler = newCompletionCycler(config.Candidates)
	p.editor = newLineEditor(p.history, p.cycler, newRenderer(p.surface))
	return p, nil
}

// attachTerminal fills in whatever the caller did not supply from t.
func (p *Prompt) attachTerminal(t terminalInterface, out io.Writer) {
	p.terminal = t
	in := newInputReader(t)
	if p.surface == nil {
		p.surface = newANSISurface(out, in, t)
	}
	if p.keys == nil {
		p.keys = newKeyDecoder(in, p.config.KeyMap)
	}
}

// Run reads lines and hands every non-blank one to handler until the session
// ends. It returns ErrEOF when input runs out and ErrExit when the user
// pressed Escape twice and the exit func returned.
func (p *Prompt) Run(handler Handler) error {
	return p.RunWithContext(context.Background(), handler)
}

// RunWithContext is Run with cancellation. The context is checked between
// keys, so a cancelled session ends once the next key arrives.
func (p *Prompt) RunWithContext(ctx context.Context, handler Handler) error {
	if err := p.showBanner(); err != nil {
		return fmt.Errorf("failed to write banner: %w", err)
	}

	for {
		line, err := p.ReadLine(ctx)
		if err != nil {
			return err
		}
		units := []rune(line)
		if isBlank(units) {
			continue
		}

		response := handler(line, units, p.Candidates())
		if response == "" {
			continue
		}
		if err := p.surface.Write(response); err != nil {
			return fmt.Errorf("failed to write response: %w", err)
		}
	}
}

func (p *Prompt) showBanner() error {
	if p.bannerShown || p.config.Banner == "" {
		return nil
	}
	p.bannerShown = true
	return p.surface.Write(p.config.Banner + "\r\n")
}

// ReadLine runs one input cycle and returns the submitted line, which may be
// blank. Non-blank lines are added to the history.
func (p *Prompt) ReadLine(ctx context.Context) (string, error) {
	if err := p.enterRawMode(); err != nil {
		return "", fmt.Errorf("failed to enter raw mode: %w", err)
	}

	restored := false
	defer func() {
		if !restored {
			if err := p.exitRawMode(); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to exit raw mode: %v\n", err)
			}
		}
	}()

	if err := p.editor.start(p.config.Prefix); err != nil {
		return "", fmt.Errorf("failed to render prompt: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		default:
		}

		ev, err := p.keys.ReadKey()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return "", ErrEOF
			}
			return "", fmt.Errorf("failed to read input: %w", err)
		}

		out, err := p.editor.handle(ev)
		if err != nil {
			return "", fmt.Errorf("failed to render input: %w", err)
		}

		switch out {
		case outcomeSubmit:
			line := p.editor.buf.String()
			p.history.Submit(line)
			return line, nil
		case outcomeExit:
			restored = true
			if err := p.exitRawMode(); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to exit raw mode: %v\n", err)
			}
			if err := p.Close(); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to close terminal: %v\n", err)
			}
			debug.Log("exit requested")
			p.exit(0)
			return "", ErrExit
		}
	}
}

// Close saves the history and releases the terminal.
func (p *Prompt) Close() error {
	if err := p.history.Save(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to save history: %v\n", err)
	}

	if p.terminal != nil {
		return p.terminal.Close()
	}
	return nil
}

// Candidates returns a copy of the completion candidates.
func (p *Prompt) Candidates() []string {
	return append([]string{}, p.cycler.candidates...)
}

// SetCandidates replaces the completion candidates.
func (p *Prompt) SetCandidates(candidates []string) {
	p.config.Candidates = candidates
	*p.cycler = *newCompletionCycler(candidates)
}

// SetPrefix changes the prompt used from the next input cycle on.
func (p *Prompt) SetPrefix(prefix string) {
	p.config.Prefix = prefix
}

// GetHistory returns a copy of the submitted lines, oldest first.
func (p *Prompt) GetHistory() []string {
	return p.history.Entries()
}

// AddHistory records a line as if it had been submitted.
func (p *Prompt) AddHistory(line string) {
	p.history.Submit(line)
}

// ClearHistory removes all history entries.
func (p *Prompt) ClearHistory() {
	p.history.Clear()
}

// SetHistory replaces the history.
func (p *Prompt) SetHistory(history []string) {
	p.history.SetEntries(history)
}

func (p *Prompt) enterRawMode() error {
	if p.terminal == nil {
		return nil
	}
	return p.terminal.SetRaw()
}

func (p *Prompt) exitRawMode() error {
	if p.terminal == nil {
		return nil
	}
	return p.terminal.Restore()
}
