// Package interactive provides a readline-like line editor for text consoles.
//
// A Prompt writes a prompt string, reads keys one at a time and keeps the
// input line on screen in step with an edit buffer. Long input wraps across
// terminal rows; the editor tracks where the prompt was written and computes
// every cell from that origin, so cursor movement and redraws stay correct
// across wraps and scrolling.
//
// Quick Start:
//
//	package main
//
//	import (
//		"errors"
//		"log"
//		"strings"
//
//		"github.com/nao1215/interactive"
//	)
//
//	func main() {
//		p, err := interactive.New("> ",
//			interactive.WithBanner("Press Escape twice to exit."),
//			interactive.WithCandidates([]string{"status", "start", "stop"}),
//		)
//		if err != nil {
//			log.Fatal(err)
//		}
//		defer p.Close()
//
//		err = p.Run(func(line string, _ []rune, _ []string) string {
//			return strings.ToUpper(line) + "\n"
//		})
//		if err != nil && !errors.Is(err, interactive.ErrEOF) {
//			log.Fatal(err)
//		}
//	}
//
// Key Bindings:
//
//   - Enter: submit the line (blank lines are ignored)
//   - Left/Right arrows: move the cursor
//   - Home, Ctrl+Home, Ctrl+H: move to the beginning of the line
//   - End, Ctrl+End, Ctrl+E: move to the end of the line
//   - Up/Down arrows: walk the history
//   - Tab: cycle the word before the cursor through matching candidates
//   - Backspace: delete the character before the cursor
//   - Delete: delete the character under the cursor
//   - Escape twice: exit the process with status 0
//
// Completion:
//
// Tab collects every candidate that contains the word before the cursor,
// ignoring case, followed by the word itself. Repeated Tab presses replace
// the word with the next entry and wrap around to what was typed. Any other
// key ends the cycle.
//
// History:
//
// Submitted lines are kept in order without duplicates. Configure with
// WithMemoryHistory, WithFileHistory or WithHistory; file history is loaded
// by New and saved by Close.
//
// Settings File:
//
// LoadConfigFile reads prompt, banner, candidates and history settings from
// YAML and FileConfig.Options turns them into options for New.
//
// Thread Safety:
//
// Prompt instances are not thread-safe. Each prompt should be used from a single
// goroutine. The handler runs on that goroutine with the terminal back in its
// normal mode, so it may print freely.
//
// Resource Management:
//
// Always call Close() when done with a prompt so that history is saved and
// the terminal is released.
package interactive
