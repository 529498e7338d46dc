// Package main demonstrates persistent history with Up/Down recall.
package main

import (
	"errors"
	"fmt"
	"log"

	"github.com/nao1215/interactive"
)

func main() {
	historyFile := interactive.DefaultHistoryFile()

	p, err := interactive.New("history> ",
		interactive.WithBanner(fmt.Sprintf("History Example: lines are saved to %s", historyFile)),
		interactive.WithFileHistory(historyFile, 100),
	)
	if err != nil {
		log.Fatalf("failed to create prompt: %v", err)
	}
	defer p.Close()

	err = p.Run(func(line string, _ []rune, _ []string) string {
		if line == "history" {
			var out string
			for i, entry := range p.GetHistory() {
				out += fmt.Sprintf("%4d  %s\n", i+1, entry)
			}
			return out
		}
		return fmt.Sprintf("recorded: %s\n", line)
	})
	if err != nil && !errors.Is(err, interactive.ErrEOF) {
		log.Fatal(err)
	}
}
