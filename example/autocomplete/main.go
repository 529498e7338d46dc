// Package main demonstrates Tab completion against a fixed candidate list.
package main

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/nao1215/interactive"
)

func main() {
	candidates := []string{
		"git status", "git commit", "git push", "git pull",
		"docker run", "docker ps", "docker build",
		"kubectl get", "kubectl apply", "kubectl describe",
	}

	p, err := interactive.New("$ ",
		interactive.WithBanner("Autocomplete Example: type part of a command and press Tab repeatedly."),
		interactive.WithCandidates(candidates),
	)
	if err != nil {
		log.Fatalf("failed to create prompt: %v", err)
	}
	defer p.Close()

	err = p.Run(func(line string, _ []rune, candidates []string) string {
		for _, c := range candidates {
			if c == line {
				return fmt.Sprintf("known command: %s\n", line)
			}
		}
		return fmt.Sprintf("unknown command: %s (try one of: %s)\n", line, strings.Join(candidates, ", "))
	})
	if err != nil && !errors.Is(err, interactive.ErrEOF) {
		log.Fatal(err)
	}
}
