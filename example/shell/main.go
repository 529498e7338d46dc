// Package main provides a small shell whose settings come from a YAML file.
//
// Usage:
//
//	go run ./example/shell -config shell.yaml
//
// Example shell.yaml:
//
//	prompt: "shell> "
//	banner: "Commands: ls, cd, pwd, cat. Press Escape twice to exit."
//	history:
//	  file: ~/.interactive_shell_history
//	  max_entries: 500
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/nao1215/interactive"
)

var commands = []string{"ls", "cd", "pwd", "cat"}

func main() {
	configPath := flag.String("config", "shell.yaml", "path to the YAML settings file")
	flag.Parse()

	cfg, err := interactive.LoadConfigFile(*configPath)
	if err != nil {
		log.Fatalf("failed to load settings: %v", err)
	}

	opts := append([]interactive.Option{
		interactive.WithPrefix("shell> "),
		interactive.WithCandidates(completionCandidates()),
	}, cfg.Options()...)

	p, err := interactive.New("", opts...)
	if err != nil {
		log.Fatalf("failed to create prompt: %v", err)
	}
	defer p.Close()

	err = p.Run(func(line string, _ []rune, _ []string) string {
		out := execute(strings.Fields(line))
		// The working directory may have changed.
		p.SetCandidates(completionCandidates())
		return out
	})
	if err != nil && !errors.Is(err, interactive.ErrEOF) {
		log.Fatal(err)
	}
}

// completionCandidates offers the commands plus the entries of the current directory.
func completionCandidates() []string {
	candidates := append([]string{}, commands...)
	entries, err := os.ReadDir(".")
	if err != nil {
		return candidates
	}
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() {
			name += string(filepath.Separator)
		}
		candidates = append(candidates, name)
	}
	return candidates
}

func execute(args []string) string {
	switch args[0] {
	case "pwd":
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Sprintf("pwd: %v\n", err)
		}
		return cwd + "\n"
	case "cd":
		dir := "."
		if len(args) > 1 {
			dir = args[1]
		}
		if err := os.Chdir(dir); err != nil {
			return fmt.Sprintf("cd: %v\n", err)
		}
		return ""
	case "ls":
		dir := "."
		if len(args) > 1 {
			dir = args[1]
		}
		entries, err := os.ReadDir(dir)
		if err != nil {
			return fmt.Sprintf("ls: %v\n", err)
		}
		var b strings.Builder
		for _, e := range entries {
			b.WriteString(e.Name())
			if e.IsDir() {
				b.WriteString("/")
			}
			b.WriteString("\n")
		}
		return b.String()
	case "cat":
		if len(args) < 2 {
			return "cat: missing file operand\n"
		}
		data, err := os.ReadFile(args[1])
		if err != nil {
			return fmt.Sprintf("cat: %v\n", err)
		}
		return string(data)
	default:
		return fmt.Sprintf("%s: command not found\n", args[0])
	}
}
