// Package main provides a basic example of reading lines one at a time.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/nao1215/interactive"
)

func main() {
	fmt.Println("Basic Example")
	fmt.Println("Type something and press Enter. Press Escape twice to quit.")

	p, err := interactive.New("> ")
	if err != nil {
		log.Fatalf("failed to create prompt: %v", err)
	}
	defer p.Close()

	for {
		line, err := p.ReadLine(context.Background())
		if err != nil {
			if errors.Is(err, interactive.ErrEOF) {
				return
			}
			log.Fatalf("prompt error: %v", err)
		}
		if line == "" {
			continue
		}
		fmt.Printf("You entered: %s\n", line)
	}
}
