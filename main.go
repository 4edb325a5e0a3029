// Package main provides the entry point for the visiting card scanner bot.
package main

import (
	"fmt"
	"os"

	// Embedded zone database so the sheet timezone resolves in slim images.
	_ "time/tzdata"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
