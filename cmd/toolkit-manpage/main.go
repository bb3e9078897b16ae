package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/toolkit/cmd/toolkit"
	"github.com/arthur-debert/toolkit/internal/version"
)

func main() {
	rootCmd := toolkit.NewRootCmd()

	header := &doc.GenManHeader{
		Title:   "TOOLKIT",
		Section: "1",
		Source:  "toolkit " + version.Version,
		Manual:  "toolkit manual",
	}

	if err := doc.GenMan(rootCmd, header, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
