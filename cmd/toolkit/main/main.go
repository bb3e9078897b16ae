package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"

	"github.com/arthur-debert/toolkit/cmd/toolkit"
	"github.com/arthur-debert/toolkit/pkg/display"
)

func main() {
	rootCmd := toolkit.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		errorStyle := lipgloss.NewStyle().Foreground(display.ConflictColor).Bold(true)
		fmt.Fprintln(os.Stderr, errorStyle.Render(fmt.Sprintf("Error: %v", err)))
		os.Exit(toolkit.ExitCode(err))
	}
}
