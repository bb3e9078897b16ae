package display

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"

	"github.com/arthur-debert/toolkit/pkg/config"
)

// Options control rendering. They are resolved once by the command layer.
type Options struct {
	Format        config.OutputFormat
	Color         config.ColorMode
	ShowUnchanged bool
}

// OptionsFromConfig copies the output section of the configuration.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Format:        cfg.Output.Format,
		Color:         cfg.Output.Color,
		ShowUnchanged: cfg.Output.ShowUnchanged,
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// DetectFormat picks term for colour-capable terminals and text otherwise.
func DetectFormat(w io.Writer) config.OutputFormat {
	if os.Getenv("NO_COLOR") != "" {
		return config.FormatText
	}
	if !isTerminal(w) {
		return config.FormatText
	}
	if termenv.ColorProfile() == termenv.Ascii {
		return config.FormatText
	}
	return config.FormatTerm
}

// resolve replaces auto values with concrete ones for w.
func (o Options) resolve(w io.Writer) (config.OutputFormat, bool) {
	format := o.Format
	if format == "" || format == config.FormatAuto {
		format = DetectFormat(w)
	}

	var color bool
	switch o.Color {
	case config.ColorAlways:
		color = format != config.FormatJSON
	case config.ColorNever:
		color = false
	default:
		color = format == config.FormatTerm
	}
	return format, color
}
