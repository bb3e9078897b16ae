// Package genconfig implements gen-config, which prints or writes a
// commented configuration file.
package genconfig

import (
	"os"
	"path/filepath"

	"github.com/arthur-debert/toolkit/pkg/config"
	"github.com/arthur-debert/toolkit/pkg/errors"
	"github.com/arthur-debert/toolkit/pkg/logging"
)

// Options holds options for GenConfig
type Options struct {
	// Path is written when Write is set
	Path  string
	Write bool

	// Effective renders the loaded configuration instead of the template
	Effective *config.Config
}

// Result of GenConfig
type Result struct {
	Content string
	Written string
}

// GenConfig returns the configuration content and optionally writes it.
// An existing file is never overwritten.
func GenConfig(opts Options) (*Result, error) {
	logger := logging.GetLogger("commands.genconfig")

	result := &Result{Content: config.GenerateConfigContent()}
	if opts.Effective != nil {
		content, err := opts.Effective.Render()
		if err != nil {
			return nil, err
		}
		result.Content = content
	}

	if !opts.Write {
		logger.Debug().Msg("Outputting config to stdout")
		return result, nil
	}

	if _, err := os.Stat(opts.Path); err == nil {
		return nil, errors.New(errors.ErrInvalidInput, "config file already exists").
			WithDetail("path", opts.Path)
	}
	if err := os.MkdirAll(filepath.Dir(opts.Path), 0755); err != nil {
		return nil, errors.Wrap(err, errors.ErrFileAccess, "failed to create config directory")
	}
	if err := os.WriteFile(opts.Path, []byte(result.Content), 0644); err != nil {
		return nil, errors.Wrap(err, errors.ErrFileAccess, "failed to write config file").
			WithDetail("path", opts.Path)
	}

	logger.Info().Str("path", opts.Path).Msg("Written config file")
	result.Written = opts.Path
	return result, nil
}
