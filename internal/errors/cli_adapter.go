package errors

import (
	"fmt"
	"log/slog"
)

// CLIErrorAdapter handles error presentation and exit code determination.
type CLIErrorAdapter struct {
	verbose bool
	logger  *slog.Logger
}

// NewCLIErrorAdapter creates a new CLI error adapter.
func NewCLIErrorAdapter(verbose bool, logger *slog.Logger) *CLIErrorAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CLIErrorAdapter{
		verbose: verbose,
		logger:  logger,
	}
}

// ExitCodeFor determines the process exit code for an error.
func (a *CLIErrorAdapter) ExitCodeFor(err error) int {
	if err == nil {
		return 0
	}
	classified, ok := AsClassified(err)
	if !ok {
		return 1
	}
	switch classified.Category() {
	case CategoryValidation:
		return 2
	case CategorySchema:
		return 3
	case CategoryNotFound:
		return 4
	case CategoryFileSystem:
		return 5
	case CategoryConfig:
		return 7
	default:
		return 1
	}
}

// FormatError formats an error as a single user-facing line.
func (a *CLIErrorAdapter) FormatError(err error) string {
	if err == nil {
		return ""
	}
	classified, ok := AsClassified(err)
	if !ok {
		return fmt.Sprintf("Error: %v", err)
	}

	msg := fmt.Sprintf("Error: %s", classified.Message())
	if classified.Cause() != nil {
		msg += fmt.Sprintf(": %v", classified.Cause())
	}
	if a.verbose {
		if ctx := classified.contextString(); ctx != "" {
			msg += fmt.Sprintf(" (%s)", ctx)
		}
	}
	return msg
}

// HandleError logs the error at debug level and returns its exit code.
func (a *CLIErrorAdapter) HandleError(err error) int {
	if err == nil {
		return 0
	}
	if classified, ok := AsClassified(err); ok {
		a.logger.Debug("Command failed",
			slog.String("category", string(classified.Category())),
			slog.String("error", err.Error()))
	}
	return a.ExitCodeFor(err)
}
